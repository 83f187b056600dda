package market

import (
	"context"

	goerrors "github.com/goliatone/go-errors"

	"github.com/balumaqsud/artily-client/listing"
)

const orderFields = `
	_id
	orderStatus
	orderTotal
	orderDelivery
	memberId
	orderItems {
		_id
		productId
		orderId
		itemQuantity
		itemPrice
	}
	createdAt
	updatedAt`

const getOrdersQuery = `query getMyOrders($input: OrdersInquiry!) {
	getMyOrders(input: $input) {
		list {` + orderFields + `
		}
		totalCount
	}
}`

const createOrderMutation = `mutation createOrder($input: [OrderItemInput!]!) {
	createOrder(input: $input) {` + orderFields + `
	}
}`

const updateOrderMutation = `mutation updateOrder($input: OrderUpdate!) {
	updateOrder(input: $input) {` + orderFields + `
	}
}`

// OrderItemInput is one cart line submitted at checkout.
type OrderItemInput struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"itemQuantity"`
	Price     int    `json:"itemPrice"`
}

// OrderUpdate changes the status of an existing order (pause, process,
// finish, delete).
type OrderUpdate struct {
	OrderID string      `json:"orderId"`
	Status  OrderStatus `json:"orderStatus"`
}

// Orders exposes the authenticated buyer's order operations.
type Orders struct {
	do Doer
}

// NewOrders returns the order service backed by the given transport.
func NewOrders(do Doer) *Orders {
	return &Orders{do: do}
}

// List runs a paginated query over the caller's own orders.
func (s *Orders) List(ctx context.Context, inq listing.Inquiry[OrdersSearch]) (Page[Order], error) {
	var out struct {
		GetMyOrders Page[Order] `json:"getMyOrders"`
	}
	if err := s.do.Do(ctx, "getMyOrders", getOrdersQuery, inq.Variables(), &out); err != nil {
		return Page[Order]{}, err
	}
	return out.GetMyOrders, nil
}

// Create submits the cart as a new order.
func (s *Orders) Create(ctx context.Context, items []OrderItemInput) (Order, error) {
	if len(items) == 0 {
		return Order{}, goerrors.New("an order needs at least one item", goerrors.CategoryBadInput).
			WithCode(goerrors.CodeBadRequest)
	}
	for _, item := range items {
		if item.ProductID == "" || item.Quantity <= 0 {
			return Order{}, goerrors.New("order items need a product id and a positive quantity", goerrors.CategoryBadInput).
				WithCode(goerrors.CodeBadRequest).
				WithMetadata(map[string]any{"productId": item.ProductID, "quantity": item.Quantity})
		}
	}

	var out struct {
		CreateOrder Order `json:"createOrder"`
	}
	if err := s.do.Do(ctx, "createOrder", createOrderMutation, map[string]any{"input": items}, &out); err != nil {
		return Order{}, err
	}
	return out.CreateOrder, nil
}

// UpdateStatus moves one of the caller's orders to a new status.
func (s *Orders) UpdateStatus(ctx context.Context, update OrderUpdate) (Order, error) {
	if update.OrderID == "" {
		return Order{}, goerrors.New("order id is required", goerrors.CategoryBadInput).
			WithCode(goerrors.CodeBadRequest)
	}

	var out struct {
		UpdateOrder Order `json:"updateOrder"`
	}
	if err := s.do.Do(ctx, "updateOrder", updateOrderMutation, map[string]any{"input": update}, &out); err != nil {
		return Order{}, err
	}
	return out.UpdateOrder, nil
}
