package market_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balumaqsud/artily-client/listing"
	"github.com/balumaqsud/artily-client/market"
)

func TestOrders_List(t *testing.T) {
	ctx := context.Background()
	doer := newFakeDoer()
	doer.respond["getMyOrders"] = `{"getMyOrders":{
		"list":[{
			"_id":"o1","orderStatus":"PROCESS","orderTotal":180,"orderDelivery":20,
			"orderItems":[{"_id":"i1","productId":"p1","itemQuantity":2,"itemPrice":80}]
		}],
		"totalCount":1
	}}`
	orders := market.NewOrders(doer)

	inq := listing.New[market.OrdersSearch](5, "createdAt").
		WithSearch(market.OrdersSearch{Status: market.OrderStatusProcess})

	page, err := orders.List(ctx, inq)
	require.NoError(t, err)
	require.Len(t, page.List, 1)
	assert.Equal(t, 180, page.List[0].Total)
	require.Len(t, page.List[0].Items, 1)
	assert.Equal(t, 2, page.List[0].Items[0].Quantity)
}

func TestOrders_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("submits the cart", func(t *testing.T) {
		doer := newFakeDoer()
		doer.respond["createOrder"] = `{"createOrder":{"_id":"o9","orderStatus":"PAUSE","orderTotal":160}}`
		orders := market.NewOrders(doer)

		items := []market.OrderItemInput{
			{ProductID: "p1", Quantity: 2, Price: 80},
		}
		order, err := orders.Create(ctx, items)
		require.NoError(t, err)
		assert.Equal(t, "o9", order.ID)
		assert.Equal(t, market.OrderStatusPause, order.Status)
		assert.Equal(t, items, doer.lastCall().vars["input"])
	})

	t.Run("rejects an empty cart", func(t *testing.T) {
		doer := newFakeDoer()
		orders := market.NewOrders(doer)

		_, err := orders.Create(ctx, nil)
		require.Error(t, err)
		assert.Empty(t, doer.calls)
	})

	t.Run("rejects a line without a product", func(t *testing.T) {
		doer := newFakeDoer()
		orders := market.NewOrders(doer)

		_, err := orders.Create(ctx, []market.OrderItemInput{{Quantity: 1, Price: 10}})
		assert.Error(t, err)
	})

	t.Run("rejects a non-positive quantity", func(t *testing.T) {
		doer := newFakeDoer()
		orders := market.NewOrders(doer)

		_, err := orders.Create(ctx, []market.OrderItemInput{{ProductID: "p1", Quantity: 0, Price: 10}})
		assert.Error(t, err)
	})
}

func TestOrders_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("moves the order forward", func(t *testing.T) {
		doer := newFakeDoer()
		doer.respond["updateOrder"] = `{"updateOrder":{"_id":"o1","orderStatus":"FINISH"}}`
		orders := market.NewOrders(doer)

		order, err := orders.UpdateStatus(ctx, market.OrderUpdate{OrderID: "o1", Status: market.OrderStatusFinish})
		require.NoError(t, err)
		assert.Equal(t, market.OrderStatusFinish, order.Status)
	})

	t.Run("requires an order id", func(t *testing.T) {
		doer := newFakeDoer()
		orders := market.NewOrders(doer)

		_, err := orders.UpdateStatus(ctx, market.OrderUpdate{Status: market.OrderStatusFinish})
		require.Error(t, err)
		assert.Empty(t, doer.calls)
	})
}
