package market

import (
	"context"

	goerrors "github.com/goliatone/go-errors"

	"github.com/balumaqsud/artily-client/listing"
)

const productFields = `
	_id
	productCategory
	productStatus
	productTitle
	productPrice
	productDesc
	productImages
	productViews
	productLikes
	productComments
	memberId
	createdAt
	updatedAt
	soldAt`

const getProductsQuery = `query getProducts($input: ProductsInquiry!) {
	getProducts(input: $input) {
		list {` + productFields + `
		}
		totalCount
	}
}`

const getProductQuery = `query getProduct($productId: String!) {
	getProduct(productId: $productId) {` + productFields + `
	}
}`

const likeTargetProductMutation = `mutation likeTargetProduct($productId: String!) {
	likeTargetProduct(productId: $productId) {` + productFields + `
	}
}`

const createProductMutation = `mutation createProduct($input: ProductInput!) {
	createProduct(input: $input) {` + productFields + `
	}
}`

const updateProductMutation = `mutation updateProduct($input: ProductUpdate!) {
	updateProduct(input: $input) {` + productFields + `
	}
}`

// ProductInput creates a new seller listing.
type ProductInput struct {
	Category    ProductCategory `json:"productCategory"`
	Title       string          `json:"productTitle"`
	Price       int             `json:"productPrice"`
	Description string          `json:"productDesc,omitempty"`
	Images      []string        `json:"productImages,omitempty"`
}

// ProductUpdate patches an existing listing. Zero-valued fields are omitted
// so the server only touches what the seller changed.
type ProductUpdate struct {
	ID          string          `json:"_id"`
	Category    ProductCategory `json:"productCategory,omitempty"`
	Status      ProductStatus   `json:"productStatus,omitempty"`
	Title       string          `json:"productTitle,omitempty"`
	Price       int             `json:"productPrice,omitempty"`
	Description string          `json:"productDesc,omitempty"`
	Images      []string        `json:"productImages,omitempty"`
}

// Products exposes the product catalog operations.
type Products struct {
	do Doer
}

// NewProducts returns the product service backed by the given transport.
func NewProducts(do Doer) *Products {
	return &Products{do: do}
}

// List runs a paginated product query.
func (s *Products) List(ctx context.Context, inq listing.Inquiry[ProductsSearch]) (Page[Product], error) {
	var out struct {
		GetProducts Page[Product] `json:"getProducts"`
	}
	if err := s.do.Do(ctx, "getProducts", getProductsQuery, inq.Variables(), &out); err != nil {
		return Page[Product]{}, err
	}
	return out.GetProducts, nil
}

// Get fetches a single product by id.
func (s *Products) Get(ctx context.Context, productID string) (Product, error) {
	if productID == "" {
		return Product{}, goerrors.New("product id is required", goerrors.CategoryBadInput).
			WithCode(goerrors.CodeBadRequest)
	}

	var out struct {
		GetProduct Product `json:"getProduct"`
	}
	if err := s.do.Do(ctx, "getProduct", getProductQuery, map[string]any{"productId": productID}, &out); err != nil {
		return Product{}, err
	}
	return out.GetProduct, nil
}

// Like toggles the caller's like on a product and returns the updated
// product as the server now sees it.
func (s *Products) Like(ctx context.Context, productID string) (Product, error) {
	if productID == "" {
		return Product{}, goerrors.New("product id is required", goerrors.CategoryBadInput).
			WithCode(goerrors.CodeBadRequest)
	}

	var out struct {
		LikeTargetProduct Product `json:"likeTargetProduct"`
	}
	if err := s.do.Do(ctx, "likeTargetProduct", likeTargetProductMutation, map[string]any{"productId": productID}, &out); err != nil {
		return Product{}, err
	}
	return out.LikeTargetProduct, nil
}

// Create publishes a new listing for the authenticated seller.
func (s *Products) Create(ctx context.Context, input ProductInput) (Product, error) {
	var out struct {
		CreateProduct Product `json:"createProduct"`
	}
	if err := s.do.Do(ctx, "createProduct", createProductMutation, map[string]any{"input": input}, &out); err != nil {
		return Product{}, err
	}
	return out.CreateProduct, nil
}

// Update patches one of the authenticated seller's listings.
func (s *Products) Update(ctx context.Context, update ProductUpdate) (Product, error) {
	if update.ID == "" {
		return Product{}, goerrors.New("product id is required", goerrors.CategoryBadInput).
			WithCode(goerrors.CodeBadRequest)
	}

	var out struct {
		UpdateProduct Product `json:"updateProduct"`
	}
	if err := s.do.Do(ctx, "updateProduct", updateProductMutation, map[string]any{"input": update}, &out); err != nil {
		return Product{}, err
	}
	return out.UpdateProduct, nil
}
