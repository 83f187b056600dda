package market

import (
	"context"
	"time"
)

// Doer executes a named GraphQL operation against the marketplace API and
// decodes the response data into out. Satisfied by *gql.Client.
type Doer interface {
	Do(ctx context.Context, name, query string, vars map[string]any, out any) error
}

// MemberType is the member's account type.
type MemberType = string

const (
	MemberTypeUser   MemberType = "USER"
	MemberTypeArtist MemberType = "ARTIST"
	MemberTypeAdmin  MemberType = "ADMIN"
)

// MemberStatus is the member's account status.
type MemberStatus = string

const (
	MemberStatusActive  MemberStatus = "ACTIVE"
	MemberStatusBlocked MemberStatus = "BLOCK"
	MemberStatusDeleted MemberStatus = "DELETE"
)

// Member is the marketplace member as the API reports it. The zero value is
// the anonymous sentinel used before login and after logout.
type Member struct {
	ID          string       `json:"_id"`
	Type        MemberType   `json:"memberType,omitempty"`
	Status      MemberStatus `json:"memberStatus,omitempty"`
	Nick        string       `json:"memberNick,omitempty"`
	Phone       string       `json:"memberPhone,omitempty"`
	Image       string       `json:"memberImage,omitempty"`
	Address     string       `json:"memberAddress,omitempty"`
	Description string       `json:"memberDesc,omitempty"`
	Products    int          `json:"memberProducts,omitempty"`
	Articles    int          `json:"memberArticles,omitempty"`
	Followers   int          `json:"memberFollowers,omitempty"`
	Followings  int          `json:"memberFollowings,omitempty"`
	Likes       int          `json:"memberLikes,omitempty"`
	Views       int          `json:"memberViews,omitempty"`
	CreatedAt   *time.Time   `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time   `json:"updatedAt,omitempty"`
}

// IsAnonymous reports whether the member is the zero sentinel.
func (m Member) IsAnonymous() bool {
	return m.ID == ""
}

// Follow is one edge of the follower graph: FollowerID follows FollowingID.
// The member payload for the far side of the edge rides along for list
// rendering.
type Follow struct {
	ID          string     `json:"_id"`
	FollowingID string     `json:"followingId"`
	FollowerID  string     `json:"followerId"`
	Follower    *Member    `json:"followerData,omitempty"`
	Following   *Member    `json:"followingData,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// ProductStatus is the listing status of a product.
type ProductStatus = string

const (
	ProductStatusActive ProductStatus = "ACTIVE"
	ProductStatusSold   ProductStatus = "SOLD"
	ProductStatusDelete ProductStatus = "DELETE"
)

// ProductCategory groups products for search and browse.
type ProductCategory = string

const (
	ProductCategoryPainting  ProductCategory = "PAINTING"
	ProductCategorySculpture ProductCategory = "SCULPTURE"
	ProductCategoryCeramics  ProductCategory = "CERAMICS"
	ProductCategoryPrints    ProductCategory = "PRINTS"
	ProductCategoryCrafts    ProductCategory = "CRAFTS"
	ProductCategoryOther     ProductCategory = "OTHER"
)

// Product is a seller's listing.
type Product struct {
	ID          string          `json:"_id"`
	Category    ProductCategory `json:"productCategory,omitempty"`
	Status      ProductStatus   `json:"productStatus,omitempty"`
	Title       string          `json:"productTitle,omitempty"`
	Price       int             `json:"productPrice,omitempty"`
	Description string          `json:"productDesc,omitempty"`
	Images      []string        `json:"productImages,omitempty"`
	Views       int             `json:"productViews,omitempty"`
	Likes       int             `json:"productLikes,omitempty"`
	Comments    int             `json:"productComments,omitempty"`
	MemberID    string          `json:"memberId,omitempty"`
	Member      *Member         `json:"memberData,omitempty"`
	CreatedAt   *time.Time      `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time      `json:"updatedAt,omitempty"`
	SoldAt      *time.Time      `json:"soldAt,omitempty"`
}

// ArticleCategory groups community board articles.
type ArticleCategory = string

const (
	ArticleCategoryFree      ArticleCategory = "FREE"
	ArticleCategoryRecommend ArticleCategory = "RECOMMEND"
	ArticleCategoryNews      ArticleCategory = "NEWS"
	ArticleCategoryHumor     ArticleCategory = "HUMOR"
)

// ArticleStatus is the moderation status of an article.
type ArticleStatus = string

const (
	ArticleStatusActive ArticleStatus = "ACTIVE"
	ArticleStatusDelete ArticleStatus = "DELETE"
)

// Article is a community board post.
type Article struct {
	ID        string          `json:"_id"`
	Category  ArticleCategory `json:"articleCategory,omitempty"`
	Status    ArticleStatus   `json:"articleStatus,omitempty"`
	Title     string          `json:"articleTitle,omitempty"`
	Content   string          `json:"articleContent,omitempty"`
	Image     string          `json:"articleImage,omitempty"`
	Views     int             `json:"articleViews,omitempty"`
	Likes     int             `json:"articleLikes,omitempty"`
	Comments  int             `json:"articleComments,omitempty"`
	MemberID  string          `json:"memberId,omitempty"`
	Member    *Member         `json:"memberData,omitempty"`
	CreatedAt *time.Time      `json:"createdAt,omitempty"`
	UpdatedAt *time.Time      `json:"updatedAt,omitempty"`
}

// CommentGroup identifies the entity family a comment is attached to.
type CommentGroup = string

const (
	CommentGroupProduct CommentGroup = "PRODUCT"
	CommentGroupArticle CommentGroup = "ARTICLE"
	CommentGroupMember  CommentGroup = "MEMBER"
)

// Comment is attached to a product, article, or member page.
type Comment struct {
	ID        string       `json:"_id"`
	Group     CommentGroup `json:"commentGroup,omitempty"`
	Status    string       `json:"commentStatus,omitempty"`
	Content   string       `json:"commentContent,omitempty"`
	RefID     string       `json:"commentRefId,omitempty"`
	MemberID  string       `json:"memberId,omitempty"`
	Member    *Member      `json:"memberData,omitempty"`
	CreatedAt *time.Time   `json:"createdAt,omitempty"`
	UpdatedAt *time.Time   `json:"updatedAt,omitempty"`
}

// OrderStatus is the fulfillment status of an order.
type OrderStatus = string

const (
	OrderStatusPause   OrderStatus = "PAUSE"
	OrderStatusProcess OrderStatus = "PROCESS"
	OrderStatusFinish  OrderStatus = "FINISH"
	OrderStatusDelete  OrderStatus = "DELETE"
)

// OrderItem is a single product line within an order.
type OrderItem struct {
	ID        string `json:"_id,omitempty"`
	ProductID string `json:"productId"`
	OrderID   string `json:"orderId,omitempty"`
	Quantity  int    `json:"itemQuantity"`
	Price     int    `json:"itemPrice"`
}

// Order is a buyer's checkout cart once submitted.
type Order struct {
	ID        string      `json:"_id"`
	Status    OrderStatus `json:"orderStatus,omitempty"`
	Total     int         `json:"orderTotal,omitempty"`
	Delivery  int         `json:"orderDelivery,omitempty"`
	MemberID  string      `json:"memberId,omitempty"`
	Items     []OrderItem `json:"orderItems,omitempty"`
	Products  []Product   `json:"productData,omitempty"`
	CreatedAt *time.Time  `json:"createdAt,omitempty"`
	UpdatedAt *time.Time  `json:"updatedAt,omitempty"`
}

// Page is one page of a paginated list query.
type Page[T any] struct {
	List  []T `json:"list"`
	Total int `json:"totalCount"`
}
