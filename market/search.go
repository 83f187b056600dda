package market

// PriceRange bounds a product search by price.
type PriceRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// PeriodRange bounds a search by creation date, RFC 3339 strings as the API
// expects them.
type PeriodRange struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// ProductsSearch is the search criteria of a product list inquiry.
type ProductsSearch struct {
	MemberID     string            `json:"memberId,omitempty"`
	CategoryList []ProductCategory `json:"categoryList,omitempty"`
	StatusList   []ProductStatus   `json:"statusList,omitempty"`
	PriceRange   *PriceRange       `json:"pricesRange,omitempty"`
	PeriodRange  *PeriodRange      `json:"periodsRange,omitempty"`
	Text         string            `json:"text,omitempty"`
}

// MembersSearch is the search criteria of a member (artist) list inquiry.
type MembersSearch struct {
	Type MemberType `json:"memberType,omitempty"`
	Text string     `json:"text,omitempty"`
}

// FollowsSearch selects one side of the follower graph: FollowingID lists a
// member's followers, FollowerID lists the members they follow.
type FollowsSearch struct {
	FollowingID string `json:"followingId,omitempty"`
	FollowerID  string `json:"followerId,omitempty"`
}

// ArticlesSearch is the search criteria of a board article list inquiry.
type ArticlesSearch struct {
	Category ArticleCategory `json:"articleCategory,omitempty"`
	MemberID string          `json:"memberId,omitempty"`
	Text     string          `json:"text,omitempty"`
}

// CommentsSearch selects the comments attached to one entity.
type CommentsSearch struct {
	RefID string `json:"commentRefId"`
}

// OrdersSearch is the search criteria of an order list inquiry.
type OrdersSearch struct {
	Status OrderStatus `json:"orderStatus,omitempty"`
}
