package artily

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/balumaqsud/artily-client/market"
)

// DefaultMemberImage is the placeholder shown for members without an
// uploaded profile image.
const DefaultMemberImage = "/img/profile/defaultUser.svg"

// MemberClaims is the decoded payload of a session token. The client parses
// claims only to project them into the session profile; it never verifies the
// signature, since the signing secret lives on the server.
type MemberClaims struct {
	jwt.RegisteredClaims
	ID      string `json:"_id,omitempty"`
	Nick    string `json:"memberNick,omitempty"`
	Type    string `json:"memberType,omitempty"`
	Status  string `json:"memberStatus,omitempty"`
	Phone   string `json:"memberPhone,omitempty"`
	Image   string `json:"memberImage,omitempty"`
	Address string `json:"memberAddress,omitempty"`
}

// MemberID returns the member identifier, falling back to the registered
// subject claim.
func (c *MemberClaims) MemberID() string {
	if c.ID != "" {
		return c.ID
	}
	return c.RegisteredClaims.Subject
}

// Expires returns the expiry time, or the zero time when the claim is absent.
func (c *MemberClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// memberFromClaims projects decoded claims into a session profile, applying
// the boundary fallbacks once: missing image gets the placeholder, missing
// strings stay empty, counters start at zero.
func memberFromClaims(claims *MemberClaims) market.Member {
	if claims == nil {
		return market.Member{}
	}

	member := market.Member{
		ID:      claims.MemberID(),
		Nick:    claims.Nick,
		Type:    claims.Type,
		Status:  claims.Status,
		Phone:   claims.Phone,
		Image:   claims.Image,
		Address: claims.Address,
	}

	return withProfileDefaults(member)
}

// withProfileDefaults fills the field-level fallbacks for any member about to
// enter the session cell.
func withProfileDefaults(member market.Member) market.Member {
	if member.ID != "" && member.Image == "" {
		member.Image = DefaultMemberImage
	}
	return member
}
