package artily

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	goerrors "github.com/goliatone/go-errors"
)

const tokenSegments = 3

// WellFormed reports whether raw has the three dot-separated segment
// structure of a bearer token, with no segment empty. This is the structural
// precheck every decode goes through first.
func WellFormed(raw string) bool {
	parts := strings.Split(raw, ".")
	if len(parts) != tokenSegments {
		return false
	}
	for _, part := range parts {
		if part == "" {
			return false
		}
	}
	return true
}

// TokenCodec decodes and validates session tokens. Validation fails closed:
// any structural, decode, or expiry problem makes the token invalid rather
// than surfacing a panic or a partial result.
type TokenCodec struct {
	logger Logger
	now    func() time.Time
}

// NewTokenCodec returns a codec using the wall clock.
func NewTokenCodec() *TokenCodec {
	return &TokenCodec{
		logger: defLogger{},
		now:    time.Now,
	}
}

// WithLogger replaces the codec's logger.
func (c *TokenCodec) WithLogger(logger Logger) *TokenCodec {
	if logger != nil {
		c.logger = logger
	}
	return c
}

// WithClock injects a clock, useful for expiry boundary tests.
func (c *TokenCodec) WithClock(clock func() time.Time) *TokenCodec {
	if clock != nil {
		c.now = clock
	}
	return c
}

// Decode parses the claims out of a token. The structural precheck runs
// before any decoding so malformed input gets the distinct
// INVALID_TOKEN_FORMAT error; a structurally sound token with an unreadable
// payload gets TOKEN_DECODE_FAILED. Decode does not check expiry and does not
// verify the signature.
func (c *TokenCodec) Decode(raw string) (*MemberClaims, error) {
	if !WellFormed(raw) {
		return nil, ErrInvalidTokenFormat.WithMetadata(map[string]any{
			"segments": len(strings.Split(raw, ".")),
		})
	}

	claims := &MemberClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		c.logger.Debug("token decode failed: %v", err)
		return nil, goerrors.Wrap(err, ErrTokenDecodeFailed.Category, ErrTokenDecodeFailed.Message).
			WithTextCode(ErrTokenDecodeFailed.TextCode)
	}

	return claims, nil
}

// Validate runs the full check on a raw token: structure, decodability, and
// expiry. A token whose expiry claim equals the current time is already
// expired; one without an expiry claim never expires client-side.
func (c *TokenCodec) Validate(raw string) error {
	claims, err := c.Decode(raw)
	if err != nil {
		return err
	}

	if exp := claims.Expires(); !exp.IsZero() && !exp.After(c.now()) {
		return ErrTokenExpired.WithMetadata(map[string]any{
			"expired_at": exp,
		})
	}

	return nil
}

// IsValid is the fail-closed boolean form of Validate: false for empty input,
// malformed structure, unreadable payload, or passed expiry. It never
// returns an error to the caller.
func (c *TokenCodec) IsValid(raw string) bool {
	if strings.TrimSpace(raw) == "" {
		return false
	}
	return c.Validate(raw) == nil
}
