package artily_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	artily "github.com/balumaqsud/artily-client"
)

func TestErrorPredicates(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		blocked   bool
		mismatch  bool
		duplicate bool
		expired   bool
		malformed bool
	}{
		{
			name: "nil error matches nothing",
			err:  nil,
		},
		{
			name:    "mapped blocked error",
			err:     artily.ErrAccountBlocked,
			blocked: true,
		},
		{
			name:    "raw blocked rejection",
			err:     errors.New("Definer: user has been blocked!"),
			blocked: true,
		},
		{
			name:     "mapped credential mismatch",
			err:      artily.ErrCredentialMismatch,
			mismatch: true,
		},
		{
			name:     "raw unknown member rejection",
			err:      errors.New("Definer: no member with that member nick!"),
			mismatch: true,
		},
		{
			name:     "raw wrong password rejection",
			err:      errors.New("Definer: wrong password, please try again!"),
			mismatch: true,
		},
		{
			name:      "mapped duplicate identifier",
			err:       artily.ErrIdentifierInUse,
			duplicate: true,
		},
		{
			name:      "raw nick in use rejection",
			err:       errors.New("Definer: member nick is already being used!"),
			duplicate: true,
		},
		{
			name:    "expired token",
			err:     artily.ErrTokenExpired,
			expired: true,
		},
		{
			name:      "malformed token",
			err:       artily.ErrInvalidTokenFormat,
			malformed: true,
		},
		{
			name: "decode failure is not malformed",
			err:  artily.ErrTokenDecodeFailed,
		},
		{
			name: "unrelated error matches nothing",
			err:  errors.New("connection refused"),
		},
		{
			name:    "wrapped rich error still matches",
			err:     fmt.Errorf("login failed: %w", artily.ErrAccountBlocked),
			blocked: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.blocked, artily.IsBlockedAccountError(tt.err))
			assert.Equal(t, tt.mismatch, artily.IsCredentialMismatchError(tt.err))
			assert.Equal(t, tt.duplicate, artily.IsDuplicateIdentifierError(tt.err))
			assert.Equal(t, tt.expired, artily.IsTokenExpiredError(tt.err))
			assert.Equal(t, tt.malformed, artily.IsMalformedTokenError(tt.err))
		})
	}
}
