package artily_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	artily "github.com/balumaqsud/artily-client"
	"github.com/balumaqsud/artily-client/market"
)

func TestLoginInput_Validate(t *testing.T) {
	tests := []struct {
		name  string
		input artily.LoginInput
		valid bool
	}{
		{"well formed", artily.LoginInput{Nick: "alice", Password: "secret1"}, true},
		{"missing nick", artily.LoginInput{Password: "secret1"}, false},
		{"nick too short", artily.LoginInput{Nick: "al", Password: "secret1"}, false},
		{"nick too long", artily.LoginInput{Nick: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", Password: "secret1"}, false},
		{"missing password", artily.LoginInput{Nick: "alice"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestSignUpInput_Validate(t *testing.T) {
	base := artily.SignUpInput{
		Nick:     "alice",
		Password: "secret1",
		Phone:    "2025550123",
		Type:     market.MemberTypeUser,
	}

	t.Run("well formed user", func(t *testing.T) {
		assert.NoError(t, base.Validate())
	})

	t.Run("well formed artist", func(t *testing.T) {
		input := base
		input.Type = market.MemberTypeArtist
		assert.NoError(t, input.Validate())
	})

	t.Run("international phone with prefix", func(t *testing.T) {
		input := base
		input.Phone = "+447911123456"
		assert.NoError(t, input.Validate())
	})

	t.Run("short password", func(t *testing.T) {
		input := base
		input.Password = "five5"
		assert.Error(t, input.Validate())
	})

	t.Run("admin type cannot self register", func(t *testing.T) {
		input := base
		input.Type = market.MemberTypeAdmin
		assert.Error(t, input.Validate())
	})

	t.Run("unknown type", func(t *testing.T) {
		input := base
		input.Type = "ROBOT"
		assert.Error(t, input.Validate())
	})

	t.Run("missing phone", func(t *testing.T) {
		input := base
		input.Phone = ""
		assert.Error(t, input.Validate())
	})

	t.Run("unparseable phone", func(t *testing.T) {
		input := base
		input.Phone = "not-a-number"
		assert.Error(t, input.Validate())
	})

	t.Run("implausible phone", func(t *testing.T) {
		input := base
		input.Phone = "1234"
		assert.Error(t, input.Validate())
	})
}
