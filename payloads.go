package artily

import (
	validation "github.com/go-ozzo/ozzo-validation"
	goerrors "github.com/goliatone/go-errors"
	"github.com/nyaruka/phonenumbers"

	"github.com/balumaqsud/artily-client/market"
)

// defaultPhoneRegion is applied when a signup phone number has no country
// prefix.
const defaultPhoneRegion = "US"

// LoginInput carries the credentials of a login attempt.
type LoginInput struct {
	Nick     string `json:"memberNick"`
	Password string `json:"memberPassword"`
}

// Validate runs the client-side checks before the credentials ever travel.
func (r LoginInput) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Nick,
			validation.Required,
			validation.Length(3, 30),
		),
		validation.Field(
			&r.Password,
			validation.Required,
		),
	)
}

// SignUpInput carries a new member registration.
type SignUpInput struct {
	Nick     string            `json:"memberNick"`
	Password string            `json:"memberPassword"`
	Phone    string            `json:"memberPhone"`
	Type     market.MemberType `json:"memberType"`
}

// Validate runs the client-side checks: nick and password shape, member type
// whitelist, and a real parseable phone number.
func (r SignUpInput) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Nick,
			validation.Required,
			validation.Length(3, 30),
		),
		validation.Field(
			&r.Password,
			validation.Required,
			validation.Length(6, 100),
		),
		validation.Field(
			&r.Phone,
			validation.Required,
			validation.By(validatePhone),
		),
		validation.Field(
			&r.Type,
			validation.Required,
			validation.In(
				market.MemberTypeUser,
				market.MemberTypeArtist,
			),
		),
	)
}

func validatePhone(value any) error {
	raw, _ := value.(string)
	if raw == "" {
		return nil // Required already covers absence.
	}

	num, err := phonenumbers.Parse(raw, defaultPhoneRegion)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "phone number is not parseable")
	}
	if !phonenumbers.IsValidNumber(num) {
		return goerrors.New("phone number is not valid", goerrors.CategoryValidation)
	}
	return nil
}
