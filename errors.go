package artily

import (
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	textCodeInvalidTokenFormat = "INVALID_TOKEN_FORMAT"
	textCodeTokenDecodeFailed  = "TOKEN_DECODE_FAILED"
	textCodeTokenExpired       = "TOKEN_EXPIRED"
	textCodeCredentialMismatch = "CREDENTIAL_MISMATCH"
	textCodeAccountBlocked     = "ACCOUNT_BLOCKED"
	textCodeIdentifierInUse    = "IDENTIFIER_IN_USE"
	textCodeStorageFailure     = "STORAGE_FAILURE"
)

// Known server rejection messages. The API reports auth failures as plain
// GraphQL error strings; the session layer matches on them to pick the
// user-facing message.
const (
	serverMsgBlocked       = "Definer: user has been blocked!"
	serverMsgNoMember      = "Definer: no member with that member nick!"
	serverMsgWrongPassword = "Definer: wrong password, please try again!"
	serverMsgNickInUse     = "Definer: member nick is already being used!"
)

// ErrInvalidTokenFormat is returned when the server hands back a token that
// is not a well formed three segment bearer token.
var ErrInvalidTokenFormat = goerrors.New("session token is not well formed", goerrors.CategoryAuth).
	WithTextCode(textCodeInvalidTokenFormat).
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenDecodeFailed is returned when a structurally sound token carries an
// unreadable payload.
var ErrTokenDecodeFailed = goerrors.New("unable to decode session token", goerrors.CategoryAuth).
	WithTextCode(textCodeTokenDecodeFailed).
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenExpired is returned when a stored token's expiry claim has passed.
var ErrTokenExpired = goerrors.New("session token has expired", goerrors.CategoryAuth).
	WithTextCode(textCodeTokenExpired).
	WithCode(goerrors.CodeUnauthorized)

// ErrCredentialMismatch is the user-facing login failure for a wrong
// identifier or password.
var ErrCredentialMismatch = goerrors.New("the nick and password do not match, please check and try again", goerrors.CategoryAuth).
	WithTextCode(textCodeCredentialMismatch).
	WithCode(goerrors.CodeUnauthorized)

// ErrAccountBlocked is the user-facing login failure for a blocked account.
var ErrAccountBlocked = goerrors.New("this account has been blocked, contact support to restore access", goerrors.CategoryAuth).
	WithTextCode(textCodeAccountBlocked).
	WithCode(goerrors.CodeForbidden)

// ErrIdentifierInUse is the user-facing signup failure when the member nick
// is taken.
var ErrIdentifierInUse = goerrors.New("that member nick is already in use, pick another one", goerrors.CategoryConflict).
	WithTextCode(textCodeIdentifierInUse).
	WithCode(goerrors.CodeConflict)

// ErrStorageFailure is returned when the persisted state backend rejects a
// write during a session change.
var ErrStorageFailure = goerrors.New("unable to persist session state", goerrors.CategoryInternal).
	WithTextCode(textCodeStorageFailure).
	WithCode(goerrors.CodeInternal)

// IsBlockedAccountError matches the server's blocked account rejection or the
// mapped client error.
func IsBlockedAccountError(err error) bool {
	if err == nil {
		return false
	}
	return hasTextCode(err, textCodeAccountBlocked) ||
		strings.Contains(err.Error(), serverMsgBlocked)
}

// IsCredentialMismatchError matches the server's unknown member and wrong
// password rejections or the mapped client error.
func IsCredentialMismatchError(err error) bool {
	if err == nil {
		return false
	}
	return hasTextCode(err, textCodeCredentialMismatch) ||
		strings.Contains(err.Error(), serverMsgNoMember) ||
		strings.Contains(err.Error(), serverMsgWrongPassword)
}

// IsDuplicateIdentifierError matches the server's taken nick rejection or the
// mapped client error.
func IsDuplicateIdentifierError(err error) bool {
	if err == nil {
		return false
	}
	return hasTextCode(err, textCodeIdentifierInUse) ||
		strings.Contains(err.Error(), serverMsgNickInUse)
}

// IsTokenExpiredError matches expiry failures from the codec.
func IsTokenExpiredError(err error) bool {
	return hasTextCode(err, textCodeTokenExpired)
}

// IsMalformedTokenError matches structural token failures.
func IsMalformedTokenError(err error) bool {
	return hasTextCode(err, textCodeInvalidTokenFormat)
}

func hasTextCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var rich *goerrors.Error
	if goerrors.As(err, &rich) {
		return rich.TextCode == code
	}
	return false
}

// mapServerError converts a raw server rejection into the matching
// user-facing error. Unrecognized rejections and transport failures pass
// through untouched.
func mapServerError(err error) error {
	switch {
	case err == nil:
		return nil
	case IsBlockedAccountError(err):
		return ErrAccountBlocked
	case IsCredentialMismatchError(err):
		return ErrCredentialMismatch
	case IsDuplicateIdentifierError(err):
		return ErrIdentifierInUse
	default:
		return err
	}
}
