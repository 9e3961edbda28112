package auth

import "errors"

var (
	// ErrStateMismatch means the callback's state did not match the issued
	// CSRF token. The current authorization attempt is dead; the caller
	// must restart the flow.
	ErrStateMismatch = errors.New("state does not match, possible CSRF")

	// ErrMalformedTokenResponse means the platform's token exchange
	// response lacked the payvment_userid or token field.
	ErrMalformedTokenResponse = errors.New("token response missing payvment_userid or token")

	// ErrNoPendingAuthorization means CompleteAuthorization was called
	// without a preceding BeginAuthorization.
	ErrNoPendingAuthorization = errors.New("no authorization awaiting callback")
)
