package social

import "errors"

// User-visible outcome messages. Controllers surface these via the redirect
// back to the account management page; they are intentionally generic so no
// provider internals leak to the end user.
const (
	MsgProviderDenied = "You could not be authenticated."
	MsgStateMismatch  = "Login failed. Invalid OAuth2 state."
	MsgAuthFailed     = "There has been an error during authentication."
)

// Errors shared by the social services. ErrProviderUnavailable means no
// client could be obtained for the implementer; failures talking to an
// obtained client are ErrAuthentication.
var (
	ErrProviderUnavailable = errors.New("provider unavailable")
	ErrProviderDenied      = errors.New("provider denied authorization")
	ErrStateMismatch       = errors.New("oauth2 state mismatch")
	ErrAuthentication      = errors.New("authentication failed")
	ErrUnknownAccount      = errors.New("unknown account")
)
