package common

// User-facing messages shared by the server handlers and the CLI. The
// sign-in failure message is identical for unknown emails and wrong
// passwords on purpose.
const (
	MsgInvalidEmailOrPassword = "Invalid email or password"
	MsgSignInRequired         = "You need to sign in or sign up before continuing."
	MsgInvalidRequestBody     = "Invalid request body"
)

// AuthorizationHeader is the HTTP header that carries the session token in
// bearer mode, both on responses (issuance) and requests (attachment).
const AuthorizationHeader = "Authorization"
