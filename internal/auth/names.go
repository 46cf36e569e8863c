// ABOUTME: Extension point, field, and cookie name constants
// ABOUTME: Shared vocabulary between the core, the hooks registry, and adapters

package auth

// Filter extension points. Filters may replace the value they receive;
// callbacks without an opinion pass it through.
const (
	// FilterShuntIsValidUser runs before anything else; any non-nil
	// replacement short-circuits the whole decision.
	FilterShuntIsValidUser = "shunt_is_valid_user"

	// FilterIsValidUser receives the raw strategy verdict and has the
	// final word.
	FilterIsValidUser = "is_valid_user"

	// FilterCheckTimestamp may veto or force the freshness result.
	FilterCheckTimestamp = "check_timestamp"

	FilterCookieDomain   = "setcookie_domain"
	FilterCookieSecure   = "setcookie_secure"
	FilterCookieHTTPOnly = "setcookie_httponly"
)

// Action extension points, fired as notifications.
const (
	ActionPreLogin                   = "pre_login"
	ActionPreLoginSignatureTimestamp = "pre_login_signature_timestamp"
	ActionPreLoginSignature          = "pre_login_signature"
	ActionPreLoginUsernamePassword   = "pre_login_username_password"
	ActionPreLoginCookie             = "pre_login_cookie"
	ActionLogin                      = "login"
	ActionLoginFailed                = "login_failed"
	ActionLogout                     = "logout"
	ActionCookieSetFailed            = "setcookie_failed"
)

// Submitted field names understood by the orchestrator.
const (
	FieldUsername  = "username"
	FieldPassword  = "password"
	FieldSignature = "signature"
	FieldTimestamp = "timestamp"
	FieldAction    = "action"

	// FieldBearer carries a bearer token surfaced by the transport
	// adapter (from the Authorization header); consumed only by the
	// bearer shunt, never by the four core strategies.
	FieldBearer = "bearer"
)

// Session cookie names.
const (
	CookieUsername = "warden_username"
	CookiePassword = "warden_password"
)

// Human-readable outcome messages.
const (
	MsgInvalidCredentials = "Invalid username or password"
	MsgPleaseLogIn        = "Please log in"
	MsgLoggedOut          = "Logged out successfully"
)
