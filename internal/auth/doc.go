// Package auth decides whether a request comes from an authenticated
// operator of a warden instance.
//
// # Authentication Strategies
//
// Exactly one of four mutually exclusive strategies runs per request,
// selected by which fields are present, in priority order:
//
//   - Signature + timestamp (API only): the signature is md5 of the
//     timestamp and the user's signing token, in either concatenation
//     order, and the timestamp must fall inside the freshness window.
//
//   - Signature only (API only): the bare signing token is presented as
//     the signature. No time bound; a deliberately weaker legacy mode.
//
//   - Username + password (API or interactive): the submitted password is
//     checked against the stored secret, which is either plaintext or the
//     salted md5:salt:hash form.
//
//   - Session cookie (interactive only): the cookie pair must reproduce
//     the salted username and secret of some stored credential.
//
// # Signing Tokens and Salting
//
// All derived values come from one keyed transform: salt(v) = md5(v + key).
// The signing token is the first ten characters of the salted username, and
// the session cookie pair is the salted username and salted secret. The key
// is either configured or derived from the credential set, so editing a
// secret rotates every token and cookie.
//
// # Extension Points
//
// Every verdict and side effect passes through the hooks registry: a shunt
// filter can replace the whole decision (the bearer token scheme plugs in
// there), the is_valid_user filter has the final word on the verdict, and
// cookie attributes and timestamp freshness are individually filterable.
// Actions fire at pre-login, per-strategy selection, login, login-failed,
// logout, and cookie-set failure.
//
// # Identity
//
// The authenticated identity is a per-request latch: the first Set wins and
// later calls are no-ops. Handlers retrieve it from the request context via
// WithIdentity/IdentityFromContext.
package auth
