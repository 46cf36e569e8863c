// ABOUTME: Authentication orchestrator selecting one strategy per request
// ABOUTME: Strategy order: signature+timestamp, signature, password, cookie

package auth

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/2389/warden/internal/hooks"
	"github.com/2389/warden/internal/store"
)

// Config holds the orchestrator's policy knobs.
type Config struct {
	// Private gates whether sessions require an identity at all. When
	// false, IsValidSession is trivially true.
	Private bool

	// NonceLife is the freshness window for timestamped signatures.
	NonceLife time.Duration
}

// Result is the outcome of one authentication pass. Negative outcomes are
// values with a human-readable message, never errors.
type Result struct {
	OK      bool
	User    string
	Message string

	// LoggedOut marks a logout request that was honored.
	LoggedOut bool

	// Redirect tells an interactive caller to redirect after a
	// password-form login, so a page reload does not resubmit the form.
	// PlaintextSecret additionally asks for the cleartext-password
	// notice to ride along on that redirect.
	Redirect        bool
	PlaintextSecret bool
}

// Authenticator runs the per-request authentication decision. It is
// stateless across calls; all per-request state lives on the Request.
type Authenticator struct {
	store    store.Store
	salter   *Salter
	sessions *Sessions
	hooks    *hooks.Registry
	logger   *slog.Logger
	cfg      Config
	now      func() time.Time
}

// New creates an Authenticator.
func New(st store.Store, salter *Salter, sessions *Sessions, reg *hooks.Registry, logger *slog.Logger, cfg Config) *Authenticator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Authenticator{
		store:    st,
		salter:   salter,
		sessions: sessions,
		hooks:    reg,
		logger:   logger,
		cfg:      cfg,
		now:      time.Now,
	}
}

// Authenticate runs one authentication pass over req. The sink receives
// session cookies for interactive requests; API requests never get cookies,
// so API callers may pass nil.
func (a *Authenticator) Authenticate(req Request, cookies CookieSink) Result {
	// Registered hooks may short-circuit the whole decision. A bool
	// replacement is the verdict; a string replacement is a failure
	// message. Hooks that answer true are expected to have latched the
	// identity themselves.
	if pre := a.hooks.ApplyFilter(FilterShuntIsValidUser, nil, req); pre != nil {
		switch v := pre.(type) {
		case bool:
			if v {
				return Result{OK: true, User: req.Identity().User()}
			}
			return Result{Message: MsgPleaseLogIn}
		case string:
			return Result{Message: v}
		}
	}

	if action, _ := req.Field(FieldAction); action == "logout" {
		a.hooks.DoAction(ActionLogout, req.Identity().User())
		if cookies != nil {
			a.sessions.Clear(cookies)
		}
		return Result{LoggedOut: true, Message: MsgLoggedOut}
	}

	a.hooks.DoAction(ActionPreLogin, req)

	sig, sigPresent := req.Field(FieldSignature)
	ts, tsPresent := req.Field(FieldTimestamp)
	username, userPresent := req.Field(FieldUsername)
	password, passPresent := req.Field(FieldPassword)
	_, cookieUserPresent := req.Cookie(CookieUsername)
	_, cookieSecretPresent := req.Cookie(CookiePassword)

	// First matching branch wins; no fallthrough.
	verdict := false
	switch {
	case req.IsAPI() && sigPresent && sig != "" && tsPresent && ts != "":
		a.hooks.DoAction(ActionPreLoginSignatureTimestamp, req)
		verdict = a.checkSignatureTimestamp(req, sig, ts)

	case req.IsAPI() && sigPresent && sig != "" && !tsPresent:
		a.hooks.DoAction(ActionPreLoginSignature, req)
		verdict = a.checkSignature(req, sig)

	case userPresent && passPresent && username != "" && password != "":
		a.hooks.DoAction(ActionPreLoginUsernamePassword, req)
		verdict = a.checkUsernamePassword(req, username, password)

	case !req.IsAPI() && cookieUserPresent && cookieSecretPresent:
		a.hooks.DoAction(ActionPreLoginCookie, req)
		verdict = a.checkCookie(req)
	}

	// Regardless of the local computation, the filter has the final word.
	if v, ok := a.hooks.ApplyFilter(FilterIsValidUser, verdict, req).(bool); ok {
		verdict = v
	}

	if verdict {
		a.hooks.DoAction(ActionLogin, req.Identity().User())

		res := Result{OK: true, User: req.Identity().User()}
		if !req.IsAPI() {
			// (Re)issue the session cookie pair. Hooks that forced
			// the verdict without latching an identity get no
			// cookie, since there is no user to issue one for.
			if cookies != nil && req.Identity().Authenticated() {
				a.sessions.Issue(cookies, req.Identity().User())
			}
			if userPresent && passPresent {
				res.Redirect = true
				res.PlaintextSecret = !IsHashed(a.store, username)
			}
		}
		return res
	}

	a.hooks.DoAction(ActionLoginFailed, req)

	credentialsSupplied := userPresent || passPresent
	a.logger.Warn("auth failure",
		"api", req.IsAPI(),
		"credentials_supplied", credentialsSupplied,
	)
	if credentialsSupplied {
		return Result{Message: MsgInvalidCredentials}
	}
	return Result{Message: MsgPleaseLogIn}
}

// IsValidSession reports whether the request's session passes the privacy
// policy: trivially true on a public instance, otherwise true iff an
// identity has been latched.
func (a *Authenticator) IsValidSession(req Request) bool {
	if !a.cfg.Private {
		return true
	}
	return req.Identity().Authenticated()
}

// SigningToken exposes the per-user signing secret. An empty username
// yields the NoUsernameSignature sentinel.
func (a *Authenticator) SigningToken(username string) string {
	return a.salter.SigningToken(username)
}

// checkSignatureTimestamp tries every credential for a signature of the
// form md5(timestamp + token) or md5(token + timestamp). Legacy clients
// concatenate in either order, so both are accepted. The timestamp must
// additionally be fresh.
func (a *Authenticator) checkSignatureTimestamp(req Request, sig, ts string) bool {
	claimed, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		// A non-numeric timestamp can never be fresh.
		claimed = 0
	}

	fresh := Fresh(claimed, a.now().Unix(), a.cfg.NonceLife)
	if v, ok := a.hooks.ApplyFilter(FilterCheckTimestamp, fresh, ts).(bool); ok {
		fresh = v
	}

	for _, c := range a.store.All() {
		token := a.salter.SigningToken(c.Username)
		if (md5hex(ts+token) == sig || md5hex(token+ts) == sig) && fresh {
			req.Identity().Set(c.Username)
			return true
		}
	}
	return false
}

// checkSignature tries every credential for a bare signing token match.
// No time window applies; this is the weaker legacy mode.
func (a *Authenticator) checkSignature(req Request, sig string) bool {
	for _, c := range a.store.All() {
		if a.salter.SigningToken(c.Username) == sig {
			req.Identity().Set(c.Username)
			return true
		}
	}
	return false
}

// checkUsernamePassword verifies a submitted username/password pair.
func (a *Authenticator) checkUsernamePassword(req Request, username, password string) bool {
	if !VerifyPassword(a.store, username, password) {
		return false
	}
	req.Identity().Set(username)
	return true
}

// checkCookie validates the presented session cookie pair.
func (a *Authenticator) checkCookie(req Request) bool {
	cookieUser, _ := req.Cookie(CookieUsername)
	cookieSecret, _ := req.Cookie(CookiePassword)

	username, ok := a.sessions.Match(cookieUser, cookieSecret)
	if !ok {
		return false
	}
	req.Identity().Set(username)
	return true
}
