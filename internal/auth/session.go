// ABOUTME: Session cookie issuance, invalidation, and cookie-pair validation
// ABOUTME: Cookie values are salted transforms compared, never decrypted

package auth

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/2389/warden/internal/hooks"
	"github.com/2389/warden/internal/store"
)

// CookieSink receives outbound session cookies. Implementations report an
// error when the cookie can no longer be delivered, typically because
// response output has already begun.
type CookieSink interface {
	SetCookie(c *http.Cookie) error
}

// SessionConfig holds session cookie policy.
type SessionConfig struct {
	Life   time.Duration
	Domain string
	Secure bool
}

// Sessions issues and clears the session cookie pair and validates a
// presented pair against the credential store.
type Sessions struct {
	store  store.Store
	salter *Salter
	hooks  *hooks.Registry
	logger *slog.Logger
	cfg    SessionConfig
	now    func() time.Time
}

// NewSessions creates a session cookie manager.
func NewSessions(st store.Store, salter *Salter, reg *hooks.Registry, logger *slog.Logger, cfg SessionConfig) *Sessions {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sessions{
		store:  st,
		salter: salter,
		hooks:  reg,
		logger: logger,
		cfg:    cfg,
		now:    time.Now,
	}
}

// Issue sets the session cookie pair for username: the salted username and
// salted stored secret, expiring after the configured lifetime.
//
// The username must exist in the store. A miss means the orchestrator and
// the store have desynchronized, which is an internal consistency violation,
// so Issue panics rather than degrading into a bad cookie.
func (s *Sessions) Issue(sink CookieSink, username string) {
	secret, ok := s.store.Lookup(username)
	if !ok {
		panic("auth: issuing session cookie for unknown user " + username)
	}

	expires := s.now().Add(s.cfg.Life)
	s.write(sink, username, s.salter.Salt(username), s.salter.Salt(secret), expires)
}

// Clear logically deletes the session: both cookies get the salted empty
// value and an expiry in the past. Deletion is by expiry, not by relying on
// the replaced values alone.
func (s *Sessions) Clear(sink CookieSink) {
	expires := s.now().Add(-time.Hour)
	s.write(sink, "", s.salter.Salt(""), s.salter.Salt(""), expires)
}

// Match checks a presented cookie pair against the store: valid iff
// re-salting some entry's username and secret reproduces the pair exactly.
// Returns the matching username; iteration order breaks any tie.
func (s *Sessions) Match(cookieUser, cookieSecret string) (string, bool) {
	for _, c := range s.store.All() {
		if s.salter.Salt(c.Username) == cookieUser && s.salter.Salt(c.Secret) == cookieSecret {
			return c.Username, true
		}
	}
	return "", false
}

// write delivers both cookies through the sink, applying the attribute
// filters. Delivery failure is an environment problem, not an auth failure:
// it fires setcookie_failed and is otherwise swallowed.
func (s *Sessions) write(sink CookieSink, username, userValue, secretValue string, expires time.Time) {
	domain, _ := s.hooks.ApplyFilter(FilterCookieDomain, s.cfg.Domain).(string)
	secure, _ := s.hooks.ApplyFilter(FilterCookieSecure, s.cfg.Secure).(bool)
	httpOnly, _ := s.hooks.ApplyFilter(FilterCookieHTTPOnly, true).(bool)

	pair := []*http.Cookie{
		{Name: CookieUsername, Value: userValue},
		{Name: CookiePassword, Value: secretValue},
	}
	for _, c := range pair {
		c.Path = "/"
		c.Domain = domain
		c.Expires = expires
		c.Secure = secure
		c.HttpOnly = httpOnly
		c.SameSite = http.SameSiteLaxMode

		if err := sink.SetCookie(c); err != nil {
			s.hooks.DoAction(ActionCookieSetFailed, username)
			s.logger.Warn("session cookie not set", "user", username, "cookie", c.Name, "error", err)
			return
		}
	}
}
