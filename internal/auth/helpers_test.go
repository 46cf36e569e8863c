// ABOUTME: Shared test helpers for the auth package
// ABOUTME: Fake request, cookie recorder, and authenticator construction

package auth

import (
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/2389/warden/internal/hooks"
	"github.com/2389/warden/internal/store"
)

// fakeRequest implements Request over plain maps.
type fakeRequest struct {
	fields  map[string]string
	cookies map[string]string
	api     bool
	id      Identity
}

func (r *fakeRequest) Field(name string) (string, bool) {
	v, ok := r.fields[name]
	return v, ok
}

func (r *fakeRequest) Cookie(name string) (string, bool) {
	v, ok := r.cookies[name]
	return v, ok
}

func (r *fakeRequest) IsAPI() bool { return r.api }

func (r *fakeRequest) Identity() *Identity { return &r.id }

// cookieRecorder implements CookieSink, capturing cookies or failing on demand.
type cookieRecorder struct {
	cookies []*http.Cookie
	err     error
}

func (c *cookieRecorder) SetCookie(k *http.Cookie) error {
	if c.err != nil {
		return c.err
	}
	c.cookies = append(c.cookies, k)
	return nil
}

func (c *cookieRecorder) value(name string) string {
	for _, k := range c.cookies {
		if k.Name == name {
			return k.Value
		}
	}
	return ""
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testRig bundles a fully wired authenticator over an in-memory store.
type testRig struct {
	auth     *Authenticator
	sessions *Sessions
	salter   *Salter
	hooks    *hooks.Registry
	store    *store.Credentials
}

func newTestRig(t *testing.T, entries ...store.Credential) *testRig {
	t.Helper()

	creds, err := store.New(entries)
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}

	salter := NewSalter("test-cookie-key")
	reg := hooks.NewRegistry()
	sessions := NewSessions(creds, salter, reg, testLogger(), SessionConfig{Life: time.Hour})
	a := New(creds, salter, sessions, reg, testLogger(), Config{
		Private:   true,
		NonceLife: 12 * time.Hour,
	})

	return &testRig{auth: a, sessions: sessions, salter: salter, hooks: reg, store: creds}
}
