// ABOUTME: auth.Request implementation over an incoming *http.Request
// ABOUTME: Fields come from form/query values, bearer tokens from the Authorization header

package web

import (
	"net/http"
	"strings"

	"github.com/2389/warden/internal/auth"
)

// apiPrefix marks programmatic callers: no cookie issuance, signature
// strategies allowed.
const apiPrefix = "/api/"

// request adapts an *http.Request into the auth core's field source.
type request struct {
	r  *http.Request
	id auth.Identity
}

// newRequest wraps r, parsing its form data once. Parse errors leave the
// form empty, which reads as "no fields supplied".
func newRequest(r *http.Request) *request {
	r.ParseForm()
	return &request{r: r}
}

// Field returns a submitted query/form field. The bearer pseudo-field is
// sourced from the Authorization header instead, so bearer tokens never
// collide with real form fields.
func (q *request) Field(name string) (string, bool) {
	if name == auth.FieldBearer {
		h := q.r.Header.Get("Authorization")
		if token, ok := strings.CutPrefix(h, "Bearer "); ok && token != "" {
			return token, true
		}
		return "", false
	}

	values, ok := q.r.Form[name]
	if !ok {
		return "", false
	}
	if len(values) == 0 {
		return "", true
	}
	return values[0], true
}

// Cookie returns a presented cookie value.
func (q *request) Cookie(name string) (string, bool) {
	c, err := q.r.Cookie(name)
	if err != nil {
		return "", false
	}
	return c.Value, true
}

// IsAPI reports whether the request targets the programmatic surface.
func (q *request) IsAPI() bool {
	return strings.HasPrefix(q.r.URL.Path, apiPrefix)
}

// Identity returns the per-request identity latch.
func (q *request) Identity() *auth.Identity {
	return &q.id
}
