// ABOUTME: Request field source interface and the per-request identity latch
// ABOUTME: The orchestrator sees requests only through this abstraction

package auth

// Request is the field source for one authentication pass: submitted form
// or query fields, presented cookies, and the caller-context flag. The HTTP
// adapter implements it over the real request; tests implement it directly.
type Request interface {
	// Field returns a submitted field value and whether the field was
	// present at all. Presence and emptiness are distinct: strategy
	// selection depends on both.
	Field(name string) (value string, present bool)

	// Cookie returns a presented cookie value and whether it exists.
	Cookie(name string) (value string, present bool)

	// IsAPI reports whether this is a programmatic caller. API requests
	// never receive session cookies and cannot use cookie auth.
	IsAPI() bool

	// Identity returns this request's identity latch.
	Identity() *Identity
}

// Identity is the per-request authenticated-user latch. The first Set wins;
// later calls are no-ops, so nothing can change an established identity for
// the remainder of the request. It is request-scoped and never shared, so
// no locking is involved.
type Identity struct {
	user string
	set  bool
}

// Set latches username as the authenticated identity. A no-op once set.
func (id *Identity) Set(username string) {
	if id.set {
		return
	}
	id.user = username
	id.set = true
}

// User returns the latched username, or "" when unauthenticated.
func (id *Identity) User() string {
	return id.user
}

// Authenticated reports whether an identity has been latched.
func (id *Identity) Authenticated() bool {
	return id.set
}
