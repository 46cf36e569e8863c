// ABOUTME: Credential store types and the read-only Store interface
// ABOUTME: Defines the ordered username/secret mapping the auth core consumes

package store

import "fmt"

// Credential is one username/secret pair from configuration. The secret is
// either a plaintext password or a salted hash in the md5:salt:hash format.
type Credential struct {
	Username string
	Secret   string
}

// Store is the read-only credential mapping consumed by the auth core.
// Absence of a username is a normal outcome, not a fault, so Lookup reports
// it with a boolean rather than an error.
type Store interface {
	// Lookup returns the stored secret for username.
	Lookup(username string) (secret string, ok bool)

	// All returns every credential in configuration order. The order is
	// stable for the process lifetime.
	All() []Credential
}

// Credentials is an immutable, ordered credential list. Backends load into
// it once at startup; after that it is safe for concurrent reads.
type Credentials struct {
	entries []Credential
	index   map[string]string
}

// New builds a Credentials store from entries, preserving their order.
// Duplicate or empty usernames are configuration errors.
func New(entries []Credential) (*Credentials, error) {
	index := make(map[string]string, len(entries))
	for _, e := range entries {
		if e.Username == "" {
			return nil, fmt.Errorf("credential with empty username")
		}
		if _, dup := index[e.Username]; dup {
			return nil, fmt.Errorf("duplicate username %q", e.Username)
		}
		index[e.Username] = e.Secret
	}
	return &Credentials{entries: append([]Credential(nil), entries...), index: index}, nil
}

// Lookup returns the secret stored for username.
func (c *Credentials) Lookup(username string) (string, bool) {
	secret, ok := c.index[username]
	return secret, ok
}

// All returns the credentials in configuration order.
func (c *Credentials) All() []Credential {
	return c.entries
}

// Len returns the number of stored credentials.
func (c *Credentials) Len() int {
	return len(c.entries)
}
