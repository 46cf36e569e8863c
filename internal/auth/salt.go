// ABOUTME: Process-keyed one-way salting transform and per-user signing tokens
// ABOUTME: Key derivation ties tokens to the credential set when unconfigured

package auth

import (
	"crypto/md5"
	"encoding/hex"
	"io"

	"github.com/2389/warden/internal/store"
)

// NoUsernameSignature is returned by SigningToken when no username is
// resolvable. It is a sentinel value, not a fault: it can never equal a real
// signature, so callers treat it as a non-authenticating result.
const NoUsernameSignature = "Cannot generate auth signature: no username"

// signingTokenLen is how much of the salted username becomes the token.
const signingTokenLen = 10

// md5hex returns the lowercase hex md5 digest of s.
func md5hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

// Salter applies the deterministic, process-keyed one-way transform used
// for cookie values and signing tokens. Distinct from password-hash
// salting: this keys off process-wide secret material, not a per-value salt.
type Salter struct {
	key string
}

// NewSalter creates a Salter with the given process key.
func NewSalter(key string) *Salter {
	return &Salter{key: key}
}

// DeriveKey builds a salting key from the loaded credentials, for
// deployments that configure no explicit cookie key. Any change to a stored
// secret changes the key, which rotates every signing token and invalidates
// every outstanding session cookie.
func DeriveKey(s store.Store) string {
	h := md5.New()
	for _, c := range s.All() {
		io.WriteString(h, c.Username)
		io.WriteString(h, ":")
		io.WriteString(h, c.Secret)
		io.WriteString(h, "\n")
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Salt returns the keyed transform of value.
func (s *Salter) Salt(value string) string {
	return md5hex(value + s.key)
}

// SigningToken returns the signing token for username: the first ten
// characters of the salted username. Deterministic for a given username and
// key. An empty username yields NoUsernameSignature.
func (s *Salter) SigningToken(username string) string {
	if username == "" {
		return NoUsernameSignature
	}
	return s.Salt(username)[:signingTokenLen]
}

// APISignature computes the timestamped request signature a client sends:
// md5 of the timestamp concatenated with the signing token. The server also
// accepts the reverse concatenation order from legacy clients.
func APISignature(token, timestamp string) string {
	return md5hex(timestamp + token)
}
