// ABOUTME: Password verification against plaintext or salted-md5 stored secrets
// ABOUTME: Preserves the historical md5:salt:hash format and its 42-char sniff

package auth

import (
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/2389/warden/internal/store"
)

const (
	hashedPrefix    = "md5:"
	hashedSecretLen = 42
)

// IsHashedSecret reports whether a stored secret is the salted hash form
// "md5:<salt>:<hex digest>". The check is prefix plus exact total length;
// any other value is treated as plaintext, even one that happens to start
// with md5:. This fragile sniff is long-standing on-disk behavior and must
// not be tightened, since that would reclassify existing secrets.
func IsHashedSecret(secret string) bool {
	return strings.HasPrefix(secret, hashedPrefix) && len(secret) == hashedSecretLen
}

// IsHashed reports whether username's stored secret is hashed.
// Unknown usernames report false.
func IsHashed(s store.Store, username string) bool {
	secret, ok := s.Lookup(username)
	return ok && IsHashedSecret(secret)
}

// VerifyPassword checks a submitted plaintext password against username's
// stored secret. Unknown usernames fail immediately.
//
// Comparisons are plain string equality, not constant-time; the timing
// behavior is observable and kept as-is.
func VerifyPassword(s store.Store, username, submitted string) bool {
	secret, ok := s.Lookup(username)
	if !ok {
		return false
	}

	if IsHashedSecret(secret) {
		parts := strings.SplitN(secret, ":", 3)
		if len(parts) != 3 {
			return false
		}
		salt := parts[1]
		return secret == hashedPrefix+salt+":"+md5hex(salt+submitted)
	}

	return secret == submitted
}

// HashSecret produces the storable salted form of a plaintext password:
// "md5:" + salt + ":" + md5(salt + password), with a five-digit salt so the
// result is exactly 42 characters and classifies as hashed.
func HashSecret(plaintext string) string {
	salt := strconv.Itoa(rand.IntN(90000) + 10000)
	return hashedPrefix + salt + ":" + md5hex(salt+plaintext)
}
