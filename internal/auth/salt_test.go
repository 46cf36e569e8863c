// ABOUTME: Tests for the salting transform, signing tokens, and key derivation
// ABOUTME: Verifies determinism and that secret edits rotate derived values

package auth

import (
	"testing"

	"github.com/2389/warden/internal/store"
)

func TestSalt_Deterministic(t *testing.T) {
	s := NewSalter("key")

	if s.Salt("alice") != s.Salt("alice") {
		t.Error("Salt() is not deterministic")
	}
	if s.Salt("alice") == s.Salt("bob") {
		t.Error("Salt() collides for distinct values")
	}
	if s.Salt("alice") == NewSalter("other-key").Salt("alice") {
		t.Error("Salt() ignores the process key")
	}
	if s.Salt("alice") != md5hex("alice"+"key") {
		t.Error("Salt() is not md5(value + key)")
	}
}

func TestSigningToken(t *testing.T) {
	s := NewSalter("key")

	token := s.SigningToken("alice")
	if len(token) != 10 {
		t.Errorf("SigningToken() length = %d, want 10", len(token))
	}
	if token != s.Salt("alice")[:10] {
		t.Error("SigningToken() is not the salted username prefix")
	}
	if token != s.SigningToken("alice") {
		t.Error("SigningToken() is not reproducible")
	}
}

func TestSigningToken_NoUsername(t *testing.T) {
	s := NewSalter("key")

	got := s.SigningToken("")
	if got != NoUsernameSignature {
		t.Errorf("SigningToken(\"\") = %q, want sentinel", got)
	}
}

func TestDeriveKey_TracksSecrets(t *testing.T) {
	before, _ := store.New([]store.Credential{
		{Username: "alice", Secret: "old"},
		{Username: "bob", Secret: "pw"},
	})
	after, _ := store.New([]store.Credential{
		{Username: "alice", Secret: "new"},
		{Username: "bob", Secret: "pw"},
	})

	if DeriveKey(before) != DeriveKey(before) {
		t.Error("DeriveKey() is not deterministic")
	}
	if DeriveKey(before) == DeriveKey(after) {
		t.Error("DeriveKey() unchanged after a secret edit")
	}

	// A changed key must rotate signing tokens.
	tokBefore := NewSalter(DeriveKey(before)).SigningToken("alice")
	tokAfter := NewSalter(DeriveKey(after)).SigningToken("alice")
	if tokBefore == tokAfter {
		t.Error("signing token survived a secret rotation")
	}
}
