// ABOUTME: Tests for HS256 bearer verification and the shunt filter
// ABOUTME: Covers valid, invalid, expired tokens and unknown users

package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/2389/warden/internal/store"
)

var bearerTestSecret = []byte("bearer-test-secret-32-bytes-long")

func TestBearerVerifier_RoundTrip(t *testing.T) {
	v := NewBearerVerifier(bearerTestSecret)

	token, err := v.Generate("alice", time.Hour)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	username, err := v.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if username != "alice" {
		t.Errorf("Verify() = %q, want alice", username)
	}
}

func TestBearerVerifier_Invalid(t *testing.T) {
	v := NewBearerVerifier(bearerTestSecret)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-jwt"},
		{
			name: "wrong secret",
			token: func() string {
				other := NewBearerVerifier([]byte("a-different-secret-entirely!!"))
				tok, _ := other.Generate("alice", time.Hour)
				return tok
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := v.Verify(tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestBearerVerifier_Expired(t *testing.T) {
	v := NewBearerVerifier(bearerTestSecret)

	token, err := v.Generate("alice", -time.Hour)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if _, err := v.Verify(token); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("Verify() error = %v, want ErrExpiredToken", err)
	}
}

func TestBearerShunt_Authenticates(t *testing.T) {
	rig := newTestRig(t, store.Credential{Username: "alice", Secret: "secret123"})
	v := NewBearerVerifier(bearerTestSecret)
	rig.hooks.AddFilter(FilterShuntIsValidUser, BearerShunt(v, rig.store, testLogger()))

	token, _ := v.Generate("alice", time.Hour)
	req := apiRequest(map[string]string{FieldBearer: token})

	res := rig.auth.Authenticate(req, nil)
	if !res.OK || res.User != "alice" {
		t.Errorf("bearer login failed: %+v", res)
	}
}

func TestBearerShunt_NoOpinionWithoutToken(t *testing.T) {
	rig := newTestRig(t, store.Credential{Username: "alice", Secret: "secret123"})
	v := NewBearerVerifier(bearerTestSecret)
	rig.hooks.AddFilter(FilterShuntIsValidUser, BearerShunt(v, rig.store, testLogger()))

	// Without a bearer field the shunt stays silent and the password
	// strategy runs normally.
	req := apiRequest(map[string]string{"username": "alice", "password": "secret123"})
	res := rig.auth.Authenticate(req, nil)
	if !res.OK || res.User != "alice" {
		t.Errorf("password login blocked by silent shunt: %+v", res)
	}
}

func TestBearerShunt_RejectsGarbageToken(t *testing.T) {
	rig := newTestRig(t, store.Credential{Username: "alice", Secret: "secret123"})
	v := NewBearerVerifier(bearerTestSecret)
	rig.hooks.AddFilter(FilterShuntIsValidUser, BearerShunt(v, rig.store, testLogger()))

	// A present-but-bogus bearer token is decided by the shunt: rejected,
	// even though valid credentials ride alongside.
	req := apiRequest(map[string]string{
		FieldBearer: "bogus",
		"username":  "alice",
		"password":  "secret123",
	})
	res := rig.auth.Authenticate(req, nil)
	if res.OK {
		t.Error("garbage bearer token did not fail the request")
	}
}

func TestBearerShunt_UnknownUser(t *testing.T) {
	rig := newTestRig(t, store.Credential{Username: "alice", Secret: "secret123"})
	v := NewBearerVerifier(bearerTestSecret)
	rig.hooks.AddFilter(FilterShuntIsValidUser, BearerShunt(v, rig.store, testLogger()))

	token, _ := v.Generate("mallory", time.Hour)
	req := apiRequest(map[string]string{FieldBearer: token})

	res := rig.auth.Authenticate(req, nil)
	if res.OK {
		t.Error("bearer token for unknown user accepted")
	}
}
