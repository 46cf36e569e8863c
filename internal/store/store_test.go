// ABOUTME: Unit tests for the ordered credential list
// ABOUTME: Covers lookup, ordering, and duplicate rejection

package store

import "testing"

func TestNew_LookupAndOrder(t *testing.T) {
	creds, err := New([]Credential{
		{Username: "alice", Secret: "secret123"},
		{Username: "bob", Secret: "md5:12345:0123456789abcdef0123456789abcdef"},
		{Username: "carol", Secret: "hunter2"},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	secret, ok := creds.Lookup("bob")
	if !ok {
		t.Fatal("Lookup(bob) not found")
	}
	if secret != "md5:12345:0123456789abcdef0123456789abcdef" {
		t.Errorf("Lookup(bob) = %q", secret)
	}

	if _, ok := creds.Lookup("mallory"); ok {
		t.Error("Lookup(mallory) should not be found")
	}

	all := creds.All()
	want := []string{"alice", "bob", "carol"}
	if len(all) != len(want) {
		t.Fatalf("All() returned %d entries, want %d", len(all), len(want))
	}
	for i, u := range want {
		if all[i].Username != u {
			t.Errorf("All()[%d].Username = %q, want %q", i, all[i].Username, u)
		}
	}
}

func TestNew_DuplicateUsername(t *testing.T) {
	_, err := New([]Credential{
		{Username: "alice", Secret: "a"},
		{Username: "alice", Secret: "b"},
	})
	if err == nil {
		t.Fatal("New() with duplicate username should fail")
	}
}

func TestNew_EmptyUsername(t *testing.T) {
	_, err := New([]Credential{{Username: "", Secret: "x"}})
	if err == nil {
		t.Fatal("New() with empty username should fail")
	}
}

func TestNew_Empty(t *testing.T) {
	creds, err := New(nil)
	if err != nil {
		t.Fatalf("New(nil) error = %v", err)
	}
	if creds.Len() != 0 {
		t.Errorf("Len() = %d, want 0", creds.Len())
	}
}
