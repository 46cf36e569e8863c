// ABOUTME: TOML file backend for the credential store
// ABOUTME: Preserves the declaration order of users via toml.MetaData

package store

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// LoadFile reads a credential file of flat `username = "secret"` TOML pairs.
// Declaration order in the file becomes the store's iteration order, which
// decides tie-breaks in cookie and signature matching.
func LoadFile(path string) (*Credentials, error) {
	var raw map[string]string
	md, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return nil, fmt.Errorf("parsing credential file %s: %w", path, err)
	}

	// md.Keys returns keys in file order; map iteration would not.
	entries := make([]Credential, 0, len(raw))
	for _, key := range md.Keys() {
		if len(key) != 1 {
			continue
		}
		username := key[0]
		secret, ok := raw[username]
		if !ok {
			continue
		}
		entries = append(entries, Credential{Username: username, Secret: secret})
	}

	creds, err := New(entries)
	if err != nil {
		return nil, fmt.Errorf("credential file %s: %w", path, err)
	}
	return creds, nil
}
