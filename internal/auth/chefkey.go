package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ChefKeyTable verifies staff access keys. The plaintext keys from config
// are hashed at construction, so only bcrypt digests live in memory. The
// fixed-key scheme itself (no expiry, no per-user scoping) is a known weak
// point inherited from the original deployment.
type ChefKeyTable struct {
	entries []chefKeyEntry
}

type chefKeyEntry struct {
	hash []byte
	name string
}

// NewChefKeyTable hashes each access key. keys maps access key to the
// chef's display name.
func NewChefKeyTable(keys map[string]string) (*ChefKeyTable, error) {
	t := &ChefKeyTable{}
	for key, name := range keys {
		hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash chef key: %w", err)
		}
		t.entries = append(t.entries, chefKeyEntry{hash: hash, name: name})
	}
	return t, nil
}

// Verify checks an access key against the table and returns the chef's
// display name on a match.
func (t *ChefKeyTable) Verify(key string) (string, bool) {
	for _, e := range t.entries {
		if bcrypt.CompareHashAndPassword(e.hash, []byte(key)) == nil {
			return e.name, true
		}
	}
	return "", false
}
