// Package password implements the password matcher with bcrypt.
package password

import "golang.org/x/crypto/bcrypt"

// BcryptMatcher hashes and verifies passwords with bcrypt at a fixed cost.
type BcryptMatcher struct {
	cost int
}

func NewBcryptMatcher(cost int) *BcryptMatcher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptMatcher{cost: cost}
}

func (m *BcryptMatcher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), m.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (m *BcryptMatcher) Verify(plaintext, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(plaintext)) == nil
}
