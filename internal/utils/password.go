package utils

import (
	"golang.org/x/crypto/bcrypt" // Password hashing
)

// PasswordHasher hashes and checks passwords one way
type PasswordHasher struct {
	cost  int    // bcrypt cost
	dummy []byte // Hash compared against when the user does not exist
}

// NewPasswordHasher builds a bcrypt hasher with the given cost
func NewPasswordHasher(cost int) *PasswordHasher {
	dummy, _ := bcrypt.GenerateFromPassword([]byte("eventwave-placeholder"), cost)
	return &PasswordHasher{cost: cost, dummy: dummy}
}

// Hash returns the bcrypt hash of password
func (h *PasswordHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Matches reports whether password hashes to hash
func (h *PasswordHasher) Matches(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Burn spends the same work as a real comparison so unknown usernames take as long as known ones
func (h *PasswordHasher) Burn(password string) {
	_ = bcrypt.CompareHashAndPassword(h.dummy, []byte(password))
}
