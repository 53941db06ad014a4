package auth

import "golang.org/x/crypto/bcrypt"

// MinHashCost is the lowest bcrypt cost the service accepts. The configured
// cost is clamped to it.
const MinHashCost = 8

// HashPassword hashes pw with bcrypt at the given cost. The salt is embedded
// in the hash, so the same input produces a different hash every call.
func HashPassword(pw string, cost int) (string, error) {
	if cost < MinHashCost {
		cost = MinHashCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(pw), cost)
	return string(b), err
}

// CheckPassword reports whether pw matches hash. A malformed hash is a
// verify-fail, not an error.
func CheckPassword(pw, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}
