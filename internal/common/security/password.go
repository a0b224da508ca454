package security

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword derives a salted bcrypt hash from a plaintext password. The
// random salt is embedded in the returned hash.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPasswordHash reports whether password matches the given bcrypt hash.
// bcrypt performs the comparison in constant time.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
