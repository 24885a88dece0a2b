// internal/app/system/authutil/authutil.go

// Package authutil holds the credential primitives. Password verification
// is a stateless function over (candidate, storedHash); user records never
// carry behavior.
package authutil

import "golang.org/x/crypto/bcrypt"

// bcryptCost matches the cost the rest of the deployment's hashes were
// produced with; changing it only affects newly hashed passwords.
const bcryptCost = 10

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 6

// HashPassword returns the bcrypt hash of a plaintext password.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether plain matches the stored bcrypt hash.
func VerifyPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
