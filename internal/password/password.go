// Package password wraps bcrypt hashing for stored credentials.
package password

import "golang.org/x/crypto/bcrypt"

// Work factor 10. Deliberately slow; raising it invalidates nothing, new
// hashes simply get the higher cost.
const cost = 10

// Hash produces a salted bcrypt digest of the plaintext. The salt is random
// per call, so two hashes of the same plaintext differ yet both verify.
func Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches the stored hash. A wrong password
// is false, never an error.
func Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
