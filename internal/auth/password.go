package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword derives a salted one-way digest of the plaintext. The cost
// factor is a design constant, not per-call configuration.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword recomputes the digest with the embedded salt and compares
// constant-time.
func VerifyPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
