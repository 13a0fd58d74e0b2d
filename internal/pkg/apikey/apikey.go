package apikey

import (
	"crypto/rand"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"

	"lastbite/internal/pkg/errs"
)

const keyBytes = 16

// Generate returns a new merchant API key. The plaintext is shown to the
// caller exactly once at registration; only the bcrypt hash is persisted.
func Generate() (string, error) {
	buf := make([]byte, keyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", errs.Wrap(err, "failed to generate api key")
	}
	return "KEY_" + hex.EncodeToString(buf), nil
}

func Hash(key string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", errs.Wrap(err, "failed to hash api key")
	}
	return string(hashed), nil
}

// Verify reports whether key matches the stored hash.
func Verify(hash, key string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)) == nil
}
