package auth

import (
	"crypto/rand"
	"encoding/base64"

	"golang.org/x/crypto/blake2b"

	"github.com/evops/catalog/internal/domain"
)

const refreshTokenBytes = 32

// GenerateRefreshToken creates a random refresh token. The plaintext goes to
// the client once, only the fingerprint is stored.
func GenerateRefreshToken() (plaintext string, fingerprint domain.RefreshTokenFingerprint, err error) {
	raw := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", domain.RefreshTokenFingerprint{}, err
	}
	plaintext = base64.RawURLEncoding.EncodeToString(raw)
	fingerprint, err = Fingerprint(plaintext)
	return plaintext, fingerprint, err
}

// Fingerprint returns the BLAKE2b-256 digest of a refresh token.
func Fingerprint(token string) (domain.RefreshTokenFingerprint, error) {
	sum := blake2b.Sum256([]byte(token))
	return domain.NewRefreshTokenFingerprint(sum[:])
}
