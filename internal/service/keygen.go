package service

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"
)

// APIKeyPrefix marks landing page keys.
const APIKeyPrefix = "lp_"

// GenerateAPIKey returns a new plaintext key: the prefix and 32 hex characters.
func GenerateAPIKey() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("reading random bytes: %w", err)
	}
	return APIKeyPrefix + hex.EncodeToString(b), nil
}

// HashAPIKey is the hex SHA-256 digest stored in place of the key.
func HashAPIKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

func VerifyAPIKey(key, hash string) bool {
	computed := HashAPIKey(key)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(hash)) == 1
}

// BearerKey extracts the key from an Authorization header value.
func BearerKey(header string) string {
	header = strings.TrimSpace(header)
	if len(header) >= 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}
