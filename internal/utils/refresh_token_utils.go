package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
)

const refreshTokenBytes = 32

// NewRefreshToken returns an opaque cookie-safe token. The URL alphabet has
// no '.', so the value can follow the user id in the refresh cookie.
func NewRefreshToken() (string, error) {
	b := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// HashRefreshToken generates a SHA256 hash of a raw refresh token.
func HashRefreshToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// CompareRefreshTokenHash compares a raw refresh token with its stored hash.
func CompareRefreshTokenHash(token string, storedHash string) bool {
	return subtle.ConstantTimeCompare([]byte(HashRefreshToken(token)), []byte(storedHash)) == 1
}

// JoinRefreshCookie builds the cookie value "<userID>.<rawToken>".
func JoinRefreshCookie(userID, rawToken string) string {
	return userID + "." + rawToken
}

// SplitRefreshCookie reverses JoinRefreshCookie.
func SplitRefreshCookie(value string) (userID, rawToken string, ok bool) {
	i := strings.LastIndex(value, ".")
	if i <= 0 || i == len(value)-1 {
		return "", "", false
	}
	return value[:i], value[i+1:], true
}
