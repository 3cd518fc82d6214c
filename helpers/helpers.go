// Package helpers holds the small primitives shared across handlers: email
// validation, id generation and HMAC hashing.
package helpers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"math/rand"
	"regexp"
)

// Permissive local part, labelled domain with a valid TLD shape.
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)

const randomCharset = "abcdefghijklmnopqrstuvwxyz0123456789"

// IsValidEmail reports whether the address matches the local@domain pattern.
func IsValidEmail(email string) bool {
	return email != "" && emailRegex.MatchString(email)
}

// Hash returns the hex encoded HMAC-SHA256 of str under the given secret.
// Used both for user id derivation (must stay deterministic) and for stored
// password hashes. Empty input yields an empty string.
func Hash(str, secret string) string {
	if str == "" {
		return ""
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(str))
	return hex.EncodeToString(mac.Sum(nil))
}

// RandomString returns n random characters from [a-z0-9]. Cart ids use 10,
// token ids use 20.
func RandomString(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = randomCharset[rand.Intn(len(randomCharset))]
	}
	return string(b)
}
