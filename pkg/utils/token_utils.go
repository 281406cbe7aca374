package utils

import (
	"crypto/subtle"
	"strings"
)

// ExtractBearerToken returns the token of an "Authorization: Bearer <token>" header value.
// The scheme is matched case-insensitively; anything else yields "".
func ExtractBearerToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// SecureCompare reports whether a and b are equal in constant time.
func SecureCompare(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
