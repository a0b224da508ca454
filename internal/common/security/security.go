// Package security holds the stateless security helpers shared by the auth
// flow: password strength and email checks, token generation, digesting,
// constant-time comparison and security event logging.
package security

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"log/slog"
	"regexp"
	"strings"
	"time"
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// IsStrongPassword reports whether a password is at least 8 bytes long and
// contains an uppercase letter, a lowercase letter, a digit and a character
// outside [A-Za-z0-9]. Checks run in that order and stop at the first failure.
func IsStrongPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	if !strings.ContainsFunc(password, func(r rune) bool { return r >= 'A' && r <= 'Z' }) {
		return false
	}
	if !strings.ContainsFunc(password, func(r rune) bool { return r >= 'a' && r <= 'z' }) {
		return false
	}
	if !strings.ContainsFunc(password, func(r rune) bool { return r >= '0' && r <= '9' }) {
		return false
	}
	if !strings.ContainsFunc(password, func(r rune) bool {
		return !(r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	}) {
		return false
	}
	return true
}

var inputEscaper = strings.NewReplacer(
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
)

// SanitizeInput escapes the four characters most commonly abused for markup
// injection. It is deliberately narrow: exactly these substitutions, nothing
// else. Empty input yields an empty string.
func SanitizeInput(text string) string {
	if text == "" {
		return ""
	}
	return inputEscaper.Replace(text)
}

// GenerateToken returns 32 cryptographically random bytes, hex encoded.
func GenerateToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand is documented to never fail on supported platforms.
		panic("security: crypto/rand read failed: " + err.Error())
	}
	return hex.EncodeToString(b)
}

// HashData returns the SHA-256 hex digest of the UTF-8 bytes of data.
func HashData(data string) string {
	sum := sha256.Sum256([]byte(data))
	return hex.EncodeToString(sum[:])
}

// ValidateEmail reports whether email has a local@domain.tld shape. The whole
// string must match.
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// SecureCompare compares two strings in constant time with respect to their
// content, so that a mismatch position cannot be inferred from timing.
func SecureCompare(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// LogSecurityEvent emits a structured informational record for a
// security-relevant event. It is an observability hook only: the
// security_logs table is not written here. Zero userID or empty ipAddress
// mean unknown and are omitted from the record.
func LogSecurityEvent(ctx context.Context, eventType, description string, userID uint, ipAddress string) {
	attrs := []any{
		slog.String("event_type", eventType),
		slog.String("description", description),
		slog.Time("timestamp", time.Now().UTC()),
	}
	if userID != 0 {
		attrs = append(attrs, slog.Uint64("user_id", uint64(userID)))
	}
	if ipAddress != "" {
		attrs = append(attrs, slog.String("ip_address", ipAddress))
	}
	slog.InfoContext(ctx, "security event", attrs...)
}
