package security

import (
	"bytes"
	"context"
	"encoding/hex"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsStrongPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"all criteria met", "Abcdef1!", true},
		{"lowercase only", "abcdefgh", false},
		{"empty", "", false},
		{"too short", "Abcde1!", false},
		{"missing uppercase", "abcdef1!", false},
		{"missing lowercase", "ABCDEF1!", false},
		{"missing digit", "Abcdefg!", false},
		{"missing special", "Abcdefg1", false},
		{"long and mixed", "Sup3r-Secret-Passw0rd", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsStrongPassword(tt.password))
		})
	}
}

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"script tag", "<script>", "&lt;script&gt;"},
		{"empty", "", ""},
		{"quotes", `He said "hi" and 'bye'`, "He said &quot;hi&quot; and &#x27;bye&#x27;"},
		{"ampersand untouched", "a & b", "a & b"},
		{"plain text", "hello world", "hello world"},
		{"no double escaping", "<<>>", "&lt;&lt;&gt;&gt;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeInput(tt.input))
		})
	}
}

func TestGenerateToken(t *testing.T) {
	token := GenerateToken()
	assert.Len(t, token, 64)

	_, err := hex.DecodeString(token)
	require.NoError(t, err)

	assert.NotEqual(t, token, GenerateToken(), "two tokens should never collide")
}

func TestHashData(t *testing.T) {
	// Known SHA-256("abc") vector.
	want := "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	assert.Equal(t, want, HashData("abc"))
	assert.Equal(t, HashData("abc"), HashData("abc"), "digest must be deterministic")
	assert.NotEqual(t, HashData("abc"), HashData("abd"))
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"a@b.co", true},
		{"user.name+tag@example.co.uk", true},
		{"not-an-email", false},
		{"a@b", false},
		{"a@b.c", false},
		{"@example.com", false},
		{"a@b.co extra", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateEmail(tt.email))
		})
	}
}

func TestSecureCompare(t *testing.T) {
	assert.True(t, SecureCompare("x", "x"))
	assert.False(t, SecureCompare("x", "y"))
	assert.False(t, SecureCompare("x", "xx"))
	assert.True(t, SecureCompare("", ""))
}

func TestLogSecurityEvent(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	LogSecurityEvent(context.Background(), "failed_login", "login failed for username: mallory", 42, "203.0.113.7")

	out := buf.String()
	assert.Contains(t, out, "event_type=failed_login")
	assert.Contains(t, out, "user_id=42")
	assert.Contains(t, out, "ip_address=203.0.113.7")

	buf.Reset()
	LogSecurityEvent(context.Background(), "logout", "anonymous logout", 0, "")
	out = buf.String()
	assert.Contains(t, out, "event_type=logout")
	assert.NotContains(t, out, "user_id=")
	assert.NotContains(t, out, "ip_address=")
}
