package security

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"netsecurepro/internal/platform/config"
)

// SessionCookieName is the cookie that carries the signed session token.
const SessionCookieName = "session"

var TokenAuth *jwtauth.JWTAuth

func InitSessions() {
	TokenAuth = jwtauth.New("HS256", config.AppConfig.SessionSecret, nil)
}

// GenerateSessionToken issues a signed token bound to a user identifier.
// Tokens stay valid for the configured session lifetime across browser
// restarts ("remember" semantics). The jti claim gives each issued token an
// identity of its own for security logging.
func GenerateSessionToken(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": strconv.FormatUint(uint64(userID), 10),
		"jti":     uuid.NewString(),
		"iat":     now.Unix(),
		"exp":     now.Add(config.AppConfig.SessionLifetime).Unix(),
	}
	_, tokenString, err := TokenAuth.Encode(claims)
	return tokenString, err
}

// GetUserIDFromClaims extracts the user identifier a session token was bound to.
func GetUserIDFromClaims(claims jwt.MapClaims) (uint, error) {
	raw, ok := claims["user_id"].(string)
	if !ok {
		return 0, errors.New("user_id claim is missing or not a string")
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("user_id claim is not a valid identifier")
	}
	return uint(id), nil
}

// SessionCookie wraps a session token in a cookie. The cookie is HttpOnly
// and, under the production profile, transmitted over HTTPS only.
func SessionCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(config.AppConfig.SessionLifetime.Seconds()),
		HttpOnly: true,
		Secure:   config.AppConfig.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearSessionCookie returns a cookie that expires the session immediately.
func ClearSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   config.AppConfig.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}

// TokenFromSessionCookie is a jwtauth find-token function that reads the
// session cookie. An absent cookie yields an empty token, i.e. anonymous.
func TokenFromSessionCookie(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
