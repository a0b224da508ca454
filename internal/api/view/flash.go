package view

import (
	"net/http"
	"net/url"
	"strings"
)

const flashCookieName = "flash"

// Flash is a one-shot message shown on the next rendered page. Category is
// one of success, danger, info.
type Flash struct {
	Category string
	Message  string
}

// AddFlash queues a message for the next request, typically right before a
// redirect.
func AddFlash(w http.ResponseWriter, category, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    url.QueryEscape(category + "|" + message),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// PopFlashes returns the pending flash message, if any, and clears it.
func PopFlashes(w http.ResponseWriter, r *http.Request) []Flash {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	raw, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return nil
	}
	category, message, ok := strings.Cut(raw, "|")
	if !ok {
		return nil
	}
	return []Flash{{Category: category, Message: message}}
}
