package handler

import (
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"netsecurepro/internal/api/middleware"
	"netsecurepro/internal/api/view"
	"netsecurepro/internal/app/service"
	"netsecurepro/internal/common/security"
)

const (
	loginTitle    = "Login - NetSecurePro"
	registerTitle = "Register - NetSecurePro"
)

type AuthHandler struct {
	authService *service.AuthService
	renderer    *view.Renderer
}

func NewAuthHandler(authService *service.AuthService, renderer *view.Renderer) *AuthHandler {
	return &AuthHandler{authService: authService, renderer: renderer}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Get("/login", h.loginForm)
	r.Post("/login", h.login)
	r.Get("/register", h.registerForm)
	r.Post("/register", h.register)
	r.Get("/logout", h.logout)
}

func (h *AuthHandler) loginForm(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, http.StatusOK, "login.html", loginTitle, loginData(r))
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	req := service.LoginRequest{
		Username: r.FormValue("username"),
		Password: r.FormValue("password"),
	}

	user, err := h.authService.Login(r.Context(), req, clientIP(r))
	if err != nil {
		// One message for every failure cause, so usernames cannot be
		// enumerated from the response.
		h.renderer.Render(w, r, http.StatusOK, "login.html", loginTitle, loginData(r),
			view.Flash{Category: "danger", Message: "Invalid credentials. Please try again."})
		return
	}

	token, err := security.GenerateSessionToken(user.ID)
	if err != nil {
		slog.Error("failed to issue session token", "user_id", user.ID, "error", err)
		h.renderer.Render(w, r, http.StatusInternalServerError, "login.html", loginTitle, loginData(r),
			view.Flash{Category: "danger", Message: "An error occurred. Please try again."})
		return
	}

	http.SetCookie(w, security.SessionCookie(token))
	view.AddFlash(w, "success", "Login successful!")
	http.Redirect(w, r, safeNextTarget(r), http.StatusFound)
}

func (h *AuthHandler) registerForm(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, http.StatusOK, "register.html", registerTitle, nil)
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	req := service.RegisterRequest{
		Username:        r.FormValue("username"),
		Email:           r.FormValue("email"),
		Password:        r.FormValue("password"),
		ConfirmPassword: r.FormValue("confirm_password"),
	}

	_, err := h.authService.Register(r.Context(), req)
	switch {
	case err == nil:
		view.AddFlash(w, "success", "Registration successful! You can now log in.")
		http.Redirect(w, r, "/login", http.StatusFound)
	case errors.Is(err, service.ErrPasswordMismatch):
		h.renderer.Render(w, r, http.StatusOK, "register.html", registerTitle, nil,
			view.Flash{Category: "danger", Message: "Passwords do not match."})
	case errors.Is(err, service.ErrUserExists):
		h.renderer.Render(w, r, http.StatusOK, "register.html", registerTitle, nil,
			view.Flash{Category: "danger", Message: "That username or email address is already taken."})
	default:
		slog.Error("registration failed", "username", req.Username, "error", err)
		h.renderer.Render(w, r, http.StatusOK, "register.html", registerTitle, nil,
			view.Flash{Category: "danger", Message: "An error occurred during registration. Please try again."})
	}
}

// logout is idempotent: calling it while anonymous still clears the cookie
// and redirects home.
func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	if user, ok := middleware.CurrentUser(r.Context()); ok {
		security.LogSecurityEvent(r.Context(), "logout", "user logged out: "+user.Username, user.ID, clientIP(r))
	}
	http.SetCookie(w, security.ClearSessionCookie())
	view.AddFlash(w, "info", "You have been logged out.")
	http.Redirect(w, r, "/", http.StatusFound)
}

func loginData(r *http.Request) map[string]string {
	return map[string]string{"Next": r.FormValue("next")}
}

// safeNextTarget follows the post-login "next" parameter only when it is an
// in-app path; anything absolute or scheme-relative falls back to home to
// avoid an open redirect.
func safeNextTarget(r *http.Request) string {
	next := r.FormValue("next")
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return "/"
	}
	return next
}

func clientIP(r *http.Request) string {
	// chi's RealIP middleware has already folded X-Forwarded-For into
	// RemoteAddr, which may or may not carry a port.
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
