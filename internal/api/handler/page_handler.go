package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"netsecurepro/internal/api/view"
)

// PageHandler serves the static marketing pages and the error pages.
type PageHandler struct {
	renderer *view.Renderer
}

func NewPageHandler(renderer *view.Renderer) *PageHandler {
	return &PageHandler{renderer: renderer}
}

func (h *PageHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.home)
	r.Get("/about", h.about)
	r.Get("/services", h.services)
	r.Get("/contact", h.contact)
}

func (h *PageHandler) home(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, http.StatusOK, "index.html", "Home - NetSecurePro", nil)
}

func (h *PageHandler) about(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, http.StatusOK, "about.html", "About - NetSecurePro", nil)
}

func (h *PageHandler) services(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, http.StatusOK, "services.html", "Services - NetSecurePro", nil)
}

func (h *PageHandler) contact(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, http.StatusOK, "contact.html", "Contact - NetSecurePro", nil)
}

// NotFound renders the 404 page with a matching status code.
func (h *PageHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	slog.Warn("page not found", "path", r.URL.Path)
	h.renderer.Render(w, r, http.StatusNotFound, "404.html", "Page Not Found - NetSecurePro", nil)
}

// ServerError renders the 500 page. It is also the panic recovery target.
func (h *PageHandler) ServerError(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, http.StatusInternalServerError, "500.html", "Server Error - NetSecurePro", nil)
}
