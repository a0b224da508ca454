package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"netsecurepro/internal/api/middleware"
	"netsecurepro/internal/api/view"
	"netsecurepro/internal/app/service"
	"netsecurepro/internal/common"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
	renderer         *view.Renderer
}

func NewDashboardHandler(dashboardService *service.DashboardService, renderer *view.Renderer) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService, renderer: renderer}
}

// RegisterRoutes mounts the dashboard behind the auth guard.
func (h *DashboardHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.RequireAuth)
	r.Get("/", h.dashboard)
}

func (h *DashboardHandler) dashboard(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		// RequireAuth keeps this unreachable.
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	data, err := h.dashboardService.Overview(r.Context(), user.ID)
	if err != nil {
		slog.Error("failed to load dashboard", "user_id", user.ID, "error", err)
		status := common.HTTPStatusFromError(err)
		if status == http.StatusNotFound {
			h.renderer.Render(w, r, status, "404.html", "Page Not Found - NetSecurePro", nil)
			return
		}
		h.renderer.Render(w, r, http.StatusInternalServerError, "500.html", "Server Error - NetSecurePro", nil)
		return
	}

	h.renderer.Render(w, r, http.StatusOK, "dashboard.html", "Dashboard - "+user.Username, data)
}
