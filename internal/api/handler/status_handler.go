package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"netsecurepro/internal/common"
)

// SecurityStatus is the fixed payload of the status API. The values are
// placeholders until a real scanning backend feeds them.
type SecurityStatus struct {
	FirewallStatus  string `json:"firewall_status"`
	LastScan        string `json:"last_scan"`
	ThreatsDetected int    `json:"threats_detected"`
	SystemHealth    string `json:"system_health"`
}

type StatusHandler struct{}

func NewStatusHandler() *StatusHandler {
	return &StatusHandler{}
}

func (h *StatusHandler) RegisterRoutes(r chi.Router) {
	r.Get("/security-status", h.securityStatus)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		common.RespondWithError(w, http.StatusNotFound, "resource not found")
	})
}

func (h *StatusHandler) securityStatus(w http.ResponseWriter, r *http.Request) {
	common.RespondWithJSON(w, http.StatusOK, SecurityStatus{
		FirewallStatus:  "active",
		LastScan:        "2023-07-15 14:30:00",
		ThreatsDetected: 0,
		SystemHealth:    "good",
	})
}
