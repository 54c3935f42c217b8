package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/damon-houk/forex-bureau-dashboard/internal/application/service"
	"github.com/damon-houk/forex-bureau-dashboard/internal/infrastructure/logger"
	"github.com/damon-houk/forex-bureau-dashboard/internal/infrastructure/middleware"
)

// DashboardHandler serves the headline figures and the session status
type DashboardHandler struct {
	service *service.DashboardService
	logger  logger.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service *service.DashboardService, log logger.Logger) *DashboardHandler {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &DashboardHandler{
		service: service,
		logger:  log,
	}
}

// GetDashboard handles GET /api/dashboard
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	snapshot, err := h.service.ComputeSnapshot(r.Context())
	if err != nil {
		h.logger.Error("Failed to compute dashboard", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		sendErrorResponse(w, h.logger, "Failed to compute dashboard",
			err.Error(), http.StatusInternalServerError, requestID)
		return
	}

	sendJSON(w, http.StatusOK, DashboardResponse{Success: true, DashboardSnapshot: *snapshot})
}

// AuthStatus handles GET /api/auth/status
func (h *DashboardHandler) AuthStatus(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, middleware.GetIdentity(r.Context()))
}

// RegisterRoutes registers the dashboard handler routes
func (h *DashboardHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/dashboard", h.GetDashboard).Methods("GET")
	router.HandleFunc("/api/auth/status", h.AuthStatus).Methods("GET")

	h.logger.Info("Dashboard routes registered", map[string]interface{}{
		"routes": []string{
			"GET /api/dashboard",
			"GET /api/auth/status",
		},
	})
}
