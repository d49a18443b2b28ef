package handlers

import (
	"net/http"

	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/api/response"
	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/apperrors"
	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/service"
)

// DashboardHandler serves the firm-wide overview.
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// Dashboard handles GET requests for the overview.
//
// Endpoint: GET /api/dashboard
// Response: 200 OK with Dashboard
// Error: 500 Internal Server Error if loading fails
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.dashboardService.GetDashboard(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetDashboard.Error(), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, dashboard)
}
