package handlers

import (
	"net/http"

	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/api/response"
	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/apperrors"
	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/service"
	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/validation"
)

// PortfolioHandler handles HTTP requests for the portfolio valuation endpoints.
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler with the provided service dependency.
func NewPortfolioHandler(portfolioService *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
	}
}

// PortfolioSummary handles GET requests for the valued portfolio.
// With ?fund= only rounds tagged with that fund count.
//
// Endpoint: GET /api/portfolio/summary?fund={uuid}
// Response: 200 OK with PortfolioSummary
// Error: 400 Bad Request on malformed fund id, 404 Not Found if the fund does not exist
func (h *PortfolioHandler) PortfolioSummary(w http.ResponseWriter, r *http.Request) {
	fundID := r.URL.Query().Get("fund")
	if fundID != "" {
		if err := validation.ValidateUUID(fundID); err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid fund ID", err.Error())
			return
		}
	}

	summary, err := h.portfolioService.GetPortfolioSummary(r.Context(), fundID)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToGetPortfolioSummary.Error())
		return
	}

	respondJSON(w, http.StatusOK, summary)
}
