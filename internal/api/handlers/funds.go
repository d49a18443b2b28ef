package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/api/request"
	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/api/response"
	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/apperrors"
	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/service"
	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/validation"
)

// FundHandler handles HTTP requests for fund endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the FundService.
type FundHandler struct {
	fundService *service.FundService
}

// NewFundHandler creates a new FundHandler with the provided service dependency.
func NewFundHandler(fundService *service.FundService) *FundHandler {
	return &FundHandler{
		fundService: fundService,
	}
}

// Funds handles GET requests to retrieve all funds.
//
// Endpoint: GET /api/fund
// Response: 200 OK with array of Fund
// Error: 500 Internal Server Error if retrieval fails
func (h *FundHandler) Funds(w http.ResponseWriter, r *http.Request) {
	funds, err := h.fundService.GetFunds(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveFunds.Error(), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, funds)
}

// GetFund handles GET requests to retrieve a single fund.
//
// Endpoint: GET /api/fund/{uuid}
// Response: 200 OK with Fund
// Error: 404 Not Found if the fund does not exist
func (h *FundHandler) GetFund(w http.ResponseWriter, r *http.Request) {
	fund, err := h.fundService.GetFund(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveFund.Error())
		return
	}

	respondJSON(w, http.StatusOK, fund)
}

// CreateFund handles POST requests to create a fund.
//
// Endpoint: POST /api/fund
// Response: 201 Created with Fund
// Error: 400 Bad Request on invalid input, 409 Conflict if the name is taken
func (h *FundHandler) CreateFund(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateFundRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateFund(req); err != nil {
		respondValidationError(w, err)
		return
	}

	fund, err := h.fundService.CreateFund(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, "failed to create fund")
		return
	}

	respondJSON(w, http.StatusCreated, fund)
}

// UpdateFund handles PUT requests to update a fund.
//
// Endpoint: PUT /api/fund/{uuid}
// Response: 200 OK with Fund
// Error: 400 Bad Request on invalid input, 404 Not Found, 409 Conflict if the name is taken
func (h *FundHandler) UpdateFund(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdateFundRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateFund(req); err != nil {
		respondValidationError(w, err)
		return
	}

	fund, err := h.fundService.UpdateFund(r.Context(), chi.URLParam(r, "uuid"), req)
	if err != nil {
		respondServiceError(w, err, "failed to update fund")
		return
	}

	respondJSON(w, http.StatusOK, fund)
}

// DeleteFund handles DELETE requests. Commitments to the fund are removed with it.
//
// Endpoint: DELETE /api/fund/{uuid}
// Response: 204 No Content
// Error: 404 Not Found
func (h *FundHandler) DeleteFund(w http.ResponseWriter, r *http.Request) {
	if err := h.fundService.DeleteFund(r.Context(), chi.URLParam(r, "uuid")); err != nil {
		respondServiceError(w, err, "failed to delete fund")
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// AllProgress handles GET requests for the fundraising progress of every fund.
//
// Endpoint: GET /api/fund/progress?scope=all|closed
// Response: 200 OK with array of FundProgress
// Error: 400 Bad Request on unknown scope
func (h *FundHandler) AllProgress(w http.ResponseWriter, r *http.Request) {
	scope, err := service.ParseScope(r.URL.Query().Get("scope"))
	if err != nil {
		respondServiceError(w, err, "")
		return
	}

	progress, err := h.fundService.GetAllFundProgress(r.Context(), scope)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToGetFundProgress.Error())
		return
	}

	respondJSON(w, http.StatusOK, progress)
}

// Progress handles GET requests for one fund's fundraising progress.
// Percent of target is null when the target is zero.
//
// Endpoint: GET /api/fund/{uuid}/progress?scope=all|closed
// Response: 200 OK with FundProgress
// Error: 400 Bad Request on unknown scope, 404 Not Found
func (h *FundHandler) Progress(w http.ResponseWriter, r *http.Request) {
	scope, err := service.ParseScope(r.URL.Query().Get("scope"))
	if err != nil {
		respondServiceError(w, err, "")
		return
	}

	progress, err := h.fundService.GetFundProgress(r.Context(), chi.URLParam(r, "uuid"), scope)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToGetFundProgress.Error())
		return
	}

	respondJSON(w, http.StatusOK, progress)
}

// Stages handles GET requests for a fund's commitments grouped by pipeline stage.
//
// Endpoint: GET /api/fund/{uuid}/stages
// Response: 200 OK with array of StageTotal in canonical stage order
// Error: 404 Not Found
func (h *FundHandler) Stages(w http.ResponseWriter, r *http.Request) {
	stages, err := h.fundService.GetStageBreakdown(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToGetFundProgress.Error())
		return
	}

	respondJSON(w, http.StatusOK, stages)
}

// Portfolio handles GET requests for the portfolio valued through one fund's rounds.
//
// Endpoint: GET /api/fund/{uuid}/portfolio
// Response: 200 OK with PortfolioSummary
// Error: 404 Not Found
func (h *FundHandler) Portfolio(w http.ResponseWriter, r *http.Request) {
	summary, err := h.fundService.GetFundPortfolio(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToGetPortfolioSummary.Error())
		return
	}

	respondJSON(w, http.StatusOK, summary)
}
