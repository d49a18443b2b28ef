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

// InvestorHandler handles HTTP requests for limited partners and their rollups.
type InvestorHandler struct {
	investorService *service.InvestorService
	owners          []string
}

// NewInvestorHandler creates a new InvestorHandler. owners is the list of accepted
// relationship owners; an empty list accepts any name.
func NewInvestorHandler(investorService *service.InvestorService, owners []string) *InvestorHandler {
	return &InvestorHandler{
		investorService: investorService,
		owners:          owners,
	}
}

// Investors handles GET requests to list investor records.
//
// Endpoint: GET /api/investor
// Response: 200 OK with array of Investor
// Error: 500 Internal Server Error if retrieval fails
func (h *InvestorHandler) Investors(w http.ResponseWriter, r *http.Request) {
	investors, err := h.investorService.GetInvestors(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveInvestors.Error(), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, investors)
}

// Directory handles GET requests for the investor directory with per-investor totals.
//
// Endpoint: GET /api/investor/rollup?partner={owner}&q={text}
// Response: 200 OK with array of InvestorRollup sorted by name
// Error: 500 Internal Server Error if aggregation fails
func (h *InvestorHandler) Directory(w http.ResponseWriter, r *http.Request) {
	filter := service.DirectoryFilter{
		Partner: r.URL.Query().Get("partner"),
		Query:   r.URL.Query().Get("q"),
	}

	rollups, err := h.investorService.GetDirectory(r.Context(), filter)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetInvestorRollup.Error(), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, rollups)
}

// GetInvestor handles GET requests for one investor record.
//
// Endpoint: GET /api/investor/{uuid}
// Response: 200 OK with Investor
// Error: 404 Not Found
func (h *InvestorHandler) GetInvestor(w http.ResponseWriter, r *http.Request) {
	investor, err := h.investorService.GetInvestor(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveInvestor.Error())
		return
	}

	respondJSON(w, http.StatusOK, investor)
}

// Rollup handles GET requests for an investor's totals across every fund.
//
// Endpoint: GET /api/investor/{uuid}/rollup
// Response: 200 OK with InvestorRollup
// Error: 404 Not Found
func (h *InvestorHandler) Rollup(w http.ResponseWriter, r *http.Request) {
	rollup, err := h.investorService.GetInvestorRollup(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToGetInvestorRollup.Error())
		return
	}

	respondJSON(w, http.StatusOK, rollup)
}

// CreateInvestor handles POST requests to add an investor.
//
// Endpoint: POST /api/investor
// Response: 201 Created with Investor
// Error: 400 Bad Request on invalid input
func (h *InvestorHandler) CreateInvestor(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateInvestorRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateInvestor(req, h.owners); err != nil {
		respondValidationError(w, err)
		return
	}

	investor, err := h.investorService.CreateInvestor(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, "failed to create investor")
		return
	}

	respondJSON(w, http.StatusCreated, investor)
}

// UpdateInvestor handles PUT requests to change an investor's contact details.
//
// Endpoint: PUT /api/investor/{uuid}
// Response: 200 OK with Investor
// Error: 400 Bad Request on invalid input, 404 Not Found
func (h *InvestorHandler) UpdateInvestor(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdateInvestorRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateInvestor(req, h.owners); err != nil {
		respondValidationError(w, err)
		return
	}

	investor, err := h.investorService.UpdateInvestor(r.Context(), chi.URLParam(r, "uuid"), req)
	if err != nil {
		respondServiceError(w, err, "failed to update investor")
		return
	}

	respondJSON(w, http.StatusOK, investor)
}

// DeleteInvestor handles DELETE requests. The investor's commitments are removed with it.
//
// Endpoint: DELETE /api/investor/{uuid}
// Response: 204 No Content
// Error: 404 Not Found
func (h *InvestorHandler) DeleteInvestor(w http.ResponseWriter, r *http.Request) {
	if err := h.investorService.DeleteInvestor(r.Context(), chi.URLParam(r, "uuid")); err != nil {
		respondServiceError(w, err, "failed to delete investor")
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
