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

// CompanyHandler handles HTTP requests for portfolio companies and their financing rounds.
type CompanyHandler struct {
	companyService *service.CompanyService
}

// NewCompanyHandler creates a new CompanyHandler with the provided service dependency.
func NewCompanyHandler(companyService *service.CompanyService) *CompanyHandler {
	return &CompanyHandler{
		companyService: companyService,
	}
}

// Companies handles GET requests to list all portfolio companies with their rounds.
//
// Endpoint: GET /api/company
// Response: 200 OK with array of PortfolioCompany
// Error: 500 Internal Server Error if retrieval fails
func (h *CompanyHandler) Companies(w http.ResponseWriter, r *http.Request) {
	companies, err := h.companyService.GetCompanies(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveCompanies.Error(), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, companies)
}

// GetCompany handles GET requests for one portfolio company.
//
// Endpoint: GET /api/company/{uuid}
// Response: 200 OK with PortfolioCompany
// Error: 404 Not Found
func (h *CompanyHandler) GetCompany(w http.ResponseWriter, r *http.Request) {
	company, err := h.companyService.GetCompany(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveCompany.Error())
		return
	}

	respondJSON(w, http.StatusOK, company)
}

// Valuation handles GET requests for a company's FMV, cost basis and MOIC.
//
// Endpoint: GET /api/company/{uuid}/valuation?fund={uuid}
// Response: 200 OK with CompanyValuation
// Error: 400 Bad Request on malformed fund id, 404 Not Found
func (h *CompanyHandler) Valuation(w http.ResponseWriter, r *http.Request) {
	fundID := r.URL.Query().Get("fund")
	if fundID != "" {
		if err := validation.ValidateUUID(fundID); err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid fund ID", err.Error())
			return
		}
	}

	val, err := h.companyService.GetCompanyValuation(r.Context(), chi.URLParam(r, "uuid"), fundID)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveCompany.Error())
		return
	}

	respondJSON(w, http.StatusOK, val)
}

// CreateCompany handles POST requests to add a portfolio company.
//
// Endpoint: POST /api/company
// Response: 201 Created with PortfolioCompany
// Error: 400 Bad Request on invalid input
func (h *CompanyHandler) CreateCompany(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateCompanyRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateCompany(req); err != nil {
		respondValidationError(w, err)
		return
	}

	company, err := h.companyService.CreateCompany(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, "failed to create portfolio company")
		return
	}

	respondJSON(w, http.StatusCreated, company)
}

// UpdateCompany handles PUT requests. Setting clearManualFmvOverride drops the override.
//
// Endpoint: PUT /api/company/{uuid}
// Response: 200 OK with PortfolioCompany
// Error: 400 Bad Request on invalid input, 404 Not Found
func (h *CompanyHandler) UpdateCompany(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdateCompanyRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateCompany(req); err != nil {
		respondValidationError(w, err)
		return
	}

	company, err := h.companyService.UpdateCompany(r.Context(), chi.URLParam(r, "uuid"), req)
	if err != nil {
		respondServiceError(w, err, "failed to update portfolio company")
		return
	}

	respondJSON(w, http.StatusOK, company)
}

// DeleteCompany handles DELETE requests. The company's rounds are removed with it.
//
// Endpoint: DELETE /api/company/{uuid}
// Response: 204 No Content
// Error: 404 Not Found
func (h *CompanyHandler) DeleteCompany(w http.ResponseWriter, r *http.Request) {
	if err := h.companyService.DeleteCompany(r.Context(), chi.URLParam(r, "uuid")); err != nil {
		respondServiceError(w, err, "failed to delete portfolio company")
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// AddRound handles POST requests to record a financing round. The sequence is assigned
// by the store in insertion order.
//
// Endpoint: POST /api/company/{uuid}/round
// Response: 201 Created with FinancingRound
// Error: 400 Bad Request on invalid input, 404 Not Found for unknown company or fund
func (h *CompanyHandler) AddRound(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateRoundRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateRound(req); err != nil {
		respondValidationError(w, err)
		return
	}

	round, err := h.companyService.AddRound(r.Context(), chi.URLParam(r, "uuid"), req)
	if err != nil {
		respondServiceError(w, err, "failed to add financing round")
		return
	}

	respondJSON(w, http.StatusCreated, round)
}

// UpdateRound handles PUT requests to correct a financing round.
//
// Endpoint: PUT /api/round/{uuid}
// Response: 200 OK with FinancingRound
// Error: 400 Bad Request on invalid input, 404 Not Found
func (h *CompanyHandler) UpdateRound(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdateRoundRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateRound(req); err != nil {
		respondValidationError(w, err)
		return
	}

	round, err := h.companyService.UpdateRound(r.Context(), chi.URLParam(r, "uuid"), req)
	if err != nil {
		respondServiceError(w, err, "failed to update financing round")
		return
	}

	respondJSON(w, http.StatusOK, round)
}

// DeleteRound handles DELETE requests for a financing round.
//
// Endpoint: DELETE /api/round/{uuid}
// Response: 204 No Content
// Error: 404 Not Found
func (h *CompanyHandler) DeleteRound(w http.ResponseWriter, r *http.Request) {
	if err := h.companyService.DeleteRound(r.Context(), chi.URLParam(r, "uuid")); err != nil {
		respondServiceError(w, err, "failed to delete financing round")
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
