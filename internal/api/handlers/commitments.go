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

// CommitmentHandler handles HTTP requests for commitments, pipeline stages and distributions.
type CommitmentHandler struct {
	commitmentService *service.CommitmentService
}

// NewCommitmentHandler creates a new CommitmentHandler with the provided service dependency.
func NewCommitmentHandler(commitmentService *service.CommitmentService) *CommitmentHandler {
	return &CommitmentHandler{
		commitmentService: commitmentService,
	}
}

// Commitments handles GET requests to list commitments, optionally for one fund.
//
// Endpoint: GET /api/commitment?fund={uuid}
// Response: 200 OK with array of Commitment
// Error: 400 Bad Request on malformed fund id, 404 Not Found if the fund does not exist
func (h *CommitmentHandler) Commitments(w http.ResponseWriter, r *http.Request) {
	fundID := r.URL.Query().Get("fund")
	if fundID != "" {
		if err := validation.ValidateUUID(fundID); err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid fund ID", err.Error())
			return
		}
	}

	commitments, err := h.commitmentService.GetCommitments(r.Context(), fundID)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveCommitments.Error())
		return
	}

	respondJSON(w, http.StatusOK, commitments)
}

// GetCommitment handles GET requests for one commitment with its distributions and
// per-position DPI and TVPI.
//
// Endpoint: GET /api/commitment/{uuid}
// Response: 200 OK with CommitmentDetail
// Error: 404 Not Found
func (h *CommitmentHandler) GetCommitment(w http.ResponseWriter, r *http.Request) {
	detail, err := h.commitmentService.GetCommitment(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveCommitment.Error())
		return
	}

	respondJSON(w, http.StatusOK, detail)
}

// CreateCommitment handles POST requests to record an investor's commitment to a fund.
//
// Endpoint: POST /api/commitment
// Response: 201 Created with Commitment
// Error: 400 Bad Request on invalid input, 404 Not Found for unknown investor or fund,
// 409 Conflict if the investor already has a commitment in the fund
func (h *CommitmentHandler) CreateCommitment(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateCommitmentRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateCommitment(req); err != nil {
		respondValidationError(w, err)
		return
	}

	commitment, err := h.commitmentService.CreateCommitment(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, "failed to create commitment")
		return
	}

	respondJSON(w, http.StatusCreated, commitment)
}

// UpdateCommitment handles PUT requests to change amounts or stage.
//
// Endpoint: PUT /api/commitment/{uuid}
// Response: 200 OK with Commitment
// Error: 400 Bad Request on invalid input, 404 Not Found
func (h *CommitmentHandler) UpdateCommitment(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdateCommitmentRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateCommitment(req); err != nil {
		respondValidationError(w, err)
		return
	}

	commitment, err := h.commitmentService.UpdateCommitment(r.Context(), chi.URLParam(r, "uuid"), req)
	if err != nil {
		respondServiceError(w, err, "failed to update commitment")
		return
	}

	respondJSON(w, http.StatusOK, commitment)
}

// UpdateStage handles PUT requests that move a commitment through the pipeline.
//
// Endpoint: PUT /api/commitment/{uuid}/stage
// Response: 200 OK with Commitment
// Error: 400 Bad Request on unknown stage, 404 Not Found
func (h *CommitmentHandler) UpdateStage(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdateStageRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateStage(req); err != nil {
		respondValidationError(w, err)
		return
	}

	commitment, err := h.commitmentService.UpdateStage(r.Context(), chi.URLParam(r, "uuid"), req)
	if err != nil {
		respondServiceError(w, err, "failed to update stage")
		return
	}

	respondJSON(w, http.StatusOK, commitment)
}

// DeleteCommitment handles DELETE requests. Distributions are removed with it.
//
// Endpoint: DELETE /api/commitment/{uuid}
// Response: 204 No Content
// Error: 404 Not Found
func (h *CommitmentHandler) DeleteCommitment(w http.ResponseWriter, r *http.Request) {
	if err := h.commitmentService.DeleteCommitment(r.Context(), chi.URLParam(r, "uuid")); err != nil {
		respondServiceError(w, err, "failed to delete commitment")
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// AddDistribution handles POST requests to record cash returned on a commitment.
//
// Endpoint: POST /api/commitment/{uuid}/distribution
// Response: 201 Created with Distribution
// Error: 400 Bad Request on invalid input, 404 Not Found
func (h *CommitmentHandler) AddDistribution(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateDistributionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateDistribution(req); err != nil {
		respondValidationError(w, err)
		return
	}

	dist, err := h.commitmentService.AddDistribution(r.Context(), chi.URLParam(r, "uuid"), req)
	if err != nil {
		respondServiceError(w, err, "failed to add distribution")
		return
	}

	respondJSON(w, http.StatusCreated, dist)
}

// DeleteDistribution handles DELETE requests for a recorded distribution.
//
// Endpoint: DELETE /api/distribution/{uuid}
// Response: 204 No Content
// Error: 404 Not Found
func (h *CommitmentHandler) DeleteDistribution(w http.ResponseWriter, r *http.Request) {
	if err := h.commitmentService.DeleteDistribution(r.Context(), chi.URLParam(r, "uuid")); err != nil {
		respondServiceError(w, err, "failed to delete distribution")
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
