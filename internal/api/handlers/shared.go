package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/api/response"
	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/apperrors"
	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/validation"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// parseJSON decodes the request body into T. Unknown fields are rejected.
func parseJSON[T any](r *http.Request) (T, error) {
	var req T
	if r.Body == nil {
		return req, errors.New("request body is empty")
	}

	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return req, fmt.Errorf("failed to decode request: %w", err)
	}
	return req, nil
}

// respondJSON sends a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, data any) {
	response.RespondJSON(w, status, data)
}

// respondValidationError sends 400 with the per-field messages when err is a validation.Error.
func respondValidationError(w http.ResponseWriter, err error) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		response.RespondError(w, http.StatusBadRequest, "validation failed", verr.Fields)
		return
	}
	response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
}

var notFoundErrors = []error{
	apperrors.ErrFundNotFound,
	apperrors.ErrCompanyNotFound,
	apperrors.ErrRoundNotFound,
	apperrors.ErrInvestorNotFound,
	apperrors.ErrCommitmentNotFound,
	apperrors.ErrDistributionNotFound,
}

// respondServiceError maps service errors to HTTP statuses. Anything unrecognized is a 500
// reported under fallback.
func respondServiceError(w http.ResponseWriter, err error, fallback string) {
	for _, nf := range notFoundErrors {
		if errors.Is(err, nf) {
			response.RespondError(w, http.StatusNotFound, nf.Error(), err.Error())
			return
		}
	}

	switch {
	case errors.Is(err, apperrors.ErrDuplicateCommitment):
		response.RespondError(w, http.StatusConflict, apperrors.ErrDuplicateCommitment.Error(), err.Error())
	case errors.Is(err, apperrors.ErrDuplicateEntry):
		response.RespondError(w, http.StatusConflict, apperrors.ErrDuplicateEntry.Error(), err.Error())
	case errors.Is(err, apperrors.ErrInvalidScope):
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidScope.Error(), err.Error())
	default:
		response.RespondError(w, http.StatusInternalServerError, fallback, err.Error())
	}
}
