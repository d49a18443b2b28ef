package validation

import (
	"fmt"
	"strings"

	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/api/request"
	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/model"
)

const (
	minVintageYear = 1900
	maxVintageYear = 2200
)

// ValidateCreateFund validates a fund creation request.
//
// Required fields:
//   - name: non-empty, at most 100 characters
//   - vintageYear: a plausible calendar year
//   - targetAmount: positive
//
// status defaults to "raising" when empty.
func ValidateCreateFund(req request.CreateFundRequest) error {
	errors := make(map[string]string)

	validateFundName(errors, req.Name)
	validateVintage(errors, req.VintageYear)
	checkPositive(errors, "targetAmount", req.TargetAmount)

	if req.Status != "" && !model.FundStatus(req.Status).Valid() {
		errors["status"] = fmt.Sprintf("invalid status: %s", req.Status)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateFund validates a fund update request.
// All fields are optional, but if provided, they must meet the same constraints as create.
func ValidateUpdateFund(req request.UpdateFundRequest) error {
	errors := make(map[string]string)

	if req.Name != nil {
		validateFundName(errors, *req.Name)
	}
	if req.VintageYear != nil {
		validateVintage(errors, *req.VintageYear)
	}
	if req.TargetAmount != nil {
		checkPositive(errors, "targetAmount", *req.TargetAmount)
	}
	if req.Status != nil && !model.FundStatus(*req.Status).Valid() {
		errors["status"] = fmt.Sprintf("invalid status: %s", *req.Status)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

func validateFundName(errors map[string]string, name string) {
	if strings.TrimSpace(name) == "" {
		errors["name"] = "name is required"
	} else if len(name) > maxNameLength {
		errors["name"] = "name must be 100 characters or less"
	}
}

func validateVintage(errors map[string]string, year int) {
	if year < minVintageYear || year > maxVintageYear {
		errors["vintageYear"] = fmt.Sprintf("vintageYear must be between %d and %d", minVintageYear, maxVintageYear)
	}
}
