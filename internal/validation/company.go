package validation

import (
	"fmt"
	"strings"

	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/api/request"
	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/model"
)

// ValidateCreateCompany validates a portfolio company creation request.
// A manual FMV override, when given, must be non-negative; zero is a valid override.
func ValidateCreateCompany(req request.CreateCompanyRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	} else if len(req.Name) > maxNameLength {
		errors["name"] = "name must be 100 characters or less"
	}
	if req.ManualFMVOverride != nil {
		checkNonNegative(errors, "manualFmvOverride", *req.ManualFMVOverride)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateCompany validates a portfolio company update request.
func ValidateUpdateCompany(req request.UpdateCompanyRequest) error {
	errors := make(map[string]string)

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			errors["name"] = "name cannot be empty"
		} else if len(*req.Name) > maxNameLength {
			errors["name"] = "name must be 100 characters or less"
		}
	}
	if req.ManualFMVOverride != nil {
		checkNonNegative(errors, "manualFmvOverride", *req.ManualFMVOverride)
		if req.ClearManualFMVOverride {
			errors["clearManualFmvOverride"] = "cannot set and clear the override at the same time"
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateCreateRound validates a financing round creation request.
//
// Required fields:
//   - instrumentType: SAFE, ConvertibleNote, Seed, Bridge, Other or SeriesX[-N]
//   - investmentDate: YYYY-MM-DD
//   - investedAmount: non-negative
//
// Optional fields:
//   - fundId: valid UUID
//   - shareCount: non-negative
//   - costPerShare: non-negative
func ValidateCreateRound(req request.CreateRoundRequest) error {
	errors := make(map[string]string)

	if req.FundID != nil {
		if err := ValidateUUID(*req.FundID); err != nil {
			errors["fundId"] = err.Error()
		}
	}

	validateInstrument(errors, req.InstrumentType)

	validateDate(errors, "investmentDate", req.InvestmentDate)

	checkNonNegative(errors, "investedAmount", req.InvestedAmount)

	if req.ShareCount != nil && *req.ShareCount < 0 {
		errors["shareCount"] = "shareCount cannot be negative"
	}
	if req.CostPerShare != nil {
		checkNonNegative(errors, "costPerShare", *req.CostPerShare)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateRound validates a financing round update request.
// All fields are optional, but if provided, they must meet the same constraints as create.
func ValidateUpdateRound(req request.UpdateRoundRequest) error {
	errors := make(map[string]string)

	if req.FundID != nil {
		if err := ValidateUUID(*req.FundID); err != nil {
			errors["fundId"] = err.Error()
		}
		if req.ClearFund {
			errors["clearFund"] = "cannot set and clear the fund at the same time"
		}
	}
	if req.InstrumentType != nil {
		validateInstrument(errors, *req.InstrumentType)
	}
	if req.InvestmentDate != nil {
		validateDate(errors, "investmentDate", *req.InvestmentDate)
	}
	if req.InvestedAmount != nil {
		checkNonNegative(errors, "investedAmount", *req.InvestedAmount)
	}
	if req.ShareCount != nil && *req.ShareCount < 0 {
		errors["shareCount"] = "shareCount cannot be negative"
	}
	if req.CostPerShare != nil {
		checkNonNegative(errors, "costPerShare", *req.CostPerShare)
		if req.ClearCostPerShare {
			errors["clearCostPerShare"] = "cannot set and clear costPerShare at the same time"
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

func validateInstrument(errors map[string]string, instrument string) {
	if strings.TrimSpace(instrument) == "" {
		errors["instrumentType"] = "instrumentType is required"
	} else if !model.InstrumentType(instrument).Valid() {
		errors["instrumentType"] = fmt.Sprintf("invalid instrument type: %s", instrument)
	}
}
