package validation

import (
	"fmt"
	"strings"

	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/api/request"
	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/model"
)

// ValidateCreateCommitment validates a commitment creation request.
//
// Required fields:
//   - investorId, fundId: valid UUIDs
//
// Optional fields:
//   - stage: a pipeline stage id, defaults to "outreach"
//   - commitmentAmount, fundedAmount, currentNav: non-negative
//
// Funded amounts above the commitment are accepted; capital calls can exceed a soft pledge.
func ValidateCreateCommitment(req request.CreateCommitmentRequest) error {
	errors := make(map[string]string)

	if err := ValidateUUID(req.InvestorID); err != nil {
		errors["investorId"] = err.Error()
	}
	if err := ValidateUUID(req.FundID); err != nil {
		errors["fundId"] = err.Error()
	}
	if req.Stage != "" {
		validateStage(errors, req.Stage)
	}

	checkNonNegative(errors, "commitmentAmount", req.CommitmentAmount)
	checkNonNegative(errors, "fundedAmount", req.FundedAmount)
	checkNonNegative(errors, "currentNav", req.CurrentNAV)

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateCommitment validates a commitment update request.
func ValidateUpdateCommitment(req request.UpdateCommitmentRequest) error {
	errors := make(map[string]string)

	if req.Stage != nil {
		validateStage(errors, *req.Stage)
	}
	if req.CommitmentAmount != nil {
		checkNonNegative(errors, "commitmentAmount", *req.CommitmentAmount)
	}
	if req.FundedAmount != nil {
		checkNonNegative(errors, "fundedAmount", *req.FundedAmount)
	}
	if req.CurrentNAV != nil {
		checkNonNegative(errors, "currentNav", *req.CurrentNAV)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateStage validates a stage change. Any stage may follow any other.
func ValidateUpdateStage(req request.UpdateStageRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Stage) == "" {
		errors["stage"] = "stage is required"
	} else {
		validateStage(errors, req.Stage)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateCreateDistribution validates a distribution request.
// Amounts must be positive; a reversal is recorded by deleting the distribution.
func ValidateCreateDistribution(req request.CreateDistributionRequest) error {
	errors := make(map[string]string)

	validateDate(errors, "date", req.Date)

	if !req.Amount.IsPositive() {
		errors["amount"] = "amount must be positive"
	}

	if strings.TrimSpace(req.Type) == "" {
		errors["type"] = "type is required"
	} else if !model.DistributionType(req.Type).Valid() {
		errors["type"] = fmt.Sprintf("invalid type: %s", req.Type)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

func validateStage(errors map[string]string, stage string) {
	if _, err := model.ParsePipelineStage(stage); err != nil {
		errors["stage"] = err.Error()
	}
}
