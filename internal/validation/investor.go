package validation

import (
	"fmt"
	"net/mail"
	"slices"
	"strings"

	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/api/request"
	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/model"
)

// ValidateCreateInvestor validates an investor creation request.
// owners is the configured relationship-owner list; when empty any owner name is accepted.
func ValidateCreateInvestor(req request.CreateInvestorRequest, owners []string) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.DisplayName) == "" {
		errors["displayName"] = "displayName is required"
	} else if len(req.DisplayName) > maxNameLength {
		errors["displayName"] = "displayName must be 100 characters or less"
	}
	if len(req.FirmName) > maxNameLength {
		errors["firmName"] = "firmName must be 100 characters or less"
	}

	validateEmail(errors, req.Email)

	if strings.TrimSpace(req.Tier) == "" {
		errors["tier"] = "tier is required"
	} else if !model.InvestorTier(req.Tier).Valid() {
		errors["tier"] = fmt.Sprintf("invalid tier: %s", req.Tier)
	}

	validateOwner(errors, req.RelationshipOwner, owners)

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateInvestor validates an investor update request.
func ValidateUpdateInvestor(req request.UpdateInvestorRequest, owners []string) error {
	errors := make(map[string]string)

	if req.DisplayName != nil {
		if strings.TrimSpace(*req.DisplayName) == "" {
			errors["displayName"] = "displayName cannot be empty"
		} else if len(*req.DisplayName) > maxNameLength {
			errors["displayName"] = "displayName must be 100 characters or less"
		}
	}
	if req.FirmName != nil && len(*req.FirmName) > maxNameLength {
		errors["firmName"] = "firmName must be 100 characters or less"
	}
	if req.Email != nil {
		validateEmail(errors, *req.Email)
	}
	if req.Tier != nil && !model.InvestorTier(*req.Tier).Valid() {
		errors["tier"] = fmt.Sprintf("invalid tier: %s", *req.Tier)
	}
	if req.RelationshipOwner != nil {
		validateOwner(errors, *req.RelationshipOwner, owners)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

func validateEmail(errors map[string]string, email string) {
	if email == "" {
		return
	}
	if _, err := mail.ParseAddress(email); err != nil {
		errors["email"] = fmt.Sprintf("invalid email: %s", email)
	}
}

func validateOwner(errors map[string]string, owner string, owners []string) {
	if owner == "" || len(owners) == 0 {
		return
	}
	if !slices.Contains(owners, owner) {
		errors["relationshipOwner"] = fmt.Sprintf("unknown relationship owner: %s", owner)
	}
}
