package request

import "github.com/shopspring/decimal"

type CreateFundRequest struct {
	Name         string          `json:"name"`
	VintageYear  int             `json:"vintageYear"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
	Status       string          `json:"status"`
}

type UpdateFundRequest struct {
	Name         *string          `json:"name,omitempty"`
	VintageYear  *int             `json:"vintageYear,omitempty"`
	TargetAmount *decimal.Decimal `json:"targetAmount,omitempty"`
	Status       *string          `json:"status,omitempty"`
}
