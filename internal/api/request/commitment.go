package request

import "github.com/shopspring/decimal"

type CreateCommitmentRequest struct {
	InvestorID       string          `json:"investorId"`
	FundID           string          `json:"fundId"`
	Stage            string          `json:"stage"`
	CommitmentAmount decimal.Decimal `json:"commitmentAmount"`
	FundedAmount     decimal.Decimal `json:"fundedAmount"`
	CurrentNAV       decimal.Decimal `json:"currentNav"`
}

type UpdateCommitmentRequest struct {
	Stage            *string          `json:"stage,omitempty"`
	CommitmentAmount *decimal.Decimal `json:"commitmentAmount,omitempty"`
	FundedAmount     *decimal.Decimal `json:"fundedAmount,omitempty"`
	CurrentNAV       *decimal.Decimal `json:"currentNav,omitempty"`
}

type UpdateStageRequest struct {
	Stage string `json:"stage"`
}

type CreateDistributionRequest struct {
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
	Type   string          `json:"type"`
}
