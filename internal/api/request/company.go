package request

import "github.com/shopspring/decimal"

type CreateCompanyRequest struct {
	Name              string           `json:"name"`
	Sector            string           `json:"sector"`
	ManualFMVOverride *decimal.Decimal `json:"manualFmvOverride,omitempty"`
}

// UpdateCompanyRequest changes only the fields that are set.
// ClearManualFMVOverride removes the override so the FMV follows the latest round again.
type UpdateCompanyRequest struct {
	Name                   *string          `json:"name,omitempty"`
	Sector                 *string          `json:"sector,omitempty"`
	ManualFMVOverride      *decimal.Decimal `json:"manualFmvOverride,omitempty"`
	ClearManualFMVOverride bool             `json:"clearManualFmvOverride,omitempty"`
}

// CreateRoundRequest records a round. Converted applies to SAFEs and notes only and
// defaults to true when omitted.
type CreateRoundRequest struct {
	FundID         *string          `json:"fundId,omitempty"`
	InstrumentType string           `json:"instrumentType"`
	InvestmentDate string           `json:"investmentDate"`
	InvestedAmount decimal.Decimal  `json:"investedAmount"`
	ShareCount     *int64           `json:"shareCount,omitempty"`
	CostPerShare   *decimal.Decimal `json:"costPerShare,omitempty"`
	Converted      *bool            `json:"converted,omitempty"`
}

// UpdateRoundRequest changes only the fields that are set. ClearFund untags the round.
type UpdateRoundRequest struct {
	FundID            *string          `json:"fundId,omitempty"`
	ClearFund         bool             `json:"clearFund,omitempty"`
	InstrumentType    *string          `json:"instrumentType,omitempty"`
	InvestmentDate    *string          `json:"investmentDate,omitempty"`
	InvestedAmount    *decimal.Decimal `json:"investedAmount,omitempty"`
	ShareCount        *int64           `json:"shareCount,omitempty"`
	CostPerShare      *decimal.Decimal `json:"costPerShare,omitempty"`
	ClearCostPerShare bool             `json:"clearCostPerShare,omitempty"`
	Converted         *bool            `json:"converted,omitempty"`
}
