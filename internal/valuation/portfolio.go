package valuation

import (
	"github.com/shopspring/decimal"

	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/model"
)

// PortfolioSummary is the grand total across portfolio companies, optionally scoped to a fund.
type PortfolioSummary struct {
	FundID         string             `json:"fundId,omitempty"`
	Companies      []CompanyValuation `json:"companies"`
	CompanyCount   int                `json:"companyCount"`
	TotalInvested  decimal.Decimal    `json:"totalInvested"`
	TotalValue     decimal.Decimal    `json:"totalValue"`
	UnrealizedGain decimal.Decimal    `json:"unrealizedGain"`
	TotalShares    decimal.Decimal    `json:"totalShares"`
	BlendedMOIC    Ratio              `json:"blendedMoic"`
	Class          Class              `json:"class"`
}

// AggregatePortfolio sums AggregateCompany across companies.
// In a fund-scoped view companies without any round in that fund are left out of Companies.
// UnrealizedGain keeps its sign.
func AggregatePortfolio(companies []model.PortfolioCompany, fundID string) PortfolioSummary {
	summary := PortfolioSummary{
		FundID:        fundID,
		Companies:     make([]CompanyValuation, 0, len(companies)),
		TotalInvested: decimal.Zero,
		TotalValue:    decimal.Zero,
		TotalShares:   decimal.Zero,
	}

	for _, c := range companies {
		cv := AggregateCompany(c, fundID)
		if fundID != "" && len(cv.Rounds) == 0 {
			continue
		}
		summary.Companies = append(summary.Companies, cv)
		summary.TotalInvested = summary.TotalInvested.Add(cv.Invested)
		summary.TotalValue = summary.TotalValue.Add(cv.Value)
		summary.TotalShares = summary.TotalShares.Add(cv.Shares)
	}

	summary.CompanyCount = len(summary.Companies)
	summary.UnrealizedGain = summary.TotalValue.Sub(summary.TotalInvested)
	summary.BlendedMOIC = Divide(summary.TotalValue, summary.TotalInvested)
	summary.Class = ClassifyMOIC(summary.BlendedMOIC)

	return summary
}
