package valuation

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/model"
)

// CompanyValuation sums a company's rounds into invested, value, gain and MOIC.
type CompanyValuation struct {
	CompanyID string           `json:"companyId"`
	Name      string           `json:"name"`
	Sector    string           `json:"sector"`
	FMV       FMV              `json:"fmv"`
	Rounds    []RoundValuation `json:"rounds"`
	Invested  decimal.Decimal  `json:"invested"`
	Value     decimal.Decimal  `json:"value"`
	GainLoss  decimal.Decimal  `json:"gainLoss"`
	Shares    decimal.Decimal  `json:"shares"`
	MOIC      Ratio            `json:"moic"`
	Class     Class            `json:"class"`
}

// AggregateCompany values every round of the company and sums the results.
//
// The FMV is resolved once over all of the company's rounds. A non-empty fundID restricts the
// summed rounds to those tagged with that fund; untagged rounds only count in the unscoped view.
// Rounds are returned oldest to newest, each carrying the company-wide FMV.
func AggregateCompany(company model.PortfolioCompany, fundID string) CompanyValuation {
	fmv := ResolveFMV(company)

	rounds := make([]model.FinancingRound, 0, len(company.Rounds))
	for _, r := range company.Rounds {
		if fundID != "" && !r.InFund(fundID) {
			continue
		}
		rounds = append(rounds, r)
	}
	sortRounds(rounds)

	result := CompanyValuation{
		CompanyID: company.ID,
		Name:      company.Name,
		Sector:    company.Sector,
		FMV:       fmv,
		Rounds:    make([]RoundValuation, 0, len(rounds)),
		Invested:  decimal.Zero,
		Value:     decimal.Zero,
		Shares:    decimal.Zero,
	}

	for _, r := range rounds {
		rv := ValuateRound(r, fmv.PricePerShare)
		rv.FMV = fmv
		result.Rounds = append(result.Rounds, rv)

		result.Invested = result.Invested.Add(rv.Invested)
		result.Value = result.Value.Add(rv.Value)
		result.Shares = result.Shares.Add(rv.Shares)
	}

	result.GainLoss = result.Value.Sub(result.Invested)
	result.MOIC = Divide(result.Value, result.Invested)
	result.Class = ClassifyMOIC(result.MOIC)

	return result
}

// sortRounds orders rounds oldest to newest, then by insertion sequence.
func sortRounds(rounds []model.FinancingRound) {
	sort.SliceStable(rounds, func(i, j int) bool {
		if !rounds[i].InvestmentDate.Equal(rounds[j].InvestmentDate) {
			return rounds[i].InvestmentDate.Before(rounds[j].InvestmentDate)
		}
		return rounds[i].Sequence < rounds[j].Sequence
	})
}
