// Package valuation prices financing rounds and rolls them up into company, portfolio,
// investor and fundraising metrics.
//
// Every function in this package is pure: it reads the records it is given, allocates its
// result and never touches storage, clocks or shared state. Aggregates are recomputed on every
// call; nothing is memoized.
package valuation

import (
	"github.com/shopspring/decimal"

	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/model"
)

// FMVSource records where a company's fair market value came from.
type FMVSource string

const (
	FMVSourceOverride    FMVSource = "override"
	FMVSourceLatestRound FMVSource = "latest_round"
	FMVSourceNone        FMVSource = "none"
)

// FMV is a company's synchronized fair market value per share.
// RoundID names the originating round when Source is FMVSourceLatestRound.
type FMV struct {
	PricePerShare decimal.Decimal `json:"pricePerShare"`
	Source        FMVSource       `json:"source"`
	RoundID       string          `json:"roundId,omitempty"`
}

// ResolveFMV computes the single company-wide FMV applied to every round of the company.
//
// Priority:
//   - a manual override, including an explicit zero
//   - the cost per share of the round with the latest investment date; rounds sharing that
//     date are ordered by Sequence and the later insertion wins
//   - zero
//
// A latest round with no (or zero) cost per share, such as a fresh SAFE, still wins and
// yields an FMV of zero.
func ResolveFMV(company model.PortfolioCompany) FMV {
	if company.ManualFMVOverride.Valid {
		return FMV{
			PricePerShare: company.ManualFMVOverride.Decimal,
			Source:        FMVSourceOverride,
		}
	}

	latest := latestRound(company.Rounds)
	if latest == nil {
		return FMV{PricePerShare: decimal.Zero, Source: FMVSourceNone}
	}

	return FMV{
		PricePerShare: costPerShare(*latest),
		Source:        FMVSourceLatestRound,
		RoundID:       latest.ID,
	}
}

func latestRound(rounds []model.FinancingRound) *model.FinancingRound {
	var latest *model.FinancingRound
	for i := range rounds {
		r := &rounds[i]
		if latest == nil ||
			r.InvestmentDate.After(latest.InvestmentDate) ||
			(r.InvestmentDate.Equal(latest.InvestmentDate) && r.Sequence >= latest.Sequence) {
			latest = r
		}
	}
	return latest
}

func costPerShare(r model.FinancingRound) decimal.Decimal {
	if !r.CostPerShare.Valid {
		return decimal.Zero
	}
	return r.CostPerShare.Decimal
}
