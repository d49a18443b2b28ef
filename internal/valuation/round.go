package valuation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/model"
)

// RoundValuation is one financing round priced at the company-wide FMV.
type RoundValuation struct {
	RoundID        string               `json:"roundId"`
	FundID         *string              `json:"fundId"`
	InstrumentType model.InstrumentType `json:"instrumentType"`
	InvestmentDate time.Time            `json:"investmentDate"`
	Invested       decimal.Decimal      `json:"invested"`
	CostPerShare   decimal.NullDecimal  `json:"costPerShare"`
	Shares         decimal.Decimal      `json:"shares"`
	Value          decimal.Decimal      `json:"value"`
	GainLoss       decimal.Decimal      `json:"gainLoss"`
	MOIC           Ratio                `json:"moic"`
	Unconverted    bool                 `json:"unconverted"`
	FMV            FMV                  `json:"fmv"`
}

// IsUnconverted reports whether the round is a SAFE or convertible note that has not yet
// converted into priced equity.
func IsUnconverted(r model.FinancingRound) bool {
	return r.InstrumentType.IsConvertible() && !r.Converted
}

// ValuateRound prices one round given the company's FMV.
//
// Unconverted instruments have no share price yet and are marked at cost. Otherwise the share
// count is taken as given, or derived from invested/cost per share rounded to whole shares, and
// the shares are valued at the FMV, falling back to the round's own cost per share when the
// FMV is zero.
func ValuateRound(r model.FinancingRound, companyFMV decimal.Decimal) RoundValuation {
	var shares, value decimal.Decimal

	unconverted := IsUnconverted(r)
	if unconverted {
		shares = decimal.Zero
		value = r.InvestedAmount
	} else {
		cps := costPerShare(r)
		shares = roundShares(r, cps)

		price := companyFMV
		if !price.IsPositive() {
			price = cps
		}
		value = shares.Mul(price)
	}

	return RoundValuation{
		RoundID:        r.ID,
		FundID:         r.FundID,
		InstrumentType: r.InstrumentType,
		InvestmentDate: r.InvestmentDate,
		Invested:       r.InvestedAmount,
		CostPerShare:   r.CostPerShare,
		Shares:         shares,
		Value:          value,
		GainLoss:       value.Sub(r.InvestedAmount),
		MOIC:           Divide(value, r.InvestedAmount),
		Unconverted:    unconverted,
	}
}

func roundShares(r model.FinancingRound, cps decimal.Decimal) decimal.Decimal {
	if r.ShareCount != nil && *r.ShareCount > 0 {
		return decimal.NewFromInt(*r.ShareCount)
	}
	if cps.IsPositive() {
		return r.InvestedAmount.Div(cps).Round(0)
	}
	return decimal.Zero
}
