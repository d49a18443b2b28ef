package model

import (
	"regexp"
	"time"

	"github.com/shopspring/decimal"
)

// InstrumentType is the security a financing round bought into.
// Priced rounds are written SeriesA, SeriesB, ... with an optional -N suffix (SeriesA-1).
type InstrumentType string

const (
	InstrumentSAFE            InstrumentType = "SAFE"
	InstrumentConvertibleNote InstrumentType = "ConvertibleNote"
	InstrumentSeed            InstrumentType = "Seed"
	InstrumentSeriesA         InstrumentType = "SeriesA"
	InstrumentSeriesB         InstrumentType = "SeriesB"
	InstrumentSeriesC         InstrumentType = "SeriesC"
	InstrumentBridge          InstrumentType = "Bridge"
	InstrumentOther           InstrumentType = "Other"
)

var seriesPattern = regexp.MustCompile(`^Series[A-Z](-[0-9]+)?$`)

// Valid reports whether t is a known instrument or a well-formed priced series.
func (t InstrumentType) Valid() bool {
	switch t {
	case InstrumentSAFE, InstrumentConvertibleNote, InstrumentSeed, InstrumentBridge, InstrumentOther:
		return true
	}
	return seriesPattern.MatchString(string(t))
}

// IsConvertible reports whether the instrument converts into priced equity at a later round.
func (t InstrumentType) IsConvertible() bool {
	return t == InstrumentSAFE || t == InstrumentConvertibleNote
}

// ConvertedFlag resolves the converted flag for a round of type t. Only SAFEs and notes
// can be unconverted, and an omitted flag means converted.
func ConvertedFlag(t InstrumentType, converted *bool) bool {
	if converted == nil || !t.IsConvertible() {
		return true
	}
	return *converted
}

// FinancingRound is one investment a fund made into a portfolio company.
// FundID is nil for rounds that are not attributed to any fund.
// Sequence is the per-company insertion ordinal and breaks FMV ties between rounds
// sharing an investment date. Converted is always true for priced instruments.
type FinancingRound struct {
	ID             string              `json:"id"`
	CompanyID      string              `json:"companyId"`
	FundID         *string             `json:"fundId"`
	InstrumentType InstrumentType      `json:"instrumentType"`
	InvestmentDate time.Time           `json:"investmentDate"`
	InvestedAmount decimal.Decimal     `json:"investedAmount"`
	ShareCount     *int64              `json:"shareCount"`
	CostPerShare   decimal.NullDecimal `json:"costPerShare"`
	Converted      bool                `json:"converted"`
	Sequence       int64               `json:"sequence"`
	CreatedAt      time.Time           `json:"createdAt,omitempty"`
}

// InFund reports whether the round is tagged with the given fund.
func (r FinancingRound) InFund(fundID string) bool {
	return r.FundID != nil && *r.FundID == fundID
}

// PortfolioCompany is a company the funds hold positions in.
type PortfolioCompany struct {
	ID                string              `json:"id"`
	Name              string              `json:"name"`
	Sector            string              `json:"sector"`
	ManualFMVOverride decimal.NullDecimal `json:"manualFmvOverride"`
	Rounds            []FinancingRound    `json:"rounds,omitempty"`
	CreatedAt         time.Time           `json:"createdAt,omitempty"`
}
