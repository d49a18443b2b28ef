package model

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts are emitted as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// FundStatus is the fundraising state of a fund.
type FundStatus string

const (
	FundStatusRaising FundStatus = "raising"
	FundStatusClosed  FundStatus = "closed"
)

// Valid reports whether s is one of the known fund statuses.
func (s FundStatus) Valid() bool {
	return s == FundStatusRaising || s == FundStatusClosed
}

// Fund represents a fund from the database
type Fund struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	VintageYear  int             `json:"vintageYear"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
	Status       FundStatus      `json:"status"`
	CreatedAt    time.Time       `json:"createdAt,omitempty"`
}
