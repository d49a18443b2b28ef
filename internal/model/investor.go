package model

import (
	"fmt"
	"time"
)

// InvestorTier classifies a limited partner.
type InvestorTier string

const (
	TierStrategic     InvestorTier = "Strategic"
	TierInstitutional InvestorTier = "Institutional"
	TierFamilyOffice  InvestorTier = "Family Office"
	TierHNW           InvestorTier = "HNW"
	TierUHNW          InvestorTier = "UHNW"
)

// InvestorTiers lists every tier in canonical order.
var InvestorTiers = []InvestorTier{TierStrategic, TierInstitutional, TierFamilyOffice, TierHNW, TierUHNW}

// Valid reports whether t is a known tier.
func (t InvestorTier) Valid() bool {
	for _, known := range InvestorTiers {
		if t == known {
			return true
		}
	}
	return false
}

// Investor is a limited partner. One investor may hold commitments in several funds.
type Investor struct {
	ID                string       `json:"id"`
	DisplayName       string       `json:"displayName"`
	FirmName          string       `json:"firmName"`
	Email             string       `json:"email,omitempty"`
	Phone             string       `json:"phone,omitempty"`
	Tier              InvestorTier `json:"tier"`
	RelationshipOwner string       `json:"relationshipOwner,omitempty"`
	CreatedAt         time.Time    `json:"createdAt,omitempty"`
}

// LegacyKey returns the literal (name, firm) identity used by the original directory view.
// No trimming or case folding is applied.
func LegacyKey(name, firm string) string {
	return fmt.Sprintf("%s__%s", name, firm)
}
