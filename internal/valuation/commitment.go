package valuation

import (
	"fmt"
	"slices"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/model"
)

// IdentityMode selects how commitments are attributed to an investor.
type IdentityMode string

const (
	// IdentityByID groups commitments by the stable investor id.
	IdentityByID IdentityMode = "id"
	// IdentityByNameFirm groups commitments by the literal (name, firm) string pair.
	// "Jane Doe" and "jane doe" are different investors in this mode.
	IdentityByNameFirm IdentityMode = "name_firm"
)

// ParseIdentityMode validates an identity mode string.
func ParseIdentityMode(s string) (IdentityMode, error) {
	switch IdentityMode(s) {
	case IdentityByID, IdentityByNameFirm:
		return IdentityMode(s), nil
	}
	return "", fmt.Errorf("unknown investor identity mode: %q", s)
}

// InvestorKey returns the identity key of an investor record under mode.
func InvestorKey(mode IdentityMode, inv model.Investor) string {
	if mode == IdentityByNameFirm {
		return model.LegacyKey(inv.DisplayName, inv.FirmName)
	}
	return inv.ID
}

// CommitmentKey returns the identity key of a commitment's investor under mode.
func CommitmentKey(mode IdentityMode, c model.Commitment) string {
	if mode == IdentityByNameFirm {
		return model.LegacyKey(c.InvestorName, c.InvestorFirm)
	}
	return c.InvestorID
}

// Position is a single commitment with its own DPI and TVPI.
type Position struct {
	CommitmentID       string              `json:"commitmentId"`
	FundID             string              `json:"fundId"`
	Stage              model.PipelineStage `json:"stage"`
	Commitment         decimal.Decimal     `json:"commitment"`
	Funded             decimal.Decimal     `json:"funded"`
	NAV                decimal.Decimal     `json:"nav"`
	TotalDistributions decimal.Decimal     `json:"totalDistributions"`
	DPI                Ratio               `json:"dpi"`
	TVPI               Ratio               `json:"tvpi"`
}

// InvestorRollup sums one investor's commitments across funds.
type InvestorRollup struct {
	Key                string              `json:"key"`
	DisplayName        string              `json:"displayName"`
	FirmName           string              `json:"firmName"`
	InvestorIDs        []string            `json:"investorIds"`
	FundIDs            []string            `json:"fundIds"`
	TotalCommitment    decimal.Decimal     `json:"totalCommitment"`
	TotalFunded        decimal.Decimal     `json:"totalFunded"`
	TotalNAV           decimal.Decimal     `json:"totalNav"`
	TotalDistributions decimal.Decimal     `json:"totalDistributions"`
	DPI                Ratio               `json:"dpi"`
	TVPI               Ratio               `json:"tvpi"`
	DPIClass           Class               `json:"dpiClass"`
	TVPIClass          Class               `json:"tvpiClass"`
	TopStage           model.PipelineStage `json:"topStage"`
	Positions          []Position          `json:"positions"`
}

// PositionOf computes the per-commitment DPI and TVPI.
func PositionOf(c model.Commitment) Position {
	dist := c.TotalDistributions()
	return Position{
		CommitmentID:       c.ID,
		FundID:             c.FundID,
		Stage:              c.Stage,
		Commitment:         c.CommitmentAmount,
		Funded:             c.FundedAmount,
		NAV:                c.CurrentNAV,
		TotalDistributions: dist,
		DPI:                Divide(dist, c.FundedAmount),
		TVPI:               Divide(dist.Add(c.CurrentNAV), c.FundedAmount),
	}
}

// AggregateInvestor sums every commitment whose investor matches key under mode.
//
// DPI is distributions/funded and TVPI is (distributions+NAV)/funded; both are undefined when
// nothing has been funded yet.
func AggregateInvestor(key string, commitments []model.Commitment, mode IdentityMode) InvestorRollup {
	rollup := InvestorRollup{
		Key:                key,
		InvestorIDs:        []string{},
		FundIDs:            []string{},
		TotalCommitment:    decimal.Zero,
		TotalFunded:        decimal.Zero,
		TotalNAV:           decimal.Zero,
		TotalDistributions: decimal.Zero,
		TopStage:           model.StageOutreach,
		Positions:          []Position{},
	}

	seenInvestor := make(map[string]bool)
	seenFund := make(map[string]bool)

	for _, c := range commitments {
		if CommitmentKey(mode, c) != key {
			continue
		}
		if rollup.DisplayName == "" && rollup.FirmName == "" {
			rollup.DisplayName = c.InvestorName
			rollup.FirmName = c.InvestorFirm
		}
		if !seenInvestor[c.InvestorID] {
			seenInvestor[c.InvestorID] = true
			rollup.InvestorIDs = append(rollup.InvestorIDs, c.InvestorID)
		}
		if !seenFund[c.FundID] {
			seenFund[c.FundID] = true
			rollup.FundIDs = append(rollup.FundIDs, c.FundID)
		}

		p := PositionOf(c)
		rollup.Positions = append(rollup.Positions, p)

		rollup.TotalCommitment = rollup.TotalCommitment.Add(p.Commitment)
		rollup.TotalFunded = rollup.TotalFunded.Add(p.Funded)
		rollup.TotalNAV = rollup.TotalNAV.Add(p.NAV)
		rollup.TotalDistributions = rollup.TotalDistributions.Add(p.TotalDistributions)
		if c.Stage > rollup.TopStage {
			rollup.TopStage = c.Stage
		}
	}

	rollup.DPI = Divide(rollup.TotalDistributions, rollup.TotalFunded)
	rollup.TVPI = Divide(rollup.TotalDistributions.Add(rollup.TotalNAV), rollup.TotalFunded)
	rollup.DPIClass = ClassifyDPI(rollup.DPI)
	rollup.TVPIClass = ClassifyTVPI(rollup.TVPI)

	return rollup
}

// GroupInvestors builds one rollup per distinct investor identity, sorted by display name and
// firm. Investors without commitments get an empty rollup; commitments whose investor is not in
// investors are ignored.
func GroupInvestors(investors []model.Investor, commitments []model.Commitment, mode IdentityMode) []InvestorRollup {
	order := make([]string, 0, len(investors))
	records := make(map[string][]model.Investor)
	for _, inv := range investors {
		key := InvestorKey(mode, inv)
		if _, ok := records[key]; !ok {
			order = append(order, key)
		}
		records[key] = append(records[key], inv)
	}

	rollups := make([]InvestorRollup, 0, len(order))
	for _, key := range order {
		r := AggregateInvestor(key, commitments, mode)

		first := records[key][0]
		r.DisplayName = first.DisplayName
		r.FirmName = first.FirmName
		for _, inv := range records[key] {
			if !slices.Contains(r.InvestorIDs, inv.ID) {
				r.InvestorIDs = append(r.InvestorIDs, inv.ID)
			}
		}

		rollups = append(rollups, r)
	}

	sort.SliceStable(rollups, func(i, j int) bool {
		if rollups[i].DisplayName != rollups[j].DisplayName {
			return rollups[i].DisplayName < rollups[j].DisplayName
		}
		return rollups[i].FirmName < rollups[j].FirmName
	})

	return rollups
}
