package valuation

import (
	"github.com/shopspring/decimal"

	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/model"
)

// StageScope names which commitments count towards a fundraising total.
type StageScope string

const (
	ScopeAllStages  StageScope = "all"
	ScopeClosedOnly StageScope = "closed"
)

// FundProgress compares a fund's committed capital to its target.
type FundProgress struct {
	FundID           string           `json:"fundId"`
	FundName         string           `json:"fundName"`
	Status           model.FundStatus `json:"status"`
	VintageYear      int              `json:"vintageYear"`
	Scope            StageScope       `json:"scope"`
	Target           decimal.Decimal  `json:"target"`
	Committed        decimal.Decimal  `json:"committed"`
	Funded           decimal.Decimal  `json:"funded"`
	NAV              decimal.Decimal  `json:"nav"`
	PercentOfTarget  Ratio            `json:"percentOfTarget"`
	OversubscribedBy decimal.Decimal  `json:"oversubscribedBy"`
	IsOversubscribed bool             `json:"isOversubscribed"`
	ClosedCount      int              `json:"closedCount"`
	PipelineCount    int              `json:"pipelineCount"`
}

// StageTotal is the number of commitments and capital sitting in one pipeline stage.
type StageTotal struct {
	Stage     model.PipelineStage `json:"stage"`
	Label     string              `json:"label"`
	Count     int                 `json:"count"`
	Committed decimal.Decimal     `json:"committed"`
}

// Progress sums every commitment of the fund regardless of pipeline stage.
func Progress(fund model.Fund, commitments []model.Commitment) FundProgress {
	return progress(fund, commitments, ScopeAllStages)
}

// ProgressClosedOnly sums only the fund's closed commitments.
func ProgressClosedOnly(fund model.Fund, commitments []model.Commitment) FundProgress {
	return progress(fund, commitments, ScopeClosedOnly)
}

// ProgressFor dispatches on scope. Unknown scopes count all stages.
func ProgressFor(fund model.Fund, commitments []model.Commitment, scope StageScope) FundProgress {
	if scope == ScopeClosedOnly {
		return ProgressClosedOnly(fund, commitments)
	}
	return Progress(fund, commitments)
}

// CommittedAllStages sums the commitment amounts of the fund across every stage.
func CommittedAllStages(fundID string, commitments []model.Commitment) decimal.Decimal {
	return sumCommitted(fundID, commitments, ScopeAllStages)
}

// CommittedClosedOnly sums the commitment amounts of the fund's closed commitments.
func CommittedClosedOnly(fundID string, commitments []model.Commitment) decimal.Decimal {
	return sumCommitted(fundID, commitments, ScopeClosedOnly)
}

// StageBreakdown groups the fund's commitments by pipeline stage, in canonical stage order.
func StageBreakdown(fundID string, commitments []model.Commitment) []StageTotal {
	totals := make([]StageTotal, len(model.PipelineStages))
	for i, s := range model.PipelineStages {
		totals[i] = StageTotal{Stage: s, Label: s.Label(), Committed: decimal.Zero}
	}
	for _, c := range commitments {
		if c.FundID != fundID || !c.Stage.Valid() {
			continue
		}
		t := &totals[c.Stage]
		t.Count++
		t.Committed = t.Committed.Add(c.CommitmentAmount)
	}
	return totals
}

func progress(fund model.Fund, commitments []model.Commitment, scope StageScope) FundProgress {
	p := FundProgress{
		FundID:      fund.ID,
		FundName:    fund.Name,
		Status:      fund.Status,
		VintageYear: fund.VintageYear,
		Scope:       scope,
		Target:      fund.TargetAmount,
		Committed:   decimal.Zero,
		Funded:      decimal.Zero,
		NAV:         decimal.Zero,
	}

	for _, c := range commitments {
		if c.FundID != fund.ID {
			continue
		}
		if c.Stage == model.StageClosed {
			p.ClosedCount++
		} else {
			p.PipelineCount++
		}
		if !inScope(c, scope) {
			continue
		}
		p.Committed = p.Committed.Add(c.CommitmentAmount)
		p.Funded = p.Funded.Add(c.FundedAmount)
		p.NAV = p.NAV.Add(c.CurrentNAV)
	}

	p.PercentOfTarget = Percent(p.Committed, fund.TargetAmount)
	p.IsOversubscribed = p.Committed.GreaterThan(fund.TargetAmount)
	p.OversubscribedBy = decimal.Max(p.Committed.Sub(fund.TargetAmount), decimal.Zero)

	return p
}

func sumCommitted(fundID string, commitments []model.Commitment, scope StageScope) decimal.Decimal {
	total := decimal.Zero
	for _, c := range commitments {
		if c.FundID == fundID && inScope(c, scope) {
			total = total.Add(c.CommitmentAmount)
		}
	}
	return total
}

func inScope(c model.Commitment, scope StageScope) bool {
	return scope != ScopeClosedOnly || c.Stage == model.StageClosed
}
