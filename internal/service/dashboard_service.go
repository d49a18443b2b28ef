package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/model"
	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/valuation"
)

// Dashboard is the firm-wide overview: LP capital totals, pipeline counts, portfolio value
// and the fundraising progress of every fund.
type Dashboard struct {
	GeneratedAt        time.Time                  `json:"generatedAt"`
	TotalCommitted     decimal.Decimal            `json:"totalCommitted"`
	TotalFunded        decimal.Decimal            `json:"totalFunded"`
	TotalNAV           decimal.Decimal            `json:"totalNav"`
	TotalDistributions decimal.Decimal            `json:"totalDistributions"`
	DeployedPercent    valuation.Ratio            `json:"deployedPercent"`
	ClosedCount        int                        `json:"closedCount"`
	PipelineCount      int                        `json:"pipelineCount"`
	InvestorCount      int                        `json:"investorCount"`
	Portfolio          valuation.PortfolioSummary `json:"portfolio"`
	Funds              []valuation.FundProgress   `json:"funds"`
}

// DashboardService builds the dashboard from a fresh snapshot.
type DashboardService struct {
	dataLoaderService *DataLoaderService
	now               func() time.Time
}

// NewDashboardService creates a new DashboardService with the provided dependencies.
func NewDashboardService(dataLoaderService *DataLoaderService) *DashboardService {
	return &DashboardService{
		dataLoaderService: dataLoaderService,
		now:               time.Now,
	}
}

// GetDashboard loads every record and aggregates the overview. Fund progress counts all
// pipeline stages.
func (s *DashboardService) GetDashboard(ctx context.Context) (Dashboard, error) {
	snap, err := s.dataLoaderService.LoadSnapshot(ctx)
	if err != nil {
		return Dashboard{}, err
	}

	return buildDashboard(snap, s.now().UTC()), nil
}

func buildDashboard(snap *Snapshot, at time.Time) Dashboard {
	d := Dashboard{
		GeneratedAt:        at,
		TotalCommitted:     decimal.Zero,
		TotalFunded:        decimal.Zero,
		TotalNAV:           decimal.Zero,
		TotalDistributions: decimal.Zero,
		InvestorCount:      len(snap.Investors),
		Portfolio:          valuation.AggregatePortfolio(snap.Companies, ""),
		Funds:              make([]valuation.FundProgress, 0, len(snap.Funds)),
	}

	for _, c := range snap.Commitments {
		d.TotalCommitted = d.TotalCommitted.Add(c.CommitmentAmount)
		d.TotalFunded = d.TotalFunded.Add(c.FundedAmount)
		d.TotalNAV = d.TotalNAV.Add(c.CurrentNAV)
		d.TotalDistributions = d.TotalDistributions.Add(c.TotalDistributions())
		if c.Stage == model.StageClosed {
			d.ClosedCount++
		} else {
			d.PipelineCount++
		}
	}
	d.DeployedPercent = valuation.Percent(d.TotalFunded, d.TotalCommitted)

	for _, f := range snap.Funds {
		d.Funds = append(d.Funds, valuation.Progress(f, snap.Commitments))
	}

	return d
}
