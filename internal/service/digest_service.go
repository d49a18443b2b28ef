package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/display"
	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/model"
)

// DigestService logs a short fundraising and portfolio digest. It runs on the cron schedule
// configured by DIGEST_SCHEDULE.
type DigestService struct {
	dashboardService *DashboardService
	logger           logrus.FieldLogger
}

// NewDigestService creates a new DigestService. A nil logger uses the logrus standard logger.
func NewDigestService(dashboardService *DashboardService, logger logrus.FieldLogger) *DigestService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &DigestService{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// Run logs one line per raising fund and one line with the portfolio totals.
// Failures are returned unlogged; the scheduler reports them.
func (s *DigestService) Run(ctx context.Context) error {
	d, err := s.dashboardService.GetDashboard(ctx)
	if err != nil {
		return fmt.Errorf("digest: failed to build dashboard: %w", err)
	}

	for _, f := range d.Funds {
		if f.Status != model.FundStatusRaising {
			continue
		}
		s.logger.WithFields(logrus.Fields{
			"fund":             f.FundName,
			"committed":        display.FormatMoneyShort(f.Committed),
			"target":           display.FormatMoneyShort(f.Target),
			"percentOfTarget":  display.FormatPercent(f.PercentOfTarget),
			"oversubscribedBy": display.FormatMoneyShort(f.OversubscribedBy),
			"pipeline":         f.PipelineCount,
		}).Info("digest: fundraising progress")
	}

	s.logger.WithFields(logrus.Fields{
		"companies": d.Portfolio.CompanyCount,
		"invested":  display.FormatMoneyShort(d.Portfolio.TotalInvested),
		"value":     display.FormatMoneyShort(d.Portfolio.TotalValue),
		"moic":      display.FormatMultiple(d.Portfolio.BlendedMOIC),
	}).Info("digest: portfolio")

	return nil
}
