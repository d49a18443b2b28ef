package service

import (
	"context"
	"fmt"

	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/repository"
	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/valuation"
)

// PortfolioService values the portfolio companies the funds hold.
type PortfolioService struct {
	fundRepo          *repository.FundRepository
	dataLoaderService *DataLoaderService
}

// NewPortfolioService creates a new PortfolioService with the provided dependencies.
func NewPortfolioService(
	fundRepo *repository.FundRepository,
	dataLoaderService *DataLoaderService,
) *PortfolioService {
	return &PortfolioService{
		fundRepo:          fundRepo,
		dataLoaderService: dataLoaderService,
	}
}

// GetPortfolioSummary values every portfolio company and sums the results.
// A non-empty fundID restricts the view to rounds tagged with that fund; the per-company FMV
// is still resolved over all of the company's rounds.
// Returns ErrFundNotFound if fundID is given but does not exist.
func (s *PortfolioService) GetPortfolioSummary(ctx context.Context, fundID string) (valuation.PortfolioSummary, error) {
	if fundID != "" {
		if _, err := s.fundRepo.GetFund(ctx, fundID); err != nil {
			return valuation.PortfolioSummary{}, err
		}
	}

	companies, err := s.dataLoaderService.LoadCompanies(ctx)
	if err != nil {
		return valuation.PortfolioSummary{}, fmt.Errorf("failed to load portfolio: %w", err)
	}

	return valuation.AggregatePortfolio(companies, fundID), nil
}
