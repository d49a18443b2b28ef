package service

import (
	"context"
	"fmt"

	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/api/request"
	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/apperrors"
	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/model"
	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/repository"
	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/valuation"
)

// FundService handles funds and their fundraising progress.
type FundService struct {
	fundRepo          *repository.FundRepository
	dataLoaderService *DataLoaderService
	portfolioService  *PortfolioService
}

// NewFundService creates a new FundService with the provided dependencies.
func NewFundService(
	fundRepo *repository.FundRepository,
	dataLoaderService *DataLoaderService,
	portfolioService *PortfolioService,
) *FundService {
	return &FundService{
		fundRepo:          fundRepo,
		dataLoaderService: dataLoaderService,
		portfolioService:  portfolioService,
	}
}

// ParseScope converts the ?scope= query value. Empty means all stages.
func ParseScope(s string) (valuation.StageScope, error) {
	switch valuation.StageScope(s) {
	case "", valuation.ScopeAllStages:
		return valuation.ScopeAllStages, nil
	case valuation.ScopeClosedOnly:
		return valuation.ScopeClosedOnly, nil
	}
	return "", apperrors.ErrInvalidScope
}

// GetFunds retrieves all funds.
func (s *FundService) GetFunds(ctx context.Context) ([]model.Fund, error) {
	return s.fundRepo.GetFunds(ctx)
}

// GetFund retrieves one fund.
func (s *FundService) GetFund(ctx context.Context, fundID string) (model.Fund, error) {
	return s.fundRepo.GetFund(ctx, fundID)
}

// CreateFund creates a fund. Status defaults to raising.
func (s *FundService) CreateFund(ctx context.Context, req request.CreateFundRequest) (*model.Fund, error) {
	fund := &model.Fund{
		Name:         req.Name,
		VintageYear:  req.VintageYear,
		TargetAmount: req.TargetAmount,
		Status:       model.FundStatus(req.Status),
	}
	if fund.Status == "" {
		fund.Status = model.FundStatusRaising
	}

	if err := s.fundRepo.InsertFund(ctx, fund); err != nil {
		return nil, fmt.Errorf("failed to create fund: %w", err)
	}

	return fund, nil
}

// UpdateFund applies the set fields of req to a fund.
func (s *FundService) UpdateFund(ctx context.Context, fundID string, req request.UpdateFundRequest) (*model.Fund, error) {
	fund, err := s.fundRepo.GetFund(ctx, fundID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		fund.Name = *req.Name
	}
	if req.VintageYear != nil {
		fund.VintageYear = *req.VintageYear
	}
	if req.TargetAmount != nil {
		fund.TargetAmount = *req.TargetAmount
	}
	if req.Status != nil {
		fund.Status = model.FundStatus(*req.Status)
	}

	if err := s.fundRepo.UpdateFund(ctx, &fund); err != nil {
		return nil, err
	}

	return &fund, nil
}

// DeleteFund removes a fund and its commitments. Rounds tagged with the fund become untagged.
func (s *FundService) DeleteFund(ctx context.Context, fundID string) error {
	return s.fundRepo.DeleteFund(ctx, fundID)
}

// GetFundProgress compares the fund's commitments to its target.
func (s *FundService) GetFundProgress(ctx context.Context, fundID string, scope valuation.StageScope) (valuation.FundProgress, error) {
	fund, err := s.fundRepo.GetFund(ctx, fundID)
	if err != nil {
		return valuation.FundProgress{}, err
	}

	commitments, err := s.dataLoaderService.LoadCommitments(ctx, repository.CommitmentFilter{FundID: fundID})
	if err != nil {
		return valuation.FundProgress{}, err
	}

	return valuation.ProgressFor(fund, commitments, scope), nil
}

// GetAllFundProgress returns the progress of every fund, by vintage.
func (s *FundService) GetAllFundProgress(ctx context.Context, scope valuation.StageScope) ([]valuation.FundProgress, error) {
	funds, err := s.fundRepo.GetFunds(ctx)
	if err != nil {
		return nil, err
	}

	commitments, err := s.dataLoaderService.LoadCommitments(ctx, repository.CommitmentFilter{})
	if err != nil {
		return nil, err
	}

	progress := make([]valuation.FundProgress, 0, len(funds))
	for _, f := range funds {
		progress = append(progress, valuation.ProgressFor(f, commitments, scope))
	}

	return progress, nil
}

// GetStageBreakdown groups the fund's commitments by pipeline stage.
func (s *FundService) GetStageBreakdown(ctx context.Context, fundID string) ([]valuation.StageTotal, error) {
	if _, err := s.fundRepo.GetFund(ctx, fundID); err != nil {
		return nil, err
	}

	commitments, err := s.dataLoaderService.LoadCommitments(ctx, repository.CommitmentFilter{FundID: fundID})
	if err != nil {
		return nil, err
	}

	return valuation.StageBreakdown(fundID, commitments), nil
}

// GetFundPortfolio values the portfolio restricted to the fund's rounds.
func (s *FundService) GetFundPortfolio(ctx context.Context, fundID string) (valuation.PortfolioSummary, error) {
	return s.portfolioService.GetPortfolioSummary(ctx, fundID)
}
