package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/api/request"
	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/model"
	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/repository"
	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/valuation"
)

// CompanyService handles portfolio companies and their financing rounds.
type CompanyService struct {
	db                *sql.DB
	companyRepo       *repository.CompanyRepository
	roundRepo         *repository.RoundRepository
	fundRepo          *repository.FundRepository
	dataLoaderService *DataLoaderService
}

// NewCompanyService creates a new CompanyService with the provided dependencies.
func NewCompanyService(
	db *sql.DB,
	companyRepo *repository.CompanyRepository,
	roundRepo *repository.RoundRepository,
	fundRepo *repository.FundRepository,
	dataLoaderService *DataLoaderService,
) *CompanyService {
	return &CompanyService{
		db:                db,
		companyRepo:       companyRepo,
		roundRepo:         roundRepo,
		fundRepo:          fundRepo,
		dataLoaderService: dataLoaderService,
	}
}

// GetCompanies retrieves every portfolio company with its rounds.
func (s *CompanyService) GetCompanies(ctx context.Context) ([]model.PortfolioCompany, error) {
	return s.dataLoaderService.LoadCompanies(ctx)
}

// GetCompany retrieves one portfolio company with its rounds.
func (s *CompanyService) GetCompany(ctx context.Context, companyID string) (model.PortfolioCompany, error) {
	return s.dataLoaderService.LoadCompany(ctx, companyID)
}

// GetCompanyValuation values one company, optionally restricted to rounds of a fund.
func (s *CompanyService) GetCompanyValuation(ctx context.Context, companyID, fundID string) (valuation.CompanyValuation, error) {
	if fundID != "" {
		if _, err := s.fundRepo.GetFund(ctx, fundID); err != nil {
			return valuation.CompanyValuation{}, err
		}
	}

	company, err := s.dataLoaderService.LoadCompany(ctx, companyID)
	if err != nil {
		return valuation.CompanyValuation{}, err
	}

	return valuation.AggregateCompany(company, fundID), nil
}

// CreateCompany creates a portfolio company without rounds.
func (s *CompanyService) CreateCompany(ctx context.Context, req request.CreateCompanyRequest) (*model.PortfolioCompany, error) {
	company := &model.PortfolioCompany{
		Name:   req.Name,
		Sector: req.Sector,
		Rounds: []model.FinancingRound{},
	}
	if req.ManualFMVOverride != nil {
		company.ManualFMVOverride = decimal.NewNullDecimal(*req.ManualFMVOverride)
	}

	if err := s.companyRepo.InsertCompany(ctx, company); err != nil {
		return nil, fmt.Errorf("failed to create portfolio company: %w", err)
	}

	return company, nil
}

// UpdateCompany applies the set fields of req to a company.
func (s *CompanyService) UpdateCompany(ctx context.Context, companyID string, req request.UpdateCompanyRequest) (*model.PortfolioCompany, error) {
	company, err := s.companyRepo.GetCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		company.Name = *req.Name
	}
	if req.Sector != nil {
		company.Sector = *req.Sector
	}
	if req.ManualFMVOverride != nil {
		company.ManualFMVOverride = decimal.NewNullDecimal(*req.ManualFMVOverride)
	}
	if req.ClearManualFMVOverride {
		company.ManualFMVOverride = decimal.NullDecimal{}
	}

	if err := s.companyRepo.UpdateCompany(ctx, &company); err != nil {
		return nil, err
	}

	loaded, err := s.dataLoaderService.LoadCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return &loaded, nil
}

// DeleteCompany removes a company and its rounds.
func (s *CompanyService) DeleteCompany(ctx context.Context, companyID string) error {
	return s.companyRepo.DeleteCompany(ctx, companyID)
}

// AddRound records a financing round against a company.
// Returns ErrCompanyNotFound or ErrFundNotFound when a referenced record is missing.
func (s *CompanyService) AddRound(ctx context.Context, companyID string, req request.CreateRoundRequest) (*model.FinancingRound, error) {
	investmentDate, err := parseDate(req.InvestmentDate)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := s.companyRepo.WithTx(tx).GetCompany(ctx, companyID); err != nil {
		return nil, err
	}
	if req.FundID != nil {
		if _, err := s.fundRepo.WithTx(tx).GetFund(ctx, *req.FundID); err != nil {
			return nil, err
		}
	}

	instrument := model.InstrumentType(req.InstrumentType)
	round := &model.FinancingRound{
		CompanyID:      companyID,
		FundID:         req.FundID,
		InstrumentType: instrument,
		InvestmentDate: investmentDate,
		InvestedAmount: req.InvestedAmount,
		ShareCount:     req.ShareCount,
		Converted:      model.ConvertedFlag(instrument, req.Converted),
	}
	if req.CostPerShare != nil {
		round.CostPerShare = decimal.NewNullDecimal(*req.CostPerShare)
	}

	if err := s.roundRepo.WithTx(tx).InsertRound(ctx, round); err != nil {
		return nil, fmt.Errorf("failed to create financing round: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return round, nil
}

// UpdateRound applies the set fields of req to a round.
func (s *CompanyService) UpdateRound(ctx context.Context, roundID string, req request.UpdateRoundRequest) (*model.FinancingRound, error) {
	round, err := s.roundRepo.GetRound(ctx, roundID)
	if err != nil {
		return nil, err
	}

	if req.FundID != nil {
		if _, err := s.fundRepo.GetFund(ctx, *req.FundID); err != nil {
			return nil, err
		}
		round.FundID = req.FundID
	}
	if req.ClearFund {
		round.FundID = nil
	}
	if req.InstrumentType != nil {
		round.InstrumentType = model.InstrumentType(*req.InstrumentType)
	}
	if req.InvestmentDate != nil {
		if round.InvestmentDate, err = parseDate(*req.InvestmentDate); err != nil {
			return nil, err
		}
	}
	if req.InvestedAmount != nil {
		round.InvestedAmount = *req.InvestedAmount
	}
	if req.ShareCount != nil {
		round.ShareCount = req.ShareCount
	}
	if req.CostPerShare != nil {
		round.CostPerShare = decimal.NewNullDecimal(*req.CostPerShare)
	}
	if req.ClearCostPerShare {
		round.CostPerShare = decimal.NullDecimal{}
	}
	if req.Converted != nil {
		round.Converted = *req.Converted
	}
	// priced rounds are always converted
	round.Converted = model.ConvertedFlag(round.InstrumentType, &round.Converted)

	if err := s.roundRepo.UpdateRound(ctx, &round); err != nil {
		return nil, err
	}

	return &round, nil
}

// DeleteRound removes a financing round.
func (s *CompanyService) DeleteRound(ctx context.Context, roundID string) error {
	return s.roundRepo.DeleteRound(ctx, roundID)
}
