package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/model"
	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/repository"
)

// DataLoaderService centralizes the loading of every record the valuation engine needs.
// Aggregates are never cached: each call reads the current state of the database and the
// engine recomputes from scratch.
type DataLoaderService struct {
	fundRepo         *repository.FundRepository
	companyRepo      *repository.CompanyRepository
	roundRepo        *repository.RoundRepository
	investorRepo     *repository.InvestorRepository
	commitmentRepo   *repository.CommitmentRepository
	distributionRepo *repository.DistributionRepository
}

// NewDataLoaderService creates a new DataLoaderService with the provided dependencies.
func NewDataLoaderService(
	fundRepo *repository.FundRepository,
	companyRepo *repository.CompanyRepository,
	roundRepo *repository.RoundRepository,
	investorRepo *repository.InvestorRepository,
	commitmentRepo *repository.CommitmentRepository,
	distributionRepo *repository.DistributionRepository,
) *DataLoaderService {
	return &DataLoaderService{
		fundRepo:         fundRepo,
		companyRepo:      companyRepo,
		roundRepo:        roundRepo,
		investorRepo:     investorRepo,
		commitmentRepo:   commitmentRepo,
		distributionRepo: distributionRepo,
	}
}

// Snapshot is a consistent-enough view of every record at one point in time.
//
// Fields:
//   - Funds: all funds, by vintage
//   - Companies: all portfolio companies with their rounds attached
//   - Investors: all investors
//   - Commitments: all commitments with their distributions attached
type Snapshot struct {
	Funds       []model.Fund
	Companies   []model.PortfolioCompany
	Investors   []model.Investor
	Commitments []model.Commitment
}

// Fund returns the fund with the given ID.
func (s *Snapshot) Fund(fundID string) (model.Fund, bool) {
	for _, f := range s.Funds {
		if f.ID == fundID {
			return f, true
		}
	}
	return model.Fund{}, false
}

// LoadSnapshot loads every table concurrently and stitches rounds onto companies and
// distributions onto commitments. Child records whose parent is missing are dropped,
// including commitments whose fund was deleted between the reads.
func (s *DataLoaderService) LoadSnapshot(ctx context.Context) (*Snapshot, error) {
	var (
		funds         []model.Fund
		companies     []model.PortfolioCompany
		rounds        []model.FinancingRound
		investors     []model.Investor
		commitments   []model.Commitment
		distributions map[string][]model.Distribution
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		if funds, err = s.fundRepo.GetFunds(gctx); err != nil {
			return fmt.Errorf("failed to load funds: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if companies, err = s.companyRepo.GetCompanies(gctx); err != nil {
			return fmt.Errorf("failed to load portfolio companies: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if rounds, err = s.roundRepo.GetRounds(gctx, ""); err != nil {
			return fmt.Errorf("failed to load financing rounds: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if investors, err = s.investorRepo.GetInvestors(gctx); err != nil {
			return fmt.Errorf("failed to load investors: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if commitments, err = s.commitmentRepo.GetCommitments(gctx, repository.CommitmentFilter{}); err != nil {
			return fmt.Errorf("failed to load commitments: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if distributions, err = s.distributionRepo.GetDistributions(gctx, nil); err != nil {
			return fmt.Errorf("failed to load distributions: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Snapshot{
		Funds:       funds,
		Companies:   attachRounds(companies, rounds),
		Investors:   investors,
		Commitments: attachDistributions(dropCommitmentsWithoutFund(commitments, funds), distributions),
	}, nil
}

// LoadCompanies loads every portfolio company with its rounds attached.
func (s *DataLoaderService) LoadCompanies(ctx context.Context) ([]model.PortfolioCompany, error) {
	var (
		companies []model.PortfolioCompany
		rounds    []model.FinancingRound
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if companies, err = s.companyRepo.GetCompanies(gctx); err != nil {
			return fmt.Errorf("failed to load portfolio companies: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if rounds, err = s.roundRepo.GetRounds(gctx, ""); err != nil {
			return fmt.Errorf("failed to load financing rounds: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return attachRounds(companies, rounds), nil
}

// LoadCompany loads one portfolio company with its rounds attached.
func (s *DataLoaderService) LoadCompany(ctx context.Context, companyID string) (model.PortfolioCompany, error) {
	company, err := s.companyRepo.GetCompany(ctx, companyID)
	if err != nil {
		return model.PortfolioCompany{}, err
	}

	rounds, err := s.roundRepo.GetRounds(ctx, companyID)
	if err != nil {
		return model.PortfolioCompany{}, fmt.Errorf("failed to load financing rounds: %w", err)
	}
	company.Rounds = rounds

	return company, nil
}

// LoadCommitments loads the commitments matching filter with their distributions attached.
func (s *DataLoaderService) LoadCommitments(ctx context.Context, filter repository.CommitmentFilter) ([]model.Commitment, error) {
	commitments, err := s.commitmentRepo.GetCommitments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load commitments: %w", err)
	}

	ids := make([]string, len(commitments))
	for i, c := range commitments {
		ids[i] = c.ID
	}

	distributions, err := s.distributionRepo.GetDistributions(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load distributions: %w", err)
	}

	return attachDistributions(commitments, distributions), nil
}

func attachRounds(companies []model.PortfolioCompany, rounds []model.FinancingRound) []model.PortfolioCompany {
	index := make(map[string]int, len(companies))
	for i := range companies {
		companies[i].Rounds = []model.FinancingRound{}
		index[companies[i].ID] = i
	}

	for _, r := range rounds {
		i, ok := index[r.CompanyID]
		if !ok {
			logrus.WithFields(logrus.Fields{
				"round_id":   r.ID,
				"company_id": r.CompanyID,
			}).Debug("dropping financing round without company")
			continue
		}
		companies[i].Rounds = append(companies[i].Rounds, r)
	}

	return companies
}

func dropCommitmentsWithoutFund(commitments []model.Commitment, funds []model.Fund) []model.Commitment {
	known := make(map[string]bool, len(funds))
	for _, f := range funds {
		known[f.ID] = true
	}

	kept := commitments[:0]
	for _, c := range commitments {
		if !known[c.FundID] {
			logrus.WithFields(logrus.Fields{
				"commitment_id": c.ID,
				"fund_id":       c.FundID,
			}).Debug("dropping commitment without fund")
			continue
		}
		kept = append(kept, c)
	}

	return kept
}

func attachDistributions(commitments []model.Commitment, distributions map[string][]model.Distribution) []model.Commitment {
	known := make(map[string]bool, len(commitments))
	for i := range commitments {
		known[commitments[i].ID] = true
		if d, ok := distributions[commitments[i].ID]; ok {
			commitments[i].Distributions = d
		} else {
			commitments[i].Distributions = []model.Distribution{}
		}
	}

	for commitmentID, ds := range distributions {
		if !known[commitmentID] {
			logrus.WithFields(logrus.Fields{
				"commitment_id": commitmentID,
				"count":         len(ds),
			}).Debug("dropping distributions without commitment")
		}
	}

	return commitments
}
