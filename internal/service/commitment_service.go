package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/api/request"
	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/model"
	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/repository"
	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/valuation"
)

// CommitmentService handles LP commitments, their pipeline stage and distributions.
type CommitmentService struct {
	db                *sql.DB
	commitmentRepo    *repository.CommitmentRepository
	distributionRepo  *repository.DistributionRepository
	investorRepo      *repository.InvestorRepository
	fundRepo          *repository.FundRepository
	dataLoaderService *DataLoaderService
}

// NewCommitmentService creates a new CommitmentService with the provided dependencies.
func NewCommitmentService(
	db *sql.DB,
	commitmentRepo *repository.CommitmentRepository,
	distributionRepo *repository.DistributionRepository,
	investorRepo *repository.InvestorRepository,
	fundRepo *repository.FundRepository,
	dataLoaderService *DataLoaderService,
) *CommitmentService {
	return &CommitmentService{
		db:                db,
		commitmentRepo:    commitmentRepo,
		distributionRepo:  distributionRepo,
		investorRepo:      investorRepo,
		fundRepo:          fundRepo,
		dataLoaderService: dataLoaderService,
	}
}

// CommitmentDetail is a commitment with its distributions and computed position ratios.
type CommitmentDetail struct {
	model.Commitment
	Position valuation.Position `json:"position"`
}

// GetCommitments retrieves commitments with their distributions, optionally for one fund.
func (s *CommitmentService) GetCommitments(ctx context.Context, fundID string) ([]model.Commitment, error) {
	if fundID != "" {
		if _, err := s.fundRepo.GetFund(ctx, fundID); err != nil {
			return nil, err
		}
	}
	return s.dataLoaderService.LoadCommitments(ctx, repository.CommitmentFilter{FundID: fundID})
}

// GetCommitment retrieves one commitment with its distributions and DPI/TVPI.
func (s *CommitmentService) GetCommitment(ctx context.Context, commitmentID string) (CommitmentDetail, error) {
	c, err := s.commitmentRepo.GetCommitment(ctx, commitmentID)
	if err != nil {
		return CommitmentDetail{}, err
	}

	if err := s.attachDistributions(ctx, &c); err != nil {
		return CommitmentDetail{}, err
	}

	return CommitmentDetail{Commitment: c, Position: valuation.PositionOf(c)}, nil
}

// attachDistributions loads the distributions of c, leaving an empty list when there are none.
func (s *CommitmentService) attachDistributions(ctx context.Context, c *model.Commitment) error {
	distributions, err := s.distributionRepo.GetDistributions(ctx, []string{c.ID})
	if err != nil {
		return err
	}
	c.Distributions = distributions[c.ID]
	if c.Distributions == nil {
		c.Distributions = []model.Distribution{}
	}
	return nil
}

// CreateCommitment records an investor's commitment to a fund. Stage defaults to outreach.
// Returns ErrInvestorNotFound, ErrFundNotFound or ErrDuplicateCommitment.
func (s *CommitmentService) CreateCommitment(ctx context.Context, req request.CreateCommitmentRequest) (*model.Commitment, error) {
	stage := model.StageOutreach
	if req.Stage != "" {
		var err error
		if stage, err = model.ParsePipelineStage(req.Stage); err != nil {
			return nil, err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	inv, err := s.investorRepo.WithTx(tx).GetInvestor(ctx, req.InvestorID)
	if err != nil {
		return nil, err
	}
	if _, err := s.fundRepo.WithTx(tx).GetFund(ctx, req.FundID); err != nil {
		return nil, err
	}

	c := &model.Commitment{
		InvestorID:       inv.ID,
		InvestorName:     inv.DisplayName,
		InvestorFirm:     inv.FirmName,
		FundID:           req.FundID,
		Stage:            stage,
		CommitmentAmount: req.CommitmentAmount,
		FundedAmount:     req.FundedAmount,
		CurrentNAV:       req.CurrentNAV,
		Distributions:    []model.Distribution{},
	}

	if err := s.commitmentRepo.WithTx(tx).InsertCommitment(ctx, c); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return c, nil
}

// UpdateCommitment applies the set fields of req to a commitment.
func (s *CommitmentService) UpdateCommitment(ctx context.Context, commitmentID string, req request.UpdateCommitmentRequest) (*model.Commitment, error) {
	c, err := s.commitmentRepo.GetCommitment(ctx, commitmentID)
	if err != nil {
		return nil, err
	}

	if req.Stage != nil {
		if c.Stage, err = model.ParsePipelineStage(*req.Stage); err != nil {
			return nil, err
		}
	}
	if req.CommitmentAmount != nil {
		c.CommitmentAmount = *req.CommitmentAmount
	}
	if req.FundedAmount != nil {
		c.FundedAmount = *req.FundedAmount
	}
	if req.CurrentNAV != nil {
		c.CurrentNAV = *req.CurrentNAV
	}

	if err := s.commitmentRepo.UpdateCommitment(ctx, &c); err != nil {
		return nil, err
	}
	if err := s.attachDistributions(ctx, &c); err != nil {
		return nil, err
	}

	return &c, nil
}

// UpdateStage moves a commitment to any stage, forwards or backwards.
func (s *CommitmentService) UpdateStage(ctx context.Context, commitmentID string, req request.UpdateStageRequest) (*model.Commitment, error) {
	stage, err := model.ParsePipelineStage(req.Stage)
	if err != nil {
		return nil, err
	}

	if err := s.commitmentRepo.UpdateStage(ctx, commitmentID, stage); err != nil {
		return nil, err
	}

	c, err := s.commitmentRepo.GetCommitment(ctx, commitmentID)
	if err != nil {
		return nil, err
	}
	if err := s.attachDistributions(ctx, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// DeleteCommitment removes a commitment and its distributions.
func (s *CommitmentService) DeleteCommitment(ctx context.Context, commitmentID string) error {
	return s.commitmentRepo.DeleteCommitment(ctx, commitmentID)
}

// AddDistribution records a cash distribution against a commitment.
// Returns ErrCommitmentNotFound if the commitment does not exist.
func (s *CommitmentService) AddDistribution(ctx context.Context, commitmentID string, req request.CreateDistributionRequest) (*model.Distribution, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.commitmentRepo.WithTx(tx).TouchCommitment(ctx, commitmentID); err != nil {
		return nil, err
	}

	d := &model.Distribution{
		CommitmentID: commitmentID,
		Date:         date,
		Amount:       req.Amount,
		Type:         model.DistributionType(req.Type),
	}
	if err := s.distributionRepo.WithTx(tx).InsertDistribution(ctx, d); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return d, nil
}

// DeleteDistribution removes a distribution and bumps its commitment's updated_at.
func (s *CommitmentService) DeleteDistribution(ctx context.Context, distributionID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	distributionRepo := s.distributionRepo.WithTx(tx)
	d, err := distributionRepo.GetDistribution(ctx, distributionID)
	if err != nil {
		return err
	}
	if err := distributionRepo.DeleteDistribution(ctx, distributionID); err != nil {
		return err
	}
	if err := s.commitmentRepo.WithTx(tx).TouchCommitment(ctx, d.CommitmentID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
