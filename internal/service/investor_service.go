package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/api/request"
	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/model"
	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/repository"
	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/valuation"
)

// InvestorService handles limited partners and their capital-account rollups.
type InvestorService struct {
	investorRepo      *repository.InvestorRepository
	dataLoaderService *DataLoaderService
	identity          valuation.IdentityMode
}

// NewInvestorService creates a new InvestorService. identity selects how commitments are
// attributed to investors in rollups.
func NewInvestorService(
	investorRepo *repository.InvestorRepository,
	dataLoaderService *DataLoaderService,
	identity valuation.IdentityMode,
) *InvestorService {
	if identity == "" {
		identity = valuation.IdentityByID
	}
	return &InvestorService{
		investorRepo:      investorRepo,
		dataLoaderService: dataLoaderService,
		identity:          identity,
	}
}

// DirectoryFilter narrows the investor directory.
//
// Fields:
//   - Partner: exact relationship owner match
//   - Query: case-insensitive substring of display name, firm or email
type DirectoryFilter struct {
	Partner string
	Query   string
}

func (f DirectoryFilter) matches(inv model.Investor) bool {
	if f.Partner != "" && inv.RelationshipOwner != f.Partner {
		return false
	}
	if f.Query == "" {
		return true
	}
	q := strings.ToLower(f.Query)
	for _, field := range []string{inv.DisplayName, inv.FirmName, inv.Email} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// GetInvestors retrieves all investors.
func (s *InvestorService) GetInvestors(ctx context.Context) ([]model.Investor, error) {
	return s.investorRepo.GetInvestors(ctx)
}

// GetInvestor retrieves one investor.
func (s *InvestorService) GetInvestor(ctx context.Context, investorID string) (model.Investor, error) {
	return s.investorRepo.GetInvestor(ctx, investorID)
}

// CreateInvestor creates an investor.
func (s *InvestorService) CreateInvestor(ctx context.Context, req request.CreateInvestorRequest) (*model.Investor, error) {
	inv := &model.Investor{
		DisplayName:       req.DisplayName,
		FirmName:          req.FirmName,
		Email:             req.Email,
		Phone:             req.Phone,
		Tier:              model.InvestorTier(req.Tier),
		RelationshipOwner: req.RelationshipOwner,
	}

	if err := s.investorRepo.InsertInvestor(ctx, inv); err != nil {
		return nil, fmt.Errorf("failed to create investor: %w", err)
	}

	return inv, nil
}

// UpdateInvestor applies the set fields of req to an investor.
func (s *InvestorService) UpdateInvestor(ctx context.Context, investorID string, req request.UpdateInvestorRequest) (*model.Investor, error) {
	inv, err := s.investorRepo.GetInvestor(ctx, investorID)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		inv.DisplayName = *req.DisplayName
	}
	if req.FirmName != nil {
		inv.FirmName = *req.FirmName
	}
	if req.Email != nil {
		inv.Email = *req.Email
	}
	if req.Phone != nil {
		inv.Phone = *req.Phone
	}
	if req.Tier != nil {
		inv.Tier = model.InvestorTier(*req.Tier)
	}
	if req.RelationshipOwner != nil {
		inv.RelationshipOwner = *req.RelationshipOwner
	}

	if err := s.investorRepo.UpdateInvestor(ctx, &inv); err != nil {
		return nil, err
	}

	return &inv, nil
}

// DeleteInvestor removes an investor and its commitments.
func (s *InvestorService) DeleteInvestor(ctx context.Context, investorID string) error {
	return s.investorRepo.DeleteInvestor(ctx, investorID)
}

// GetDirectory builds one rollup per investor identity for the investors matching filter.
// Commitments are matched against the full commitment table, so a filtered investor still
// reports every fund it is in.
func (s *InvestorService) GetDirectory(ctx context.Context, filter DirectoryFilter) ([]valuation.InvestorRollup, error) {
	investors, err := s.investorRepo.GetInvestors(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]model.Investor, 0, len(investors))
	for _, inv := range investors {
		if filter.matches(inv) {
			matched = append(matched, inv)
		}
	}

	commitments, err := s.dataLoaderService.LoadCommitments(ctx, repository.CommitmentFilter{})
	if err != nil {
		return nil, err
	}

	return valuation.GroupInvestors(matched, commitments, s.identity), nil
}

// GetInvestorRollup sums one investor's commitments across funds.
// In name_firm identity mode commitments of other investor records with the same literal
// name and firm are included.
func (s *InvestorService) GetInvestorRollup(ctx context.Context, investorID string) (valuation.InvestorRollup, error) {
	inv, err := s.investorRepo.GetInvestor(ctx, investorID)
	if err != nil {
		return valuation.InvestorRollup{}, err
	}

	filter := repository.CommitmentFilter{InvestorID: investorID}
	if s.identity == valuation.IdentityByNameFirm {
		filter = repository.CommitmentFilter{}
	}

	commitments, err := s.dataLoaderService.LoadCommitments(ctx, filter)
	if err != nil {
		return valuation.InvestorRollup{}, err
	}

	rollup := valuation.AggregateInvestor(valuation.InvestorKey(s.identity, inv), commitments, s.identity)
	rollup.DisplayName = inv.DisplayName
	rollup.FirmName = inv.FirmName
	if len(rollup.InvestorIDs) == 0 {
		rollup.InvestorIDs = []string{inv.ID}
	}

	return rollup, nil
}
