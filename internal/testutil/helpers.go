package testutil

import (
	"database/sql"
	"math/rand"
	"testing"

	"github.com/google/uuid"

	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/crypto"
	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/repository"
	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/service"
	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/valuation"
)

// Repositories bundles every repository bound to one database.
type Repositories struct {
	Fund         *repository.FundRepository
	Company      *repository.CompanyRepository
	Round        *repository.RoundRepository
	Investor     *repository.InvestorRepository
	Commitment   *repository.CommitmentRepository
	Distribution *repository.DistributionRepository
}

// NewTestRepositories creates plaintext repositories for db.
func NewTestRepositories(t *testing.T, db *sql.DB) Repositories {
	t.Helper()
	return NewTestRepositoriesWithCipher(t, db, nil)
}

// NewTestRepositoriesWithCipher creates repositories whose investor contact details are sealed
// with cipher.
func NewTestRepositoriesWithCipher(t *testing.T, db *sql.DB, cipher *crypto.FieldCipher) Repositories {
	t.Helper()

	return Repositories{
		Fund:         repository.NewFundRepository(db),
		Company:      repository.NewCompanyRepository(db),
		Round:        repository.NewRoundRepository(db),
		Investor:     repository.NewInvestorRepository(db, cipher),
		Commitment:   repository.NewCommitmentRepository(db),
		Distribution: repository.NewDistributionRepository(db),
	}
}

func NewTestDataLoaderService(t *testing.T, db *sql.DB) *service.DataLoaderService {
	t.Helper()

	r := NewTestRepositories(t, db)
	return service.NewDataLoaderService(r.Fund, r.Company, r.Round, r.Investor, r.Commitment, r.Distribution)
}

func NewTestPortfolioService(t *testing.T, db *sql.DB) *service.PortfolioService {
	t.Helper()

	return service.NewPortfolioService(
		repository.NewFundRepository(db),
		NewTestDataLoaderService(t, db),
	)
}

func NewTestFundService(t *testing.T, db *sql.DB) *service.FundService {
	t.Helper()

	return service.NewFundService(
		repository.NewFundRepository(db),
		NewTestDataLoaderService(t, db),
		NewTestPortfolioService(t, db),
	)
}

func NewTestCompanyService(t *testing.T, db *sql.DB) *service.CompanyService {
	t.Helper()

	r := NewTestRepositories(t, db)
	return service.NewCompanyService(db, r.Company, r.Round, r.Fund, NewTestDataLoaderService(t, db))
}

func NewTestInvestorService(t *testing.T, db *sql.DB) *service.InvestorService {
	t.Helper()
	return NewTestInvestorServiceWithMode(t, db, valuation.IdentityByID)
}

// NewTestInvestorServiceWithMode creates an InvestorService using the given identity mode.
func NewTestInvestorServiceWithMode(t *testing.T, db *sql.DB, mode valuation.IdentityMode) *service.InvestorService {
	t.Helper()

	return service.NewInvestorService(
		repository.NewInvestorRepository(db, nil),
		NewTestDataLoaderService(t, db),
		mode,
	)
}

func NewTestCommitmentService(t *testing.T, db *sql.DB) *service.CommitmentService {
	t.Helper()

	r := NewTestRepositories(t, db)
	return service.NewCommitmentService(db, r.Commitment, r.Distribution, r.Investor, r.Fund, NewTestDataLoaderService(t, db))
}

func NewTestDashboardService(t *testing.T, db *sql.DB) *service.DashboardService {
	t.Helper()

	return service.NewDashboardService(NewTestDataLoaderService(t, db))
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// MakeFundName generates a unique fund name for testing.
//
// Example usage:
//
//	name := testutil.MakeFundName("Fund")
//	// Returns: "Fund XYZ789"
func MakeFundName(base string) string {
	if base == "" {
		base = "Fund"
	}
	return base + " " + randomAlphanumeric(6)
}

// MakeCompanyName generates a unique company name for testing.
func MakeCompanyName(base string) string {
	if base == "" {
		base = "Company"
	}
	return base + " " + randomAlphanumeric(6)
}

// MakeInvestorName generates a unique investor name for testing.
func MakeInvestorName(base string) string {
	if base == "" {
		base = "Investor"
	}
	return base + " " + randomAlphanumeric(6)
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
