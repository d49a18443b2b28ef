package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrFundNotFound indicates that a fund with the given ID does not exist.
	ErrFundNotFound = errors.New("fund not found")

	// ErrCompanyNotFound indicates that a portfolio company with the given ID does not exist.
	ErrCompanyNotFound = errors.New("portfolio company not found")

	// ErrRoundNotFound indicates that a financing round with the given ID does not exist.
	ErrRoundNotFound = errors.New("financing round not found")

	// ErrInvestorNotFound indicates that an investor with the given ID does not exist.
	ErrInvestorNotFound = errors.New("investor not found")

	// ErrCommitmentNotFound indicates that a commitment with the given ID does not exist.
	ErrCommitmentNotFound = errors.New("commitment not found")

	// ErrDistributionNotFound indicates that a distribution with the given ID does not exist.
	ErrDistributionNotFound = errors.New("distribution not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")

	// ErrDuplicateEntry indicates that an entity with the same unique constraint already exists.
	ErrDuplicateEntry = errors.New("duplicate entry")

	// ErrDuplicateCommitment indicates that the investor already holds a commitment in the fund.
	ErrDuplicateCommitment = errors.New("investor already has a commitment in this fund")

	// ErrInvalidScope indicates an unknown fundraising scope parameter.
	ErrInvalidScope = errors.New("scope must be 'all' or 'closed'")

	// ErrDecryptionFailed indicates a stored field could not be decrypted with the configured key.
	ErrDecryptionFailed = errors.New("failed to decrypt field")
)

// Operation failure errors represent system-level failures when retrieving or processing data.
// These errors indicate that an operation failed, but not due to missing entities or validation issues.
var (
	ErrFailedToRetrieveFunds       = errors.New("failed to retrieve funds")
	ErrFailedToRetrieveFund        = errors.New("failed to retrieve fund")
	ErrFailedToRetrieveCompanies   = errors.New("failed to retrieve portfolio companies")
	ErrFailedToRetrieveCompany     = errors.New("failed to retrieve portfolio company")
	ErrFailedToRetrieveInvestors   = errors.New("failed to retrieve investors")
	ErrFailedToRetrieveInvestor    = errors.New("failed to retrieve investor")
	ErrFailedToRetrieveCommitments = errors.New("failed to retrieve commitments")
	ErrFailedToRetrieveCommitment  = errors.New("failed to retrieve commitment")
	ErrFailedToGetPortfolioSummary = errors.New("failed to get portfolio summary")
	ErrFailedToGetFundProgress     = errors.New("failed to get fund progress")
	ErrFailedToGetInvestorRollup   = errors.New("failed to get investor rollup")
	ErrFailedToGetDashboard        = errors.New("failed to get dashboard")
	ErrFailedToGetVersionInfo      = errors.New("failed to get version information")
)

// Data integrity errors represent inconsistencies or corruption in the data.
var (
	// ErrDataInconsistency indicates that the data is in an inconsistent state
	// (e.g., a commitment references an investor that no longer exists).
	ErrDataInconsistency = errors.New("data inconsistency detected")
)
