package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/apperrors"
	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/model"
)

// CompanyRepository provides data access methods for the portfolio_company table.
// Rounds are loaded separately through RoundRepository.
type CompanyRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewCompanyRepository creates a new CompanyRepository with the provided database connection.
func NewCompanyRepository(db *sql.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

func (r *CompanyRepository) WithTx(tx *sql.Tx) *CompanyRepository {
	return &CompanyRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *CompanyRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const companyColumns = `id, name, sector, manual_fmv_override, created_at`

// GetCompanies retrieves all portfolio companies ordered by name.
func (r *CompanyRepository) GetCompanies(ctx context.Context) ([]model.PortfolioCompany, error) {
	query := `SELECT ` + companyColumns + ` FROM portfolio_company ORDER BY name ASC`

	rows, err := r.getQuerier().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolio_company table: %w", err)
	}
	defer rows.Close()

	companies := []model.PortfolioCompany{}
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan portfolio_company results: %w", err)
		}
		companies = append(companies, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating portfolio_company table: %w", err)
	}

	return companies, nil
}

// GetCompany retrieves a single portfolio company by its ID, without rounds.
// Returns ErrCompanyNotFound if no company with the given ID exists.
func (r *CompanyRepository) GetCompany(ctx context.Context, companyID string) (model.PortfolioCompany, error) {
	query := `SELECT ` + companyColumns + ` FROM portfolio_company WHERE id = ?`

	c, err := scanCompany(r.getQuerier().QueryRowContext(ctx, query, companyID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.PortfolioCompany{}, apperrors.ErrCompanyNotFound
	}
	if err != nil {
		return model.PortfolioCompany{}, fmt.Errorf("failed to get portfolio company: %w", err)
	}

	return c, nil
}

// InsertCompany creates a portfolio company.
func (r *CompanyRepository) InsertCompany(ctx context.Context, c *model.PortfolioCompany) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	createdAt := now()

	query := `
		INSERT INTO portfolio_company (id, name, sector, manual_fmv_override, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.getQuerier().ExecContext(ctx, query,
		c.ID,
		c.Name,
		c.Sector,
		c.ManualFMVOverride,
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert portfolio company: %w", err)
	}

	c.CreatedAt, _ = ParseTime(createdAt)
	return nil
}

// UpdateCompany overwrites name, sector and the manual FMV override.
// Returns ErrCompanyNotFound if no company with the given ID exists.
func (r *CompanyRepository) UpdateCompany(ctx context.Context, c *model.PortfolioCompany) error {
	query := `
		UPDATE portfolio_company
		SET name = ?, sector = ?, manual_fmv_override = ?
		WHERE id = ?
	`

	result, err := r.getQuerier().ExecContext(ctx, query,
		c.Name,
		c.Sector,
		c.ManualFMVOverride,
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update portfolio company: %w", err)
	}

	return checkAffected(result, apperrors.ErrCompanyNotFound)
}

// DeleteCompany removes a portfolio company and all of its financing rounds.
// Returns ErrCompanyNotFound if no company with the given ID exists.
func (r *CompanyRepository) DeleteCompany(ctx context.Context, companyID string) error {
	result, err := r.getQuerier().ExecContext(ctx, `DELETE FROM portfolio_company WHERE id = ?`, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete portfolio company: %w", err)
	}

	return checkAffected(result, apperrors.ErrCompanyNotFound)
}

func scanCompany(row rowScanner) (model.PortfolioCompany, error) {
	var c model.PortfolioCompany
	var createdAt string

	if err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Sector,
		&c.ManualFMVOverride,
		&createdAt,
	); err != nil {
		return model.PortfolioCompany{}, err
	}

	t, err := ParseTime(createdAt)
	if err != nil {
		return model.PortfolioCompany{}, err
	}
	c.CreatedAt = t

	return c, nil
}
