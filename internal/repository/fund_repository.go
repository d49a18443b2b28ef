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

// FundRepository provides data access methods for the fund table.
type FundRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewFundRepository creates a new FundRepository with the provided database connection.
func NewFundRepository(db *sql.DB) *FundRepository {
	return &FundRepository{db: db}
}

func (r *FundRepository) WithTx(tx *sql.Tx) *FundRepository {
	return &FundRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *FundRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const fundColumns = `id, name, vintage_year, target_amount, status, created_at`

// GetFunds retrieves all funds ordered by vintage year.
// Returns an empty slice if no funds are found.
func (r *FundRepository) GetFunds(ctx context.Context) ([]model.Fund, error) {
	query := `SELECT ` + fundColumns + ` FROM fund ORDER BY vintage_year ASC, name ASC`

	rows, err := r.getQuerier().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query fund table: %w", err)
	}
	defer rows.Close()

	funds := []model.Fund{}
	for rows.Next() {
		f, err := scanFund(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fund table results: %w", err)
		}
		funds = append(funds, f)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fund table: %w", err)
	}

	return funds, nil
}

// GetFund retrieves a single fund by its ID.
// Returns ErrFundNotFound if no fund with the given ID exists.
func (r *FundRepository) GetFund(ctx context.Context, fundID string) (model.Fund, error) {
	query := `SELECT ` + fundColumns + ` FROM fund WHERE id = ?`

	f, err := scanFund(r.getQuerier().QueryRowContext(ctx, query, fundID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Fund{}, apperrors.ErrFundNotFound
	}
	if err != nil {
		return model.Fund{}, fmt.Errorf("failed to get fund: %w", err)
	}

	return f, nil
}

// InsertFund creates a fund. The ID and creation time are assigned here.
// Returns ErrDuplicateEntry if a fund with the same name exists.
func (r *FundRepository) InsertFund(ctx context.Context, f *model.Fund) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	createdAt := now()

	query := `
		INSERT INTO fund (id, name, vintage_year, target_amount, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.getQuerier().ExecContext(ctx, query,
		f.ID,
		f.Name,
		f.VintageYear,
		f.TargetAmount,
		f.Status,
		createdAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: fund %q", apperrors.ErrDuplicateEntry, f.Name)
	}
	if err != nil {
		return fmt.Errorf("failed to insert fund: %w", err)
	}

	f.CreatedAt, _ = ParseTime(createdAt)
	return nil
}

// UpdateFund overwrites the mutable columns of a fund.
// Returns ErrFundNotFound if no fund with the given ID exists.
func (r *FundRepository) UpdateFund(ctx context.Context, f *model.Fund) error {
	query := `
		UPDATE fund
		SET name = ?, vintage_year = ?, target_amount = ?, status = ?
		WHERE id = ?
	`

	result, err := r.getQuerier().ExecContext(ctx, query,
		f.Name,
		f.VintageYear,
		f.TargetAmount,
		f.Status,
		f.ID,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: fund %q", apperrors.ErrDuplicateEntry, f.Name)
	}
	if err != nil {
		return fmt.Errorf("failed to update fund: %w", err)
	}

	return checkAffected(result, apperrors.ErrFundNotFound)
}

// DeleteFund removes a fund. Its commitments are deleted with it and its financing rounds
// become untagged.
// Returns ErrFundNotFound if no fund with the given ID exists.
func (r *FundRepository) DeleteFund(ctx context.Context, fundID string) error {
	result, err := r.getQuerier().ExecContext(ctx, `DELETE FROM fund WHERE id = ?`, fundID)
	if err != nil {
		return fmt.Errorf("failed to delete fund: %w", err)
	}

	return checkAffected(result, apperrors.ErrFundNotFound)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFund(row rowScanner) (model.Fund, error) {
	var f model.Fund
	var createdAt string

	if err := row.Scan(
		&f.ID,
		&f.Name,
		&f.VintageYear,
		&f.TargetAmount,
		&f.Status,
		&createdAt,
	); err != nil {
		return model.Fund{}, err
	}

	t, err := ParseTime(createdAt)
	if err != nil {
		return model.Fund{}, err
	}
	f.CreatedAt = t

	return f, nil
}
