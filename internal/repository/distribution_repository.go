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

// DistributionRepository provides data access methods for the distribution table.
type DistributionRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewDistributionRepository creates a new DistributionRepository with the provided database connection.
func NewDistributionRepository(db *sql.DB) *DistributionRepository {
	return &DistributionRepository{db: db}
}

func (r *DistributionRepository) WithTx(tx *sql.Tx) *DistributionRepository {
	return &DistributionRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *DistributionRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// GetDistributions retrieves distributions grouped by commitment ID, oldest first.
// A nil commitmentIDs slice loads every distribution; an empty one loads none.
func (r *DistributionRepository) GetDistributions(ctx context.Context, commitmentIDs []string) (map[string][]model.Distribution, error) {
	result := make(map[string][]model.Distribution)
	if commitmentIDs != nil && len(commitmentIDs) == 0 {
		return result, nil
	}

	query := `SELECT id, commitment_id, date, amount, type FROM distribution`

	var args []any
	if commitmentIDs != nil {
		//#nosec G202 -- Safe: placeholders are generated programmatically, not from user input
		query += ` WHERE commitment_id IN (` + placeholders(len(commitmentIDs)) + `)`
		for _, id := range commitmentIDs {
			args = append(args, id)
		}
	}
	query += ` ORDER BY date ASC, id ASC`

	rows, err := r.getQuerier().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query distribution table: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		d, err := scanDistribution(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan distribution results: %w", err)
		}
		result[d.CommitmentID] = append(result[d.CommitmentID], d)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating distribution table: %w", err)
	}

	return result, nil
}

// GetDistribution retrieves a single distribution by its ID.
// Returns ErrDistributionNotFound if no distribution with the given ID exists.
func (r *DistributionRepository) GetDistribution(ctx context.Context, distributionID string) (model.Distribution, error) {
	query := `SELECT id, commitment_id, date, amount, type FROM distribution WHERE id = ?`

	d, err := scanDistribution(r.getQuerier().QueryRowContext(ctx, query, distributionID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Distribution{}, apperrors.ErrDistributionNotFound
	}
	if err != nil {
		return model.Distribution{}, fmt.Errorf("failed to get distribution: %w", err)
	}

	return d, nil
}

// InsertDistribution records a cash distribution against a commitment.
func (r *DistributionRepository) InsertDistribution(ctx context.Context, d *model.Distribution) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}

	query := `
		INSERT INTO distribution (id, commitment_id, date, amount, type)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.getQuerier().ExecContext(ctx, query,
		d.ID,
		d.CommitmentID,
		formatDate(d.Date),
		d.Amount,
		d.Type,
	)
	if err != nil {
		return fmt.Errorf("failed to insert distribution: %w", err)
	}

	return nil
}

// DeleteDistribution removes a distribution.
// Returns ErrDistributionNotFound if no distribution with the given ID exists.
func (r *DistributionRepository) DeleteDistribution(ctx context.Context, distributionID string) error {
	result, err := r.getQuerier().ExecContext(ctx, `DELETE FROM distribution WHERE id = ?`, distributionID)
	if err != nil {
		return fmt.Errorf("failed to delete distribution: %w", err)
	}

	return checkAffected(result, apperrors.ErrDistributionNotFound)
}

func scanDistribution(row rowScanner) (model.Distribution, error) {
	var d model.Distribution
	var date string

	if err := row.Scan(&d.ID, &d.CommitmentID, &date, &d.Amount, &d.Type); err != nil {
		return model.Distribution{}, err
	}

	t, err := ParseTime(date)
	if err != nil {
		return model.Distribution{}, err
	}
	d.Date = t

	return d, nil
}
