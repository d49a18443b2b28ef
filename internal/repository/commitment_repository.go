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

// CommitmentRepository provides data access methods for the commitment table.
// Investor name and firm are joined in so commitments can be grouped by either identity mode.
// Distributions are not loaded here; see DistributionRepository.
type CommitmentRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// CommitmentFilter narrows GetCommitments. Empty fields match everything.
type CommitmentFilter struct {
	FundID     string
	InvestorID string
}

// NewCommitmentRepository creates a new CommitmentRepository with the provided database connection.
func NewCommitmentRepository(db *sql.DB) *CommitmentRepository {
	return &CommitmentRepository{db: db}
}

func (r *CommitmentRepository) WithTx(tx *sql.Tx) *CommitmentRepository {
	return &CommitmentRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *CommitmentRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const commitmentSelect = `
	SELECT c.id, c.investor_id, i.display_name, i.firm_name, c.fund_id, c.stage,
		c.commitment_amount, c.funded_amount, c.current_nav, c.created_at, c.updated_at
	FROM commitment c
	INNER JOIN investor i ON i.id = c.investor_id
	INNER JOIN fund f ON f.id = c.fund_id
`

// GetCommitments retrieves commitments matching the filter, ordered by investor and fund.
func (r *CommitmentRepository) GetCommitments(ctx context.Context, filter CommitmentFilter) ([]model.Commitment, error) {
	query := commitmentSelect + ` WHERE 1 = 1`

	var args []any
	if filter.FundID != "" {
		query += ` AND c.fund_id = ?`
		args = append(args, filter.FundID)
	}
	if filter.InvestorID != "" {
		query += ` AND c.investor_id = ?`
		args = append(args, filter.InvestorID)
	}
	query += ` ORDER BY i.display_name ASC, i.firm_name ASC, c.created_at ASC`

	rows, err := r.getQuerier().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query commitment table: %w", err)
	}
	defer rows.Close()

	commitments := []model.Commitment{}
	for rows.Next() {
		c, err := scanCommitment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan commitment results: %w", err)
		}
		commitments = append(commitments, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating commitment table: %w", err)
	}

	return commitments, nil
}

// GetCommitment retrieves a single commitment by its ID.
// Returns ErrCommitmentNotFound if no commitment with the given ID exists.
func (r *CommitmentRepository) GetCommitment(ctx context.Context, commitmentID string) (model.Commitment, error) {
	query := commitmentSelect + ` WHERE c.id = ?`

	c, err := scanCommitment(r.getQuerier().QueryRowContext(ctx, query, commitmentID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Commitment{}, apperrors.ErrCommitmentNotFound
	}
	if err != nil {
		return model.Commitment{}, fmt.Errorf("failed to get commitment: %w", err)
	}

	return c, nil
}

// InsertCommitment creates a commitment.
// Returns ErrDuplicateCommitment if the investor already has a commitment in the fund.
func (r *CommitmentRepository) InsertCommitment(ctx context.Context, c *model.Commitment) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	ts := now()

	query := `
		INSERT INTO commitment (
			id, investor_id, fund_id, stage, commitment_amount, funded_amount, current_nav,
			created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.getQuerier().ExecContext(ctx, query,
		c.ID,
		c.InvestorID,
		c.FundID,
		c.Stage,
		c.CommitmentAmount,
		c.FundedAmount,
		c.CurrentNAV,
		ts,
		ts,
	)
	if isUniqueViolation(err) {
		return apperrors.ErrDuplicateCommitment
	}
	if err != nil {
		return fmt.Errorf("failed to insert commitment: %w", err)
	}

	c.CreatedAt, _ = ParseTime(ts)
	c.UpdatedAt = c.CreatedAt
	return nil
}

// UpdateCommitment overwrites stage and amounts. Investor and fund never change.
// Returns ErrCommitmentNotFound if no commitment with the given ID exists.
func (r *CommitmentRepository) UpdateCommitment(ctx context.Context, c *model.Commitment) error {
	ts := now()

	query := `
		UPDATE commitment
		SET stage = ?, commitment_amount = ?, funded_amount = ?, current_nav = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.getQuerier().ExecContext(ctx, query,
		c.Stage,
		c.CommitmentAmount,
		c.FundedAmount,
		c.CurrentNAV,
		ts,
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update commitment: %w", err)
	}

	if err := checkAffected(result, apperrors.ErrCommitmentNotFound); err != nil {
		return err
	}
	c.UpdatedAt, _ = ParseTime(ts)
	return nil
}

// UpdateStage moves a commitment to any pipeline stage.
// Returns ErrCommitmentNotFound if no commitment with the given ID exists.
func (r *CommitmentRepository) UpdateStage(ctx context.Context, commitmentID string, stage model.PipelineStage) error {
	query := `UPDATE commitment SET stage = ?, updated_at = ? WHERE id = ?`

	result, err := r.getQuerier().ExecContext(ctx, query, stage, now(), commitmentID)
	if err != nil {
		return fmt.Errorf("failed to update commitment stage: %w", err)
	}

	return checkAffected(result, apperrors.ErrCommitmentNotFound)
}

// TouchCommitment bumps updated_at, used when a distribution is added or removed.
func (r *CommitmentRepository) TouchCommitment(ctx context.Context, commitmentID string) error {
	result, err := r.getQuerier().ExecContext(ctx, `UPDATE commitment SET updated_at = ? WHERE id = ?`, now(), commitmentID)
	if err != nil {
		return fmt.Errorf("failed to touch commitment: %w", err)
	}

	return checkAffected(result, apperrors.ErrCommitmentNotFound)
}

// DeleteCommitment removes a commitment and its distributions.
// Returns ErrCommitmentNotFound if no commitment with the given ID exists.
func (r *CommitmentRepository) DeleteCommitment(ctx context.Context, commitmentID string) error {
	result, err := r.getQuerier().ExecContext(ctx, `DELETE FROM commitment WHERE id = ?`, commitmentID)
	if err != nil {
		return fmt.Errorf("failed to delete commitment: %w", err)
	}

	return checkAffected(result, apperrors.ErrCommitmentNotFound)
}

func scanCommitment(row rowScanner) (model.Commitment, error) {
	var c model.Commitment
	var createdAt, updatedAt string

	if err := row.Scan(
		&c.ID,
		&c.InvestorID,
		&c.InvestorName,
		&c.InvestorFirm,
		&c.FundID,
		&c.Stage,
		&c.CommitmentAmount,
		&c.FundedAmount,
		&c.CurrentNAV,
		&createdAt,
		&updatedAt,
	); err != nil {
		return model.Commitment{}, err
	}

	var err error
	if c.CreatedAt, err = ParseTime(createdAt); err != nil {
		return model.Commitment{}, err
	}
	if c.UpdatedAt, err = ParseTime(updatedAt); err != nil {
		return model.Commitment{}, err
	}
	c.Distributions = []model.Distribution{}

	return c, nil
}
