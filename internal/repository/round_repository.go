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

// RoundRepository provides data access methods for the financing_round table.
type RoundRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewRoundRepository creates a new RoundRepository with the provided database connection.
func NewRoundRepository(db *sql.DB) *RoundRepository {
	return &RoundRepository{db: db}
}

func (r *RoundRepository) WithTx(tx *sql.Tx) *RoundRepository {
	return &RoundRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *RoundRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const roundColumns = `id, company_id, fund_id, instrument_type, investment_date, invested_amount,
	share_count, cost_per_share, converted, sequence, created_at`

// GetRounds retrieves financing rounds ordered by investment date and insertion sequence.
// An empty companyID returns the rounds of every company.
func (r *RoundRepository) GetRounds(ctx context.Context, companyID string) ([]model.FinancingRound, error) {
	query := `SELECT ` + roundColumns + ` FROM financing_round`

	var args []any
	if companyID != "" {
		query += ` WHERE company_id = ?`
		args = append(args, companyID)
	}
	query += ` ORDER BY company_id ASC, investment_date ASC, sequence ASC`

	rows, err := r.getQuerier().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query financing_round table: %w", err)
	}
	defer rows.Close()

	rounds := []model.FinancingRound{}
	for rows.Next() {
		fr, err := scanRound(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan financing_round results: %w", err)
		}
		rounds = append(rounds, fr)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating financing_round table: %w", err)
	}

	return rounds, nil
}

// GetRound retrieves a single financing round by its ID.
// Returns ErrRoundNotFound if no round with the given ID exists.
func (r *RoundRepository) GetRound(ctx context.Context, roundID string) (model.FinancingRound, error) {
	query := `SELECT ` + roundColumns + ` FROM financing_round WHERE id = ?`

	fr, err := scanRound(r.getQuerier().QueryRowContext(ctx, query, roundID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.FinancingRound{}, apperrors.ErrRoundNotFound
	}
	if err != nil {
		return model.FinancingRound{}, fmt.Errorf("failed to get financing round: %w", err)
	}

	return fr, nil
}

// InsertRound creates a financing round and assigns it the next sequence number within its
// company, so later inserts win FMV ties on the same investment date.
func (r *RoundRepository) InsertRound(ctx context.Context, fr *model.FinancingRound) error {
	if fr.ID == "" {
		fr.ID = uuid.New().String()
	}
	createdAt := now()

	query := `
		INSERT INTO financing_round (
			id, company_id, fund_id, instrument_type, investment_date, invested_amount,
			share_count, cost_per_share, converted, sequence, created_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?,
			(SELECT COALESCE(MAX(sequence), 0) + 1 FROM financing_round WHERE company_id = ?),
			?)
		RETURNING sequence
	`

	err := r.getQuerier().QueryRowContext(ctx, query,
		fr.ID,
		fr.CompanyID,
		fr.FundID,
		fr.InstrumentType,
		formatDate(fr.InvestmentDate),
		fr.InvestedAmount,
		fr.ShareCount,
		fr.CostPerShare,
		fr.Converted,
		fr.CompanyID,
		createdAt,
	).Scan(&fr.Sequence)
	if err != nil {
		return fmt.Errorf("failed to insert financing round: %w", err)
	}

	fr.CreatedAt, _ = ParseTime(createdAt)
	return nil
}

// UpdateRound overwrites the mutable columns of a round. Company and sequence never change.
// Returns ErrRoundNotFound if no round with the given ID exists.
func (r *RoundRepository) UpdateRound(ctx context.Context, fr *model.FinancingRound) error {
	query := `
		UPDATE financing_round
		SET fund_id = ?, instrument_type = ?, investment_date = ?, invested_amount = ?,
			share_count = ?, cost_per_share = ?, converted = ?
		WHERE id = ?
	`

	result, err := r.getQuerier().ExecContext(ctx, query,
		fr.FundID,
		fr.InstrumentType,
		formatDate(fr.InvestmentDate),
		fr.InvestedAmount,
		fr.ShareCount,
		fr.CostPerShare,
		fr.Converted,
		fr.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update financing round: %w", err)
	}

	return checkAffected(result, apperrors.ErrRoundNotFound)
}

// DeleteRound removes a financing round.
// Returns ErrRoundNotFound if no round with the given ID exists.
func (r *RoundRepository) DeleteRound(ctx context.Context, roundID string) error {
	result, err := r.getQuerier().ExecContext(ctx, `DELETE FROM financing_round WHERE id = ?`, roundID)
	if err != nil {
		return fmt.Errorf("failed to delete financing round: %w", err)
	}

	return checkAffected(result, apperrors.ErrRoundNotFound)
}

func scanRound(row rowScanner) (model.FinancingRound, error) {
	var fr model.FinancingRound
	var fundID sql.NullString
	var shareCount sql.NullInt64
	var investmentDate, createdAt string

	if err := row.Scan(
		&fr.ID,
		&fr.CompanyID,
		&fundID,
		&fr.InstrumentType,
		&investmentDate,
		&fr.InvestedAmount,
		&shareCount,
		&fr.CostPerShare,
		&fr.Converted,
		&fr.Sequence,
		&createdAt,
	); err != nil {
		return model.FinancingRound{}, err
	}

	if fundID.Valid {
		fr.FundID = &fundID.String
	}
	if shareCount.Valid {
		fr.ShareCount = &shareCount.Int64
	}

	var err error
	if fr.InvestmentDate, err = ParseTime(investmentDate); err != nil {
		return model.FinancingRound{}, err
	}
	if fr.CreatedAt, err = ParseTime(createdAt); err != nil {
		return model.FinancingRound{}, err
	}

	return fr, nil
}
