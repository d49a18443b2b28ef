package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/apperrors"
	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/crypto"
	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/model"
)

// InvestorRepository provides data access methods for the investor table.
// Email and phone are encrypted with the configured FieldCipher before they are stored.
type InvestorRepository struct {
	db     *sql.DB
	tx     *sql.Tx
	cipher *crypto.FieldCipher
}

// NewInvestorRepository creates a new InvestorRepository. A nil cipher stores contact details
// as plaintext.
func NewInvestorRepository(db *sql.DB, cipher *crypto.FieldCipher) *InvestorRepository {
	if cipher == nil {
		cipher = &crypto.FieldCipher{}
	}
	return &InvestorRepository{db: db, cipher: cipher}
}

func (r *InvestorRepository) WithTx(tx *sql.Tx) *InvestorRepository {
	return &InvestorRepository{
		db:     r.db,
		tx:     tx,
		cipher: r.cipher,
	}
}

func (r *InvestorRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const investorColumns = `id, display_name, firm_name, email, phone, tier, relationship_owner, created_at`

// GetInvestors retrieves all investors ordered by display name and firm.
func (r *InvestorRepository) GetInvestors(ctx context.Context) ([]model.Investor, error) {
	query := `SELECT ` + investorColumns + ` FROM investor ORDER BY display_name ASC, firm_name ASC`

	rows, err := r.getQuerier().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query investor table: %w", err)
	}
	defer rows.Close()

	investors := []model.Investor{}
	for rows.Next() {
		inv, err := r.scanInvestor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan investor results: %w", err)
		}
		investors = append(investors, inv)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating investor table: %w", err)
	}

	return investors, nil
}

// GetInvestor retrieves a single investor by its ID.
// Returns ErrInvestorNotFound if no investor with the given ID exists.
func (r *InvestorRepository) GetInvestor(ctx context.Context, investorID string) (model.Investor, error) {
	query := `SELECT ` + investorColumns + ` FROM investor WHERE id = ?`

	inv, err := r.scanInvestor(r.getQuerier().QueryRowContext(ctx, query, investorID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Investor{}, apperrors.ErrInvestorNotFound
	}
	if err != nil {
		return model.Investor{}, fmt.Errorf("failed to get investor: %w", err)
	}

	return inv, nil
}

// InsertInvestor creates an investor.
func (r *InvestorRepository) InsertInvestor(ctx context.Context, inv *model.Investor) error {
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	createdAt := now()

	email, phone, err := r.sealContact(inv)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO investor (id, display_name, firm_name, email, phone, tier, relationship_owner, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.getQuerier().ExecContext(ctx, query,
		inv.ID,
		inv.DisplayName,
		inv.FirmName,
		email,
		phone,
		inv.Tier,
		inv.RelationshipOwner,
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert investor: %w", err)
	}

	inv.CreatedAt, _ = ParseTime(createdAt)
	return nil
}

// UpdateInvestor overwrites the mutable columns of an investor.
// Returns ErrInvestorNotFound if no investor with the given ID exists.
func (r *InvestorRepository) UpdateInvestor(ctx context.Context, inv *model.Investor) error {
	email, phone, err := r.sealContact(inv)
	if err != nil {
		return err
	}

	query := `
		UPDATE investor
		SET display_name = ?, firm_name = ?, email = ?, phone = ?, tier = ?, relationship_owner = ?
		WHERE id = ?
	`

	result, err := r.getQuerier().ExecContext(ctx, query,
		inv.DisplayName,
		inv.FirmName,
		email,
		phone,
		inv.Tier,
		inv.RelationshipOwner,
		inv.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update investor: %w", err)
	}

	return checkAffected(result, apperrors.ErrInvestorNotFound)
}

// DeleteInvestor removes an investor together with its commitments and their distributions.
// Returns ErrInvestorNotFound if no investor with the given ID exists.
func (r *InvestorRepository) DeleteInvestor(ctx context.Context, investorID string) error {
	result, err := r.getQuerier().ExecContext(ctx, `DELETE FROM investor WHERE id = ?`, investorID)
	if err != nil {
		return fmt.Errorf("failed to delete investor: %w", err)
	}

	return checkAffected(result, apperrors.ErrInvestorNotFound)
}

func (r *InvestorRepository) sealContact(inv *model.Investor) (email, phone string, err error) {
	if email, err = r.cipher.Encrypt(inv.Email); err != nil {
		return "", "", err
	}
	if phone, err = r.cipher.Encrypt(inv.Phone); err != nil {
		return "", "", err
	}
	return email, phone, nil
}

func (r *InvestorRepository) scanInvestor(row rowScanner) (model.Investor, error) {
	var inv model.Investor
	var email, phone, createdAt string

	if err := row.Scan(
		&inv.ID,
		&inv.DisplayName,
		&inv.FirmName,
		&email,
		&phone,
		&inv.Tier,
		&inv.RelationshipOwner,
		&createdAt,
	); err != nil {
		return model.Investor{}, err
	}

	var err error
	if inv.Email, err = r.cipher.Decrypt(email); err != nil {
		return model.Investor{}, fmt.Errorf("investor %s email: %w", inv.ID, err)
	}
	if inv.Phone, err = r.cipher.Decrypt(phone); err != nil {
		return model.Investor{}, fmt.Errorf("investor %s phone: %w", inv.ID, err)
	}
	if inv.CreatedAt, err = ParseTime(createdAt); err != nil {
		return model.Investor{}, err
	}

	return inv, nil
}
