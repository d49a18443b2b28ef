package seed

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/crypto"
	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/repository"
)

// Summary counts the records an import created.
type Summary struct {
	Funds         int
	Companies     int
	Rounds        int
	Investors     int
	Commitments   int
	Distributions int
}

// Importer writes a Dataset to the database in a single transaction.
type Importer struct {
	db     *sql.DB
	cipher *crypto.FieldCipher
	logger logrus.FieldLogger
}

// NewImporter creates an Importer. Investor contact details are sealed with cipher.
func NewImporter(db *sql.DB, cipher *crypto.FieldCipher, logger logrus.FieldLogger) *Importer {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Importer{db: db, cipher: cipher, logger: logger}
}

// Import inserts every record of ds. Nothing is written if any insert fails, e.g. a fund name
// that already exists.
func (im *Importer) Import(ctx context.Context, ds *Dataset) (Summary, error) {
	var sum Summary

	tx, err := im.db.BeginTx(ctx, nil)
	if err != nil {
		return sum, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	fundRepo := repository.NewFundRepository(im.db).WithTx(tx)
	companyRepo := repository.NewCompanyRepository(im.db).WithTx(tx)
	roundRepo := repository.NewRoundRepository(im.db).WithTx(tx)
	investorRepo := repository.NewInvestorRepository(im.db, im.cipher).WithTx(tx)
	commitmentRepo := repository.NewCommitmentRepository(im.db).WithTx(tx)
	distributionRepo := repository.NewDistributionRepository(im.db).WithTx(tx)

	fundIDs := make(map[string]string, len(ds.Funds))
	for i := range ds.Funds {
		f := &ds.Funds[i]
		if err := fundRepo.InsertFund(ctx, f); err != nil {
			return Summary{}, fmt.Errorf("fund %q: %w", f.Name, err)
		}
		fundIDs[f.Name] = f.ID
		sum.Funds++
	}

	for i := range ds.Companies {
		c := &ds.Companies[i]
		if err := companyRepo.InsertCompany(ctx, c); err != nil {
			return Summary{}, fmt.Errorf("company %q: %w", c.Name, err)
		}
		sum.Companies++

		for j := range c.Rounds {
			r := &c.Rounds[j]
			r.CompanyID = c.ID
			if r.FundID != nil {
				id := fundIDs[*r.FundID]
				r.FundID = &id
			}
			if err := roundRepo.InsertRound(ctx, r); err != nil {
				return Summary{}, fmt.Errorf("company %q round %d: %w", c.Name, j+1, err)
			}
			sum.Rounds++
		}
	}

	for i := range ds.Investors {
		rec := &ds.Investors[i]
		inv := &rec.Investor
		if err := investorRepo.InsertInvestor(ctx, inv); err != nil {
			return Summary{}, fmt.Errorf("investor %q: %w", inv.DisplayName, err)
		}
		sum.Investors++

		for j := range rec.Commitments {
			c := &rec.Commitments[j]
			fundName := c.FundID
			c.InvestorID = inv.ID
			c.InvestorName = inv.DisplayName
			c.InvestorFirm = inv.FirmName
			c.FundID = fundIDs[fundName]
			if err := commitmentRepo.InsertCommitment(ctx, c); err != nil {
				return Summary{}, fmt.Errorf("investor %q commitment to %q: %w", inv.DisplayName, fundName, err)
			}
			sum.Commitments++

			for k := range c.Distributions {
				d := &c.Distributions[k]
				d.CommitmentID = c.ID
				if err := distributionRepo.InsertDistribution(ctx, d); err != nil {
					return Summary{}, fmt.Errorf("investor %q distribution: %w", inv.DisplayName, err)
				}
				sum.Distributions++
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return Summary{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	im.logger.WithFields(logrus.Fields{
		"funds":         sum.Funds,
		"companies":     sum.Companies,
		"rounds":        sum.Rounds,
		"investors":     sum.Investors,
		"commitments":   sum.Commitments,
		"distributions": sum.Distributions,
	}).Info("seed data imported")

	return sum, nil
}
