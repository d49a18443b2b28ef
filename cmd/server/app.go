package main

import (
	"database/sql"
	"fmt"

	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/api"
	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/crypto"
	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/database"
	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/repository"
	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/service"
)

// app holds the database and the wired services shared by the commands.
type app struct {
	db       *sql.DB
	services api.Services
	digest   *service.DigestService
}

// openApp opens and migrates the configured database and wires every service.
func openApp() (*app, error) {
	cipher, err := crypto.NewFieldCipher(cfg.CRM.EncryptionKey)
	if err != nil {
		return nil, err
	}

	db, err := openDB()
	if err != nil {
		return nil, err
	}

	logger().WithField("path", cfg.Database.Path).Info("connected to database")

	// Create repositories
	fundRepo := repository.NewFundRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	roundRepo := repository.NewRoundRepository(db)
	investorRepo := repository.NewInvestorRepository(db, cipher)
	commitmentRepo := repository.NewCommitmentRepository(db)
	distributionRepo := repository.NewDistributionRepository(db)

	// Create services
	dataLoaderService := service.NewDataLoaderService(
		fundRepo,
		companyRepo,
		roundRepo,
		investorRepo,
		commitmentRepo,
		distributionRepo,
	)
	portfolioService := service.NewPortfolioService(fundRepo, dataLoaderService)
	dashboardService := service.NewDashboardService(dataLoaderService)

	a := &app{
		db: db,
		services: api.Services{
			System:    service.NewSystemService(db),
			Fund:      service.NewFundService(fundRepo, dataLoaderService, portfolioService),
			Portfolio: portfolioService,
			Company:   service.NewCompanyService(db, companyRepo, roundRepo, fundRepo, dataLoaderService),
			Investor:  service.NewInvestorService(investorRepo, dataLoaderService, cfg.CRM.InvestorIdentity),
			Commitment: service.NewCommitmentService(
				db,
				commitmentRepo,
				distributionRepo,
				investorRepo,
				fundRepo,
				dataLoaderService,
			),
			Dashboard: dashboardService,
		},
		digest: service.NewDigestService(dashboardService, logger()),
	}
	return a, nil
}

func (a *app) Close() {
	if err := a.db.Close(); err != nil {
		logger().WithError(err).Warn("failed to close database")
	}
}

// openDB opens and migrates the database without wiring services.
func openDB() (*sql.DB, error) {
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate %s: %w", cfg.Database.Path, err)
	}
	return db, nil
}
