package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/api/handlers"
	custommiddleware "github.com/ndewijer/Venture-Fund-CRM-Backend/internal/api/middleware"
	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/config"
	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/service"
)

// Services bundles the services the HTTP layer delegates to.
type Services struct {
	System     *service.SystemService
	Fund       *service.FundService
	Portfolio  *service.PortfolioService
	Company    *service.CompanyService
	Investor   *service.InvestorService
	Commitment *service.CommitmentService
	Dashboard  *service.DashboardService
}

// NewRouter creates and configures the HTTP router
func NewRouter(svc Services, cfg *config.Config, logger logrus.FieldLogger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(logger))
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	systemHandler := handlers.NewSystemHandler(svc.System)
	fundHandler := handlers.NewFundHandler(svc.Fund)
	portfolioHandler := handlers.NewPortfolioHandler(svc.Portfolio)
	companyHandler := handlers.NewCompanyHandler(svc.Company)
	investorHandler := handlers.NewInvestorHandler(svc.Investor, cfg.CRM.RelationshipOwners)
	commitmentHandler := handlers.NewCommitmentHandler(svc.Commitment)
	dashboardHandler := handlers.NewDashboardHandler(svc.Dashboard)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/system", func(r chi.Router) {
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Get("/dashboard", dashboardHandler.Dashboard)

		r.Route("/portfolio", func(r chi.Router) {
			r.Get("/summary", portfolioHandler.PortfolioSummary)
		})

		r.Route("/fund", func(r chi.Router) {
			r.Get("/", fundHandler.Funds)
			r.Post("/", fundHandler.CreateFund)
			r.Get("/progress", fundHandler.AllProgress)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", fundHandler.GetFund)
				r.Put("/", fundHandler.UpdateFund)
				r.Delete("/", fundHandler.DeleteFund)
				r.Get("/progress", fundHandler.Progress)
				r.Get("/stages", fundHandler.Stages)
				r.Get("/portfolio", fundHandler.Portfolio)
			})
		})

		r.Route("/company", func(r chi.Router) {
			r.Get("/", companyHandler.Companies)
			r.Post("/", companyHandler.CreateCompany)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", companyHandler.GetCompany)
				r.Put("/", companyHandler.UpdateCompany)
				r.Delete("/", companyHandler.DeleteCompany)
				r.Get("/valuation", companyHandler.Valuation)
				r.Post("/round", companyHandler.AddRound)
			})
		})

		r.Route("/round/{uuid}", func(r chi.Router) {
			r.Use(custommiddleware.ValidateUUIDMiddleware)
			r.Put("/", companyHandler.UpdateRound)
			r.Delete("/", companyHandler.DeleteRound)
		})

		r.Route("/investor", func(r chi.Router) {
			r.Get("/", investorHandler.Investors)
			r.Post("/", investorHandler.CreateInvestor)
			r.Get("/rollup", investorHandler.Directory)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", investorHandler.GetInvestor)
				r.Put("/", investorHandler.UpdateInvestor)
				r.Delete("/", investorHandler.DeleteInvestor)
				r.Get("/rollup", investorHandler.Rollup)
			})
		})

		r.Route("/commitment", func(r chi.Router) {
			r.Get("/", commitmentHandler.Commitments)
			r.Post("/", commitmentHandler.CreateCommitment)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", commitmentHandler.GetCommitment)
				r.Put("/", commitmentHandler.UpdateCommitment)
				r.Delete("/", commitmentHandler.DeleteCommitment)
				r.Put("/stage", commitmentHandler.UpdateStage)
				r.Post("/distribution", commitmentHandler.AddDistribution)
			})
		})

		r.Route("/distribution/{uuid}", func(r chi.Router) {
			r.Use(custommiddleware.ValidateUUIDMiddleware)
			r.Delete("/", commitmentHandler.DeleteDistribution)
		})
	})

	return r
}
