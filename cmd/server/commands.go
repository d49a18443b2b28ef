package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/crypto"
	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/database"
	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/report"
	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/seed"
	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/validation"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			v, err := database.Version(db)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", v)
			return nil
		},
	}
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Load funds, companies and investors from a YAML seed file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := seed.LoadFile(args[0])
			if err != nil {
				return err
			}
			ds, err := file.Build()
			if err != nil {
				return err
			}

			cipher, err := crypto.NewFieldCipher(cfg.CRM.EncryptionKey)
			if err != nil {
				return err
			}
			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			sum, err := seed.NewImporter(db, cipher, logger()).Import(cmd.Context(), ds)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(),
				"imported %d funds, %d companies, %d rounds, %d investors, %d commitments, %d distributions\n",
				sum.Funds, sum.Companies, sum.Rounds, sum.Investors, sum.Commitments, sum.Distributions)
			return nil
		},
	}
}

func newReportCmd() *cobra.Command {
	var (
		fundID string
		raw    bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the dashboard as a markdown report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if fundID != "" {
				if err := validation.ValidateUUID(fundID); err != nil {
					return fmt.Errorf("invalid --fund: %w", err)
				}
			}

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			dashboard, err := a.services.Dashboard.GetDashboard(ctx)
			if err != nil {
				return err
			}

			var opts report.Options
			if fundID != "" {
				fund, err := a.services.Fund.GetFund(ctx, fundID)
				if err != nil {
					return err
				}
				summary, err := a.services.Fund.GetFundPortfolio(ctx, fundID)
				if err != nil {
					return err
				}
				opts = report.Options{FundName: fund.Name, Fund: &summary}
			}

			md, err := report.Build(dashboard, opts)
			if err != nil {
				return err
			}
			out, err := report.Render(md, raw)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&fundID, "fund", "", "add a portfolio section for this fund id")
	cmd.Flags().BoolVar(&raw, "raw", false, "print markdown without terminal styling")
	return cmd
}

func newGenKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "genkey",
		Short: "Print a new ENCRYPTION_KEY value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			key, err := crypto.GenerateKey()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), key)
			return nil
		},
	}
}
