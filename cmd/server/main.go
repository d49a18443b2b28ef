package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/config"
	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/logging"
	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/version"
)

// cfg is loaded once before any command runs.
var cfg *config.Config

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "venture-crm",
		Short:         "Venture fund CRM backend",
		Long:          "Serves the venture fund CRM API and provides maintenance commands for its database.",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			loaded, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			cfg = loaded
			logging.Setup(cfg.Log)
			return nil
		},
		// Without a subcommand the server starts.
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}

	root.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newImportCmd(),
		newReportCmd(),
		newGenKeyCmd(),
	)
	return root
}

func logger() logrus.FieldLogger {
	return logrus.StandardLogger()
}
