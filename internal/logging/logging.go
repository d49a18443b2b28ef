// Package logging configures the process-wide logrus logger.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/config"
)

// Setup applies the configured level and formatter to the standard logrus logger.
func Setup(cfg config.LogConfig) {
	configure(logrus.StandardLogger(), cfg, os.Stderr)
}

func configure(logger *logrus.Logger, cfg config.LogConfig, out io.Writer) {
	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	logger.SetLevel(cfg.Level)
	logger.SetOutput(out)
}
