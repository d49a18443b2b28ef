package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/valuation"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Log      LogConfig
	CRM      CRMConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  logrus.Level
	Format string // "text" or "json"
}

// CRMConfig holds the fund-specific settings.
type CRMConfig struct {
	// EncryptionKey is a base64 fernet key used to encrypt investor contact details at rest.
	// Empty disables encryption.
	EncryptionKey string
	// InvestorIdentity selects how commitments are grouped into investors.
	InvestorIdentity valuation.IdentityMode
	// RelationshipOwners lists the partners an investor may be assigned to.
	// Empty accepts any name.
	RelationshipOwners []string
	// DigestSchedule is the cron spec of the fundraising digest. Empty disables it.
	DigestSchedule string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	level, err := logrus.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	format := strings.ToLower(getEnv("LOG_FORMAT", "text"))
	if format != "text" && format != "json" {
		return nil, fmt.Errorf("invalid LOG_FORMAT %q: must be text or json", format)
	}

	identity, err := valuation.ParseIdentityMode(getEnv("INVESTOR_IDENTITY", string(valuation.IdentityByID)))
	if err != nil {
		return nil, fmt.Errorf("invalid INVESTOR_IDENTITY: %w", err)
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/venture_crm.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost")),
		},
		Log: LogConfig{
			Level:  level,
			Format: format,
		},
		CRM: CRMConfig{
			EncryptionKey:      os.Getenv("ENCRYPTION_KEY"),
			InvestorIdentity:   identity,
			RelationshipOwners: splitList(os.Getenv("RELATIONSHIP_OWNERS")),
			DigestSchedule:     getEnvAllowEmpty("DIGEST_SCHEDULE", "0 7 * * *"),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAllowEmpty returns the default only when the variable is unset, so an explicit
// empty value can switch a feature off.
func getEnvAllowEmpty(key, defaultValue string) string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	return strings.TrimSpace(value)
}

// splitList splits a comma separated list, dropping blanks.
func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
