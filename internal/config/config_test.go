package config

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Venture-Fund-CRM-Backend/internal/valuation"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"SERVER_HOST", "SERVER_PORT", "DB_PATH", "CORS_ALLOWED_ORIGINS", "LOG_LEVEL", "LOG_FORMAT",
		"ENCRYPTION_KEY", "INVESTOR_IDENTITY", "RELATIONSHIP_OWNERS",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost:5001", cfg.Server.Addr)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, logrus.InfoLevel, cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, valuation.IdentityByID, cfg.CRM.InvestorIdentity)
	assert.Empty(t, cfg.CRM.RelationshipOwners)
	assert.Empty(t, cfg.CRM.EncryptionKey)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_HOST", "0.0.0.0")
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://crm.example.com , ,https://lp.example.com")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "JSON")
	t.Setenv("INVESTOR_IDENTITY", "name_firm")
	t.Setenv("RELATIONSHIP_OWNERS", "Sarah Chen,Marcus Webb")
	t.Setenv("DIGEST_SCHEDULE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr)
	assert.Equal(t, []string{"https://crm.example.com", "https://lp.example.com"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, logrus.DebugLevel, cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, valuation.IdentityByNameFirm, cfg.CRM.InvestorIdentity)
	assert.Equal(t, []string{"Sarah Chen", "Marcus Webb"}, cfg.CRM.RelationshipOwners)
	assert.Empty(t, cfg.CRM.DigestSchedule, "explicit empty schedule disables the digest")
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("identity mode", func(t *testing.T) {
		t.Setenv("INVESTOR_IDENTITY", "email")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("log level", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "loud")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("log format", func(t *testing.T) {
		t.Setenv("LOG_FORMAT", "xml")
		_, err := Load()
		assert.Error(t, err)
	})
}
