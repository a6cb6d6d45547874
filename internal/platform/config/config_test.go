package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("FEE_DUE_DAY", "")
	t.Setenv("TEACHER_SHARE_PERCENT", "")
	t.Setenv("CURRENCY_PRECISION", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, StoreDriverPostgres, cfg.StoreDriver)
	assert.Equal(t, 10, cfg.FeeDueDay)
	assert.True(t, decimal.NewFromInt(70).Equal(cfg.TeacherSharePercent))
	assert.Equal(t, int32(0), cfg.CurrencyPrecision)
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_DRIVER", "MEMORY")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://admin.example.com, https://office.example.com")
	t.Setenv("FEE_DUE_DAY", "5")
	t.Setenv("TEACHER_SHARE_PERCENT", "65.5")
	t.Setenv("CURRENCY_PRECISION", "2")
	t.Setenv("MAX_TX_RETRIES", "3")
	t.Setenv("TX_RETRY_INITIAL_INTERVAL", "5ms")
	t.Setenv("FEE_SCHEDULER_INTERVAL", "0s")
	t.Setenv("FEE_GENERATION_WORKERS", "2")
	t.Setenv("TIMEZONE", "Asia/Kolkata")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, StoreDriverMemory, cfg.StoreDriver)
	assert.Equal(t, []string{"https://admin.example.com", "https://office.example.com"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 5, cfg.FeeDueDay)
	assert.True(t, decimal.RequireFromString("65.5").Equal(cfg.TeacherSharePercent))
	assert.Equal(t, int32(2), cfg.CurrencyPrecision)
	assert.Equal(t, uint64(3), cfg.MaxTxRetries)
	assert.Equal(t, 5*time.Millisecond, cfg.TxRetryInitialInterval)
	assert.Equal(t, time.Duration(0), cfg.FeeSchedulerInterval)
	assert.Equal(t, 2, cfg.FeeGenerationWorkers)
	assert.Equal(t, "Asia/Kolkata", cfg.Location.String())

	policy := cfg.LedgerPolicy()
	assert.Equal(t, 5, policy.DueDay)
	assert.Equal(t, int32(2), policy.Precision)
}

func TestLoadConfig_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mongo")
	t.Setenv("FEE_DUE_DAY", "31")
	t.Setenv("TEACHER_SHARE_PERCENT", "150")
	t.Setenv("TX_RETRY_INITIAL_INTERVAL", "soon")
	t.Setenv("TIMEZONE", "Mars/Olympus")
	t.Setenv("FEE_GENERATION_WORKERS", "-1")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, StoreDriverPostgres, cfg.StoreDriver)
	assert.Equal(t, 10, cfg.FeeDueDay)
	assert.True(t, decimal.NewFromInt(70).Equal(cfg.TeacherSharePercent))
	assert.Equal(t, 20*time.Millisecond, cfg.TxRetryInitialInterval)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.Equal(t, 8, cfg.FeeGenerationWorkers)
}
