package config

import (
	"log"
	"strings"
	"time"
	_ "time/tzdata" // TIMEZONE must resolve in minimal containers

	"github.com/SscSPs/academy_fee_ledger/internal/core/domain"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Store drivers.
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	StoreDriver   string

	JWTSecret          string
	JWTIssuer          string
	CORSAllowedOrigins []string
	RateLimit          string // ulule/limiter format, e.g. "300-M"

	PosthogAPIKey   string
	PosthogEndpoint string

	// Ledger rules
	FeeDueDay           int
	TeacherSharePercent decimal.Decimal
	CurrencyPrecision   int32
	Location            *time.Location

	// Transactions and background work
	MaxTxRetries           uint64
	TxRetryInitialInterval time.Duration
	TxRetryMaxInterval     time.Duration
	FeeSchedulerInterval   time.Duration
	FeeGenerationWorkers   int
}

// LedgerPolicy derives the money and calendar rules used by the services.
func (c *Config) LedgerPolicy() domain.LedgerPolicy {
	return domain.LedgerPolicy{
		TeacherSharePercent: c.TeacherSharePercent,
		Precision:           c.CurrencyPrecision,
		DueDay:              c.FeeDueDay,
		Location:            c.Location,
	}
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("STORE_DRIVER", StoreDriverPostgres)
	v.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	v.SetDefault("JWT_ISSUER", "academy-fee-ledger")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "")
	v.SetDefault("RATE_LIMIT", "300-M")
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("POSTHOG_ENDPOINT", "https://eu.i.posthog.com")
	v.SetDefault("FEE_DUE_DAY", 10)
	v.SetDefault("TEACHER_SHARE_PERCENT", "70")
	v.SetDefault("CURRENCY_PRECISION", 0)
	v.SetDefault("TIMEZONE", "UTC")
	v.SetDefault("MAX_TX_RETRIES", 5)
	v.SetDefault("TX_RETRY_INITIAL_INTERVAL", "20ms")
	v.SetDefault("TX_RETRY_MAX_INTERVAL", "1s")
	v.SetDefault("FEE_SCHEDULER_INTERVAL", "1h")
	v.SetDefault("FEE_GENERATION_WORKERS", 8)

	v.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = v.GetString("PGSQL_URL")
	cfg.Port = v.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	cfg.IsProduction = v.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = v.GetBool("ENABLE_DB_CHECK")

	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(v.GetString("STORE_DRIVER")))
	switch cfg.StoreDriver {
	case StoreDriverPostgres, StoreDriverMemory:
	default:
		log.Printf("Warning: Invalid value for STORE_DRIVER ('%s'). Defaulting to %s.\n", cfg.StoreDriver, StoreDriverPostgres)
		cfg.StoreDriver = StoreDriverPostgres
	}
	if cfg.StoreDriver == StoreDriverPostgres && cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.JWTSecret = v.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTIssuer = v.GetString("JWT_ISSUER")
	cfg.CORSAllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))
	cfg.RateLimit = v.GetString("RATE_LIMIT")
	cfg.PosthogAPIKey = v.GetString("POSTHOG_API_KEY")
	cfg.PosthogEndpoint = v.GetString("POSTHOG_ENDPOINT")

	cfg.FeeDueDay = v.GetInt("FEE_DUE_DAY")
	if cfg.FeeDueDay < 1 || cfg.FeeDueDay > 28 {
		log.Printf("Warning: Invalid value for FEE_DUE_DAY (%d). Defaulting to 10.\n", cfg.FeeDueDay)
		cfg.FeeDueDay = 10
	}

	sharePercent, err := decimal.NewFromString(v.GetString("TEACHER_SHARE_PERCENT"))
	if err != nil || sharePercent.IsNegative() || sharePercent.GreaterThan(decimal.NewFromInt(100)) {
		log.Printf("Warning: Invalid value for TEACHER_SHARE_PERCENT ('%s'). Defaulting to 70.\n", v.GetString("TEACHER_SHARE_PERCENT"))
		sharePercent = decimal.NewFromInt(70)
	}
	cfg.TeacherSharePercent = sharePercent

	precision := v.GetInt("CURRENCY_PRECISION")
	if precision < 0 || precision > 4 {
		log.Printf("Warning: Invalid value for CURRENCY_PRECISION (%d). Defaulting to 0.\n", precision)
		precision = 0
	}
	cfg.CurrencyPrecision = int32(precision)

	tz := v.GetString("TIMEZONE")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("Warning: Invalid value for TIMEZONE ('%s'). Defaulting to UTC.\n", tz)
		loc = time.UTC
	}
	cfg.Location = loc

	retries := v.GetInt("MAX_TX_RETRIES")
	if retries < 0 {
		log.Printf("Warning: Invalid value for MAX_TX_RETRIES (%d). Defaulting to 5.\n", retries)
		retries = 5
	}
	cfg.MaxTxRetries = uint64(retries)

	cfg.TxRetryInitialInterval = durationOrDefault(v, "TX_RETRY_INITIAL_INTERVAL", 20*time.Millisecond)
	cfg.TxRetryMaxInterval = durationOrDefault(v, "TX_RETRY_MAX_INTERVAL", time.Second)
	cfg.FeeSchedulerInterval = durationOrDefault(v, "FEE_SCHEDULER_INTERVAL", time.Hour)

	cfg.FeeGenerationWorkers = v.GetInt("FEE_GENERATION_WORKERS")
	if cfg.FeeGenerationWorkers <= 0 {
		log.Printf("Warning: Invalid value for FEE_GENERATION_WORKERS (%d). Defaulting to 8.\n", cfg.FeeGenerationWorkers)
		cfg.FeeGenerationWorkers = 8
	}

	return cfg, nil
}

// durationOrDefault parses a duration key such as "20ms" or "1h", falling
// back to def with a warning when the value is invalid.
func durationOrDefault(v *viper.Viper, key string, def time.Duration) time.Duration {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def.String())
		}
		return def
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
