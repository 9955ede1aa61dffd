package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type Config struct {
	HTTPPort string
	LogLevel string

	StorageDriver    string
	PostgresAddress  string
	PostgresPort     string
	PostgresDB       string
	PostgresUsername string
	PostgresPassword string

	OperatorWorkers   int
	CommissionRate    decimal.Decimal
	AllowSelfPurchase bool

	FeedCacheSize      int
	FeedCacheTTL       time.Duration
	PurchaseRatePerMin int
}

func setDefaults(v *viper.Viper) {
	// In all cases the default behavior should be for the docker compose setup
	v.SetDefault("http_port", "9446")
	v.SetDefault("log_level", "info")
	v.SetDefault("storage_driver", StorageDriverPostgres)
	v.SetDefault("postgres_address", "localhost")
	v.SetDefault("postgres_port", "5433")
	v.SetDefault("postgres_db", "postgres")
	v.SetDefault("postgres_username", "postgres")
	v.SetDefault("postgres_password", "testpassword")
	v.SetDefault("operator_workers", 4)
	v.SetDefault("commission_rate", "0.10")
	v.SetDefault("allow_self_purchase", false)
	v.SetDefault("feed_cache_size", 256)
	v.SetDefault("feed_cache_ttl", "30s")
	v.SetDefault("purchase_rate_per_min", 30)
}

func ProcessEnvironmentVariables() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	commissionRate, err := decimal.NewFromString(v.GetString("commission_rate"))
	if err != nil {
		return nil, fmt.Errorf("COMMISSION_RATE: %w", err)
	}

	env := Config{
		HTTPPort:           v.GetString("http_port"),
		LogLevel:           v.GetString("log_level"),
		StorageDriver:      strings.ToLower(v.GetString("storage_driver")),
		PostgresAddress:    v.GetString("postgres_address"),
		PostgresPort:       v.GetString("postgres_port"),
		PostgresDB:         v.GetString("postgres_db"),
		PostgresUsername:   v.GetString("postgres_username"),
		PostgresPassword:   v.GetString("postgres_password"),
		OperatorWorkers:    v.GetInt("operator_workers"),
		CommissionRate:     commissionRate,
		AllowSelfPurchase:  v.GetBool("allow_self_purchase"),
		FeedCacheSize:      v.GetInt("feed_cache_size"),
		FeedCacheTTL:       v.GetDuration("feed_cache_ttl"),
		PurchaseRatePerMin: v.GetInt("purchase_rate_per_min"),
	}

	if err := env.validate(); err != nil {
		return nil, err
	}
	return &env, nil
}

func (c *Config) validate() error {
	var errs []error
	if c.CommissionRate.IsNegative() || c.CommissionRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		errs = append(errs, fmt.Errorf("COMMISSION_RATE must be in [0, 1), got %s", c.CommissionRate))
	}
	if c.OperatorWorkers < 1 {
		errs = append(errs, fmt.Errorf("OPERATOR_WORKERS must be at least 1, got %d", c.OperatorWorkers))
	}
	if c.StorageDriver != StorageDriverPostgres && c.StorageDriver != StorageDriverMemory {
		errs = append(errs, fmt.Errorf("STORAGE_DRIVER must be %q or %q, got %q",
			StorageDriverPostgres, StorageDriverMemory, c.StorageDriver))
	}
	if c.FeedCacheSize < 0 {
		errs = append(errs, fmt.Errorf("FEED_CACHE_SIZE must not be negative, got %d", c.FeedCacheSize))
	}
	if c.PurchaseRatePerMin < 0 {
		errs = append(errs, fmt.Errorf("PURCHASE_RATE_PER_MIN must not be negative, got %d", c.PurchaseRatePerMin))
	}
	return errors.Join(errs...)
}
