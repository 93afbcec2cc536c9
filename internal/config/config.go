package config

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
	"github.com/sirupsen/logrus"
)

// Price source modes
const (
	PriceSourceLive   = "live"
	PriceSourceStatic = "static"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig   `env:", prefix=SERVER_"`
	Database DatabaseConfig `env:", prefix=DB_"`
	Storage  StorageConfig  `env:", prefix=STORAGE_"`
	Prices   PricesConfig   `env:", prefix=PRICES_"`
	CORS     CORSConfig     `env:", prefix=CORS_"`
	Logging  LoggingConfig  `env:", prefix=LOG_"`

	SeedSampleData bool `env:"SEED_SAMPLE_DATA, default=false"`
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Host            string        `env:"HOST, default=localhost"`
	Port            int           `env:"PORT, default=5001"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT, default=15s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT, default=15s"`
	IdleTimeout     time.Duration `env:"IDLE_TIMEOUT, default=60s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=30s"`
}

// Addr returns the combined host:port listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string `env:"PATH, default=./data/wealth_tracker.db"`
}

// StorageConfig holds the snapshot storage settings.
// EncryptionKey is an optional base64 fernet key; when set, snapshots are encrypted at rest.
type StorageConfig struct {
	Key           string `env:"KEY, default=wealth-tracker-storage"`
	EncryptionKey string `env:"ENCRYPTION_KEY"`
}

// PricesConfig holds quote source and refresh settings
type PricesConfig struct {
	Source          string        `env:"SOURCE, default=live"`
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL, default=60s"`
	FetchTimeout    time.Duration `env:"FETCH_TIMEOUT, default=10s"`
	CoinGeckoURL    string        `env:"COINGECKO_URL, default=https://api.coingecko.com/api/v3"`
	YahooURL        string        `env:"YAHOO_URL, default=https://query1.finance.yahoo.com"`
	MaxConcurrency  int           `env:"MAX_CONCURRENCY, default=4"`
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string `env:"ALLOWED_ORIGINS, delimiter=;, default=http://localhost:3000;http://localhost:5173;http://localhost"`
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level  string `env:"LEVEL, default=info"`
	Format string `env:"FORMAT, default=text"`
}

// Load reads configuration from environment variables and .env file
func Load(ctx context.Context) (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	return process(ctx, envconfig.OsLookuper())
}

func process(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values the struct tags cannot express.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid SERVER_PORT %d", c.Server.Port)
	}
	if c.Storage.Key == "" {
		return fmt.Errorf("STORAGE_KEY cannot be empty")
	}
	if _, err := c.Storage.FernetKey(); err != nil {
		return err
	}
	switch c.Prices.Source {
	case PriceSourceLive, PriceSourceStatic:
	default:
		return fmt.Errorf("invalid PRICES_SOURCE %q, expected %q or %q", c.Prices.Source, PriceSourceLive, PriceSourceStatic)
	}
	if c.Prices.RefreshInterval <= 0 {
		return fmt.Errorf("PRICES_REFRESH_INTERVAL must be positive")
	}
	if c.Prices.FetchTimeout <= 0 {
		return fmt.Errorf("PRICES_FETCH_TIMEOUT must be positive")
	}
	if c.Prices.MaxConcurrency < 1 {
		return fmt.Errorf("PRICES_MAX_CONCURRENCY must be at least 1")
	}
	if _, err := logrus.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid LOG_FORMAT %q, expected text or json", c.Logging.Format)
	}
	return nil
}

// FernetKey decodes the encryption key. It returns nil when encryption is disabled.
func (s StorageConfig) FernetKey() (*fernet.Key, error) {
	if s.EncryptionKey == "" {
		return nil, nil
	}
	key, err := fernet.DecodeKey(s.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("invalid STORAGE_ENCRYPTION_KEY: %w", err)
	}
	return key, nil
}
