package configloader

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// CustodyConfig holds custody-service API specific configurations.
type CustodyConfig struct {
	BaseURL              string
	CredentialsFile      string
	RequestTimeoutMillis int64
	RateLimit            float64
	BurstLimit           int
}

// TransferConfig holds transfer lifecycle configurations. The deadline is
// kept in milliseconds internally; the environment variable is in minutes.
type TransferConfig struct {
	PollIntervalMillis int64
	TimeoutMillis      int64
}

// PollInterval returns the poll interval as a duration.
func (c TransferConfig) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMillis) * time.Millisecond
}

// Timeout returns the overall transfer deadline as a duration.
func (c TransferConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMillis) * time.Millisecond
}

// ServerConfig holds server-specific configurations for the serve mode.
type ServerConfig struct {
	Port         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
}

// LoggingConfig holds logging-specific configurations.
type LoggingConfig struct {
	Level string
}

// PerformanceConfig holds performance-related configurations.
type PerformanceConfig struct {
	ListConcurrency       int
	WalletCacheTTLSeconds int
}

// Config is the top-level configuration structure.
type Config struct {
	Network                string
	WalletStoragePath      string
	NetworkDefinitionsFile string
	Custody                CustodyConfig
	Transfer               TransferConfig
	Server                 ServerConfig
	Logging                LoggingConfig
	Performance            PerformanceConfig
}

// defaultEnvTemplate is written when no .env file exists, mirroring the
// documented defaults.
const defaultEnvTemplate = `# Network Configuration
NETWORK=base-sepolia  # Options: base-sepolia, base-mainnet, etc.

# Storage Configuration
WALLET_STORAGE_PATH=./wallets  # Directory for storing wallet files
`

// EnsureEnvFile writes a default .env template at the given path when none
// exists. Returns true when a template was created so the caller can warn
// that defaults are in effect.
func EnsureEnvFile(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to stat env file %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(defaultEnvTemplate), 0o644); err != nil {
		return false, fmt.Errorf("failed to write default env template %s: %w", path, err)
	}
	return true, nil
}

// Load reads the .env file at the given path (when present) and builds the
// configuration from environment variables, applying documented defaults for
// everything unset.
func Load(envPath string) (*Config, error) {
	// A missing .env is fine; defaults and the process environment apply.
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load env file %s: %w", envPath, err)
	}

	cfg := &Config{
		Network:                getEnv("NETWORK", "base-sepolia"),
		WalletStoragePath:      getEnv("WALLET_STORAGE_PATH", "./wallets"),
		NetworkDefinitionsFile: getEnv("NETWORK_DEFINITIONS_FILE", ""),
		Custody: CustodyConfig{
			BaseURL:              getEnv("CUSTODY_API_URL", "https://api.cdp.coinbase.com/platform"),
			CredentialsFile:      getEnv("CUSTODY_CREDENTIALS_FILE", "cdp_api_key.json"),
			RequestTimeoutMillis: getEnvInt64("CUSTODY_REQUEST_TIMEOUT_MS", 10000),
			RateLimit:            getEnvFloat("CUSTODY_RATE_LIMIT", 10),
			BurstLimit:           getEnvInt("CUSTODY_BURST_LIMIT", 20),
		},
		Transfer: TransferConfig{
			PollIntervalMillis: getEnvInt64("TRANSFER_POLL_INTERVAL_MS", 2000),
			TimeoutMillis:      getEnvInt64("TRANSFER_TIMEOUT_MINUTES", 10) * 60_000,
		},
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8085"),
			ReadTimeout:  getEnvInt("SERVER_READ_TIMEOUT_SECONDS", 10),
			WriteTimeout: getEnvInt("SERVER_WRITE_TIMEOUT_SECONDS", 30),
			IdleTimeout:  getEnvInt("SERVER_IDLE_TIMEOUT_SECONDS", 60),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Performance: PerformanceConfig{
			ListConcurrency:       getEnvInt("LIST_CONCURRENCY", 4),
			WalletCacheTTLSeconds: getEnvInt("WALLET_CACHE_TTL_SECONDS", 30),
		},
	}

	// Default values for the lifecycle loop if set to something unusable.
	if cfg.Transfer.PollIntervalMillis <= 0 {
		cfg.Transfer.PollIntervalMillis = 2000
	}
	if cfg.Transfer.TimeoutMillis <= 0 {
		cfg.Transfer.TimeoutMillis = 10 * 60_000
	}
	if cfg.Performance.ListConcurrency <= 0 {
		cfg.Performance.ListConcurrency = 4
	}
	if cfg.Performance.WalletCacheTTLSeconds <= 0 {
		cfg.Performance.WalletCacheTTLSeconds = 30
	}

	return cfg, nil
}

// Credentials are the custody API credentials loaded from the JSON key file.
// The tool cannot operate without them, so a missing or invalid file is a
// startup failure.
type Credentials struct {
	Name       string `json:"name"`
	PrivateKey string `json:"privateKey"`
}

// LoadCredentials reads and validates the credentials JSON file.
func LoadCredentials(path string) (*Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file %s: %w", path, err)
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("failed to unmarshal credentials from %s: %w", path, err)
	}
	if creds.Name == "" || creds.PrivateKey == "" {
		return nil, fmt.Errorf("credentials file %s is missing name or privateKey", path)
	}
	return &creds, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
