package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DefaultTrackerURL is the library default for the tracker API. Leaving the
// base URL at this value keeps the data source on fallback data.
const DefaultTrackerURL = "https://api.solanatracker.com"

// DefaultWalletInstallURL is shown when no wallet provider is detected
const DefaultWalletInstallURL = "https://phantom.app/"

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `json:"server"`
	Tracker   TrackerConfig   `json:"tracker"`
	RPC       RPCConfig       `json:"rpc"`
	Wallet    WalletConfig    `json:"wallet"`
	RateLimit RateLimitConfig `json:"rate_limit"`
	Logging   LoggingConfig   `json:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port         string        `json:"port" validate:"required,numeric"`
	Host         string        `json:"host"`
	ReadTimeout  time.Duration `json:"read_timeout" validate:"gt=0"`
	WriteTimeout time.Duration `json:"write_timeout" validate:"gt=0"`
	IdleTimeout  time.Duration `json:"idle_timeout" validate:"gt=0"`
}

// TrackerConfig holds the remote token data API configuration
type TrackerConfig struct {
	BaseURL string        `json:"base_url" validate:"omitempty,url"`
	APIKey  string        `json:"-"`
	Timeout time.Duration `json:"timeout" validate:"gt=0"`
	Debug   bool          `json:"debug"`
}

// IsConfigured reports whether a real endpoint has been set. The library
// default URL counts as unconfigured.
func (t *TrackerConfig) IsConfigured() bool {
	base := strings.TrimRight(strings.TrimSpace(t.BaseURL), "/")
	return base != "" && base != DefaultTrackerURL
}

// RPCConfig holds the optional Solana RPC endpoint used for status reporting
type RPCConfig struct {
	Endpoint string        `json:"endpoint" validate:"omitempty,url"`
	Timeout  time.Duration `json:"timeout" validate:"gt=0"`
}

// WalletConfig holds wallet provider detection settings
type WalletConfig struct {
	KeypairPath string `json:"keypair_path"`
	InstallURL  string `json:"install_url" validate:"omitempty,url"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	RequestsPerMinute int           `json:"requests_per_minute" validate:"gt=0"`
	Burst             int           `json:"burst" validate:"gt=0"`
	IdleTTL           time.Duration `json:"idle_ttl" validate:"gt=0"`
	CleanupInterval   time.Duration `json:"cleanup_interval" validate:"gt=0"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level       string   `json:"level" validate:"oneof=debug info warn error dpanic panic fatal"`
	Environment string   `json:"environment"`
	OutputPaths []string `json:"output_paths"`
}

// LoadConfig loads configuration from environment variables with defaults
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:  getDurationEnv("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Tracker: TrackerConfig{
			BaseURL: getEnv("SOLANA_TRACKER_API_URL", DefaultTrackerURL),
			APIKey:  getEnv("SOLANA_TRACKER_API_KEY", ""),
			Timeout: getDurationEnv("SOLANA_TRACKER_TIMEOUT", 10*time.Second),
			Debug:   getBoolEnv("DEBUG_MODE", false),
		},
		RPC: RPCConfig{
			Endpoint: getEnv("SOLANA_RPC_ENDPOINT", ""),
			Timeout:  getDurationEnv("SOLANA_RPC_TIMEOUT", 5*time.Second),
		},
		Wallet: WalletConfig{
			KeypairPath: getEnv("WALLET_KEYPAIR_PATH", ""),
			InstallURL:  getEnv("WALLET_INSTALL_URL", DefaultWalletInstallURL),
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: getIntEnv("RATE_LIMIT_REQUESTS_PER_MINUTE", 60),
			Burst:             getIntEnv("RATE_LIMIT_BURST", 10),
			IdleTTL:           getDurationEnv("RATE_LIMIT_IDLE_TTL", 10*time.Minute),
			CleanupInterval:   getDurationEnv("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		},
		Logging: LoggingConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Environment: getEnv("LOG_ENVIRONMENT", "development"),
			OutputPaths: getStringSliceEnv("LOG_OUTPUT_PATHS", []string{"stdout"}),
		},
	}
}

// Validate checks the loaded values against the struct tags
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getStringSliceEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	if len(result) == 0 {
		return defaultValue
	}
	return result
}
