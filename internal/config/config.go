// Package config loads the service configuration from the environment.
package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
// Values are loaded from environment variables with sensible defaults.
type Config struct {
	// Server
	Port     int
	LogLevel string

	// Resilience
	MaxRetries     int
	InitialBackoff time.Duration
	MaxConcurrency int

	// Idempotency cache for BR Codes
	CacheTTL time.Duration

	// Observability
	OTLPEndpoint string

	// Remittance files
	RemittanceDir string
	RemittanceEOL string

	// Generic CNAB 400 layout registered at startup
	LayoutName     string
	LayoutBankCode string
	LayoutBankName string
	LayoutWallets  []string

	// Archive (S3-compatible). Disabled when ArchiveEndpoint is empty.
	ArchiveEndpoint  string
	ArchiveAccessKey string
	ArchiveSecretKey string
	ArchiveBucket    string
	ArchiveRegion    string
	ArchivePrefix    string
	ArchiveUseSSL    bool
}

// LoadDotEnv reads a .env file into the process environment without
// overriding variables that are already set.
func LoadDotEnv(path string) error {
	return godotenv.Load(path)
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", 8080)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_RETRIES", 3)
	v.SetDefault("INITIAL_BACKOFF", 100*time.Millisecond)
	v.SetDefault("MAX_CONCURRENCY", 8)
	v.SetDefault("CACHE_TTL", 10*time.Minute)
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	v.SetDefault("REMITTANCE_DIR", "./remessas")
	v.SetDefault("REMITTANCE_EOL", "lf")
	v.SetDefault("LAYOUT_NAME", "cnab400")
	v.SetDefault("LAYOUT_BANK_CODE", "000")
	v.SetDefault("LAYOUT_BANK_NAME", "COBRANCA")
	v.SetDefault("LAYOUT_WALLETS", "09")
	v.SetDefault("ARCHIVE_ENDPOINT", "")
	v.SetDefault("ARCHIVE_BUCKET", "remessas")
	v.SetDefault("ARCHIVE_REGION", "us-east-1")
	v.SetDefault("ARCHIVE_USE_SSL", true)

	return &Config{
		Port:     v.GetInt("PORT"),
		LogLevel: v.GetString("LOG_LEVEL"),

		MaxRetries:     v.GetInt("MAX_RETRIES"),
		InitialBackoff: v.GetDuration("INITIAL_BACKOFF"),
		MaxConcurrency: v.GetInt("MAX_CONCURRENCY"),

		CacheTTL: v.GetDuration("CACHE_TTL"),

		OTLPEndpoint: v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT"),

		RemittanceDir: v.GetString("REMITTANCE_DIR"),
		RemittanceEOL: eol(v.GetString("REMITTANCE_EOL")),

		LayoutName:     v.GetString("LAYOUT_NAME"),
		LayoutBankCode: v.GetString("LAYOUT_BANK_CODE"),
		LayoutBankName: v.GetString("LAYOUT_BANK_NAME"),
		LayoutWallets:  list(v.GetString("LAYOUT_WALLETS")),

		ArchiveEndpoint:  v.GetString("ARCHIVE_ENDPOINT"),
		ArchiveAccessKey: v.GetString("ARCHIVE_ACCESS_KEY"),
		ArchiveSecretKey: v.GetString("ARCHIVE_SECRET_KEY"),
		ArchiveBucket:    v.GetString("ARCHIVE_BUCKET"),
		ArchiveRegion:    v.GetString("ARCHIVE_REGION"),
		ArchivePrefix:    v.GetString("ARCHIVE_PREFIX"),
		ArchiveUseSSL:    v.GetBool("ARCHIVE_USE_SSL"),
	}
}

// eol maps REMITTANCE_EOL ("lf" or "crlf") to the record terminator.
func eol(name string) string {
	if name == "crlf" {
		return "\r\n"
	}
	return "\n"
}

// list splits a comma separated value, dropping blanks.
func list(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
