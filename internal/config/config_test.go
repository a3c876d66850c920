package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/boddenberg/pj-collections-go/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := config.Load()

	if cfg.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Port)
	}
	if cfg.CacheTTL != 10*time.Minute {
		t.Errorf("expected cache ttl 10m, got %v", cfg.CacheTTL)
	}
	if cfg.RemittanceEOL != "\n" {
		t.Errorf("expected LF line endings, got %q", cfg.RemittanceEOL)
	}
	if cfg.ArchiveEndpoint != "" {
		t.Errorf("expected archive disabled by default, got %q", cfg.ArchiveEndpoint)
	}
	if cfg.LayoutName != "cnab400" || len(cfg.LayoutWallets) != 1 || cfg.LayoutWallets[0] != "09" {
		t.Errorf("unexpected default layout %q %v", cfg.LayoutName, cfg.LayoutWallets)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("MAX_RETRIES", "5")
	t.Setenv("INITIAL_BACKOFF", "250ms")
	t.Setenv("REMITTANCE_EOL", "crlf")
	t.Setenv("ARCHIVE_USE_SSL", "false")
	t.Setenv("LAYOUT_WALLETS", "09, 109 ,,112")

	cfg := config.Load()
	if cfg.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Port)
	}
	if cfg.MaxRetries != 5 {
		t.Errorf("expected 5 retries, got %d", cfg.MaxRetries)
	}
	if cfg.InitialBackoff != 250*time.Millisecond {
		t.Errorf("expected 250ms backoff, got %v", cfg.InitialBackoff)
	}
	if cfg.RemittanceEOL != "\r\n" {
		t.Errorf("expected CRLF line endings, got %q", cfg.RemittanceEOL)
	}
	if cfg.ArchiveUseSSL {
		t.Error("expected ssl disabled")
	}
	if got := strings.Join(cfg.LayoutWallets, "|"); got != "09|109|112" {
		t.Errorf("expected wallets 09|109|112, got %s", got)
	}
}

func TestLoadDotEnv_DoesNotOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "REMITTANCE_DIR=/tmp/from-dotenv\nLOG_LEVEL=debug\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	t.Setenv("LOG_LEVEL", "warn")
	// Registers cleanup so the variable loaded from the file is removed.
	t.Setenv("REMITTANCE_DIR", "")
	os.Unsetenv("REMITTANCE_DIR")

	if err := config.LoadDotEnv(path); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	cfg := config.Load()
	if cfg.RemittanceDir != "/tmp/from-dotenv" {
		t.Errorf("expected dir from .env, got %q", cfg.RemittanceDir)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("expected env to win over .env, got %q", cfg.LogLevel)
	}
}
