package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.PortalBaseURL != "https://judgment.judicial.gov.tw/FJUD" {
		t.Errorf("PortalBaseURL = %q", cfg.PortalBaseURL)
	}
	if cfg.OutputFile != "judicial_result.xlsx" {
		t.Errorf("OutputFile = %q", cfg.OutputFile)
	}
	if !cfg.HeadlessMode {
		t.Error("HeadlessMode should default to true")
	}
	if cfg.QueryIDWait != 15*time.Second {
		t.Errorf("QueryIDWait = %v, want 15s", cfg.QueryIDWait)
	}
	if cfg.ResultTableWait != 20*time.Second {
		t.Errorf("ResultTableWait = %v, want 20s", cfg.ResultTableWait)
	}
	if cfg.DetailSettleDelay != 3*time.Second {
		t.Errorf("DetailSettleDelay = %v, want 3s", cfg.DetailSettleDelay)
	}
	if cfg.TabCloseDelay != 1*time.Second {
		t.Errorf("TabCloseDelay = %v, want 1s", cfg.TabCloseDelay)
	}
	if cfg.PageAdvanceDelay != 2*time.Second {
		t.Errorf("PageAdvanceDelay = %v, want 2s", cfg.PageAdvanceDelay)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORTAL_BASE_URL", "https://example.test/FJUD")
	t.Setenv("HEADLESS_MODE", "false")
	t.Setenv("DETAIL_SETTLE_DELAY", "1")
	t.Setenv("CACHE_TTL", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.PortalBaseURL != "https://example.test/FJUD" {
		t.Errorf("PortalBaseURL = %q", cfg.PortalBaseURL)
	}
	if cfg.HeadlessMode {
		t.Error("HeadlessMode should be overridden to false")
	}
	if cfg.DetailSettleDelay != 1*time.Second {
		t.Errorf("DetailSettleDelay = %v, want 1s", cfg.DetailSettleDelay)
	}
	if cfg.CacheTTL != 5*time.Minute {
		t.Errorf("CacheTTL = %v, want 5m", cfg.CacheTTL)
	}
}

func TestLoadRejectsMalformedValues(t *testing.T) {
	t.Setenv("QUERY_ID_WAIT", "soon")

	if _, err := Load(); err == nil {
		t.Error("Load() should fail on non-numeric QUERY_ID_WAIT")
	}
}
