package fetch

import (
	"context"
	"testing"
	"time"
)

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	cfg.defaults()

	if cfg.Headful {
		t.Error("default must be headless")
	}
	if cfg.WaitSelector != "table.stats_table" {
		t.Errorf("WaitSelector = %q", cfg.WaitSelector)
	}
	if cfg.NavTimeout != 90*time.Second {
		t.Errorf("NavTimeout = %v", cfg.NavTimeout)
	}
	if cfg.SettleDelay != 5*time.Second {
		t.Errorf("SettleDelay = %v", cfg.SettleDelay)
	}
	if cfg.PaceDelay != 2500*time.Millisecond {
		t.Errorf("PaceDelay = %v", cfg.PaceDelay)
	}
	if cfg.UserAgent == "" || cfg.Logger == nil {
		t.Error("user agent and logger must default")
	}
}

func TestConfigKeepsExplicitValues(t *testing.T) {
	cfg := Config{
		Headful:      true,
		UserAgent:    "custom",
		WaitSelector: "table#x",
		NavTimeout:   time.Second,
	}
	cfg.defaults()

	if !cfg.Headful || cfg.UserAgent != "custom" || cfg.WaitSelector != "table#x" || cfg.NavTimeout != time.Second {
		t.Errorf("explicit values overwritten: %+v", cfg)
	}
}

func TestPageHTMLRequiresStart(t *testing.T) {
	b := New(Config{})
	if _, err := b.newPage(context.Background()); err == nil {
		t.Fatal("expected error before Start")
	}
}
