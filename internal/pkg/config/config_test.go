package config

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8080" || cfg.StoreDriver != DriverMemory || cfg.IdentityDriver != DriverMemory {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Verify.Attempts != 4 || cfg.Verify.BaseDelay != 100*time.Millisecond || cfg.Verify.MaxDelay != time.Second {
		t.Errorf("unexpected verify defaults: %+v", cfg.Verify)
	}
	if cfg.Sweep.Interval != time.Minute {
		t.Errorf("unexpected sweep interval: %v", cfg.Sweep.Interval)
	}
	if cfg.Identity.RatePerSecond != 5 || cfg.Identity.Burst != 10 {
		t.Errorf("unexpected identity rate defaults: %+v", cfg.Identity)
	}
	if !cfg.IsDevelopment() {
		t.Error("expected development by default")
	}
}

func TestLoadWith_Overrides(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"STORE_DRIVER":    "postgres",
		"IDENTITY_DRIVER": "gotrue",
		"IDENTITY_URL":    "https://auth.example.com",
		"COOLDOWN_DRIVER": "redis",
		"VERIFY_ATTEMPTS": "6",
		"SWEEP_INTERVAL":  "30s",
		"ENV":             "production",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.StoreDriver != DriverPostgres || cfg.CooldownDriver != DriverRedis {
		t.Errorf("drivers not applied: %+v", cfg)
	}
	if cfg.Verify.Attempts != 6 || cfg.Sweep.Interval != 30*time.Second {
		t.Errorf("numeric overrides not applied: %+v %+v", cfg.Verify, cfg.Sweep)
	}
	if cfg.IsDevelopment() {
		t.Error("expected production")
	}
}

func TestLoadWith_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown store":      {"STORE_DRIVER": "sqlite"},
		"unknown cooldown":   {"COOLDOWN_DRIVER": "memcached"},
		"gotrue without url": {"IDENTITY_DRIVER": "gotrue"},
		"zero attempts":      {"VERIFY_ATTEMPTS": "0"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadWith(context.Background(), envconfig.MapLookuper(env))
			if err == nil || !strings.HasPrefix(err.Error(), "config:") {
				t.Fatalf("expected config error, got %v", err)
			}
		})
	}
}
