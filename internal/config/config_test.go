package config

import (
	"os"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("POOL_MIN_SIZE")
	os.Unsetenv("POOL_MAX_SIZE")
	os.Unsetenv("DEFAULT_RESULT_LIMIT")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8000" {
		t.Errorf("expected default port 8000, got %s", cfg.Port)
	}

	if cfg.PoolMinSize != 20 || cfg.PoolMaxSize != 50 {
		t.Errorf("expected default pool bounds 20/50, got %d/%d", cfg.PoolMinSize, cfg.PoolMaxSize)
	}

	if cfg.DefaultResultLimit != 10 {
		t.Errorf("expected default result limit 10, got %d", cfg.DefaultResultLimit)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	os.Setenv("POOL_MIN_SIZE", "5")
	os.Setenv("POOL_MAX_SIZE", "8")
	defer os.Unsetenv("POOL_MIN_SIZE")
	defer os.Unsetenv("POOL_MAX_SIZE")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.PoolMinSize != 5 || cfg.PoolMaxSize != 8 {
		t.Errorf("expected pool bounds 5/8, got %d/%d", cfg.PoolMinSize, cfg.PoolMaxSize)
	}
}

func TestValidate_RejectsMisorderedPoolBounds(t *testing.T) {
	c := &Config{PoolMinSize: 50, PoolMaxSize: 20, DefaultResultLimit: 10}
	if err := c.Validate(); err == nil {
		t.Fatal("expected error for POOL_MAX_SIZE < POOL_MIN_SIZE")
	}
}

func TestValidate_RejectsNonPositiveLimit(t *testing.T) {
	c := &Config{PoolMinSize: 20, PoolMaxSize: 50, DefaultResultLimit: 0}
	if err := c.Validate(); err == nil {
		t.Fatal("expected error for zero DEFAULT_RESULT_LIMIT")
	}
}

func TestConfig_IsDev(t *testing.T) {
	c := &Config{Env: "development"}
	if !c.IsDev() {
		t.Error("expected IsDev() to return true for development")
	}

	c.Env = "production"
	if c.IsDev() {
		t.Error("expected IsDev() to return false for production")
	}
}
