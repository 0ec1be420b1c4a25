package config

import "testing"

type testEnvConfig struct {
	Addr   string `env:"HOMESTREAM_TEST_ADDR" envDefault:":8100"`
	Window int    `env:"HOMESTREAM_TEST_WINDOW" envDefault:"30"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg testEnvConfig
	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Addr != ":8100" {
		t.Fatalf("expected default addr, got %q", cfg.Addr)
	}
	if cfg.Window != 30 {
		t.Fatalf("expected default window 30, got %d", cfg.Window)
	}
}

func TestParseEnvOverrides(t *testing.T) {
	t.Setenv("HOMESTREAM_TEST_ADDR", ":9000")
	t.Setenv("HOMESTREAM_TEST_WINDOW", "14")

	var cfg testEnvConfig
	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Addr != ":9000" {
		t.Fatalf("expected override addr, got %q", cfg.Addr)
	}
	if cfg.Window != 14 {
		t.Fatalf("expected override window 14, got %d", cfg.Window)
	}
}
