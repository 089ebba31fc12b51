package config

import (
	"testing"
	"time"
)

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error without DATABASE_URL")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/pcon?sslmode=disable")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("default port = %s, want 8080", cfg.Server.Port)
	}
	if cfg.Server.AdminPort != "8081" {
		t.Errorf("default admin port = %s, want 8081", cfg.Server.AdminPort)
	}
	if cfg.Search.MaxRows != 500 {
		t.Errorf("default search cap = %d, want 500", cfg.Search.MaxRows)
	}
	if cfg.Session.TTL != 4*time.Hour {
		t.Errorf("default session TTL = %v, want 4h", cfg.Session.TTL)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/pcon")
	t.Setenv("PORT", "9000")
	t.Setenv("SEARCH_MAX_ROWS", "50")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("DB_MAX_OPEN_CONNS", "10")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != "9000" {
		t.Errorf("port = %s, want 9000", cfg.Server.Port)
	}
	if cfg.Search.MaxRows != 50 {
		t.Errorf("search cap = %d, want 50", cfg.Search.MaxRows)
	}
	if cfg.Session.TTL != 30*time.Minute {
		t.Errorf("session TTL = %v, want 30m", cfg.Session.TTL)
	}
	if cfg.Database.MaxOpenConns != 10 {
		t.Errorf("max open conns = %d, want 10", cfg.Database.MaxOpenConns)
	}
}

func TestLoad_RejectsBadValues(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/pcon")
	t.Setenv("SEARCH_MAX_ROWS", "-1")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for negative search cap")
	}
}
