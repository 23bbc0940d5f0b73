package database_test

import (
	"strings"
	"testing"
	"time"

	"github.com/sigmacoders/guardian/pkg/database"
)

func TestFinalizeDefaults(t *testing.T) {
	cfg := database.Config{Name: "guardian", User: "guardian"}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	tests := []struct {
		name     string
		got      any
		expected any
	}{
		{"host", cfg.Host, "localhost"},
		{"port", cfg.Port, 5432},
		{"ssl_mode", cfg.SSLMode, "disable"},
		{"max_open_conns", cfg.MaxOpenConns, 25},
		{"max_idle_conns", cfg.MaxIdleConns, 5},
		{"conn_max_lifetime", cfg.ConnMaxLifetime, "15m"},
		{"conn_timeout", cfg.ConnTimeout, "5s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("got %v, want %v", tt.got, tt.expected)
			}
		})
	}
}

func TestFinalizeEnvOverrides(t *testing.T) {
	t.Setenv("TEST_DB_HOST", "db.internal")
	t.Setenv("TEST_DB_PORT", "5433")
	t.Setenv("TEST_DB_NAME", "guardian_staging")
	t.Setenv("TEST_DB_USER", "svc")
	t.Setenv("TEST_DB_TIMEOUT", "10s")

	env := &database.Env{
		Host:        "TEST_DB_HOST",
		Port:        "TEST_DB_PORT",
		Name:        "TEST_DB_NAME",
		User:        "TEST_DB_USER",
		ConnTimeout: "TEST_DB_TIMEOUT",
	}

	cfg := database.Config{}
	if err := cfg.Finalize(env); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.Host != "db.internal" || cfg.Port != 5433 {
		t.Errorf("host/port = %s:%d", cfg.Host, cfg.Port)
	}
	if cfg.Name != "guardian_staging" || cfg.User != "svc" {
		t.Errorf("name/user = %s/%s", cfg.Name, cfg.User)
	}
	if cfg.ConnTimeoutDuration() != 10*time.Second {
		t.Errorf("conn timeout = %v, want 10s", cfg.ConnTimeoutDuration())
	}
}

func TestFinalizeValidation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     database.Config
		wantErr string
	}{
		{"missing name", database.Config{User: "svc"}, "name required"},
		{"missing user", database.Config{Name: "guardian"}, "user required"},
		{
			"bad lifetime",
			database.Config{Name: "guardian", User: "svc", ConnMaxLifetime: "forever"},
			"conn_max_lifetime",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Finalize(nil)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestDsn(t *testing.T) {
	cfg := database.Config{
		Host:     "localhost",
		Port:     5432,
		Name:     "guardian",
		User:     "svc",
		Password: "secret",
		SSLMode:  "disable",
	}

	want := "host=localhost port=5432 dbname=guardian user=svc password=secret sslmode=disable"
	if got := cfg.Dsn(); got != want {
		t.Errorf("Dsn() = %q, want %q", got, want)
	}
}

func TestMerge(t *testing.T) {
	base := database.Config{Host: "localhost", Port: 5432, Name: "guardian", User: "svc"}
	base.Merge(&database.Config{Host: "db.internal", Password: "secret"})

	if base.Host != "db.internal" {
		t.Errorf("host = %q, want db.internal", base.Host)
	}
	if base.Password != "secret" {
		t.Errorf("password not applied")
	}
	if base.Name != "guardian" || base.Port != 5432 {
		t.Error("unset overlay fields should not clobber base")
	}
}
