package config

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Fatalf("expected default token ttl 24h, got %s", cfg.TokenTTL)
	}
	if cfg.Mongo.Timeout != 10*time.Second {
		t.Fatalf("expected default mongo timeout 10s, got %s", cfg.Mongo.Timeout)
	}
	if cfg.Redis.Timeout != 5*time.Second {
		t.Fatalf("expected default redis timeout 5s, got %s", cfg.Redis.Timeout)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("MONGO_TIMEOUT", "3s")
	t.Setenv("REDIS_TIMEOUT", "750ms")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Mongo.Timeout != 3*time.Second {
		t.Fatalf("expected mongo timeout 3s, got %s", cfg.Mongo.Timeout)
	}
	if cfg.Redis.Timeout != 750*time.Millisecond {
		t.Fatalf("expected redis timeout 750ms, got %s", cfg.Redis.Timeout)
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	os.Unsetenv("JWT_SECRET")

	if _, err := Load(context.Background()); err == nil {
		t.Fatalf("expected error when JWT_SECRET is unset")
	}
}
