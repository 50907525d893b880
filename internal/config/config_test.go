package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.App.Name == "" {
		t.Fatal("expected app name to be set")
	}
	if cfg.Pricing.TaxRate <= 0 {
		t.Fatalf("expected a default tax rate, got %v", cfg.Pricing.TaxRate)
	}
	if cfg.Cart.TTL != 2*time.Hour {
		t.Errorf("Cart.TTL = %v, want 2h default", cfg.Cart.TTL)
	}
	if cfg.OrderAPI.BaseURL == "" {
		t.Fatal("expected a default order API base URL")
	}
	if cfg.OrderAPI.Timeout <= 0 {
		t.Fatalf("expected a positive order API timeout, got %v", cfg.OrderAPI.Timeout)
	}
	if cfg.QRSession.TTL <= 0 {
		t.Fatalf("expected a positive QR session TTL, got %v", cfg.QRSession.TTL)
	}
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     "5432",
		Name:     "dinepos",
		User:     "postgres",
		Password: "postgres",
		SSLMode:  "disable",
		Timezone: "Africa/Nairobi",
	}

	want := "host=localhost user=postgres password=postgres dbname=dinepos port=5432 sslmode=disable TimeZone=Africa/Nairobi"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}
