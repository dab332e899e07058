package supabase

import (
	"errors"
	"testing"

	"pdf-edit-automation/internal/domain"
)

// stubConfig overrides only what the client reads
type stubConfig struct {
	domain.Config
	url, key string
}

func (c stubConfig) GetSupabaseURL() string    { return c.url }
func (c stubConfig) GetSupabaseKey() string    { return c.key }
func (c stubConfig) GetSupabaseBucket() string { return "docs" }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})         {}
func (nopLogger) Error(string, error, ...interface{}) {}
func (nopLogger) Debug(string, ...interface{})        {}
func (nopLogger) Warn(string, ...interface{})         {}

func TestInitialize_RequiresCredentials(t *testing.T) {
	cfg := stubConfig{}
	client := NewSupabaseClient(cfg, nopLogger{})

	err := client.Initialize()
	if !errors.Is(err, domain.ErrStorageDisabled) {
		t.Fatalf("expected ErrStorageDisabled, got %v", err)
	}
	if client.DB() != nil {
		t.Fatalf("expected no client before a successful Initialize")
	}
}

func TestInitialize_CreatesClient(t *testing.T) {
	cfg := stubConfig{url: "http://localhost:54321", key: "test-key"}
	client := NewSupabaseClient(cfg, nopLogger{})

	if err := client.Initialize(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.DB() == nil || client.DB().Storage == nil {
		t.Fatalf("expected storage client to be available")
	}
}
