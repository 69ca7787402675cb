package config

import (
	"os"
	"testing"
)

func TestValidate_InvalidPort(t *testing.T) {
	cfg := Config{
		HTTP: HTTPConfig{Port: 0},
		Database: DatabaseConfig{
			Addrs: []string{"localhost:6379"},
		},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingStoreAddrs(t *testing.T) {
	cfg := Config{
		HTTP: HTTPConfig{Port: 8080},
		Database: DatabaseConfig{
			Addrs: []string{},
		},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing store addrs")
	}
}

func TestValidate_IntentAIRequiresKey(t *testing.T) {
	cfg := Config{
		HTTP: HTTPConfig{Port: 8080},
		Database: DatabaseConfig{
			Addrs: []string{"localhost:6379"},
		},
		Intent: IntentConfig{AIEnabled: true},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error when AI intent is enabled without a key")
	}
}

func TestValidate_ScoringWeightsOutOfRange(t *testing.T) {
	cfg := Config{
		HTTP: HTTPConfig{Port: 8080},
		Database: DatabaseConfig{
			Addrs: []string{"localhost:6379"},
		},
	}
	cfg.ApplyDefaults()
	cfg.Scoring.Similarity = 1.5

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for similarity weight out of [0,1]")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 15 {
		t.Errorf("expected WriteTimeoutSec=15, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Database.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Database.ReadinessTimeout)
	}
	if cfg.Embedding.Model != "text-embedding-3-small" {
		t.Errorf("unexpected embedding model %q", cfg.Embedding.Model)
	}
	if cfg.Embedding.Dimensions != 1536 {
		t.Errorf("expected Dimensions=1536, got %d", cfg.Embedding.Dimensions)
	}
	if cfg.Scoring.Similarity != 0.7 || cfg.Scoring.RuleBased != 0.3 {
		t.Errorf("expected default blend 0.7/0.3, got %v/%v",
			cfg.Scoring.Similarity, cfg.Scoring.RuleBased)
	}
	if cfg.Scoring.LexicalFloor != 0.3 {
		t.Errorf("expected LexicalFloor=0.3, got %v", cfg.Scoring.LexicalFloor)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:      HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Database:  DatabaseConfig{ReadinessTimeout: 15},
		Embedding: EmbeddingConfig{Model: "custom-model", Dimensions: 768},
	}
	cfg.Scoring.Similarity = 0.5
	cfg.Scoring.RuleBased = 0.5
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("expected WriteTimeoutSec=60, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Embedding.Model != "custom-model" || cfg.Embedding.Dimensions != 768 {
		t.Errorf("embedding override lost: %q/%d", cfg.Embedding.Model, cfg.Embedding.Dimensions)
	}
	if cfg.Scoring.Similarity != 0.5 || cfg.Scoring.RuleBased != 0.5 {
		t.Errorf("scoring override lost: %v/%v", cfg.Scoring.Similarity, cfg.Scoring.RuleBased)
	}
}

func TestExpandEnvVars(t *testing.T) {
	os.Setenv("RELEVANCE_TEST_KEY", "secret")
	defer os.Unsetenv("RELEVANCE_TEST_KEY")

	got := string(expandEnvVars([]byte("api_key: ${RELEVANCE_TEST_KEY}\nport: ${RELEVANCE_TEST_PORT:-8080}")))
	want := "api_key: secret\nport: 8080"
	if got != want {
		t.Errorf("unexpected expansion:\ngot:  %q\nwant: %q", got, want)
	}
}
