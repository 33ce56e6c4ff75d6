package config

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("OPENROUTER_API_KEY", "sk-test")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Recommendation.MaxRecommendations != 10 {
		t.Errorf("MaxRecommendations = %d, want 10", cfg.Recommendation.MaxRecommendations)
	}
	if cfg.Recommendation.RecentWatchedLimit != 10 {
		t.Errorf("RecentWatchedLimit = %d, want 10", cfg.Recommendation.RecentWatchedLimit)
	}
	if cfg.Recommendation.CandidateLimit != 50 {
		t.Errorf("CandidateLimit = %d, want 50", cfg.Recommendation.CandidateLimit)
	}
	if cfg.OpenRouter.Timeout != 60*time.Second {
		t.Errorf("OpenRouter.Timeout = %v, want 60s", cfg.OpenRouter.Timeout)
	}
	if cfg.OpenRouter.Temperature != 0.8 {
		t.Errorf("Temperature = %v, want 0.8", cfg.OpenRouter.Temperature)
	}
	if cfg.OpenRouter.MaxAttempts != 2 {
		t.Errorf("MaxAttempts = %d, want 2", cfg.OpenRouter.MaxAttempts)
	}
	if cfg.Redis.Enabled() {
		t.Error("redis should be disabled without REDIS_HOST")
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("RECOMMENDATION_MAX", "5")
	t.Setenv("OPENROUTER_TIMEOUT", "15s")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example ,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Recommendation.MaxRecommendations != 5 {
		t.Errorf("MaxRecommendations = %d, want 5", cfg.Recommendation.MaxRecommendations)
	}
	if cfg.OpenRouter.Timeout != 15*time.Second {
		t.Errorf("Timeout = %v, want 15s", cfg.OpenRouter.Timeout)
	}
	if !cfg.Redis.Enabled() {
		t.Error("redis should be enabled")
	}
	if len(cfg.App.CORSOrigins) != 2 || cfg.App.CORSOrigins[1] != "https://b.example" {
		t.Errorf("CORSOrigins = %v", cfg.App.CORSOrigins)
	}
}

func TestLoadMissingRequired(t *testing.T) {
	tests := []struct {
		name  string
		unset string
		want  string
	}{
		{"jwt", "JWT_SECRET", "missing jwt secret"},
		{"db", "DB_PASSWORD", "missing database password"},
		{"openrouter", "OPENROUTER_API_KEY", "missing openrouter api key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.unset, "")

			_, err := Load()
			if err == nil || err.Error() != tt.want {
				t.Fatalf("err = %v, want %q", err, tt.want)
			}
		})
	}
}
