package config

import (
	"os"
	"testing"
	"time"
)

// unsetEnv clears keys for the duration of the test.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		if prev, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, prev) })
		}
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	unsetEnv(t,
		"PORT", "LOG_LEVEL", "LOG_FORMAT", "ASSISTANT_ID", "ASSISTANT_POLL_INTERVAL",
		"ASSISTANT_MAX_POLLS", "ASSISTANT_RUN_TIMEOUT", "NEWS_LANG", "NEWS_COUNTRY",
		"NEWS_MAX", "SCRAPE_SELECTOR", "CLASSIFIER_MODEL", "CLASSIFIER_MAX_TOKENS", "CACHE_TTL",
	)

	cfg := Load()

	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{"Port", cfg.Port, 8080},
		{"LogLevel", cfg.LogLevel, "info"},
		{"LogFormat", cfg.LogFormat, "json"},
		{"AssistantID", cfg.AssistantID, "asst_Of2rJSAhLl8qNRc2m9Y9VuMj"},
		{"AssistantPollInterval", cfg.AssistantPollInterval, time.Second},
		{"AssistantMaxPolls", cfg.AssistantMaxPolls, 600},
		{"AssistantRunTimeout", cfg.AssistantRunTimeout, 5 * time.Minute},
		{"NewsLang", cfg.NewsLang, "en"},
		{"NewsCountry", cfg.NewsCountry, "us"},
		{"NewsMax", cfg.NewsMax, 10},
		{"ScrapeSelector", cfg.ScrapeSelector, `h3.Mb\(5px\)`},
		{"ClassifierModel", cfg.ClassifierModel, "ProsusAI/finbert"},
		{"ClassifierMaxTokens", cfg.ClassifierMaxTokens, 512},
		{"CacheTTL", cfg.CacheTTL, 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("expected %s=%v, got %v", tt.name, tt.expected, tt.got)
			}
		})
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("ASSISTANT_POLL_INTERVAL", "250ms")
	t.Setenv("ASSISTANT_MAX_POLLS", "0")

	cfg := Load()

	if cfg.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Port)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.LogLevel)
	}
	if cfg.AssistantPollInterval != 250*time.Millisecond {
		t.Errorf("expected poll interval 250ms, got %v", cfg.AssistantPollInterval)
	}
	if cfg.AssistantMaxPolls != 0 {
		t.Errorf("expected unbounded polls (0), got %d", cfg.AssistantMaxPolls)
	}
}

func TestLoadSecrets(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("GNEWS_API_KEY", "gnews-test")

	cfg := Load()

	if cfg.OpenAIKey != "sk-test" {
		t.Errorf("expected OpenAI key 'sk-test', got %s", cfg.OpenAIKey)
	}
	if cfg.GNewsKey != "gnews-test" {
		t.Errorf("expected GNews key 'gnews-test', got %s", cfg.GNewsKey)
	}
}
