package config

import (
	"log/slog"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds runtime configuration for every binary in the repo.
type Config struct {
	// Server
	Port     int    `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	// "json" or "console"
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Upload limits
	MaxUploadSize int64 `env:"MAX_UPLOAD_SIZE" envDefault:"10485760"` // 10MB in bytes

	// Outbound HTTP (url fetch, news search, scrape, classifier)
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s"`

	// Assistant
	OpenAIKey             string        `env:"OPENAI_API_KEY"`
	OpenAIBaseURL         string        `env:"OPENAI_BASE_URL"`
	AssistantID           string        `env:"ASSISTANT_ID" envDefault:"asst_Of2rJSAhLl8qNRc2m9Y9VuMj"`
	AssistantPollInterval time.Duration `env:"ASSISTANT_POLL_INTERVAL" envDefault:"1s"`
	AssistantMaxPolls     int           `env:"ASSISTANT_MAX_POLLS" envDefault:"600"`
	AssistantRunTimeout   time.Duration `env:"ASSISTANT_RUN_TIMEOUT" envDefault:"5m"`

	// News search
	GNewsKey     string `env:"GNEWS_API_KEY"`
	GNewsBaseURL string `env:"GNEWS_BASE_URL" envDefault:"https://gnews.io/api/v4"`
	NewsLang     string `env:"NEWS_LANG" envDefault:"en"`
	NewsCountry  string `env:"NEWS_COUNTRY" envDefault:"us"`
	NewsMax      int    `env:"NEWS_MAX" envDefault:"10"`

	// Scrape target
	ScrapeURL       string `env:"SCRAPE_URL" envDefault:"https://finance.yahoo.com/topic/latest-news/"`
	ScrapeBaseURL   string `env:"SCRAPE_BASE_URL" envDefault:"https://finance.yahoo.com"`
	ScrapeSelector  string `env:"SCRAPE_SELECTOR" envDefault:"h3.Mb\\(5px\\)"`
	ScrapeUserAgent string `env:"SCRAPE_USER_AGENT" envDefault:"Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)"`

	// Classifier
	HFKey               string `env:"HF_API_KEY"`
	ClassifierURL       string `env:"CLASSIFIER_URL" envDefault:"https://router.huggingface.co/hf-inference/models"`
	ClassifierModel     string `env:"CLASSIFIER_MODEL" envDefault:"ProsusAI/finbert"`
	ClassifierMaxTokens int    `env:"CLASSIFIER_MAX_TOKENS" envDefault:"512"`
	ClassifierVocabFile string `env:"CLASSIFIER_VOCAB_FILE"`

	// Cache
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	CacheTTL      int    `env:"CACHE_TTL" envDefault:"300"` // seconds
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		slog.Warn("failed to parse env; using defaults where set", "err", err)
	}
	return cfg
}
