package app

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/openai/openai-go/v3/option"

	"newsdigest/internal/analysis"
	"newsdigest/internal/assistant"
	"newsdigest/internal/cache"
	"newsdigest/internal/config"
	"newsdigest/internal/logger"
	"newsdigest/internal/sentiment"
	"newsdigest/internal/source"
	"newsdigest/internal/tokens"
)

// Deps bundles the runtime dependencies of the gateway.
type Deps struct {
	Config   config.Config
	Log      *slog.Logger
	Cache    cache.Cache
	Sources  source.Loader
	Analyzer analysis.Analyzer
}

// DigestDeps is the smaller set the one-shot CLI needs.
type DigestDeps struct {
	Config config.Config
	Log    *slog.Logger
	Runner *assistant.Runner
}

// Build loads env, config, and every shared component.
func Build() (Deps, error) {
	cfg, log, err := loadBase()
	if err != nil {
		return Deps{}, err
	}

	runner, err := buildRunner(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize assistant: %w", err)
	}
	scorers, err := buildScorers(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize sentiment scorers: %w", err)
	}
	c := buildCache(cfg, log)
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	return Deps{
		Config:   cfg,
		Log:      log,
		Cache:    c,
		Sources:  buildSources(cfg, log, c, httpClient),
		Analyzer: analysis.NewService(scorers, runner, log),
	}, nil
}

// BuildDigest loads env, config, and the assistant runner only.
func BuildDigest() (DigestDeps, error) {
	cfg, log, err := loadBase()
	if err != nil {
		return DigestDeps{}, err
	}
	runner, err := buildRunner(cfg, log)
	if err != nil {
		return DigestDeps{}, fmt.Errorf("failed to initialize assistant: %w", err)
	}
	return DigestDeps{Config: cfg, Log: log, Runner: runner}, nil
}

func loadBase() (config.Config, *slog.Logger, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return config.Config{}, nil, fmt.Errorf("failed to load environment variables: %w", err)
	}
	cfg := config.Load()
	return cfg, logger.New(cfg.LogLevel, cfg.LogFormat), nil
}

func buildRunner(cfg config.Config, log *slog.Logger) (*assistant.Runner, error) {
	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	var opts []option.RequestOption
	if cfg.OpenAIBaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.OpenAIBaseURL))
	}
	backend, err := assistant.NewOpenAIBackend(cfg.OpenAIKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenAI client: %w", err)
	}
	log.Info("using OpenAI assistant", "assistant_id", cfg.AssistantID, "poll_interval", cfg.AssistantPollInterval)
	return assistant.NewRunner(backend, assistant.Options{
		AssistantID:  cfg.AssistantID,
		PollInterval: cfg.AssistantPollInterval,
		MaxPolls:     cfg.AssistantMaxPolls,
		Timeout:      cfg.AssistantRunTimeout,
	}, log.With("component", "assistant"))
}

func buildScorers(cfg config.Config, log *slog.Logger) (sentiment.Registry, error) {
	polarity, err := sentiment.NewPolarity()
	if err != nil {
		return nil, err
	}
	opts := sentiment.ClassifierOptions{
		BaseURL:   cfg.ClassifierURL,
		Model:     cfg.ClassifierModel,
		APIKey:    cfg.HFKey,
		MaxTokens: cfg.ClassifierMaxTokens,
	}
	if cfg.ClassifierVocabFile != "" {
		vocab, err := tokens.LoadWordPiece(cfg.ClassifierVocabFile)
		if err != nil {
			return nil, err
		}
		opts.Vocab = vocab
		log.Info("classifier input measured in word pieces", "vocab", cfg.ClassifierVocabFile)
	} else {
		log.Warn("CLASSIFIER_VOCAB_FILE not set; classifier input length is estimated")
	}
	classifier, err := sentiment.NewClassifier(&http.Client{Timeout: cfg.HTTPTimeout}, opts)
	if err != nil {
		return nil, err
	}
	if cfg.HFKey == "" {
		log.Warn("HF_API_KEY not set; classifier calls may be rate limited")
	}
	return sentiment.Registry{
		sentiment.MethodVADER:      sentiment.NewVADER(),
		sentiment.MethodPolarity:   polarity,
		sentiment.MethodClassifier: classifier,
	}, nil
}

func buildCache(cfg config.Config, log *slog.Logger) cache.Cache {
	if cfg.RedisAddr == "" {
		log.Info("REDIS_ADDR not set; news search results are not cached")
		return cache.NewNoOpCache()
	}
	rc, err := cache.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		log.Warn("redis unavailable, continuing without cache", "err", err)
		return cache.NewNoOpCache()
	}
	log.Info("using Redis cache", "addr", cfg.RedisAddr)
	return rc
}

func buildSources(cfg config.Config, log *slog.Logger, c cache.Cache, client *http.Client) *source.Provider {
	gnews := source.NewGNewsClient(client, source.GNewsOptions{
		BaseURL: cfg.GNewsBaseURL,
		APIKey:  cfg.GNewsKey,
		Lang:    cfg.NewsLang,
		Country: cfg.NewsCountry,
		Max:     cfg.NewsMax,
	})
	news := source.NewCachedSearcher(gnews, c, time.Duration(cfg.CacheTTL)*time.Second, log.With("component", "news"))
	scraper := source.NewScraper(client, source.ScraperOptions{
		URL:       cfg.ScrapeURL,
		BaseURL:   cfg.ScrapeBaseURL,
		Selector:  cfg.ScrapeSelector,
		UserAgent: cfg.ScrapeUserAgent,
	})
	return source.NewProvider(news, scraper, source.NewFetcher(client))
}
