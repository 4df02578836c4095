package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/devmatch/internal/ai"
	"github.com/spigell/devmatch/internal/ai/gemini"
	"github.com/spigell/devmatch/internal/ai/openai"
	"github.com/spigell/devmatch/internal/assessment"
	"github.com/spigell/devmatch/internal/cache"
	"github.com/spigell/devmatch/internal/errs"
	"github.com/spigell/devmatch/internal/filtering"
	"github.com/spigell/devmatch/internal/github"
	"github.com/spigell/devmatch/internal/jobs"
	"github.com/spigell/devmatch/internal/jooble"
	"github.com/spigell/devmatch/internal/logger"
	"github.com/spigell/devmatch/internal/pipeline"
	"github.com/spigell/devmatch/internal/profile"
	"github.com/spigell/devmatch/internal/report"
	"github.com/spigell/devmatch/internal/secrets"
	"github.com/spigell/devmatch/internal/store"
)

// deps holds what a command needs. close releases the store and the cache.
type deps struct {
	config  *Config
	logger  *zap.Logger
	printer *report.Printer
	closers []func() error
}

func setup() *deps {
	zl, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zl.Fatal("getting a config", zap.Error(err))
	}
	if config == nil {
		zl.Fatal("config is required")
	}

	zl.Debug("starting", zap.String("version", version))

	return &deps{
		config:  config,
		logger:  zl,
		printer: report.New(rootCmd.OutOrStdout(), report.NormalizeColorMode(viper.GetString("color"))),
	}
}

func (r *deps) close() {
	for _, c := range r.closers {
		if err := c(); err != nil {
			r.logger.Warn("closing resource", zap.Error(err))
		}
	}
	_ = r.logger.Sync()
}

func (r *deps) profiles() *profile.Aggregator {
	cfg := r.config.GitHub

	token, err := secrets.Load(secrets.Source{Name: "github token", Value: cfg.Token, File: cfg.TokenFile})
	if err != nil {
		r.logger.Debug("using unauthenticated github requests", zap.Error(err))
		token = ""
	}

	client := github.New(r.logger, token, r.config.HTTPTimeout)
	if cfg.APIURL != "" {
		client.APIURL = strings.TrimRight(cfg.APIURL, "/")
	}

	return profile.NewAggregator(client, r.logger, profile.Config{
		PerPage:     cfg.PerPage,
		MaxPages:    cfg.MaxPages,
		Pacing:      cfg.Pacing,
		Concurrency: cfg.ContributorsConcurrency,
	})
}

// generator returns nil when no reasoning service is configured; the
// assessment then runs on heuristics only.
func (r *deps) generator(ctx context.Context) ai.Generator {
	g, err := newGenerator(ctx, r.config.AI, r.logger)
	if err != nil {
		level := r.logger.Warn
		if errors.Is(err, errs.ErrMisconfigured) {
			level = r.logger.Info
		}
		level("reasoning service disabled", zap.Error(err))
		return nil
	}
	return g
}

func newGenerator(ctx context.Context, cfg *AIConfig, log *zap.Logger) (ai.Generator, error) {
	if cfg == nil {
		return nil, errs.Misconfigured("ai", "configure", errors.New("ai section is missing"))
	}

	provider, err := ai.NormalizeProvider(cfg.Provider)
	if err != nil {
		return nil, errs.Misconfigured("ai", "configure", err)
	}

	switch provider {
	case ai.ProviderOpenAI:
		if cfg.OpenAI == nil {
			return nil, errs.Misconfigured(provider, "configure", errors.New("ai.openai section is missing"))
		}
		apiKey, err := secrets.Load(secrets.Source{Name: "openai api key", Value: cfg.OpenAI.APIKey, File: cfg.OpenAI.APIKeyFile})
		if err != nil {
			return nil, fmt.Errorf("%w (set ai.openai.api-key-file or OPENAI_API_KEY)", err)
		}
		return openai.NewGenerator(log, openai.Config{
			APIKey:       apiKey,
			Model:        cfg.OpenAI.Model,
			MaxTokens:    cfg.OpenAI.MaxTokens,
			Temperature:  cfg.OpenAI.Temperature,
			BaseURL:      cfg.OpenAI.BaseURL,
			MaxRetries:   cfg.OpenAI.MaxRetries,
			MaxLogLength: cfg.OpenAI.MaxLogLength,
		})
	default:
		if cfg.Gemini == nil {
			return nil, errs.Misconfigured(provider, "configure", errors.New("ai.gemini section is missing"))
		}
		apiKey, err := secrets.Load(secrets.Source{Name: "gemini api key", Value: cfg.Gemini.APIKey, File: cfg.Gemini.APIKeyFile})
		if err != nil {
			return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY)", err)
		}
		return gemini.NewGenerator(ctx, log, gemini.Config{
			APIKey:       apiKey,
			Model:        cfg.Gemini.Model,
			MaxRetries:   cfg.Gemini.MaxRetries,
			MaxLogLength: cfg.Gemini.MaxLogLength,
		})
	}
}

func (r *deps) store(ctx context.Context) (store.Store, error) {
	s, err := store.Open(ctx, r.config.Store, r.logger)
	if err != nil {
		return nil, err
	}
	r.closers = append(r.closers, s.Close)
	return s, nil
}

// jooble always returns a client. Without a key every search fails with
// errs.ErrMisconfigured and the source is skipped.
func (r *deps) jooble(ctx context.Context) *jooble.Client {
	cfg := r.config.Jooble

	apiKey, err := secrets.Load(secrets.Source{Name: "jooble api key", Value: cfg.APIKey, File: cfg.APIKeyFile})
	if err != nil {
		r.logger.Info("jooble source disabled", zap.Error(err))
	}

	client := jooble.New(r.logger, apiKey, r.config.HTTPTimeout)
	if cfg.APIURL != "" {
		client.APIURL = cfg.APIURL
	}
	if cfg.Radius > 0 {
		client.Radius = cfg.Radius
	}

	if r.config.Cache != nil && r.config.Cache.Enabled {
		redis, err := cache.New(ctx, r.config.Cache.Config, r.logger)
		if err != nil {
			r.logger.Warn("search cache disabled", zap.Error(err))
		} else {
			r.closers = append(r.closers, redis.Close)
			client.WithCache(redis)
		}
	}

	return client
}

func (r *deps) collector(ctx context.Context) *jobs.Aggregator {
	sources := make([]jobs.Source, 0, 2)

	s, err := r.store(ctx)
	if err != nil {
		r.logger.Warn("store source disabled", zap.Error(err))
	} else {
		sources = append(sources, jobs.NewStoreSource(s))
	}
	sources = append(sources, jobs.NewJoobleSource(r.jooble(ctx)))

	var excluded []string
	if r.config.Filters != nil {
		excluded = r.config.Filters.ExcludeCompanies
	}

	return jobs.NewAggregator(r.logger, jobs.Config{
		SourceTimeout: r.config.SourceTimeout,
		Filtering:     filtering.Config{ExcludedCompanies: excluded},
	}, sources...)
}

func (r *deps) pipeline(ctx context.Context, withJobs bool) *pipeline.Pipeline {
	var collector pipeline.Collector
	if withJobs {
		collector = r.collector(ctx)
	}
	engine := assessment.NewEngine(r.generator(ctx), r.logger)
	if r.config.AI != nil {
		engine.WithTimeout(r.config.AI.Timeout)
	}
	return pipeline.New(r.profiles(), engine, collector, r.logger)
}

// failure names what went wrong for a log message, falling back to op for
// unclassified errors.
func failure(subject, op string, err error) string {
	switch errs.KindOf(err) {
	case errs.ErrNotFound:
		return subject + " not found"
	case errs.ErrInvalidInput:
		return "invalid " + subject
	case errs.ErrMisconfigured:
		return op + " is misconfigured"
	case errs.ErrUpstreamUnavailable:
		return op + " failed: upstream unavailable"
	default:
		return op + " failed"
	}
}
