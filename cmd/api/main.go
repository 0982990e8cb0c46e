package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/bryanwahyu/content-analyzer/internal/application"
	"github.com/bryanwahyu/content-analyzer/internal/application/analysis"
	"github.com/bryanwahyu/content-analyzer/internal/config"
	"github.com/bryanwahyu/content-analyzer/internal/infra/ai/openai"
	"github.com/bryanwahyu/content-analyzer/internal/infra/httpserver"
	"github.com/bryanwahyu/content-analyzer/internal/infra/search/bing"
	"github.com/bryanwahyu/content-analyzer/internal/logging"
	"github.com/bryanwahyu/content-analyzer/internal/middleware"
	"github.com/bryanwahyu/content-analyzer/internal/observability/metrics"
	"github.com/bryanwahyu/content-analyzer/internal/resilience/circuitbreaker"
)

func main() {
	app := &cli.App{
		Name:  "content-analyzer",
		Usage: "Summarize text and find alternative sources",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to the YAML config file",
				Value:   "config.yaml",
				EnvVars: []string{"CONFIG_PATH"},
			},
			&cli.StringFlag{
				Name:    "env-file",
				Usage:   "optional .env file with API credentials",
				Value:   ".env",
				EnvVars: []string{"ENV_FILE"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "debug, info, warn or error",
				Value:   "info",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "log-format",
				Usage:   "text or json",
				Value:   "text",
				EnvVars: []string{"LOG_FORMAT"},
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("content-analyzer exited")
	}
}

func run(c *cli.Context) error {
	logger := logging.New(c.String("log-level"), c.String("log-format"), os.Stderr)

	// credentials from .env, if any; real env vars win
	if envFile := c.String("env-file"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			logger.WithError(err).WithField("path", envFile).Warn("failed to load env file")
		}
	}

	// load config
	cfg, err := config.Load(c.String("config"), logger)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// init metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	// init clients
	summarizer := openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.BaseURL)
	breaker := circuitbreaker.New(circuitbreaker.SearchAPIConfig(), logger)
	searcher := bing.NewClient(bing.Config{
		APIKey:     cfg.Search.APIKey,
		Endpoint:   cfg.Search.Endpoint,
		SafeSearch: cfg.Search.SafeSearch,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}, breaker, logger)

	// init service
	svc := &analysis.Service{
		Summarizer: summarizer,
		Finder:     analysis.NewFinder(searcher, logger, m),
		Settings: analysis.Settings{
			MaxTokens:         cfg.MaxTokens,
			SearchResultCount: cfg.SearchResultCount,
			SearchRetryLimit:  cfg.SearchRetryLimit,
		},
		Logger:  logger,
		Metrics: m,
		Clock:   application.SystemClock{},
	}

	// init router
	handler := httpserver.NewRouter(svc, httpserver.Options{
		Logger:         logger,
		Metrics:        m,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Checkers: map[string]middleware.HealthChecker{
			"summarizer": middleware.CredentialChecker{Name: "openai", Configured: cfg.OpenAI.APIKey != ""},
		},
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// run server
	errCh := make(chan error, 1)
	go func() {
		logger.WithField("addr", srv.Addr).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-stop:
	}
	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("shutdown error")
		return err
	}
	return nil
}
