package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Surya0265/CareerNav/internal/cache"
	"github.com/Surya0265/CareerNav/internal/db"
	"github.com/Surya0265/CareerNav/internal/extraction"
	"github.com/Surya0265/CareerNav/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the REST API for resume extraction.

Endpoints:
  GET  /health              Health check
  POST /extract             Extract from already-decoded text
  POST /extract-skills      Upload a resume, return skills only
  POST /extract-resume      Upload a resume, return the full analysis
  GET  /skills/taxonomy     List skill categories
  POST /skills/normalize    Normalize skill names
  GET  /extractions/{id}    Fetch a stored extraction

Persistence is enabled by database.url (DATABASE_URL) and result caching by
cache.url (REDIS_URL). Rate limiting is configured with RATE_LIMIT_* variables.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), a)
		},
	}

	cmd.Flags().IntP("port", "p", 0, "port to listen on")
	_ = a.v.BindPFlag("server.port", cmd.Flags().Lookup("port"))

	return cmd
}

func runServe(ctx context.Context, a *app) error {
	cfg := a.cfg

	extractorOpts, err := cfg.ExtractorOptions()
	if err != nil {
		return err
	}
	extractor, err := extraction.New(extractorOpts...)
	if err != nil {
		return fmt.Errorf("failed to build extractor: %w", err)
	}

	opts := server.Options{
		Port:                cfg.Server.Port,
		MaxUploadBytes:      cfg.Server.MaxUploadBytes,
		ReadTimeout:         cfg.Server.ReadTimeout,
		WriteTimeout:        cfg.Server.WriteTimeout,
		ShutdownTimeout:     cfg.Server.ShutdownTimeout,
		AllowedOrigin:       cfg.Server.AllowedOrigin,
		CollaboratorTimeout: max(cfg.Database.Timeout, cfg.Cache.Timeout),
		Logger:              a.log,
		Extractor:           extractor,
		RateLimit:           cfg.RateLimiter(),
	}

	if cfg.Database.URL != "" {
		connectCtx, cancel := context.WithTimeout(ctx, cfg.Database.Timeout)
		database, err := db.Connect(connectCtx, cfg.Database.URL)
		cancel()
		if err != nil {
			return err
		}
		defer database.Close()

		if err := database.Migrate(ctx); err != nil {
			return err
		}
		opts.Store = database
		a.log.Info("database connected")
	} else {
		a.log.Info("database not configured, extractions will not be stored")
	}

	if cfg.Cache.URL != "" {
		connectCtx, cancel := context.WithTimeout(ctx, cfg.Cache.Timeout)
		c, err := cache.New(connectCtx, cfg.Cache.URL, cfg.Cache.TTL)
		cancel()
		if err != nil {
			return err
		}
		defer func() { _ = c.Close() }()
		opts.Cache = c
		a.log.Info("result cache connected", zap.Duration("ttl", c.TTL()))
	}

	srv, err := server.New(opts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Run(ctx)
}
