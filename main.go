package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"loan-qualifier/cli"
	"loan-qualifier/config"
	httpLayer "loan-qualifier/http"
	"loan-qualifier/logger"
	"loan-qualifier/repository"
	"loan-qualifier/service"
)

const usage = `usage: loan-qualifier [-config file] <command>

commands:
  qualify   interactively match an applicant against a rate sheet (default)
  serve     run the qualification HTTP API
`

func main() {
	os.Exit(run())
}

func run() int {
	flags := flag.NewFlagSet("loan-qualifier", flag.ContinueOnError)
	configPath := flags.String("config", "", "path to a yaml config file")
	flags.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	if err := flags.Parse(os.Args[1:]); err != nil {
		return 2
	}

	var (
		cfg *config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.LoadFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 1
	}

	command := flags.Arg(0)
	log, err := logger.NewStructured(logLevel(cfg, command), cfg.Logging.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		return 1
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch command {
	case "", "qualify":
		if err := cli.NewApp(os.Stdin, os.Stdout, log).Run(ctx); err != nil {
			fmt.Fprintln(os.Stderr, cli.UserMessage(err))
			return 1
		}
		return 0
	case "serve":
		if err := serve(ctx, cfg, log); err != nil {
			log.WithError(err).Error("server failed", nil)
			return 1
		}
		return 0
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", command, usage)
		return 2
	}
}

// logLevel keeps run logs out of the interactive prompts unless the
// cli level asks for them.
func logLevel(cfg *config.Config, command string) string {
	if command == "" || command == "qualify" {
		return cfg.Logging.CLILevel
	}
	return cfg.Logging.Level
}

func newRateSheetRepository(ctx context.Context, cfg *config.Config, log logger.Logger) (repository.RateSheetRepository, func(), error) {
	var source repository.RateSheetRepository
	switch cfg.RateSheet.Source {
	case config.SourceS3:
		s3Source, err := repository.NewRateSheetS3FromConfig(ctx, cfg.RateSheet.S3.Region, cfg.RateSheet.S3.Bucket, cfg.RateSheet.S3.Key)
		if err != nil {
			return nil, nil, err
		}
		source = s3Source
	default:
		source = repository.NewRateSheetFile(cfg.RateSheet.Path)
	}

	if !cfg.Cache.Enabled {
		return source, func() {}, nil
	}

	cache, closeCache := newCache(ctx, cfg, log)
	return repository.NewCachedRateSheetRepository(source, cache, cfg.Cache.TTL, log), closeCache, nil
}

func newCache(ctx context.Context, cfg *config.Config, log logger.Logger) (repository.CacheRepository, func()) {
	if cfg.Cache.Backend == config.CacheMemory {
		return repository.NewMemoryCache(), func() {}
	}

	cache := repository.NewRedisCache(cfg.Cache.Redis.Address, cfg.Cache.Redis.Password, cfg.Cache.Redis.DB)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := cache.Ping(pingCtx); err != nil {
		// Not fatal: every load falls through to the source.
		log.WithError(err).Warn("redis unavailable, rate sheet cache will miss", nil)
	}

	return cache, func() {
		if err := cache.Close(); err != nil {
			log.WithError(err).Warn("failed to close redis", nil)
		}
	}
}

func serve(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	rates, closeRates, err := newRateSheetRepository(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeRates()

	qualifierService := service.NewQualifierService(rates, log)
	qualifyHandler := httpLayer.NewQualifyHandler(qualifierService, log)

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
	defer rateLimiter.Stop()

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      httpLayer.NewRouter(qualifyHandler, rateLimiter, cfg.Server.AllowedOrigins),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("loan qualifier API listening", map[string]interface{}{
			"address": cfg.Server.Address,
			"source":  rates.Source(),
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("error starting server: %w", err)
	case <-ctx.Done():
		log.Info("shutting down server", nil)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error during server shutdown: %w", err)
	}

	log.Info("server exited", nil)
	return nil
}
