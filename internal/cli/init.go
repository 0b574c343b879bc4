// Package cli wires configuration, storage and the tracker service together
// and exposes them as subcommands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"spendtrack/internal/amqp"
	"spendtrack/internal/backend"
	"spendtrack/internal/cache"
	"spendtrack/internal/config"
	applog "spendtrack/internal/log"
	"spendtrack/internal/services"
	"spendtrack/internal/store"
)

// SetupLogger builds the application logger from configuration and sets it
// as the slog default. Invalid settings fall back to info/text.
func SetupLogger(cfg *config.Config) *applog.Logger {
	level, _ := applog.ParseLevel(cfg.LogLevel)
	format, _ := applog.ParseFormat(cfg.LogFormat)
	logger := applog.New(applog.Config{
		Level:     level,
		Format:    format,
		Component: applog.ComponentCLI,
		Writer:    os.Stderr,
	})
	applog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// A missing file is not an error.
func LoadEnvFile(paths ...string) error {
	err := godotenv.Load(paths...)
	if err != nil && errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// LoadAndValidateConfig loads configuration from the environment and validates it.
func LoadAndValidateConfig() (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}

// Session owns everything a command needs: the loaded store, the tracker
// service and the optional change publisher.
type Session struct {
	Tracker *services.TrackerService
	Store   *store.Store
	AMQP    *amqp.Client

	backend *backend.BackendResult
	caches  *cache.Manager
	logger  *applog.Logger
}

// OpenSession creates the configured backend, loads both collections and
// builds the tracker service. An unreachable broker only disables change
// notifications.
func OpenSession(ctx context.Context, cfg *config.Config, logger *applog.Logger) (*Session, error) {
	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}
	result, err := backend.NewFactory(logger).CreateBackend(ctx, bcfg)
	if err != nil {
		return nil, err
	}

	st := store.New(result.Store, store.Options{
		TransactionsKey: cfg.TransactionsKey,
		BudgetsKey:      cfg.BudgetsKey,
		Logger:          logger,
	})
	if err := st.Load(ctx); err != nil {
		result.Close()
		return nil, fmt.Errorf("load collections: %w", err)
	}

	s := &Session{
		Store:   st,
		backend: result,
		logger:  logger.WithComponent(applog.ComponentCLI),
	}

	var publisher services.ChangePublisher
	if cfg.AMQPEnabled() {
		client, err := amqp.NewClient(ctx, amqp.Config{
			URL:        cfg.AMQPURL,
			Exchange:   cfg.AMQPExchange,
			RoutingKey: cfg.AMQPRoutingKey,
			Logger:     logger,
		})
		if err != nil {
			s.logger.WarnContext(ctx, "Failed to initialize AMQP client, continuing without change notifications",
				applog.FieldError, err)
		} else {
			s.AMQP = client
			publisher = client
		}
	}

	s.Tracker = services.NewTrackerService(st, services.Options{
		Logger:    logger,
		Publisher: publisher,
		CacheSize: cfg.CacheSize,
		CacheTTL:  cfg.CacheTTL,
	})
	s.caches = cache.NewManager(logger)
	s.caches.Register(s.Tracker.Views())
	s.caches.StartCleanup(cfg.CacheTTL)

	return s, nil
}

// Close retries pending writes and releases every resource.
func (s *Session) Close(ctx context.Context) error {
	var errs []error
	if s.Store.Dirty() {
		if err := s.Store.Flush(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	s.caches.Stop()
	if s.AMQP != nil {
		if err := s.AMQP.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}
	if err := s.backend.Close(); err != nil {
		errs = append(errs, fmt.Errorf("backend: %w", err))
	}
	return errors.Join(errs...)
}
