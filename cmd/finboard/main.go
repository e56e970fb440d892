package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"finboard/internal/backend"
	"finboard/internal/budget"
	"finboard/internal/config"
	"finboard/internal/dashboard"
	"finboard/internal/events"
	amqpclient "finboard/internal/events/amqp"
	kafkaclient "finboard/internal/events/kafka"
	apphttp "finboard/internal/http"
	"finboard/internal/log"
	"finboard/internal/prefs"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed",
			log.FieldOperation, log.OpStartup,
			log.FieldError, err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Ledger store
	factory := backend.NewFactory(logger)
	result, err := factory.CreateBackend(ctx, backend.Config{
		Type:         backend.Type(cfg.DataBackend),
		SQLiteDBPath: cfg.SQLiteDBPath,
		PostgresDSN:  cfg.PostgresDSN,
	})
	if err != nil {
		logger.Error("Failed to initialize ledger backend",
			log.FieldBackend, cfg.DataBackend,
			log.FieldError, err)
		os.Exit(1)
	}
	defer func() {
		if err := result.Cleanup(); err != nil {
			logger.Error("Backend cleanup failed", log.FieldError, err)
		}
	}()
	store := result.Store
	logger.Info("Ledger backend initialized", log.FieldBackend, cfg.DataBackend)

	// Budget limits persisted as preferences
	var prefStore prefs.Store
	if cfg.PrefsPath != "" {
		fileStore, err := prefs.NewFileStore(cfg.PrefsPath)
		if err != nil {
			logger.Error("Failed to open preferences store",
				log.FieldPath, cfg.PrefsPath,
				log.FieldError, err)
			os.Exit(1)
		}
		prefStore = fileStore
	} else {
		prefStore = prefs.NewMemoryStore()
	}

	tracker, err := budget.Load(prefStore, logger)
	if err != nil {
		logger.Error("Failed to load budget limits", log.FieldError, err)
		os.Exit(1)
	}

	// Dashboard refresher: rebuilds views on ledger or budget changes
	refresher := dashboard.NewRefresher(tracker, logger)
	store.Subscribe(refresher.OnSnapshot)
	tracker.OnCommit(refresher.NotifyBudget)

	// Event transport for the sync worker
	publisher, err := newPublisher(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize event transport",
			"transport", cfg.EventTransport,
			log.FieldError, err)
		os.Exit(1)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error("Event transport close failed", log.FieldError, err)
		}
	}()

	srv := apphttp.NewServer(":"+cfg.Port, store, refresher, tracker, publisher, logger)

	// Graceful shutdown handling
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received",
			log.FieldOperation, log.OpShutdown,
			"signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err)
		}
		cancel()
	}()

	logger.Info("Starting finboard server",
		log.FieldOperation, log.OpStartup,
		"port", cfg.Port,
		log.FieldBackend, cfg.DataBackend,
		"transport", cfg.EventTransport)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}

func newPublisher(cfg *config.Config, logger *log.Logger) (events.Publisher, error) {
	switch cfg.EventTransport {
	case "amqp":
		return amqpclient.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
	case "kafka":
		return kafkaclient.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logger), nil
	default:
		return events.NopPublisher{}, nil
	}
}
