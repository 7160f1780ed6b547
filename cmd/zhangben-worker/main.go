package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"zhangben/internal/amqp"
	"zhangben/internal/config"
	"zhangben/internal/kv"
	"zhangben/internal/log"
	"zhangben/internal/worker"
)

const amqpDialAttempts = 10

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	// Setup structured logging
	logCfg := log.DefaultConfig()
	logCfg.Component = log.ComponentWorker
	logger := log.New(logCfg)
	log.SetDefault(logger)

	logger.Info("Starting zhangben-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the mirror worker")
		os.Exit(1)
	}

	primary, err := kv.NewSQLiteStore(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to open primary store", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer primary.Close()

	mirror, err := kv.NewSQLiteStore(cfg.MirrorDBPath)
	if err != nil {
		logger.Error("Failed to open mirror store", "error", err, "path", cfg.MirrorDBPath)
		os.Exit(1)
	}
	defer mirror.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The server may come up before the broker does; keep dialing.
	amqpClient, err := amqp.NewClientWithRetry(ctx, cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, amqpDialAttempts)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	mirrorWorker := worker.NewMirrorWorker(primary, mirror)

	// Bring the mirror up to date before consuming events.
	if err := mirrorWorker.Snapshot(ctx); err != nil {
		logger.Error("Startup snapshot failed", "error", err)
		// Keep going; the periodic reconcile retries.
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := amqpClient.ConsumeLedgerEvents(ctx, func(msg *amqp.LedgerEventMessage) error {
			return mirrorWorker.HandleLedgerEvent(ctx, msg)
		})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		ticker := time.NewTicker(cfg.MirrorInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				if err := mirrorWorker.Reconcile(ctx); err != nil {
					logger.Error("Periodic reconcile failed", "error", err)
				}
			}
		}
	})

	logger.Info("Mirror worker running",
		"queue", cfg.AMQPQueue,
		"interval", cfg.MirrorInterval,
		"mirror_path", cfg.MirrorDBPath)

	if err := g.Wait(); err != nil {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Worker shutdown complete")
}
