package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"evently/internal/config"
	"evently/internal/notifications"
	"evently/internal/observability"
	"evently/internal/queue/redisclient"
	"evently/internal/queue/worker"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := observability.NewLogger(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := observability.InitTracer(ctx, "evently-worker", cfg.OTLPEndpoint)

	if err != nil {
		log.Warn("tracing disabled", "err", err)
	} else {
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdownTracer(sctx)
		}()
	}

	queue := redisclient.New(redisclient.Config{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer queue.Close()

	if err := queue.Ping(ctx); err != nil {
		log.Error("redis connection failed", "err", err)
		os.Exit(1)
	}

	prom := observability.NewProm(prometheus.NewRegistry())

	w := worker.New(
		worker.Config{PopTimeout: 2 * time.Second},
		queue,
		notifications.NewLogNotifier(),
		log,
		prom,
	)

	log.Info("worker started", "queue", redisclient.DefaultQueue)

	if err := w.Run(ctx); err != nil {
		log.Error("worker stopped with error", "err", err)
		os.Exit(1)
	}

	log.Info("worker stopped")
}
