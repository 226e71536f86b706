package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"evently/internal/config"
	"evently/internal/db"
	evhttp "evently/internal/http"
	"evently/internal/http/handlers"
	"evently/internal/observability"
	"evently/internal/queue/redisclient"
	"evently/internal/repo/mongodb"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := observability.NewLogger(cfg.Env)

	if cfg.MongoURI == "" {
		log.Error("MONGODB_URI is not set")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := observability.InitTracer(ctx, "evently-api", cfg.OTLPEndpoint)

	if err != nil {
		log.Warn("tracing disabled", "err", err)
	} else {
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdownTracer(sctx)
		}()
	}

	conn := db.NewConnector(cfg.MongoURI, cfg.MongoDB)

	// dial eagerly so a bad connection string fails the deploy, not the
	// first request
	connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)

	if _, err := conn.Get(connectCtx); err != nil {
		cancel()
		log.Error("mongodb connection failed", "err", err)
		os.Exit(1)
	}

	if err := mongodb.EnsureIndexes(connectCtx, conn); err != nil {
		cancel()
		log.Error("ensure indexes failed", "err", err)
		os.Exit(1)
	}

	cancel()
	log.Info("mongodb connected", "db", cfg.MongoDB)

	queue := redisclient.New(redisclient.Config{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer queue.Close()

	if err := queue.Ping(ctx); err != nil {
		// bookings still work without redis; confirmations are best effort
		log.Warn("redis unreachable, confirmations will be dropped", "err", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	prom := observability.NewProm(reg)

	eventsRepo := mongodb.NewEventsRepo(conn)
	bookingsRepo := mongodb.NewBookingsRepo(conn)

	ping := func() error {
		pctx, pcancel := context.WithTimeout(context.Background(), time.Second)
		defer pcancel()

		_, err := conn.Get(pctx)
		return err
	}

	router := evhttp.NewRouter(cfg, log, evhttp.RouterDeps{
		Events:   handlers.NewEventsHandler(eventsRepo, log),
		Bookings: handlers.NewBookingsHandler(bookingsRepo, eventsRepo, queue, log),
		Health:   handlers.NewHealthHandler(ping),
		Prom:     prom,
		Metrics:  promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("api listening", "addr", srv.Addr, "env", cfg.Env)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	sctx, scancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer scancel()

	if err := srv.Shutdown(sctx); err != nil {
		log.Error("graceful shutdown failed", "err", err)
	}

	if err := conn.Close(sctx); err != nil {
		log.Error("mongodb disconnect failed", "err", err)
	}

	log.Info("bye")
}
