package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"booktitles/internal/httpx"
	"booktitles/internal/platform/logger"
	"booktitles/internal/platform/openlibrary"
	"booktitles/internal/subject"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	loadEnvFiles()
	cfg := loadConfig()
	appLogger := logger.NewStdLogger(cfg.LogColor, logger.ParseLevel(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		dbPool    *pgxpool.Pool
		lookupLog subject.LookupLog
	)
	if cfg.DatabaseDSN != "" {
		dbPool = mustOpenDB(ctx, cfg.DatabaseDSN)
		defer dbPool.Close()
		lookupLog = subject.NewPostgresRepo(dbPool)
	} else {
		appLogger.Notice("DB_DSN not set, lookup log disabled")
	}

	olClient := openlibrary.NewClient(cfg.UserAgent, cfg.OutboundRPS, cfg.FetchTimeout, openlibrary.WithBaseURL(cfg.BaseURL))
	fetcher := subject.NewFetcher(olClient, appLogger)
	subjectService := subject.NewService(fetcher, lookupLog, appLogger, subject.Config{Concurrency: cfg.Concurrency})
	subjectHandler := subject.NewHTTPHandler(subjectService)

	router := http.NewServeMux()
	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if dbPool != nil {
			pingCtx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
			defer cancel()
			if err := dbPool.Ping(pingCtx); err != nil {
				http.Error(w, "db not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	router.Handle("GET /metrics", promhttp.Handler())
	subjectHandler.Register(router)

	rateLimiter := httpx.NewRateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst)
	defer rateLimiter.Close()
	handler := httpx.Chain(router,
		httpx.RecoveryMiddleware(appLogger),
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware(appLogger),
		httpx.SecurityHeadersMiddleware(cfg.EnableHSTS),
		httpx.CORSMiddleware(cfg.AllowedOrigins),
		rateLimiter.Middleware,
	)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.FetchTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		appLogger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			appLogger.Error("server shutdown: %v", err)
		}
		rateLimiter.Close()
	}()

	appLogger.Info("Starting server on %s", cfg.Addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server error: %v", err)
	}
}

func mustOpenDB(ctx context.Context, dsn string) *pgxpool.Pool {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("cannot create db pool: %v", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		log.Fatalf("cannot ping database (%s): %v", redactDSN(dsn), err)
	}
	log.Println("database connection OK")
	return pool
}
