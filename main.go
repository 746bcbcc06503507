package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"

	"debt-planner/advice"
	"debt-planner/config"
	httpLayer "debt-planner/http"
	"debt-planner/repository"
	"debt-planner/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
		}); err != nil {
			log.Printf("Warning: sentry disabled: %v", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	cache := newCache(cfg.Redis)
	debtRepo, db := newDebtRepository(cfg.Database)
	if db != nil {
		defer db.Close()
	}

	advisor := advice.New(advice.Options{
		APIKey:     cfg.Advisor.APIKey,
		APIURL:     cfg.Advisor.APIURL,
		Model:      cfg.Advisor.Model,
		Timeout:    cfg.Advisor.Timeout,
		MaxRetries: cfg.Advisor.MaxRetries,
	})

	payoffService := service.NewDebtPayoffService(debtRepo, cache, advisor, cfg.Redis.TTL)
	comparisonService := service.NewComparisonService(payoffService)
	debtService := service.NewDebtService(debtRepo)
	installmentService := service.NewInstallmentService()

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimit.Capacity, cfg.RateLimit.Refill)
	defer rateLimiter.Stop()

	router := httpLayer.NewRouter(httpLayer.Handlers{
		Payoff:      httpLayer.NewPayoffHandler(payoffService, comparisonService),
		Debts:       httpLayer.NewDebtHandler(debtService),
		Installment: httpLayer.NewInstallmentHandler(installmentService),
	}, rateLimiter)

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("🚀 API corriendo en %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Printf("Error starting server: %v", err)
		return
	case <-quit:
		log.Println("Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	log.Println("Server exited")
}

// newCache uses Redis when it is configured and reachable, the in-process
// cache otherwise.
func newCache(cfg config.RedisConfig) repository.CacheRepository {
	if cfg.Addr == "" {
		return repository.NewMemoryCache()
	}

	cache := repository.NewRedisCache(repository.RedisOptions{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		Prefix:   cfg.Prefix,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := cache.Ping(ctx); err != nil {
		log.Printf("Warning: redis unavailable at %s, using memory cache: %v", cfg.Addr, err)
		cache.Close()
		return repository.NewMemoryCache()
	}
	return cache
}

// newDebtRepository opens Postgres when DATABASE_URL is set. Unlike the cache,
// a configured database that fails is fatal.
func newDebtRepository(cfg config.DatabaseConfig) (repository.DebtRepository, *sql.DB) {
	if cfg.URL == "" {
		log.Println("Warning: no database configured, stored debts live in memory")
		return repository.NewDebtRepositoryMemory(), nil
	}

	db, err := repository.OpenPostgres(cfg.URL, cfg.MaxOpenConns)
	if err != nil {
		log.Fatalf("Error opening database: %v", err)
	}

	repo := repository.NewDebtRepositoryPostgres(db)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := repo.Migrate(ctx); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}
	return repo, db
}
