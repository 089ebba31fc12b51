package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"pcon/adapters/postgres"
	"pcon/app"
	"pcon/internal"
	"pcon/internal/config"
	"pcon/internal/migration"
	"pcon/internal/session"
	"pcon/ui"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	logger := internal.NewDefaultLogger()

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := migration.NewRunner().Run(ctx, db); err != nil {
		cancel()
		log.Fatalf("schema migration failed: %v", err)
	}
	cancel()

	sessions := session.NewStore(cfg.Session.TTL)
	defer sessions.Close()

	allocator := app.NewAllocatorService(postgres.NewCodeStore(db))
	service := app.NewManifestService(
		postgres.NewManifestRepository(db),
		postgres.NewStopRepository(db),
		postgres.NewShipmentRepository(db),
		postgres.NewSIDRepository(db),
		postgres.NewOSDRepository(db),
		allocator,
	)
	service.SetSearchLimit(cfg.Search.MaxRows)

	apiServer := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: ui.NewServer(service, sessions, logger).Handler(),
	}
	adminServer := &http.Server{
		Addr:    ":" + cfg.Server.AdminPort,
		Handler: ui.NewAdminApp(db, sessions, logger).Handler(),
	}

	go func() {
		logger.Info("admin server listening on :%s", cfg.Server.AdminPort)
		if err := adminServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("admin server failed: %v", err)
		}
	}()
	go func() {
		logger.Info("API server listening on :%s", cfg.Server.Port)
		if err := apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("API server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("API server shutdown: %v", err)
	}
	if err := adminServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("admin server shutdown: %v", err)
	}
}
