package main

import (
	"context"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"pcon/internal/config"
	"pcon/internal/migration"
)

// Applies the manifest schema without starting the servers. Useful for
// provisioning a fresh database or verifying DDL against a staging copy.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	if err := migration.NewRunner().Run(ctx, db); err != nil {
		log.Fatalf("schema migration failed: %v", err)
	}
	log.Println("schema migration complete")
}
