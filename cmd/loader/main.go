package main

import (
	"context"
	"flag"
	"time"

	"github.com/jackc/pgx/v4"

	"github.com/Skye-project/phantom-mask/internal/config"
	"github.com/Skye-project/phantom-mask/internal/infrastructure/loader"
	"github.com/Skye-project/phantom-mask/internal/infrastructure/persistence/postgres"
	"github.com/Skye-project/phantom-mask/internal/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config.json", "Path to configuration file")
	pharmaciesPath := flag.String("pharmacies", "data/pharmacies.json", "Path to pharmacies JSON export")
	usersPath := flag.String("users", "data/users.json", "Path to users JSON export")
	flag.Parse()

	log := logger.NewLogger()
	log.Info("Starting data loader")

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal("Failed to load configuration", "error", err)
	}

	if err := postgres.RunMigrations(cfg.Database, log); err != nil {
		log.Fatal("Failed to run migrations", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	conn, err := pgx.Connect(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database", "error", err)
	}
	defer conn.Close(ctx)

	if err := loader.NewLoader(conn, log).LoadAll(ctx, *pharmaciesPath, *usersPath); err != nil {
		log.Fatal("Data load failed", "error", err)
	}

	log.Info("Data load complete")
}
