package main

import (
	"context"
	"flag"
	"log"

	"ziggler-bot/internal/config"
	"ziggler-bot/internal/db"
	"ziggler-bot/internal/logger"
	"ziggler-bot/internal/seed"

	"go.uber.org/zap"
)

func main() {
	file := flag.String("file", "seed/catalog.yaml", "YAML catalog to load")
	dryRun := flag.Bool("dry-run", false, "validate the catalog without writing")
	flag.Parse()

	if err := run(*file, *dryRun); err != nil {
		log.Fatal(err)
	}
}

func run(file string, dryRun bool) error {
	catalog, err := seed.LoadFile(file)
	if err != nil {
		return err
	}
	if dryRun {
		logger.L().Info("catalog valid",
			zap.String("file", file),
			zap.Int("categories", len(catalog.Categories)),
			zap.Int("products", len(catalog.Products)),
		)
		return nil
	}

	cfg, err := config.LoadConfigE()
	if err != nil {
		return err
	}
	if err := logger.Init(logger.Options{Env: cfg.AppEnv, Level: cfg.LogLevel}); err != nil {
		return err
	}
	defer logger.Sync()

	database, err := db.NewDatabase(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	_, err = seed.Apply(context.Background(), database, catalog)
	return err
}
