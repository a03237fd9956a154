package main

import (
	"context"
	"fmt"
	"log"

	"candlebot/core/bootstrap"
	corecmd "candlebot/core/cmd"

	"github.com/jmoiron/sqlx"

	"candlebot/internal/bot"
	"candlebot/internal/catalog"
	"candlebot/internal/config"
)

func main() {
	err := corecmd.Run(corecmd.Options{
		ConfigEnvVar:      "CONFIG_PATH",
		DefaultConfigPath: "configs/config.yaml",
		LoadConfig: func(path string) (corecmd.ConfigCarrier, error) {
			return config.Load(path)
		},
		Bootstrap: buildApp,
	})
	if err != nil {
		log.Fatalf("bot exited with error: %v", err)
	}
}

// buildApp runs the infrastructure pipeline (logger, database, migrations,
// catalog seed) and loads the catalog into memory for the bot.
func buildApp(carrier corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
	cfg, ok := carrier.(*config.Config)
	if !ok {
		return nil, fmt.Errorf("unexpected config type %T", carrier)
	}

	ctx := context.Background()
	res, err := bootstrap.Run(ctx, bootstrap.Options{
		Config:   cfg.CoreConfig(),
		Database: cfg.Database,
		Seed: func(ctx context.Context, db *sqlx.DB) error {
			return catalog.Seed(ctx, db, cfg.Catalog.SeedFile)
		},
	})
	if err != nil {
		return nil, err
	}

	products, err := catalog.NewRepository(res.DB).LoadAll(ctx)
	if err != nil {
		_ = res.DB.Close()
		return nil, fmt.Errorf("catalog load failed: %w", err)
	}
	// The catalog is immutable for the lifetime of the process; the database
	// connection is only needed during startup.
	if err := res.DB.Close(); err != nil {
		log.Printf("database close error: %v", err)
	}

	return bot.NewApp(cfg, catalog.NewStore(products)), nil
}
