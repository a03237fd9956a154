package catalog

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	"gopkg.in/yaml.v3"
	"log/slog"

	"candlebot/core/logger"
)

type seedFile struct {
	Products []Product `yaml:"products"`
}

// Seed parses the YAML seed file and upserts its products.
// An absent path is not an error: the catalog simply stays as migrated.
func Seed(ctx context.Context, db *sqlx.DB, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn(ctx, "db.seed", "seed.skip",
				slog.String("reason", "file_missing"),
				slog.String("path", path),
			)
			return nil
		}
		return fmt.Errorf("read seed file: %w", err)
	}

	var parsed seedFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("parse seed file %s: %w", path, err)
	}
	if len(parsed.Products) == 0 {
		logger.Warn(ctx, "db.seed", "seed.skip",
			slog.String("reason", "no_products"),
			slog.String("path", path),
		)
		return nil
	}
	for _, p := range parsed.Products {
		if p.ID <= 0 {
			return fmt.Errorf("seed file %s: product %q has invalid id %d", path, p.Name, p.ID)
		}
		if p.Price < 0 {
			return fmt.Errorf("seed file %s: product %d has negative price", path, p.ID)
		}
	}

	start := time.Now()
	if err := NewRepository(db).Upsert(ctx, parsed.Products); err != nil {
		return err
	}
	logger.Info(ctx, "db.seed", "seed.apply",
		slog.String("path", path),
		slog.Int("count", len(parsed.Products)),
		slog.Duration("duration", logger.Took(start)),
	)
	return nil
}
