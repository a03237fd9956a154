package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"log/slog"

	"candlebot/core/logger"
)

// Repository reads and replaces catalog rows in the database.
type Repository struct {
	db *sqlx.DB
}

// NewRepository wraps a database handle.
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// LoadAll returns the full catalog in display order.
func (r *Repository) LoadAll(ctx context.Context) ([]Product, error) {
	start := time.Now()
	var products []Product
	err := r.db.SelectContext(ctx, &products,
		`SELECT id, name, description, price, photo, position
		   FROM products
		  ORDER BY position, id`)
	if err != nil {
		logger.Error(ctx, "service.catalog", "catalog.load",
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	logger.Info(ctx, "service.catalog", "catalog.load",
		slog.Int("count", len(products)),
		slog.Duration("duration", logger.Took(start)),
	)
	return products, nil
}

// Upsert writes products inside a single transaction, refreshing display
// positions. Seeding is idempotent: reruns with the same file change nothing.
func (r *Repository) Upsert(ctx context.Context, products []Product) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const q = `
		INSERT INTO products (id, name, description, price, photo, position)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			price = EXCLUDED.price,
			photo = EXCLUDED.photo,
			position = EXCLUDED.position`

	for i, p := range products {
		if _, err := tx.ExecContext(ctx, q, p.ID, p.Name, p.Description, p.Price, p.Photo, i); err != nil {
			return fmt.Errorf("upsert product %d: %w", p.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}
