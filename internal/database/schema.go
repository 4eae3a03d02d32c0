package database

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

// CreateSchema creates the tables and indexes used by the API if they do not exist yet
func CreateSchema(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*User)(nil),
		(*Book)(nil),
	}

	for _, model := range models {
		if _, err := db.NewCreateTable().
			Model(model).
			IfNotExists().
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to create table for %T: %w", model, err)
		}
	}

	// Supports ORDER BY rating DESC, id ASC for the top-rated listing
	if _, err := db.NewCreateIndex().
		Model((*Book)(nil)).
		Index("books_rating_id_idx").
		IfNotExists().
		ColumnExpr("rating DESC").
		Column("id").
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to create books rating index: %w", err)
	}

	return nil
}
