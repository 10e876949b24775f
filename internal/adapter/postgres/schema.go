package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Tasks are stored as schemaless JSONB documents; the only columns the core
// logic relies on are the id and the crawl_id lookup. seq preserves the
// store's natural (insertion) order for audit task listings.
const schema = `
CREATE TABLE IF NOT EXISTS crawl_tasks (
	id  UUID PRIMARY KEY,
	doc JSONB NOT NULL
);

CREATE TABLE IF NOT EXISTS audit_tasks (
	id       UUID PRIMARY KEY,
	crawl_id TEXT NOT NULL,
	seq      BIGSERIAL,
	doc      JSONB NOT NULL
);

CREATE INDEX IF NOT EXISTS audit_tasks_crawl_id_idx ON audit_tasks (crawl_id);
`

// Migrate creates the task collections if they do not exist yet.
func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create task tables: %w", err)
	}
	return nil
}
