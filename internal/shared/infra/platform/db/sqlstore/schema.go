package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
)

// Migration es cualquier cosa capaz de generar su DDL, normalmente una Table[E].
type Migration interface {
	Statements(d Dialect) []string
}

type outboxMigration struct{}

func (outboxMigration) Statements(d Dialect) []string {
	idType, payloadType := "TEXT", "TEXT"
	if d.Name == Postgres.Name {
		idType, payloadType = "UUID", "JSONB"
	}
	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS outbox (
	id %s PRIMARY KEY,
	aggregate_type TEXT NOT NULL,
	aggregate_id TEXT NOT NULL,
	event_type TEXT NOT NULL,
	payload %s NOT NULL,
	created_at %s NOT NULL,
	processed BOOLEAN NOT NULL
)`, idType, payloadType, d.types[TypeTime]),
		"CREATE INDEX IF NOT EXISTS idx_outbox_pending ON outbox (processed, created_at)",
	}
}

// Migrate crea, si no existen, la tabla de outbox y las tablas indicadas, en ese orden.
func Migrate(ctx context.Context, db *sql.DB, d Dialect, tables ...Migration) error {
	all := append([]Migration{outboxMigration{}}, tables...)
	for _, m := range all {
		for _, stmt := range m.Statements(d) {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("migrate: %w\n%s", err, stmt)
			}
		}
	}
	return nil
}
