package clickhouse

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"

	auditDomain "github.com/davicafu/orgref/internal/audit/domain"
	sharedEvents "github.com/davicafu/orgref/internal/shared/events"
)

// AuditAnalyticsRepo implementa AuditAnalyticsRepository sobre ClickHouse.
type AuditAnalyticsRepo struct {
	db *sql.DB
}

// OpenDB abre la conexión y comprueba que responde.
func OpenDB(addr, dbName string) (*sql.DB, error) {
	conn := clickhouse.OpenDB(&clickhouse.Options{
		Addr: []string{addr},
		Auth: clickhouse.Auth{
			Database: dbName,
		},
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
	})
	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("could not ping clickhouse: %w", err)
	}
	return conn, nil
}

func NewAuditAnalyticsRepo(db *sql.DB) *AuditAnalyticsRepo {
	return &AuditAnalyticsRepo{db: db}
}

const insertAuditLog = `INSERT INTO audit_log (event_id, event_type, entity, batch_id, record_count, active, actor, occurred_at)`

// Append escribe una fila. ClickHouse no tiene claves únicas: la deduplicación la hace
// ReplacingMergeTree por event_id.
func (r *AuditAnalyticsRepo) Append(ctx context.Context, entry *auditDomain.AuditEntry) error {
	return r.LogBatch(ctx, []*auditDomain.AuditEntry{entry})
}

// LogBatch inserta varias entradas en un solo bloque.
func (r *AuditAnalyticsRepo) LogBatch(ctx context.Context, entries []*auditDomain.AuditEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, insertAuditLog)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, e := range entries {
		var active *uint8
		if e.Active != nil {
			v := uint8(0)
			if *e.Active {
				v = 1
			}
			active = &v
		}
		if _, err := stmt.ExecContext(ctx,
			e.ID,
			e.EventType,
			e.Entity,
			e.BatchID,
			uint32(e.Count),
			active,
			e.Actor,
			e.OccurredAt.UTC(),
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to exec statement for audit entry %s: %w", e.ID, err)
		}
	}

	return tx.Commit()
}

const dailyTrendQuery = `
	SELECT
		toStartOfDay(occurred_at) AS day,
		entity,
		sumIf(record_count, event_type = ? AND active = 1) AS activated,
		sumIf(record_count, event_type = ? AND active = 0) AS deactivated,
		sumIf(record_count, event_type = ?) AS deleted
	FROM audit_log FINAL
	WHERE occurred_at BETWEEN ? AND ?
	GROUP BY day, entity
	ORDER BY day, entity
`

func (r *AuditAnalyticsRepo) GetDailyTrend(ctx context.Context, start, end time.Time) ([]auditDomain.DailyTrend, error) {
	rows, err := r.db.QueryContext(ctx, dailyTrendQuery,
		sharedEvents.CatalogBulkActivated,
		sharedEvents.CatalogBulkActivated,
		sharedEvents.CatalogBulkDeleted,
		start.UTC(), end.UTC(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trends := []auditDomain.DailyTrend{}
	for rows.Next() {
		var t auditDomain.DailyTrend
		if err := rows.Scan(&t.Day, &t.Entity, &t.Activated, &t.Deactivated, &t.Deleted); err != nil {
			return nil, err
		}
		trends = append(trends, t)
	}
	return trends, rows.Err()
}

// InitSchema crea la tabla si no existe. Particionada por mes y ordenada por entidad y fecha.
func (r *AuditAnalyticsRepo) InitSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS audit_log (
			event_id     String,
			event_type   LowCardinality(String),
			entity       LowCardinality(String),
			batch_id     String,
			record_count UInt32,
			active       Nullable(UInt8),
			actor        Nullable(String),
			occurred_at  DateTime64(3)
		) ENGINE = ReplacingMergeTree()
		PARTITION BY toYYYYMM(occurred_at)
		ORDER BY (entity, occurred_at, event_id);
	`
	_, err := r.db.ExecContext(ctx, query)
	return err
}

var _ auditDomain.AuditAnalyticsRepository = (*AuditAnalyticsRepo)(nil)
