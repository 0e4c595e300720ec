package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	sharedDomain "github.com/davicafu/orgref/internal/shared/domain"
	sharedQuery "github.com/davicafu/orgref/internal/shared/platform/query"
)

// queryer es lo común entre *sql.DB y *sql.Tx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Repository es el repositorio SQL genérico de cualquier entidad del catálogo.
type Repository[E sharedDomain.Entity] struct {
	db      *sql.DB
	dialect Dialect
	table   Table[E]
	log     *zap.Logger
}

func NewRepository[E sharedDomain.Entity](db *sql.DB, dialect Dialect, table Table[E], log *zap.Logger) *Repository[E] {
	return &Repository[E]{db: db, dialect: dialect, table: table, log: log}
}

// ------------------ Búsqueda ------------------

// Search ejecuta conteo y página dentro de la misma transacción.
func (r *Repository[E]) Search(ctx context.Context, plan sharedQuery.Plan) (sharedDomain.PagedResult[E], error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return sharedDomain.PagedResult[E]{}, err
	}
	defer tx.Rollback()

	b := newBuilder(r.dialect)
	where := b.where(plan.Where)

	var total int64
	countSQL := fmt.Sprintf("SELECT COUNT(*) FROM %s%s", r.table.Name, where)
	if err := tx.QueryRowContext(ctx, countSQL, b.args...).Scan(&total); err != nil {
		return sharedDomain.PagedResult[E]{}, fmt.Errorf("count %s: %w", r.table.Name, err)
	}

	page := plan.Pagination()
	limit := b.bind(page.Limit)
	offset := b.bind(page.Offset)
	pageSQL := fmt.Sprintf("SELECT %s FROM %s%s%s LIMIT %s OFFSET %s",
		strings.Join(r.table.selectColumns(), ", "), r.table.Name, where, orderBy(plan.Orders), limit, offset)

	items, err := r.query(ctx, tx, pageSQL, b.args...)
	if err != nil {
		return sharedDomain.PagedResult[E]{}, fmt.Errorf("page %s: %w", r.table.Name, err)
	}

	if err := tx.Commit(); err != nil {
		return sharedDomain.PagedResult[E]{}, err
	}
	return sharedQuery.Result(plan, items, total), nil
}

// FindAllByID devuelve los registros existentes (borrados incluidos); los ids ausentes se ignoran.
func (r *Repository[E]) FindAllByID(ctx context.Context, ids []int64) ([]E, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.findByIDs(ctx, r.db, ids)
}

func (r *Repository[E]) findByIDs(ctx context.Context, q queryer, ids []int64) ([]E, error) {
	b := newBuilder(r.dialect)
	marks := make([]string, len(ids))
	for i, id := range ids {
		marks[i] = b.bind(id)
	}
	stmt := fmt.Sprintf("SELECT %s FROM %s WHERE id IN (%s) ORDER BY id",
		strings.Join(r.table.selectColumns(), ", "), r.table.Name, strings.Join(marks, ", "))
	return r.query(ctx, q, stmt, b.args...)
}

func (r *Repository[E]) query(ctx context.Context, q queryer, stmt string, args ...any) ([]E, error) {
	rows, err := q.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []E
	for rows.Next() {
		e := r.table.New()
		if err := rows.Scan(r.table.scanTargets(e)...); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// ------------------ Escritura ------------------

// Insert crea el registro y rellena su id.
func (r *Repository[E]) Insert(ctx context.Context, e E) error {
	base := e.Base()
	if base.CreatedAt.IsZero() {
		base.CreatedAt = time.Now().UTC()
	}

	cols := r.table.selectColumns()[1:]
	b := newBuilder(r.dialect)
	marks := make([]string, len(cols))
	for i, v := range r.table.writeValues(e) {
		marks[i] = b.bind(v)
	}

	stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id",
		r.table.Name, strings.Join(cols, ", "), strings.Join(marks, ", "))
	if err := r.db.QueryRowContext(ctx, stmt, b.args...).Scan(&base.ID); err != nil {
		return fmt.Errorf("insert %s: %w", r.table.Name, err)
	}
	return nil
}

// MutateByIDs carga los registros, aplica fn en memoria y persiste el lote
// junto con el evento de outbox en una única transacción. Devuelve cuántos se cargaron.
func (r *Repository[E]) MutateByIDs(ctx context.Context, ids []int64, fn func([]E) (*sharedDomain.OutboxEvent, error)) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	records, err := r.findByIDs(ctx, tx, ids)
	if err != nil {
		return 0, fmt.Errorf("load %s: %w", r.table.Name, err)
	}
	if len(records) == 0 {
		return 0, nil
	}

	evt, err := fn(records)
	if err != nil {
		return 0, err
	}

	for _, rec := range records {
		if err := r.update(ctx, tx, rec); err != nil {
			return 0, err
		}
	}

	if evt != nil {
		if err := insertOutboxTx(ctx, tx, r.dialect, *evt); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	for _, rec := range records {
		rec.Base().Version++
	}
	r.log.Debug("batch persisted", zap.String("table", r.table.Name), zap.Int("count", len(records)))
	return len(records), nil
}

// update escribe todas las columnas salvo id y creación, con control optimista por versión.
func (r *Repository[E]) update(ctx context.Context, q queryer, e E) error {
	cols := r.table.selectColumns()[1:]
	values := r.table.writeValues(e)

	b := newBuilder(r.dialect)
	sets := make([]string, 0, len(cols))
	for i, col := range cols {
		switch col {
		case "created_at", "created_by":
			continue
		case "version":
			sets = append(sets, "version = version + 1")
		default:
			sets = append(sets, col+" = "+b.bind(values[i]))
		}
	}

	base := e.Base()
	stmt := fmt.Sprintf("UPDATE %s SET %s WHERE id = %s AND version = %s",
		r.table.Name, strings.Join(sets, ", "), b.bind(base.ID), b.bind(base.Version))

	res, err := q.ExecContext(ctx, stmt, b.args...)
	if err != nil {
		return fmt.Errorf("update %s %d: %w", r.table.Name, base.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get RowsAffected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", r.table.Name, base.ID, sharedDomain.ErrVersionConflict)
	}
	return nil
}

// ------------------ Helper DRY para insertar en outbox ------------------

func insertOutboxTx(ctx context.Context, tx *sql.Tx, d Dialect, evt sharedDomain.OutboxEvent) error {
	payloadBytes, err := json.Marshal(evt.Payload)
	if err != nil {
		return fmt.Errorf("failed to marshal outbox payload: %w", err)
	}

	b := newBuilder(d)
	stmt := fmt.Sprintf(`INSERT INTO outbox (id,aggregate_type,aggregate_id,event_type,payload,created_at,processed)
		 VALUES (%s,%s,%s,%s,%s,%s,%s)`,
		b.bind(evt.ID.String()), b.bind(evt.AggregateType), b.bind(evt.AggregateID),
		b.bind(evt.EventType), b.bind(string(payloadBytes)), b.bind(evt.CreatedAt), b.bind(false))

	if _, err := tx.ExecContext(ctx, stmt, b.args...); err != nil {
		return fmt.Errorf("failed to insert outbox event: %w", err)
	}
	return nil
}
