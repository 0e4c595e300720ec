package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	sharedDomain "github.com/davicafu/orgref/internal/shared/domain"
	sharedQuery "github.com/davicafu/orgref/internal/shared/platform/query"
)

// Repository guarda las entidades en un mapa protegido por un RWMutex.
// Las lecturas devuelven copias (clone) para que nadie modifique el estado compartido fuera del lock.
type Repository[E sharedDomain.Entity] struct {
	mu     sync.RWMutex
	rows   map[int64]E
	nextID int64
	reg    *sharedQuery.Registry[E]
	clone  func(E) E
	outbox *Outbox
}

func NewRepository[E sharedDomain.Entity](reg *sharedQuery.Registry[E], clone func(E) E, outbox *Outbox) *Repository[E] {
	return &Repository[E]{
		rows:   make(map[int64]E),
		reg:    reg,
		clone:  clone,
		outbox: outbox,
	}
}

// Search evalúa el plan sobre una instantánea tomada bajo el lock de lectura.
func (r *Repository[E]) Search(ctx context.Context, plan sharedQuery.Plan) (sharedDomain.PagedResult[E], error) {
	if err := ctx.Err(); err != nil {
		return sharedDomain.PagedResult[E]{}, err
	}

	r.mu.RLock()
	matched := make([]E, 0, len(r.rows))
	for _, rec := range r.rows {
		if sharedQuery.Match(plan.Where, r.reg.Accessor(rec)) {
			matched = append(matched, r.clone(rec))
		}
	}
	r.mu.RUnlock()

	if len(plan.Orders) == 0 {
		sort.Slice(matched, func(i, j int) bool { return matched[i].Base().ID < matched[j].Base().ID })
	} else {
		sharedQuery.SortRecords(matched, plan.Orders, r.reg)
	}

	total := int64(len(matched))
	page := plan.Pagination()
	start := min(page.Offset, len(matched))
	end := start + min(page.Limit, len(matched)-start)

	return sharedQuery.Result(plan, matched[start:end], total), nil
}

// FindAllByID devuelve copias de los registros existentes, ordenadas por id.
func (r *Repository[E]) FindAllByID(ctx context.Context, ids []int64) ([]E, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.load(ids), nil
}

func (r *Repository[E]) load(ids []int64) []E {
	seen := make(map[int64]struct{}, len(ids))
	var out []E
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if rec, ok := r.rows[id]; ok {
			out = append(out, r.clone(rec))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Base().ID < out[j].Base().ID })
	return out
}

// Insert asigna id si no lo trae y guarda una copia.
func (r *Repository[E]) Insert(ctx context.Context, e E) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	base := e.Base()
	if base.ID == 0 {
		r.nextID++
		base.ID = r.nextID
	} else if base.ID > r.nextID {
		r.nextID = base.ID
	}
	if base.CreatedAt.IsZero() {
		base.CreatedAt = time.Now().UTC()
	}
	r.rows[base.ID] = r.clone(e)
	return nil
}

// MutateByIDs aplica fn sobre copias y solo las publica si fn no falla,
// de modo que un error deja el almacén intacto. El evento se encola en el mismo lock.
func (r *Repository[E]) MutateByIDs(ctx context.Context, ids []int64, fn func([]E) (*sharedDomain.OutboxEvent, error)) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	records := r.load(ids)
	if len(records) == 0 {
		return 0, nil
	}

	evt, err := fn(records)
	if err != nil {
		return 0, err
	}

	for _, rec := range records {
		rec.Base().Version++
		r.rows[rec.Base().ID] = r.clone(rec)
	}
	if evt != nil && r.outbox != nil {
		r.outbox.add(*evt)
	}
	return len(records), nil
}
