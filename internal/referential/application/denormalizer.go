package application

import (
	"context"
	"sort"

	"go.uber.org/zap"

	refDomain "github.com/davicafu/orgref/internal/referential/domain"
	sharedCache "github.com/davicafu/orgref/internal/shared/infra/platform/cache"
)

// SummaryLoader carga referenciales por id en un solo viaje al almacén.
type SummaryLoader func(ctx context.Context, ids []int64) ([]*refDomain.Referential, error)

// Denormalizer resuelve los resúmenes de tipo, subtipo y padre de una página de referenciales.
// Lee primero de la caché y carga en bloque los que faltan.
type Denormalizer struct {
	load  SummaryLoader
	cache refDomain.SummaryCache
	ttl   int
	log   *zap.Logger
}

// NewDenormalizer: cache puede ser nil, en cuyo caso siempre se va al almacén.
func NewDenormalizer(load SummaryLoader, cache refDomain.SummaryCache, ttlSecs int, log *zap.Logger) *Denormalizer {
	return &Denormalizer{load: load, cache: cache, ttl: ttlSecs, log: log}
}

// Summaries devuelve un mapa id → resumen de todos los enlaces de items.
// Los ids que no existen simplemente no aparecen en el mapa.
func (d *Denormalizer) Summaries(ctx context.Context, items []*refDomain.Referential) (map[int64]refDomain.Summary, error) {
	ids := linkedIDs(items)
	out := make(map[int64]refDomain.Summary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var misses []int64
	for _, id := range ids {
		if s, ok := d.cached(ctx, id); ok {
			out[id] = s
			continue
		}
		misses = append(misses, id)
	}
	if len(misses) == 0 {
		return out, nil
	}

	loaded, err := d.load(ctx, misses)
	if err != nil {
		return nil, err
	}
	for _, r := range loaded {
		s := r.Summary()
		out[r.ID] = s
		if d.cache != nil {
			sharedCache.AsyncCacheSet(d.cache, refDomain.SummaryCacheKey(r.ID), s, d.ttl, d.log)
		}
	}
	return out, nil
}

// Invalidate borra de la caché los resúmenes de los ids modificados.
func (d *Denormalizer) Invalidate(_ context.Context, ids []int64) {
	if d.cache == nil {
		return
	}
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, refDomain.SummaryCacheKey(id))
	}
	sharedCache.AsyncCacheDelete(d.cache, keys, d.log)
}

// Un fallo de caché se trata como un miss.
func (d *Denormalizer) cached(ctx context.Context, id int64) (refDomain.Summary, bool) {
	var s refDomain.Summary
	if d.cache == nil {
		return s, false
	}
	found, err := d.cache.Get(ctx, refDomain.SummaryCacheKey(id), &s)
	if err != nil {
		d.log.Warn("Cache read failed", zap.Int64("referential_id", id), zap.Error(err))
		return s, false
	}
	return s, found
}

func linkedIDs(items []*refDomain.Referential) []int64 {
	seen := make(map[int64]struct{})
	for _, r := range items {
		for _, id := range r.Links() {
			seen[id] = struct{}{}
		}
	}
	ids := make([]int64, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
