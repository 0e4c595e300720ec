package application

import (
	"context"
	"time"

	"go.uber.org/zap"

	sharedDomain "github.com/davicafu/orgref/internal/shared/domain"
	"github.com/davicafu/orgref/internal/shared/infra/platform/metrics"
	sharedQuery "github.com/davicafu/orgref/internal/shared/platform/query"
)

// MutationHook se invoca tras una mutación masiva confirmada con los ids solicitados.
type MutationHook func(ctx context.Context, ids []int64)

// CatalogService agrupa los casos de uso comunes a todas las entidades del catálogo:
// búsqueda paginada y mutaciones masivas.
type CatalogService[E sharedDomain.Entity] struct {
	entity      string
	repo        Repository[E]
	registry    *sharedQuery.Registry[E]
	defaultSort string
	bulk        *BulkMutationEngine[E]
	metrics     *metrics.Metrics
	log         *zap.Logger
	hooks       []MutationHook
}

// NewCatalogService es el constructor; metrics puede ser nil.
func NewCatalogService[E sharedDomain.Entity](entity string, repo Repository[E], registry *sharedQuery.Registry[E], defaultSort string, m *metrics.Metrics, log *zap.Logger) *CatalogService[E] {
	return &CatalogService[E]{
		entity:      entity,
		repo:        repo,
		registry:    registry,
		defaultSort: defaultSort,
		bulk:        NewBulkMutationEngine(repo, entity),
		metrics:     m,
		log:         log,
	}
}

// OnMutated registra un hook (p. ej. invalidar caché) para después de cada mutación masiva.
func (s *CatalogService[E]) OnMutated(h MutationHook) {
	s.hooks = append(s.hooks, h)
}

func (s *CatalogService[E]) Entity() string {
	return s.entity
}

// Search compila y ejecuta la búsqueda. Los avisos no son errores: se devuelven al llamante.
func (s *CatalogService[E]) Search(ctx context.Context, spec sharedDomain.QuerySpec, extra sharedQuery.Extra) (sharedDomain.PagedResult[E], []string, error) {
	start := time.Now()
	page, warnings, err := sharedQuery.Search(ctx, s.repo, spec, s.registry, extra, s.defaultSort)
	s.metrics.ObserveSearch(s.entity, time.Since(start), len(warnings))

	if err != nil {
		s.log.Error("Search failed", zap.String("entity", s.entity), zap.Error(err))
		return sharedDomain.PagedResult[E]{}, warnings, err
	}
	if len(warnings) > 0 {
		s.log.Debug("Search criteria dropped", zap.String("entity", s.entity), zap.Strings("warnings", warnings))
	}
	return page, warnings, nil
}

func (s *CatalogService[E]) FindAllByID(ctx context.Context, ids []int64) ([]E, error) {
	return s.repo.FindAllByID(ctx, ids)
}

func (s *CatalogService[E]) BulkSetActive(ctx context.Context, ids []int64, active bool, actor *string) (int, error) {
	n, err := s.bulk.BulkSetActive(ctx, ids, active, actor)
	if err != nil {
		s.log.Error("Bulk set active failed", zap.String("entity", s.entity), zap.Int("ids", len(ids)), zap.Error(err))
		return 0, err
	}
	s.afterMutation(ctx, "activate", ids, n)
	return n, nil
}

func (s *CatalogService[E]) BulkSoftDelete(ctx context.Context, ids []int64, actor *string) (int, error) {
	n, err := s.bulk.BulkSoftDelete(ctx, ids, actor)
	if err != nil {
		s.log.Error("Bulk soft delete failed", zap.String("entity", s.entity), zap.Int("ids", len(ids)), zap.Error(err))
		return 0, err
	}
	s.afterMutation(ctx, "delete", ids, n)
	return n, nil
}

func (s *CatalogService[E]) afterMutation(ctx context.Context, operation string, ids []int64, affected int) {
	s.metrics.AddBulk(s.entity, operation, affected)
	if affected == 0 {
		return
	}
	s.log.Info("Bulk mutation applied",
		zap.String("entity", s.entity),
		zap.String("operation", operation),
		zap.Int("requested", len(ids)),
		zap.Int("affected", affected))
	for _, h := range s.hooks {
		h(ctx, ids)
	}
}
