package application

import (
	"context"

	sharedDomain "github.com/davicafu/orgref/internal/shared/domain"
	sharedQuery "github.com/davicafu/orgref/internal/shared/platform/query"
)

// Repository es el contrato que cumplen sqlstore.Repository y memstore.Repository.
type Repository[E sharedDomain.Entity] interface {
	sharedQuery.Store[E]
	FindAllByID(ctx context.Context, ids []int64) ([]E, error)
	// MutateByIDs carga los registros existentes entre ids, aplica fn y persiste
	// el lote y el evento devuelto de forma atómica. Devuelve cuántos registros cargó.
	MutateByIDs(ctx context.Context, ids []int64, fn func([]E) (*sharedDomain.OutboxEvent, error)) (int, error)
}
