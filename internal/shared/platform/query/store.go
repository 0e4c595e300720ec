package query

import (
	"context"

	sharedDomain "github.com/davicafu/orgref/internal/shared/domain"
)

// Store ejecuta un Plan: cuenta con el predicado completo y después lee la página,
// ambas cosas en la misma unidad de trabajo.
type Store[E any] interface {
	Search(ctx context.Context, plan Plan) (sharedDomain.PagedResult[E], error)
}

// Search compila el QuerySpec y delega la ejecución en el almacén.
// Los avisos de entradas descartadas se devuelven aparte y nunca son un error.
func Search[E any](ctx context.Context, store Store[E], spec sharedDomain.QuerySpec, reg *Registry[E], extra Extra, defaultSort string) (sharedDomain.PagedResult[E], []string, error) {
	plan := Compile(spec, reg, extra, defaultSort)
	page, err := store.Search(ctx, plan)
	return page, plan.Warnings, err
}
