package query

import (
	sharedDomain "github.com/davicafu/orgref/internal/shared/domain"
)

// ---------- Tipos de filtrado / paginación / ordenamiento ----------

// OffsetPagination para paginación clásica
type OffsetPagination struct {
	Limit  int
	Offset int
}

// Order indica campo y dirección ya resueltos contra el registro.
type Order struct {
	Field  string // nombre público, ej. "createdAt"
	Column string // columna en el almacén, ej. "created_at"
	Desc   bool
}

// Plan es el resultado de compilar un QuerySpec: predicado, orden y ventana.
type Plan struct {
	Where    sharedDomain.CompositeCriteria
	Orders   []Order
	Page     int
	Size     int
	Warnings []string
}

// Pagination traduce page/size a limit/offset.
func (p Plan) Pagination() OffsetPagination {
	return OffsetPagination{Limit: p.Size, Offset: sharedDomain.PageOffset(p.Page, p.Size)}
}

// Result empaqueta filas y total con los datos de página del plan.
func Result[E any](p Plan, items []E, total int64) sharedDomain.PagedResult[E] {
	if items == nil {
		items = []E{}
	}
	return sharedDomain.PagedResult[E]{
		Items:      items,
		TotalCount: total,
		PageNumber: p.Page,
		PageSize:   p.Size,
	}
}
