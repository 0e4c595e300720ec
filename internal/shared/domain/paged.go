package domain

// PagedResult es una página de resultados. TotalCount se calcula antes de paginar.
type PagedResult[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	PageNumber int   `json:"pageNumber"`
	PageSize   int   `json:"pageSize"`
}

// MapPage transforma los elementos conservando los datos de paginación.
func MapPage[T, R any](p PagedResult[T], fn func(T) R) PagedResult[R] {
	items := make([]R, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, fn(it))
	}
	return PagedResult[R]{
		Items:      items,
		TotalCount: p.TotalCount,
		PageNumber: p.PageNumber,
		PageSize:   p.PageSize,
	}
}
