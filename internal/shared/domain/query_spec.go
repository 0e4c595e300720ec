package domain

import (
	"math"
	"strings"
)

// DefaultPageSize se aplica cuando el cliente no envía size o envía un valor <= 0.
const DefaultPageSize = 20

// FilterOperator es el operador que envía el cliente en cada FilterCriteria.
type FilterOperator string

const (
	FilterEquals             FilterOperator = "EQUALS"
	FilterNotEquals          FilterOperator = "NOT_EQUALS"
	FilterContains           FilterOperator = "CONTAINS"
	FilterNotContains        FilterOperator = "NOT_CONTAINS"
	FilterStartsWith         FilterOperator = "STARTS_WITH"
	FilterEndsWith           FilterOperator = "ENDS_WITH"
	FilterGreaterThan        FilterOperator = "GREATER_THAN"
	FilterGreaterThanOrEqual FilterOperator = "GREATER_THAN_OR_EQUAL"
	FilterLessThan           FilterOperator = "LESS_THAN"
	FilterLessThanOrEqual    FilterOperator = "LESS_THAN_OR_EQUAL"
	FilterIn                 FilterOperator = "IN"
	FilterNotIn              FilterOperator = "NOT_IN"
	FilterIsNull             FilterOperator = "IS_NULL"
	FilterIsNotNull          FilterOperator = "IS_NOT_NULL"
	FilterBetween            FilterOperator = "BETWEEN"
	FilterIsTrue             FilterOperator = "IS_TRUE"
	FilterIsFalse            FilterOperator = "IS_FALSE"
)

var knownFilterOperators = map[FilterOperator]struct{}{
	FilterEquals: {}, FilterNotEquals: {}, FilterContains: {}, FilterNotContains: {},
	FilterStartsWith: {}, FilterEndsWith: {}, FilterGreaterThan: {}, FilterGreaterThanOrEqual: {},
	FilterLessThan: {}, FilterLessThanOrEqual: {}, FilterIn: {}, FilterNotIn: {},
	FilterIsNull: {}, FilterIsNotNull: {}, FilterBetween: {}, FilterIsTrue: {}, FilterIsFalse: {},
}

// ParseFilterOperator normaliza el operador a mayúsculas. ok es false si no existe.
func ParseFilterOperator(raw string) (FilterOperator, bool) {
	op := FilterOperator(strings.ToUpper(strings.TrimSpace(raw)))
	_, ok := knownFilterOperators[op]
	return op, ok
}

type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

// ParseSortDirection devuelve DESC solo si el valor es "desc" (sin importar mayúsculas).
func ParseSortDirection(raw string) SortDirection {
	if strings.EqualFold(strings.TrimSpace(raw), string(SortDesc)) {
		return SortDesc
	}
	return SortAsc
}

// ParseLogicalOperator devuelve OR solo si el valor es "or"; cualquier otro valor es AND.
func ParseLogicalOperator(raw string) LogicalOperator {
	if strings.EqualFold(strings.TrimSpace(raw), string(OpOr)) {
		return OpOr
	}
	return OpAnd
}

// FilterCriteria es un filtro genérico (campo, operador, valor).
type FilterCriteria struct {
	Field    string         `json:"field"`
	Operator FilterOperator `json:"operator"`
	Value    any            `json:"value,omitempty"`
}

// SortCriteria es una entrada de ordenación multi-columna.
type SortCriteria struct {
	Field     string        `json:"field"`
	Direction SortDirection `json:"direction,omitempty"`
}

// RangeValue produce un intervalo cerrado, solo cota inferior o solo cota superior.
type RangeValue struct {
	Min any `json:"min,omitempty"`
	Max any `json:"max,omitempty"`
}

// QuerySpec describe una búsqueda paginada, ordenada y filtrada sobre cualquier entidad.
type QuerySpec struct {
	ID              *int64                `json:"id,omitempty"`
	IDs             []int64               `json:"ids,omitempty"`
	Page            int                   `json:"page"`
	Size            int                   `json:"size"`
	SortBy          string                `json:"sortBy,omitempty"`
	SortDirection   SortDirection         `json:"sortDirection,omitempty"`
	Sorts           []SortCriteria        `json:"sorts,omitempty"`
	Filters         []FilterCriteria      `json:"filters,omitempty"`
	Ranges          map[string]RangeValue `json:"ranges,omitempty"`
	LogicalOperator LogicalOperator       `json:"logicalOperator,omitempty"`
	IncludeDeleted  bool                  `json:"includeDeleted"`
}

// Normalize devuelve una copia con los valores por defecto aplicados.
// Tras normalizar siempre se cumple Size > 0 y Page >= 0.
func (s QuerySpec) Normalize() QuerySpec {
	out := s

	if out.Page < 0 {
		out.Page = 0
	}
	if out.Size <= 0 {
		out.Size = DefaultPageSize
	}

	out.SortDirection = ParseSortDirection(string(s.SortDirection))
	out.LogicalOperator = ParseLogicalOperator(string(s.LogicalOperator))
	out.IDs = dedupeIDs(s.IDs)

	if s.Sorts == nil && strings.TrimSpace(s.SortBy) != "" {
		out.Sorts = []SortCriteria{{Field: strings.TrimSpace(s.SortBy), Direction: out.SortDirection}}
	} else if s.Sorts != nil {
		out.Sorts = make([]SortCriteria, len(s.Sorts))
		for i, sc := range s.Sorts {
			out.Sorts[i] = SortCriteria{Field: sc.Field, Direction: ParseSortDirection(string(sc.Direction))}
		}
	}

	return out
}

// Offset es el número de filas a saltar: page * size.
func (s QuerySpec) Offset() int {
	return PageOffset(s.Page, s.Size)
}

// PageOffset calcula page * size saturando en math.MaxInt: una página fuera de rango
// da una ventana vacía en todos los almacenes en lugar de un offset negativo.
func PageOffset(page, size int) int {
	if page <= 0 || size <= 0 {
		return 0
	}
	if page > math.MaxInt/size {
		return math.MaxInt
	}
	return page * size
}

func dedupeIDs(ids []int64) []int64 {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
