package domain

// ---------------- Operadores ----------------

// Operator es el operador neutral que entienden los adaptadores de persistencia.
type Operator string

const (
	OpEq        Operator = "="
	OpNe        Operator = "<>"
	OpGt        Operator = ">"
	OpGte       Operator = ">="
	OpLt        Operator = "<"
	OpLte       Operator = "<="
	OpLike      Operator = "LIKE" // siempre insensible a mayúsculas, patrón con % y _
	OpNotLike   Operator = "NOT LIKE"
	OpIn        Operator = "IN"
	OpNotIn     Operator = "NOT IN"
	OpIsNull    Operator = "IS NULL"
	OpIsNotNull Operator = "IS NOT NULL"
	OpBetween   Operator = "BETWEEN"
)

// LikeEscape escapa % y _ literales dentro de un patrón LIKE.
const LikeEscape = '\\'

type LogicalOperator string

const (
	OpAnd LogicalOperator = "AND"
	OpOr  LogicalOperator = "OR"
)

// ---------------- Criterion ----------------

// Criterion describe una condición neutral de filtrado.
// Field es el nombre público del campo y Column su nombre en el almacén.
// Para IN / NOT IN el valor es []any; para BETWEEN es []any de dos elementos.
type Criterion struct {
	Field  string
	Column string
	Op     Operator
	Value  any
}

func (Criterion) criteria() {}

// ---------------- Criteria interface ----------------

// Criteria es un nodo del árbol de predicados: un Criterion o un CompositeCriteria.
type Criteria interface {
	criteria()
}

// ---------------- Composite Criteria ----------------

type CompositeCriteria struct {
	Operator  LogicalOperator
	Criterias []Criteria
}

func (CompositeCriteria) criteria() {}

// IsEmpty indica si el grupo no contiene condiciones (equivale a "match all").
func (c CompositeCriteria) IsEmpty() bool {
	return len(c.Criterias) == 0
}

// ---------------- Helpers ----------------

// And crea un CompositeCriteria con operador AND, descartando nodos nil.
func And(criterias ...Criteria) CompositeCriteria {
	return CompositeCriteria{Operator: OpAnd, Criterias: compact(criterias)}
}

// Or crea un CompositeCriteria con operador OR, descartando nodos nil.
func Or(criterias ...Criteria) CompositeCriteria {
	return CompositeCriteria{Operator: OpOr, Criterias: compact(criterias)}
}

func compact(in []Criteria) []Criteria {
	out := make([]Criteria, 0, len(in))
	for _, c := range in {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}
