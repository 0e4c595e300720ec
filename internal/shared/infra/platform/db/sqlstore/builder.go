package sqlstore

import (
	"fmt"
	"strings"

	sharedDomain "github.com/davicafu/orgref/internal/shared/domain"
	sharedQuery "github.com/davicafu/orgref/internal/shared/platform/query"
)

// builder acumula argumentos y numera los placeholders según el dialecto.
type builder struct {
	dialect Dialect
	args    []any
}

func newBuilder(d Dialect) *builder {
	return &builder{dialect: d}
}

func (b *builder) bind(v any) string {
	b.args = append(b.args, v)
	return b.dialect.Placeholder(len(b.args))
}

// where devuelve la cláusula WHERE completa o "" si el predicado está vacío.
func (b *builder) where(c sharedDomain.CompositeCriteria) string {
	if c.IsEmpty() {
		return ""
	}
	return " WHERE " + b.criteria(c)
}

func (b *builder) criteria(c sharedDomain.Criteria) string {
	switch n := c.(type) {
	case sharedDomain.CompositeCriteria:
		if n.IsEmpty() {
			return "1=1"
		}
		parts := make([]string, 0, len(n.Criterias))
		for _, child := range n.Criterias {
			parts = append(parts, b.criteria(child))
		}
		if len(parts) == 1 {
			return parts[0]
		}
		return "(" + strings.Join(parts, " "+string(n.Operator)+" ") + ")"
	case sharedDomain.Criterion:
		return b.criterion(n)
	}
	return "1=1"
}

func (b *builder) criterion(c sharedDomain.Criterion) string {
	col := c.Column
	switch c.Op {
	case sharedDomain.OpIsNull, sharedDomain.OpIsNotNull:
		return fmt.Sprintf("%s %s", col, c.Op)
	case sharedDomain.OpLike, sharedDomain.OpNotLike:
		return fmt.Sprintf("%s %s %s ESCAPE '%c'", b.dialect.Lower(col), c.Op, b.bind(c.Value), sharedDomain.LikeEscape)
	case sharedDomain.OpIn, sharedDomain.OpNotIn:
		values, _ := c.Value.([]any)
		if len(values) == 0 {
			if c.Op == sharedDomain.OpIn {
				return "1=0"
			}
			return "1=1"
		}
		marks := make([]string, len(values))
		for i, v := range values {
			marks[i] = b.bind(v)
		}
		return fmt.Sprintf("%s %s (%s)", col, c.Op, strings.Join(marks, ", "))
	case sharedDomain.OpBetween:
		bounds, _ := c.Value.([]any)
		if len(bounds) != 2 {
			return "1=0"
		}
		return fmt.Sprintf("%s BETWEEN %s AND %s", col, b.bind(bounds[0]), b.bind(bounds[1]))
	default:
		return fmt.Sprintf("%s %s %s", col, c.Op, b.bind(c.Value))
	}
}

// orderBy devuelve " ORDER BY ..." o "" si no hay orden.
func orderBy(orders []sharedQuery.Order) string {
	if len(orders) == 0 {
		return ""
	}
	parts := make([]string, len(orders))
	for i, o := range orders {
		dir := "ASC"
		if o.Desc {
			dir = "DESC"
		}
		parts[i] = o.Column + " " + dir
	}
	return " ORDER BY " + strings.Join(parts, ", ")
}
