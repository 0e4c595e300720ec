package query

import (
	"fmt"
	"sort"
	"strings"

	sharedDomain "github.com/davicafu/orgref/internal/shared/domain"
)

// Extra aporta los predicados específicos de una entidad (región, país, activo...).
// Siempre se combinan con AND con el resto.
type Extra interface {
	Predicates(f Fields) []sharedDomain.Criteria
}

// Compile traduce un QuerySpec a un Plan neutral.
// Las entradas mal formadas (campo desconocido, tipo incompatible, aridad incorrecta)
// se descartan una a una y se anotan en Plan.Warnings; nunca provocan error.
func Compile[E any](spec sharedDomain.QuerySpec, reg *Registry[E], extra Extra, defaultSort string) Plan {
	spec = spec.Normalize()
	c := &compiler{fields: reg}

	var preds []sharedDomain.Criteria

	if !spec.IncludeDeleted {
		if f, ok := reg.Lookup(FieldDeletedAt); ok {
			preds = append(preds, criterion(f, sharedDomain.OpIsNull, nil))
		}
	}

	if spec.ID != nil || len(spec.IDs) > 0 {
		idField, ok := reg.Lookup(FieldID)
		switch {
		case !ok:
			c.warn("id: entity has no id field")
		default:
			if spec.ID != nil {
				preds = append(preds, criterion(idField, sharedDomain.OpEq, *spec.ID))
			}
			if len(spec.IDs) > 0 {
				ids := make([]any, len(spec.IDs))
				for i, id := range spec.IDs {
					ids[i] = id
				}
				preds = append(preds, criterion(idField, sharedDomain.OpIn, ids))
			}
		}
	}

	if extra != nil {
		preds = append(preds, extra.Predicates(reg)...)
	}

	var filters []sharedDomain.Criteria
	for i, f := range spec.Filters {
		if crit := c.filter(i, f); crit != nil {
			filters = append(filters, crit)
		}
	}
	if len(filters) > 0 {
		if spec.LogicalOperator == sharedDomain.OpOr {
			preds = append(preds, sharedDomain.Or(filters...))
		} else {
			preds = append(preds, sharedDomain.And(filters...))
		}
	}

	preds = append(preds, c.ranges(spec.Ranges)...)

	return Plan{
		Where:    sharedDomain.And(preds...),
		Orders:   c.orders(spec, defaultSort),
		Page:     spec.Page,
		Size:     spec.Size,
		Warnings: c.warnings,
	}
}

type compiler struct {
	fields   Fields
	warnings []string
}

func (c *compiler) warn(format string, args ...any) {
	c.warnings = append(c.warnings, fmt.Sprintf(format, args...))
}

func criterion(f FieldRef, op sharedDomain.Operator, v any) sharedDomain.Criterion {
	return sharedDomain.Criterion{Field: f.Name, Column: f.Column, Op: op, Value: v}
}

func (c *compiler) filter(i int, f sharedDomain.FilterCriteria) sharedDomain.Criteria {
	ref, ok := c.fields.Lookup(f.Field)
	if !ok {
		c.warn("filters[%d]: unknown field %q", i, f.Field)
		return nil
	}
	op, ok := sharedDomain.ParseFilterOperator(string(f.Operator))
	if !ok {
		c.warn("filters[%d]: unknown operator %q", i, f.Operator)
		return nil
	}

	mismatch := func() sharedDomain.Criteria {
		c.warn("filters[%d]: %s not applicable to %s field %q with value %v", i, op, ref.Kind, ref.Name, f.Value)
		return nil
	}

	switch op {
	case sharedDomain.FilterEquals, sharedDomain.FilterNotEquals:
		v, ok := Coerce(f.Value, ref.Kind)
		if !ok {
			return mismatch()
		}
		if op == sharedDomain.FilterEquals {
			return criterion(ref, sharedDomain.OpEq, v)
		}
		return criterion(ref, sharedDomain.OpNe, v)

	case sharedDomain.FilterContains, sharedDomain.FilterNotContains,
		sharedDomain.FilterStartsWith, sharedDomain.FilterEndsWith:
		s, ok := f.Value.(string)
		if !ok || ref.Kind != KindString {
			return mismatch()
		}
		s = EscapeLike(strings.ToLower(s))
		switch op {
		case sharedDomain.FilterContains:
			return criterion(ref, sharedDomain.OpLike, "%"+s+"%")
		case sharedDomain.FilterNotContains:
			return criterion(ref, sharedDomain.OpNotLike, "%"+s+"%")
		case sharedDomain.FilterStartsWith:
			return criterion(ref, sharedDomain.OpLike, s+"%")
		default:
			return criterion(ref, sharedDomain.OpLike, "%"+s)
		}

	case sharedDomain.FilterGreaterThan, sharedDomain.FilterGreaterThanOrEqual,
		sharedDomain.FilterLessThan, sharedDomain.FilterLessThanOrEqual:
		if !ref.Kind.Ordered() {
			return mismatch()
		}
		v, ok := Coerce(f.Value, ref.Kind)
		if !ok {
			return mismatch()
		}
		return criterion(ref, comparisonOps[op], v)

	case sharedDomain.FilterIn, sharedDomain.FilterNotIn:
		values, ok := CoerceList(f.Value, ref.Kind)
		if !ok {
			return mismatch()
		}
		if op == sharedDomain.FilterIn {
			return criterion(ref, sharedDomain.OpIn, values)
		}
		return criterion(ref, sharedDomain.OpNotIn, values)

	case sharedDomain.FilterIsNull:
		return criterion(ref, sharedDomain.OpIsNull, nil)
	case sharedDomain.FilterIsNotNull:
		return criterion(ref, sharedDomain.OpIsNotNull, nil)

	case sharedDomain.FilterIsTrue, sharedDomain.FilterIsFalse:
		if ref.Kind != KindBool {
			return mismatch()
		}
		return criterion(ref, sharedDomain.OpEq, op == sharedDomain.FilterIsTrue)

	case sharedDomain.FilterBetween:
		if !ref.Kind.Ordered() {
			return mismatch()
		}
		bounds, ok := CoerceList(f.Value, ref.Kind)
		if !ok || len(bounds) != 2 {
			return mismatch()
		}
		return criterion(ref, sharedDomain.OpBetween, bounds)
	}

	return mismatch()
}

var comparisonOps = map[sharedDomain.FilterOperator]sharedDomain.Operator{
	sharedDomain.FilterGreaterThan:        sharedDomain.OpGt,
	sharedDomain.FilterGreaterThanOrEqual: sharedDomain.OpGte,
	sharedDomain.FilterLessThan:           sharedDomain.OpLt,
	sharedDomain.FilterLessThanOrEqual:    sharedDomain.OpLte,
}

// ranges recorre las claves ordenadas para que el SQL generado sea determinista.
func (c *compiler) ranges(ranges map[string]sharedDomain.RangeValue) []sharedDomain.Criteria {
	keys := make([]string, 0, len(ranges))
	for k := range ranges {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out []sharedDomain.Criteria
	for _, name := range keys {
		rv := ranges[name]
		ref, ok := c.fields.Lookup(name)
		if !ok {
			c.warn("ranges[%q]: unknown field", name)
			continue
		}
		if !ref.Kind.Ordered() {
			c.warn("ranges[%q]: %s field is not ordered", name, ref.Kind)
			continue
		}

		var lo, hi any
		if rv.Min != nil {
			v, ok := Coerce(rv.Min, ref.Kind)
			if !ok {
				c.warn("ranges[%q]: invalid min %v", name, rv.Min)
				continue
			}
			lo = v
		}
		if rv.Max != nil {
			v, ok := Coerce(rv.Max, ref.Kind)
			if !ok {
				c.warn("ranges[%q]: invalid max %v", name, rv.Max)
				continue
			}
			hi = v
		}

		switch {
		case lo != nil && hi != nil:
			out = append(out, criterion(ref, sharedDomain.OpBetween, []any{lo, hi}))
		case lo != nil:
			out = append(out, criterion(ref, sharedDomain.OpGte, lo))
		case hi != nil:
			out = append(out, criterion(ref, sharedDomain.OpLte, hi))
		}
	}
	return out
}

// orders: sorts explícitos, después sortBy y por último el campo por defecto ascendente.
// Si hay orden, se añade id ASC como desempate para que la paginación sea estable.
func (c *compiler) orders(spec sharedDomain.QuerySpec, defaultSort string) []Order {
	sorts := spec.Sorts
	if len(sorts) == 0 && strings.TrimSpace(spec.SortBy) != "" {
		sorts = []sharedDomain.SortCriteria{{Field: strings.TrimSpace(spec.SortBy), Direction: spec.SortDirection}}
	}

	var orders []Order
	for i, s := range sorts {
		ref, ok := c.fields.Lookup(s.Field)
		if !ok {
			c.warn("sorts[%d]: unknown field %q", i, s.Field)
			continue
		}
		orders = append(orders, Order{Field: ref.Name, Column: ref.Column, Desc: s.Direction == sharedDomain.SortDesc})
	}

	if len(orders) == 0 && defaultSort != "" {
		if ref, ok := c.fields.Lookup(defaultSort); ok {
			orders = append(orders, Order{Field: ref.Name, Column: ref.Column})
		}
	}

	if len(orders) == 0 {
		return nil
	}

	idRef, ok := c.fields.Lookup(FieldID)
	if !ok {
		return orders
	}
	for _, o := range orders {
		if o.Field == idRef.Name {
			return orders
		}
	}
	return append(orders, Order{Field: idRef.Name, Column: idRef.Column})
}

