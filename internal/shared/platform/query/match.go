package query

import (
	"sort"
	"strings"
	"time"

	sharedDomain "github.com/davicafu/orgref/internal/shared/domain"
)

// Accessor lee el valor de un campo por nombre. ok es false si el campo no existe.
type Accessor func(field string) (any, bool)

// Match evalúa el árbol de predicados en memoria con la misma semántica que SQL:
// un valor nulo solo satisface IS NULL.
func Match(c sharedDomain.Criteria, get Accessor) bool {
	switch n := c.(type) {
	case nil:
		return true
	case sharedDomain.CompositeCriteria:
		if n.IsEmpty() {
			return true
		}
		if n.Operator == sharedDomain.OpOr {
			for _, child := range n.Criterias {
				if Match(child, get) {
					return true
				}
			}
			return false
		}
		for _, child := range n.Criterias {
			if !Match(child, get) {
				return false
			}
		}
		return true
	case sharedDomain.Criterion:
		return matchCriterion(n, get)
	}
	return false
}

func matchCriterion(c sharedDomain.Criterion, get Accessor) bool {
	v, ok := get(c.Field)
	if !ok {
		return false
	}

	switch c.Op {
	case sharedDomain.OpIsNull:
		return v == nil
	case sharedDomain.OpIsNotNull:
		return v != nil
	}
	if v == nil {
		return false
	}

	switch c.Op {
	case sharedDomain.OpEq:
		cmp, ok := Compare(v, c.Value)
		return ok && cmp == 0
	case sharedDomain.OpNe:
		cmp, ok := Compare(v, c.Value)
		return ok && cmp != 0
	case sharedDomain.OpGt, sharedDomain.OpGte, sharedDomain.OpLt, sharedDomain.OpLte:
		cmp, ok := Compare(v, c.Value)
		if !ok {
			return false
		}
		switch c.Op {
		case sharedDomain.OpGt:
			return cmp > 0
		case sharedDomain.OpGte:
			return cmp >= 0
		case sharedDomain.OpLt:
			return cmp < 0
		default:
			return cmp <= 0
		}
	case sharedDomain.OpLike, sharedDomain.OpNotLike:
		s, ok := v.(string)
		pattern, pok := c.Value.(string)
		if !ok || !pok {
			return false
		}
		matched := MatchLike(pattern, strings.ToLower(s))
		if c.Op == sharedDomain.OpLike {
			return matched
		}
		return !matched
	case sharedDomain.OpIn, sharedDomain.OpNotIn:
		values, _ := c.Value.([]any)
		found := false
		for _, candidate := range values {
			if cmp, ok := Compare(v, candidate); ok && cmp == 0 {
				found = true
				break
			}
		}
		if c.Op == sharedDomain.OpIn {
			return found
		}
		return !found
	case sharedDomain.OpBetween:
		bounds, _ := c.Value.([]any)
		if len(bounds) != 2 {
			return false
		}
		lo, lok := Compare(v, bounds[0])
		hi, hok := Compare(v, bounds[1])
		return lok && hok && lo >= 0 && hi <= 0
	}
	return false
}

// Compare ordena dos valores del mismo tipo nativo. ok es false si no son comparables.
func Compare(a, b any) (int, bool) {
	switch x := a.(type) {
	case string:
		y, ok := b.(string)
		if !ok {
			return 0, false
		}
		return strings.Compare(x, y), true
	case int64:
		switch y := b.(type) {
		case int64:
			return cmpOrdered(x, y), true
		case float64:
			return cmpOrdered(float64(x), y), true
		}
	case float64:
		switch y := b.(type) {
		case float64:
			return cmpOrdered(x, y), true
		case int64:
			return cmpOrdered(x, float64(y)), true
		}
	case bool:
		y, ok := b.(bool)
		if !ok {
			return 0, false
		}
		switch {
		case x == y:
			return 0, true
		case !x:
			return -1, true
		default:
			return 1, true
		}
	case time.Time:
		y, ok := b.(time.Time)
		if !ok {
			return 0, false
		}
		return x.Compare(y), true
	}
	return 0, false
}

func cmpOrdered[T int64 | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// SortRecords ordena de forma estable según el plan. Los nulos van primero en ASC.
func SortRecords[E any](items []E, orders []Order, reg *Registry[E]) {
	if len(orders) == 0 {
		return
	}
	sort.SliceStable(items, func(i, j int) bool {
		ai, aj := reg.Accessor(items[i]), reg.Accessor(items[j])
		for _, o := range orders {
			vi, _ := ai(o.Field)
			vj, _ := aj(o.Field)
			cmp := compareNullable(vi, vj)
			if cmp == 0 {
				continue
			}
			if o.Desc {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})
}

func compareNullable(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	cmp, _ := Compare(a, b)
	return cmp
}
