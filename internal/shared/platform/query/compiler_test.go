package query

import (
	"math"
	"testing"
	"time"

	sharedDomain "github.com/davicafu/orgref/internal/shared/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type place struct {
	sharedDomain.Record
	Name       string
	Population int64
	Capital    bool
	Mayor      *string
	Active     bool
}

func (p *place) SetActive(active bool, actor *string, at time.Time) {
	p.Active = active
}

var placeFields = NewRegistry(append(RecordFields[*place](),
	Field[*place]{Name: "name", Column: "name", Kind: KindString, Get: func(p *place) any { return p.Name }},
	Field[*place]{Name: "population", Column: "population", Kind: KindInt, Get: func(p *place) any { return p.Population }},
	Field[*place]{Name: "capital", Column: "is_capital", Kind: KindBool, Get: func(p *place) any { return p.Capital }},
	Field[*place]{Name: "mayor", Column: "mayor", Kind: KindString, Get: func(p *place) any { return Deref(p.Mayor) }},
)...)

type placeFilters struct {
	Capital *bool
}

func (f placeFilters) Predicates(fs Fields) []sharedDomain.Criteria {
	return []sharedDomain.Criteria{
		Optional(f.Capital, func(v bool) sharedDomain.Criteria { return Equal(fs, "capital", v) }),
	}
}

func criteriaOf(t *testing.T, plan Plan) []sharedDomain.Criteria {
	t.Helper()
	require.Equal(t, sharedDomain.OpAnd, plan.Where.Operator)
	return plan.Where.Criterias
}

func TestCompile_DefaultsExcludeDeletedAndSortByDefaultField(t *testing.T) {
	plan := Compile(sharedDomain.QuerySpec{}, placeFields, nil, "name")

	preds := criteriaOf(t, plan)
	require.Len(t, preds, 1)
	assert.Equal(t, sharedDomain.Criterion{Field: "deletedAt", Column: "deleted_at", Op: sharedDomain.OpIsNull}, preds[0])

	assert.Equal(t, []Order{
		{Field: "name", Column: "name"},
		{Field: "id", Column: "id"},
	}, plan.Orders)
	assert.Equal(t, 0, plan.Page)
	assert.Equal(t, sharedDomain.DefaultPageSize, plan.Size)
	assert.Empty(t, plan.Warnings)
}

func TestCompile_IncludeDeletedDropsVisibilityPredicate(t *testing.T) {
	plan := Compile(sharedDomain.QuerySpec{IncludeDeleted: true}, placeFields, nil, "name")
	assert.True(t, plan.Where.IsEmpty())
}

func TestCompile_IDsAndExtraAreAnded(t *testing.T) {
	id := int64(7)
	capital := true
	spec := sharedDomain.QuerySpec{ID: &id, IDs: []int64{1, 2, 2}, IncludeDeleted: true}

	plan := Compile(spec, placeFields, placeFilters{Capital: &capital}, "name")

	preds := criteriaOf(t, plan)
	require.Len(t, preds, 3)
	assert.Equal(t, sharedDomain.OpEq, preds[0].(sharedDomain.Criterion).Op)
	assert.Equal(t, []any{int64(1), int64(2)}, preds[1].(sharedDomain.Criterion).Value)
	assert.Equal(t, sharedDomain.Criterion{Field: "capital", Column: "is_capital", Op: sharedDomain.OpEq, Value: true}, preds[2])
}

func TestCompile_UnknownFieldIsDroppedWithoutAffectingOthers(t *testing.T) {
	spec := sharedDomain.QuerySpec{
		IncludeDeleted: true,
		Filters: []sharedDomain.FilterCriteria{
			{Field: "doesNotExist", Operator: sharedDomain.FilterEquals, Value: "x"},
			{Field: "name", Operator: "contains", Value: "Par"},
		},
		Sorts: []sharedDomain.SortCriteria{
			{Field: "nope", Direction: sharedDomain.SortDesc},
			{Field: "population", Direction: "desc"},
		},
	}

	plan := Compile(spec, placeFields, nil, "name")

	preds := criteriaOf(t, plan)
	require.Len(t, preds, 1)
	group := preds[0].(sharedDomain.CompositeCriteria)
	require.Len(t, group.Criterias, 1)
	assert.Equal(t, sharedDomain.Criterion{Field: "name", Column: "name", Op: sharedDomain.OpLike, Value: "%par%"}, group.Criterias[0])

	assert.Equal(t, []Order{
		{Field: "population", Column: "population", Desc: true},
		{Field: "id", Column: "id"},
	}, plan.Orders)
	assert.Len(t, plan.Warnings, 2)
}

func TestCompile_TypeMismatchAndArityAreDropped(t *testing.T) {
	spec := sharedDomain.QuerySpec{
		IncludeDeleted: true,
		Filters: []sharedDomain.FilterCriteria{
			{Field: "population", Operator: sharedDomain.FilterContains, Value: "1"},
			{Field: "name", Operator: sharedDomain.FilterContains, Value: 12.0},
			{Field: "population", Operator: sharedDomain.FilterBetween, Value: []any{1.0}},
			{Field: "population", Operator: sharedDomain.FilterIn, Value: "not-a-list"},
			{Field: "name", Operator: sharedDomain.FilterIsTrue},
			{Field: "name", Operator: "FUZZY", Value: "x"},
		},
	}

	plan := Compile(spec, placeFields, nil, "name")

	assert.True(t, plan.Where.IsEmpty())
	assert.Len(t, plan.Warnings, 6)
}

func TestCompile_LogicalOrOnlyCombinesFilters(t *testing.T) {
	spec := sharedDomain.QuerySpec{
		LogicalOperator: "or",
		Filters: []sharedDomain.FilterCriteria{
			{Field: "name", Operator: sharedDomain.FilterStartsWith, Value: "lo"},
			{Field: "capital", Operator: sharedDomain.FilterIsTrue},
		},
		Ranges: map[string]sharedDomain.RangeValue{
			"population": {Min: 10.0},
		},
	}

	plan := Compile(spec, placeFields, nil, "name")

	preds := criteriaOf(t, plan)
	require.Len(t, preds, 3)
	group := preds[1].(sharedDomain.CompositeCriteria)
	assert.Equal(t, sharedDomain.OpOr, group.Operator)
	assert.Len(t, group.Criterias, 2)
	assert.Equal(t, sharedDomain.Criterion{Field: "population", Column: "population", Op: sharedDomain.OpGte, Value: int64(10)}, preds[2])
}

func TestCompile_Ranges(t *testing.T) {
	spec := sharedDomain.QuerySpec{
		IncludeDeleted: true,
		Ranges: map[string]sharedDomain.RangeValue{
			"population": {Min: 10.0, Max: 20.0},
			"createdAt":  {Max: "2024-01-01"},
			"unknown":    {Min: 1.0},
			"capital":    {Min: true},
			"name":       {},
		},
	}

	plan := Compile(spec, placeFields, nil, "")

	preds := criteriaOf(t, plan)
	require.Len(t, preds, 2)
	assert.Equal(t, sharedDomain.OpLte, preds[0].(sharedDomain.Criterion).Op)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), preds[0].(sharedDomain.Criterion).Value)
	assert.Equal(t, []any{int64(10), int64(20)}, preds[1].(sharedDomain.Criterion).Value)
	assert.Len(t, plan.Warnings, 2)
	assert.Nil(t, plan.Orders)
}

func TestCompile_SortByFallbackAndUnknownDefault(t *testing.T) {
	plan := Compile(sharedDomain.QuerySpec{SortBy: "population", SortDirection: "DESC"}, placeFields, nil, "name")
	assert.Equal(t, Order{Field: "population", Column: "population", Desc: true}, plan.Orders[0])

	plan = Compile(sharedDomain.QuerySpec{}, placeFields, nil, "missing")
	assert.Nil(t, plan.Orders)
}

func TestCompile_PageWindowIsNormalized(t *testing.T) {
	plan := Compile(sharedDomain.QuerySpec{Page: -3, Size: -1}, placeFields, nil, "name")
	assert.Equal(t, OffsetPagination{Limit: 20, Offset: 0}, plan.Pagination())

	plan = Compile(sharedDomain.QuerySpec{Page: 2, Size: 5}, placeFields, nil, "name")
	assert.Equal(t, OffsetPagination{Limit: 5, Offset: 10}, plan.Pagination())
}

func TestCompile_HugePageSaturatesOffset(t *testing.T) {
	plan := Compile(sharedDomain.QuerySpec{Page: 461168601842738791, Size: 20}, placeFields, nil, "name")

	assert.Equal(t, OffsetPagination{Limit: 20, Offset: math.MaxInt}, plan.Pagination())
}
