package query

import (
	"testing"

	sharedDomain "github.com/davicafu/orgref/internal/shared/domain"
	"github.com/stretchr/testify/assert"
)

func filterPlaces(t *testing.T, items []*place, filters ...sharedDomain.FilterCriteria) []string {
	t.Helper()
	plan := Compile(sharedDomain.QuerySpec{Filters: filters}, placeFields, nil, "name")
	var names []string
	for _, p := range items {
		if Match(plan.Where, placeFields.Accessor(p)) {
			names = append(names, p.Name)
		}
	}
	return names
}

func TestMatch_Operators(t *testing.T) {
	mayor := "Anne"
	items := []*place{
		{Record: sharedDomain.Record{ID: 1}, Name: "Paris", Population: 10, Mayor: &mayor},
		{Record: sharedDomain.Record{ID: 2}, Name: "London", Population: 20},
		{Record: sharedDomain.Record{ID: 3}, Name: "Lyon", Population: 21, Capital: true},
	}

	assert.Equal(t, []string{"Paris"}, filterPlaces(t, items, sharedDomain.FilterCriteria{Field: "name", Operator: sharedDomain.FilterContains, Value: "par"}))
	assert.Equal(t, []string{"London", "Lyon"}, filterPlaces(t, items, sharedDomain.FilterCriteria{Field: "name", Operator: sharedDomain.FilterNotContains, Value: "par"}))
	assert.Equal(t, []string{"Paris", "London"}, filterPlaces(t, items, sharedDomain.FilterCriteria{Field: "population", Operator: sharedDomain.FilterBetween, Value: []any{10.0, 20.0}}))
	assert.Equal(t, []string{"London", "Lyon"}, filterPlaces(t, items, sharedDomain.FilterCriteria{Field: "mayor", Operator: sharedDomain.FilterIsNull}))
	assert.Equal(t, []string{"Lyon"}, filterPlaces(t, items, sharedDomain.FilterCriteria{Field: "capital", Operator: sharedDomain.FilterIsTrue}))
	assert.Equal(t, []string{"London", "Lyon"}, filterPlaces(t, items, sharedDomain.FilterCriteria{Field: "name", Operator: sharedDomain.FilterStartsWith, Value: "L"}))
	assert.Equal(t, []string{"London"}, filterPlaces(t, items, sharedDomain.FilterCriteria{Field: "name", Operator: sharedDomain.FilterEndsWith, Value: "DON"}))
	assert.Equal(t, []string{"Paris", "Lyon"}, filterPlaces(t, items, sharedDomain.FilterCriteria{Field: "population", Operator: sharedDomain.FilterNotIn, Value: []any{20.0}}))
	assert.Equal(t, []string{"Lyon"}, filterPlaces(t, items, sharedDomain.FilterCriteria{Field: "population", Operator: sharedDomain.FilterGreaterThan, Value: 20.0}))
	// Un nulo nunca satisface una comparación.
	assert.Empty(t, filterPlaces(t, items, sharedDomain.FilterCriteria{Field: "mayor", Operator: sharedDomain.FilterNotEquals, Value: "Anne"}))
}

func TestMatch_LikeWildcardsAreLiteral(t *testing.T) {
	items := []*place{
		{Name: "100% Pure"},
		{Name: "1000 Pure"},
	}
	assert.Equal(t, []string{"100% Pure"}, filterPlaces(t, items, sharedDomain.FilterCriteria{Field: "name", Operator: sharedDomain.FilterContains, Value: "0%"}))
}

func TestMatch_SoftDeletedHiddenByDefault(t *testing.T) {
	deleted := &place{Record: sharedDomain.Record{ID: 1}, Name: "Gone"}
	deleted.Delete(nil, deleted.CreatedAt)
	items := []*place{deleted, {Record: sharedDomain.Record{ID: 2}, Name: "Here"}}

	assert.Equal(t, []string{"Here"}, filterPlaces(t, items))

	plan := Compile(sharedDomain.QuerySpec{IncludeDeleted: true}, placeFields, nil, "name")
	count := 0
	for _, p := range items {
		if Match(plan.Where, placeFields.Accessor(p)) {
			count++
		}
	}
	assert.Equal(t, 2, count)
}

func TestSortRecords_DefaultFieldThenID(t *testing.T) {
	items := []*place{
		{Record: sharedDomain.Record{ID: 3}, Name: "Brazil"},
		{Record: sharedDomain.Record{ID: 2}, Name: "Australia"},
		{Record: sharedDomain.Record{ID: 1}, Name: "Argentina"},
		{Record: sharedDomain.Record{ID: 4}, Name: "Australia"},
	}
	plan := Compile(sharedDomain.QuerySpec{}, placeFields, nil, "name")

	SortRecords(items, plan.Orders, placeFields)

	var got []int64
	for _, p := range items {
		got = append(got, p.ID)
	}
	assert.Equal(t, []int64{1, 2, 4, 3}, got)
}
