package domain

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestQuerySpec_NormalizeDefaults(t *testing.T) {
	spec := QuerySpec{Page: -1, Size: 0}.Normalize()

	assert.Equal(t, 0, spec.Page)
	assert.Equal(t, DefaultPageSize, spec.Size)
	assert.Equal(t, SortAsc, spec.SortDirection)
	assert.Equal(t, OpAnd, spec.LogicalOperator)
	assert.Nil(t, spec.Sorts)
	assert.False(t, spec.IncludeDeleted)
}

func TestQuerySpec_NormalizeDerivesSortsFromSortBy(t *testing.T) {
	spec := QuerySpec{SortBy: "name", SortDirection: "desc", LogicalOperator: "or", Size: 5, Page: 3}.Normalize()

	assert.Equal(t, []SortCriteria{{Field: "name", Direction: SortDesc}}, spec.Sorts)
	assert.Equal(t, OpOr, spec.LogicalOperator)
	assert.Equal(t, 15, spec.Offset())
}

func TestQuerySpec_NormalizeKeepsExplicitSorts(t *testing.T) {
	spec := QuerySpec{
		SortBy: "name",
		Sorts:  []SortCriteria{{Field: "code", Direction: "sideways"}, {Field: "id", Direction: "Desc"}},
		IDs:    []int64{3, 1, 3},
	}.Normalize()

	assert.Equal(t, []SortCriteria{{Field: "code", Direction: SortAsc}, {Field: "id", Direction: SortDesc}}, spec.Sorts)
	assert.Equal(t, []int64{3, 1}, spec.IDs)
}

func TestParseFilterOperator(t *testing.T) {
	op, ok := ParseFilterOperator(" is_not_null ")
	assert.True(t, ok)
	assert.Equal(t, FilterIsNotNull, op)

	_, ok = ParseFilterOperator("LIKE")
	assert.False(t, ok)
}

func TestRecord_DeleteAndRestore(t *testing.T) {
	actor := "admin"
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	r := &Record{ID: 1}

	r.Delete(&actor, at)
	assert.True(t, r.IsDeleted())
	assert.Equal(t, at, *r.DeletedAt)
	assert.Equal(t, "admin", *r.DeletedBy)

	// Sin actor solo se refresca la fecha.
	later := at.Add(time.Hour)
	r.Delete(nil, later)
	assert.Equal(t, later, *r.DeletedAt)
	assert.Equal(t, "admin", *r.DeletedBy)

	r.Restore()
	assert.False(t, r.IsDeleted())
	assert.Nil(t, r.DeletedBy)
}

func TestPageOffset_Saturates(t *testing.T) {
	assert.Equal(t, 0, PageOffset(0, 20))
	assert.Equal(t, 0, PageOffset(-1, 20))
	assert.Equal(t, 40, PageOffset(2, 20))
	assert.Equal(t, math.MaxInt, PageOffset(math.MaxInt/20+1, 20))
	assert.Equal(t, math.MaxInt, PageOffset(2, math.MaxInt))
}
