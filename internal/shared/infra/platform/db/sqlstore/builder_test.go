package sqlstore

import (
	"testing"

	"github.com/stretchr/testify/assert"

	sharedDomain "github.com/davicafu/orgref/internal/shared/domain"
	sharedQuery "github.com/davicafu/orgref/internal/shared/platform/query"
)

func TestBuilder_PostgresPlaceholdersAndGroups(t *testing.T) {
	spec := sharedDomain.QuerySpec{
		LogicalOperator: sharedDomain.OpOr,
		Filters: []sharedDomain.FilterCriteria{
			{Field: "name", Operator: sharedDomain.FilterStartsWith, Value: "Ar"},
			{Field: "weight", Operator: sharedDomain.FilterIn, Value: []any{1.0, 2.5}},
		},
		Ranges: map[string]sharedDomain.RangeValue{"weight": {Min: 1.0, Max: 3.0}},
	}
	plan := sharedQuery.Compile(spec, gadgetFields, nil, "name")

	b := newBuilder(Postgres)
	where := b.where(plan.Where)

	assert.Equal(t,
		` WHERE (deleted_at IS NULL AND (LOWER(name) LIKE $1 ESCAPE '\' OR weight IN ($2, $3)) AND weight BETWEEN $4 AND $5)`,
		where)
	assert.Equal(t, []any{"ar%", 1.0, 2.5, 1.0, 3.0}, b.args)
	assert.Equal(t, " ORDER BY name ASC, id ASC", orderBy(plan.Orders))
}

func TestBuilder_EmptyPredicateAndSQLitePlaceholders(t *testing.T) {
	plan := sharedQuery.Compile(sharedDomain.QuerySpec{IncludeDeleted: true}, gadgetFields, nil, "")

	b := newBuilder(SQLite)
	assert.Equal(t, "", b.where(plan.Where))
	assert.Equal(t, "", orderBy(plan.Orders))

	b = newBuilder(SQLite)
	notIn := sharedDomain.And(sharedDomain.Criterion{Field: "name", Column: "name", Op: sharedDomain.OpNotIn, Value: []any{}},
		sharedDomain.Criterion{Field: "active", Column: "active", Op: sharedDomain.OpEq, Value: true})
	assert.Equal(t, " WHERE (1=1 AND active = ?)", b.where(notIn))
	assert.Equal(t, []any{true}, b.args)
}

func TestBuilder_SQLiteLikeUsesUnicodeLower(t *testing.T) {
	b := newBuilder(SQLite)
	like := sharedDomain.And(sharedDomain.Criterion{Field: "name", Column: "name", Op: sharedDomain.OpLike, Value: "%åland%"})

	assert.Equal(t, ` WHERE unicode_lower(name) LIKE ? ESCAPE '\'`, b.where(like))
}

func TestTable_StatementsPerDialect(t *testing.T) {
	stmts := gadgetTable.Statements(Postgres)
	assert.Contains(t, stmts[0], "id BIGSERIAL PRIMARY KEY")
	assert.Contains(t, stmts[0], "weight DOUBLE PRECISION,")
	assert.Contains(t, stmts[0], "deleted_at TIMESTAMPTZ,")
	assert.Contains(t, stmts[0], "version BIGINT NOT NULL DEFAULT 0")

	stmts = gadgetTable.Statements(SQLite)
	assert.Contains(t, stmts[0], "id INTEGER PRIMARY KEY AUTOINCREMENT")
	assert.Contains(t, stmts[1], "idx_gadgets_deleted_at")
}
