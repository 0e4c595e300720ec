package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	sharedDomain "github.com/davicafu/orgref/internal/shared/domain"
	sharedQuery "github.com/davicafu/orgref/internal/shared/platform/query"
)

type gadget struct {
	sharedDomain.Record
	Name   string
	Weight *float64
	Active bool
}

func (g *gadget) SetActive(active bool, actor *string, at time.Time) {
	g.Active = active
	g.Touch(actor, at)
}

var gadgetTable = Table[*gadget]{
	Name: "gadgets",
	Columns: []Column{
		{Name: "name", Type: TypeText},
		{Name: "weight", Type: TypeFloat, Nullable: true},
		{Name: "active", Type: TypeBool},
	},
	New:  func() *gadget { return &gadget{} },
	Bind: func(g *gadget) []any { return []any{&g.Name, &g.Weight, &g.Active} },
}

var gadgetFields = sharedQuery.NewRegistry(append(sharedQuery.RecordFields[*gadget](),
	sharedQuery.Field[*gadget]{Name: "name", Column: "name", Kind: sharedQuery.KindString, Get: func(g *gadget) any { return g.Name }},
	sharedQuery.Field[*gadget]{Name: "weight", Column: "weight", Kind: sharedQuery.KindFloat, Get: func(g *gadget) any { return sharedQuery.Deref(g.Weight) }},
	sharedQuery.Field[*gadget]{Name: "active", Column: "active", Kind: sharedQuery.KindBool, Get: func(g *gadget) any { return g.Active }},
)...)

func setupSQLite(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, Migrate(context.Background(), db, SQLite, gadgetTable))
	return db
}

func seedGadgets(t *testing.T, repo *Repository[*gadget], names ...string) []*gadget {
	t.Helper()
	var out []*gadget
	for _, n := range names {
		g := &gadget{Name: n, Active: true}
		require.NoError(t, repo.Insert(context.Background(), g))
		out = append(out, g)
	}
	return out
}

func TestRepository_SearchCountsThenPages(t *testing.T) {
	db := setupSQLite(t)
	repo := NewRepository(db, SQLite, gadgetTable, zap.NewNop())
	seedGadgets(t, repo, "Brazil", "Argentina", "Australia", "Japan", "France")

	spec := sharedDomain.QuerySpec{Page: 1, Size: 2}
	plan := sharedQuery.Compile(spec, gadgetFields, nil, "name")

	page, err := repo.Search(context.Background(), plan)
	require.NoError(t, err)

	assert.Equal(t, int64(5), page.TotalCount)
	assert.Equal(t, 1, page.PageNumber)
	assert.Equal(t, 2, page.PageSize)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Brazil", page.Items[0].Name)
	assert.Equal(t, "France", page.Items[1].Name)
}

func TestRepository_SearchFiltersAndSoftDeleteVisibility(t *testing.T) {
	db := setupSQLite(t)
	repo := NewRepository(db, SQLite, gadgetTable, zap.NewNop())
	seeded := seedGadgets(t, repo, "France", "Peru", "Japan")

	_, err := repo.MutateByIDs(context.Background(), []int64{seeded[2].ID}, func(items []*gadget) (*sharedDomain.OutboxEvent, error) {
		for _, g := range items {
			g.Delete(nil, time.Now())
		}
		return nil, nil
	})
	require.NoError(t, err)

	spec := sharedDomain.QuerySpec{Filters: []sharedDomain.FilterCriteria{
		{Field: "name", Operator: sharedDomain.FilterContains, Value: "A"},
	}}
	page, err := repo.Search(context.Background(), sharedQuery.Compile(spec, gadgetFields, nil, "name"))
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "France", page.Items[0].Name)

	spec.IncludeDeleted = true
	page, err = repo.Search(context.Background(), sharedQuery.Compile(spec, gadgetFields, nil, "name"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.TotalCount)
	assert.Equal(t, "France", page.Items[0].Name)
	assert.Equal(t, "Japan", page.Items[1].Name)
	assert.True(t, page.Items[1].IsDeleted())
}

func TestRepository_SearchContainsFoldsNonASCII(t *testing.T) {
	db := setupSQLite(t)
	repo := NewRepository(db, SQLite, gadgetTable, zap.NewNop())
	seedGadgets(t, repo, "Åland Islands", "Évora", "Côte d'Ivoire", "Oslo")

	cases := []struct {
		value string
		want  string
	}{
		{"åland", "Åland Islands"},
		{"ÉVORA", "Évora"},
		{"CÔTE", "Côte d'Ivoire"},
		{"ivoire", "Côte d'Ivoire"},
	}
	for _, tc := range cases {
		t.Run(tc.value, func(t *testing.T) {
			spec := sharedDomain.QuerySpec{Filters: []sharedDomain.FilterCriteria{
				{Field: "name", Operator: sharedDomain.FilterContains, Value: tc.value},
			}}
			plan := sharedQuery.Compile(spec, gadgetFields, nil, "name")

			page, err := repo.Search(context.Background(), plan)
			require.NoError(t, err)
			require.Equal(t, int64(1), page.TotalCount)
			assert.Equal(t, tc.want, page.Items[0].Name)

			// Mismo resultado que el almacén en memoria.
			assert.True(t, sharedQuery.Match(plan.Where, gadgetFields.Accessor(page.Items[0])))
		})
	}
}

func TestRepository_SearchNullAndInFilters(t *testing.T) {
	db := setupSQLite(t)
	repo := NewRepository(db, SQLite, gadgetTable, zap.NewNop())
	w := 12.5
	seeded := seedGadgets(t, repo, "light", "heavy")
	_, err := repo.MutateByIDs(context.Background(), []int64{seeded[1].ID}, func(items []*gadget) (*sharedDomain.OutboxEvent, error) {
		items[0].Weight = &w
		return nil, nil
	})
	require.NoError(t, err)

	spec := sharedDomain.QuerySpec{Filters: []sharedDomain.FilterCriteria{
		{Field: "weight", Operator: sharedDomain.FilterIsNull},
	}}
	page, err := repo.Search(context.Background(), sharedQuery.Compile(spec, gadgetFields, nil, "name"))
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "light", page.Items[0].Name)

	spec = sharedDomain.QuerySpec{Filters: []sharedDomain.FilterCriteria{
		{Field: "weight", Operator: sharedDomain.FilterBetween, Value: []any{10.0, 20.0}},
	}}
	page, err = repo.Search(context.Background(), sharedQuery.Compile(spec, gadgetFields, nil, "name"))
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 12.5, *page.Items[0].Weight)

	spec = sharedDomain.QuerySpec{Filters: []sharedDomain.FilterCriteria{
		{Field: "name", Operator: sharedDomain.FilterIn, Value: []any{}},
	}}
	page, err = repo.Search(context.Background(), sharedQuery.Compile(spec, gadgetFields, nil, "name"))
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, int64(0), page.TotalCount)
}

func TestRepository_MutateByIDsWritesOutboxAndBumpsVersion(t *testing.T) {
	db := setupSQLite(t)
	repo := NewRepository(db, SQLite, gadgetTable, zap.NewNop())
	seeded := seedGadgets(t, repo, "a", "b")

	evt := sharedDomain.NewOutboxEvent("gadget", "batch-1", "catalog.bulk_activated", map[string]any{"ids": []int64{seeded[0].ID}})
	n, err := repo.MutateByIDs(context.Background(), []int64{seeded[0].ID, 999}, func(items []*gadget) (*sharedDomain.OutboxEvent, error) {
		for _, g := range items {
			g.SetActive(false, nil, time.Now())
		}
		return &evt, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	found, err := repo.FindAllByID(context.Background(), []int64{seeded[0].ID})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.False(t, found[0].Active)
	assert.Equal(t, int64(1), found[0].Version)
	assert.NotNil(t, found[0].UpdatedAt)

	outbox := NewOutboxRepo(db, SQLite)
	pending, err := outbox.FetchPendingOutbox(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, evt.ID, pending[0].ID)
	assert.Equal(t, "catalog.bulk_activated", pending[0].EventType)

	require.NoError(t, outbox.MarkOutboxProcessed(context.Background(), evt.ID))
	pending, err = outbox.FetchPendingOutbox(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestRepository_MutateByIDsEmptyDoesNotTouchStore(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db, SQLite, gadgetTable, zap.NewNop())
	n, err := repo.MutateByIDs(context.Background(), nil, func([]*gadget) (*sharedDomain.OutboxEvent, error) {
		t.Fatal("mutation must not run")
		return nil, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func gadgetRows() *sqlmock.Rows {
	return sqlmock.NewRows(gadgetTable.selectColumns()).
		AddRow(int64(1), "a", nil, true, time.Now().UTC(), nil, nil, nil, nil, nil, int64(0)).
		AddRow(int64(2), "b", nil, true, time.Now().UTC(), nil, nil, nil, nil, nil, int64(0))
}

func TestRepository_MutateByIDsRollsBackOnStaleVersion(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM gadgets WHERE id IN").WillReturnRows(gadgetRows())
	mock.ExpectExec("UPDATE gadgets SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE gadgets SET").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	repo := NewRepository(db, SQLite, gadgetTable, zap.NewNop())
	evt := sharedDomain.NewOutboxEvent("gadget", "batch", "catalog.bulk_deleted", nil)
	n, err := repo.MutateByIDs(context.Background(), []int64{1, 2}, func(items []*gadget) (*sharedDomain.OutboxEvent, error) {
		for _, g := range items {
			g.Delete(nil, time.Now())
		}
		return &evt, nil
	})

	assert.ErrorIs(t, err, sharedDomain.ErrVersionConflict)
	assert.Equal(t, 0, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_MutateByIDsRollsBackWhenOutboxFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM gadgets WHERE id IN").WillReturnRows(gadgetRows())
	mock.ExpectExec("UPDATE gadgets SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE gadgets SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO outbox").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	repo := NewRepository(db, SQLite, gadgetTable, zap.NewNop())
	evt := sharedDomain.NewOutboxEvent("gadget", "batch", "catalog.bulk_activated", nil)
	_, err = repo.MutateByIDs(context.Background(), []int64{1, 2}, func(items []*gadget) (*sharedDomain.OutboxEvent, error) {
		return &evt, nil
	})

	assert.ErrorContains(t, err, "disk full")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_SearchHugePageIsEmpty(t *testing.T) {
	db := setupSQLite(t)
	repo := NewRepository(db, SQLite, gadgetTable, zap.NewNop())
	seedGadgets(t, repo, "France", "Peru", "Japan")

	spec := sharedDomain.QuerySpec{Page: 461168601842738791, Size: 20}
	page, err := repo.Search(context.Background(), sharedQuery.Compile(spec, gadgetFields, nil, "name"))
	require.NoError(t, err)

	assert.Empty(t, page.Items)
	assert.Equal(t, int64(3), page.TotalCount)
}
