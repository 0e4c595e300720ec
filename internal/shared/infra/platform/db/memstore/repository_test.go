package memstore

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sharedDomain "github.com/davicafu/orgref/internal/shared/domain"
	sharedQuery "github.com/davicafu/orgref/internal/shared/platform/query"
)

type widget struct {
	sharedDomain.Record
	Name   string
	Active bool
}

func (w *widget) SetActive(active bool, actor *string, at time.Time) {
	w.Active = active
	w.Touch(actor, at)
}

func cloneWidget(w *widget) *widget {
	c := *w
	return &c
}

var widgetFields = sharedQuery.NewRegistry(append(sharedQuery.RecordFields[*widget](),
	sharedQuery.Field[*widget]{Name: "name", Column: "name", Kind: sharedQuery.KindString, Get: func(w *widget) any { return w.Name }},
	sharedQuery.Field[*widget]{Name: "active", Column: "active", Kind: sharedQuery.KindBool, Get: func(w *widget) any { return w.Active }},
)...)

func newWidgets(t *testing.T, names ...string) (*Repository[*widget], *Outbox) {
	t.Helper()
	outbox := NewOutbox()
	repo := NewRepository(widgetFields, cloneWidget, outbox)
	for _, n := range names {
		require.NoError(t, repo.Insert(context.Background(), &widget{Name: n, Active: true}))
	}
	return repo, outbox
}

func names(items []*widget) []string {
	out := make([]string, len(items))
	for i, w := range items {
		out[i] = w.Name
	}
	return out
}

func TestRepository_SearchFiltersSortsAndPages(t *testing.T) {
	repo, _ := newWidgets(t, "France", "Peru", "Japan", "Canada")

	spec := sharedDomain.QuerySpec{Size: 2, Filters: []sharedDomain.FilterCriteria{
		{Field: "name", Operator: sharedDomain.FilterContains, Value: "A"},
	}}
	page, err := repo.Search(context.Background(), sharedQuery.Compile(spec, widgetFields, nil, "name"))
	require.NoError(t, err)

	assert.Equal(t, int64(3), page.TotalCount)
	assert.Equal(t, []string{"Canada", "France"}, names(page.Items))

	spec.Page = 1
	page, err = repo.Search(context.Background(), sharedQuery.Compile(spec, widgetFields, nil, "name"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Japan"}, names(page.Items))

	spec.Page = 5
	page, err = repo.Search(context.Background(), sharedQuery.Compile(spec, widgetFields, nil, "name"))
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, int64(3), page.TotalCount)
}

func TestRepository_ReturnsCopies(t *testing.T) {
	repo, _ := newWidgets(t, "France")

	found, err := repo.FindAllByID(context.Background(), []int64{1})
	require.NoError(t, err)
	found[0].Name = "changed"

	again, _ := repo.FindAllByID(context.Background(), []int64{1})
	assert.Equal(t, "France", again[0].Name)
}

func TestRepository_MutateByIDsCommitsAndEnqueuesEvent(t *testing.T) {
	repo, outbox := newWidgets(t, "a", "b", "c")

	evt := sharedDomain.NewOutboxEvent("widget", "batch", "catalog.bulk_deleted", nil)
	n, err := repo.MutateByIDs(context.Background(), []int64{1, 3, 3, 42}, func(items []*widget) (*sharedDomain.OutboxEvent, error) {
		for _, w := range items {
			w.Delete(nil, time.Now())
		}
		return &evt, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	page, err := repo.Search(context.Background(), sharedQuery.Compile(sharedDomain.QuerySpec{}, widgetFields, nil, "name"))
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, names(page.Items))

	found, _ := repo.FindAllByID(context.Background(), []int64{1})
	assert.Equal(t, int64(1), found[0].Version)

	pending, err := outbox.FetchPendingOutbox(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.NoError(t, outbox.MarkOutboxProcessed(context.Background(), evt.ID))
	pending, _ = outbox.FetchPendingOutbox(context.Background(), 10)
	assert.Empty(t, pending)
}

func TestRepository_MutateByIDsErrorLeavesStoreUntouched(t *testing.T) {
	repo, outbox := newWidgets(t, "a")

	_, err := repo.MutateByIDs(context.Background(), []int64{1}, func(items []*widget) (*sharedDomain.OutboxEvent, error) {
		items[0].SetActive(false, nil, time.Now())
		return nil, errors.New("boom")
	})
	require.Error(t, err)

	found, _ := repo.FindAllByID(context.Background(), []int64{1})
	assert.True(t, found[0].Active)
	assert.Equal(t, int64(0), found[0].Version)

	pending, _ := outbox.FetchPendingOutbox(context.Background(), 10)
	assert.Empty(t, pending)
}

func TestRepository_SearchHugePageIsEmpty(t *testing.T) {
	repo, _ := newWidgets(t, "France", "Peru", "Japan")

	for _, spec := range []sharedDomain.QuerySpec{
		{Page: 461168601842738791, Size: 20},
		{Page: 1, Size: math.MaxInt},
	} {
		var page sharedDomain.PagedResult[*widget]
		var err error
		require.NotPanics(t, func() {
			page, err = repo.Search(context.Background(), sharedQuery.Compile(spec, widgetFields, nil, "name"))
		})
		require.NoError(t, err)
		assert.Empty(t, page.Items)
		assert.Equal(t, int64(3), page.TotalCount)
	}
}
