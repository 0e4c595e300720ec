package http

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sharedDomain "github.com/davicafu/orgref/internal/shared/domain"
	sharedQuery "github.com/davicafu/orgref/internal/shared/platform/query"
)

type idFilters struct {
	ParentID *int64 `json:"parentId"`
}

func TestDecodeJSON_KeepsLargeIntegers(t *testing.T) {
	body := []byte(`{"parentId": 9007199254740993, "filters": [{"field": "id", "operator": "EQUALS", "value": 9007199254740993}],
		"ranges": {"id": {"min": 1, "max": 9007199254740995}}}`)

	var spec sharedDomain.QuerySpec
	var filters idFilters
	require.NoError(t, DecodeJSON(body, &spec, &filters))

	require.NotNil(t, filters.ParentID)
	assert.Equal(t, int64(9007199254740993), *filters.ParentID)

	require.Len(t, spec.Filters, 1)
	assert.Equal(t, json.Number("9007199254740993"), spec.Filters[0].Value)
	v, ok := sharedQuery.Coerce(spec.Filters[0].Value, sharedQuery.KindInt)
	require.True(t, ok)
	assert.Equal(t, int64(9007199254740993), v)

	assert.Equal(t, json.Number("9007199254740995"), spec.Ranges["id"].Max)
}

func TestDecodeJSON_EmptyAndInvalidBodies(t *testing.T) {
	var spec sharedDomain.QuerySpec
	assert.NoError(t, DecodeJSON([]byte("  "), &spec))
	assert.Equal(t, sharedDomain.QuerySpec{}, spec)

	assert.Error(t, DecodeJSON([]byte(`{"page": 1} {"page": 2}`), &spec))
	assert.Error(t, DecodeJSON([]byte(`{"page": "x"}`), &spec))
}
