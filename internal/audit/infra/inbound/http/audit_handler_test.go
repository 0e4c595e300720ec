package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	auditApp "github.com/davicafu/orgref/internal/audit/application"
	auditDomain "github.com/davicafu/orgref/internal/audit/domain"
	"github.com/davicafu/orgref/internal/audit/infra/outbound/db/memory"
)

func setupAudit(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := auditApp.NewAuditService(memory.NewAuditStore(), nil, zap.NewNop())
	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	for i, entity := range []string{"countries", "cities", "countries"} {
		require.NoError(t, svc.Record(context.Background(), &auditDomain.AuditEntry{
			ID:         "evt-" + string(rune('a'+i)),
			EventType:  "catalog.bulk_deleted",
			Entity:     entity,
			Count:      int64(i + 1),
			OccurredAt: at.Add(time.Duration(i) * time.Hour),
		}))
	}

	r := gin.New()
	RegisterAuditRoutes(r, NewAuditHandler(svc, zap.NewNop()))
	return r
}

func TestAuditSearch_FiltersAndPaging(t *testing.T) {
	r := setupAudit(t)

	req := httptest.NewRequest(http.MethodPost, "/audit/search",
		strings.NewReader(`{"entity":"countries","sortBy":"occurredAt","sortDirection":"DESC","size":1}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Items      []AuditRecord `json:"items"`
		TotalCount int64         `json:"totalCount"`
		PageSize   int           `json:"pageSize"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int64(2), body.TotalCount)
	assert.Equal(t, 1, body.PageSize)
	require.Len(t, body.Items, 1)
	assert.Equal(t, "evt-c", body.Items[0].ID)
}

func TestAuditTrend_Errors(t *testing.T) {
	r := setupAudit(t)

	tests := []struct {
		name string
		url  string
		code int
	}{
		{"fecha inválida", "/audit/trend?from=ayer", http.StatusBadRequest},
		{"rango invertido", "/audit/trend?from=2024-03-02&to=2024-03-01", http.StatusBadRequest},
		{"sin clickhouse", "/audit/trend?from=2024-03-01", http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.url, nil))
			assert.Equal(t, tt.code, w.Code)
		})
	}
}

func TestParseDay(t *testing.T) {
	d, err := parseDay("2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), *d)

	d, err = parseDay("")
	require.NoError(t, err)
	assert.Nil(t, d)

	_, err = parseDay("01/03/2024")
	assert.Error(t, err)
}
