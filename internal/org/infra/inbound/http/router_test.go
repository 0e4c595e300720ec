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

	orgDomain "github.com/davicafu/orgref/internal/org/domain"
	"github.com/davicafu/orgref/internal/shared/application"
	"github.com/davicafu/orgref/internal/shared/infra/platform/db/memstore"
)

func setupTeams(t *testing.T) (*gin.Engine, *memstore.Outbox) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	outbox := memstore.NewOutbox()
	repo := memstore.NewRepository(orgDomain.TeamFields, (*orgDomain.Team).Clone, outbox)

	founded := time.Date(1998, 9, 4, 0, 0, 0, 0, time.UTC)
	industry := int64(40)
	email := "contact@acme.io"
	seed := []*orgDomain.Team{
		{InternalCode: "ACME", Name: "Acme Corp", Email: &email, FoundedDate: &founded, IndustryID: &industry, Active: true},
		{InternalCode: "ACME-RD", Name: "Acme R&D", Active: true},
		{InternalCode: "GLOBEX", Name: "Globex", Active: false},
	}
	for _, tm := range seed {
		require.NoError(t, repo.Insert(context.Background(), tm))
	}

	svc := application.NewCatalogService[*orgDomain.Team]("teams", repo, orgDomain.TeamFields, orgDomain.TeamDefaultSort, nil, zap.NewNop())
	r := gin.New()
	RegisterTeamRoutes(r, svc, zap.NewNop())
	return r, outbox
}

func postTeams(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/teams"+path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeTeams(t *testing.T, w *httptest.ResponseRecorder) []TeamRecord {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var out []TeamRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestTeamSearch_Filters(t *testing.T) {
	r, _ := setupTeams(t)

	tests := []struct {
		name string
		body string
		want []string
	}{
		{"sin filtros ordena por nombre", `{}`, []string{"ACME", "ACME-RD", "GLOBEX"}},
		{"internalCode contiene", `{"internalCode":"rd"}`, []string{"ACME-RD"}},
		{"email contiene", `{"email":"ACME.IO"}`, []string{"ACME"}},
		{"activos", `{"active":true}`, []string{"ACME", "ACME-RD"}},
		{"industria", `{"industryId":40}`, []string{"ACME"}},
		{"fundada antes de 2000", `{"filters":[{"field":"foundedDate","operator":"LESS_THAN","value":"2000-01-01"}]}`, []string{"ACME"}},
		{"orden descendente", `{"sortBy":"name","sortDirection":"desc","size":2}`, []string{"GLOBEX", "ACME-RD"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			teams := decodeTeams(t, postTeams(r, "/search", tt.body))
			codes := make([]string, 0, len(teams))
			for _, tm := range teams {
				codes = append(codes, tm.InternalCode)
			}
			assert.Equal(t, tt.want, codes)
		})
	}
}

func TestTeamRecord_FoundedDateIsDateOnly(t *testing.T) {
	r, _ := setupTeams(t)

	teams := decodeTeams(t, postTeams(r, "/search", `{"internalCode":"ACME","size":1}`))
	require.Len(t, teams, 1)
	require.NotNil(t, teams[0].FoundedDate)
	assert.Equal(t, "1998-09-04", *teams[0].FoundedDate)
}

func TestTeamBulkDelete_EmptyIDsRejected(t *testing.T) {
	r, outbox := setupTeams(t)

	w := postTeams(r, "/bulk-delete", `{"ids":[]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	pending, err := outbox.FetchPendingOutbox(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestTeamBulkDelete_TwiceStillCountsOne(t *testing.T) {
	r, outbox := setupTeams(t)

	for i := 0; i < 2; i++ {
		w := postTeams(r, "/bulk-delete", `{"ids":[3]}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"deletedCount":1}`, w.Body.String())
	}

	pending, err := outbox.FetchPendingOutbox(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, pending, 2)
}
