package http

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	geoDomain "github.com/davicafu/orgref/internal/geo/domain"
	geoDB "github.com/davicafu/orgref/internal/geo/infra/outbound/db"
	"github.com/davicafu/orgref/internal/shared/application"
	"github.com/davicafu/orgref/internal/shared/infra/platform/db/sqlstore"
)

type geoFixture struct {
	router    *gin.Engine
	countries *sqlstore.Repository[*geoDomain.Country]
	cities    *sqlstore.Repository[*geoDomain.City]
}

func setupGeo(t *testing.T) geoFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, sqlstore.Migrate(context.Background(), db, sqlstore.SQLite, geoDB.Tables()...))

	log := zap.NewNop()
	countries := sqlstore.NewRepository(db, sqlstore.SQLite, geoDB.CountryTable, log)
	cities := sqlstore.NewRepository(db, sqlstore.SQLite, geoDB.CityTable, log)
	timezones := sqlstore.NewRepository(db, sqlstore.SQLite, geoDB.TimezoneTable, log)

	r := gin.New()
	RegisterGeoRoutes(r, Services{
		Countries: application.NewCatalogService[*geoDomain.Country]("countries", countries, geoDomain.CountryFields, geoDomain.CountryDefaultSort, nil, log),
		Cities:    application.NewCatalogService[*geoDomain.City]("cities", cities, geoDomain.CityFields, geoDomain.CityDefaultSort, nil, log),
		Timezones: application.NewCatalogService[*geoDomain.Timezone]("timezones", timezones, geoDomain.TimezoneFields, geoDomain.TimezoneDefaultSort, nil, log),
	}, log)

	return geoFixture{router: r, countries: countries, cities: cities}
}

func (f geoFixture) seedCountry(t *testing.T, iso2, iso3, name string) *geoDomain.Country {
	t.Helper()
	c := &geoDomain.Country{ISO2: iso2, ISO3: iso3, Name: name, Enabled: true, Active: true}
	require.NoError(t, f.countries.Insert(context.Background(), c))
	return c
}

func post(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Actor-ID", "tester")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func countryNames(t *testing.T, w *httptest.ResponseRecorder) []string {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var records []CountryRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &records))
	names := make([]string, 0, len(records))
	for _, r := range records {
		names = append(names, r.Name)
	}
	return names
}

func TestCountrySearch_ContainsIsCaseInsensitive(t *testing.T) {
	f := setupGeo(t)
	f.seedCountry(t, "FR", "FRA", "France")
	f.seedCountry(t, "US", "USA", "United States")
	f.seedCountry(t, "JP", "JPN", "Japan")

	w := post(f.router, "/countries/search", `{"filters":[{"field":"name","operator":"CONTAINS","value":"a"}]}`)

	// "United States" también contiene una "a" (States).
	assert.Equal(t, []string{"France", "Japan", "United States"}, countryNames(t, w))

	w = post(f.router, "/countries/search", `{"filters":[{"field":"name","operator":"CONTAINS","value":"PAN"}]}`)
	assert.Equal(t, []string{"Japan"}, countryNames(t, w))
}

func TestCountrySearch_DefaultSortByName(t *testing.T) {
	f := setupGeo(t)
	f.seedCountry(t, "BR", "BRA", "Brazil")
	f.seedCountry(t, "AU", "AUS", "Australia")
	f.seedCountry(t, "AR", "ARG", "Argentina")

	w := post(f.router, "/countries/search", `{}`)
	assert.Equal(t, []string{"Argentina", "Australia", "Brazil"}, countryNames(t, w))
}

func TestCountrySearch_EntityFiltersAndUnknownField(t *testing.T) {
	f := setupGeo(t)
	f.seedCountry(t, "FR", "FRA", "France")
	f.seedCountry(t, "JP", "JPN", "Japan")

	w := post(f.router, "/countries/search", `{"iso2":"fr"}`)
	assert.Equal(t, []string{"France"}, countryNames(t, w))

	w = post(f.router, "/countries/search", `{"name":"jap","sorts":[{"field":"bogus","direction":"DESC"}]}`)
	assert.Equal(t, []string{"Japan"}, countryNames(t, w))
	assert.NotEmpty(t, w.Header().Get("X-Query-Warnings"))
}

func TestCountryBulk_DeleteHidesAndIncludeDeletedShows(t *testing.T) {
	f := setupGeo(t)
	fr := f.seedCountry(t, "FR", "FRA", "France")
	f.seedCountry(t, "JP", "JPN", "Japan")

	w := post(f.router, "/countries/bulk-delete", `{"ids":[`+itoa(fr.ID)+`, 999]}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"deletedCount":1}`, w.Body.String())

	assert.Equal(t, []string{"Japan"}, countryNames(t, post(f.router, "/countries/search", `{}`)))
	assert.Equal(t, []string{"France", "Japan"}, countryNames(t, post(f.router, "/countries/search", `{"includeDeleted":true}`)))

	got, err := f.countries.FindAllByID(context.Background(), []int64{fr.ID})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "tester", *got[0].DeletedBy)
}

func TestCountryBulk_UpdateActive(t *testing.T) {
	f := setupGeo(t)
	fr := f.seedCountry(t, "FR", "FRA", "France")
	f.seedCountry(t, "JP", "JPN", "Japan")

	w := post(f.router, "/countries/bulk-update-active", `{"ids":[`+itoa(fr.ID)+`],"active":false}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"updatedCount":1,"active":false}`, w.Body.String())

	assert.Equal(t, []string{"Japan"}, countryNames(t, post(f.router, "/countries/search", `{"active":true}`)))
}

func TestCitySearch_ByCountry(t *testing.T) {
	f := setupGeo(t)
	fr := f.seedCountry(t, "FR", "FRA", "France")
	jp := f.seedCountry(t, "JP", "JPN", "Japan")

	ctx := context.Background()
	require.NoError(t, f.cities.Insert(ctx, &geoDomain.City{Name: "Paris", CountryID: &fr.ID, Capital: true, Active: true}))
	require.NoError(t, f.cities.Insert(ctx, &geoDomain.City{Name: "Lyon", CountryID: &fr.ID, Active: true}))
	require.NoError(t, f.cities.Insert(ctx, &geoDomain.City{Name: "Tokyo", CountryID: &jp.ID, Capital: true, Active: true}))

	w := post(f.router, "/cities/search", `{"countryId":`+itoa(fr.ID)+`}`)
	require.Equal(t, http.StatusOK, w.Code)
	var cities []CityRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cities))
	require.Len(t, cities, 2)
	assert.Equal(t, "Lyon", cities[0].Name)
	assert.Equal(t, "Paris", cities[1].Name)

	w = post(f.router, "/cities/search", `{"capital":true,"ranges":{"id":{"min":2}}}`)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cities))
	require.Len(t, cities, 1)
	assert.Equal(t, "Tokyo", cities[0].Name)
}

func itoa(n int64) string {
	b, _ := json.Marshal(n)
	return string(b)
}
