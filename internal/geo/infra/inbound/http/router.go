package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	geoDomain "github.com/davicafu/orgref/internal/geo/domain"
	"github.com/davicafu/orgref/internal/shared/application"
	sharedHTTP "github.com/davicafu/orgref/internal/shared/infra/inbound/http"
)

// Services agrupa los casos de uso del contexto geográfico.
type Services struct {
	Countries *application.CatalogService[*geoDomain.Country]
	Cities    *application.CatalogService[*geoDomain.City]
	Timezones *application.CatalogService[*geoDomain.Timezone]
}

// RegisterGeoRoutes registra /countries, /cities y /timezones.
func RegisterGeoRoutes(r gin.IRouter, s Services, log *zap.Logger) {
	sharedHTTP.NewCatalogHandler[*geoDomain.Country, geoDomain.CountryFilters](
		s.Countries, sharedHTTP.ListPresenter(ToCountryRecord), log,
	).Register(r.Group("/countries"))

	sharedHTTP.NewCatalogHandler[*geoDomain.City, geoDomain.CityFilters](
		s.Cities, sharedHTTP.ListPresenter(ToCityRecord), log,
	).Register(r.Group("/cities"))

	sharedHTTP.NewCatalogHandler[*geoDomain.Timezone, geoDomain.TimezoneFilters](
		s.Timezones, sharedHTTP.ListPresenter(ToTimezoneRecord), log,
	).Register(r.Group("/timezones"))
}
