package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	orgDomain "github.com/davicafu/orgref/internal/org/domain"
	"github.com/davicafu/orgref/internal/shared/application"
	sharedHTTP "github.com/davicafu/orgref/internal/shared/infra/inbound/http"
)

func RegisterTeamRoutes(r gin.IRouter, teams *application.CatalogService[*orgDomain.Team], log *zap.Logger) {
	sharedHTTP.NewCatalogHandler[*orgDomain.Team, orgDomain.TeamFilters](
		teams, sharedHTTP.ListPresenter(ToTeamRecord), log,
	).Register(r.Group("/teams"))
}
