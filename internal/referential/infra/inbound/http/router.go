package http

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	refApp "github.com/davicafu/orgref/internal/referential/application"
	refDomain "github.com/davicafu/orgref/internal/referential/domain"
	"github.com/davicafu/orgref/internal/shared/application"
	sharedDomain "github.com/davicafu/orgref/internal/shared/domain"
	sharedHTTP "github.com/davicafu/orgref/internal/shared/infra/inbound/http"
)

// Presenter responde paginado y con los enlaces desnormalizados.
func Presenter(d *refApp.Denormalizer) sharedHTTP.Presenter[*refDomain.Referential] {
	return func(ctx context.Context, page sharedDomain.PagedResult[*refDomain.Referential], warnings []string) (any, error) {
		summaries, err := d.Summaries(ctx, page.Items)
		if err != nil {
			return nil, err
		}
		records := sharedDomain.MapPage(page, func(r *refDomain.Referential) ReferentialRecord {
			return ToReferentialRecord(r, summaries)
		})
		return sharedHTTP.PageResponse[ReferentialRecord]{PagedResult: records, Warnings: warnings}, nil
	}
}

// RoutePrefix es la ruta que usan los clientes existentes; AliasPrefix la sirve igual.
const (
	RoutePrefix = "/referentiels"
	AliasPrefix = "/referentials"
)

func RegisterReferentialRoutes(r gin.IRouter, svc *application.CatalogService[*refDomain.Referential], d *refApp.Denormalizer, log *zap.Logger) {
	h := sharedHTTP.NewCatalogHandler[*refDomain.Referential, refDomain.ReferentialFilters](svc, Presenter(d), log)
	h.Register(r.Group(RoutePrefix))
	h.Register(r.Group(AliasPrefix))
}
