package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	accessDomain "github.com/davicafu/orgref/internal/access/domain"
	"github.com/davicafu/orgref/internal/shared/application"
	sharedHTTP "github.com/davicafu/orgref/internal/shared/infra/inbound/http"
)

type Services struct {
	Roles *application.CatalogService[*accessDomain.Role]
	Users *application.CatalogService[*accessDomain.User]
}

// RegisterAccessRoutes registra /roles y /users.
func RegisterAccessRoutes(r gin.IRouter, s Services, log *zap.Logger) {
	sharedHTTP.NewCatalogHandler[*accessDomain.Role, accessDomain.RoleFilters](
		s.Roles, sharedHTTP.ListPresenter(ToRoleRecord), log,
	).Register(r.Group("/roles"))

	sharedHTTP.NewCatalogHandler[*accessDomain.User, accessDomain.UserFilters](
		s.Users, sharedHTTP.ListPresenter(ToUserRecord), log,
	).Register(r.Group("/users"))
}
