package http

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/davicafu/orgref/internal/shared/application"
	sharedDomain "github.com/davicafu/orgref/internal/shared/domain"
	sharedQuery "github.com/davicafu/orgref/internal/shared/platform/query"
	"github.com/davicafu/orgref/pkg/utils"
)

// Presenter convierte la página de entidades en el cuerpo de la respuesta.
type Presenter[E any] func(ctx context.Context, page sharedDomain.PagedResult[E], warnings []string) (any, error)

// ListPresenter responde con un array plano de registros de transporte.
func ListPresenter[E, R any](to func(E) R) Presenter[E] {
	return func(_ context.Context, page sharedDomain.PagedResult[E], _ []string) (any, error) {
		return sharedDomain.MapPage(page, to).Items, nil
	}
}

// PageResponse es la respuesta paginada con avisos opcionales.
type PageResponse[R any] struct {
	sharedDomain.PagedResult[R]
	Warnings []string `json:"warnings,omitempty"`
}

func PagePresenter[E, R any](to func(E) R) Presenter[E] {
	return func(_ context.Context, page sharedDomain.PagedResult[E], warnings []string) (any, error) {
		return PageResponse[R]{PagedResult: sharedDomain.MapPage(page, to), Warnings: warnings}, nil
	}
}

// CatalogHandler expone búsqueda y mutaciones masivas de una entidad.
// F son los filtros propios de la entidad; se leen del mismo cuerpo JSON que el QuerySpec.
type CatalogHandler[E sharedDomain.Entity, F sharedQuery.Extra] struct {
	service *application.CatalogService[E]
	present Presenter[E]
	log     *zap.Logger
}

func NewCatalogHandler[E sharedDomain.Entity, F sharedQuery.Extra](service *application.CatalogService[E], present Presenter[E], log *zap.Logger) *CatalogHandler[E, F] {
	return &CatalogHandler[E, F]{service: service, present: present, log: log}
}

// Register monta POST /search, /bulk-update-active y /bulk-delete bajo el grupo.
func (h *CatalogHandler[E, F]) Register(rg *gin.RouterGroup) {
	rg.POST("/search", h.Search)
	rg.POST("/bulk-update-active", h.BulkUpdateActive)
	rg.POST("/bulk-delete", h.BulkDelete)
}

// Search endpoint POST /{entity}/search
func (h *CatalogHandler[E, F]) Search(c *gin.Context) {
	var spec sharedDomain.QuerySpec
	var filters F

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.SendBadRequest(c, "cannot read body")
		return
	}
	if err := DecodeJSON(body, &spec, &filters); err != nil {
		utils.SendBadRequest(c, "invalid query: "+err.Error())
		return
	}

	page, warnings, err := h.service.Search(c.Request.Context(), spec, filters)
	if err != nil {
		utils.SendDomainError(c, err)
		return
	}

	resp, err := h.present(c.Request.Context(), page, warnings)
	if err != nil {
		h.log.Error("Failed to build search response", zap.String("entity", h.service.Entity()), zap.Error(err))
		utils.SendInternalServerError(c, "internal error")
		return
	}

	utils.SetWarnings(c, warnings)
	c.JSON(http.StatusOK, resp)
}

type bulkActiveRequest struct {
	IDs    []int64 `json:"ids"`
	Active *bool   `json:"active" binding:"required"`
}

// BulkUpdateActive endpoint POST /{entity}/bulk-update-active
func (h *CatalogHandler[E, F]) BulkUpdateActive(c *gin.Context) {
	var req bulkActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, err.Error())
		return
	}

	n, err := h.service.BulkSetActive(c.Request.Context(), req.IDs, *req.Active, Actor(c))
	if err != nil {
		utils.SendDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"updatedCount": n, "active": *req.Active})
}

type bulkDeleteRequest struct {
	IDs []int64 `json:"ids" binding:"required,min=1"`
}

// BulkDelete endpoint POST /{entity}/bulk-delete
func (h *CatalogHandler[E, F]) BulkDelete(c *gin.Context) {
	var req bulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		msg := err.Error()
		if len(req.IDs) == 0 {
			msg = sharedDomain.ErrEmptyIDs.Error()
		}
		utils.SendBadRequest(c, msg)
		return
	}

	n, err := h.service.BulkSoftDelete(c.Request.Context(), req.IDs, Actor(c))
	if err != nil {
		utils.SendDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deletedCount": n})
}
