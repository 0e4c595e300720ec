package http

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	auditApp "github.com/davicafu/orgref/internal/audit/application"
	auditDomain "github.com/davicafu/orgref/internal/audit/domain"
	sharedDomain "github.com/davicafu/orgref/internal/shared/domain"
	sharedHTTP "github.com/davicafu/orgref/internal/shared/infra/inbound/http"
	"github.com/davicafu/orgref/pkg/utils"
)

type AuditHandler struct {
	service *auditApp.AuditService
	log     *zap.Logger
}

func NewAuditHandler(service *auditApp.AuditService, log *zap.Logger) *AuditHandler {
	return &AuditHandler{service: service, log: log}
}

type AuditRecord struct {
	ID         string    `json:"id"`
	EventType  string    `json:"eventType"`
	Entity     string    `json:"entity"`
	BatchID    string    `json:"batchId"`
	RecordIDs  []int64   `json:"recordIds"`
	Count      int64     `json:"count"`
	Active     *bool     `json:"active,omitempty"`
	Actor      *string   `json:"actor,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

func toAuditRecord(e *auditDomain.AuditEntry) AuditRecord {
	return AuditRecord{
		ID: e.ID, EventType: e.EventType, Entity: e.Entity, BatchID: e.BatchID,
		RecordIDs: e.RecordIDs, Count: e.Count, Active: e.Active, Actor: e.Actor,
		OccurredAt: e.OccurredAt,
	}
}

type auditSearchRequest struct {
	sharedDomain.QuerySpec
	auditDomain.AuditFilters
}

// Search endpoint POST /audit/search
func (h *AuditHandler) Search(c *gin.Context) {
	var req auditSearchRequest
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.SendBadRequest(c, "cannot read body")
		return
	}
	if err := sharedHTTP.DecodeJSON(body, &req); err != nil {
		utils.SendBadRequest(c, "invalid query: "+err.Error())
		return
	}

	page, warnings, err := h.service.Search(c.Request.Context(), req.QuerySpec, req.AuditFilters)
	if err != nil {
		h.log.Error("Audit search failed", zap.Error(err))
		utils.SendInternalServerError(c, "internal error")
		return
	}

	utils.SetWarnings(c, warnings)
	c.JSON(http.StatusOK, gin.H{
		"items":      sharedDomain.MapPage(page, toAuditRecord).Items,
		"totalCount": page.TotalCount,
		"pageNumber": page.PageNumber,
		"pageSize":   page.PageSize,
	})
}

// Trend endpoint GET /audit/trend?from=2024-01-01&to=2024-01-31
func (h *AuditHandler) Trend(c *gin.Context) {
	from, err := parseDay(c.Query("from"))
	if err != nil {
		utils.SendBadRequest(c, "invalid from: "+err.Error())
		return
	}
	to, err := parseDay(c.Query("to"))
	if err != nil {
		utils.SendBadRequest(c, "invalid to: "+err.Error())
		return
	}
	if from != nil && to != nil && from.After(*to) {
		utils.SendBadRequest(c, "from must not be after to")
		return
	}

	trends, err := h.service.DailyTrend(c.Request.Context(), from, to)
	switch {
	case errors.Is(err, auditDomain.ErrAnalyticsDisabled):
		utils.SendError(c, http.StatusServiceUnavailable, err.Error())
		return
	case err != nil:
		h.log.Error("Audit trend failed", zap.Error(err))
		utils.SendInternalServerError(c, "internal error")
		return
	}

	c.JSON(http.StatusOK, trends)
}

// parseDay acepta fecha sola o RFC 3339; vacío es nil.
func parseDay(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func RegisterAuditRoutes(r gin.IRouter, h *AuditHandler) {
	g := r.Group("/audit")
	g.POST("/search", h.Search)
	g.GET("/trend", h.Trend)
}
