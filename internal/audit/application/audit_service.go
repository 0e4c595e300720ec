package application

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	auditDomain "github.com/davicafu/orgref/internal/audit/domain"
	sharedDomain "github.com/davicafu/orgref/internal/shared/domain"
	sharedQuery "github.com/davicafu/orgref/internal/shared/platform/query"
)

const defaultTrendWindow = 30 * 24 * time.Hour

// AuditService registra las mutaciones masivas y permite consultarlas.
type AuditService struct {
	repo      auditDomain.AuditRepository
	analytics auditDomain.AuditAnalyticsRepository
	log       *zap.Logger
}

// NewAuditService: analytics puede ser nil si no hay ClickHouse.
func NewAuditService(repo auditDomain.AuditRepository, analytics auditDomain.AuditAnalyticsRepository, log *zap.Logger) *AuditService {
	return &AuditService{repo: repo, analytics: analytics, log: log}
}

// Record escribe la entrada en el historial y, si existe, en analítica.
// Una entrada ya registrada no se vuelve a enviar a analítica.
func (s *AuditService) Record(ctx context.Context, entry *auditDomain.AuditEntry) error {
	if err := s.repo.Append(ctx, entry); err != nil {
		return err
	}
	if s.analytics == nil {
		return nil
	}
	if err := s.analytics.Append(ctx, entry); err != nil && !errors.Is(err, auditDomain.ErrAuditAlreadyRecorded) {
		// El historial ya está guardado; la analítica es secundaria.
		s.log.Warn("Failed to log audit entry to analytics", zap.String("event_id", entry.ID), zap.Error(err))
	}
	return nil
}

func (s *AuditService) Search(ctx context.Context, spec sharedDomain.QuerySpec, filters auditDomain.AuditFilters) (sharedDomain.PagedResult[*auditDomain.AuditEntry], []string, error) {
	return sharedQuery.Search(ctx, s.repo, spec, auditDomain.AuditFields, filters, auditDomain.AuditDefaultSort)
}

// DailyTrend usa los últimos 30 días si falta alguno de los extremos.
func (s *AuditService) DailyTrend(ctx context.Context, from, to *time.Time) ([]auditDomain.DailyTrend, error) {
	if s.analytics == nil {
		return nil, auditDomain.ErrAnalyticsDisabled
	}
	end := time.Now().UTC()
	if to != nil {
		end = *to
	}
	start := end.Add(-defaultTrendWindow)
	if from != nil {
		start = *from
	}
	return s.analytics.GetDailyTrend(ctx, start, end)
}
