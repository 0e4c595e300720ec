package events

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	auditDomain "github.com/davicafu/orgref/internal/audit/domain"
	sharedEvents "github.com/davicafu/orgref/internal/shared/events"
	sharedUtils "github.com/davicafu/orgref/internal/shared/infra/utils"
)

const handleTimeout = 2 * time.Second

type AuditRecorder interface {
	Record(ctx context.Context, entry *auditDomain.AuditEntry) error
}

// CatalogConsumer convierte los eventos de mutación masiva en entradas de auditoría.
type CatalogConsumer struct {
	recorder AuditRecorder
	log      *zap.Logger
}

func NewCatalogConsumer(recorder AuditRecorder, logger *zap.Logger) *CatalogConsumer {
	return &CatalogConsumer{recorder: recorder, log: logger}
}

func (c *CatalogConsumer) HandleMessage(ctx context.Context, key string, payload []byte) {
	var base sharedEvents.IntegrationEvent
	if err := json.Unmarshal(payload, &base); err != nil {
		c.log.Warn("Failed to unmarshal integration event", zap.String("key", key), zap.Error(err))
		return
	}

	switch base.Type {
	case sharedEvents.CatalogBulkActivated:
		sharedUtils.UnmarshalAndHandle(c.log, base.Type, base.Data, func(evt sharedEvents.CatalogBulkActivatedEvent) {
			active := evt.Active
			c.record(ctx, &auditDomain.AuditEntry{
				ID:         base.ID,
				EventType:  base.Type,
				Entity:     evt.Entity,
				BatchID:    evt.BatchID,
				RecordIDs:  evt.IDs,
				Count:      int64(len(evt.IDs)),
				Active:     &active,
				Actor:      evt.Actor,
				OccurredAt: evt.OccurredAt,
			})
		})

	case sharedEvents.CatalogBulkDeleted:
		sharedUtils.UnmarshalAndHandle(c.log, base.Type, base.Data, func(evt sharedEvents.CatalogBulkDeletedEvent) {
			c.record(ctx, &auditDomain.AuditEntry{
				ID:         base.ID,
				EventType:  base.Type,
				Entity:     evt.Entity,
				BatchID:    evt.BatchID,
				RecordIDs:  evt.IDs,
				Count:      int64(len(evt.IDs)),
				Actor:      evt.Actor,
				OccurredAt: evt.OccurredAt,
			})
		})

	default:
		c.log.Warn("Unknown event type", zap.String("type", base.Type))
	}
}

// record aplica un timeout propio; un duplicado no es un error.
func (c *CatalogConsumer) record(ctx context.Context, entry *auditDomain.AuditEntry) {
	ctxAudit, cancel := context.WithTimeout(ctx, handleTimeout)
	defer cancel()

	err := c.recorder.Record(ctxAudit, entry)
	switch {
	case errors.Is(err, auditDomain.ErrAuditAlreadyRecorded):
		c.log.Info("Duplicate catalog event ignored", zap.String("event_id", entry.ID))
	case err != nil:
		c.log.Warn("Failed to record audit entry",
			zap.String("event_id", entry.ID),
			zap.String("entity", entry.Entity),
			zap.Error(err),
		)
	default:
		c.log.Debug("Audit entry recorded",
			zap.String("event_id", entry.ID),
			zap.String("entity", entry.Entity),
			zap.Int64("count", entry.Count),
		)
	}
}
