package relayer

import (
	"context"
	"encoding/json"
	"reflect"
	"time"

	"go.uber.org/zap"

	sharedDomain "github.com/davicafu/orgref/internal/shared/domain"
	sharedEvents "github.com/davicafu/orgref/internal/shared/events"
	sharedBus "github.com/davicafu/orgref/internal/shared/infra/platform/bus"
)

// Worker publica periódicamente los eventos pendientes del outbox.
// Un evento solo se marca como procesado si el publisher lo aceptó.
type Worker struct {
	repo          sharedDomain.OutboxRepository
	publisher     sharedBus.EventBus
	eventRegistry map[string]sharedEvents.EventMetadata
	interval      time.Duration
	batchSize     int
	log           *zap.Logger
}

func NewOutboxWorker(
	repo sharedDomain.OutboxRepository,
	publisher sharedBus.EventBus,
	registry map[string]sharedEvents.EventMetadata,
	interval time.Duration,
	batchSize int,
	log *zap.Logger,
) *Worker {
	return &Worker{
		repo:          repo,
		publisher:     publisher,
		eventRegistry: registry,
		interval:      interval,
		batchSize:     batchSize,
		log:           log,
	}
}

// Start bloquea hasta que se cancela ctx.
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.log.Info("🚀 Outbox worker started", zap.Duration("interval", w.interval), zap.Int("batch", w.batchSize))

	for {
		select {
		case <-ctx.Done():
			w.log.Info("🛑 Outbox worker stopped")
			return
		case <-ticker.C:
			w.ProcessBatch(ctx)
		}
	}
}

// ProcessBatch devuelve cuántos eventos se publicaron en esta pasada.
func (w *Worker) ProcessBatch(ctx context.Context) int {
	pending, err := w.repo.FetchPendingOutbox(ctx, w.batchSize)
	if err != nil {
		w.log.Warn("⚠️ Could not fetch pending outbox events", zap.Error(err))
		return 0
	}
	if len(pending) > 0 {
		w.log.Debug("📬 Pending outbox events", zap.Int("count", len(pending)))
	}

	published := 0
	for _, evt := range pending {
		if w.publishAndMark(ctx, evt) {
			published++
		}
	}
	return published
}

func (w *Worker) publishAndMark(ctx context.Context, evt sharedDomain.OutboxEvent) bool {
	integration, err := w.toIntegrationEvent(evt)
	if err != nil {
		w.log.Error("Outbox event cannot be decoded",
			zap.String("event_id", evt.ID.String()),
			zap.String("event_type", evt.EventType),
			zap.Error(err))
		return false
	}

	if err := w.publisher.Publish(ctx, integration); err != nil {
		w.log.Warn("⚠️ Publish failed, will retry",
			zap.String("event_id", evt.ID.String()),
			zap.Error(err))
		return false
	}

	if err := w.repo.MarkOutboxProcessed(ctx, evt.ID); err != nil {
		w.log.Warn("⚠️ Published but not marked as processed",
			zap.String("event_id", evt.ID.String()),
			zap.Error(err))
		return true
	}

	w.log.Debug("✅ Outbox event published", zap.String("event_id", evt.ID.String()), zap.String("event_type", evt.EventType))
	return true
}

// toIntegrationEvent valida el payload contra el tipo registrado y lo envuelve.
// El payload puede venir como struct (memoria) o como JSON genérico leído de la base de datos.
func (w *Worker) toIntegrationEvent(evt sharedDomain.OutboxEvent) (sharedEvents.IntegrationEvent, error) {
	metadata, ok := w.eventRegistry[evt.EventType]
	if !ok {
		return sharedEvents.IntegrationEvent{}, &UnknownEventError{EventType: evt.EventType}
	}

	raw, err := json.Marshal(evt.Payload)
	if err != nil {
		return sharedEvents.IntegrationEvent{}, err
	}
	typed := reflect.New(metadata.Type).Interface()
	if err := json.Unmarshal(raw, typed); err != nil {
		return sharedEvents.IntegrationEvent{}, err
	}
	data, err := json.Marshal(typed)
	if err != nil {
		return sharedEvents.IntegrationEvent{}, err
	}

	return sharedEvents.IntegrationEvent{
		ID:          evt.ID.String(),
		Type:        evt.EventType,
		AggregateID: evt.AggregateID,
		Timestamp:   evt.CreatedAt,
		Data:        data,
	}, nil
}

type UnknownEventError struct {
	EventType string
}

func (e *UnknownEventError) Error() string {
	return "unregistered event type " + e.EventType
}
