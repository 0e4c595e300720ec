package application

import (
	"context"
	"time"

	"github.com/google/uuid"

	sharedDomain "github.com/davicafu/orgref/internal/shared/domain"
	"github.com/davicafu/orgref/internal/shared/events"
)

// BulkMutationEngine aplica el mismo cambio de estado a un lote de registros.
// Los ids inexistentes se ignoran; el resultado es el número de registros cargados.
type BulkMutationEngine[E sharedDomain.Entity] struct {
	repo   Repository[E]
	entity string
	now    func() time.Time
}

func NewBulkMutationEngine[E sharedDomain.Entity](repo Repository[E], entity string) *BulkMutationEngine[E] {
	return &BulkMutationEngine[E]{
		repo:   repo,
		entity: entity,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// BulkSetActive activa o desactiva los registros indicados.
func (b *BulkMutationEngine[E]) BulkSetActive(ctx context.Context, ids []int64, active bool, actor *string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	return b.repo.MutateByIDs(ctx, ids, func(records []E) (*sharedDomain.OutboxEvent, error) {
		at := b.now()
		for _, rec := range records {
			rec.SetActive(active, actor, at)
		}

		batchID := uuid.NewString()
		evt := sharedDomain.NewOutboxEvent(b.entity, batchID, events.CatalogBulkActivated, events.CatalogBulkActivatedEvent{
			BatchID:    batchID,
			Entity:     b.entity,
			IDs:        idsOf(records),
			Active:     active,
			Actor:      actor,
			OccurredAt: at,
		})
		return &evt, nil
	})
}

// BulkSoftDelete marca los registros como borrados. Volver a borrar refresca las marcas.
func (b *BulkMutationEngine[E]) BulkSoftDelete(ctx context.Context, ids []int64, actor *string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	return b.repo.MutateByIDs(ctx, ids, func(records []E) (*sharedDomain.OutboxEvent, error) {
		at := b.now()
		for _, rec := range records {
			base := rec.Base()
			base.Delete(actor, at)
			base.Touch(actor, at)
		}

		batchID := uuid.NewString()
		evt := sharedDomain.NewOutboxEvent(b.entity, batchID, events.CatalogBulkDeleted, events.CatalogBulkDeletedEvent{
			BatchID:    batchID,
			Entity:     b.entity,
			IDs:        idsOf(records),
			Actor:      actor,
			OccurredAt: at,
		})
		return &evt, nil
	})
}

func idsOf[E sharedDomain.Entity](records []E) []int64 {
	ids := make([]int64, len(records))
	for i, rec := range records {
		ids[i] = rec.Base().ID
	}
	return ids
}
