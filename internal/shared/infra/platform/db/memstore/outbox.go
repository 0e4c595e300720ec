package memstore

import (
	"context"
	"sync"

	"github.com/google/uuid"

	sharedDomain "github.com/davicafu/orgref/internal/shared/domain"
)

// Outbox es la cola de eventos pendientes cuando no hay base de datos.
// Implementa sharedDomain.OutboxRepository para que el relayer funcione igual.
type Outbox struct {
	mu     sync.Mutex
	events []sharedDomain.OutboxEvent
}

var _ sharedDomain.OutboxRepository = (*Outbox)(nil)

func NewOutbox() *Outbox {
	return &Outbox{}
}

func (o *Outbox) add(evt sharedDomain.OutboxEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, evt)
}

func (o *Outbox) FetchPendingOutbox(ctx context.Context, limit int) ([]sharedDomain.OutboxEvent, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	var out []sharedDomain.OutboxEvent
	for _, e := range o.events {
		if e.Processed {
			continue
		}
		out = append(out, e)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (o *Outbox) MarkOutboxProcessed(ctx context.Context, id uuid.UUID) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	for i := range o.events {
		if o.events[i].ID == id {
			o.events[i].Processed = true
			return nil
		}
	}
	return sharedDomain.ErrNotFound
}
