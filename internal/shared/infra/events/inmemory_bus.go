package events

import (
	"context"
	"encoding/json"
	"sync"

	sharedBus "github.com/davicafu/orgref/internal/shared/infra/platform/bus"
)

// InMemoryEventBus reparte cada evento (serializado a JSON, como en Kafka) entre
// los suscriptores de un único topic. Si un suscriptor tiene el buffer lleno, pierde el evento.
type InMemoryEventBus struct {
	subscribers []chan []byte
	mu          sync.RWMutex
	topic       string
}

var _ sharedBus.EventBus = (*InMemoryEventBus)(nil)

func NewInMemoryEventBus(topic string) *InMemoryEventBus {
	return &InMemoryEventBus{topic: topic}
}

func (b *InMemoryEventBus) Topic() string {
	return b.topic
}

func (b *InMemoryEventBus) Publish(ctx context.Context, event interface{}) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, sub := range b.subscribers {
		select {
		case sub <- payload:
		default:
		}
	}
	return nil
}

// Subscribe devuelve un canal con buffer que recibe los eventos publicados a partir de ahora.
func (b *InMemoryEventBus) Subscribe(bufferSize int) <-chan []byte {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan []byte, bufferSize)
	b.subscribers = append(b.subscribers, ch)
	return ch
}
