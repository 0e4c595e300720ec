package bus

import "context"

// Keyer lo implementan los eventos que deben ir ordenados dentro de una partición.
type Keyer interface {
	PartitionKey() string
}

// EventBus publica eventos de integración; el formato y el topic los fija cada adapter.
type EventBus interface {
	Publish(ctx context.Context, event interface{}) error
}
