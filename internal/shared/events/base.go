package events

import (
	"encoding/json"
	"reflect"
	"time"
)

// Base de todos los eventos de integración
type IntegrationEvent struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	AggregateID string          `json:"aggregateId"`
	Timestamp   time.Time       `json:"timestamp"`
	Data        json.RawMessage `json:"data"` // contenido específico del evento
}

// PartitionKey agrupa en la misma partición los eventos de un mismo lote.
func (e IntegrationEvent) PartitionKey() string {
	return e.AggregateID
}

type EventMetadata struct {
	Type  reflect.Type
	Topic string
}
