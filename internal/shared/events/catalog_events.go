package events

import (
	"reflect"
	"time"
)

// Tipos de evento emitidos por las mutaciones masivas del catálogo.
const (
	CatalogBulkActivated = "catalog.bulk_activated"
	CatalogBulkDeleted   = "catalog.bulk_deleted"
)

const CatalogTopic = "catalog"

// Estos son contratos de integración, NO entidades del dominio
// Se definen planos para intercambio entre contextos.
type CatalogBulkActivatedEvent struct {
	BatchID    string    `json:"batchId"`
	Entity     string    `json:"entity"`
	IDs        []int64   `json:"ids"`
	Active     bool      `json:"active"`
	Actor      *string   `json:"actor,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

type CatalogBulkDeletedEvent struct {
	BatchID    string    `json:"batchId"`
	Entity     string    `json:"entity"`
	IDs        []int64   `json:"ids"`
	Actor      *string   `json:"actor,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// NewCatalogEventRegistry registra los payloads que el worker de outbox sabe decodificar.
func NewCatalogEventRegistry() map[string]EventMetadata {
	return map[string]EventMetadata{
		CatalogBulkActivated: {
			Type:  reflect.TypeOf(CatalogBulkActivatedEvent{}),
			Topic: CatalogTopic,
		},
		CatalogBulkDeleted: {
			Type:  reflect.TypeOf(CatalogBulkDeletedEvent{}),
			Topic: CatalogTopic,
		},
	}
}
