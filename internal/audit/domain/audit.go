package domain

import (
	"context"
	"errors"
	"time"

	sharedDomain "github.com/davicafu/orgref/internal/shared/domain"
	sharedQuery "github.com/davicafu/orgref/internal/shared/platform/query"
)

var (
	ErrAuditAlreadyRecorded = errors.New("audit entry already recorded")
	ErrAnalyticsDisabled    = errors.New("audit analytics are not configured")
)

const AuditDefaultSort = "occurredAt"

// AuditEntry es una mutación masiva ya confirmada. ID es el id del evento de integración,
// así que un mismo evento recibido dos veces produce la misma entrada.
type AuditEntry struct {
	ID         string
	EventType  string
	Entity     string
	BatchID    string
	RecordIDs  []int64
	Count      int64
	Active     *bool
	Actor      *string
	OccurredAt time.Time
}

// AuditFields: recordIds no se expone; el resto admite filtros y orden.
var AuditFields = sharedQuery.NewRegistry(
	sharedQuery.Field[*AuditEntry]{Name: sharedQuery.FieldID, Column: "_id", Kind: sharedQuery.KindString, Get: func(a *AuditEntry) any { return a.ID }},
	sharedQuery.Field[*AuditEntry]{Name: "eventType", Column: "eventType", Kind: sharedQuery.KindString, Get: func(a *AuditEntry) any { return a.EventType }},
	sharedQuery.Field[*AuditEntry]{Name: "entity", Column: "entity", Kind: sharedQuery.KindString, Get: func(a *AuditEntry) any { return a.Entity }},
	sharedQuery.Field[*AuditEntry]{Name: "batchId", Column: "batchId", Kind: sharedQuery.KindString, Get: func(a *AuditEntry) any { return a.BatchID }},
	sharedQuery.Field[*AuditEntry]{Name: "count", Column: "count", Kind: sharedQuery.KindInt, Get: func(a *AuditEntry) any { return a.Count }},
	sharedQuery.Field[*AuditEntry]{Name: "active", Column: "active", Kind: sharedQuery.KindBool, Get: func(a *AuditEntry) any { return sharedQuery.Deref(a.Active) }},
	sharedQuery.Field[*AuditEntry]{Name: "actor", Column: "actor", Kind: sharedQuery.KindString, Get: func(a *AuditEntry) any { return sharedQuery.Deref(a.Actor) }},
	sharedQuery.Field[*AuditEntry]{Name: "occurredAt", Column: "occurredAt", Kind: sharedQuery.KindTime, Get: func(a *AuditEntry) any { return a.OccurredAt }},
)

// AuditFilters son los atajos del cuerpo de /audit/search.
type AuditFilters struct {
	Entity    *string `json:"entity"`
	EventType *string `json:"eventType"`
	Actor     *string `json:"actor"`
}

func (f AuditFilters) Predicates(fs sharedQuery.Fields) []sharedDomain.Criteria {
	return []sharedDomain.Criteria{
		sharedQuery.OptionalText(f.Entity, func(v string) sharedDomain.Criteria { return sharedQuery.Equal(fs, "entity", v) }),
		sharedQuery.OptionalText(f.EventType, func(v string) sharedDomain.Criteria { return sharedQuery.Equal(fs, "eventType", v) }),
		sharedQuery.OptionalText(f.Actor, func(v string) sharedDomain.Criteria { return sharedQuery.EqualFold(fs, "actor", v) }),
	}
}

// DailyTrend son los registros afectados por día y entidad.
type DailyTrend struct {
	Day         time.Time `json:"day"`
	Entity      string    `json:"entity"`
	Activated   uint64    `json:"activated"`
	Deactivated uint64    `json:"deactivated"`
	Deleted     uint64    `json:"deleted"`
}

// --- Puertos ---

// AuditSink recibe las entradas nuevas. Debe devolver ErrAuditAlreadyRecorded si ya la tenía.
type AuditSink interface {
	Append(ctx context.Context, entry *AuditEntry) error
}

// AuditRepository es el almacén consultable del historial.
type AuditRepository interface {
	AuditSink
	sharedQuery.Store[*AuditEntry]
}

type AuditAnalyticsRepository interface {
	AuditSink
	GetDailyTrend(ctx context.Context, start, end time.Time) ([]DailyTrend, error)
}
