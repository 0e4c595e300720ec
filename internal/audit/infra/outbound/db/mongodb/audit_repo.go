package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"golang.org/x/sync/errgroup"

	auditDomain "github.com/davicafu/orgref/internal/audit/domain"
	sharedDomain "github.com/davicafu/orgref/internal/shared/domain"
	"github.com/davicafu/orgref/internal/shared/infra/platform/db/mongostore"
	sharedQuery "github.com/davicafu/orgref/internal/shared/platform/query"
)

const auditCollection = "audit_entries"

// AuditRepoMongoDB guarda el historial de mutaciones en MongoDB.
type AuditRepoMongoDB struct {
	coll *mongo.Collection
}

// NewAuditRepoMongoDB comprueba la conexión antes de devolver el repositorio.
func NewAuditRepoMongoDB(ctx context.Context, client *mongo.Client, dbName string) (*AuditRepoMongoDB, error) {
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("could not ping mongoDB: %w", err)
	}
	return &AuditRepoMongoDB{coll: client.Database(dbName).Collection(auditCollection)}, nil
}

// Connect abre el cliente de Mongo.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	return mongo.Connect(ctx, options.Client().ApplyURI(uri))
}

// --- Structs de BSON ---
// Los nombres de campo coinciden con las columnas de AuditFields.

type mongoAuditEntry struct {
	ID         string    `bson:"_id"`
	EventType  string    `bson:"eventType"`
	Entity     string    `bson:"entity"`
	BatchID    string    `bson:"batchId"`
	RecordIDs  []int64   `bson:"recordIds"`
	Count      int64     `bson:"count"`
	Active     *bool     `bson:"active"`
	Actor      *string   `bson:"actor"`
	OccurredAt time.Time `bson:"occurredAt"`
}

func (r *AuditRepoMongoDB) Append(ctx context.Context, entry *auditDomain.AuditEntry) error {
	_, err := r.coll.InsertOne(ctx, toMongoAudit(entry))
	if mongo.IsDuplicateKeyError(err) {
		return auditDomain.ErrAuditAlreadyRecorded
	}
	return err
}

// Search lanza el conteo y la página en paralelo sobre el mismo filtro.
func (r *AuditRepoMongoDB) Search(ctx context.Context, plan sharedQuery.Plan) (sharedDomain.PagedResult[*auditDomain.AuditEntry], error) {
	filter := mongostore.ToMongoFilter(plan.Where)

	var total int64
	var items []*auditDomain.AuditEntry

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := r.coll.CountDocuments(gctx, filter)
		total = n
		return err
	})
	g.Go(func() error {
		cursor, err := r.coll.Find(gctx, filter, mongostore.FindOptions(plan))
		if err != nil {
			return err
		}
		defer cursor.Close(gctx)

		for cursor.Next(gctx) {
			var m mongoAuditEntry
			if err := cursor.Decode(&m); err != nil {
				return err
			}
			items = append(items, fromMongoAudit(&m))
		}
		return cursor.Err()
	})
	if err := g.Wait(); err != nil {
		return sharedDomain.PagedResult[*auditDomain.AuditEntry]{}, fmt.Errorf("search audit: %w", err)
	}
	return sharedQuery.Result(plan, items, total), nil
}

func toMongoAudit(e *auditDomain.AuditEntry) *mongoAuditEntry {
	return &mongoAuditEntry{
		ID: e.ID, EventType: e.EventType, Entity: e.Entity, BatchID: e.BatchID,
		RecordIDs: e.RecordIDs, Count: e.Count, Active: e.Active, Actor: e.Actor,
		OccurredAt: e.OccurredAt.UTC(),
	}
}

func fromMongoAudit(m *mongoAuditEntry) *auditDomain.AuditEntry {
	return &auditDomain.AuditEntry{
		ID: m.ID, EventType: m.EventType, Entity: m.Entity, BatchID: m.BatchID,
		RecordIDs: m.RecordIDs, Count: m.Count, Active: m.Active, Actor: m.Actor,
		OccurredAt: m.OccurredAt,
	}
}

var _ auditDomain.AuditRepository = (*AuditRepoMongoDB)(nil)
