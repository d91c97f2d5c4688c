package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/staffhub/employee-api/internal/core/domain"
)

const collectionAudit = "audit_log"

// AuditRepository appends audit entries to the audit_log collection.
type AuditRepository struct {
	col *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{col: db.Collection(collectionAudit)}
}

func (r *AuditRepository) Insert(ctx context.Context, entry *domain.AuditEntry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"_id":         entry.ID,
		"actor_id":    entry.ActorID,
		"actor_role":  string(entry.ActorRole),
		"action":      string(entry.Action),
		"resource":    entry.Resource,
		"resource_id": entry.ResourceID,
		"at":          entry.At.UTC(),
		"recorded_at": time.Now().UTC(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// EnsureIndexes indexes entries by actor and by resource.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "actor_id", Value: 1}, {Key: "at", Value: -1}}},
		{Keys: bson.D{{Key: "resource", Value: 1}, {Key: "resource_id", Value: 1}}},
	})
	return err
}
