// Package database provides the persisted warning store.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/HavenStudios/HavenBotGo/pkg/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	warningsCollection = "warnings"
	countersCollection = "counters"
	warningsCounterID  = "warnings"
)

// WarningStore is the MongoDB-backed record store for warnings. It is the
// single source of truth for how many times a user has been warned and why.
// Reads and writes hit the database directly; warning records are never
// cached so a fetch always reflects the current persisted state.
type WarningStore struct {
	db *Database
}

// NewWarningStore creates a WarningStore over the given database
func NewWarningStore(db *Database) *WarningStore {
	return &WarningStore{db: db}
}

// nextWarningID increments and returns the warning id sequence.
// The counter is never decremented, so ids are monotonic but not
// necessarily contiguous after deletions.
func (s *WarningStore) nextWarningID(ctx context.Context) (int64, error) {
	col := s.db.GetCollection(countersCollection)
	if col == nil {
		return 0, fmt.Errorf("database not connected")
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter models.Counter
	err := col.FindOneAndUpdate(ctx,
		bson.M{"_id": warningsCounterID},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, err
	}

	return counter.Seq, nil
}

// AddWarning creates a new warning record with a freshly assigned id
func (s *WarningStore) AddWarning(ctx context.Context, userID, moderatorID, reason string) (*models.Warning, error) {
	col := s.db.GetCollection(warningsCollection)
	if col == nil || !s.db.Connected() {
		return nil, fmt.Errorf("database not connected")
	}

	id, err := s.nextWarningID(ctx)
	if err != nil {
		return nil, err
	}

	warning := &models.Warning{
		ID:          id,
		UserID:      userID,
		ModeratorID: moderatorID,
		Reason:      reason,
		CreatedAt:   time.Now().UTC(),
	}

	if _, err := col.InsertOne(ctx, warning); err != nil {
		return nil, err
	}

	return warning, nil
}

// FetchWarning returns the warning with the given id, or nil if no such
// record exists. An unknown id is a normal result, not an error.
func (s *WarningStore) FetchWarning(ctx context.Context, id int64) (*models.Warning, error) {
	col := s.db.GetCollection(warningsCollection)
	if col == nil || !s.db.Connected() {
		return nil, fmt.Errorf("database not connected")
	}

	var warning models.Warning
	err := col.FindOne(ctx, bson.M{"id": id}).Decode(&warning)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	return &warning, nil
}

// DeleteWarning hard-deletes the warning with the given id. Callers are
// expected to confirm existence with FetchWarning first.
func (s *WarningStore) DeleteWarning(ctx context.Context, id int64) error {
	col := s.db.GetCollection(warningsCollection)
	if col == nil || !s.db.Connected() {
		return fmt.Errorf("database not connected")
	}

	_, err := col.DeleteOne(ctx, bson.M{"id": id})
	return err
}

// ListWarnings returns all warnings recorded against a user, oldest first
func (s *WarningStore) ListWarnings(ctx context.Context, userID string) ([]*models.Warning, error) {
	col := s.db.GetCollection(warningsCollection)
	if col == nil || !s.db.Connected() {
		return nil, fmt.Errorf("database not connected")
	}

	opts := options.Find().SetSort(bson.M{"id": 1})
	cursor, err := col.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cursor.Close(ctx) }()

	var warnings []*models.Warning
	for cursor.Next(ctx) {
		var w models.Warning
		if err := cursor.Decode(&w); err != nil {
			continue
		}
		warnings = append(warnings, &w)
	}

	return warnings, cursor.Err()
}
