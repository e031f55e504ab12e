package models

import "time"

// Warning is a persisted record of a moderator sanctioning a user.
// Records are immutable once created; the only lifecycle operation after
// creation is a hard delete.
type Warning struct {
	ID          int64     `bson:"id" json:"id"`
	UserID      string    `bson:"userId" json:"userId"`
	ModeratorID string    `bson:"moderatorId" json:"moderatorId"`
	Reason      string    `bson:"reason" json:"reason"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

// Counter backs the integer id sequence for the warnings collection.
// Ids are monotonic but not required to be contiguous.
type Counter struct {
	ID  string `bson:"_id" json:"id"`
	Seq int64  `bson:"seq" json:"seq"`
}
