package models

import "time"

// TrackedUser is the user-tracking document upserted whenever a member
// interacts with a moderation command, so actions can always be attributed.
type TrackedUser struct {
	UserID   string    `bson:"userId" json:"userId"`
	Username string    `bson:"username" json:"username"`
	Nickname string    `bson:"nickname,omitempty" json:"nickname,omitempty"`
	LastSeen time.Time `bson:"lastSeen" json:"lastSeen"`
}
