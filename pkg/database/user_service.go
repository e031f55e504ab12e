// Package database provides the user-tracking service.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/HavenStudios/HavenBotGo/pkg/models"
	"github.com/bwmarrin/discordgo"
	"go.mongodb.org/mongo-driver/bson"
)

// UserService upserts member activity into the user-tracking collection so
// that moderation actions can always be attributed to a known user.
type UserService struct {
	dm *DataManager[models.TrackedUser]
}

// NewUserService creates a UserService backed by the shared user DataManager
func NewUserService(dm *DataManager[models.TrackedUser]) *UserService {
	return &UserService{dm: dm}
}

// Touch records that the member was seen now, creating the tracking
// document if it does not exist yet.
func (s *UserService) Touch(ctx context.Context, member *discordgo.Member) error {
	if member == nil || member.User == nil {
		return fmt.Errorf("member has no user")
	}
	if s.dm == nil {
		return fmt.Errorf("user data manager not initialized")
	}

	doc := models.TrackedUser{
		UserID:   member.User.ID,
		Username: member.User.Username,
		Nickname: member.Nick,
		LastSeen: time.Now().UTC(),
	}

	_, err := s.dm.Set(bson.M{"userId": member.User.ID}, doc)
	return err
}
