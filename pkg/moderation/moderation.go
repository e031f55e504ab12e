// Package moderation implements the moderation action pipeline: warning a
// user, deleting a warning, and toggling the trusted role. Every action
// follows the same shape: resolve identities, apply a single authoritative
// mutation, notify the target on a best-effort basis, and post an audit
// record to the mod log channel. The mutation and the two best-effort steps
// are not transactional with each other; partial failures are disclosed in
// the outcome message rather than rolled back or hidden.
package moderation

import (
	"context"
	"time"

	"github.com/HavenStudios/HavenBotGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

// Outcome is the single result object produced by one pipeline invocation.
// Message is populated on every exit path. Success is true only once the
// authoritative mutation has completed; notification and audit-log failures
// never flip it back to false.
type Outcome struct {
	Message string
	Success bool
	Embeds  []*discordgo.MessageEmbed
}

// WarningStore is the record store for warnings. FetchWarning returns nil
// for an unknown id; that is a normal result, not an error. Errors from any
// method mean the store itself is unreachable and are fatal to the action.
type WarningStore interface {
	AddWarning(ctx context.Context, userID, moderatorID, reason string) (*models.Warning, error)
	FetchWarning(ctx context.Context, id int64) (*models.Warning, error)
	DeleteWarning(ctx context.Context, id int64) error
	ListWarnings(ctx context.Context, userID string) ([]*models.Warning, error)
}

// UserTracker upserts a member into the user-tracking store so actions can
// be attributed to them.
type UserTracker interface {
	Touch(ctx context.Context, member *discordgo.Member) error
}

// Resolver looks up live platform objects. Each method consults the client
// cache first and falls back to a remote fetch; nil means the entity could
// not be resolved, which is a normal outcome the pipeline branches on.
// A miss is never retried.
type Resolver interface {
	Member(guildID, userID string) *discordgo.Member
	User(userID string) *discordgo.User
	Role(guildID, roleID string) *discordgo.Role
	Channel(channelID string) *discordgo.Channel
}

// RoleManager reads and mutates live role membership. Has reads the
// member's role list as resolved for this invocation; Add and Remove are
// single platform mutations whose failure is fatal to the action.
type RoleManager interface {
	Has(member *discordgo.Member, roleID string) bool
	Add(guildID, userID, roleID string) error
	Remove(guildID, userID, roleID string) error
}

// Notifier sends a direct message to a user. Failure is expected (closed
// DMs, user unreachable) and callers treat it as non-fatal.
type Notifier interface {
	Notify(userID, content string) error
	NotifyEmbed(userID string, embed *discordgo.MessageEmbed) error
}

// ChannelSender posts messages to guild channels and reports whether the
// bot is able to send in a resolved channel.
type ChannelSender interface {
	Send(channelID, content string) error
	SendEmbed(channelID string, embed *discordgo.MessageEmbed) error
	CanSend(channel *discordgo.Channel) bool
}

// ActionEvent describes a completed moderation action for external
// consumers. Published best-effort; delivery is never awaited on.
type ActionEvent struct {
	Action      string    `json:"action"`
	GuildID     string    `json:"guildId"`
	TargetID    string    `json:"targetId"`
	ModeratorID string    `json:"moderatorId"`
	Success     bool      `json:"success"`
	Timestamp   time.Time `json:"timestamp"`
}

// Publisher publishes action events to an external bus
type Publisher interface {
	Publish(event ActionEvent) error
}
