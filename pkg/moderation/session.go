// Package moderation - discordgo-backed collaborator implementations.
package moderation

import (
	"github.com/HavenStudios/HavenBotGo/pkg/config"
	"github.com/bwmarrin/discordgo"
)

// SessionResolver resolves platform objects through a discordgo session,
// consulting the session state cache before falling back to the REST API.
type SessionResolver struct {
	Session *discordgo.Session
}

// Member resolves a guild member, or nil if they could not be found
func (r *SessionResolver) Member(guildID, userID string) *discordgo.Member {
	member, err := r.Session.State.Member(guildID, userID)
	if err == nil && member != nil && member.User != nil {
		return member
	}

	member, err = r.Session.GuildMember(guildID, userID)
	if err != nil {
		return nil
	}
	return member
}

// User resolves a user by id, or nil if they could not be found
func (r *SessionResolver) User(userID string) *discordgo.User {
	user, err := r.Session.User(userID)
	if err != nil {
		return nil
	}
	return user
}

// Role resolves a guild role, or nil if it could not be found
func (r *SessionResolver) Role(guildID, roleID string) *discordgo.Role {
	role, err := r.Session.State.Role(guildID, roleID)
	if err == nil && role != nil {
		return role
	}

	roles, err := r.Session.GuildRoles(guildID)
	if err != nil {
		return nil
	}

	for _, role := range roles {
		if role.ID == roleID {
			return role
		}
	}
	return nil
}

// Channel resolves a channel by id, or nil if it could not be found
func (r *SessionResolver) Channel(channelID string) *discordgo.Channel {
	channel, err := r.Session.State.Channel(channelID)
	if err == nil && channel != nil {
		return channel
	}

	channel, err = r.Session.Channel(channelID)
	if err != nil {
		return nil
	}
	return channel
}

// SessionRoles mutates live role membership through a discordgo session
type SessionRoles struct {
	Session *discordgo.Session
}

// Has reports whether the member holds the role, from the member's role
// list as resolved for this invocation.
func (m *SessionRoles) Has(member *discordgo.Member, roleID string) bool {
	for _, id := range member.Roles {
		if id == roleID {
			return true
		}
	}
	return false
}

// Add grants the role to the member
func (m *SessionRoles) Add(guildID, userID, roleID string) error {
	return m.Session.GuildMemberRoleAdd(guildID, userID, roleID)
}

// Remove revokes the role from the member
func (m *SessionRoles) Remove(guildID, userID, roleID string) error {
	return m.Session.GuildMemberRoleRemove(guildID, userID, roleID)
}

// SessionNotifier sends direct messages through a discordgo session
type SessionNotifier struct {
	Session *discordgo.Session
}

// Notify sends a plain-text DM to the user
func (n *SessionNotifier) Notify(userID, content string) error {
	channel, err := n.Session.UserChannelCreate(userID)
	if err != nil {
		return err
	}

	_, err = n.Session.ChannelMessageSend(channel.ID, content)
	return err
}

// NotifyEmbed sends an embed DM to the user
func (n *SessionNotifier) NotifyEmbed(userID string, embed *discordgo.MessageEmbed) error {
	channel, err := n.Session.UserChannelCreate(userID)
	if err != nil {
		return err
	}

	_, err = n.Session.ChannelMessageSendEmbed(channel.ID, embed)
	return err
}

// SessionSender posts to guild channels through a discordgo session
type SessionSender struct {
	Session *discordgo.Session
}

// Send posts plain text to a channel
func (s *SessionSender) Send(channelID, content string) error {
	_, err := s.Session.ChannelMessageSend(channelID, content)
	return err
}

// SendEmbed posts an embed to a channel
func (s *SessionSender) SendEmbed(channelID string, embed *discordgo.MessageEmbed) error {
	_, err := s.Session.ChannelMessageSendEmbed(channelID, embed)
	return err
}

// CanSend reports whether the bot can send messages in the channel
func (s *SessionSender) CanSend(channel *discordgo.Channel) bool {
	if channel.Type != discordgo.ChannelTypeGuildText && channel.Type != discordgo.ChannelTypeGuildNews {
		return false
	}

	if s.Session.State == nil || s.Session.State.User == nil {
		return false
	}

	perms, err := s.Session.UserChannelPermissions(s.Session.State.User.ID, channel.ID)
	if err != nil {
		return false
	}

	return perms&discordgo.PermissionSendMessages != 0
}

// NewSessionPipeline wires a Pipeline to a live discordgo session
func NewSessionPipeline(session *discordgo.Session, store WarningStore, users UserTracker, ids config.IDs, events Publisher) *Pipeline {
	return &Pipeline{
		Store:    store,
		Users:    users,
		Resolver: &SessionResolver{Session: session},
		Roles:    &SessionRoles{Session: session},
		Notifier: &SessionNotifier{Session: session},
		Sender:   &SessionSender{Session: session},
		Events:   events,
		IDs:      ids,
	}
}
