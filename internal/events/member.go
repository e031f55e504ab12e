// Package events provides event handlers for member events
package events

import (
	"context"
	"fmt"

	"github.com/HavenStudios/HavenBotGo/pkg/discord"
	"github.com/HavenStudios/HavenBotGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// RegisterMemberEvents registers all member-related event handlers
func RegisterMemberEvents(client *discord.ExtendedClient) {
	client.Session.AddHandler(onGuildMemberAdd)
	client.Session.AddHandler(onGuildMemberUpdate)
}

// onGuildMemberAdd is called when a new member joins the server
func onGuildMemberAdd(s *discordgo.Session, m *discordgo.GuildMemberAdd) {
	logger.Info(fmt.Sprintf("👋 New member: %s in guild %s", m.User.Username, m.GuildID), "Member")

	if tracker == nil {
		return
	}

	if err := tracker.Touch(context.Background(), m.Member); err != nil {
		logger.Error(fmt.Sprintf("Error tracking member %s: %v", m.User.ID, err), "Member")
	}
}

// onGuildMemberUpdate keeps tracked nicknames current
func onGuildMemberUpdate(s *discordgo.Session, m *discordgo.GuildMemberUpdate) {
	if m.BeforeUpdate != nil && m.BeforeUpdate.Nick == m.Nick {
		return
	}

	if tracker == nil {
		return
	}

	if err := tracker.Touch(context.Background(), m.Member); err != nil {
		logger.Debug(fmt.Sprintf("Error tracking member update for %s: %v", m.User.ID, err), "Member")
	}
}
