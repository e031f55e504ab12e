// Package events provides a registry for organizing bot events.
// Events are organized by category (ready, guild, member, message)
package events

import (
	"github.com/HavenStudios/HavenBotGo/internal/textcmd"
	"github.com/HavenStudios/HavenBotGo/pkg/discord"
	"github.com/HavenStudios/HavenBotGo/pkg/logger"
	"github.com/HavenStudios/HavenBotGo/pkg/moderation"
)

var (
	tracker moderation.UserTracker
	router  *textcmd.Router
)

// RegisterAll registers all events with the Discord client
func RegisterAll(client *discord.ExtendedClient, users moderation.UserTracker, textRouter *textcmd.Router) {
	logger.System("📋 Registering bot events...", "Events")

	tracker = users
	router = textRouter

	// Ready event (bot startup)
	RegisterReadyEvent(client)

	// Guild events (server join/leave)
	RegisterGuildEvents(client)

	// Member events (join/update)
	RegisterMemberEvents(client)

	// Message events (prefix commands)
	RegisterMessageEvents(client)

	logger.Success("✅ All events registered.", "Events")
}
