// Package commands provides a registry for organizing bot commands.
// Commands are organized in subdirectories by category (util, mod, dev)
package commands

import (
	"github.com/HavenStudios/HavenBotGo/internal/commands/dev"
	"github.com/HavenStudios/HavenBotGo/internal/commands/mod"
	"github.com/HavenStudios/HavenBotGo/pkg/discord"
	"github.com/HavenStudios/HavenBotGo/pkg/moderation"
)

// RegisterAll registers all commands with the Discord client
func RegisterAll(client *discord.ExtendedClient, pipeline *moderation.Pipeline) {
	// Utility commands
	RegisterUtilCommands(client)

	// Moderation commands (/mod warn, /mod deletewarning, /mod warnings, /mod trusted)
	mod.RegisterModCommands(client, pipeline)

	// Dev commands (/dev eval), registered only in the dev guild
	dev.Register(client)
}
