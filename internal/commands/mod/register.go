// Package mod provides moderation commands organized as subcommands under /mod
// Each command is in its own file for better organization
package mod

import (
	"github.com/HavenStudios/HavenBotGo/pkg/discord"
	"github.com/HavenStudios/HavenBotGo/pkg/moderation"
)

// pipeline is shared by every moderation command
var pipeline *moderation.Pipeline

// RegisterModCommands registers all moderation commands as /mod subcommands
func RegisterModCommands(client *discord.ExtendedClient, p *moderation.Pipeline) {
	pipeline = p

	warnCmd := createWarnCommand()
	deleteWarningCmd := createDeleteWarningCommand()
	warningsCmd := createWarningsCommand()
	trustedCmd := createTrustedCommand()

	modGroup := client.CommandHandler.BuildCommandGroup(
		"mod",
		"Moderation commands",
		warnCmd,
		deleteWarningCmd,
		warningsCmd,
		trustedCmd,
	)

	client.CommandHandler.AddGlobalCommand(modGroup)
}
