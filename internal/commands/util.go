// Package commands provides utility commands for the bot.
package commands

import (
	"fmt"

	"github.com/HavenStudios/HavenBotGo/pkg/database"
	"github.com/HavenStudios/HavenBotGo/pkg/discord"
)

// RegisterUtilCommands registers all utility commands
func RegisterUtilCommands(client *discord.ExtendedClient) {
	// Ping command
	pingCmd := discord.NewCommand(
		"ping",
		"Check the bot's latency",
		"util",
		func(ctx *discord.CommandContext) error {
			latency := ctx.Client.Session.HeartbeatLatency().Milliseconds()
			return ctx.Reply(fmt.Sprintf("🏓 Pong! Latency: %dms", latency))
		},
	)
	client.CommandHandler.RegisterCommand(pingCmd)

	// Status command
	statusCmd := discord.NewCommand(
		"status",
		"Show the bot's status",
		"util",
		func(ctx *discord.CommandContext) error {
			db := database.Get()
			dbStatus, _ := db.GetStatus()

			return ctx.Reply(fmt.Sprintf(
				"📊 **Bot Status**\n"+
					"• Bot: 🟢 Online\n"+
					"• Database: %s\n"+
					"• Guilds: %d",
				dbStatus,
				ctx.Client.GuildCount(),
			))
		},
	)
	client.CommandHandler.RegisterCommand(statusCmd)

	// Help command
	helpCmd := discord.NewCommand(
		"help",
		"Show help information",
		"util",
		func(ctx *discord.CommandContext) error {
			return ctx.Reply(
				"📖 **HavenBot Go Help**\n\n" +
					"**Available commands:**\n" +
					"• `/ping` - Check the latency\n" +
					"• `/status` - Bot status\n" +
					"• `/mod warn <user> <reason>` - Warn a user\n" +
					"• `/mod deletewarning <id>` - Delete a warning\n" +
					"• `/mod warnings <user>` - List a user's warnings\n" +
					"• `/mod trusted <user>` - Toggle the trusted role",
			)
		},
	)
	client.CommandHandler.RegisterCommand(helpCmd)
}
