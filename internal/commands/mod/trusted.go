// Package mod - /mod trusted command
package mod

import (
	"context"
	"fmt"

	"github.com/HavenStudios/HavenBotGo/pkg/discord"
	"github.com/HavenStudios/HavenBotGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// createTrustedCommand creates the /mod trusted subcommand
func createTrustedCommand() *discord.Command {
	return discord.NewCommand(
		"trusted",
		"Give or remove the trusted role from a user",
		"mod",
		trustedHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "User to toggle the trusted role for",
			Required:    true,
		},
	).WithUserPermissions(discordgo.PermissionModerateMembers)
}

// trustedHandler handles the /mod trusted command
func trustedHandler(ctx *discord.CommandContext) error {
	user := ctx.GetUserOption("user")
	if user == nil {
		return ctx.ReplyEphemeral("❌ You must specify a user.")
	}

	if err := ctx.Defer(); err != nil {
		return err
	}

	info, err := pipeline.ToggleTrustedRole(context.Background(), ctx.Interaction.GuildID, user.ID, ctx.User().ID)
	if err != nil {
		logger.Error(fmt.Sprintf("Trusted toggle failed: %v", err), "CMD-Trusted")
		return ctx.EditReply("❌ An unexpected error occurred while updating the role.")
	}

	return ctx.EditReplyFull(info.Message, info.Embeds)
}
