// Package mod - /mod deletewarning command
package mod

import (
	"context"
	"fmt"

	"github.com/HavenStudios/HavenBotGo/pkg/discord"
	"github.com/HavenStudios/HavenBotGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// createDeleteWarningCommand creates the /mod deletewarning subcommand
func createDeleteWarningCommand() *discord.Command {
	return discord.NewCommand(
		"deletewarning",
		"Delete a warning by id",
		"mod",
		deleteWarningHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "id",
			Description: "Id of the warning to delete",
			Required:    true,
		},
	).WithUserPermissions(discordgo.PermissionModerateMembers).RequiresDatabase()
}

// deleteWarningHandler handles the /mod deletewarning command
func deleteWarningHandler(ctx *discord.CommandContext) error {
	id := ctx.GetIntOption("id")
	if id <= 0 {
		return ctx.ReplyEphemeral("❌ You must specify a valid warning id.")
	}

	if err := ctx.Defer(); err != nil {
		return err
	}

	info, err := pipeline.DeleteWarning(context.Background(), id, ctx.Interaction.GuildID, ctx.User().ID)
	if err != nil {
		logger.Error(fmt.Sprintf("Delete warning failed: %v", err), "CMD-DeleteWarning")
		return ctx.EditReply("❌ An unexpected error occurred while deleting the warning.")
	}

	return ctx.EditReplyFull(info.Message, info.Embeds)
}
