// Package mod - /mod warnings command
package mod

import (
	"context"
	"fmt"
	"time"

	"github.com/HavenStudios/HavenBotGo/pkg/discord"
	"github.com/HavenStudios/HavenBotGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// createWarningsCommand creates the /mod warnings subcommand
func createWarningsCommand() *discord.Command {
	return discord.NewCommand(
		"warnings",
		"List a user's warnings",
		"mod",
		warningsHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "User whose warnings to list",
			Required:    true,
		},
	).WithUserPermissions(discordgo.PermissionModerateMembers).RequiresDatabase()
}

// warningsHandler handles the /mod warnings command
func warningsHandler(ctx *discord.CommandContext) error {
	user := ctx.GetUserOption("user")
	if user == nil {
		return ctx.ReplyEphemeral("❌ You must specify a user.")
	}

	if err := ctx.Defer(); err != nil {
		return err
	}

	warnings, err := pipeline.Store.ListWarnings(context.Background(), user.ID)
	if err != nil {
		logger.Error(fmt.Sprintf("Listing warnings failed: %v", err), "CMD-Warnings")
		return ctx.EditReply("❌ An unexpected error occurred while fetching warnings.")
	}

	if len(warnings) == 0 {
		return ctx.EditReply(fmt.Sprintf("<@%s> has no warnings.", user.ID))
	}

	embed := &discordgo.MessageEmbed{
		Author: &discordgo.MessageEmbedAuthor{
			Name:    fmt.Sprintf("Warnings for %s", user.Username),
			IconURL: user.AvatarURL(""),
		},
		Color: 0xFF6700,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("ID: %s | Total: %d", user.ID, len(warnings)),
		},
	}

	// Embeds cap at 25 fields
	for i, warning := range warnings {
		if i >= 25 {
			break
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: fmt.Sprintf("Warning ID: %d", warning.ID),
			Value: fmt.Sprintf("**Moderator:** <@%s>\n**Reason:** %s\n**Date:** <t:%d:F>",
				warning.ModeratorID, warning.Reason, warning.CreatedAt.Unix()),
		})
	}
	embed.Timestamp = time.Now().Format(time.RFC3339)

	return ctx.EditReplyEmbed(embed)
}
