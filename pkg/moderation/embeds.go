// Package moderation - audit and notification embed builders.
package moderation

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
)

const (
	colorWarn       = 0xFF6700 // Orange
	colorWarnDelete = 0x28A745 // Green
	colorRoleAdd    = 0x28A745 // Green
	colorRoleRemove = 0xFF6700 // Orange
)

// warnedEmbed is the DM sent to a user when they are warned
func warnedEmbed(user *discordgo.User, reason string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Color: colorWarn,
		Author: &discordgo.MessageEmbedAuthor{
			Name:    "You've been warned!",
			IconURL: user.AvatarURL(""),
		},
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Reason", Value: reason},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

// warnLogEmbed is the audit record posted to the mod log channel for a warning
func warnLogEmbed(user *discordgo.User, modID, reason string, warningID int64) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Color: colorWarn,
		Author: &discordgo.MessageEmbedAuthor{
			Name:    fmt.Sprintf("Warned %s", user.Username),
			IconURL: user.AvatarURL(""),
		},
		Fields: []*discordgo.MessageEmbedField{
			{Name: "User", Value: fmt.Sprintf("<@%s>", user.ID), Inline: true},
			{Name: "Moderator", Value: fmt.Sprintf("<@%s>", modID), Inline: true},
			{Name: "Reason", Value: reason},
		},
		Timestamp: time.Now().Format(time.RFC3339),
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("ID: %s | Warning ID: %d", user.ID, warningID),
		},
	}
}

// warningDeletedLogEmbed is the audit record for a deleted warning
func warningDeletedLogEmbed(user *discordgo.User, modID string, warningID int64) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Color: colorWarnDelete,
		Author: &discordgo.MessageEmbedAuthor{
			Name:    fmt.Sprintf("Removed warning for %s", user.Username),
			IconURL: user.AvatarURL(""),
		},
		Fields: []*discordgo.MessageEmbedField{
			{Name: "User", Value: fmt.Sprintf("<@%s>", user.ID), Inline: true},
			{Name: "Moderator", Value: fmt.Sprintf("<@%s>", modID), Inline: true},
			{Name: "Warning ID", Value: fmt.Sprintf("%d", warningID), Inline: true},
		},
		Timestamp: time.Now().Format(time.RFC3339),
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("ID: %s", user.ID),
		},
	}
}

// roleAddLogEmbed is the audit record for granting a role
func roleAddLogEmbed(userID, modID string, role *discordgo.Role) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Color: colorRoleAdd,
		Title: fmt.Sprintf("Gave the %s role", role.Name),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "User", Value: fmt.Sprintf("<@%s>", userID), Inline: true},
			{Name: "Moderator", Value: fmt.Sprintf("<@%s>", modID), Inline: true},
		},
		Timestamp: time.Now().Format(time.RFC3339),
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("ID: %s", userID),
		},
	}
}

// roleRemoveLogEmbed is the audit record for revoking a role
func roleRemoveLogEmbed(userID, modID string, role *discordgo.Role) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Color: colorRoleRemove,
		Title: fmt.Sprintf("Removed the %s role", role.Name),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "User", Value: fmt.Sprintf("<@%s>", userID), Inline: true},
			{Name: "Moderator", Value: fmt.Sprintf("<@%s>", modID), Inline: true},
		},
		Timestamp: time.Now().Format(time.RFC3339),
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("ID: %s", userID),
		},
	}
}

// trustedWelcomeMessage is the DM sent when a user is given the trusted role
func trustedWelcomeMessage(roleName, modID string) string {
	return fmt.Sprintf("You have been given the %s role by <@%s>!", roleName, modID) +
		"\n\nThis role allows you to post attachments to the server and stream in VCs." +
		"\nMake sure that you follow the rules, especially by **not** posting anything **NSFW**, and **no animal products or consumption of animal products**." +
		fmt.Sprintf("\n\nNot following these rules will result in the **immediate removal** of the %s role.", roleName)
}
