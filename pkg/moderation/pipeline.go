// Package moderation - the action pipeline orchestrator.
package moderation

import (
	"context"
	"fmt"
	"time"

	"github.com/HavenStudios/HavenBotGo/pkg/config"
	"github.com/HavenStudios/HavenBotGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// auditResult reports what happened when posting to the mod log channel.
// The mutation has already been committed by the time logging is attempted,
// so none of these values ever fail the action.
type auditResult int

const (
	auditLogged auditResult = iota
	auditChannelMissing
	auditNoPermission
	auditSendFailed
)

// Pipeline composes the collaborators into the three moderation actions.
// Events is optional; every other field must be set.
type Pipeline struct {
	Store    WarningStore
	Users    UserTracker
	Resolver Resolver
	Roles    RoleManager
	Notifier Notifier
	Sender   ChannelSender
	Events   Publisher
	IDs      config.IDs
}

// New creates a Pipeline from explicit collaborators
func New(store WarningStore, users UserTracker, resolver Resolver, roles RoleManager, notifier Notifier, sender ChannelSender, ids config.IDs) *Pipeline {
	return &Pipeline{
		Store:    store,
		Users:    users,
		Resolver: resolver,
		Roles:    roles,
		Notifier: notifier,
		Sender:   sender,
		IDs:      ids,
	}
}

// Warn records a warning against a user, DMs them the reason, and posts the
// action to the mod log channel. The returned error is only non-nil for
// store faults; every resolvable condition is reported through the Outcome.
func (p *Pipeline) Warn(ctx context.Context, guildID, userID, modID, reason string) (Outcome, error) {
	info := Outcome{}

	// Mod's guild member, needed for attribution
	mod := p.Resolver.Member(guildID, modID)
	if mod == nil {
		info.Message = "Error fetching mod!"
		return info, nil
	}

	if err := p.Users.Touch(ctx, mod); err != nil {
		return Outcome{}, err
	}

	user := p.Resolver.User(userID)
	if user == nil {
		info.Message = "Error fetching user"
		return info, nil
	}

	warning, err := p.Store.AddWarning(ctx, userID, modID, reason)
	if err != nil {
		return Outcome{}, err
	}

	info.Message = fmt.Sprintf("Warned <@%s>", userID)
	info.Success = true
	p.publish("warn", guildID, userID, modID)

	// DM the reason; a closed DM is not reported back to the mod
	if err := p.Notifier.NotifyEmbed(userID, warnedEmbed(user, reason)); err != nil {
		logger.Debug(fmt.Sprintf("Warn: could not DM user %s: %v", userID, err), "Pipeline")
	}

	switch p.logAction(warnLogEmbed(user, modID, reason, warning.ID)) {
	case auditChannelMissing:
		logger.Error("Warn: could not fetch the log channel", "Pipeline")
		info.Message = fmt.Sprintf("Warned <@%s> but could not find the log channel.", userID)
	case auditNoPermission:
		logger.Error("Warn: the bot does not have permission to send in the logs channel!", "Pipeline")
		info.Message = fmt.Sprintf("Warned <@%s>, but the bot does not have permission to send in the logs channel!", userID)
	case auditSendFailed:
		info.Message = fmt.Sprintf("Warned <@%s>, but posting to the logs channel failed!", userID)
	}

	return info, nil
}

// DeleteWarning hard-deletes a warning by id. The id check is the single
// validation gate; once the delete has committed the outcome stays
// successful no matter what the downstream steps report.
func (p *Pipeline) DeleteWarning(ctx context.Context, id int64, guildID, modID string) (Outcome, error) {
	info := Outcome{}

	warning, err := p.Store.FetchWarning(ctx, id)
	if err != nil {
		return Outcome{}, err
	}

	if warning == nil {
		info.Message = fmt.Sprintf("Warning ID `%d` not found!", id)
		return info, nil
	}

	if err := p.Store.DeleteWarning(ctx, id); err != nil {
		return Outcome{}, err
	}
	info.Success = true
	p.publish("deletewarning", guildID, warning.UserID, modID)

	user := p.Resolver.User(warning.UserID)
	if user == nil {
		info.Message = fmt.Sprintf("Deleted warning ID `%d`, but the user could not be found!", id)
		return info, nil
	}

	switch p.logAction(warningDeletedLogEmbed(user, modID, id)) {
	case auditChannelMissing:
		logger.Error("Delete Warning: could not fetch the log channel", "Pipeline")
		info.Message = fmt.Sprintf("Deleted warning for <@%s> (Warning ID: %d) but could not find the log channel.", user.ID, id)
	case auditNoPermission:
		logger.Error("Delete Warning: the bot does not have permission to send in the logs channel!", "Pipeline")
		info.Message = fmt.Sprintf("Deleted warning for <@%s> (Warning ID: %d) but this hasn't been logged as the bot does not have permission to send logs!", user.ID, id)
	case auditSendFailed:
		info.Message = fmt.Sprintf("Deleted warning for <@%s> (Warning ID: %d) but posting to the logs channel failed!", user.ID, id)
	default:
		info.Message = fmt.Sprintf("Deleted warning for <@%s>", user.ID)
	}

	return info, nil
}

// ToggleTrustedRole grants or revokes the trusted role depending solely on
// the member's live role state, re-read at invocation time. Removal is only
// logged; granting is logged and announced to the target with the server
// rules, with a reminder folded into the outcome when the DM fails.
func (p *Pipeline) ToggleTrustedRole(ctx context.Context, guildID, userID, modID string) (Outcome, error) {
	info := Outcome{}

	member := p.Resolver.Member(guildID, userID)
	trusted := p.Resolver.Role(guildID, p.IDs.TrustedRole)

	if member == nil {
		info.Message = "Error fetching guild member for the user!"
		return info, nil
	}

	if trusted == nil {
		info.Message = "Error fetching the trusted role!"
		return info, nil
	}

	if p.Roles.Has(member, trusted.ID) {
		// Remove the trusted role from the user
		if err := p.Roles.Remove(guildID, userID, trusted.ID); err != nil {
			return Outcome{}, err
		}
		info.Success = true
		p.publish("trusted.remove", guildID, userID, modID)

		info.Message = fmt.Sprintf("Removed the %s role from <@%s>", trusted.Name, userID)
		info.Message += p.roleLogCaveat(roleRemoveLogEmbed(userID, modID, trusted))
		return info, nil
	}

	// Give the trusted role to the user
	if err := p.Roles.Add(guildID, userID, trusted.ID); err != nil {
		return Outcome{}, err
	}
	info.Success = true
	p.publish("trusted.add", guildID, userID, modID)

	info.Message = fmt.Sprintf("Gave <@%s> the %s role!", userID, trusted.Name)
	info.Message += p.roleLogCaveat(roleAddLogEmbed(userID, modID, trusted))

	if err := p.Notifier.Notify(userID, trustedWelcomeMessage(trusted.Name, modID)); err != nil {
		info.Message += " And just a friendly reminder of the rules, do not post anything NSFW or animal products."
	}

	return info, nil
}

// roleLogCaveat posts the role-change audit embed and returns the clause to
// append to the outcome message, empty when logging succeeded.
func (p *Pipeline) roleLogCaveat(embed *discordgo.MessageEmbed) string {
	switch p.logAction(embed) {
	case auditChannelMissing:
		logger.Error("Trusted: could not fetch the log channel", "Pipeline")
		return " But the role change could not be logged as the log channel could not be found!"
	case auditNoPermission:
		logger.Error("Trusted: the bot does not have permission to send in the logs channel!", "Pipeline")
		return " But the role change could not be logged as the bot does not have permission to send in the logs channel!"
	case auditSendFailed:
		return " But posting the role change to the logs channel failed!"
	}
	return ""
}

// logAction resolves the mod log channel, checks that the bot can send in
// it, and posts the audit embed. Resolution and validation happen in this
// order for every action; the authoritative mutation has always already
// happened by the time this runs.
func (p *Pipeline) logAction(embed *discordgo.MessageEmbed) auditResult {
	channel := p.Resolver.Channel(p.IDs.ModLogChannel)
	if channel == nil {
		return auditChannelMissing
	}

	if !p.Sender.CanSend(channel) {
		return auditNoPermission
	}

	if err := p.Sender.SendEmbed(channel.ID, embed); err != nil {
		logger.Error(fmt.Sprintf("Failed to send audit log: %v", err), "Pipeline")
		return auditSendFailed
	}

	return auditLogged
}

// publish emits the action event when a publisher is configured. Delivery
// failures are logged and dropped.
func (p *Pipeline) publish(action, guildID, targetID, modID string) {
	if p.Events == nil {
		return
	}

	event := ActionEvent{
		Action:      action,
		GuildID:     guildID,
		TargetID:    targetID,
		ModeratorID: modID,
		Success:     true,
		Timestamp:   time.Now().UTC(),
	}

	if err := p.Events.Publish(event); err != nil {
		logger.Debug(fmt.Sprintf("Failed to publish %s event: %v", action, err), "Pipeline")
	}
}
