// Package textcmd routes prefix text commands (e.g. "?warn @user reason")
// to the same moderation pipeline the slash commands use.
package textcmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/HavenStudios/HavenBotGo/pkg/errors"
	"github.com/HavenStudios/HavenBotGo/pkg/logger"
	"github.com/HavenStudios/HavenBotGo/pkg/moderation"
	"github.com/bwmarrin/discordgo"
)

const (
	emojiSuccess = "✅"
	emojiFailure = "❌"
)

// Router dispatches prefix commands from message content
type Router struct {
	Pipeline *moderation.Pipeline
	Prefix   string
}

// New creates a Router with the given prefix
func New(pipeline *moderation.Pipeline, prefix string) *Router {
	return &Router{Pipeline: pipeline, Prefix: prefix}
}

// Handle is the MessageCreate handler for prefix commands
func (r *Router) Handle(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || m.GuildID == "" {
		return
	}

	name, args, ok := r.Parse(m.Content)
	if !ok {
		return
	}

	perms, err := s.UserChannelPermissions(m.Author.ID, m.ChannelID)
	if err != nil || perms&discordgo.PermissionModerateMembers == 0 {
		return
	}

	go func() {
		defer errors.RecoverMiddleware()()

		switch name {
		case "warn":
			r.handleWarn(s, m, args)
		case "deletewarning", "delwarn":
			r.handleDeleteWarning(s, m, args)
		case "trusted", "trust", "t":
			r.handleTrusted(s, m, args)
		case "warnings":
			r.handleWarnings(s, m, args)
		}
	}()
}

// Parse splits a prefixed message into a lowercase command name and its
// arguments. ok is false when the message is not a prefix command.
func (r *Router) Parse(content string) (name string, args []string, ok bool) {
	if !strings.HasPrefix(content, r.Prefix) {
		return "", nil, false
	}

	fields := strings.Fields(content[len(r.Prefix):])
	if len(fields) == 0 {
		return "", nil, false
	}

	return strings.ToLower(fields[0]), fields[1:], true
}

// ParseUserID extracts a user id from a mention (<@id> or <@!id>) or a raw
// snowflake.
func ParseUserID(token string) (string, bool) {
	token = strings.TrimPrefix(token, "<@")
	token = strings.TrimPrefix(token, "!")
	token = strings.TrimSuffix(token, ">")

	if token == "" {
		return "", false
	}
	for _, c := range token {
		if c < '0' || c > '9' {
			return "", false
		}
	}
	return token, true
}

func (r *Router) handleWarn(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if len(args) < 1 {
		r.reply(s, m, "You must provide a user to warn!")
		r.react(s, m, emojiFailure)
		return
	}

	userID, ok := ParseUserID(args[0])
	if !ok {
		r.reply(s, m, "Could not understand that user, provide a mention or an id.")
		r.react(s, m, emojiFailure)
		return
	}

	reason := strings.Join(args[1:], " ")
	if reason == "" {
		r.reply(s, m, "You must provide a reason for the warning!")
		r.react(s, m, emojiFailure)
		return
	}

	info, err := r.Pipeline.Warn(context.Background(), m.GuildID, userID, m.Author.ID, reason)
	if err != nil {
		logger.Error(fmt.Sprintf("Warn failed: %v", err), "TextCmd")
		r.react(s, m, emojiFailure)
		return
	}

	if info.Success {
		r.react(s, m, emojiSuccess)
	} else {
		r.react(s, m, emojiFailure)
	}
}

func (r *Router) handleDeleteWarning(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if len(args) < 1 {
		r.reply(s, m, "You must provide the id of the warning to delete!")
		r.react(s, m, emojiFailure)
		return
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		r.reply(s, m, "Could not understand that warning id, provide a number.")
		r.react(s, m, emojiFailure)
		return
	}

	info, err := r.Pipeline.DeleteWarning(context.Background(), id, m.GuildID, m.Author.ID)
	if err != nil {
		logger.Error(fmt.Sprintf("Delete warning failed: %v", err), "TextCmd")
		r.react(s, m, emojiFailure)
		return
	}

	r.replyFull(s, m, info.Message, info.Embeds)
	if !info.Success {
		r.react(s, m, emojiFailure)
	}
}

func (r *Router) handleTrusted(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if len(args) < 1 {
		r.reply(s, m, "You must provide a user!")
		r.react(s, m, emojiFailure)
		return
	}

	userID, ok := ParseUserID(args[0])
	if !ok {
		r.reply(s, m, "Could not understand that user, provide a mention or an id.")
		r.react(s, m, emojiFailure)
		return
	}

	info, err := r.Pipeline.ToggleTrustedRole(context.Background(), m.GuildID, userID, m.Author.ID)
	if err != nil {
		logger.Error(fmt.Sprintf("Trusted toggle failed: %v", err), "TextCmd")
		r.react(s, m, emojiFailure)
		return
	}

	r.reply(s, m, info.Message)
	if info.Success {
		r.react(s, m, emojiSuccess)
	} else {
		r.react(s, m, emojiFailure)
	}
}

func (r *Router) handleWarnings(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if len(args) < 1 {
		r.reply(s, m, "You must provide a user!")
		r.react(s, m, emojiFailure)
		return
	}

	userID, ok := ParseUserID(args[0])
	if !ok {
		r.reply(s, m, "Could not understand that user, provide a mention or an id.")
		r.react(s, m, emojiFailure)
		return
	}

	warnings, err := r.Pipeline.Store.ListWarnings(context.Background(), userID)
	if err != nil {
		logger.Error(fmt.Sprintf("Listing warnings failed: %v", err), "TextCmd")
		r.react(s, m, emojiFailure)
		return
	}

	if len(warnings) == 0 {
		r.reply(s, m, fmt.Sprintf("<@%s> has no warnings.", userID))
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Warnings for <@%s>:\n", userID)
	for i, warning := range warnings {
		if i >= 20 {
			fmt.Fprintf(&b, "...and %d more.", len(warnings)-i)
			break
		}
		fmt.Fprintf(&b, "`%d` - %s (by <@%s>, <t:%d:d>)\n",
			warning.ID, warning.Reason, warning.ModeratorID, warning.CreatedAt.Unix())
	}
	r.reply(s, m, b.String())
}

func (r *Router) reply(s *discordgo.Session, m *discordgo.MessageCreate, content string) {
	_, err := s.ChannelMessageSendReply(m.ChannelID, content, m.Reference())
	if err != nil {
		logger.Debug(fmt.Sprintf("Could not reply in %s: %v", m.ChannelID, err), "TextCmd")
	}
}

func (r *Router) replyFull(s *discordgo.Session, m *discordgo.MessageCreate, content string, embeds []*discordgo.MessageEmbed) {
	_, err := s.ChannelMessageSendComplex(m.ChannelID, &discordgo.MessageSend{
		Content:   content,
		Embeds:    embeds,
		Reference: m.Reference(),
	})
	if err != nil {
		logger.Debug(fmt.Sprintf("Could not reply in %s: %v", m.ChannelID, err), "TextCmd")
	}
}

func (r *Router) react(s *discordgo.Session, m *discordgo.MessageCreate, emoji string) {
	if err := s.MessageReactionAdd(m.ChannelID, m.ID, emoji); err != nil {
		logger.Debug(fmt.Sprintf("Could not react in %s: %v", m.ChannelID, err), "TextCmd")
	}
}
