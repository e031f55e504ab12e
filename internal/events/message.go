// Package events provides event handlers for message events
package events

import (
	"fmt"

	"github.com/HavenStudios/HavenBotGo/pkg/discord"
	"github.com/HavenStudios/HavenBotGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// RegisterMessageEvents registers all message-related event handlers
func RegisterMessageEvents(client *discord.ExtendedClient) {
	client.Session.AddHandler(onMessageCreate)
}

// onMessageCreate is called when a new message is created
func onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}

	// Prefix commands
	if router != nil {
		router.Handle(s, m)
	}

	// Respond to direct mentions of the bot
	for _, mention := range m.Mentions {
		if s.State.User != nil && mention.ID == s.State.User.ID {
			embed := &discordgo.MessageEmbed{
				Title:       "👋 Hi!",
				Description: "Use **slash (/)** commands to interact with me.\nType `/help` to see all available commands.",
				Color:       0x3498db,
			}
			_, err := s.ChannelMessageSendEmbed(m.ChannelID, embed)
			if err != nil {
				logger.Error(fmt.Sprintf("Error sending mention reply: %v", err), "Message")
			}
			break
		}
	}
}
