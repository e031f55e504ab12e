// Package tasks runs recurring scheduled jobs for the bot.
package tasks

import (
	"fmt"
	"time"

	"github.com/HavenStudios/HavenBotGo/pkg/logger"
	"github.com/HavenStudios/HavenBotGo/pkg/moderation"
)

const codeOfConductMessage = "**📌 Diversity Section Code of Conduct**\n\n" +
	"❤️  Be *Kind*\n" +
	"🧡  Make sure your communication invites others for discourse, not debate.\n" +
	"💛  Avoid slurs which otherize individuals or groups - safe space vibes please!\n" +
	"💚  When engaging in discourse, acknowledge others participating and actively ask questions in a charitable manner and avoid assumptions about what someone is saying about the topic.\n" +
	"💙  Avoid spreading misinformation.\n" +
	"💜  Be sincere when interacting with others, socially and in serious discourse.\n" +
	"❤️  Respect the creativity of others.\n" +
	"🧡  Actively seek to include others, especially moderators, in heated discourse for the purpose of de-escalation."

// Scheduler posts the weekly code-of-conduct broadcast to the configured
// channels every Monday at 15:00 UTC.
type Scheduler struct {
	Resolver moderation.Resolver
	Sender   moderation.ChannelSender
	Channels []string

	stop chan struct{}
}

// NewScheduler creates a Scheduler for the given broadcast channels
func NewScheduler(resolver moderation.Resolver, sender moderation.ChannelSender, channels []string) *Scheduler {
	return &Scheduler{
		Resolver: resolver,
		Sender:   sender,
		Channels: channels,
		stop:     make(chan struct{}),
	}
}

// Start launches the scheduler loop in a goroutine
func (sc *Scheduler) Start() {
	if len(sc.Channels) == 0 {
		logger.Warn("No broadcast channels configured, weekly broadcast disabled.", "Tasks")
		return
	}

	go sc.loop()
	logger.System("Weekly broadcast scheduler started.", "Tasks")
}

// Stop terminates the scheduler loop
func (sc *Scheduler) Stop() {
	close(sc.stop)
}

func (sc *Scheduler) loop() {
	for {
		next := NextRun(time.Now().UTC())
		timer := time.NewTimer(time.Until(next))

		select {
		case <-timer.C:
			sc.Broadcast()
		case <-sc.stop:
			timer.Stop()
			return
		}
	}
}

// NextRun returns the next Monday 15:00 UTC strictly after now
func NextRun(now time.Time) time.Time {
	now = now.UTC()

	next := time.Date(now.Year(), now.Month(), now.Day(), 15, 0, 0, 0, time.UTC)
	days := (int(time.Monday) - int(now.Weekday()) + 7) % 7
	next = next.AddDate(0, 0, days)

	if !next.After(now) {
		next = next.AddDate(0, 0, 7)
	}
	return next
}

// Broadcast posts the code-of-conduct message to every configured channel.
// A channel that cannot be resolved or written to is logged and skipped.
func (sc *Scheduler) Broadcast() {
	for _, channelID := range sc.Channels {
		channel := sc.Resolver.Channel(channelID)
		if channel == nil {
			logger.Error(fmt.Sprintf("Weekly broadcast: could not find channel %s!", channelID), "Tasks")
			continue
		}

		if !sc.Sender.CanSend(channel) {
			logger.Error(fmt.Sprintf("Weekly broadcast: cannot send in channel %s!", channelID), "Tasks")
			continue
		}

		if err := sc.Sender.Send(channel.ID, codeOfConductMessage); err != nil {
			logger.Error(fmt.Sprintf("Weekly broadcast: send to %s failed: %v", channelID, err), "Tasks")
		}
	}
}
