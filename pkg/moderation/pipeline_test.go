package moderation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/HavenStudios/HavenBotGo/pkg/config"
	"github.com/HavenStudios/HavenBotGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

const (
	testGuildID   = "100"
	testUserID    = "200"
	testModID     = "300"
	testRoleID    = "400"
	testLogChanID = "500"
)

type fakeTracker struct {
	err     error
	touched []string
}

func (t *fakeTracker) Touch(ctx context.Context, member *discordgo.Member) error {
	if t.err != nil {
		return t.err
	}
	t.touched = append(t.touched, member.User.ID)
	return nil
}

// fakeWorld stands in for the live platform. Role state is re-read under
// the mutex on every member resolution, so toggles observe prior mutations.
type fakeWorld struct {
	mu       sync.Mutex
	hasRole  map[string]bool
	missing  map[string]bool

	channelMissing bool
	noSendPerm     bool
	sendFail       bool
	dmFail         bool
	roleErr        error

	dms       []string
	dmEmbeds  []*discordgo.MessageEmbed
	logEmbeds []*discordgo.MessageEmbed
}

func newFakeWorld() *fakeWorld {
	return &fakeWorld{
		hasRole: make(map[string]bool),
		missing: make(map[string]bool),
	}
}

func (w *fakeWorld) Member(guildID, userID string) *discordgo.Member {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.missing[userID] {
		return nil
	}

	member := &discordgo.Member{
		GuildID: guildID,
		User:    &discordgo.User{ID: userID, Username: "user-" + userID},
	}
	if w.hasRole[userID] {
		member.Roles = []string{testRoleID}
	}
	return member
}

func (w *fakeWorld) User(userID string) *discordgo.User {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.missing[userID] {
		return nil
	}
	return &discordgo.User{ID: userID, Username: "user-" + userID}
}

func (w *fakeWorld) Role(guildID, roleID string) *discordgo.Role {
	if roleID != testRoleID {
		return nil
	}
	return &discordgo.Role{ID: testRoleID, Name: "Trusted"}
}

func (w *fakeWorld) Channel(channelID string) *discordgo.Channel {
	if w.channelMissing || channelID != testLogChanID {
		return nil
	}
	return &discordgo.Channel{ID: testLogChanID, Type: discordgo.ChannelTypeGuildText}
}

func (w *fakeWorld) Has(member *discordgo.Member, roleID string) bool {
	for _, id := range member.Roles {
		if id == roleID {
			return true
		}
	}
	return false
}

func (w *fakeWorld) Add(guildID, userID, roleID string) error {
	if w.roleErr != nil {
		return w.roleErr
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.hasRole[userID] = true
	return nil
}

func (w *fakeWorld) Remove(guildID, userID, roleID string) error {
	if w.roleErr != nil {
		return w.roleErr
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.hasRole[userID] = false
	return nil
}

func (w *fakeWorld) Notify(userID, content string) error {
	if w.dmFail {
		return errors.New("cannot send messages to this user")
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.dms = append(w.dms, content)
	return nil
}

func (w *fakeWorld) NotifyEmbed(userID string, embed *discordgo.MessageEmbed) error {
	if w.dmFail {
		return errors.New("cannot send messages to this user")
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.dmEmbeds = append(w.dmEmbeds, embed)
	return nil
}

func (w *fakeWorld) Send(channelID, content string) error {
	if w.sendFail {
		return errors.New("send failed")
	}
	return nil
}

func (w *fakeWorld) SendEmbed(channelID string, embed *discordgo.MessageEmbed) error {
	if w.sendFail {
		return errors.New("send failed")
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.logEmbeds = append(w.logEmbeds, embed)
	return nil
}

func (w *fakeWorld) CanSend(channel *discordgo.Channel) bool {
	return !w.noSendPerm
}

type fakePublisher struct {
	mu     sync.Mutex
	events []ActionEvent
	err    error
}

func (p *fakePublisher) Publish(event ActionEvent) error {
	if p.err != nil {
		return p.err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

type failingStore struct {
	WarningStore
	err error
}

func (s *failingStore) AddWarning(ctx context.Context, userID, moderatorID, reason string) (*models.Warning, error) {
	return nil, s.err
}

func newTestPipeline(world *fakeWorld) (*Pipeline, *MemoryWarningStore) {
	store := NewMemoryWarningStore()
	pipeline := New(store, &fakeTracker{}, world, world, world, world, config.IDs{
		ModLogChannel: testLogChanID,
		TrustedRole:   testRoleID,
	})
	return pipeline, store
}

func TestWarnCreatesWarning(t *testing.T) {
	world := newFakeWorld()
	pipeline, store := newTestPipeline(world)

	info, err := pipeline.Warn(context.Background(), testGuildID, testUserID, testModID, "spamming")
	if err != nil {
		t.Fatalf("Warn returned error: %v", err)
	}

	if !info.Success {
		t.Error("Expected outcome to be successful")
	}
	if info.Message != fmt.Sprintf("Warned <@%s>", testUserID) {
		t.Errorf("Unexpected message: %q", info.Message)
	}

	warnings, _ := store.ListWarnings(context.Background(), testUserID)
	if len(warnings) != 1 {
		t.Fatalf("Expected 1 warning, got %d", len(warnings))
	}
	warning := warnings[0]
	if warning.UserID != testUserID || warning.ModeratorID != testModID || warning.Reason != "spamming" {
		t.Errorf("Warning fields not recorded correctly: %+v", warning)
	}
	if warning.CreatedAt.IsZero() {
		t.Error("Expected CreatedAt to be set")
	}

	if len(world.dmEmbeds) != 1 {
		t.Errorf("Expected 1 DM embed, got %d", len(world.dmEmbeds))
	}
	if len(world.logEmbeds) != 1 {
		t.Errorf("Expected 1 audit embed, got %d", len(world.logEmbeds))
	}
}

func TestWarnUnresolvableUsers(t *testing.T) {
	world := newFakeWorld()
	world.missing[testModID] = true
	pipeline, store := newTestPipeline(world)

	info, err := pipeline.Warn(context.Background(), testGuildID, testUserID, testModID, "spamming")
	if err != nil {
		t.Fatalf("Warn returned error: %v", err)
	}
	if info.Success {
		t.Error("Expected failure when the mod cannot be fetched")
	}
	if info.Message != "Error fetching mod!" {
		t.Errorf("Unexpected message: %q", info.Message)
	}

	world.missing[testModID] = false
	world.missing[testUserID] = true

	info, err = pipeline.Warn(context.Background(), testGuildID, testUserID, testModID, "spamming")
	if err != nil {
		t.Fatalf("Warn returned error: %v", err)
	}
	if info.Success {
		t.Error("Expected failure when the user cannot be fetched")
	}
	if info.Message != "Error fetching user" {
		t.Errorf("Unexpected message: %q", info.Message)
	}

	warnings, _ := store.ListWarnings(context.Background(), testUserID)
	if len(warnings) != 0 {
		t.Errorf("Expected no warnings recorded, got %d", len(warnings))
	}
}

func TestWarnStoreFault(t *testing.T) {
	world := newFakeWorld()
	pipeline, _ := newTestPipeline(world)
	pipeline.Store = &failingStore{err: errors.New("database not connected")}

	_, err := pipeline.Warn(context.Background(), testGuildID, testUserID, testModID, "spamming")
	if err == nil {
		t.Fatal("Expected store fault to propagate as an error")
	}
}

func TestWarnBestEffortFailures(t *testing.T) {
	tests := []struct {
		name           string
		dmFail         bool
		channelMissing bool
		noSendPerm     bool
		sendFail       bool
		wantMessage    string
	}{
		{
			name:        "dm closed",
			dmFail:      true,
			wantMessage: fmt.Sprintf("Warned <@%s>", testUserID),
		},
		{
			name:           "log channel missing",
			channelMissing: true,
			wantMessage:    fmt.Sprintf("Warned <@%s> but could not find the log channel.", testUserID),
		},
		{
			name:        "no send permission",
			noSendPerm:  true,
			wantMessage: fmt.Sprintf("Warned <@%s>, but the bot does not have permission to send in the logs channel!", testUserID),
		},
		{
			name:        "audit send failed",
			sendFail:    true,
			wantMessage: fmt.Sprintf("Warned <@%s>, but posting to the logs channel failed!", testUserID),
		},
		{
			name:           "dm closed and log channel missing",
			dmFail:         true,
			channelMissing: true,
			wantMessage:    fmt.Sprintf("Warned <@%s> but could not find the log channel.", testUserID),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			world := newFakeWorld()
			world.dmFail = tt.dmFail
			world.channelMissing = tt.channelMissing
			world.noSendPerm = tt.noSendPerm
			world.sendFail = tt.sendFail
			pipeline, store := newTestPipeline(world)

			info, err := pipeline.Warn(context.Background(), testGuildID, testUserID, testModID, "spamming")
			if err != nil {
				t.Fatalf("Warn returned error: %v", err)
			}

			if !info.Success {
				t.Error("Best-effort failure must not flip success after the warning is recorded")
			}
			if info.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", info.Message, tt.wantMessage)
			}

			warnings, _ := store.ListWarnings(context.Background(), testUserID)
			if len(warnings) != 1 {
				t.Errorf("Expected the warning to be recorded, got %d", len(warnings))
			}
		})
	}
}

func TestDeleteWarning(t *testing.T) {
	world := newFakeWorld()
	pipeline, store := newTestPipeline(world)

	warning, err := store.AddWarning(context.Background(), testUserID, testModID, "spamming")
	if err != nil {
		t.Fatalf("AddWarning returned error: %v", err)
	}

	info, err := pipeline.DeleteWarning(context.Background(), warning.ID, testGuildID, testModID)
	if err != nil {
		t.Fatalf("DeleteWarning returned error: %v", err)
	}

	if !info.Success {
		t.Error("Expected outcome to be successful")
	}
	if info.Message != fmt.Sprintf("Deleted warning for <@%s>", testUserID) {
		t.Errorf("Unexpected message: %q", info.Message)
	}

	fetched, err := store.FetchWarning(context.Background(), warning.ID)
	if err != nil {
		t.Fatalf("FetchWarning returned error: %v", err)
	}
	if fetched != nil {
		t.Error("Expected the warning to be gone after deletion")
	}
}

func TestDeleteWarningUnknownID(t *testing.T) {
	world := newFakeWorld()
	pipeline, store := newTestPipeline(world)

	warning, _ := store.AddWarning(context.Background(), testUserID, testModID, "spamming")

	info, err := pipeline.DeleteWarning(context.Background(), 999, testGuildID, testModID)
	if err != nil {
		t.Fatalf("DeleteWarning returned error: %v", err)
	}

	if info.Success {
		t.Error("Expected failure for an unknown warning id")
	}
	if info.Message != "Warning ID `999` not found!" {
		t.Errorf("Unexpected message: %q", info.Message)
	}

	fetched, _ := store.FetchWarning(context.Background(), warning.ID)
	if fetched == nil {
		t.Error("Existing warning must not be touched by a failed delete")
	}
	if len(world.logEmbeds) != 0 {
		t.Error("No audit log must be posted for a failed delete")
	}
}

func TestDeleteWarningDegradedAudit(t *testing.T) {
	tests := []struct {
		name           string
		channelMissing bool
		noSendPerm     bool
		sendFail       bool
		wantFragment   string
	}{
		{"log channel missing", true, false, false, "but could not find the log channel."},
		{"no send permission", false, true, false, "does not have permission to send logs!"},
		{"audit send failed", false, false, true, "but posting to the logs channel failed!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			world := newFakeWorld()
			world.channelMissing = tt.channelMissing
			world.noSendPerm = tt.noSendPerm
			world.sendFail = tt.sendFail
			pipeline, store := newTestPipeline(world)

			warning, _ := store.AddWarning(context.Background(), testUserID, testModID, "spamming")

			info, err := pipeline.DeleteWarning(context.Background(), warning.ID, testGuildID, testModID)
			if err != nil {
				t.Fatalf("DeleteWarning returned error: %v", err)
			}

			if !info.Success {
				t.Error("Audit failure must not flip success once the delete has committed")
			}
			if !strings.Contains(info.Message, tt.wantFragment) {
				t.Errorf("Message %q does not mention the audit failure", info.Message)
			}

			fetched, _ := store.FetchWarning(context.Background(), warning.ID)
			if fetched != nil {
				t.Error("Expected the warning to be deleted")
			}
		})
	}
}

func TestToggleTrustedRoleInvolution(t *testing.T) {
	world := newFakeWorld()
	pipeline, _ := newTestPipeline(world)
	ctx := context.Background()

	info, err := pipeline.ToggleTrustedRole(ctx, testGuildID, testUserID, testModID)
	if err != nil {
		t.Fatalf("ToggleTrustedRole returned error: %v", err)
	}
	if !info.Success {
		t.Fatal("Expected the grant to succeed")
	}
	if info.Message != fmt.Sprintf("Gave <@%s> the Trusted role!", testUserID) {
		t.Errorf("Unexpected grant message: %q", info.Message)
	}
	if !world.hasRole[testUserID] {
		t.Fatal("Expected the role to be present after the first toggle")
	}
	if len(world.dms) != 1 {
		t.Errorf("Expected a welcome DM on grant, got %d", len(world.dms))
	}

	info, err = pipeline.ToggleTrustedRole(ctx, testGuildID, testUserID, testModID)
	if err != nil {
		t.Fatalf("ToggleTrustedRole returned error: %v", err)
	}
	if !info.Success {
		t.Fatal("Expected the removal to succeed")
	}
	if info.Message != fmt.Sprintf("Removed the Trusted role from <@%s>", testUserID) {
		t.Errorf("Unexpected removal message: %q", info.Message)
	}
	if world.hasRole[testUserID] {
		t.Error("Expected the role to be absent after the second toggle")
	}
	if len(world.dms) != 1 {
		t.Errorf("Removal must not DM the user, got %d DMs", len(world.dms))
	}
}

func TestToggleTrustedRoleGrantDMFailure(t *testing.T) {
	world := newFakeWorld()
	world.dmFail = true
	pipeline, _ := newTestPipeline(world)

	info, err := pipeline.ToggleTrustedRole(context.Background(), testGuildID, testUserID, testModID)
	if err != nil {
		t.Fatalf("ToggleTrustedRole returned error: %v", err)
	}

	if !info.Success {
		t.Error("A closed DM must not flip success after the role was granted")
	}
	if !strings.Contains(info.Message, "friendly reminder of the rules") {
		t.Errorf("Expected the rules reminder in the message, got %q", info.Message)
	}
	if !world.hasRole[testUserID] {
		t.Error("Expected the role to be granted")
	}
}

func TestToggleTrustedRoleLogChannelMissing(t *testing.T) {
	world := newFakeWorld()
	world.channelMissing = true
	pipeline, _ := newTestPipeline(world)

	info, err := pipeline.ToggleTrustedRole(context.Background(), testGuildID, testUserID, testModID)
	if err != nil {
		t.Fatalf("ToggleTrustedRole returned error: %v", err)
	}

	if !info.Success {
		t.Error("A missing log channel must not flip success after the role was granted")
	}
	if !strings.Contains(info.Message, "could not be logged as the log channel could not be found!") {
		t.Errorf("Expected the message to mention the missing log channel, got %q", info.Message)
	}
	if !world.hasRole[testUserID] {
		t.Error("Expected the role to be granted")
	}
}

func TestToggleTrustedRoleUnresolvable(t *testing.T) {
	world := newFakeWorld()
	world.missing[testUserID] = true
	pipeline, _ := newTestPipeline(world)

	info, err := pipeline.ToggleTrustedRole(context.Background(), testGuildID, testUserID, testModID)
	if err != nil {
		t.Fatalf("ToggleTrustedRole returned error: %v", err)
	}
	if info.Success {
		t.Error("Expected failure for an unresolvable member")
	}
	if info.Message != "Error fetching guild member for the user!" {
		t.Errorf("Unexpected message: %q", info.Message)
	}

	world.missing[testUserID] = false
	pipeline.IDs.TrustedRole = "unknown-role"

	info, err = pipeline.ToggleTrustedRole(context.Background(), testGuildID, testUserID, testModID)
	if err != nil {
		t.Fatalf("ToggleTrustedRole returned error: %v", err)
	}
	if info.Success {
		t.Error("Expected failure for an unresolvable role")
	}
	if info.Message != "Error fetching the trusted role!" {
		t.Errorf("Unexpected message: %q", info.Message)
	}
}

func TestToggleTrustedRoleConcurrent(t *testing.T) {
	world := newFakeWorld()
	pipeline, _ := newTestPipeline(world)

	var wg sync.WaitGroup
	results := make([]Outcome, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			info, err := pipeline.ToggleTrustedRole(context.Background(), testGuildID, testUserID, testModID)
			if err != nil {
				t.Errorf("ToggleTrustedRole returned error: %v", err)
			}
			results[i] = info
		}(i)
	}
	wg.Wait()

	for i, info := range results {
		if !info.Success {
			t.Errorf("Toggle %d did not succeed", i)
		}
	}
}

func TestActionEventsPublished(t *testing.T) {
	world := newFakeWorld()
	pipeline, store := newTestPipeline(world)
	publisher := &fakePublisher{}
	pipeline.Events = publisher

	ctx := context.Background()
	if _, err := pipeline.Warn(ctx, testGuildID, testUserID, testModID, "spamming"); err != nil {
		t.Fatalf("Warn returned error: %v", err)
	}
	warnings, _ := store.ListWarnings(ctx, testUserID)
	if _, err := pipeline.DeleteWarning(ctx, warnings[0].ID, testGuildID, testModID); err != nil {
		t.Fatalf("DeleteWarning returned error: %v", err)
	}
	if _, err := pipeline.ToggleTrustedRole(ctx, testGuildID, testUserID, testModID); err != nil {
		t.Fatalf("ToggleTrustedRole returned error: %v", err)
	}

	want := []string{"warn", "deletewarning", "trusted.add"}
	if len(publisher.events) != len(want) {
		t.Fatalf("Expected %d events, got %d", len(want), len(publisher.events))
	}
	for i, action := range want {
		event := publisher.events[i]
		if event.Action != action {
			t.Errorf("Event %d action = %q, want %q", i, event.Action, action)
		}
		if event.GuildID != testGuildID || event.ModeratorID != testModID {
			t.Errorf("Event %d attribution wrong: %+v", i, event)
		}
		if event.Timestamp.IsZero() {
			t.Errorf("Event %d has no timestamp", i)
		}
	}
}

func TestPublisherFailureIsDropped(t *testing.T) {
	world := newFakeWorld()
	pipeline, _ := newTestPipeline(world)
	pipeline.Events = &fakePublisher{err: errors.New("broker offline")}

	info, err := pipeline.Warn(context.Background(), testGuildID, testUserID, testModID, "spamming")
	if err != nil {
		t.Fatalf("Warn returned error: %v", err)
	}
	if !info.Success {
		t.Error("A publisher failure must not affect the outcome")
	}
}
