package lfg

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
	"unicode/utf8"

	"lfg-bot/models"
)

func serviceWithGuild(posts *fakePostStore, messenger *fakeMessenger, guild *models.Guild) *Service {
	return NewService(posts, newFakeTimezoneStore(), newFakeGuildStore(guild), posts, messenger)
}

func TestCreateWithoutSetupFails(t *testing.T) {
	service := newTestService(newFakePostStore(), newFakeMessenger())

	_, err := service.Create(context.Background(), CreateInput{
		GuildID:      "guild-1",
		UserID:       "owner",
		Activity:     "Vault of Glass",
		StartTime:    "2026-09-04 19:00",
		FireteamSize: 6,
	})
	if !errors.Is(err, ErrGuildNotSetup) {
		t.Fatalf("expected ErrGuildNotSetup, got %v", err)
	}
}

func TestCreatePersistsPostKeyedByThread(t *testing.T) {
	posts := newFakePostStore()
	messenger := newFakeMessenger()
	service := serviceWithGuild(posts, messenger, &models.Guild{
		GuildID: "guild-1", ChannelID: "lfg-channel", RoleID: "lfg-role",
	})

	post, err := service.Create(context.Background(), CreateInput{
		GuildID:      "guild-1",
		UserID:       "owner",
		Activity:     "Vault of Glass",
		StartTime:    "2026-09-04 19:00",
		FireteamSize: 6,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if post.ID != "thread-1" {
		t.Errorf("post keyed by %q, want the created thread's ID", post.ID)
	}
	if !slices.Equal(post.Fireteam, []string{"owner"}) {
		t.Errorf("fireteam = %v, want the organizer pre-joined", post.Fireteam)
	}
	// Empty description falls back to the activity name.
	if post.Description != "Vault of Glass" {
		t.Errorf("description = %q", post.Description)
	}

	saved, err := posts.Row(context.Background(), "thread-1")
	if err != nil {
		t.Fatalf("row not persisted: %v", err)
	}
	if saved.OwnerID != "owner" {
		t.Errorf("owner = %q", saved.OwnerID)
	}

	var pinged bool
	for _, content := range messenger.sent {
		if strings.Contains(content, "<@&lfg-role>") && strings.Contains(content, "<@owner>") {
			pinged = true
		}
	}
	if !pinged {
		t.Errorf("sent = %v, want role and organizer pinged in the thread", messenger.sent)
	}
}

func TestCreateMirrorsToScheduleChannel(t *testing.T) {
	posts := newFakePostStore()
	messenger := newFakeMessenger()
	service := serviceWithGuild(posts, messenger, &models.Guild{
		GuildID: "guild-1", ChannelID: "lfg-channel", ScheduleChannel: "schedule",
	})

	post, err := service.Create(context.Background(), CreateInput{
		GuildID:      "guild-1",
		UserID:       "owner",
		Activity:     "Trials",
		StartTime:    "2026-09-04 19:00",
		FireteamSize: 3,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if post.ScheduleChannel != "schedule" || post.AltMessage != "mirror-1" {
		t.Fatalf("mirror fields = %q/%q, want both recorded", post.ScheduleChannel, post.AltMessage)
	}
	if !slices.Contains(messenger.sent, "embed:schedule") {
		t.Fatalf("sent = %v, want the schedule embed", messenger.sent)
	}
}

func TestCreateRejectsBadInput(t *testing.T) {
	service := serviceWithGuild(newFakePostStore(), newFakeMessenger(), &models.Guild{
		GuildID: "guild-1", ChannelID: "lfg-channel",
	})

	var invalid *InvalidInputError

	_, err := service.Create(context.Background(), CreateInput{
		GuildID: "guild-1", UserID: "owner", Activity: "Trials",
		StartTime: "tomorrow", FireteamSize: 3,
	})
	if !errors.As(err, &invalid) {
		t.Fatalf("bad start time: expected InvalidInputError, got %v", err)
	}

	_, err = service.Create(context.Background(), CreateInput{
		GuildID: "guild-1", UserID: "owner", Activity: "Trials",
		StartTime: "2026-09-04 19:00", FireteamSize: 0,
	})
	if !errors.As(err, &invalid) {
		t.Fatalf("zero fireteam size: expected InvalidInputError, got %v", err)
	}
}

func TestCreateTruncatesDescriptionByRunes(t *testing.T) {
	posts := newFakePostStore()
	service := serviceWithGuild(posts, newFakeMessenger(), &models.Guild{
		GuildID: "guild-1", ChannelID: "lfg-channel",
	})

	// 2000 multi-byte characters; a byte-wise cut would split a rune.
	long := strings.Repeat("€", 2000)
	post, err := service.Create(context.Background(), CreateInput{
		GuildID:      "guild-1",
		UserID:       "owner",
		Activity:     "Trials",
		Description:  long,
		StartTime:    "2026-09-04 19:00",
		FireteamSize: 3,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if got := utf8.RuneCountInString(post.Description); got != 1024 {
		t.Errorf("description runes = %d, want 1024", got)
	}
	if !utf8.ValidString(post.Description) {
		t.Error("truncated description is not valid UTF-8")
	}

	// Input at the limit is stored untouched.
	exact := strings.Repeat("€", 1024)
	post, err = service.Create(context.Background(), CreateInput{
		GuildID:      "guild-1",
		UserID:       "owner",
		Activity:     "Trials",
		Description:  exact,
		StartTime:    "2026-09-04 19:00",
		FireteamSize: 3,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if post.Description != exact {
		t.Errorf("description at the limit was altered (len=%d)", utf8.RuneCountInString(post.Description))
	}
}

func TestEditRewritesFieldsAndRearmsReminder(t *testing.T) {
	post := testPost("thread-1")
	post.ReminderSent = true

	posts := newFakePostStore(post)
	messenger := newFakeMessenger()
	service := newTestService(posts, messenger)

	updated, err := service.Edit(context.Background(), EditInput{
		ThreadID:     "thread-1",
		UserID:       "owner",
		Activity:     "King's Fall",
		StartTime:    "2026-09-05 20:00",
		FireteamSize: 6,
	})
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}

	if updated.Activity != "King's Fall" || updated.FireteamSize != 6 {
		t.Errorf("edited post = %+v", updated)
	}
	if updated.ReminderSent {
		t.Error("editing should re-arm the reminder")
	}
	if !slices.Equal(updated.Fireteam, []string{"owner"}) {
		t.Errorf("fireteam = %v, edit must not touch membership", updated.Fireteam)
	}
	if len(messenger.renamed) != 1 || !strings.HasPrefix(messenger.renamed[0], "thread-1:King's Fall") {
		t.Errorf("renamed = %v", messenger.renamed)
	}
}

func TestEditIsOwnerGated(t *testing.T) {
	posts := newFakePostStore(testPost("thread-1"))
	service := newTestService(posts, newFakeMessenger())

	_, err := service.Edit(context.Background(), EditInput{
		ThreadID: "thread-1", UserID: "intruder",
		Activity: "Trials", StartTime: "2026-09-04 19:00", FireteamSize: 3,
	})

	var denied *PermissionDeniedError
	if !errors.As(err, &denied) {
		t.Fatalf("expected PermissionDeniedError, got %v", err)
	}
	if denied.OwnerID != "owner" {
		t.Errorf("OwnerID = %q", denied.OwnerID)
	}
}

func TestCopyFormReturnsCurrentFields(t *testing.T) {
	posts := newFakePostStore(testPost("thread-1"))
	service := newTestService(posts, newFakeMessenger())

	form, err := service.CopyForm(context.Background(), "thread-1", "owner")
	if err != nil {
		t.Fatalf("CopyForm: %v", err)
	}
	if form.Activity != "Vault of Glass" || form.StartTime != "2026-09-04 19:00" || form.FireteamSize != "4" {
		t.Errorf("form = %+v", form)
	}

	if _, err := service.CopyForm(context.Background(), "thread-1", "intruder"); err == nil {
		t.Fatal("copy by a non-owner should be denied")
	}
}

func TestSetupRoundTrips(t *testing.T) {
	guilds := newFakeGuildStore()
	service := NewService(newFakePostStore(), newFakeTimezoneStore(), guilds, newFakePostStore(), newFakeMessenger())

	want := &models.Guild{GuildID: "guild-1", ChannelID: "lfg-channel", RoleID: "lfg-role", ScheduleChannel: "schedule"}
	if err := service.Setup(context.Background(), want); err != nil {
		t.Fatalf("Setup: %v", err)
	}

	got, err := guilds.Guild(context.Background(), "guild-1")
	if err != nil {
		t.Fatalf("Guild: %v", err)
	}
	if *got != *want {
		t.Errorf("guild = %+v, want %+v", got, want)
	}
}
