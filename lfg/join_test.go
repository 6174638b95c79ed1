package lfg

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
)

func TestJoinAddsMemberAndAnnounces(t *testing.T) {
	posts := newFakePostStore(testPost("thread-1"))
	messenger := newFakeMessenger()
	service := newTestService(posts, messenger)

	content, err := service.Join(context.Background(), "thread-1", "guardian", false)
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	if !strings.Contains(content, "thread-1") {
		t.Fatalf("confirmation %q should reference the thread", content)
	}

	post, _ := posts.Row(context.Background(), "thread-1")
	if !slices.Contains(post.Fireteam, "guardian") {
		t.Fatalf("fireteam = %v, want guardian present", post.Fireteam)
	}

	if len(messenger.sent) != 1 || !strings.Contains(messenger.sent[0], "joined the fireteam") {
		t.Fatalf("announcements = %v", messenger.sent)
	}
	if len(messenger.edits) == 0 {
		t.Fatal("thread embed should have been re-rendered")
	}
}

func TestJoinFullFireteamLandsInAlternates(t *testing.T) {
	post := testPost("thread-1")
	post.Fireteam = []string{"A", "B", "C", "D"}

	posts := newFakePostStore(post)
	messenger := newFakeMessenger()
	service := newTestService(posts, messenger)

	if _, err := service.Join(context.Background(), "thread-1", "E", false); err != nil {
		t.Fatalf("Join: %v", err)
	}

	updated, _ := posts.Row(context.Background(), "thread-1")
	if !slices.Equal(updated.Fireteam, []string{"A", "B", "C", "D"}) {
		t.Fatalf("fireteam changed: %v", updated.Fireteam)
	}
	if !slices.Equal(updated.Alternates, []string{"E"}) {
		t.Fatalf("alternates = %v, want [E]", updated.Alternates)
	}
	if len(messenger.sent) != 1 || !strings.Contains(messenger.sent[0], "alternative") {
		t.Fatalf("announcements = %v, want alternative wording", messenger.sent)
	}
}

func TestJoinMissingPost(t *testing.T) {
	service := newTestService(newFakePostStore(), newFakeMessenger())

	_, err := service.Join(context.Background(), "no-such-thread", "guardian", false)
	if !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestLeaveThenKick(t *testing.T) {
	post := testPost("thread-1")
	post.Fireteam = []string{"owner", "B", "C"}

	posts := newFakePostStore(post)
	messenger := newFakeMessenger()
	service := newTestService(posts, messenger)

	content, err := service.Leave(context.Background(), "thread-1", "B", "B")
	if err != nil {
		t.Fatalf("Leave: %v", err)
	}
	if !strings.HasPrefix(content, "You have left") {
		t.Fatalf("self-leave confirmation = %q", content)
	}

	// Kick is owner-gated.
	if _, err := service.Kick(context.Background(), "thread-1", "C", "owner"); err == nil {
		t.Fatal("non-owner kick should be denied")
	}

	content, err = service.Kick(context.Background(), "thread-1", "owner", "C")
	if err != nil {
		t.Fatalf("Kick: %v", err)
	}
	if !strings.Contains(content, "<@C>") {
		t.Fatalf("kick confirmation = %q, want the kicked user mentioned", content)
	}

	updated, _ := posts.Row(context.Background(), "thread-1")
	if !slices.Equal(updated.Fireteam, []string{"owner"}) {
		t.Fatalf("fireteam = %v, want [owner]", updated.Fireteam)
	}
}

func TestJoinSyncsMirror(t *testing.T) {
	post := testPost("thread-1")
	post.ScheduleChannel = "schedule"
	post.AltMessage = "mirror-1"

	posts := newFakePostStore(post)
	messenger := newFakeMessenger()
	service := newTestService(posts, messenger)

	if _, err := service.Join(context.Background(), "thread-1", "guardian", false); err != nil {
		t.Fatalf("Join: %v", err)
	}

	if !slices.Contains(messenger.edits, "schedule/mirror-1") {
		t.Fatalf("edits = %v, want the mirror re-rendered", messenger.edits)
	}
}
