package lfg

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestDeleteAbsentPostIsSuccess(t *testing.T) {
	posts := newFakePostStore()
	messenger := newFakeMessenger()
	service := newTestService(posts, messenger)

	if err := service.Delete(context.Background(), "no-such-thread"); err != nil {
		t.Fatalf("deleting an absent post should succeed, got %v", err)
	}

	if len(messenger.deletedThreads) != 0 || len(messenger.deletedMessages) != 0 {
		t.Fatal("deleting an absent post must perform no external calls")
	}
}

func TestDeleteRemovesThreadMirrorAndRow(t *testing.T) {
	post := testPost("thread-1")
	post.ScheduleChannel = "schedule"
	post.AltMessage = "mirror-1"

	posts := newFakePostStore(post)
	messenger := newFakeMessenger()
	service := newTestService(posts, messenger)

	if err := service.Delete(context.Background(), "thread-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if len(messenger.deletedThreads) != 1 || messenger.deletedThreads[0] != "thread-1" {
		t.Fatalf("deleted threads = %v", messenger.deletedThreads)
	}
	if len(messenger.deletedMessages) != 1 || messenger.deletedMessages[0] != "schedule/mirror-1" {
		t.Fatalf("deleted messages = %v", messenger.deletedMessages)
	}
	if _, err := posts.Row(context.Background(), "thread-1"); !errors.Is(err, ErrPostNotFound) {
		t.Fatal("row should be gone after delete")
	}
}

func TestDeleteAbsorbsAlreadyGoneThread(t *testing.T) {
	posts := newFakePostStore(testPost("thread-1"))
	messenger := newFakeMessenger()
	messenger.deleteThreadErr = fmt.Errorf("%w: 10003", ErrChannelGone)
	service := newTestService(posts, messenger)

	if err := service.Delete(context.Background(), "thread-1"); err != nil {
		t.Fatalf("an already-deleted thread should be absorbed, got %v", err)
	}

	if _, err := posts.Row(context.Background(), "thread-1"); !errors.Is(err, ErrPostNotFound) {
		t.Fatal("row should be removed even when the thread was already gone")
	}
}

func TestDeleteAbsorbsAlreadyGoneMirror(t *testing.T) {
	post := testPost("thread-1")
	post.ScheduleChannel = "schedule"
	post.AltMessage = "mirror-1"

	posts := newFakePostStore(post)
	messenger := newFakeMessenger()
	messenger.deleteMessageErr = fmt.Errorf("%w: 10008", ErrMessageGone)
	service := newTestService(posts, messenger)

	if err := service.Delete(context.Background(), "thread-1"); err != nil {
		t.Fatalf("an already-deleted mirror should be absorbed, got %v", err)
	}
	if _, err := posts.Row(context.Background(), "thread-1"); !errors.Is(err, ErrPostNotFound) {
		t.Fatal("row should be removed even when the mirror was already gone")
	}
}

func TestDeleteKeepsRowOnFatalExternalError(t *testing.T) {
	posts := newFakePostStore(testPost("thread-1"))
	messenger := newFakeMessenger()
	messenger.deleteThreadErr = errors.New("discord is down")
	service := newTestService(posts, messenger)

	if err := service.Delete(context.Background(), "thread-1"); err == nil {
		t.Fatal("a fatal external failure must surface")
	}

	// The row survives so the delete can be retried without leaving a
	// dangling thread.
	if _, err := posts.Row(context.Background(), "thread-1"); err != nil {
		t.Fatalf("row should remain after a failed external delete, got %v", err)
	}
}

func TestDeleteAsUserIsOwnerGated(t *testing.T) {
	posts := newFakePostStore(testPost("thread-1"))
	service := newTestService(posts, newFakeMessenger())

	err := service.DeleteAsUser(context.Background(), "thread-1", "intruder")
	var denied *PermissionDeniedError
	if !errors.As(err, &denied) {
		t.Fatalf("expected PermissionDeniedError, got %v", err)
	}
	if denied.OwnerID != "owner" {
		t.Fatalf("error should carry the rightful owner, got %q", denied.OwnerID)
	}

	if _, err := posts.Row(context.Background(), "thread-1"); err != nil {
		t.Fatal("denied delete must not remove the row")
	}
}
