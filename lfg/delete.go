package lfg

import (
	"context"
	"errors"
	"fmt"
)

// Delete tears down a post and its external representation. The
// protocol is idempotent: a missing row, an already-deleted thread and
// an already-deleted schedule message are all success. External
// cleanup runs before the row is removed, so a hard failure leaves the
// row intact for a retry instead of a dangling thread.
func (s *Service) Delete(ctx context.Context, threadID string) error {
	post, err := s.Posts.Row(ctx, threadID)
	if errors.Is(err, ErrPostNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load post %s for deletion: %w", threadID, err)
	}

	if err := s.Messenger.DeleteThread(threadID, "LFG post deleted"); err != nil && !errors.Is(err, ErrChannelGone) {
		return fmt.Errorf("failed to delete thread %s: %w", threadID, err)
	}

	if post.HasMirror() {
		err := s.Messenger.DeleteMessage(post.ScheduleChannel, post.AltMessage, "LFG post deleted")
		if err != nil && !errors.Is(err, ErrMessageGone) {
			return fmt.Errorf("failed to delete schedule message for post %s: %w", threadID, err)
		}
	}

	if err := s.Posts.Delete(ctx, threadID); err != nil {
		return fmt.Errorf("failed to delete post row %s: %w", threadID, err)
	}
	return nil
}

// DeleteAsUser is the owner-gated delete used by the thread's delete
// button and /lfg subcommands.
func (s *Service) DeleteAsUser(ctx context.Context, threadID, userID string) error {
	if err := s.RequireOwner(ctx, threadID, userID); err != nil {
		return err
	}
	return s.Delete(ctx, threadID)
}
