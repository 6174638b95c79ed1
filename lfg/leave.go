package lfg

import (
	"context"
	"fmt"

	"lfg-bot/models"
)

// Leave removes a user from the post's fireteam and alternates.
// authorID is who triggered the action; userID is who leaves (they
// differ when an owner kicks someone). Leaving a post the user never
// joined is a no-op. A freed slot is not backfilled from the
// alternates.
func (s *Service) Leave(ctx context.Context, threadID, authorID, userID string) (string, error) {
	post, err := s.Posts.Update(ctx, threadID, func(p *models.Post) error {
		p.Leave(userID)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to leave post %s: %w", threadID, err)
	}

	if err := s.syncEmbeds(post); err != nil {
		return "", err
	}

	s.announce(threadID, fmt.Sprintf("<@%s> left the fireteam", userID))

	if authorID == userID {
		return fmt.Sprintf("You have left <#%s>", threadID), nil
	}
	return fmt.Sprintf("<@%s> has left <#%s>", userID, threadID), nil
}

// Kick removes another member from the post. Restricted to the owner.
func (s *Service) Kick(ctx context.Context, threadID, ownerID, targetID string) (string, error) {
	if err := s.RequireOwner(ctx, threadID, ownerID); err != nil {
		return "", err
	}
	return s.Leave(ctx, threadID, ownerID, targetID)
}
