package lfg

import (
	"context"
	"fmt"

	"lfg-bot/models"
)

// Join adds a user to the post's fireteam, or to the alternates when
// they ask for it or the fireteam is full. Joining a list the user is
// already on is a no-op. Returns the confirmation shown to the caller.
func (s *Service) Join(ctx context.Context, threadID, userID string, alternative bool) (string, error) {
	var asAlternate bool
	post, err := s.Posts.Update(ctx, threadID, func(p *models.Post) error {
		asAlternate = p.Join(userID, alternative)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to join post %s: %w", threadID, err)
	}

	if err := s.syncEmbeds(post); err != nil {
		return "", err
	}

	if asAlternate {
		s.announce(threadID, fmt.Sprintf("<@%s> joined as an alternative", userID))
	} else {
		s.announce(threadID, fmt.Sprintf("<@%s> joined the fireteam", userID))
	}

	return fmt.Sprintf("You have joined <#%s>", threadID), nil
}
