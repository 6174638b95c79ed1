package lfg

import (
	"context"
	"errors"
	"fmt"
)

// RequireOwner resolves the post's current owner and compares it to the
// acting user. A missing row treats the acting user as provisional
// owner; that bootstrap case covers settings on a post whose row has
// not been persisted yet.
func (s *Service) RequireOwner(ctx context.Context, threadID, userID string) error {
	owner, err := s.Posts.Owner(ctx, threadID)
	if errors.Is(err, ErrPostNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to resolve owner of post %s: %w", threadID, err)
	}

	if owner != userID {
		return &PermissionDeniedError{OwnerID: owner}
	}
	return nil
}

// Settings gates access to the post's settings panel. The handler
// renders the panel only when this returns nil.
func (s *Service) Settings(ctx context.Context, threadID, userID string) error {
	return s.RequireOwner(ctx, threadID, userID)
}
