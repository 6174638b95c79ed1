package lfg

import (
	"context"
	"errors"
	"fmt"

	"lfg-bot/models"
)

// EditInput carries the submitted edit form for an existing post.
type EditInput struct {
	ThreadID     string
	UserID       string
	Activity     string
	Description  string
	StartTime    string
	FireteamSize int
}

// Edit rewrites an existing post's organizer-supplied fields, renames
// the thread and re-renders the embeds. Restricted to the owner.
// Membership lists are untouched, even when the new fireteam size is
// below the current member count; the existing fireteam keeps its
// seats.
func (s *Service) Edit(ctx context.Context, in EditInput) (*models.Post, error) {
	if err := s.RequireOwner(ctx, in.ThreadID, in.UserID); err != nil {
		return nil, err
	}

	loc := s.UserLocation(ctx, in.UserID)
	start, err := ParseStartTime(loc, in.StartTime)
	if err != nil {
		return nil, err
	}

	if in.FireteamSize < 1 {
		return nil, &InvalidInputError{Field: "fireteam size", Value: fmt.Sprint(in.FireteamSize), Hint: "must be a positive number"}
	}

	description := truncateDescription(in.Description, in.Activity)

	post, err := s.Posts.Update(ctx, in.ThreadID, func(p *models.Post) error {
		p.Activity = in.Activity
		p.Description = description
		p.StartTime = start
		p.FireteamSize = in.FireteamSize
		p.ReminderSent = false
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to edit post %s: %w", in.ThreadID, err)
	}

	if err := s.Messenger.RenameThread(in.ThreadID, ThreadTitle(post.Activity, post.StartTime, loc)); err != nil && !errors.Is(err, ErrChannelGone) {
		return nil, fmt.Errorf("failed to rename thread %s: %w", in.ThreadID, err)
	}

	if err := s.syncEmbeds(post); err != nil {
		return nil, err
	}
	return post, nil
}

// CopyForm duplicates an existing post's fields into a fresh editable
// form, rendered in the owner's timezone. Restricted to the owner.
func (s *Service) CopyForm(ctx context.Context, threadID, userID string) (Form, error) {
	post, err := s.Posts.Row(ctx, threadID)
	if err != nil {
		return Form{}, fmt.Errorf("failed to load post %s for copy: %w", threadID, err)
	}

	if post.OwnerID != userID {
		return Form{}, &PermissionDeniedError{OwnerID: post.OwnerID}
	}

	loc := s.UserLocation(ctx, userID)
	return BuildForm(post.Activity, post.StartTime, post.FireteamSize, post.Description, loc), nil
}

// EditForm pre-fills the edit modal from the current row. Restricted
// to the owner.
func (s *Service) EditForm(ctx context.Context, threadID, userID string) (Form, error) {
	if err := s.RequireOwner(ctx, threadID, userID); err != nil {
		return Form{}, err
	}

	post, err := s.Posts.Row(ctx, threadID)
	if err != nil {
		return Form{}, fmt.Errorf("failed to load post %s for edit: %w", threadID, err)
	}

	loc := s.UserLocation(ctx, userID)
	return BuildForm(post.Activity, post.StartTime, post.FireteamSize, post.Description, loc), nil
}
