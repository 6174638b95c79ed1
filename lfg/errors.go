package lfg

import (
	"errors"
	"fmt"
)

var (
	// ErrPostNotFound is returned when no post row exists for a thread.
	ErrPostNotFound = errors.New("lfg post not found")

	// ErrGuildNotSetup is returned when a guild has no LFG channel
	// configured. The owner needs to run /lfg setup first.
	ErrGuildNotSetup = errors.New("lfg is not set up for this guild")

	// ErrChannelGone and ErrMessageGone classify "already deleted"
	// responses from Discord. Reconciliation absorbs them; they are
	// never shown to users.
	ErrChannelGone = errors.New("channel already deleted")
	ErrMessageGone = errors.New("message already deleted")
)

// PermissionDeniedError is returned when a non-owner attempts an
// owner-restricted action. It carries the rightful owner so handlers
// can tell the user who to ask.
type PermissionDeniedError struct {
	OwnerID string
}

func (e *PermissionDeniedError) Error() string {
	return fmt.Sprintf("permission denied: only the owner (<@%s>) can use this action", e.OwnerID)
}

// InvalidInputError is returned for unparseable user input, such as a
// bad timezone region or a malformed start time.
type InvalidInputError struct {
	Field string
	Value string
	Hint  string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Hint)
}
