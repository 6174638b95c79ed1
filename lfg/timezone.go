package lfg

import (
	"context"
	"fmt"
	"time"
	_ "time/tzdata" // bundle the IANA database so region parsing works anywhere
)

// SaveTimezone validates region against the IANA timezone database and
// persists it for the user. Returns the saved region name.
func (s *Service) SaveTimezone(ctx context.Context, userID, region string) (string, error) {
	if region == "" || region == "Local" {
		return "", &InvalidInputError{Field: "timezone", Value: region, Hint: "expected an IANA region like Australia/Sydney"}
	}

	if _, err := time.LoadLocation(region); err != nil {
		return "", &InvalidInputError{Field: "timezone", Value: region, Hint: "expected an IANA region like Australia/Sydney"}
	}

	if err := s.Timezones.SaveRegion(ctx, userID, region); err != nil {
		return "", fmt.Errorf("failed to save timezone for user %s: %w", userID, err)
	}
	return region, nil
}

// UserLocation loads the user's saved timezone, falling back to UTC
// when none is saved or the saved region no longer parses.
func (s *Service) UserLocation(ctx context.Context, userID string) *time.Location {
	loc, err := time.LoadLocation(s.location(ctx, userID))
	if err != nil {
		return time.UTC
	}
	return loc
}
