package lfg

import (
	"context"
	"errors"
	"testing"
)

func TestSaveTimezoneRejectsInvalidRegion(t *testing.T) {
	timezones := newFakeTimezoneStore()
	service := NewService(newFakePostStore(), timezones, newFakeGuildStore(), nil, newFakeMessenger())

	_, err := service.SaveTimezone(context.Background(), "user-1", "Not/AZone")
	var invalid *InvalidInputError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidInputError, got %v", err)
	}

	if region := timezones.regions["user-1"]; region != "" {
		t.Fatalf("invalid region must not persist, found %q", region)
	}
}

func TestSaveTimezoneRoundTrips(t *testing.T) {
	ctx := context.Background()
	timezones := newFakeTimezoneStore()
	service := NewService(newFakePostStore(), timezones, newFakeGuildStore(), nil, newFakeMessenger())

	saved, err := service.SaveTimezone(ctx, "user-1", "Australia/Sydney")
	if err != nil {
		t.Fatalf("SaveTimezone: %v", err)
	}
	if saved != "Australia/Sydney" {
		t.Fatalf("saved = %q, want Australia/Sydney", saved)
	}

	region, err := timezones.Region(ctx, "user-1")
	if err != nil {
		t.Fatalf("Region: %v", err)
	}
	if region != "Australia/Sydney" {
		t.Fatalf("round-trip = %q, want Australia/Sydney", region)
	}

	if loc := service.UserLocation(ctx, "user-1"); loc.String() != "Australia/Sydney" {
		t.Fatalf("UserLocation = %v", loc)
	}
}

func TestUserLocationDefaultsToUTC(t *testing.T) {
	service := newTestService(newFakePostStore(), newFakeMessenger())

	if loc := service.UserLocation(context.Background(), "nobody"); loc.String() != "UTC" {
		t.Fatalf("default location = %v, want UTC", loc)
	}
}
