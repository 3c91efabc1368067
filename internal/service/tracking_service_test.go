package service

import (
	"context"
	"testing"
	"time"

	"fitpulse/fitness-backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTrackingTestService(t *testing.T) (TrackingService, *Principal) {
	t.Helper()
	w := newTestWorld()
	tracking := NewTrackingService(newFakeStepsRepo(), newFakeWaterRepo(), config.GoalsConfig{
		Steps:       8000,
		WaterVolume: 8000,
	})
	return tracking, w.registerCustomer(t)
}

func TestSetStepsUsesDefaultGoal(t *testing.T) {
	tracking, principal := newTrackingTestService(t)
	day := time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)

	entry, err := tracking.SetSteps(context.Background(), principal, day, 4200, nil)
	require.NoError(t, err)
	assert.Equal(t, 4200, entry.Steps)
	assert.Equal(t, 8000, entry.GoalSteps)
	assert.Equal(t, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), entry.Date)
}

func TestSetStepsKeepsChosenGoal(t *testing.T) {
	tracking, principal := newTrackingTestService(t)
	ctx := context.Background()
	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	goal := 12000

	_, err := tracking.SetSteps(ctx, principal, day, 1000, &goal)
	require.NoError(t, err)

	// Updating the count later in the day keeps the chosen goal.
	entry, err := tracking.SetSteps(ctx, principal, day, 9000, nil)
	require.NoError(t, err)
	assert.Equal(t, 9000, entry.Steps)
	assert.Equal(t, 12000, entry.GoalSteps)
}

func TestSetStepsRejectsNegative(t *testing.T) {
	tracking, principal := newTrackingTestService(t)

	_, err := tracking.SetSteps(context.Background(), principal, time.Now(), -1, nil)
	assert.ErrorIs(t, err, ErrBadRequest)
	_, err = tracking.SetWater(context.Background(), principal, time.Now(), -500, nil)
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestGetStepsMissingDayIsZeroed(t *testing.T) {
	tracking, principal := newTrackingTestService(t)
	day := time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC)

	entry, err := tracking.GetSteps(context.Background(), principal, day)
	require.NoError(t, err)
	assert.Equal(t, 0, entry.Steps)
	assert.Equal(t, 8000, entry.GoalSteps)
	assert.Equal(t, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), entry.Date)
}

func TestWaterSameDayOverwrites(t *testing.T) {
	tracking, principal := newTrackingTestService(t)
	ctx := context.Background()
	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	_, err := tracking.SetWater(ctx, principal, day, 500, nil)
	require.NoError(t, err)
	_, err = tracking.SetWater(ctx, principal, day, 1500, nil)
	require.NoError(t, err)

	entries, err := tracking.ListWater(ctx, principal, day, day)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 1500, entries[0].WaterVolume)
	assert.Equal(t, 8000, entries[0].GoalWaterVolume)
}

func TestListStepsRange(t *testing.T) {
	tracking, principal := newTrackingTestService(t)
	ctx := context.Background()

	for day, steps := range map[int]int{10: 5000, 11: 7000, 14: 3000} {
		_, err := tracking.SetSteps(ctx, principal, time.Date(2025, 6, day, 0, 0, 0, 0, time.UTC), steps, nil)
		require.NoError(t, err)
	}

	entries, err := tracking.ListSteps(ctx, principal,
		time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 5000, entries[0].Steps)
	assert.Equal(t, 7000, entries[1].Steps)
}
