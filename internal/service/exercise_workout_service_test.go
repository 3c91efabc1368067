package service

import (
	"context"
	"testing"

	"fitpulse/fitness-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newExerciseWorkoutTestService(w *testWorld) ExerciseWorkoutService {
	return NewExerciseWorkoutService(w.ewRepo, w.workoutRepo, w.exerciseRepo)
}

// seedWorkoutEntry creates a coach-owned workout with one exercise entry and
// returns the owner, the entry and the exercise id.
func seedWorkoutEntry(t *testing.T, w *testWorld) (*Principal, *domain.ExerciseWorkout, primitive.ObjectID) {
	t.Helper()
	ctx := context.Background()
	coach := w.registerCoach(t)
	exerciseID := w.addExercise("squat")

	detail, err := w.workouts.Create(ctx, coach, CreateWorkoutInput{
		CoachID:   &coach.Coach.ID,
		Name:      "leg day",
		Exercises: []ExerciseEntryInput{{ExerciseID: exerciseID, NumOrder: 1, NumSets: 3, NumReps: 10, Stage: domain.StageMain}},
	})
	require.NoError(t, err)
	require.Len(t, detail.Exercises, 1)
	entry := detail.Exercises[0]
	return coach, &entry, exerciseID
}

func TestExerciseWorkoutOwnershipViaParent(t *testing.T) {
	w := newTestWorld()
	ews := newExerciseWorkoutTestService(w)
	ctx := context.Background()
	coach, entry, exerciseID := seedWorkoutEntry(t, w)
	stranger := w.registerCoach(t)

	_, err := ews.Create(ctx, stranger, CreateExerciseWorkoutInput{
		WorkoutID:  entry.WorkoutID,
		ExerciseID: exerciseID,
		NumOrder:   2,
	})
	assert.ErrorIs(t, err, ErrWorkoutAccessDenied)

	order := 9
	_, err = ews.Update(ctx, stranger, entry.ID, UpdateExerciseWorkoutInput{NumOrder: &order})
	assert.ErrorIs(t, err, ErrWorkoutAccessDenied)

	assert.ErrorIs(t, ews.Delete(ctx, stranger, entry.ID), ErrWorkoutAccessDenied)

	// The owner passes the same gate.
	created, err := ews.Create(ctx, coach, CreateExerciseWorkoutInput{
		WorkoutID:  entry.WorkoutID,
		ExerciseID: exerciseID,
		NumOrder:   2,
		Stage:      domain.StageWarmUp,
	})
	require.NoError(t, err)
	assert.Equal(t, entry.WorkoutID, created.WorkoutID)
}

func TestExerciseWorkoutUpdateRejectsUnknownExercise(t *testing.T) {
	w := newTestWorld()
	ews := newExerciseWorkoutTestService(w)
	ctx := context.Background()
	coach, entry, _ := seedWorkoutEntry(t, w)

	unknown := primitive.NewObjectID()
	_, err := ews.Update(ctx, coach, entry.ID, UpdateExerciseWorkoutInput{ExerciseID: &unknown})
	assert.ErrorIs(t, err, ErrExerciseNotFound)

	// The entry keeps its original exercise reference.
	kept, err := ews.GetByID(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, entry.ExerciseID, kept.ExerciseID)
}

func TestExerciseWorkoutPartialUpdate(t *testing.T) {
	w := newTestWorld()
	ews := newExerciseWorkoutTestService(w)
	ctx := context.Background()
	coach, entry, _ := seedWorkoutEntry(t, w)

	done := 2
	updated, err := ews.Update(ctx, coach, entry.ID, UpdateExerciseWorkoutInput{NumSetsDone: &done})
	require.NoError(t, err)

	assert.Equal(t, 2, updated.NumSetsDone)
	assert.Equal(t, entry.ExerciseID, updated.ExerciseID)
	assert.Equal(t, entry.NumOrder, updated.NumOrder)
	assert.Equal(t, entry.NumSets, updated.NumSets)
	assert.Equal(t, entry.NumReps, updated.NumReps)
	assert.Equal(t, entry.Stage, updated.Stage)
}

func TestExerciseWorkoutDeleteAndMissing(t *testing.T) {
	w := newTestWorld()
	ews := newExerciseWorkoutTestService(w)
	ctx := context.Background()
	coach, entry, _ := seedWorkoutEntry(t, w)

	require.NoError(t, ews.Delete(ctx, coach, entry.ID))

	_, err := ews.GetByID(ctx, entry.ID)
	assert.ErrorIs(t, err, ErrExerciseWorkoutNotFound)
	assert.ErrorIs(t, ews.Delete(ctx, coach, entry.ID), ErrExerciseWorkoutNotFound)
}
