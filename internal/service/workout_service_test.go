package service

import (
	"context"
	"testing"

	"fitpulse/fitness-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreateWorkoutRequiresOwner(t *testing.T) {
	w := newTestWorld()
	coach := w.registerCoach(t)

	_, err := w.workouts.Create(context.Background(), coach, CreateWorkoutInput{Name: "orphan"})
	assert.ErrorIs(t, err, ErrWorkoutOwnerRequired)
}

func TestCreateWorkoutOwnerMustMatchPrincipal(t *testing.T) {
	w := newTestWorld()
	ctx := context.Background()
	coach := w.registerCoach(t)
	other := w.registerCoach(t)

	// Claiming someone else's coach profile is denied.
	_, err := w.workouts.Create(ctx, coach, CreateWorkoutInput{
		CoachID: &other.Coach.ID,
		Name:    "stolen",
	})
	assert.ErrorIs(t, err, ErrWorkoutAccessDenied)
}

func TestCreateWorkoutWithBothOwnersGetsFreshChat(t *testing.T) {
	w := newTestWorld()
	ctx := context.Background()
	coach := w.registerCoach(t)
	customer := w.registerCustomer(t)

	input := CreateWorkoutInput{
		CoachID:    &coach.Coach.ID,
		CustomerID: &customer.Customer.ID,
		Name:       "morning session",
	}
	first, err := w.workouts.Create(ctx, coach, input)
	require.NoError(t, err)
	require.NotNil(t, first.Workout.ChatID)

	chat, err := w.chatRepo.GetByID(ctx, *first.Workout.ChatID)
	require.NoError(t, err)
	assert.Equal(t, domain.ChatWorkout, chat.Type)
	assert.True(t, chat.HasMember(coach.UserID()))
	assert.True(t, chat.HasMember(customer.UserID()))

	// A second workout for the same pair gets its own chat.
	second, err := w.workouts.Create(ctx, coach, input)
	require.NoError(t, err)
	require.NotNil(t, second.Workout.ChatID)
	assert.NotEqual(t, *first.Workout.ChatID, *second.Workout.ChatID)
}

func TestCreateWorkoutCoachOnlyHasNoChat(t *testing.T) {
	w := newTestWorld()
	coach := w.registerCoach(t)

	detail, err := w.workouts.Create(context.Background(), coach, CreateWorkoutInput{
		CoachID: &coach.Coach.ID,
		Name:    "template",
	})
	require.NoError(t, err)
	assert.Nil(t, detail.Workout.ChatID)
}

func TestWorkoutEntriesSortedByNumOrder(t *testing.T) {
	w := newTestWorld()
	ctx := context.Background()
	coach := w.registerCoach(t)
	squat := w.addExercise("squat")
	lunge := w.addExercise("lunge")
	plank := w.addExercise("plank")

	detail, err := w.workouts.Create(ctx, coach, CreateWorkoutInput{
		CoachID: &coach.Coach.ID,
		Name:    "legs",
		Exercises: []ExerciseEntryInput{
			{ExerciseID: plank, NumOrder: 3, Stage: domain.StageCoolDown},
			{ExerciseID: squat, NumOrder: 1, Stage: domain.StageMain},
			{ExerciseID: lunge, NumOrder: 1, Stage: domain.StageMain},
		},
	})
	require.NoError(t, err)
	require.Len(t, detail.Exercises, 3)

	assert.Equal(t, 1, detail.Exercises[0].NumOrder)
	assert.Equal(t, 1, detail.Exercises[1].NumOrder)
	assert.Equal(t, 3, detail.Exercises[2].NumOrder)
	// Ties keep insertion order.
	assert.Equal(t, squat, detail.Exercises[0].ExerciseID)
	assert.Equal(t, lunge, detail.Exercises[1].ExerciseID)
}

func TestCreateWorkoutRejectsUnknownExercise(t *testing.T) {
	w := newTestWorld()
	ctx := context.Background()
	coach := w.registerCoach(t)

	_, err := w.workouts.Create(ctx, coach, CreateWorkoutInput{
		CoachID: &coach.Coach.ID,
		Name:    "broken",
		Exercises: []ExerciseEntryInput{
			{ExerciseID: primitive.NewObjectID(), NumOrder: 1},
		},
	})
	assert.ErrorIs(t, err, ErrExerciseNotFound)

	// Nothing was written.
	_, total, err := w.workouts.ListByUser(ctx, coach, domain.RoleCoach, ListWorkoutsInput{}, 0, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)
}

func TestWorkoutUpdateChecksOwnership(t *testing.T) {
	w := newTestWorld()
	ctx := context.Background()
	coach := w.registerCoach(t)
	intruder := w.registerCoach(t)

	detail, err := w.workouts.Create(ctx, coach, CreateWorkoutInput{
		CoachID: &coach.Coach.ID,
		Name:    "original",
	})
	require.NoError(t, err)

	name := "hijacked"
	_, err = w.workouts.Update(ctx, intruder, detail.Workout.ID, UpdateWorkoutInput{Name: &name})
	assert.ErrorIs(t, err, ErrWorkoutAccessDenied)

	name = "renamed"
	updated, err := w.workouts.Update(ctx, coach, detail.Workout.ID, UpdateWorkoutInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Name)
}

func TestWorkoutDeleteCascades(t *testing.T) {
	w := newTestWorld()
	ctx := context.Background()
	coach := w.registerCoach(t)
	customer := w.registerCustomer(t)
	squat := w.addExercise("squat")

	detail, err := w.workouts.Create(ctx, coach, CreateWorkoutInput{
		CoachID:    &coach.Coach.ID,
		CustomerID: &customer.Customer.ID,
		Name:       "session",
		Exercises:  []ExerciseEntryInput{{ExerciseID: squat, NumOrder: 1}},
	})
	require.NoError(t, err)
	chatID := *detail.Workout.ChatID

	_, err = w.messages.Create(ctx, customer, CreateMessageInput{ChatID: chatID, Content: "see you at 9"})
	require.NoError(t, err)

	// The customer owns the other side and may delete too.
	require.NoError(t, w.workouts.Delete(ctx, customer, detail.Workout.ID))

	_, err = w.workouts.GetByID(ctx, detail.Workout.ID)
	assert.ErrorIs(t, err, ErrWorkoutNotFound)
	_, err = w.chatRepo.GetByID(ctx, chatID)
	assert.Error(t, err)
	count, err := w.messageRepo.CountByChatID(ctx, chatID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
	entries, err := w.ewRepo.ListByWorkoutID(ctx, detail.Workout.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWorkoutDeleteForbiddenForStranger(t *testing.T) {
	w := newTestWorld()
	ctx := context.Background()
	coach := w.registerCoach(t)
	stranger := w.registerCustomer(t)

	detail, err := w.workouts.Create(ctx, coach, CreateWorkoutInput{
		CoachID: &coach.Coach.ID,
		Name:    "template",
	})
	require.NoError(t, err)

	assert.ErrorIs(t, w.workouts.Delete(ctx, stranger, detail.Workout.ID), ErrWorkoutAccessDenied)
}

func TestWorkoutDeleteWithoutChatLeavesChatsAlone(t *testing.T) {
	w := newTestWorld()
	ctx := context.Background()
	coach := w.registerCoach(t)
	customer := w.registerCustomer(t)

	// An unrelated dialogue must survive the workout delete.
	dialogue, err := w.chats.CreateDialogue(ctx, coach.UserID(), customer.UserID())
	require.NoError(t, err)

	detail, err := w.workouts.Create(ctx, coach, CreateWorkoutInput{
		CoachID: &coach.Coach.ID,
		Name:    "template",
	})
	require.NoError(t, err)
	require.Nil(t, detail.Workout.ChatID)

	require.NoError(t, w.workouts.Delete(ctx, coach, detail.Workout.ID))

	_, err = w.chatRepo.GetByID(ctx, dialogue.ID)
	assert.NoError(t, err)
}

func TestListWorkoutsByRole(t *testing.T) {
	w := newTestWorld()
	ctx := context.Background()
	coach := w.registerCoach(t)
	customer := w.registerCustomer(t)

	_, err := w.workouts.Create(ctx, coach, CreateWorkoutInput{
		CoachID: &coach.Coach.ID,
		Name:    "solo template",
	})
	require.NoError(t, err)
	_, err = w.workouts.Create(ctx, coach, CreateWorkoutInput{
		CoachID:    &coach.Coach.ID,
		CustomerID: &customer.Customer.ID,
		Name:       "joint session",
	})
	require.NoError(t, err)

	_, total, err := w.workouts.ListByUser(ctx, coach, domain.RoleCoach, ListWorkoutsInput{}, 0, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	workouts, total, err := w.workouts.ListByUser(ctx, customer, domain.RoleCustomer, ListWorkoutsInput{}, 0, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, workouts, 1)
	assert.Equal(t, "joint session", workouts[0].Name)

	// Acting as a role without the matching profile is denied.
	_, _, err = w.workouts.ListByUser(ctx, coach, domain.RoleCustomer, ListWorkoutsInput{}, 0, 20)
	assert.ErrorIs(t, err, ErrForbidden)
	_, _, err = w.workouts.ListByUser(ctx, coach, domain.RoleBoth, ListWorkoutsInput{}, 0, 20)
	assert.ErrorIs(t, err, ErrBadRequest)
	_, _, err = w.workouts.ListByUser(ctx, coach, domain.RoleNone, ListWorkoutsInput{}, 0, 20)
	assert.ErrorIs(t, err, ErrForbidden)
}
