package service

import (
	"context"
	"errors"
	"time"

	"fitpulse/fitness-backend/internal/domain"
	"fitpulse/fitness-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseEntryInput is one exercise line inside a workout creation request.
// NumOrder comes from the caller and is preserved as given.
type ExerciseEntryInput struct {
	ExerciseID primitive.ObjectID
	NumOrder   int
	NumSets    int
	NumReps    int
	Stage      domain.Stage
}

// CreateWorkoutInput carries a new workout. At least one of CoachID /
// CustomerID must be set and the principal must hold the matching side.
type CreateWorkoutInput struct {
	CoachID        *primitive.ObjectID
	CustomerID     *primitive.ObjectID
	Name           string
	TypeConnection domain.TypeConnection
	TimeStart      *time.Time
	Exercises      []ExerciseEntryInput
}

// UpdateWorkoutInput carries the mutable workout fields. Owner ids are
// immutable after creation.
type UpdateWorkoutInput struct {
	Name           *string
	TypeConnection *domain.TypeConnection
	TimeStart      *time.Time
}

// ListWorkoutsInput narrows a workout listing. Name and TypeConnection are
// case-insensitive substring filters; the time bounds are inclusive.
type ListWorkoutsInput struct {
	Name           string
	TypeConnection string
	TimeStartFrom  *time.Time
	TimeStartTo    *time.Time
}

// WorkoutDetail bundles a workout with its exercise entries, always sorted
// by numOrder ascending.
type WorkoutDetail struct {
	Workout   *domain.Workout
	Exercises []domain.ExerciseWorkout
}

// --- Service Interface ---
type WorkoutService interface {
	Create(ctx context.Context, principal *Principal, input CreateWorkoutInput) (*WorkoutDetail, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*WorkoutDetail, error)
	// ListByUser lists workouts visible to the principal acting as the
	// given role (COACH or CUSTOMER). Coaches see their own template
	// workouts plus unowned library ones; customers see their coach-led
	// sessions.
	ListByUser(ctx context.Context, principal *Principal, asRole domain.Role, input ListWorkoutsInput, page, size int) ([]domain.Workout, int64, error)
	Update(ctx context.Context, principal *Principal, id primitive.ObjectID, input UpdateWorkoutInput) (*domain.Workout, error)
	Delete(ctx context.Context, principal *Principal, id primitive.ObjectID) error
}

// --- Service Implementation ---

type workoutService struct {
	workoutRepo  repository.WorkoutRepository
	ewRepo       repository.ExerciseWorkoutRepository
	exerciseRepo repository.ExerciseRepository
	coachRepo    repository.CoachRepository
	customerRepo repository.CustomerRepository
	chats        ChatService
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(
	workoutRepo repository.WorkoutRepository,
	ewRepo repository.ExerciseWorkoutRepository,
	exerciseRepo repository.ExerciseRepository,
	coachRepo repository.CoachRepository,
	customerRepo repository.CustomerRepository,
	chats ChatService,
) WorkoutService {
	return &workoutService{
		workoutRepo:  workoutRepo,
		ewRepo:       ewRepo,
		exerciseRepo: exerciseRepo,
		coachRepo:    coachRepo,
		customerRepo: customerRepo,
		chats:        chats,
	}
}

func (s *workoutService) Create(ctx context.Context, principal *Principal, input CreateWorkoutInput) (*WorkoutDetail, error) {
	// 1. An ownerless workout cannot be created through the API.
	if input.CoachID == nil && input.CustomerID == nil {
		return nil, ErrWorkoutOwnerRequired
	}

	// 2. The principal must hold at least one of the supplied owner sides.
	matches := input.CoachID != nil && principal.Coach != nil && *input.CoachID == principal.Coach.ID
	if !matches {
		matches = input.CustomerID != nil && principal.Customer != nil && *input.CustomerID == principal.Customer.ID
	}
	if !matches {
		return nil, ErrWorkoutAccessDenied
	}

	// 3. Resolve both sides; the non-self side may be anyone's profile but
	// it has to exist.
	var coach *domain.Coach
	var customer *domain.Customer
	var err error
	if input.CoachID != nil {
		coach, err = s.coachRepo.GetByID(ctx, *input.CoachID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrCoachNotFound
			}
			return nil, err
		}
	}
	if input.CustomerID != nil {
		customer, err = s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrCustomerNotFound
			}
			return nil, err
		}
	}

	// 4. Check the exercise references up front so a bad one fails the
	// whole request before anything is written.
	for _, entry := range input.Exercises {
		if _, err := s.exerciseRepo.GetByID(ctx, entry.ExerciseID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrExerciseNotFound
			}
			return nil, err
		}
	}

	workout := &domain.Workout{
		CoachID:        input.CoachID,
		CustomerID:     input.CustomerID,
		Name:           input.Name,
		TypeConnection: input.TypeConnection,
		TimeStart:      input.TimeStart,
	}

	// 5. A workout with both owners gets its own group chat, created fresh
	// every time.
	if coach != nil && customer != nil {
		chat, err := s.chats.CreateWorkoutChat(ctx, []primitive.ObjectID{coach.UserID, customer.UserID})
		if err != nil {
			return nil, err
		}
		workout.ChatID = &chat.ID
	}

	workoutID, err := s.workoutRepo.Create(ctx, workout)
	if err != nil {
		return nil, err
	}
	workout.ID = workoutID

	// 6. Persist the exercise entries in the supplied order, keeping the
	// caller's numOrder values.
	for _, entry := range input.Exercises {
		ew := &domain.ExerciseWorkout{
			WorkoutID:  workoutID,
			ExerciseID: entry.ExerciseID,
			NumOrder:   entry.NumOrder,
			NumSets:    entry.NumSets,
			NumReps:    entry.NumReps,
			Stage:      entry.Stage,
		}
		if _, err := s.ewRepo.Create(ctx, ew); err != nil {
			return nil, err
		}
	}

	// Re-read through the repository so the result is ordered the same way
	// every later fetch will be.
	sorted, err := s.ewRepo.ListByWorkoutID(ctx, workoutID)
	if err != nil {
		return nil, err
	}

	return &WorkoutDetail{Workout: workout, Exercises: sorted}, nil
}

func (s *workoutService) GetByID(ctx context.Context, id primitive.ObjectID) (*WorkoutDetail, error) {
	workout, err := s.workoutRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}

	entries, err := s.ewRepo.ListByWorkoutID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &WorkoutDetail{Workout: workout, Exercises: entries}, nil
}

func (s *workoutService) ListByUser(ctx context.Context, principal *Principal, asRole domain.Role, input ListWorkoutsInput, page, size int) ([]domain.Workout, int64, error) {
	filter := repository.WorkoutFilter{
		Name:           input.Name,
		TypeConnection: input.TypeConnection,
		TimeStartFrom:  input.TimeStartFrom,
		TimeStartTo:    input.TimeStartTo,
	}

	switch asRole {
	case domain.RoleCoach:
		if principal.Coach == nil {
			return nil, 0, ErrForbidden
		}
		filter.CoachID = &principal.Coach.ID
	case domain.RoleCustomer:
		if principal.Customer == nil {
			return nil, 0, ErrForbidden
		}
		filter.CustomerID = &principal.Customer.ID
	case domain.RoleNone:
		return nil, 0, ErrForbidden
	default:
		// RoleBoth and unrecognized values must pick a side.
		return nil, 0, ErrBadRequest
	}

	workouts, err := s.workoutRepo.List(ctx, filter, page, size)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.workoutRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return workouts, total, nil
}

// Update mutates name, connection type and start time only. The ownership
// check always runs against the freshly loaded workout.
func (s *workoutService) Update(ctx context.Context, principal *Principal, id primitive.ObjectID, input UpdateWorkoutInput) (*domain.Workout, error) {
	workout, err := s.workoutRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	if !principal.OwnsWorkout(workout) {
		return nil, ErrWorkoutAccessDenied
	}

	if input.Name != nil {
		workout.Name = *input.Name
	}
	if input.TypeConnection != nil {
		workout.TypeConnection = *input.TypeConnection
	}
	if input.TimeStart != nil {
		workout.TimeStart = input.TimeStart
	}

	if err := s.workoutRepo.Update(ctx, workout); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return workout, nil
}

// Delete removes the workout, its exercise entries and, when present, its
// chat together with the chat's messages.
func (s *workoutService) Delete(ctx context.Context, principal *Principal, id primitive.ObjectID) error {
	workout, err := s.workoutRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrWorkoutNotFound
		}
		return err
	}
	if !principal.OwnsWorkout(workout) {
		return ErrWorkoutAccessDenied
	}

	// The chat service re-checks membership on its own.
	if workout.ChatID != nil {
		if err := s.chats.Delete(ctx, principal, *workout.ChatID); err != nil && !errors.Is(err, ErrChatNotFound) {
			return err
		}
	}

	if err := s.ewRepo.DeleteByWorkoutID(ctx, id); err != nil {
		return err
	}
	if err := s.workoutRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrWorkoutNotFound
		}
		return err
	}
	return nil
}
