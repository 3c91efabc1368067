package service

import (
	"context"
	"errors"

	"fitpulse/fitness-backend/internal/domain"
	"fitpulse/fitness-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateExerciseWorkoutInput adds one exercise entry to an existing workout.
type CreateExerciseWorkoutInput struct {
	WorkoutID  primitive.ObjectID
	ExerciseID primitive.ObjectID
	NumOrder   int
	NumSets    int
	NumReps    int
	Stage      domain.Stage
}

// UpdateExerciseWorkoutInput carries the mutable entry fields. Nil pointers
// mean "leave unchanged".
type UpdateExerciseWorkoutInput struct {
	ExerciseID  *primitive.ObjectID
	NumOrder    *int
	NumSets     *int
	NumSetsDone *int
	NumReps     *int
	Stage       *domain.Stage
}

// --- Service Interface ---
type ExerciseWorkoutService interface {
	Create(ctx context.Context, principal *Principal, input CreateExerciseWorkoutInput) (*domain.ExerciseWorkout, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ExerciseWorkout, error)
	Update(ctx context.Context, principal *Principal, id primitive.ObjectID, input UpdateExerciseWorkoutInput) (*domain.ExerciseWorkout, error)
	Delete(ctx context.Context, principal *Principal, id primitive.ObjectID) error
}

// --- Service Implementation ---

// exerciseWorkoutService manages the entries inside a workout. The entries
// carry no owner fields; every authorization decision resolves through the
// parent workout.
type exerciseWorkoutService struct {
	ewRepo       repository.ExerciseWorkoutRepository
	workoutRepo  repository.WorkoutRepository
	exerciseRepo repository.ExerciseRepository
}

// NewExerciseWorkoutService creates a new instance of exerciseWorkoutService.
func NewExerciseWorkoutService(
	ewRepo repository.ExerciseWorkoutRepository,
	workoutRepo repository.WorkoutRepository,
	exerciseRepo repository.ExerciseRepository,
) ExerciseWorkoutService {
	return &exerciseWorkoutService{
		ewRepo:       ewRepo,
		workoutRepo:  workoutRepo,
		exerciseRepo: exerciseRepo,
	}
}

func (s *exerciseWorkoutService) Create(ctx context.Context, principal *Principal, input CreateExerciseWorkoutInput) (*domain.ExerciseWorkout, error) {
	if err := s.checkParentOwnership(ctx, principal, input.WorkoutID); err != nil {
		return nil, err
	}

	if _, err := s.exerciseRepo.GetByID(ctx, input.ExerciseID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}

	ew := &domain.ExerciseWorkout{
		WorkoutID:  input.WorkoutID,
		ExerciseID: input.ExerciseID,
		NumOrder:   input.NumOrder,
		NumSets:    input.NumSets,
		NumReps:    input.NumReps,
		Stage:      input.Stage,
	}
	ewID, err := s.ewRepo.Create(ctx, ew)
	if err != nil {
		return nil, err
	}
	ew.ID = ewID
	return ew, nil
}

func (s *exerciseWorkoutService) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ExerciseWorkout, error) {
	ew, err := s.ewRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseWorkoutNotFound
		}
		return nil, err
	}
	return ew, nil
}

func (s *exerciseWorkoutService) Update(ctx context.Context, principal *Principal, id primitive.ObjectID, input UpdateExerciseWorkoutInput) (*domain.ExerciseWorkout, error) {
	ew, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkParentOwnership(ctx, principal, ew.WorkoutID); err != nil {
		return nil, err
	}

	if input.ExerciseID != nil && *input.ExerciseID != ew.ExerciseID {
		// A swapped exercise reference is re-resolved like a new one.
		if _, err := s.exerciseRepo.GetByID(ctx, *input.ExerciseID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrExerciseNotFound
			}
			return nil, err
		}
		ew.ExerciseID = *input.ExerciseID
	}
	if input.NumOrder != nil {
		ew.NumOrder = *input.NumOrder
	}
	if input.NumSets != nil {
		ew.NumSets = *input.NumSets
	}
	if input.NumSetsDone != nil {
		ew.NumSetsDone = *input.NumSetsDone
	}
	if input.NumReps != nil {
		ew.NumReps = *input.NumReps
	}
	if input.Stage != nil {
		ew.Stage = *input.Stage
	}

	if err := s.ewRepo.Update(ctx, ew); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseWorkoutNotFound
		}
		return nil, err
	}
	return ew, nil
}

func (s *exerciseWorkoutService) Delete(ctx context.Context, principal *Principal, id primitive.ObjectID) error {
	ew, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.checkParentOwnership(ctx, principal, ew.WorkoutID); err != nil {
		return err
	}

	if err := s.ewRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrExerciseWorkoutNotFound
		}
		return err
	}
	return nil
}

// checkParentOwnership loads the parent workout fresh and applies the
// ownership predicate to it.
func (s *exerciseWorkoutService) checkParentOwnership(ctx context.Context, principal *Principal, workoutID primitive.ObjectID) error {
	workout, err := s.workoutRepo.GetByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrWorkoutNotFound
		}
		return err
	}
	if !principal.OwnsWorkout(workout) {
		return ErrWorkoutAccessDenied
	}
	return nil
}
