package service

import (
	"context"
	"errors"

	"fitpulse/fitness-backend/internal/domain"
	"fitpulse/fitness-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseInput carries the exercise fields plus the full set of photo file
// ids the exercise should end up with.
type ExerciseInput struct {
	Name             string
	Muscle           string
	AdditionalMuscle string
	Type             string
	Equipment        string
	Difficulty       string
	Description      string
	OriginalURI      string
	PhotoFileIDs     []primitive.ObjectID
}

// SearchExercisesInput narrows an exercise search (case-insensitive
// substring filters).
type SearchExercisesInput struct {
	Name   string
	Muscle string
	Type   string
}

// ExerciseDetail bundles an exercise with resolved photo URLs.
type ExerciseDetail struct {
	Exercise  *domain.Exercise
	PhotoURLs []string
}

// --- Service Interface ---
type ExerciseService interface {
	Create(ctx context.Context, principal *Principal, input ExerciseInput) (*ExerciseDetail, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*ExerciseDetail, error)
	// Search returns the caller's own exercises plus the shared library.
	Search(ctx context.Context, principal *Principal, input SearchExercisesInput, page, size int) ([]domain.Exercise, int64, error)
	Update(ctx context.Context, principal *Principal, id primitive.ObjectID, input ExerciseInput) (*ExerciseDetail, error)
	Delete(ctx context.Context, principal *Principal, id primitive.ObjectID) error
}

// --- Service Implementation ---

type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
	ewRepo       repository.ExerciseWorkoutRepository
	files        FileService
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(
	exerciseRepo repository.ExerciseRepository,
	ewRepo repository.ExerciseWorkoutRepository,
	files FileService,
) ExerciseService {
	return &exerciseService{
		exerciseRepo: exerciseRepo,
		ewRepo:       ewRepo,
		files:        files,
	}
}

func (s *exerciseService) Create(ctx context.Context, principal *Principal, input ExerciseInput) (*ExerciseDetail, error) {
	if input.Name == "" {
		return nil, ErrBadRequest
	}

	ownerID := principal.UserID()
	exercise := &domain.Exercise{
		UserID:           &ownerID,
		Name:             input.Name,
		Muscle:           input.Muscle,
		AdditionalMuscle: input.AdditionalMuscle,
		Type:             input.Type,
		Equipment:        input.Equipment,
		Difficulty:       input.Difficulty,
		Description:      input.Description,
		OriginalURI:      input.OriginalURI,
	}
	exerciseID, err := s.exerciseRepo.Create(ctx, exercise)
	if err != nil {
		return nil, err
	}
	exercise.ID = exerciseID

	for _, fileID := range input.PhotoFileIDs {
		if err := s.files.AttachToExercise(ctx, fileID, exerciseID); err != nil {
			return nil, err
		}
	}

	return s.GetByID(ctx, exerciseID)
}

func (s *exerciseService) GetByID(ctx context.Context, id primitive.ObjectID) (*ExerciseDetail, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}

	photos, err := s.files.ListExercisePhotos(ctx, id)
	if err != nil {
		return nil, err
	}
	urls := make([]string, 0, len(photos))
	for _, photo := range photos {
		url, err := s.files.GetURL(ctx, photo.Filename)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}

	return &ExerciseDetail{Exercise: exercise, PhotoURLs: urls}, nil
}

func (s *exerciseService) Search(ctx context.Context, principal *Principal, input SearchExercisesInput, page, size int) ([]domain.Exercise, int64, error) {
	userID := principal.UserID()
	filter := repository.ExerciseFilter{
		UserID: &userID,
		Name:   input.Name,
		Muscle: input.Muscle,
		Type:   input.Type,
	}

	exercises, err := s.exerciseRepo.Search(ctx, filter, page, size)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.exerciseRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return exercises, total, nil
}

// Update rewrites the exercise fields and reconciles the photo set: files
// missing from the input are removed from storage, new ones are attached.
func (s *exerciseService) Update(ctx context.Context, principal *Principal, id primitive.ObjectID, input ExerciseInput) (*ExerciseDetail, error) {
	exercise, err := s.getOwned(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	exercise.Name = input.Name
	exercise.Muscle = input.Muscle
	exercise.AdditionalMuscle = input.AdditionalMuscle
	exercise.Type = input.Type
	exercise.Equipment = input.Equipment
	exercise.Difficulty = input.Difficulty
	exercise.Description = input.Description
	exercise.OriginalURI = input.OriginalURI

	if err := s.exerciseRepo.Update(ctx, exercise); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}

	if err := s.reconcilePhotos(ctx, id, input.PhotoFileIDs); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, id)
}

func (s *exerciseService) Delete(ctx context.Context, principal *Principal, id primitive.ObjectID) error {
	if _, err := s.getOwned(ctx, principal, id); err != nil {
		return err
	}

	// Photos first, then the workout entries referencing the exercise.
	photos, err := s.files.ListExercisePhotos(ctx, id)
	if err != nil {
		return err
	}
	for _, photo := range photos {
		if err := s.files.Delete(ctx, photo.ID); err != nil {
			return err
		}
	}

	if err := s.ewRepo.DeleteByExerciseID(ctx, id); err != nil {
		return err
	}

	if err := s.exerciseRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrExerciseNotFound
		}
		return err
	}
	return nil
}

// getOwned loads the exercise and rejects callers other than the owner.
// Library exercises (nil owner) are read-only for everyone.
func (s *exerciseService) getOwned(ctx context.Context, principal *Principal, id primitive.ObjectID) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	if exercise.UserID == nil || *exercise.UserID != principal.UserID() {
		return nil, ErrExerciseAccessDenied
	}
	return exercise, nil
}

func (s *exerciseService) reconcilePhotos(ctx context.Context, exerciseID primitive.ObjectID, wantIDs []primitive.ObjectID) error {
	current, err := s.files.ListExercisePhotos(ctx, exerciseID)
	if err != nil {
		return err
	}

	want := make(map[primitive.ObjectID]bool, len(wantIDs))
	for _, id := range wantIDs {
		want[id] = true
	}

	have := make(map[primitive.ObjectID]bool, len(current))
	for _, photo := range current {
		have[photo.ID] = true
		if !want[photo.ID] {
			if err := s.files.Delete(ctx, photo.ID); err != nil {
				return err
			}
		}
	}

	for _, id := range wantIDs {
		if !have[id] {
			if err := s.files.AttachToExercise(ctx, id, exerciseID); err != nil {
				return err
			}
		}
	}
	return nil
}
