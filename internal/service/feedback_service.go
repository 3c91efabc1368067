package service

import (
	"context"
	"errors"

	"fitpulse/fitness-backend/internal/domain"
	"fitpulse/fitness-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Service Interface ---
type FeedbackService interface {
	// Create records the caller's score for a coach. Requires an existing
	// assignment between the pair; one feedback per pair.
	Create(ctx context.Context, principal *Principal, coachID primitive.ObjectID, score int) (*domain.Feedback, error)
	GetMine(ctx context.Context, principal *Principal, coachID primitive.ObjectID) (*domain.Feedback, error)
	Update(ctx context.Context, principal *Principal, coachID primitive.ObjectID, score int) (*domain.Feedback, error)
}

// --- Service Implementation ---

type feedbackService struct {
	feedbackRepo   repository.FeedbackRepository
	coachRepo      repository.CoachRepository
	assignmentRepo repository.AssignmentRepository
}

// NewFeedbackService creates a new instance of feedbackService.
func NewFeedbackService(
	feedbackRepo repository.FeedbackRepository,
	coachRepo repository.CoachRepository,
	assignmentRepo repository.AssignmentRepository,
) FeedbackService {
	return &feedbackService{
		feedbackRepo:   feedbackRepo,
		coachRepo:      coachRepo,
		assignmentRepo: assignmentRepo,
	}
}

func (s *feedbackService) Create(ctx context.Context, principal *Principal, coachID primitive.ObjectID, score int) (*domain.Feedback, error) {
	if principal.Customer == nil {
		return nil, ErrForbidden
	}
	if score < 1 || score > 5 {
		return nil, ErrFeedbackScoreInvalid
	}

	coach, err := s.coachRepo.GetByID(ctx, coachID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCoachNotFound
		}
		return nil, err
	}

	assigned, err := s.assignmentRepo.Exists(ctx, coach.ID, principal.Customer.ID)
	if err != nil {
		return nil, err
	}
	if !assigned {
		return nil, ErrFeedbackNeedsPair
	}

	feedback := &domain.Feedback{
		CustomerID: principal.Customer.ID,
		CoachID:    coach.ID,
		Score:      score,
	}
	feedbackID, err := s.feedbackRepo.Create(ctx, feedback)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrFeedbackExists
		}
		return nil, err
	}
	feedback.ID = feedbackID

	if err := s.recomputeRating(ctx, coach); err != nil {
		return nil, err
	}
	return feedback, nil
}

func (s *feedbackService) GetMine(ctx context.Context, principal *Principal, coachID primitive.ObjectID) (*domain.Feedback, error) {
	if principal.Customer == nil {
		return nil, ErrForbidden
	}

	feedback, err := s.feedbackRepo.GetByPair(ctx, coachID, principal.Customer.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrFeedbackNotFound
		}
		return nil, err
	}
	return feedback, nil
}

func (s *feedbackService) Update(ctx context.Context, principal *Principal, coachID primitive.ObjectID, score int) (*domain.Feedback, error) {
	if principal.Customer == nil {
		return nil, ErrForbidden
	}
	if score < 1 || score > 5 {
		return nil, ErrFeedbackScoreInvalid
	}

	coach, err := s.coachRepo.GetByID(ctx, coachID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCoachNotFound
		}
		return nil, err
	}

	feedback, err := s.feedbackRepo.GetByPair(ctx, coach.ID, principal.Customer.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrFeedbackNotFound
		}
		return nil, err
	}

	feedback.Score = score
	if err := s.feedbackRepo.Update(ctx, feedback); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrFeedbackNotFound
		}
		return nil, err
	}

	if err := s.recomputeRating(ctx, coach); err != nil {
		return nil, err
	}
	return feedback, nil
}

// recomputeRating stores the average of all feedback scores on the coach,
// falling back to the default when none exist.
func (s *feedbackService) recomputeRating(ctx context.Context, coach *domain.Coach) error {
	feedbacks, err := s.feedbackRepo.ListByCoach(ctx, coach.ID)
	if err != nil {
		return err
	}

	rating := domain.DefaultCoachRating
	if len(feedbacks) > 0 {
		sum := 0
		for _, f := range feedbacks {
			sum += f.Score
		}
		rating = float64(sum) / float64(len(feedbacks))
	}

	coach.Rating = rating
	return s.coachRepo.Update(ctx, coach)
}
