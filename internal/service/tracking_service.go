package service

import (
	"context"
	"errors"
	"time"

	"fitpulse/fitness-backend/internal/config"
	"fitpulse/fitness-backend/internal/domain"
	"fitpulse/fitness-backend/internal/repository"
)

// --- Service Interface ---

// TrackingService records daily step counts and water intake, one entry per
// (user, day). Missing days read back as zero progress against the default
// goals from configuration.
type TrackingService interface {
	SetSteps(ctx context.Context, principal *Principal, date time.Time, steps int, goal *int) (*domain.StepsEntry, error)
	GetSteps(ctx context.Context, principal *Principal, date time.Time) (*domain.StepsEntry, error)
	ListSteps(ctx context.Context, principal *Principal, from, to time.Time) ([]domain.StepsEntry, error)

	SetWater(ctx context.Context, principal *Principal, date time.Time, volume int, goal *int) (*domain.WaterEntry, error)
	GetWater(ctx context.Context, principal *Principal, date time.Time) (*domain.WaterEntry, error)
	ListWater(ctx context.Context, principal *Principal, from, to time.Time) ([]domain.WaterEntry, error)
}

// --- Service Implementation ---

type trackingService struct {
	stepsRepo repository.StepsRepository
	waterRepo repository.WaterRepository
	goals     config.GoalsConfig
}

// NewTrackingService creates a new instance of trackingService.
func NewTrackingService(
	stepsRepo repository.StepsRepository,
	waterRepo repository.WaterRepository,
	goals config.GoalsConfig,
) TrackingService {
	return &trackingService{
		stepsRepo: stepsRepo,
		waterRepo: waterRepo,
		goals:     goals,
	}
}

func (s *trackingService) SetSteps(ctx context.Context, principal *Principal, date time.Time, steps int, goal *int) (*domain.StepsEntry, error) {
	if steps < 0 {
		return nil, ErrBadRequest
	}
	day := dayOf(date)

	entry := &domain.StepsEntry{
		UserID: principal.UserID(),
		Date:   day,
		Steps:  steps,
	}
	switch {
	case goal != nil && *goal > 0:
		entry.GoalSteps = *goal
	default:
		// Carry over the previously chosen goal when there is one.
		existing, err := s.stepsRepo.GetByUserAndDate(ctx, principal.UserID(), day)
		if err == nil && existing.GoalSteps > 0 {
			entry.GoalSteps = existing.GoalSteps
		} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		} else {
			entry.GoalSteps = s.goals.Steps
		}
	}

	if err := s.stepsRepo.Upsert(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *trackingService) GetSteps(ctx context.Context, principal *Principal, date time.Time) (*domain.StepsEntry, error) {
	day := dayOf(date)
	entry, err := s.stepsRepo.GetByUserAndDate(ctx, principal.UserID(), day)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &domain.StepsEntry{
				UserID:    principal.UserID(),
				Date:      day,
				GoalSteps: s.goals.Steps,
			}, nil
		}
		return nil, err
	}
	return entry, nil
}

func (s *trackingService) ListSteps(ctx context.Context, principal *Principal, from, to time.Time) ([]domain.StepsEntry, error) {
	return s.stepsRepo.ListByUserRange(ctx, principal.UserID(), dayOf(from), dayOf(to))
}

func (s *trackingService) SetWater(ctx context.Context, principal *Principal, date time.Time, volume int, goal *int) (*domain.WaterEntry, error) {
	if volume < 0 {
		return nil, ErrBadRequest
	}
	day := dayOf(date)

	entry := &domain.WaterEntry{
		UserID:      principal.UserID(),
		Date:        day,
		WaterVolume: volume,
	}
	switch {
	case goal != nil && *goal > 0:
		entry.GoalWaterVolume = *goal
	default:
		existing, err := s.waterRepo.GetByUserAndDate(ctx, principal.UserID(), day)
		if err == nil && existing.GoalWaterVolume > 0 {
			entry.GoalWaterVolume = existing.GoalWaterVolume
		} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		} else {
			entry.GoalWaterVolume = s.goals.WaterVolume
		}
	}

	if err := s.waterRepo.Upsert(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *trackingService) GetWater(ctx context.Context, principal *Principal, date time.Time) (*domain.WaterEntry, error) {
	day := dayOf(date)
	entry, err := s.waterRepo.GetByUserAndDate(ctx, principal.UserID(), day)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &domain.WaterEntry{
				UserID:          principal.UserID(),
				Date:            day,
				GoalWaterVolume: s.goals.WaterVolume,
			}, nil
		}
		return nil, err
	}
	return entry, nil
}

func (s *trackingService) ListWater(ctx context.Context, principal *Principal, from, to time.Time) ([]domain.WaterEntry, error) {
	return s.waterRepo.ListByUserRange(ctx, principal.UserID(), dayOf(from), dayOf(to))
}
