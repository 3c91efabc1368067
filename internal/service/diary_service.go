package service

import (
	"context"
	"errors"
	"time"

	"fitpulse/fitness-backend/internal/domain"
	"fitpulse/fitness-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DiaryInput carries the diary entry fields for one day.
type DiaryInput struct {
	Feeling      domain.Feeling
	Reason       domain.Reason
	Note         string
	FileEntityID *primitive.ObjectID
}

// --- Service Interface ---
type DiaryService interface {
	// Upsert creates or replaces the caller's entry for the given day.
	Upsert(ctx context.Context, principal *Principal, date time.Time, input DiaryInput) (*domain.DiaryEntry, error)
	GetByDate(ctx context.Context, principal *Principal, date time.Time) (*domain.DiaryEntry, error)
	ListRange(ctx context.Context, principal *Principal, from, to time.Time) ([]domain.DiaryEntry, error)
	Delete(ctx context.Context, principal *Principal, date time.Time) error
}

// --- Service Implementation ---

type diaryService struct {
	diaryRepo repository.DiaryRepository
}

// NewDiaryService creates a new instance of diaryService.
func NewDiaryService(diaryRepo repository.DiaryRepository) DiaryService {
	return &diaryService{diaryRepo: diaryRepo}
}

func (s *diaryService) Upsert(ctx context.Context, principal *Principal, date time.Time, input DiaryInput) (*domain.DiaryEntry, error) {
	day := dayOf(date)

	entry, err := s.diaryRepo.GetByUserAndDate(ctx, principal.UserID(), day)
	if err == nil {
		entry.Feeling = input.Feeling
		entry.Reason = input.Reason
		entry.Note = input.Note
		entry.FileEntityID = input.FileEntityID
		if err := s.diaryRepo.Update(ctx, entry); err != nil {
			return nil, err
		}
		return entry, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	entry = &domain.DiaryEntry{
		UserID:       principal.UserID(),
		Date:         day,
		Feeling:      input.Feeling,
		Reason:       input.Reason,
		Note:         input.Note,
		FileEntityID: input.FileEntityID,
	}
	entryID, err := s.diaryRepo.Create(ctx, entry)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			// Lost a race against another upsert for the same day; take
			// the update path instead.
			return s.Upsert(ctx, principal, date, input)
		}
		return nil, err
	}
	entry.ID = entryID
	return entry, nil
}

func (s *diaryService) GetByDate(ctx context.Context, principal *Principal, date time.Time) (*domain.DiaryEntry, error) {
	entry, err := s.diaryRepo.GetByUserAndDate(ctx, principal.UserID(), dayOf(date))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDiaryEntryNotFound
		}
		return nil, err
	}
	return entry, nil
}

func (s *diaryService) ListRange(ctx context.Context, principal *Principal, from, to time.Time) ([]domain.DiaryEntry, error) {
	return s.diaryRepo.ListByUserRange(ctx, principal.UserID(), dayOf(from), dayOf(to))
}

func (s *diaryService) Delete(ctx context.Context, principal *Principal, date time.Time) error {
	entry, err := s.GetByDate(ctx, principal, date)
	if err != nil {
		return err
	}
	if err := s.diaryRepo.Delete(ctx, entry.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrDiaryEntryNotFound
		}
		return err
	}
	return nil
}

// dayOf truncates a timestamp to its calendar day at midnight UTC, matching
// how the (userId, date) unique indexes expect dates to be stored.
func dayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
