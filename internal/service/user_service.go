package service

import (
	"context"
	"errors"
	"time"

	"fitpulse/fitness-backend/internal/domain"
	"fitpulse/fitness-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// UpdateUserInput carries the mutable user fields. Nil pointers mean "leave
// unchanged".
type UpdateUserInput struct {
	Email     *string
	Name      *string
	Sex       *domain.Sex
	BirthDate *time.Time
}

// --- Service Interface ---
type UserService interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	List(ctx context.Context, page, size int) ([]domain.User, int64, error)
	Update(ctx context.Context, userID primitive.ObjectID, input UpdateUserInput) (*domain.User, error)
	UpdatePassword(ctx context.Context, userID primitive.ObjectID, current, updated string) error
	Delete(ctx context.Context, userID primitive.ObjectID) error
}

// --- Service Implementation ---

type userService struct {
	userRepo       repository.UserRepository
	coachRepo      repository.CoachRepository
	customerRepo   repository.CustomerRepository
	assignmentRepo repository.AssignmentRepository
}

// NewUserService creates a new instance of userService.
func NewUserService(
	userRepo repository.UserRepository,
	coachRepo repository.CoachRepository,
	customerRepo repository.CustomerRepository,
	assignmentRepo repository.AssignmentRepository,
) UserService {
	return &userService{
		userRepo:       userRepo,
		coachRepo:      coachRepo,
		customerRepo:   customerRepo,
		assignmentRepo: assignmentRepo,
	}
}

func (s *userService) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) List(ctx context.Context, page, size int) ([]domain.User, int64, error) {
	users, err := s.userRepo.List(ctx, page, size)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Update applies the provided fields. Changing the email re-checks
// uniqueness before writing.
func (s *userService) Update(ctx context.Context, userID primitive.ObjectID, input UpdateUserInput) (*domain.User, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Email != nil && *input.Email != user.Email {
		taken, err := s.userRepo.ExistsByEmail(ctx, *input.Email)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrUserAlreadyExists
		}
		user.Email = *input.Email
	}
	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Sex != nil {
		user.Sex = *input.Sex
	}
	if input.BirthDate != nil {
		user.BirthDate = input.BirthDate
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			// Unique index caught a concurrent registration.
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}
	return user, nil
}

// UpdatePassword verifies the current password before storing the new hash.
func (s *userService) UpdatePassword(ctx context.Context, userID primitive.ObjectID, current, updated string) error {
	if updated == "" {
		return ErrBadRequest
	}

	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return ErrAuthenticationFailed
	}

	hashed, err := hashPassword(updated)
	if err != nil {
		return err
	}
	user.PasswordHash = hashed

	return s.userRepo.Update(ctx, user)
}

// Delete removes the user along with both profiles and any assignments the
// profiles participate in.
func (s *userService) Delete(ctx context.Context, userID primitive.ObjectID) error {
	coach, err := s.coachRepo.GetByUserID(ctx, userID)
	if err == nil {
		if err := s.assignmentRepo.DeleteByCoach(ctx, coach.ID); err != nil {
			return err
		}
		if err := s.coachRepo.Delete(ctx, coach.ID); err != nil {
			return err
		}
	} else if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	customer, err := s.customerRepo.GetByUserID(ctx, userID)
	if err == nil {
		if err := s.assignmentRepo.DeleteByCustomer(ctx, customer.ID); err != nil {
			return err
		}
		if err := s.customerRepo.Delete(ctx, customer.ID); err != nil {
			return err
		}
	} else if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}
