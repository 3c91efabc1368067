package service

import (
	"context"
	"errors"

	"fitpulse/fitness-backend/internal/domain"
	"fitpulse/fitness-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Principal is the authenticated caller: the user plus whichever profiles
// exist for them. It is resolved once per request by the auth middleware and
// passed down explicitly; the role is always derived from profile presence,
// never stored.
type Principal struct {
	User     *domain.User
	Coach    *domain.Coach
	Customer *domain.Customer
}

// UserID returns the id of the underlying user.
func (p *Principal) UserID() primitive.ObjectID {
	return p.User.ID
}

// Role derives the caller's role tag from profile presence.
func (p *Principal) Role() domain.Role {
	return domain.DeriveRole(p.Coach, p.Customer)
}

// OwnsWorkout reports whether the principal holds either owner side of the
// workout. The check runs against a freshly loaded workout on every call.
func (p *Principal) OwnsWorkout(w *domain.Workout) bool {
	if w.CoachID != nil && p.Coach != nil && *w.CoachID == p.Coach.ID {
		return true
	}
	if w.CustomerID != nil && p.Customer != nil && *w.CustomerID == p.Customer.ID {
		return true
	}
	return false
}

// --- Service Interface ---
type PrincipalService interface {
	Resolve(ctx context.Context, userID primitive.ObjectID) (*Principal, error)
}

// --- Service Implementation ---

type principalService struct {
	userRepo     repository.UserRepository
	coachRepo    repository.CoachRepository
	customerRepo repository.CustomerRepository
}

// NewPrincipalService creates a principal resolver over the three identity
// repositories.
func NewPrincipalService(
	userRepo repository.UserRepository,
	coachRepo repository.CoachRepository,
	customerRepo repository.CustomerRepository,
) PrincipalService {
	return &principalService{
		userRepo:     userRepo,
		coachRepo:    coachRepo,
		customerRepo: customerRepo,
	}
}

// Resolve loads the user and both optional profiles. A missing profile is
// not an error; a missing user is.
func (s *principalService) Resolve(ctx context.Context, userID primitive.ObjectID) (*Principal, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	principal := &Principal{User: user}

	coach, err := s.coachRepo.GetByUserID(ctx, userID)
	if err == nil {
		principal.Coach = coach
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	customer, err := s.customerRepo.GetByUserID(ctx, userID)
	if err == nil {
		principal.Customer = customer
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	return principal, nil
}
