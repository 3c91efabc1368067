package service

import (
	"context"
	"errors"

	"fitpulse/fitness-backend/internal/domain"
	"fitpulse/fitness-backend/internal/repository"
)

// AssignmentResult is what an assign operation hands back: the created link,
// the users on both sides, and the dialogue chat between them.
type AssignmentResult struct {
	Assignment   *domain.Assignment
	CoachUser    *domain.User
	CustomerUser *domain.User
	Chat         *domain.Chat
}

// createAssignmentPair links an already-resolved coach and customer and
// opens (or reuses) the DIALOGUE chat between their users. Both assign
// directions funnel through here so the pair is symmetric by construction.
func createAssignmentPair(
	ctx context.Context,
	userRepo repository.UserRepository,
	assignmentRepo repository.AssignmentRepository,
	chats ChatService,
	coach *domain.Coach,
	customer *domain.Customer,
) (*AssignmentResult, error) {
	assignment := &domain.Assignment{
		CoachID:    coach.ID,
		CustomerID: customer.ID,
	}
	assignmentID, err := assignmentRepo.Create(ctx, assignment)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrAlreadyAssigned
		}
		return nil, err
	}
	assignment.ID = assignmentID

	coachUser, err := userRepo.GetByID(ctx, coach.UserID)
	if err != nil {
		return nil, err
	}
	customerUser, err := userRepo.GetByID(ctx, customer.UserID)
	if err != nil {
		return nil, err
	}

	chat, err := chats.CreateDialogue(ctx, coach.UserID, customer.UserID)
	if err != nil {
		return nil, err
	}

	return &AssignmentResult{
		Assignment:   assignment,
		CoachUser:    coachUser,
		CustomerUser: customerUser,
		Chat:         chat,
	}, nil
}

// deleteAssignmentPair removes the link. A missing pair is a conflict, not
// a not-found: unassigning twice is a caller state error. The dialogue chat
// stays in place.
func deleteAssignmentPair(
	ctx context.Context,
	assignmentRepo repository.AssignmentRepository,
	coach *domain.Coach,
	customer *domain.Customer,
) error {
	err := assignmentRepo.Delete(ctx, coach.ID, customer.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotAssigned
		}
		return err
	}
	return nil
}
