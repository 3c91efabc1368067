package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignCustomerOpensDialogue(t *testing.T) {
	w := newTestWorld()
	ctx := context.Background()
	coach := w.registerCoach(t)
	customer := w.registerCustomer(t)

	result, err := w.coaches.AssignCustomer(ctx, coach, customer.Customer.ID)
	require.NoError(t, err)
	require.NotNil(t, result.Assignment)
	assert.Equal(t, coach.Coach.ID, result.Assignment.CoachID)
	assert.Equal(t, customer.Customer.ID, result.Assignment.CustomerID)
	assert.Equal(t, coach.User.ID, result.CoachUser.ID)
	assert.Equal(t, customer.User.ID, result.CustomerUser.ID)
	require.NotNil(t, result.Chat)
	assert.True(t, result.Chat.HasMember(coach.UserID()))
	assert.True(t, result.Chat.HasMember(customer.UserID()))
}

func TestAssignTwiceIsConflict(t *testing.T) {
	w := newTestWorld()
	ctx := context.Background()
	coach := w.registerCoach(t)
	customer := w.registerCustomer(t)

	_, err := w.coaches.AssignCustomer(ctx, coach, customer.Customer.ID)
	require.NoError(t, err)

	_, err = w.coaches.AssignCustomer(ctx, coach, customer.Customer.ID)
	assert.ErrorIs(t, err, ErrAlreadyAssigned)

	// The customer-initiated direction hits the same pair.
	_, err = w.customers.AssignCoach(ctx, customer, coach.Coach.ID)
	assert.ErrorIs(t, err, ErrAlreadyAssigned)
}

func TestUnassignIsSymmetric(t *testing.T) {
	w := newTestWorld()
	ctx := context.Background()
	coach := w.registerCoach(t)
	customer := w.registerCustomer(t)

	// Assigned from the customer side, removed from the coach side.
	_, err := w.customers.AssignCoach(ctx, customer, coach.Coach.ID)
	require.NoError(t, err)
	require.NoError(t, w.coaches.UnassignCustomer(ctx, coach, customer.Customer.ID))

	// Unassigning an already-removed pair is a conflict in either direction.
	assert.ErrorIs(t, w.coaches.UnassignCustomer(ctx, coach, customer.Customer.ID), ErrNotAssigned)
	assert.ErrorIs(t, w.customers.UnassignCoach(ctx, customer, coach.Coach.ID), ErrNotAssigned)
}

func TestAssignRequiresMatchingProfile(t *testing.T) {
	w := newTestWorld()
	ctx := context.Background()
	coach := w.registerCoach(t)
	customer := w.registerCustomer(t)

	// A customer-only principal cannot act as a coach and vice versa.
	_, err := w.coaches.AssignCustomer(ctx, customer, customer.Customer.ID)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = w.customers.AssignCoach(ctx, coach, coach.Coach.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestReassignReusesDialogue(t *testing.T) {
	w := newTestWorld()
	ctx := context.Background()
	coach := w.registerCoach(t)
	customer := w.registerCustomer(t)

	first, err := w.coaches.AssignCustomer(ctx, coach, customer.Customer.ID)
	require.NoError(t, err)
	require.NoError(t, w.coaches.UnassignCustomer(ctx, coach, customer.Customer.ID))

	// The dialogue survives the unassign and is picked up again.
	second, err := w.coaches.AssignCustomer(ctx, coach, customer.Customer.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Chat.ID, second.Chat.ID)
}

func TestListCustomersAfterAssign(t *testing.T) {
	w := newTestWorld()
	ctx := context.Background()
	coach := w.registerCoach(t)
	first := w.registerCustomer(t)
	second := w.registerCustomer(t)

	_, err := w.coaches.AssignCustomer(ctx, coach, first.Customer.ID)
	require.NoError(t, err)
	_, err = w.coaches.AssignCustomer(ctx, coach, second.Customer.ID)
	require.NoError(t, err)

	customers, total, err := w.coaches.ListCustomers(ctx, coach, 0, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, customers, 2)

	coaches, total, err := w.customers.ListCoaches(ctx, first, 0, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, coaches, 1)
	assert.Equal(t, coach.Coach.ID, coaches[0].ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	w := newTestWorld()
	ctx := context.Background()
	coach := w.registerCoach(t)

	_, err := w.customers.Register(ctx, RegisterCustomerInput{
		RegisterUserInput: RegisterUserInput{
			Email:    coach.User.Email,
			Name:     "Someone Else",
			Password: "password123",
		},
	})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestAttachSecondProfileMakesBoth(t *testing.T) {
	w := newTestWorld()
	ctx := context.Background()
	coach := w.registerCoach(t)

	_, err := w.customers.AttachProfile(ctx, coach.UserID(), CustomerProfileInput{})
	require.NoError(t, err)

	principal, err := w.principals.Resolve(ctx, coach.UserID())
	require.NoError(t, err)
	assert.NotNil(t, principal.Coach)
	assert.NotNil(t, principal.Customer)

	// Attaching the same profile twice is a conflict.
	_, err = w.customers.AttachProfile(ctx, coach.UserID(), CustomerProfileInput{})
	assert.ErrorIs(t, err, ErrCustomerProfileExists)
}
