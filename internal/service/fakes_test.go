package service

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"fitpulse/fitness-backend/internal/domain"
	"fitpulse/fitness-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes. They honor the same error contracts as the
// mongo implementations (ErrNotFound, ErrConflict on unique keys) so the
// services under test cannot tell the difference.

type pairKey struct {
	a primitive.ObjectID
	b primitive.ObjectID
}

type dayKey struct {
	user primitive.ObjectID
	date time.Time
}

// --- Users ---

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return primitive.NilObjectID, repository.ErrConflict
		}
	}
	id := primitive.NewObjectID()
	user.ID = id
	user.CreatedAt = time.Now().UTC()
	r.users[id] = *user
	return id, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) List(_ context.Context, page, size int) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		all = append(all, u)
	}
	return paginate(all, page, size), nil
}

func (r *fakeUserRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

// --- Coaches ---

type fakeCoachRepo struct {
	mu      sync.Mutex
	coaches map[primitive.ObjectID]domain.Coach
}

func newFakeCoachRepo() *fakeCoachRepo {
	return &fakeCoachRepo{coaches: make(map[primitive.ObjectID]domain.Coach)}
}

func (r *fakeCoachRepo) Create(_ context.Context, coach *domain.Coach) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.coaches {
		if c.UserID == coach.UserID {
			return primitive.NilObjectID, repository.ErrConflict
		}
	}
	id := primitive.NewObjectID()
	coach.ID = id
	if coach.Rating == 0 {
		coach.Rating = domain.DefaultCoachRating
	}
	r.coaches[id] = *coach
	return id, nil
}

func (r *fakeCoachRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Coach, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.coaches[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r *fakeCoachRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) (*domain.Coach, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.coaches {
		if c.UserID == userID {
			out := c
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeCoachRepo) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]domain.Coach, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Coach, 0, len(ids))
	for _, id := range ids {
		if c, ok := r.coaches[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCoachRepo) List(_ context.Context, page, size int) ([]domain.Coach, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]domain.Coach, 0, len(r.coaches))
	for _, c := range r.coaches {
		all = append(all, c)
	}
	return paginate(all, page, size), nil
}

func (r *fakeCoachRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.coaches)), nil
}

func (r *fakeCoachRepo) Update(_ context.Context, coach *domain.Coach) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.coaches[coach.ID]; !ok {
		return repository.ErrNotFound
	}
	r.coaches[coach.ID] = *coach
	return nil
}

func (r *fakeCoachRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.coaches[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.coaches, id)
	return nil
}

// --- Customers ---

type fakeCustomerRepo struct {
	mu        sync.Mutex
	customers map[primitive.ObjectID]domain.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[primitive.ObjectID]domain.Customer)}
}

func (r *fakeCustomerRepo) Create(_ context.Context, customer *domain.Customer) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.customers {
		if c.UserID == customer.UserID {
			return primitive.NilObjectID, repository.ErrConflict
		}
	}
	id := primitive.NewObjectID()
	customer.ID = id
	r.customers[id] = *customer
	return id, nil
}

func (r *fakeCustomerRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.customers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r *fakeCustomerRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) (*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.customers {
		if c.UserID == userID {
			out := c
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeCustomerRepo) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Customer, 0, len(ids))
	for _, id := range ids {
		if c, ok := r.customers[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCustomerRepo) List(_ context.Context, page, size int) ([]domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]domain.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		all = append(all, c)
	}
	return paginate(all, page, size), nil
}

func (r *fakeCustomerRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.customers)), nil
}

func (r *fakeCustomerRepo) Update(_ context.Context, customer *domain.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.customers[customer.ID]; !ok {
		return repository.ErrNotFound
	}
	r.customers[customer.ID] = *customer
	return nil
}

func (r *fakeCustomerRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.customers[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.customers, id)
	return nil
}

// --- Assignments ---

type fakeAssignmentRepo struct {
	mu    sync.Mutex
	pairs map[pairKey]domain.Assignment
}

func newFakeAssignmentRepo() *fakeAssignmentRepo {
	return &fakeAssignmentRepo{pairs: make(map[pairKey]domain.Assignment)}
}

func (r *fakeAssignmentRepo) Create(_ context.Context, assignment *domain.Assignment) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := pairKey{assignment.CoachID, assignment.CustomerID}
	if _, ok := r.pairs[key]; ok {
		return primitive.NilObjectID, repository.ErrConflict
	}
	id := primitive.NewObjectID()
	assignment.ID = id
	assignment.CreatedAt = time.Now().UTC()
	r.pairs[key] = *assignment
	return id, nil
}

func (r *fakeAssignmentRepo) Delete(_ context.Context, coachID, customerID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := pairKey{coachID, customerID}
	if _, ok := r.pairs[key]; !ok {
		return repository.ErrNotFound
	}
	delete(r.pairs, key)
	return nil
}

func (r *fakeAssignmentRepo) Exists(_ context.Context, coachID, customerID primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.pairs[pairKey{coachID, customerID}]
	return ok, nil
}

func (r *fakeAssignmentRepo) ListCustomerIDsByCoach(_ context.Context, coachID primitive.ObjectID, page, size int) ([]primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []primitive.ObjectID
	for key := range r.pairs {
		if key.a == coachID {
			ids = append(ids, key.b)
		}
	}
	return paginate(ids, page, size), nil
}

func (r *fakeAssignmentRepo) CountByCoach(_ context.Context, coachID primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for key := range r.pairs {
		if key.a == coachID {
			n++
		}
	}
	return n, nil
}

func (r *fakeAssignmentRepo) ListCoachIDsByCustomer(_ context.Context, customerID primitive.ObjectID, page, size int) ([]primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []primitive.ObjectID
	for key := range r.pairs {
		if key.b == customerID {
			ids = append(ids, key.a)
		}
	}
	return paginate(ids, page, size), nil
}

func (r *fakeAssignmentRepo) CountByCustomer(_ context.Context, customerID primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for key := range r.pairs {
		if key.b == customerID {
			n++
		}
	}
	return n, nil
}

func (r *fakeAssignmentRepo) DeleteByCoach(_ context.Context, coachID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key := range r.pairs {
		if key.a == coachID {
			delete(r.pairs, key)
		}
	}
	return nil
}

func (r *fakeAssignmentRepo) DeleteByCustomer(_ context.Context, customerID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key := range r.pairs {
		if key.b == customerID {
			delete(r.pairs, key)
		}
	}
	return nil
}

// --- Chats ---

type fakeChatRepo struct {
	mu    sync.Mutex
	chats map[primitive.ObjectID]domain.Chat
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{chats: make(map[primitive.ObjectID]domain.Chat)}
}

func (r *fakeChatRepo) Create(_ context.Context, chat *domain.Chat) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := primitive.NewObjectID()
	chat.ID = id
	chat.CreatedAt = time.Now().UTC()
	r.chats[id] = *chat
	return id, nil
}

func (r *fakeChatRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.chats[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r *fakeChatRepo) FindDialogueByUsers(_ context.Context, userID1, userID2 primitive.ObjectID) (*domain.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.chats {
		if c.Type == domain.ChatDialogue && len(c.UserIDs) == 2 && c.HasMember(userID1) && c.HasMember(userID2) {
			out := c
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeChatRepo) ListDialoguesByUser(_ context.Context, userID primitive.ObjectID, page, size int) ([]domain.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Chat
	for _, c := range r.chats {
		if c.Type == domain.ChatDialogue && c.HasMember(userID) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastTimestamp.After(out[j].LastTimestamp) })
	return paginate(out, page, size), nil
}

func (r *fakeChatRepo) CountDialoguesByUser(_ context.Context, userID primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, c := range r.chats {
		if c.Type == domain.ChatDialogue && c.HasMember(userID) {
			n++
		}
	}
	return n, nil
}

func (r *fakeChatRepo) SetLastTimestamp(_ context.Context, chatID primitive.ObjectID, ts time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.chats[chatID]
	if !ok {
		return repository.ErrNotFound
	}
	c.LastTimestamp = ts
	r.chats[chatID] = c
	return nil
}

func (r *fakeChatRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.chats[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.chats, id)
	return nil
}

// --- Messages ---

type fakeMessageRepo struct {
	mu       sync.Mutex
	messages map[primitive.ObjectID]domain.Message
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{messages: make(map[primitive.ObjectID]domain.Message)}
}

func (r *fakeMessageRepo) Create(_ context.Context, message *domain.Message) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := primitive.NewObjectID()
	message.ID = id
	if message.Timestamp.IsZero() {
		message.Timestamp = time.Now().UTC()
	}
	r.messages[id] = *message
	return id, nil
}

func (r *fakeMessageRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.messages[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &m, nil
}

func (r *fakeMessageRepo) ListByChatID(_ context.Context, chatID primitive.ObjectID, page, size int) ([]domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Message
	for _, m := range r.messages {
		if m.ChatID == chatID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return paginate(out, page, size), nil
}

func (r *fakeMessageRepo) CountByChatID(_ context.Context, chatID primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, m := range r.messages {
		if m.ChatID == chatID {
			n++
		}
	}
	return n, nil
}

func (r *fakeMessageRepo) Update(_ context.Context, message *domain.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.messages[message.ID]; !ok {
		return repository.ErrNotFound
	}
	r.messages[message.ID] = *message
	return nil
}

func (r *fakeMessageRepo) DeleteByChatID(_ context.Context, chatID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, m := range r.messages {
		if m.ChatID == chatID {
			delete(r.messages, id)
		}
	}
	return nil
}

// --- Workouts ---

type fakeWorkoutRepo struct {
	mu       sync.Mutex
	workouts map[primitive.ObjectID]domain.Workout
}

func newFakeWorkoutRepo() *fakeWorkoutRepo {
	return &fakeWorkoutRepo{workouts: make(map[primitive.ObjectID]domain.Workout)}
}

func (r *fakeWorkoutRepo) Create(_ context.Context, workout *domain.Workout) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := primitive.NewObjectID()
	workout.ID = id
	workout.CreatedAt = time.Now().UTC()
	r.workouts[id] = *workout
	return id, nil
}

func (r *fakeWorkoutRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.workouts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &w, nil
}

func (r *fakeWorkoutRepo) matches(w domain.Workout, filter repository.WorkoutFilter) bool {
	if filter.CoachID != nil {
		owned := w.CoachID != nil && *w.CoachID == *filter.CoachID
		library := w.CoachID == nil && w.CustomerID == nil
		if !owned && !library {
			return false
		}
	}
	if filter.CustomerID != nil {
		if w.CustomerID == nil || *w.CustomerID != *filter.CustomerID {
			return false
		}
	}
	if filter.Name != "" && !strings.Contains(strings.ToLower(w.Name), strings.ToLower(filter.Name)) {
		return false
	}
	if filter.TypeConnection != "" && !strings.Contains(strings.ToLower(string(w.TypeConnection)), strings.ToLower(filter.TypeConnection)) {
		return false
	}
	if filter.TimeStartFrom != nil && (w.TimeStart == nil || w.TimeStart.Before(*filter.TimeStartFrom)) {
		return false
	}
	if filter.TimeStartTo != nil && (w.TimeStart == nil || w.TimeStart.After(*filter.TimeStartTo)) {
		return false
	}
	return true
}

func (r *fakeWorkoutRepo) List(_ context.Context, filter repository.WorkoutFilter, page, size int) ([]domain.Workout, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Workout
	for _, w := range r.workouts {
		if r.matches(w, filter) {
			out = append(out, w)
		}
	}
	return paginate(out, page, size), nil
}

func (r *fakeWorkoutRepo) Count(_ context.Context, filter repository.WorkoutFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, w := range r.workouts {
		if r.matches(w, filter) {
			n++
		}
	}
	return n, nil
}

func (r *fakeWorkoutRepo) Update(_ context.Context, workout *domain.Workout) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.workouts[workout.ID]; !ok {
		return repository.ErrNotFound
	}
	r.workouts[workout.ID] = *workout
	return nil
}

func (r *fakeWorkoutRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.workouts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.workouts, id)
	return nil
}

// --- Exercise entries ---

// fakeExerciseWorkoutRepo keeps insertion order so the numOrder sort can be
// verified to be stable.
type fakeExerciseWorkoutRepo struct {
	mu      sync.Mutex
	entries []domain.ExerciseWorkout
}

func newFakeExerciseWorkoutRepo() *fakeExerciseWorkoutRepo {
	return &fakeExerciseWorkoutRepo{}
}

func (r *fakeExerciseWorkoutRepo) Create(_ context.Context, ew *domain.ExerciseWorkout) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := primitive.NewObjectID()
	ew.ID = id
	r.entries = append(r.entries, *ew)
	return id, nil
}

func (r *fakeExerciseWorkoutRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.ExerciseWorkout, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.ID == id {
			out := e
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeExerciseWorkoutRepo) ListByWorkoutID(_ context.Context, workoutID primitive.ObjectID) ([]domain.ExerciseWorkout, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.ExerciseWorkout
	for _, e := range r.entries {
		if e.WorkoutID == workoutID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].NumOrder < out[j].NumOrder })
	return out, nil
}

func (r *fakeExerciseWorkoutRepo) Update(_ context.Context, ew *domain.ExerciseWorkout) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.entries {
		if e.ID == ew.ID {
			r.entries[i] = *ew
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeExerciseWorkoutRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.entries {
		if e.ID == id {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeExerciseWorkoutRepo) DeleteByWorkoutID(_ context.Context, workoutID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.entries[:0]
	for _, e := range r.entries {
		if e.WorkoutID != workoutID {
			kept = append(kept, e)
		}
	}
	r.entries = kept
	return nil
}

func (r *fakeExerciseWorkoutRepo) DeleteByExerciseID(_ context.Context, exerciseID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.entries[:0]
	for _, e := range r.entries {
		if e.ExerciseID != exerciseID {
			kept = append(kept, e)
		}
	}
	r.entries = kept
	return nil
}

// --- Exercises ---

type fakeExerciseRepo struct {
	mu        sync.Mutex
	exercises map[primitive.ObjectID]domain.Exercise
}

func newFakeExerciseRepo() *fakeExerciseRepo {
	return &fakeExerciseRepo{exercises: make(map[primitive.ObjectID]domain.Exercise)}
}

func (r *fakeExerciseRepo) Create(_ context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := primitive.NewObjectID()
	exercise.ID = id
	r.exercises[id] = *exercise
	return id, nil
}

func (r *fakeExerciseRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.exercises[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &e, nil
}

func (r *fakeExerciseRepo) matches(e domain.Exercise, filter repository.ExerciseFilter) bool {
	if filter.UserID != nil {
		owned := e.UserID != nil && *e.UserID == *filter.UserID
		library := e.UserID == nil
		if !owned && !library {
			return false
		}
	}
	if filter.Name != "" && !strings.Contains(strings.ToLower(e.Name), strings.ToLower(filter.Name)) {
		return false
	}
	if filter.Muscle != "" && !strings.Contains(strings.ToLower(e.Muscle), strings.ToLower(filter.Muscle)) {
		return false
	}
	if filter.Type != "" && !strings.Contains(strings.ToLower(e.Type), strings.ToLower(filter.Type)) {
		return false
	}
	return true
}

func (r *fakeExerciseRepo) Search(_ context.Context, filter repository.ExerciseFilter, page, size int) ([]domain.Exercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Exercise
	for _, e := range r.exercises {
		if r.matches(e, filter) {
			out = append(out, e)
		}
	}
	return paginate(out, page, size), nil
}

func (r *fakeExerciseRepo) Count(_ context.Context, filter repository.ExerciseFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, e := range r.exercises {
		if r.matches(e, filter) {
			n++
		}
	}
	return n, nil
}

func (r *fakeExerciseRepo) Update(_ context.Context, exercise *domain.Exercise) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.exercises[exercise.ID]; !ok {
		return repository.ErrNotFound
	}
	r.exercises[exercise.ID] = *exercise
	return nil
}

func (r *fakeExerciseRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.exercises[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.exercises, id)
	return nil
}

// --- Feedback ---

type fakeFeedbackRepo struct {
	mu        sync.Mutex
	feedbacks map[pairKey]domain.Feedback // (customer, coach)
}

func newFakeFeedbackRepo() *fakeFeedbackRepo {
	return &fakeFeedbackRepo{feedbacks: make(map[pairKey]domain.Feedback)}
}

func (r *fakeFeedbackRepo) Create(_ context.Context, feedback *domain.Feedback) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := pairKey{feedback.CustomerID, feedback.CoachID}
	if _, ok := r.feedbacks[key]; ok {
		return primitive.NilObjectID, repository.ErrConflict
	}
	id := primitive.NewObjectID()
	feedback.ID = id
	r.feedbacks[key] = *feedback
	return id, nil
}

func (r *fakeFeedbackRepo) GetByPair(_ context.Context, coachID, customerID primitive.ObjectID) (*domain.Feedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.feedbacks[pairKey{customerID, coachID}]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &f, nil
}

func (r *fakeFeedbackRepo) Exists(_ context.Context, coachID, customerID primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.feedbacks[pairKey{customerID, coachID}]
	return ok, nil
}

func (r *fakeFeedbackRepo) ListByCoach(_ context.Context, coachID primitive.ObjectID) ([]domain.Feedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Feedback
	for key, f := range r.feedbacks {
		if key.b == coachID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *fakeFeedbackRepo) Update(_ context.Context, feedback *domain.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := pairKey{feedback.CustomerID, feedback.CoachID}
	if _, ok := r.feedbacks[key]; !ok {
		return repository.ErrNotFound
	}
	r.feedbacks[key] = *feedback
	return nil
}

// --- Diary ---

type fakeDiaryRepo struct {
	mu      sync.Mutex
	entries map[primitive.ObjectID]domain.DiaryEntry
}

func newFakeDiaryRepo() *fakeDiaryRepo {
	return &fakeDiaryRepo{entries: make(map[primitive.ObjectID]domain.DiaryEntry)}
}

func (r *fakeDiaryRepo) Create(_ context.Context, entry *domain.DiaryEntry) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.UserID == entry.UserID && e.Date.Equal(entry.Date) {
			return primitive.NilObjectID, repository.ErrConflict
		}
	}
	id := primitive.NewObjectID()
	entry.ID = id
	r.entries[id] = *entry
	return id, nil
}

func (r *fakeDiaryRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.DiaryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &e, nil
}

func (r *fakeDiaryRepo) GetByUserAndDate(_ context.Context, userID primitive.ObjectID, date time.Time) (*domain.DiaryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.UserID == userID && e.Date.Equal(date) {
			out := e
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeDiaryRepo) ListByUserRange(_ context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.DiaryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.DiaryEntry
	for _, e := range r.entries {
		if e.UserID == userID && !e.Date.Before(from) && !e.Date.After(to) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *fakeDiaryRepo) Update(_ context.Context, entry *domain.DiaryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[entry.ID]; !ok {
		return repository.ErrNotFound
	}
	r.entries[entry.ID] = *entry
	return nil
}

func (r *fakeDiaryRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.entries, id)
	return nil
}

// --- Steps / Water ---

type fakeStepsRepo struct {
	mu      sync.Mutex
	entries map[dayKey]domain.StepsEntry
}

func newFakeStepsRepo() *fakeStepsRepo {
	return &fakeStepsRepo{entries: make(map[dayKey]domain.StepsEntry)}
}

func (r *fakeStepsRepo) Upsert(_ context.Context, entry *domain.StepsEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[dayKey{entry.UserID, entry.Date}] = *entry
	return nil
}

func (r *fakeStepsRepo) GetByUserAndDate(_ context.Context, userID primitive.ObjectID, date time.Time) (*domain.StepsEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[dayKey{userID, date}]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &e, nil
}

func (r *fakeStepsRepo) ListByUserRange(_ context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.StepsEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.StepsEntry
	for key, e := range r.entries {
		if key.user == userID && !e.Date.Before(from) && !e.Date.After(to) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

type fakeWaterRepo struct {
	mu      sync.Mutex
	entries map[dayKey]domain.WaterEntry
}

func newFakeWaterRepo() *fakeWaterRepo {
	return &fakeWaterRepo{entries: make(map[dayKey]domain.WaterEntry)}
}

func (r *fakeWaterRepo) Upsert(_ context.Context, entry *domain.WaterEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[dayKey{entry.UserID, entry.Date}] = *entry
	return nil
}

func (r *fakeWaterRepo) GetByUserAndDate(_ context.Context, userID primitive.ObjectID, date time.Time) (*domain.WaterEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[dayKey{userID, date}]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &e, nil
}

func (r *fakeWaterRepo) ListByUserRange(_ context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.WaterEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.WaterEntry
	for key, e := range r.entries {
		if key.user == userID && !e.Date.Before(from) && !e.Date.After(to) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// --- Products ---

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[primitive.ObjectID]domain.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[primitive.ObjectID]domain.Product)}
}

func (r *fakeProductRepo) Create(_ context.Context, product *domain.Product) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := primitive.NewObjectID()
	product.ID = id
	r.products[id] = *product
	return id, nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r *fakeProductRepo) List(_ context.Context, category domain.ProductCategory, page, size int) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Product
	for _, p := range r.products {
		if category == "" || p.Category == category {
			out = append(out, p)
		}
	}
	return paginate(out, page, size), nil
}

func (r *fakeProductRepo) Count(_ context.Context, category domain.ProductCategory) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, p := range r.products {
		if category == "" || p.Category == category {
			n++
		}
	}
	return n, nil
}

func (r *fakeProductRepo) Update(_ context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[product.ID]; !ok {
		return repository.ErrNotFound
	}
	r.products[product.ID] = *product
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

// --- File service stub ---

// stubFileService hands back deterministic URLs without touching storage.
type stubFileService struct{}

func (stubFileService) Upload(context.Context, string, string, io.Reader) (*domain.FileEntity, error) {
	return nil, ErrBadRequest
}

func (stubFileService) GetByID(context.Context, primitive.ObjectID) (*domain.FileEntity, error) {
	return nil, ErrFileNotFound
}

func (stubFileService) GetURL(_ context.Context, filename string) (string, error) {
	return "https://files.test/" + filename, nil
}

func (s stubFileService) ResolveURLs(ctx context.Context, filenames []string) ([]string, error) {
	urls := make([]string, len(filenames))
	for i, name := range filenames {
		urls[i], _ = s.GetURL(ctx, name)
	}
	return urls, nil
}

func (stubFileService) AttachToExercise(context.Context, primitive.ObjectID, primitive.ObjectID) error {
	return nil
}

func (stubFileService) ListExercisePhotos(context.Context, primitive.ObjectID) ([]domain.FileEntity, error) {
	return nil, nil
}

func (stubFileService) Delete(context.Context, primitive.ObjectID) error {
	return nil
}

// --- Shared helpers ---

func paginate[T any](items []T, page, size int) []T {
	if size <= 0 {
		return items
	}
	start := page * size
	if start >= len(items) {
		return nil
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// testWorld bundles the full fake repository set with the services wired the
// same way main wires them.
type testWorld struct {
	userRepo       *fakeUserRepo
	coachRepo      *fakeCoachRepo
	customerRepo   *fakeCustomerRepo
	assignmentRepo *fakeAssignmentRepo
	chatRepo       *fakeChatRepo
	messageRepo    *fakeMessageRepo
	workoutRepo    *fakeWorkoutRepo
	ewRepo         *fakeExerciseWorkoutRepo
	exerciseRepo   *fakeExerciseRepo
	feedbackRepo   *fakeFeedbackRepo

	principals PrincipalService
	chats      ChatService
	coaches    CoachService
	customers  CustomerService
	workouts   WorkoutService
	messages   MessageService
	feedbacks  FeedbackService
}

func newTestWorld() *testWorld {
	w := &testWorld{
		userRepo:       newFakeUserRepo(),
		coachRepo:      newFakeCoachRepo(),
		customerRepo:   newFakeCustomerRepo(),
		assignmentRepo: newFakeAssignmentRepo(),
		chatRepo:       newFakeChatRepo(),
		messageRepo:    newFakeMessageRepo(),
		workoutRepo:    newFakeWorkoutRepo(),
		ewRepo:         newFakeExerciseWorkoutRepo(),
		exerciseRepo:   newFakeExerciseRepo(),
		feedbackRepo:   newFakeFeedbackRepo(),
	}
	w.principals = NewPrincipalService(w.userRepo, w.coachRepo, w.customerRepo)
	w.chats = NewChatService(w.chatRepo, w.messageRepo)
	w.coaches = NewCoachService(w.userRepo, w.coachRepo, w.customerRepo, w.assignmentRepo, w.chats)
	w.customers = NewCustomerService(w.userRepo, w.coachRepo, w.customerRepo, w.assignmentRepo, w.chats)
	w.workouts = NewWorkoutService(w.workoutRepo, w.ewRepo, w.exerciseRepo, w.coachRepo, w.customerRepo, w.chats)
	w.messages = NewMessageService(w.messageRepo, w.chatRepo, w.chats, stubFileService{})
	w.feedbacks = NewFeedbackService(w.feedbackRepo, w.coachRepo, w.assignmentRepo)
	return w
}

var userSeq int

// registerCoach creates a user with a coach profile and hands back its
// principal.
func (w *testWorld) registerCoach(t *testing.T) *Principal {
	t.Helper()
	userSeq++
	principal, err := w.coaches.Register(context.Background(), RegisterCoachInput{
		RegisterUserInput: RegisterUserInput{
			Email:    fmt.Sprintf("coach%d@test.dev", userSeq),
			Name:     fmt.Sprintf("Coach %d", userSeq),
			Password: "password123",
		},
		Speciality: domain.SpecialityAdult,
	})
	if err != nil {
		t.Fatalf("register coach: %v", err)
	}
	return principal
}

// registerCustomer creates a user with a customer profile.
func (w *testWorld) registerCustomer(t *testing.T) *Principal {
	t.Helper()
	userSeq++
	principal, err := w.customers.Register(context.Background(), RegisterCustomerInput{
		RegisterUserInput: RegisterUserInput{
			Email:    fmt.Sprintf("customer%d@test.dev", userSeq),
			Name:     fmt.Sprintf("Customer %d", userSeq),
			Password: "password123",
		},
		Goal:         domain.GoalBeActive,
		FitnessLevel: domain.LevelBeginner,
		Preference:   domain.PreferenceCardio,
	})
	if err != nil {
		t.Fatalf("register customer: %v", err)
	}
	return principal
}

// addExercise seeds a library exercise (no owner).
func (w *testWorld) addExercise(name string) primitive.ObjectID {
	id, _ := w.exerciseRepo.Create(context.Background(), &domain.Exercise{Name: name})
	return id
}
