package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/nroshal/circlet-server/internal/model"
)

// MockUserStore mocks the UserStore interface
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserStore) GetByUsername(ctx context.Context, username string) (model.User, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserStore) Create(ctx context.Context, user model.User) (model.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(model.User), args.Error(1)
}

// MockFollowStore mocks the FollowStore interface
type MockFollowStore struct {
	mock.Mock
}

func (m *MockFollowStore) Create(ctx context.Context, edge model.FollowEdge) (model.FollowEdge, error) {
	args := m.Called(ctx, edge)
	return args.Get(0).(model.FollowEdge), args.Error(1)
}

func (m *MockFollowStore) GetByUserID(ctx context.Context, userID uuid.UUID) (model.FollowEdge, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(model.FollowEdge), args.Error(1)
}

func (m *MockFollowStore) AddFollowing(ctx context.Context, userID, targetID uuid.UUID) error {
	args := m.Called(ctx, userID, targetID)
	return args.Error(0)
}

func (m *MockFollowStore) AddFollower(ctx context.Context, userID, targetID uuid.UUID) error {
	args := m.Called(ctx, userID, targetID)
	return args.Error(0)
}

func (m *MockFollowStore) RemoveFollowing(ctx context.Context, userID, targetID uuid.UUID) error {
	args := m.Called(ctx, userID, targetID)
	return args.Error(0)
}

func (m *MockFollowStore) RemoveFollower(ctx context.Context, userID, targetID uuid.UUID) error {
	args := m.Called(ctx, userID, targetID)
	return args.Error(0)
}

func (m *MockFollowStore) RemoveFromAll(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockFollowStore) Delete(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockCircleStore mocks the CircleStore interface
type MockCircleStore struct {
	mock.Mock
}

func (m *MockCircleStore) Create(ctx context.Context, circle model.Circle) (model.Circle, error) {
	args := m.Called(ctx, circle)
	return args.Get(0).(model.Circle), args.Error(1)
}

func (m *MockCircleStore) GetByOwnerAndName(ctx context.Context, ownerID uuid.UUID, name string) (model.Circle, error) {
	args := m.Called(ctx, ownerID, name)
	return args.Get(0).(model.Circle), args.Error(1)
}

func (m *MockCircleStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Circle, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]model.Circle), args.Error(1)
}

func (m *MockCircleStore) ListByName(ctx context.Context, name string) ([]model.Circle, error) {
	args := m.Called(ctx, name)
	return args.Get(0).([]model.Circle), args.Error(1)
}

func (m *MockCircleStore) ListByMember(ctx context.Context, memberID uuid.UUID) ([]model.Circle, error) {
	args := m.Called(ctx, memberID)
	return args.Get(0).([]model.Circle), args.Error(1)
}

func (m *MockCircleStore) AddMember(ctx context.Context, ownerID uuid.UUID, name string, memberID uuid.UUID) error {
	args := m.Called(ctx, ownerID, name, memberID)
	return args.Error(0)
}

func (m *MockCircleStore) RemoveMember(ctx context.Context, ownerID uuid.UUID, name string, memberID uuid.UUID) error {
	args := m.Called(ctx, ownerID, name, memberID)
	return args.Error(0)
}

func (m *MockCircleStore) Delete(ctx context.Context, ownerID uuid.UUID, name string) error {
	args := m.Called(ctx, ownerID, name)
	return args.Error(0)
}

func (m *MockCircleStore) DeleteAllByOwner(ctx context.Context, ownerID uuid.UUID) error {
	args := m.Called(ctx, ownerID)
	return args.Error(0)
}

// MockProfileStore mocks the ProfileStore interface
type MockProfileStore struct {
	mock.Mock
}

func (m *MockProfileStore) Create(ctx context.Context, profile model.Profile) (model.Profile, error) {
	args := m.Called(ctx, profile)
	return args.Get(0).(model.Profile), args.Error(1)
}

func (m *MockProfileStore) GetByUserID(ctx context.Context, userID uuid.UUID) (model.Profile, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(model.Profile), args.Error(1)
}

func (m *MockProfileStore) SetBio(ctx context.Context, userID uuid.UUID, bio string) error {
	args := m.Called(ctx, userID, bio)
	return args.Error(0)
}

func (m *MockProfileStore) AppendPostID(ctx context.Context, userID uuid.UUID, postID uuid.UUID) error {
	args := m.Called(ctx, userID, postID)
	return args.Error(0)
}

func (m *MockProfileStore) Delete(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockStudioStore mocks the StudioStore interface
type MockStudioStore struct {
	mock.Mock
}

func (m *MockStudioStore) Create(ctx context.Context, studio model.Studio) (model.Studio, error) {
	args := m.Called(ctx, studio)
	return args.Get(0).(model.Studio), args.Error(1)
}

func (m *MockStudioStore) GetByPostID(ctx context.Context, postID uuid.UUID) (model.Studio, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).(model.Studio), args.Error(1)
}

func (m *MockStudioStore) ListByPostIDs(ctx context.Context, postIDs []uuid.UUID) ([]model.Studio, error) {
	args := m.Called(ctx, postIDs)
	return args.Get(0).([]model.Studio), args.Error(1)
}

func (m *MockStudioStore) Update(ctx context.Context, studio model.Studio) (model.Studio, error) {
	args := m.Called(ctx, studio)
	return args.Get(0).(model.Studio), args.Error(1)
}

func (m *MockStudioStore) Delete(ctx context.Context, postID uuid.UUID) error {
	args := m.Called(ctx, postID)
	return args.Error(0)
}

func (m *MockStudioStore) DeleteByPostIDs(ctx context.Context, postIDs []uuid.UUID) error {
	args := m.Called(ctx, postIDs)
	return args.Error(0)
}

// MockPostStore mocks the PostStore interface
type MockPostStore struct {
	mock.Mock
}

func (m *MockPostStore) GetByID(ctx context.Context, id uuid.UUID) (model.Post, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Post), args.Error(1)
}

func (m *MockPostStore) ListAuthoredBy(ctx context.Context, authorID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, authorID)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockPostStore) DeleteAuthoredBy(ctx context.Context, authorID uuid.UUID) (int64, error) {
	args := m.Called(ctx, authorID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPostStore) TouchModified(ctx context.Context, id uuid.UUID, modified time.Time) error {
	args := m.Called(ctx, id, modified)
	return args.Error(0)
}
