package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nroshal/circlet-server/internal/model"
	"github.com/nroshal/circlet-server/internal/testutil"
)

// MockCircleGraph mocks the CircleGraph interface
type MockCircleGraph struct {
	mock.Mock
}

func (m *MockCircleGraph) JoinPublic(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockCircleGraph) RemoveUserEverywhere(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type accountFixture struct {
	users    *testutil.MemoryUserStore
	follows  *testutil.MemoryFollowStore
	circles  *testutil.MemoryCircleStore
	profiles *testutil.MemoryProfileStore
	studios  *testutil.MemoryStudioStore
	posts    *testutil.MemoryPostStore

	follow  *Follow
	circle  *Circle
	profile *Profile
	studio  *Studio
	svc     *Account
}

func newAccountFixture(t *testing.T) *accountFixture {
	t.Helper()

	f := &accountFixture{
		users:    testutil.NewMemoryUserStore(),
		follows:  testutil.NewMemoryFollowStore(),
		circles:  testutil.NewMemoryCircleStore(),
		profiles: testutil.NewMemoryProfileStore(),
		studios:  testutil.NewMemoryStudioStore(),
		posts:    testutil.NewMemoryPostStore(),
	}
	log := testutil.MakeNoopLogger()
	f.follow = NewFollow(f.follows, f.users, log)
	f.circle = NewCircle(f.circles, f.follows, f.users, log)
	f.profile = NewProfile(f.profiles, f.users, f.follows, f.posts, log)
	f.studio = NewStudio(f.studios, f.posts, f.users, log)
	f.svc = NewAccount(f.users, f.posts, f.follow, f.circle, f.profile, f.studio, log)
	return f
}

func TestAccount_Register(t *testing.T) {
	ctx := context.Background()
	f := newAccountFixture(t)

	user, err := f.svc.Register(ctx, "alice", "Alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	edge, err := f.follow.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, edge.Followers)
	assert.Empty(t, edge.Following)

	view, err := f.profile.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", view.Username)

	public, err := f.circle.Find(ctx, user.ID, model.PublicCircleName)
	require.NoError(t, err)
	assert.True(t, public.HasMember(user.ID))
}

func TestAccount_Register_SecondUserSeesFirst(t *testing.T) {
	ctx := context.Background()
	f := newAccountFixture(t)

	alice, err := f.svc.Register(ctx, "alice", "Alice")
	require.NoError(t, err)
	bob, err := f.svc.Register(ctx, "bob", "Bob")
	require.NoError(t, err)

	for _, userID := range []uuid.UUID{alice.ID, bob.ID} {
		replica, err := f.circle.Find(ctx, userID, model.PublicCircleName)
		require.NoError(t, err)
		assert.ElementsMatch(t, []uuid.UUID{alice.ID, bob.ID}, replica.Members)
	}
}

func TestAccount_Register_UsernameTaken(t *testing.T) {
	ctx := context.Background()
	f := newAccountFixture(t)

	_, err := f.svc.Register(ctx, "alice", "Alice")
	require.NoError(t, err)

	_, err = f.svc.Register(ctx, "alice", "Other Alice")
	assert.ErrorIs(t, err, model.ErrAlreadyExists)
}

// The whole lifecycle: two accounts, a follow, a circle invite, a post with
// an attachment, a leave, then the first account is deleted. Nothing in the
// surviving account's records may still reference the deleted one.
func TestAccount_Delete_Cascade(t *testing.T) {
	ctx := context.Background()
	f := newAccountFixture(t)

	alice, err := f.svc.Register(ctx, "alice", "Alice")
	require.NoError(t, err)
	bob, err := f.svc.Register(ctx, "bob", "Bob")
	require.NoError(t, err)

	_, err = f.circle.Create(ctx, alice.ID, "inner")
	require.NoError(t, err)
	_, err = f.follow.Follow(ctx, bob.ID, "alice")
	require.NoError(t, err)
	_, err = f.circle.AddMember(ctx, alice.ID, "inner", "bob")
	require.NoError(t, err)

	post := model.Post{ID: uuid.New(), AuthorID: alice.ID}
	f.posts.Add(post)
	_, err = f.studio.Attach(ctx, alice.ID, post.ID, StudioParams{Font: strPtr("mono")})
	require.NoError(t, err)
	_, err = f.profile.Update(ctx, alice.ID, UpdateProfileParams{AppendPostID: &post.ID})
	require.NoError(t, err)

	require.NoError(t, f.circle.Leave(ctx, bob.ID, "inner"))
	require.NoError(t, f.svc.Delete(ctx, alice.ID))

	_, err = f.follow.Get(ctx, alice.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)

	circles, err := f.circle.List(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, circles)

	_, err = f.profile.Get(ctx, alice.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = f.studio.Get(ctx, post.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = f.posts.GetByID(ctx, post.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)

	bobEdge, err := f.follow.Get(ctx, bob.ID)
	require.NoError(t, err)
	assert.False(t, bobEdge.IsFollowing(alice.ID))

	bobPublic, err := f.circle.Find(ctx, bob.ID, model.PublicCircleName)
	require.NoError(t, err)
	assert.False(t, bobPublic.HasMember(alice.ID))
}

func TestAccount_Delete_Rerun(t *testing.T) {
	ctx := context.Background()
	f := newAccountFixture(t)

	alice, err := f.svc.Register(ctx, "alice", "Alice")
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, alice.ID))
	require.NoError(t, f.svc.Delete(ctx, alice.ID))
}

func TestAccount_Delete_StepFails(t *testing.T) {
	ctx := context.Background()
	f := newAccountFixture(t)

	alice, err := f.svc.Register(ctx, "alice", "Alice")
	require.NoError(t, err)

	circles := &MockCircleGraph{}
	circles.On("RemoveUserEverywhere", mock.Anything, alice.ID).Return(errors.New("connection reset"))
	f.svc.circles = circles

	err = f.svc.Delete(ctx, alice.ID)
	require.Error(t, err)

	var cascadeErr *model.PartialCascadeError
	require.ErrorAs(t, err, &cascadeErr)
	assert.Equal(t, "delete account", cascadeErr.Op)
	assert.Equal(t, "remove circle replicas", cascadeErr.Step)
	assert.Equal(t, []string{"remove follow edges"}, cascadeErr.Completed)
	circles.AssertExpectations(t)
}

func TestAccount_Register_BootstrapFails(t *testing.T) {
	ctx := context.Background()
	f := newAccountFixture(t)

	circles := &MockCircleGraph{}
	circles.On("JoinPublic", mock.Anything, mock.Anything).Return(errors.New("connection reset"))
	f.svc.circles = circles

	_, err := f.svc.Register(ctx, "alice", "Alice")
	require.Error(t, err)

	var cascadeErr *model.PartialCascadeError
	require.ErrorAs(t, err, &cascadeErr)
	assert.Equal(t, "register", cascadeErr.Op)
	assert.Equal(t, "join public circle", cascadeErr.Step)
	assert.Equal(t, []string{"create user", "create follow edge", "create profile"}, cascadeErr.Completed)
}
