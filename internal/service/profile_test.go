package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nroshal/circlet-server/internal/model"
	"github.com/nroshal/circlet-server/internal/testutil"
)

type profileFixture struct {
	users    *testutil.MemoryUserStore
	follows  *testutil.MemoryFollowStore
	profiles *testutil.MemoryProfileStore
	posts    *testutil.MemoryPostStore
	follow   *Follow
	svc      *Profile
}

func newProfileFixture(t *testing.T, usernames ...string) (*profileFixture, map[string]model.User) {
	t.Helper()

	f := &profileFixture{
		users:    testutil.NewMemoryUserStore(),
		follows:  testutil.NewMemoryFollowStore(),
		profiles: testutil.NewMemoryProfileStore(),
		posts:    testutil.NewMemoryPostStore(),
	}
	log := testutil.MakeNoopLogger()
	f.follow = NewFollow(f.follows, f.users, log)
	f.svc = NewProfile(f.profiles, f.users, f.follows, f.posts, log)

	ctx := context.Background()
	byName := make(map[string]model.User, len(usernames))
	for _, username := range usernames {
		user, err := f.users.Create(ctx, model.User{ID: uuid.New(), Username: username, Name: username})
		require.NoError(t, err)
		_, err = f.follow.CreateEdge(ctx, user.ID)
		require.NoError(t, err)
		byName[username] = user
	}
	return f, byName
}

func TestProfile_Create(t *testing.T) {
	ctx := context.Background()
	f, users := newProfileFixture(t, "alice")
	alice := users["alice"]

	postID := uuid.New()
	f.posts.Add(model.Post{ID: postID, AuthorID: alice.ID})

	profile, err := f.svc.Create(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, profile.UserID)
	assert.Equal(t, []uuid.UUID{postID}, profile.PostIDs)
	assert.Empty(t, profile.Bio)
}

func TestProfile_Create_AlreadyExists(t *testing.T) {
	ctx := context.Background()
	f, users := newProfileFixture(t, "alice")

	_, err := f.svc.Create(ctx, users["alice"].ID)
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, users["alice"].ID)
	assert.ErrorIs(t, err, model.ErrAlreadyExists)
}

func TestProfile_Create_UnknownUser(t *testing.T) {
	ctx := context.Background()
	f, _ := newProfileFixture(t)

	_, err := f.svc.Create(ctx, uuid.New())
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestProfile_Get_ResolvesNames(t *testing.T) {
	ctx := context.Background()
	f, users := newProfileFixture(t, "alice", "bob", "carol")
	alice := users["alice"]

	_, err := f.svc.Create(ctx, alice.ID)
	require.NoError(t, err)
	_, err = f.follow.Follow(ctx, alice.ID, "bob")
	require.NoError(t, err)
	_, err = f.follow.Follow(ctx, users["carol"].ID, "alice")
	require.NoError(t, err)

	view, err := f.svc.Get(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", view.Username)
	assert.Equal(t, []string{"bob"}, view.FollowingNames)
	assert.Equal(t, []string{"carol"}, view.FollowerNames)
}

// A follower whose account is mid-deletion may still be referenced by the
// edge record. The read drops the dangling id instead of failing.
func TestProfile_Get_SkipsDanglingReferences(t *testing.T) {
	ctx := context.Background()
	f, users := newProfileFixture(t, "alice", "bob")
	alice, bob := users["alice"], users["bob"]

	_, err := f.svc.Create(ctx, alice.ID)
	require.NoError(t, err)
	_, err = f.follow.Follow(ctx, bob.ID, "alice")
	require.NoError(t, err)

	f.users.Delete(bob.ID)

	view, err := f.svc.Get(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, view.FollowerNames)
}

func TestProfile_GetByUsername_NotFound(t *testing.T) {
	ctx := context.Background()
	f, _ := newProfileFixture(t, "alice")

	_, err := f.svc.GetByUsername(ctx, "ghost")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestProfile_Update_Bio(t *testing.T) {
	ctx := context.Background()
	f, users := newProfileFixture(t, "alice")
	alice := users["alice"]

	_, err := f.svc.Create(ctx, alice.ID)
	require.NoError(t, err)

	bio := "hello"
	view, err := f.svc.Update(ctx, alice.ID, UpdateProfileParams{Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, "hello", view.Bio)
}

func TestProfile_Update_AppendPostID(t *testing.T) {
	ctx := context.Background()
	f, users := newProfileFixture(t, "alice")
	alice := users["alice"]

	_, err := f.svc.Create(ctx, alice.ID)
	require.NoError(t, err)

	postID := uuid.New()
	view, err := f.svc.Update(ctx, alice.ID, UpdateProfileParams{AppendPostID: &postID})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{postID}, view.PostIDs)

	// Appending the same id again is a no-op.
	view, err = f.svc.Update(ctx, alice.ID, UpdateProfileParams{AppendPostID: &postID})
	require.NoError(t, err)
	assert.Len(t, view.PostIDs, 1)
}

func TestProfile_Update_NotFound(t *testing.T) {
	ctx := context.Background()
	f, users := newProfileFixture(t, "alice")

	bio := "hello"
	_, err := f.svc.Update(ctx, users["alice"].ID, UpdateProfileParams{Bio: &bio})
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestProfile_Remove_EnsureAbsent(t *testing.T) {
	ctx := context.Background()
	f, users := newProfileFixture(t, "alice")
	alice := users["alice"]

	_, err := f.svc.Create(ctx, alice.ID)
	require.NoError(t, err)

	require.NoError(t, f.svc.Remove(ctx, alice.ID))
	require.NoError(t, f.svc.Remove(ctx, alice.ID))

	_, err = f.svc.Get(ctx, alice.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
}
