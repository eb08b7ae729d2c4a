// Package testutil provides test doubles: a silent logger and in-memory
// store implementations. The memory stores honor the same set semantics and
// sentinel errors as the postgres repositories, which lets service tests
// drive whole multi-record scenarios and then inspect every record.
package testutil

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nroshal/circlet-server/internal/model"
)

var (
	_ model.UserStore    = (*MemoryUserStore)(nil)
	_ model.FollowStore  = (*MemoryFollowStore)(nil)
	_ model.CircleStore  = (*MemoryCircleStore)(nil)
	_ model.ProfileStore = (*MemoryProfileStore)(nil)
	_ model.StudioStore  = (*MemoryStudioStore)(nil)
	_ model.PostStore    = (*MemoryPostStore)(nil)
)

// MemoryUserStore is an in-memory model.UserStore.
type MemoryUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]model.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[uuid.UUID]model.User)}
}

func (s *MemoryUserStore) GetByID(_ context.Context, id uuid.UUID) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	return user, nil
}

func (s *MemoryUserStore) GetByUsername(_ context.Context, username string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Username == username {
			return user, nil
		}
	}
	return model.User{}, model.ErrNotFound
}

func (s *MemoryUserStore) Create(_ context.Context, user model.User) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Username == user.Username {
			return model.User{}, model.ErrAlreadyExists
		}
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	s.users[user.ID] = user
	return user, nil
}

// Delete removes a user, simulating the identity registry dropping the
// account ahead of the deletion cascade.
func (s *MemoryUserStore) Delete(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
}

// MemoryFollowStore is an in-memory model.FollowStore.
type MemoryFollowStore struct {
	mu    sync.Mutex
	edges map[uuid.UUID]model.FollowEdge
}

func NewMemoryFollowStore() *MemoryFollowStore {
	return &MemoryFollowStore{edges: make(map[uuid.UUID]model.FollowEdge)}
}

func (s *MemoryFollowStore) Create(_ context.Context, edge model.FollowEdge) (model.FollowEdge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.edges[edge.UserID]; ok {
		return model.FollowEdge{}, model.ErrAlreadyExists
	}
	s.edges[edge.UserID] = cloneEdge(edge)
	return edge, nil
}

func (s *MemoryFollowStore) GetByUserID(_ context.Context, userID uuid.UUID) (model.FollowEdge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	edge, ok := s.edges[userID]
	if !ok {
		return model.FollowEdge{}, model.ErrNotFound
	}
	return cloneEdge(edge), nil
}

func (s *MemoryFollowStore) AddFollowing(_ context.Context, userID, targetID uuid.UUID) error {
	return s.update(userID, func(edge *model.FollowEdge) {
		edge.Following = appendUnique(edge.Following, targetID)
	})
}

func (s *MemoryFollowStore) AddFollower(_ context.Context, userID, targetID uuid.UUID) error {
	return s.update(userID, func(edge *model.FollowEdge) {
		edge.Followers = appendUnique(edge.Followers, targetID)
	})
}

func (s *MemoryFollowStore) RemoveFollowing(_ context.Context, userID, targetID uuid.UUID) error {
	return s.update(userID, func(edge *model.FollowEdge) {
		edge.Following = removeID(edge.Following, targetID)
	})
}

func (s *MemoryFollowStore) RemoveFollower(_ context.Context, userID, targetID uuid.UUID) error {
	return s.update(userID, func(edge *model.FollowEdge) {
		edge.Followers = removeID(edge.Followers, targetID)
	})
}

func (s *MemoryFollowStore) RemoveFromAll(_ context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, edge := range s.edges {
		edge.Followers = removeID(edge.Followers, userID)
		edge.Following = removeID(edge.Following, userID)
		s.edges[id] = edge
	}
	return nil
}

func (s *MemoryFollowStore) Delete(_ context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.edges, userID)
	return nil
}

func (s *MemoryFollowStore) update(userID uuid.UUID, fn func(*model.FollowEdge)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	edge, ok := s.edges[userID]
	if !ok {
		return model.ErrNotFound
	}
	fn(&edge)
	s.edges[userID] = edge
	return nil
}

// MemoryCircleStore is an in-memory model.CircleStore.
type MemoryCircleStore struct {
	mu       sync.Mutex
	replicas map[uuid.UUID]map[string]model.Circle
}

func NewMemoryCircleStore() *MemoryCircleStore {
	return &MemoryCircleStore{replicas: make(map[uuid.UUID]map[string]model.Circle)}
}

func (s *MemoryCircleStore) Create(_ context.Context, circle model.Circle) (model.Circle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	owned := s.replicas[circle.OwnerID]
	if owned == nil {
		owned = make(map[string]model.Circle)
		s.replicas[circle.OwnerID] = owned
	}
	if _, ok := owned[circle.Name]; ok {
		return model.Circle{}, model.ErrAlreadyExists
	}
	owned[circle.Name] = cloneCircle(circle)
	return circle, nil
}

func (s *MemoryCircleStore) GetByOwnerAndName(_ context.Context, ownerID uuid.UUID, name string) (model.Circle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	circle, ok := s.replicas[ownerID][name]
	if !ok {
		return model.Circle{}, model.ErrNotFound
	}
	return cloneCircle(circle), nil
}

func (s *MemoryCircleStore) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]model.Circle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var circles []model.Circle
	for _, circle := range s.replicas[ownerID] {
		circles = append(circles, cloneCircle(circle))
	}
	sort.Slice(circles, func(i, j int) bool { return circles[i].Name < circles[j].Name })
	return circles, nil
}

func (s *MemoryCircleStore) ListByName(_ context.Context, name string) ([]model.Circle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var circles []model.Circle
	for _, owned := range s.replicas {
		if circle, ok := owned[name]; ok {
			circles = append(circles, cloneCircle(circle))
		}
	}
	return circles, nil
}

func (s *MemoryCircleStore) ListByMember(_ context.Context, memberID uuid.UUID) ([]model.Circle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var circles []model.Circle
	for _, owned := range s.replicas {
		for _, circle := range owned {
			if circle.HasMember(memberID) {
				circles = append(circles, cloneCircle(circle))
			}
		}
	}
	return circles, nil
}

func (s *MemoryCircleStore) AddMember(_ context.Context, ownerID uuid.UUID, name string, memberID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	circle, ok := s.replicas[ownerID][name]
	if !ok {
		return model.ErrNotFound
	}
	circle.Members = appendUnique(circle.Members, memberID)
	s.replicas[ownerID][name] = circle
	return nil
}

func (s *MemoryCircleStore) RemoveMember(_ context.Context, ownerID uuid.UUID, name string, memberID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	circle, ok := s.replicas[ownerID][name]
	if !ok {
		return nil
	}
	circle.Members = removeID(circle.Members, memberID)
	s.replicas[ownerID][name] = circle
	return nil
}

func (s *MemoryCircleStore) Delete(_ context.Context, ownerID uuid.UUID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.replicas[ownerID], name)
	return nil
}

func (s *MemoryCircleStore) DeleteAllByOwner(_ context.Context, ownerID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.replicas, ownerID)
	return nil
}

// MemoryProfileStore is an in-memory model.ProfileStore.
type MemoryProfileStore struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]model.Profile
}

func NewMemoryProfileStore() *MemoryProfileStore {
	return &MemoryProfileStore{profiles: make(map[uuid.UUID]model.Profile)}
}

func (s *MemoryProfileStore) Create(_ context.Context, profile model.Profile) (model.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[profile.UserID]; ok {
		return model.Profile{}, model.ErrAlreadyExists
	}
	s.profiles[profile.UserID] = profile
	return profile, nil
}

func (s *MemoryProfileStore) GetByUserID(_ context.Context, userID uuid.UUID) (model.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile, ok := s.profiles[userID]
	if !ok {
		return model.Profile{}, model.ErrNotFound
	}
	return profile, nil
}

func (s *MemoryProfileStore) SetBio(_ context.Context, userID uuid.UUID, bio string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile, ok := s.profiles[userID]
	if !ok {
		return model.ErrNotFound
	}
	profile.Bio = bio
	s.profiles[userID] = profile
	return nil
}

func (s *MemoryProfileStore) AppendPostID(_ context.Context, userID uuid.UUID, postID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile, ok := s.profiles[userID]
	if !ok {
		return model.ErrNotFound
	}
	profile.PostIDs = appendUnique(profile.PostIDs, postID)
	s.profiles[userID] = profile
	return nil
}

func (s *MemoryProfileStore) Delete(_ context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.profiles, userID)
	return nil
}

// MemoryStudioStore is an in-memory model.StudioStore.
type MemoryStudioStore struct {
	mu      sync.Mutex
	studios map[uuid.UUID]model.Studio
}

func NewMemoryStudioStore() *MemoryStudioStore {
	return &MemoryStudioStore{studios: make(map[uuid.UUID]model.Studio)}
}

func (s *MemoryStudioStore) Create(_ context.Context, studio model.Studio) (model.Studio, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.studios[studio.PostID]; ok {
		return model.Studio{}, model.ErrAlreadyExists
	}
	s.studios[studio.PostID] = studio
	return studio, nil
}

func (s *MemoryStudioStore) GetByPostID(_ context.Context, postID uuid.UUID) (model.Studio, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	studio, ok := s.studios[postID]
	if !ok {
		return model.Studio{}, model.ErrNotFound
	}
	return studio, nil
}

func (s *MemoryStudioStore) ListByPostIDs(_ context.Context, postIDs []uuid.UUID) ([]model.Studio, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var studios []model.Studio
	for _, id := range postIDs {
		if studio, ok := s.studios[id]; ok {
			studios = append(studios, studio)
		}
	}
	return studios, nil
}

func (s *MemoryStudioStore) Update(_ context.Context, studio model.Studio) (model.Studio, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.studios[studio.PostID]
	if !ok {
		return model.Studio{}, model.ErrNotFound
	}
	existing.Font = studio.Font
	existing.Color = studio.Color
	existing.DateModified = studio.DateModified
	s.studios[studio.PostID] = existing
	return existing, nil
}

func (s *MemoryStudioStore) Delete(_ context.Context, postID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.studios, postID)
	return nil
}

func (s *MemoryStudioStore) DeleteByPostIDs(_ context.Context, postIDs []uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range postIDs {
		delete(s.studios, id)
	}
	return nil
}

// MemoryPostStore is an in-memory model.PostStore.
type MemoryPostStore struct {
	mu    sync.Mutex
	posts map[uuid.UUID]model.Post
}

func NewMemoryPostStore() *MemoryPostStore {
	return &MemoryPostStore{posts: make(map[uuid.UUID]model.Post)}
}

func (s *MemoryPostStore) GetByID(_ context.Context, id uuid.UUID) (model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.posts[id]
	if !ok {
		return model.Post{}, model.ErrNotFound
	}
	return post, nil
}

func (s *MemoryPostStore) ListAuthoredBy(_ context.Context, authorID uuid.UUID) ([]uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []uuid.UUID
	for _, post := range s.posts {
		if post.AuthorID == authorID {
			ids = append(ids, post.ID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids, nil
}

func (s *MemoryPostStore) DeleteAuthoredBy(_ context.Context, authorID uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for id, post := range s.posts {
		if post.AuthorID == authorID {
			delete(s.posts, id)
			count++
		}
	}
	return count, nil
}

func (s *MemoryPostStore) TouchModified(_ context.Context, id uuid.UUID, modified time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.posts[id]
	if !ok {
		return model.ErrNotFound
	}
	post.DateModified = modified
	s.posts[id] = post
	return nil
}

// Add seeds a post, standing in for the out-of-scope post creation flow.
func (s *MemoryPostStore) Add(post model.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if post.DateCreated.IsZero() {
		post.DateCreated = time.Now().UTC()
	}
	if post.DateModified.IsZero() {
		post.DateModified = post.DateCreated
	}
	s.posts[post.ID] = post
}

func cloneEdge(edge model.FollowEdge) model.FollowEdge {
	edge.Followers = slices.Clone(edge.Followers)
	edge.Following = slices.Clone(edge.Following)
	return edge
}

func cloneCircle(circle model.Circle) model.Circle {
	circle.Members = slices.Clone(circle.Members)
	circle.PostIDs = slices.Clone(circle.PostIDs)
	return circle
}

func appendUnique(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	if slices.Contains(ids, id) {
		return ids
	}
	return append(ids, id)
}

func removeID(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	out := ids[:0]
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}
