package http

import (
	"time"

	"github.com/google/uuid"

	"github.com/nroshal/circlet-server/internal/model"
)

type userResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(user model.User) userResponse {
	return userResponse{
		ID:        user.ID,
		Username:  user.Username,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
	}
}

type followEdgeResponse struct {
	ID        uuid.UUID   `json:"id"`
	UserID    uuid.UUID   `json:"user_id"`
	Followers []uuid.UUID `json:"followers"`
	Following []uuid.UUID `json:"following"`
}

func toFollowEdgeResponse(edge model.FollowEdge) followEdgeResponse {
	return followEdgeResponse{
		ID:        edge.ID,
		UserID:    edge.UserID,
		Followers: edge.Followers,
		Following: edge.Following,
	}
}

type circleResponse struct {
	ID      uuid.UUID   `json:"id"`
	OwnerID uuid.UUID   `json:"owner_id"`
	Name    string      `json:"name"`
	Members []uuid.UUID `json:"members"`
	PostIDs []uuid.UUID `json:"post_ids"`
}

func toCircleResponse(circle model.Circle) circleResponse {
	return circleResponse{
		ID:      circle.ID,
		OwnerID: circle.OwnerID,
		Name:    circle.Name,
		Members: circle.Members,
		PostIDs: circle.PostIDs,
	}
}

func toCircleResponses(circles []model.Circle) []circleResponse {
	out := make([]circleResponse, 0, len(circles))
	for _, circle := range circles {
		out = append(out, toCircleResponse(circle))
	}
	return out
}

type profileResponse struct {
	ID             uuid.UUID   `json:"id"`
	UserID         uuid.UUID   `json:"user_id"`
	Username       string      `json:"username"`
	Name           string      `json:"name"`
	Bio            string      `json:"bio"`
	PostIDs        []uuid.UUID `json:"post_ids"`
	FollowerNames  []string    `json:"followers"`
	FollowingNames []string    `json:"following"`
}

func toProfileResponse(view model.ProfileView) profileResponse {
	return profileResponse{
		ID:             view.ID,
		UserID:         view.UserID,
		Username:       view.Username,
		Name:           view.Name,
		Bio:            view.Bio,
		PostIDs:        view.PostIDs,
		FollowerNames:  view.FollowerNames,
		FollowingNames: view.FollowingNames,
	}
}

type studioResponse struct {
	ID           uuid.UUID `json:"id"`
	PostID       uuid.UUID `json:"post_id"`
	Font         string    `json:"font"`
	Color        string    `json:"color"`
	DateModified time.Time `json:"date_modified"`
}

func toStudioResponse(studio model.Studio) studioResponse {
	return studioResponse{
		ID:           studio.ID,
		PostID:       studio.PostID,
		Font:         studio.Font,
		Color:        studio.Color,
		DateModified: studio.DateModified,
	}
}

func toStudioResponses(studios []model.Studio) []studioResponse {
	out := make([]studioResponse, 0, len(studios))
	for _, studio := range studios {
		out = append(out, toStudioResponse(studio))
	}
	return out
}
