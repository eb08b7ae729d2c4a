package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when a user, edge, post or attachment is absent.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists guards duplicate record creation.
	ErrAlreadyExists = errors.New("already exists")
	// ErrAlreadyFollowing is returned when the follow edge is already present.
	ErrAlreadyFollowing = errors.New("already following")
	// ErrNotFollowing is returned when unfollowing an absent edge.
	ErrNotFollowing = errors.New("not following")
	// ErrSelfFollow is returned on an attempted self-follow or self-unfollow.
	ErrSelfFollow = errors.New("cannot follow yourself")
	// ErrDuplicateName is returned when the owner already has a circle with
	// the requested name.
	ErrDuplicateName = errors.New("circle name already in use")
	// ErrAlreadyMember is returned when the invited user is already in the circle.
	ErrAlreadyMember = errors.New("already a member of this circle")
	// ErrNotAFollower is returned when the invited user does not follow the
	// requester. Only followers may be added to a circle.
	ErrNotAFollower = errors.New("only followers may be added to a circle")
	// ErrCircleNotFound is returned when the requester holds no circle
	// replica under the given name.
	ErrCircleNotFound = errors.New("no circle under this name")
	// ErrPermissionDenied is returned when acting on a record owned by
	// someone else.
	ErrPermissionDenied = errors.New("permission denied")
)

// PartialCascadeError reports a multi-record cascade interrupted partway.
// Completed names the steps that already applied; because every step is an
// idempotent ensure-absent or set-union write, retrying the identical logical
// request converges without duplication.
type PartialCascadeError struct {
	Op        string
	Step      string
	Completed []string
	Err       error
}

func (e *PartialCascadeError) Error() string {
	if len(e.Completed) == 0 {
		return fmt.Sprintf("%s interrupted at %q: %v", e.Op, e.Step, e.Err)
	}
	return fmt.Sprintf("%s interrupted at %q (completed: %s): %v",
		e.Op, e.Step, strings.Join(e.Completed, ", "), e.Err)
}

func (e *PartialCascadeError) Unwrap() error {
	return e.Err
}
