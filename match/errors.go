package match

import "errors"

// The engine reports business-rule rejections as distinct sentinel errors.
// Handlers map them onto HTTP statuses: conflicts (already liked, already
// disliked) to 409, unmet state preconditions (not liked, not disliked, not
// interested) to 422, authorization denials to 403, and missing identity to
// 401. Missing users and projects surface as the store packages' not-found
// errors.
var (
	// ErrUnauthenticated is returned when the acting-user identity is missing
	// or blank. Checked before any domain logic runs.
	ErrUnauthenticated = errors.New("acting user identity is required")

	// ErrForbidden is returned when the authorization gate denies a
	// project-scoped action.
	ErrForbidden = errors.New("not allowed to manage this project")

	// ErrAlreadyLiked is returned when liking a project that is already liked.
	ErrAlreadyLiked = errors.New("project already liked")

	// ErrNotLiked is returned when unliking a project that is not liked.
	ErrNotLiked = errors.New("project is not liked")

	// ErrAlreadyDisliked is returned when disliking an already disliked project.
	ErrAlreadyDisliked = errors.New("project already disliked")

	// ErrNotDisliked is returned when undisliking a project that is not disliked.
	ErrNotDisliked = errors.New("project is not disliked")

	// ErrNotInterested is returned when accepting or rejecting a user who is
	// not in the project's interested set.
	ErrNotInterested = errors.New("user has not expressed interest in this project")

	// ErrInvalidAction is returned for an unknown manage-interested action.
	ErrInvalidAction = errors.New("action must be ACCEPT or REJECT")
)
