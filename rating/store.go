package rating

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrRatingNotFound is returned when a rating is not found.
	ErrRatingNotFound = errors.New("rating not found")

	// ErrDuplicateRating is returned when the rater has already rated this
	// user for this project.
	ErrDuplicateRating = errors.New("user already rated for this project")
)

// Store defines the interface for rating persistence operations.
type Store interface {
	// Create appends a new rating to the ledger.
	Create(ctx context.Context, rating *Rating) error

	// GetByTriple retrieves the rating a rater gave a user for a project.
	GetByTriple(ctx context.Context, raterID, ratedUserID, projectID uuid.UUID) (*Rating, error)

	// ListByRatedUser retrieves all ratings received by a user, newest first.
	ListByRatedUser(ctx context.Context, ratedUserID uuid.UUID) ([]*Rating, error)

	// ListByProject retrieves all ratings written for a project, newest first.
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*Rating, error)

	// AverageByRatedUser computes the mean score a user has received.
	// A user with no ratings averages 0.0.
	AverageByRatedUser(ctx context.Context, ratedUserID uuid.UUID) (float64, error)
}
