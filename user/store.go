package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateEmail is returned when attempting to create a user with an
	// existing email or username.
	ErrDuplicateEmail = errors.New("email or username already exists")
)

// Store defines the interface for user persistence operations.
type Store interface {
	// Create creates a new user in the store.
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by their ID.
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)

	// GetByEmail retrieves a user by their email address.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// Save persists the full user aggregate (upsert by ID).
	Save(ctx context.Context, user *User) error

	// Update updates a user with the given setters.
	Update(ctx context.Context, id uuid.UUID, setters ...UpdateSetter) (*User, error)

	// List retrieves a paginated list of users.
	List(ctx context.Context, limit, offset int) ([]*User, error)

	// Search retrieves users whose name, username or specialization matches the query.
	Search(ctx context.Context, query string) ([]*User, error)

	// ListAvailable retrieves users whose status is available.
	ListAvailable(ctx context.Context) ([]*User, error)
}

// UpdateSetter is a function that updates a user field.
type UpdateSetter func(*User) error
