package project

import (
	"context"

	"github.com/google/uuid"
)

// Store defines the interface for project persistence operations.
type Store interface {
	// Create creates a new project in the store.
	Create(ctx context.Context, project *Project) error

	// GetByID retrieves a project by its ID.
	GetByID(ctx context.Context, id uuid.UUID) (*Project, error)

	// Save persists the full project aggregate (upsert by ID).
	Save(ctx context.Context, project *Project) error

	// Update updates a project with the given setters.
	Update(ctx context.Context, id uuid.UUID, setters ...UpdateSetter) (*Project, error)

	// Delete removes a project.
	Delete(ctx context.Context, id uuid.UUID) error

	// List retrieves a paginated list of projects.
	List(ctx context.Context, limit, offset int) ([]*Project, error)

	// Search retrieves projects whose title or description matches the query.
	Search(ctx context.Context, query string) ([]*Project, error)

	// ListActive retrieves active projects ordered by creation time descending.
	ListActive(ctx context.Context) ([]*Project, error)

	// ListIncomplete retrieves projects below 100% progress ordered by progress.
	ListIncomplete(ctx context.Context) ([]*Project, error)
}

// UpdateSetter is a function that updates a project field.
type UpdateSetter func(*Project) error
