package project

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tombers-dev/tombers-backend/database"
	"github.com/tombers-dev/tombers-backend/logger"
)

// MySQLStore implements the Store interface using GORM and MySQL.
type MySQLStore struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewMySQLStore creates a new MySQL-backed project store.
func NewMySQLStore(db *gorm.DB, log logger.Logger) *MySQLStore {
	return &MySQLStore{
		db:     db,
		logger: log,
	}
}

// conn resolves the database handle, honoring an active transaction in ctx.
func (s *MySQLStore) conn(ctx context.Context) *gorm.DB {
	return database.FromContext(ctx, s.db).WithContext(ctx)
}

// Create creates a new project in the database.
func (s *MySQLStore) Create(ctx context.Context, project *Project) error {
	if err := project.Validate(); err != nil {
		return err
	}

	if err := s.conn(ctx).Create(project).Error; err != nil {
		s.logger.Error(ctx, "failed to create project", map[string]interface{}{
			"error":      err.Error(),
			"creator_id": project.CreatorID.String(),
		})
		return err
	}

	s.logger.Info(ctx, "project created", map[string]interface{}{
		"project_id": project.ID.String(),
		"creator_id": project.CreatorID.String(),
	})

	return nil
}

// GetByID retrieves a project by its ID.
func (s *MySQLStore) GetByID(ctx context.Context, id uuid.UUID) (*Project, error) {
	var project Project
	err := s.conn(ctx).
		Where("id = ?", id).
		First(&project).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		s.logger.Error(ctx, "failed to get project by ID", map[string]interface{}{
			"error":      err.Error(),
			"project_id": id.String(),
		})
		return nil, err
	}

	return &project, nil
}

// Save persists the full project aggregate.
func (s *MySQLStore) Save(ctx context.Context, project *Project) error {
	if err := project.Validate(); err != nil {
		return err
	}

	if err := s.conn(ctx).Save(project).Error; err != nil {
		s.logger.Error(ctx, "failed to save project", map[string]interface{}{
			"error":      err.Error(),
			"project_id": project.ID.String(),
		})
		return err
	}

	return nil
}

// Update updates a project with the given setters and returns the updated project.
func (s *MySQLStore) Update(ctx context.Context, id uuid.UUID, setters ...UpdateSetter) (*Project, error) {
	project, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	for _, setter := range setters {
		if err := setter(project); err != nil {
			return nil, err
		}
	}

	if err := s.Save(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "project updated", map[string]interface{}{
		"project_id": id.String(),
	})

	return project, nil
}

// Delete removes a project.
func (s *MySQLStore) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.conn(ctx).
		Where("id = ?", id).
		Delete(&Project{})

	if result.Error != nil {
		s.logger.Error(ctx, "failed to delete project", map[string]interface{}{
			"error":      result.Error.Error(),
			"project_id": id.String(),
		})
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrProjectNotFound
	}

	s.logger.Info(ctx, "project deleted", map[string]interface{}{
		"project_id": id.String(),
	})

	return nil
}

// List retrieves a paginated list of projects.
func (s *MySQLStore) List(ctx context.Context, limit, offset int) ([]*Project, error) {
	var projects []*Project
	err := s.conn(ctx).
		Limit(limit).
		Offset(offset).
		Find(&projects).Error

	if err != nil {
		s.logger.Error(ctx, "failed to list projects", map[string]interface{}{
			"error":  err.Error(),
			"limit":  limit,
			"offset": offset,
		})
		return nil, err
	}

	return projects, nil
}

// Search retrieves projects whose title or description matches the query.
func (s *MySQLStore) Search(ctx context.Context, query string) ([]*Project, error) {
	pattern := "%" + query + "%"

	var projects []*Project
	err := s.conn(ctx).
		Where("title LIKE ? OR description LIKE ?", pattern, pattern).
		Find(&projects).Error

	if err != nil {
		s.logger.Error(ctx, "failed to search projects", map[string]interface{}{
			"error": err.Error(),
			"query": query,
		})
		return nil, err
	}

	return projects, nil
}

// ListActive retrieves active projects ordered by creation time descending.
func (s *MySQLStore) ListActive(ctx context.Context) ([]*Project, error) {
	var projects []*Project
	err := s.conn(ctx).
		Where("status = ?", StatusActive).
		Order("created_at DESC").
		Find(&projects).Error

	if err != nil {
		s.logger.Error(ctx, "failed to list active projects", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	return projects, nil
}

// ListIncomplete retrieves projects below 100% progress ordered by progress
// ascending.
func (s *MySQLStore) ListIncomplete(ctx context.Context) ([]*Project, error) {
	var projects []*Project
	err := s.conn(ctx).
		Where("progress < ?", 100).
		Order("progress ASC").
		Find(&projects).Error

	if err != nil {
		s.logger.Error(ctx, "failed to list incomplete projects", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	return projects, nil
}
