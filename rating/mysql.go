package rating

import (
	"context"
	"errors"
	"strings"

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

// NewMySQLStore creates a new MySQL-backed rating store.
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

// Create appends a new rating to the ledger.
func (s *MySQLStore) Create(ctx context.Context, rating *Rating) error {
	if err := rating.Validate(); err != nil {
		return err
	}

	if err := s.conn(ctx).Create(rating).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateRating
		}
		s.logger.Error(ctx, "failed to create rating", map[string]interface{}{
			"error":         err.Error(),
			"rater_id":      rating.RaterID.String(),
			"rated_user_id": rating.RatedUserID.String(),
			"project_id":    rating.ProjectID.String(),
		})
		return err
	}

	s.logger.Info(ctx, "rating created", map[string]interface{}{
		"rating_id":     rating.ID.String(),
		"rated_user_id": rating.RatedUserID.String(),
		"project_id":    rating.ProjectID.String(),
		"score":         rating.Score,
	})

	return nil
}

// GetByTriple retrieves the rating a rater gave a user for a project.
func (s *MySQLStore) GetByTriple(ctx context.Context, raterID, ratedUserID, projectID uuid.UUID) (*Rating, error) {
	var rating Rating
	err := s.conn(ctx).
		Where("rater_id = ? AND rated_user_id = ? AND project_id = ?", raterID, ratedUserID, projectID).
		First(&rating).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRatingNotFound
		}
		s.logger.Error(ctx, "failed to get rating", map[string]interface{}{
			"error":         err.Error(),
			"rater_id":      raterID.String(),
			"rated_user_id": ratedUserID.String(),
			"project_id":    projectID.String(),
		})
		return nil, err
	}

	return &rating, nil
}

// ListByRatedUser retrieves all ratings received by a user, newest first.
func (s *MySQLStore) ListByRatedUser(ctx context.Context, ratedUserID uuid.UUID) ([]*Rating, error) {
	var ratings []*Rating
	err := s.conn(ctx).
		Where("rated_user_id = ?", ratedUserID).
		Order("created_at DESC").
		Find(&ratings).Error

	if err != nil {
		s.logger.Error(ctx, "failed to list ratings for user", map[string]interface{}{
			"error":         err.Error(),
			"rated_user_id": ratedUserID.String(),
		})
		return nil, err
	}

	return ratings, nil
}

// ListByProject retrieves all ratings written for a project, newest first.
func (s *MySQLStore) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*Rating, error) {
	var ratings []*Rating
	err := s.conn(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&ratings).Error

	if err != nil {
		s.logger.Error(ctx, "failed to list ratings for project", map[string]interface{}{
			"error":      err.Error(),
			"project_id": projectID.String(),
		})
		return nil, err
	}

	return ratings, nil
}

// AverageByRatedUser computes the mean score a user has received, 0.0 when
// the user has no ratings yet.
func (s *MySQLStore) AverageByRatedUser(ctx context.Context, ratedUserID uuid.UUID) (float64, error) {
	var avg *float64
	err := s.conn(ctx).
		Model(&Rating{}).
		Select("AVG(score)").
		Where("rated_user_id = ?", ratedUserID).
		Scan(&avg).Error

	if err != nil {
		s.logger.Error(ctx, "failed to average ratings", map[string]interface{}{
			"error":         err.Error(),
			"rated_user_id": ratedUserID.String(),
		})
		return 0, err
	}

	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}

// isDuplicateKey detects duplicate key errors from MySQL and SQLite.
func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "Duplicate entry")
}
