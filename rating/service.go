package rating

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/tombers-dev/tombers-backend/database"
	"github.com/tombers-dev/tombers-backend/logger"
	"github.com/tombers-dev/tombers-backend/match"
	"github.com/tombers-dev/tombers-backend/project"
	"github.com/tombers-dev/tombers-backend/user"
)

var (
	// ErrNotProjectCreator is returned when someone other than the project's
	// creator tries to write a rating.
	ErrNotProjectCreator = errors.New("only the project creator may rate members")

	// ErrNotProjectMember is returned when the rated user is not a member of
	// the project.
	ErrNotProjectMember = errors.New("rated user is not a member of this project")
)

// Service enforces rating eligibility before appending to the ledger: only
// the project's creator may rate, only current members may be rated, and
// each (rater, rated user, project) triple is written at most once.
type Service struct {
	ratings  Store
	users    user.Store
	projects project.Store
	tx       database.TxManager
	logger   logger.Logger
}

// NewService creates a new rating service.
func NewService(ratings Store, users user.Store, projects project.Store, tx database.TxManager, log logger.Logger) *Service {
	return &Service{
		ratings:  ratings,
		users:    users,
		projects: projects,
		tx:       tx,
		logger:   log,
	}
}

// UserSummary aggregates a user's received ratings.
type UserSummary struct {
	UserID  uuid.UUID `json:"user_id"`
	Average float64   `json:"average_rating"`
	Total   int       `json:"total_ratings"`
	Ratings []*Rating `json:"ratings"`
}

// Rate writes a rating for a project member on behalf of the acting user.
func (s *Service) Rate(ctx context.Context, raterEmail string, ratedUserID, projectID uuid.UUID, score int, comment string) (*Rating, error) {
	var created *Rating
	err := s.tx.Do(ctx, func(ctx context.Context) error {
		email := strings.TrimSpace(raterEmail)
		if email == "" {
			return match.ErrUnauthenticated
		}

		rater, err := s.users.GetByEmail(ctx, email)
		if err != nil {
			return err
		}

		proj, err := s.projects.GetByID(ctx, projectID)
		if err != nil {
			return err
		}

		if proj.CreatorID != rater.ID {
			s.logger.Warn(ctx, "rating denied", map[string]interface{}{
				"rater_id":   rater.ID.String(),
				"project_id": projectID.String(),
				"reason":     "not project creator",
			})
			return ErrNotProjectCreator
		}

		rated, err := s.users.GetByID(ctx, ratedUserID)
		if err != nil {
			return err
		}

		if !proj.MemberIDs.Contains(rated.ID) {
			return ErrNotProjectMember
		}

		if _, err := s.ratings.GetByTriple(ctx, rater.ID, rated.ID, projectID); err == nil {
			return ErrDuplicateRating
		} else if !errors.Is(err, ErrRatingNotFound) {
			return err
		}

		r := &Rating{
			RaterID:     rater.ID,
			RatedUserID: rated.ID,
			ProjectID:   projectID,
			Score:       score,
			Comment:     comment,
		}
		if err := s.ratings.Create(ctx, r); err != nil {
			return err
		}

		created = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// SummaryForUser returns a user's received ratings with their average score.
func (s *Service) SummaryForUser(ctx context.Context, userID uuid.UUID) (*UserSummary, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	ratings, err := s.ratings.ListByRatedUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	avg, err := s.ratings.AverageByRatedUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &UserSummary{
		UserID:  userID,
		Average: avg,
		Total:   len(ratings),
		Ratings: ratings,
	}, nil
}

// ListForProject returns the ratings written for a project.
func (s *Service) ListForProject(ctx context.Context, projectID uuid.UUID) ([]*Rating, error) {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.ratings.ListByProject(ctx, projectID)
}
