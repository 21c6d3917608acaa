package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/tombers-dev/tombers-backend/logger"
	"github.com/tombers-dev/tombers-backend/rating"
)

// RatingHandler handles peer rating requests.
type RatingHandler struct {
	service *rating.Service
	logger  logger.Logger
}

// NewRatingHandler creates a new rating handler.
func NewRatingHandler(service *rating.Service, log logger.Logger) *RatingHandler {
	return &RatingHandler{
		service: service,
		logger:  log,
	}
}

// RateUserRequest represents a rating submission.
type RateUserRequest struct {
	RatedUserID string `json:"rated_user_id"`
	ProjectID   string `json:"project_id"`
	Score       int    `json:"score"`
	Comment     string `json:"comment"`
}

// ListRatingsResponse represents a list of ratings for a project.
type ListRatingsResponse struct {
	Ratings []*rating.Rating `json:"ratings"`
	Total   int              `json:"total"`
}

// RateUser records a rating from the authenticated user. The service enforces
// that the rater created the project and that the rated user is a member.
func (h *RatingHandler) RateUser(w http.ResponseWriter, r *http.Request) {
	email, ok := GetUserEmail(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "user not authenticated")
		return
	}

	var req RateUserRequest
	if err := parseJSON(r, &req, h.logger); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ratedUserID, err := uuid.Parse(req.RatedUserID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid user ID: must be a valid UUID")
		return
	}

	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid project ID: must be a valid UUID")
		return
	}

	created, err := h.service.Rate(r.Context(), email, ratedUserID, projectID, req.Score, req.Comment)
	if err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

// GetUserRatings returns a user's rating summary: the average, the total, and
// the individual ratings newest first.
func (h *RatingHandler) GetUserRatings(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDOrRespond(w, r, "id", "user")
	if !ok {
		return
	}

	summary, err := h.service.SummaryForUser(r.Context(), id)
	if err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// RatingAverageResponse carries just the aggregate figures for a user.
type RatingAverageResponse struct {
	UserID  string  `json:"user_id"`
	Average float64 `json:"average_rating"`
	Total   int     `json:"total_ratings"`
}

// GetUserAverage returns only a user's average score and rating count.
func (h *RatingHandler) GetUserAverage(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDOrRespond(w, r, "id", "user")
	if !ok {
		return
	}

	summary, err := h.service.SummaryForUser(r.Context(), id)
	if err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, RatingAverageResponse{
		UserID:  id.String(),
		Average: summary.Average,
		Total:   summary.Total,
	})
}

// GetProjectRatings returns all ratings handed out within a project.
func (h *RatingHandler) GetProjectRatings(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDOrRespond(w, r, "id", "project")
	if !ok {
		return
	}

	ratings, err := h.service.ListForProject(r.Context(), id)
	if err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, ListRatingsResponse{
		Ratings: ratings,
		Total:   len(ratings),
	})
}
