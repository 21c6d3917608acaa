package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/tombers-dev/tombers-backend/logger"
	"github.com/tombers-dev/tombers-backend/match"
	"github.com/tombers-dev/tombers-backend/project"
	"github.com/tombers-dev/tombers-backend/rating"
	"github.com/tombers-dev/tombers-backend/user"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse represents a success response with a message.
type SuccessResponse struct {
	Message string `json:"message"`
}

// PaginatedResponse represents a standardized paginated API response.
type PaginatedResponse struct {
	Items  interface{} `json:"items"`
	Total  int         `json:"total"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response with the given status code.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondSuccess writes a success response with the given message.
func respondSuccess(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusOK, SuccessResponse{Message: message})
}

// parseJSON parses JSON from the request body into the given destination.
func parseJSON(r *http.Request, dest interface{}, log logger.Logger) error {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		log.Error(r.Context(), "failed to parse JSON", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}
	return nil
}

// parseUUID parses a UUID from the request path parameters.
func parseUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	vars := mux.Vars(r)
	return uuid.Parse(vars[paramName])
}

// parseUUIDOrRespond parses a UUID from path parameters and responds with an
// error if invalid. Returns the UUID and true on success; on failure the
// error response has already been written.
func parseUUIDOrRespond(w http.ResponseWriter, r *http.Request, paramName, entityName string) (uuid.UUID, bool) {
	id, err := parseUUID(r, paramName)
	if err != nil {
		respondError(w, http.StatusBadRequest,
			fmt.Sprintf("invalid %s ID: must be a valid UUID", entityName))
		return uuid.Nil, false
	}
	return id, true
}

// fileExt returns the lower-cased extension of an uploaded filename.
func fileExt(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}

// respondDomainError maps domain sentinel errors onto HTTP statuses: missing
// identity to 401, authorization denials to 403, missing entities to 404,
// duplicate state to 409, unmet state preconditions to 422, bad input to 400.
// Anything unmapped is logged and reported as 500.
func respondDomainError(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	switch {
	case errors.Is(err, match.ErrUnauthenticated):
		respondError(w, http.StatusUnauthorized, "authentication required")

	case errors.Is(err, match.ErrForbidden),
		errors.Is(err, rating.ErrNotProjectCreator):
		respondError(w, http.StatusForbidden, err.Error())

	case errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, project.ErrProjectNotFound),
		errors.Is(err, rating.ErrRatingNotFound):
		respondError(w, http.StatusNotFound, err.Error())

	case errors.Is(err, match.ErrAlreadyLiked),
		errors.Is(err, match.ErrAlreadyDisliked),
		errors.Is(err, rating.ErrDuplicateRating),
		errors.Is(err, user.ErrDuplicateEmail):
		respondError(w, http.StatusConflict, err.Error())

	case errors.Is(err, match.ErrNotLiked),
		errors.Is(err, match.ErrNotDisliked),
		errors.Is(err, match.ErrNotInterested),
		errors.Is(err, rating.ErrNotProjectMember):
		respondError(w, http.StatusUnprocessableEntity, err.Error())

	case errors.Is(err, match.ErrInvalidAction),
		errors.Is(err, rating.ErrInvalidScore),
		errors.Is(err, rating.ErrCommentTooLong),
		errors.Is(err, project.ErrInvalidTitle),
		errors.Is(err, user.ErrInvalidEmail),
		errors.Is(err, user.ErrInvalidUsername),
		errors.Is(err, user.ErrInvalidName),
		errors.Is(err, user.ErrPasswordTooShort):
		respondError(w, http.StatusBadRequest, err.Error())

	default:
		log.Error(r.Context(), "unhandled domain error", map[string]interface{}{
			"error": err.Error(),
			"path":  r.URL.Path,
		})
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}
