package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/tombers-dev/tombers-backend/logger"
	"github.com/tombers-dev/tombers-backend/storage"
	"github.com/tombers-dev/tombers-backend/user"
)

// maxUploadSize bounds avatar and project image uploads.
const maxUploadSize = 5 << 20 // 5 MiB

// UserHandler handles user-related requests.
type UserHandler struct {
	userStore user.Store
	blobs     storage.BlobStorage
	logger    logger.Logger
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userStore user.Store, blobs storage.BlobStorage, log logger.Logger) *UserHandler {
	return &UserHandler{
		userStore: userStore,
		blobs:     blobs,
		logger:    log,
	}
}

// UpdateUserRequest represents a profile update request. Only the supplied
// fields are changed.
type UpdateUserRequest struct {
	FirstName      *string       `json:"first_name,omitempty"`
	LastName       *string       `json:"last_name,omitempty"`
	Username       *string       `json:"username,omitempty"`
	Password       *string       `json:"password,omitempty"`
	Bio            *string       `json:"bio,omitempty"`
	BirthDate      *string       `json:"birth_date,omitempty"`
	Languages      *string       `json:"languages,omitempty"`
	Specialization *string       `json:"specialization,omitempty"`
	Phone          *string       `json:"phone,omitempty"`
	LinkedIn       *string       `json:"linkedin,omitempty"`
	GitHub         *string       `json:"github,omitempty"`
	Portfolio      *string       `json:"portfolio,omitempty"`
	Status         *user.Status  `json:"status,omitempty"`
	Skills         *[]user.Skill `json:"skills,omitempty"`
	Certifications *[]string     `json:"certifications,omitempty"`
	Interests      *[]string     `json:"interests,omitempty"`
}

// ListUsersResponse represents a list users response.
type ListUsersResponse struct {
	Users []*user.User `json:"users"`
	Total int          `json:"total"`
}

// List handles listing users with pagination.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 && l <= 100 {
		limit = l
	}

	offset := 0
	if o, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && o >= 0 {
		offset = o
	}

	users, err := h.userStore.List(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error(r.Context(), "failed to list users", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "failed to list users")
		return
	}

	respondJSON(w, http.StatusOK, ListUsersResponse{
		Users: users,
		Total: len(users),
	})
}

// GetByID handles getting a single user by ID.
func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDOrRespond(w, r, "id", "user")
	if !ok {
		return
	}

	foundUser, err := h.userStore.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			respondError(w, http.StatusNotFound, "user not found")
			return
		}
		h.logger.Error(r.Context(), "failed to get user", map[string]interface{}{
			"error":   err.Error(),
			"user_id": id.String(),
		})
		respondError(w, http.StatusInternalServerError, "failed to get user")
		return
	}

	respondJSON(w, http.StatusOK, foundUser)
}

// Update handles profile updates. Users may only update their own profile.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDOrRespond(w, r, "id", "user")
	if !ok {
		return
	}

	actorID, ok := GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "user not authenticated")
		return
	}
	if actorID != id {
		respondError(w, http.StatusForbidden, "you may only update your own profile")
		return
	}

	h.applyUpdate(w, r, id)
}

// Profile returns the authenticated user's own profile.
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	actorID, ok := GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "user not authenticated")
		return
	}

	current, err := h.userStore.GetByID(r.Context(), actorID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			respondError(w, http.StatusNotFound, "user not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to get user")
		return
	}

	respondJSON(w, http.StatusOK, current)
}

// UpdateProfile updates the authenticated user's own profile.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	actorID, ok := GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "user not authenticated")
		return
	}

	h.applyUpdate(w, r, actorID)
}

// applyUpdate parses the update request body and applies the resulting
// setters to the given user.
func (h *UserHandler) applyUpdate(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	var req UpdateUserRequest
	if err := parseJSON(r, &req, h.logger); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var setters []user.UpdateSetter
	if req.FirstName != nil {
		setters = append(setters, user.SetFirstName(*req.FirstName))
	}
	if req.LastName != nil {
		setters = append(setters, user.SetLastName(*req.LastName))
	}
	if req.Username != nil {
		setters = append(setters, user.SetUsername(*req.Username))
	}
	if req.Password != nil {
		setters = append(setters, user.SetPassword(*req.Password))
	}
	if req.Bio != nil {
		setters = append(setters, user.SetBio(*req.Bio))
	}
	if req.BirthDate != nil {
		setters = append(setters, user.SetBirthDate(*req.BirthDate))
	}
	if req.Languages != nil {
		setters = append(setters, user.SetLanguages(*req.Languages))
	}
	if req.Specialization != nil {
		setters = append(setters, user.SetSpecialization(*req.Specialization))
	}
	if req.Phone != nil {
		setters = append(setters, user.SetPhone(*req.Phone))
	}
	if req.LinkedIn != nil {
		setters = append(setters, user.SetLinkedIn(*req.LinkedIn))
	}
	if req.GitHub != nil {
		setters = append(setters, user.SetGitHub(*req.GitHub))
	}
	if req.Portfolio != nil {
		setters = append(setters, user.SetPortfolio(*req.Portfolio))
	}
	if req.Status != nil {
		setters = append(setters, user.SetStatus(*req.Status))
	}
	if req.Skills != nil {
		setters = append(setters, user.SetSkills(*req.Skills))
	}
	if req.Certifications != nil {
		setters = append(setters, user.SetCertifications(*req.Certifications))
	}
	if req.Interests != nil {
		setters = append(setters, user.SetInterests(*req.Interests))
	}

	if len(setters) == 0 {
		respondError(w, http.StatusBadRequest, "no fields to update")
		return
	}

	updatedUser, err := h.userStore.Update(r.Context(), id, setters...)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			respondError(w, http.StatusNotFound, "user not found")
			return
		}
		if errors.Is(err, user.ErrDuplicateEmail) {
			respondError(w, http.StatusConflict, "email or username already exists")
			return
		}
		if errors.Is(err, user.ErrInvalidUsername) ||
			errors.Is(err, user.ErrInvalidName) ||
			errors.Is(err, user.ErrPasswordTooShort) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error(r.Context(), "failed to update user", map[string]interface{}{
			"error":   err.Error(),
			"user_id": id.String(),
		})
		respondError(w, http.StatusInternalServerError, "failed to update user")
		return
	}

	respondJSON(w, http.StatusOK, updatedUser)
}

// Search handles free-text user search over names, usernames and
// specializations.
func (h *UserHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		respondError(w, http.StatusBadRequest, "query parameter 'q' is required")
		return
	}

	users, err := h.userStore.Search(r.Context(), query)
	if err != nil {
		h.logger.Error(r.Context(), "failed to search users", map[string]interface{}{
			"error": err.Error(),
			"query": query,
		})
		respondError(w, http.StatusInternalServerError, "failed to search users")
		return
	}

	respondJSON(w, http.StatusOK, ListUsersResponse{
		Users: users,
		Total: len(users),
	})
}

// Available lists users whose status is available.
func (h *UserHandler) Available(w http.ResponseWriter, r *http.Request) {
	users, err := h.userStore.ListAvailable(r.Context())
	if err != nil {
		h.logger.Error(r.Context(), "failed to list available users", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "failed to list available users")
		return
	}

	respondJSON(w, http.StatusOK, ListUsersResponse{
		Users: users,
		Total: len(users),
	})
}

// UploadAvatar stores a new avatar image for the authenticated user.
func (h *UserHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	actorID, ok := GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "user not authenticated")
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		respondError(w, http.StatusBadRequest, "avatar file is required")
		return
	}
	defer file.Close()

	if err := storage.ValidateImageName(header.Filename); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	path := fmt.Sprintf("avatars/%s%s", actorID.String(), fileExt(header.Filename))
	if err := h.blobs.Upload(r.Context(), path, file); err != nil {
		h.logger.Error(r.Context(), "failed to store avatar", map[string]interface{}{
			"error":   err.Error(),
			"user_id": actorID.String(),
		})
		respondError(w, http.StatusInternalServerError, "failed to store avatar")
		return
	}

	url, err := h.blobs.GetURL(r.Context(), path)
	if err != nil {
		h.logger.Error(r.Context(), "failed to resolve avatar URL", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "failed to resolve avatar URL")
		return
	}

	updatedUser, err := h.userStore.Update(r.Context(), actorID, user.SetAvatarURL(url))
	if err != nil {
		h.logger.Error(r.Context(), "failed to update avatar URL", map[string]interface{}{
			"error":   err.Error(),
			"user_id": actorID.String(),
		})
		respondError(w, http.StatusInternalServerError, "failed to update avatar")
		return
	}

	respondJSON(w, http.StatusOK, updatedUser)
}
