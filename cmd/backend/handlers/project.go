package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/tombers-dev/tombers-backend/logger"
	"github.com/tombers-dev/tombers-backend/match"
	"github.com/tombers-dev/tombers-backend/project"
	"github.com/tombers-dev/tombers-backend/storage"
	"github.com/tombers-dev/tombers-backend/user"
)

// ProjectHandler handles project-related requests. All relationship
// mutations (likes, dislikes, interest management, creation and deletion)
// go through the engine; plain reads go straight to the store.
type ProjectHandler struct {
	engine       *match.Engine
	projectStore project.Store
	userStore    user.Store
	blobs        storage.BlobStorage
	logger       logger.Logger
}

// NewProjectHandler creates a new project handler.
func NewProjectHandler(engine *match.Engine, projectStore project.Store, userStore user.Store, blobs storage.BlobStorage, log logger.Logger) *ProjectHandler {
	return &ProjectHandler{
		engine:       engine,
		projectStore: projectStore,
		userStore:    userStore,
		blobs:        blobs,
		logger:       log,
	}
}

// CreateProjectRequest represents a project creation request.
type CreateProjectRequest struct {
	Title        string               `json:"title"`
	Description  string               `json:"description"`
	Stats        project.Stats        `json:"stats"`
	Technologies []project.Technology `json:"technologies"`
	Objectives   []project.Objective  `json:"objectives"`
	SkillsNeeded []string             `json:"skills_needed"`
	Status       project.Status       `json:"status"`
}

// UpdateProjectRequest represents a project update request.
type UpdateProjectRequest struct {
	Title        *string               `json:"title,omitempty"`
	Description  *string               `json:"description,omitempty"`
	Stats        *project.Stats        `json:"stats,omitempty"`
	Technologies *[]project.Technology `json:"technologies,omitempty"`
	Objectives   *[]project.Objective  `json:"objectives,omitempty"`
	SkillsNeeded *[]string             `json:"skills_needed,omitempty"`
	Status       *project.Status       `json:"status,omitempty"`
	Progress     *int                  `json:"progress,omitempty"`
}

// ManageInterestedRequest carries an accept or reject decision.
type ManageInterestedRequest struct {
	UserID string `json:"user_id"`
	Action string `json:"action"`
}

// ListProjectsResponse represents a list projects response.
type ListProjectsResponse struct {
	Projects []*project.Project `json:"projects"`
	Total    int                `json:"total"`
}

// Create handles project creation.
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	email, ok := GetUserEmail(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "user not authenticated")
		return
	}

	var req CreateProjectRequest
	if err := parseJSON(r, &req, h.logger); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	status := req.Status
	if status == "" {
		status = project.StatusActive
	}

	newProject := &project.Project{
		Title:        req.Title,
		Description:  req.Description,
		Stats:        req.Stats,
		Technologies: req.Technologies,
		Objectives:   req.Objectives,
		SkillsNeeded: req.SkillsNeeded,
		Status:       status,
	}

	created, err := h.engine.CreateProject(r.Context(), email, newProject)
	if err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

// GetByID handles getting a single project by ID.
func (h *ProjectHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDOrRespond(w, r, "id", "project")
	if !ok {
		return
	}

	found, err := h.projectStore.GetByID(r.Context(), id)
	if err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, found)
}

// Update handles project updates. Only the creator or an admin may update.
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDOrRespond(w, r, "id", "project")
	if !ok {
		return
	}

	actor, ok := h.resolveActor(w, r)
	if !ok {
		return
	}
	if !match.IsOwnerOrAdmin(actor, id) {
		respondError(w, http.StatusForbidden, "not allowed to manage this project")
		return
	}

	var req UpdateProjectRequest
	if err := parseJSON(r, &req, h.logger); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var setters []project.UpdateSetter
	if req.Title != nil {
		setters = append(setters, project.SetTitle(*req.Title))
	}
	if req.Description != nil {
		setters = append(setters, project.SetDescription(*req.Description))
	}
	if req.Stats != nil {
		setters = append(setters, project.SetStats(*req.Stats))
	}
	if req.Technologies != nil {
		setters = append(setters, project.SetTechnologies(*req.Technologies))
	}
	if req.Objectives != nil {
		setters = append(setters, project.SetObjectives(*req.Objectives))
	}
	if req.SkillsNeeded != nil {
		setters = append(setters, project.SetSkillsNeeded(*req.SkillsNeeded))
	}
	if req.Status != nil {
		setters = append(setters, project.SetStatus(*req.Status))
	}
	if req.Progress != nil {
		setters = append(setters, project.SetProgress(*req.Progress))
	}

	if len(setters) == 0 {
		respondError(w, http.StatusBadRequest, "no fields to update")
		return
	}

	updated, err := h.projectStore.Update(r.Context(), id, setters...)
	if err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

// Delete handles project deletion through the engine, which enforces the
// owner-or-admin gate and unwinds the creator's reference.
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDOrRespond(w, r, "id", "project")
	if !ok {
		return
	}

	email, ok := GetUserEmail(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "user not authenticated")
		return
	}

	if err := h.engine.DeleteProject(r.Context(), email, id); err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	respondSuccess(w, "project deleted successfully")
}

// List handles listing projects with pagination.
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 && l <= 100 {
		limit = l
	}

	offset := 0
	if o, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && o >= 0 {
		offset = o
	}

	projects, err := h.projectStore.List(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error(r.Context(), "failed to list projects", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "failed to list projects")
		return
	}

	respondJSON(w, http.StatusOK, ListProjectsResponse{
		Projects: projects,
		Total:    len(projects),
	})
}

// Search handles free-text project search over titles and descriptions.
func (h *ProjectHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		respondError(w, http.StatusBadRequest, "query parameter 'q' is required")
		return
	}

	projects, err := h.projectStore.Search(r.Context(), query)
	if err != nil {
		h.logger.Error(r.Context(), "failed to search projects", map[string]interface{}{
			"error": err.Error(),
			"query": query,
		})
		respondError(w, http.StatusInternalServerError, "failed to search projects")
		return
	}

	respondJSON(w, http.StatusOK, ListProjectsResponse{
		Projects: projects,
		Total:    len(projects),
	})
}

// Active lists active projects, newest first.
func (h *ProjectHandler) Active(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projectStore.ListActive(r.Context())
	if err != nil {
		h.logger.Error(r.Context(), "failed to list active projects", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "failed to list active projects")
		return
	}

	respondJSON(w, http.StatusOK, ListProjectsResponse{
		Projects: projects,
		Total:    len(projects),
	})
}

// Incomplete lists projects below full progress, least complete first.
func (h *ProjectHandler) Incomplete(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projectStore.ListIncomplete(r.Context())
	if err != nil {
		h.logger.Error(r.Context(), "failed to list incomplete projects", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "failed to list incomplete projects")
		return
	}

	respondJSON(w, http.StatusOK, ListProjectsResponse{
		Projects: projects,
		Total:    len(projects),
	})
}

// Like records the authenticated user's interest in a project.
func (h *ProjectHandler) Like(w http.ResponseWriter, r *http.Request) {
	h.relationshipOp(w, r, h.engine.Like, "project liked")
}

// Unlike withdraws the authenticated user's like.
func (h *ProjectHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	h.relationshipOp(w, r, h.engine.Unlike, "project unliked")
}

// Dislike records a dislike for the authenticated user.
func (h *ProjectHandler) Dislike(w http.ResponseWriter, r *http.Request) {
	h.relationshipOp(w, r, h.engine.Dislike, "project disliked")
}

// Undislike withdraws the authenticated user's dislike.
func (h *ProjectHandler) Undislike(w http.ResponseWriter, r *http.Request) {
	h.relationshipOp(w, r, h.engine.Undislike, "project undisliked")
}

// Interested returns the project's interested candidates. Only the creator
// or an admin may view the list.
func (h *ProjectHandler) Interested(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDOrRespond(w, r, "id", "project")
	if !ok {
		return
	}

	email, ok := GetUserEmail(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "user not authenticated")
		return
	}

	list, err := h.engine.ListInterested(r.Context(), email, id)
	if err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, list)
}

// ManageInterested accepts or rejects an interested candidate.
func (h *ProjectHandler) ManageInterested(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDOrRespond(w, r, "id", "project")
	if !ok {
		return
	}

	email, ok := GetUserEmail(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "user not authenticated")
		return
	}

	var req ManageInterestedRequest
	if err := parseJSON(r, &req, h.logger); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	targetID, err := uuid.Parse(req.UserID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid user ID: must be a valid UUID")
		return
	}

	action, err := match.ParseAction(req.Action)
	if err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	if err := h.engine.ManageInterested(r.Context(), email, id, targetID, action); err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	message := "candidate accepted"
	if action == match.ActionReject {
		message = "candidate rejected"
	}
	respondSuccess(w, message)
}

// UploadImage stores a new cover image for a project. Only the creator or an
// admin may change it.
func (h *ProjectHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDOrRespond(w, r, "id", "project")
	if !ok {
		return
	}

	actor, ok := h.resolveActor(w, r)
	if !ok {
		return
	}
	if !match.IsOwnerOrAdmin(actor, id) {
		respondError(w, http.StatusForbidden, "not allowed to manage this project")
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		respondError(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	if err := storage.ValidateImageName(header.Filename); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	path := fmt.Sprintf("projects/%s/cover%s", id.String(), fileExt(header.Filename))
	if err := h.blobs.Upload(r.Context(), path, file); err != nil {
		h.logger.Error(r.Context(), "failed to store project image", map[string]interface{}{
			"error":      err.Error(),
			"project_id": id.String(),
		})
		respondError(w, http.StatusInternalServerError, "failed to store project image")
		return
	}

	url, err := h.blobs.GetURL(r.Context(), path)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to resolve image URL")
		return
	}

	updated, err := h.projectStore.Update(r.Context(), id, project.SetImageURL(url))
	if err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

// relationshipOp runs one of the engine's like/dislike transitions for the
// authenticated user against the project in the path.
func (h *ProjectHandler) relationshipOp(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, actorEmail string, projectID uuid.UUID) error, message string) {
	id, ok := parseUUIDOrRespond(w, r, "id", "project")
	if !ok {
		return
	}

	email, ok := GetUserEmail(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "user not authenticated")
		return
	}

	if err := op(r.Context(), email, id); err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	respondSuccess(w, message)
}

// resolveActor loads the authenticated user's aggregate for authorization
// checks done in the handler layer.
func (h *ProjectHandler) resolveActor(w http.ResponseWriter, r *http.Request) (*user.User, bool) {
	actorID, ok := GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "user not authenticated")
		return nil, false
	}

	actor, err := h.userStore.GetByID(r.Context(), actorID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			respondError(w, http.StatusUnauthorized, "user not authenticated")
			return nil, false
		}
		respondError(w, http.StatusInternalServerError, "failed to resolve user")
		return nil, false
	}

	return actor, true
}
