// Package match implements the project interest and membership lifecycle:
// like/dislike toggling, the derived interested-candidate view, promotion of
// candidates to project members, and the owner-or-admin authorization gate.
//
// Per (user, project) pair the engine drives a small state machine:
//
//	NEUTRAL  -> LIKED     (Like)
//	LIKED    -> NEUTRAL   (Unlike, or REJECT by the project owner)
//	any      -> DISLIKED  (Dislike, clearing an active like first)
//	DISLIKED -> NEUTRAL   (Undislike)
//	LIKED    -> MEMBER    (ACCEPT by the project owner)
//
// MEMBER is terminal: no member-removal operation exists.
//
// A like is recorded on both aggregates (user.LikedProjectIDs and
// project.LikeIDs); dislikes live only on the user. Every paired mutation runs
// inside a single database transaction so the two sides cannot diverge.
package match

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/tombers-dev/tombers-backend/database"
	"github.com/tombers-dev/tombers-backend/logger"
	"github.com/tombers-dev/tombers-backend/project"
	"github.com/tombers-dev/tombers-backend/user"
)

// Engine coordinates relationship state across the User and Project
// aggregates. It is stateless between calls; every operation fetches fresh
// aggregates, validates the requested transition, and persists both sides in
// one transaction.
type Engine struct {
	users    user.Store
	projects project.Store
	tx       database.TxManager
	logger   logger.Logger
}

// NewEngine creates a new relationship engine.
func NewEngine(users user.Store, projects project.Store, tx database.TxManager, log logger.Logger) *Engine {
	return &Engine{
		users:    users,
		projects: projects,
		tx:       tx,
		logger:   log,
	}
}

// resolveActor loads the acting user by the identity string supplied by the
// authentication layer. A blank identity is rejected before any domain logic.
func (e *Engine) resolveActor(ctx context.Context, actorEmail string) (*user.User, error) {
	email := strings.TrimSpace(actorEmail)
	if email == "" {
		return nil, ErrUnauthenticated
	}
	return e.users.GetByEmail(ctx, email)
}

// Like records the acting user's interest in a project. An active dislike is
// cleared first; like and dislike are mutually exclusive. The like is mirrored
// onto the project's LikeIDs.
func (e *Engine) Like(ctx context.Context, actorEmail string, projectID uuid.UUID) error {
	return e.tx.Do(ctx, func(ctx context.Context) error {
		actor, err := e.resolveActor(ctx, actorEmail)
		if err != nil {
			return err
		}

		proj, err := e.projects.GetByID(ctx, projectID)
		if err != nil {
			return err
		}

		if actor.LikedProjectIDs.Contains(projectID) {
			return ErrAlreadyLiked
		}

		actor.DislikedProjectIDs = actor.DislikedProjectIDs.Remove(projectID)
		actor.LikedProjectIDs = actor.LikedProjectIDs.Append(projectID)
		proj.LikeIDs = proj.LikeIDs.Append(actor.ID)

		if err := e.users.Save(ctx, actor); err != nil {
			return err
		}
		if err := e.projects.Save(ctx, proj); err != nil {
			return err
		}

		e.logger.Info(ctx, "project liked", map[string]interface{}{
			"user_id":    actor.ID.String(),
			"project_id": projectID.String(),
		})
		return nil
	})
}

// Unlike removes the acting user's like from a project, clearing both sides
// of the mirror.
func (e *Engine) Unlike(ctx context.Context, actorEmail string, projectID uuid.UUID) error {
	return e.tx.Do(ctx, func(ctx context.Context) error {
		actor, err := e.resolveActor(ctx, actorEmail)
		if err != nil {
			return err
		}

		proj, err := e.projects.GetByID(ctx, projectID)
		if err != nil {
			return err
		}

		if !actor.LikedProjectIDs.Contains(projectID) {
			return ErrNotLiked
		}

		actor.LikedProjectIDs = actor.LikedProjectIDs.Remove(projectID)
		proj.LikeIDs = proj.LikeIDs.Remove(actor.ID)

		if err := e.users.Save(ctx, actor); err != nil {
			return err
		}
		if err := e.projects.Save(ctx, proj); err != nil {
			return err
		}

		e.logger.Info(ctx, "project unliked", map[string]interface{}{
			"user_id":    actor.ID.String(),
			"project_id": projectID.String(),
		})
		return nil
	})
}

// Dislike records a dislike for the acting user. Dislikes are user-local:
// nothing is written to the project unless an active like has to be cleared
// from its mirror first.
func (e *Engine) Dislike(ctx context.Context, actorEmail string, projectID uuid.UUID) error {
	return e.tx.Do(ctx, func(ctx context.Context) error {
		actor, err := e.resolveActor(ctx, actorEmail)
		if err != nil {
			return err
		}

		proj, err := e.projects.GetByID(ctx, projectID)
		if err != nil {
			return err
		}

		if actor.DislikedProjectIDs.Contains(projectID) {
			return ErrAlreadyDisliked
		}

		hadLike := actor.LikedProjectIDs.Contains(projectID)
		if hadLike {
			actor.LikedProjectIDs = actor.LikedProjectIDs.Remove(projectID)
			proj.LikeIDs = proj.LikeIDs.Remove(actor.ID)
		}
		actor.DislikedProjectIDs = actor.DislikedProjectIDs.Append(projectID)

		if err := e.users.Save(ctx, actor); err != nil {
			return err
		}
		if hadLike {
			if err := e.projects.Save(ctx, proj); err != nil {
				return err
			}
		}

		e.logger.Info(ctx, "project disliked", map[string]interface{}{
			"user_id":      actor.ID.String(),
			"project_id":   projectID.String(),
			"cleared_like": hadLike,
		})
		return nil
	})
}

// Undislike removes the acting user's dislike from a project. Only the user
// aggregate is touched.
func (e *Engine) Undislike(ctx context.Context, actorEmail string, projectID uuid.UUID) error {
	return e.tx.Do(ctx, func(ctx context.Context) error {
		actor, err := e.resolveActor(ctx, actorEmail)
		if err != nil {
			return err
		}

		// The project must exist even though it is not written to.
		if _, err := e.projects.GetByID(ctx, projectID); err != nil {
			return err
		}

		if !actor.DislikedProjectIDs.Contains(projectID) {
			return ErrNotDisliked
		}

		actor.DislikedProjectIDs = actor.DislikedProjectIDs.Remove(projectID)

		if err := e.users.Save(ctx, actor); err != nil {
			return err
		}

		e.logger.Info(ctx, "project undisliked", map[string]interface{}{
			"user_id":    actor.ID.String(),
			"project_id": projectID.String(),
		})
		return nil
	})
}

// CreateProject creates a project owned by the acting user and mirrors the
// new ID onto the creator's CreatedProjectIDs in the same transaction.
func (e *Engine) CreateProject(ctx context.Context, actorEmail string, proj *project.Project) (*project.Project, error) {
	var created *project.Project
	err := e.tx.Do(ctx, func(ctx context.Context) error {
		actor, err := e.resolveActor(ctx, actorEmail)
		if err != nil {
			return err
		}

		proj.CreatorID = actor.ID
		if err := e.projects.Create(ctx, proj); err != nil {
			return err
		}

		actor.CreatedProjectIDs = actor.CreatedProjectIDs.Append(proj.ID)
		if err := e.users.Save(ctx, actor); err != nil {
			return err
		}

		created = proj
		e.logger.Info(ctx, "project created by user", map[string]interface{}{
			"user_id":    actor.ID.String(),
			"project_id": proj.ID.String(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// DeleteProject removes a project. Only the creator or an admin may delete.
func (e *Engine) DeleteProject(ctx context.Context, actorEmail string, projectID uuid.UUID) error {
	return e.tx.Do(ctx, func(ctx context.Context) error {
		actor, err := e.resolveActor(ctx, actorEmail)
		if err != nil {
			return err
		}

		if _, err := e.projects.GetByID(ctx, projectID); err != nil {
			return err
		}

		if !e.authorize(ctx, actor, projectID, "delete project") {
			return ErrForbidden
		}

		if err := e.projects.Delete(ctx, projectID); err != nil {
			return err
		}

		actor.CreatedProjectIDs = actor.CreatedProjectIDs.Remove(projectID)
		return e.users.Save(ctx, actor)
	})
}
