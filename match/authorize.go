package match

import (
	"context"

	"github.com/google/uuid"

	"github.com/tombers-dev/tombers-backend/user"
)

// IsOwnerOrAdmin reports whether the user may perform project-scoped
// management actions: admins always may, otherwise the project must appear in
// the user's CreatedProjectIDs.
func IsOwnerOrAdmin(u *user.User, projectID uuid.UUID) bool {
	if u.IsAdmin() {
		return true
	}
	return u.CreatedProjectIDs.Contains(projectID)
}

// authorize applies the owner-or-admin gate and records denied attempts with
// the acting identity and target project for auditing. Callers return a
// generic ErrForbidden so the denial detail never reaches the end caller.
func (e *Engine) authorize(ctx context.Context, actor *user.User, projectID uuid.UUID, action string) bool {
	if IsOwnerOrAdmin(actor, projectID) {
		return true
	}

	e.logger.Warn(ctx, "project action denied", map[string]interface{}{
		"user_id":    actor.ID.String(),
		"email":      actor.Email,
		"project_id": projectID.String(),
		"action":     action,
	})
	return false
}
