package match

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/tombers-dev/tombers-backend/user"
)

// Action is a manage-interested decision on a candidate.
type Action string

const (
	// ActionAccept promotes the candidate to project member.
	ActionAccept Action = "ACCEPT"

	// ActionReject removes the candidate's interest from both aggregates.
	ActionReject Action = "REJECT"
)

// ParseAction maps a request representation to an Action.
func ParseAction(s string) (Action, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(ActionAccept):
		return ActionAccept, nil
	case string(ActionReject):
		return ActionReject, nil
	default:
		return "", ErrInvalidAction
	}
}

// Candidate summarizes a user who liked a project but is not yet a member.
type Candidate struct {
	ID             uuid.UUID    `json:"id"`
	FirstName      string       `json:"first_name"`
	LastName       string       `json:"last_name"`
	Username       string       `json:"username"`
	Email          string       `json:"email"`
	Specialization string       `json:"specialization,omitempty"`
	AvatarURL      string       `json:"avatar_url,omitempty"`
	Status         user.Status  `json:"status"`
	Skills         []user.Skill `json:"skills"`
}

// InterestedList is the response of ListInterested.
type InterestedList struct {
	ProjectID    uuid.UUID   `json:"project_id"`
	ProjectTitle string      `json:"project_title"`
	Candidates   []Candidate `json:"interested_users"`
	Total        int         `json:"total_interested"`
}

/// ListInterested returns the project's interested candidates: users present in
// LikeIDs but not in MemberIDs, in like order. Only the creator or an admin
// may view the list. The set is derived on every call; it is never stored.
func (e *Engine) ListInterested(ctx context.Context, actorEmail string, projectID uuid.UUID) (*InterestedList, error) {
	actor, err := e.resolveActor(ctx, actorEmail)
	if err != nil {
		return nil, err
	}

	proj, err := e.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if !e.authorize(ctx, actor, projectID, "list interested") {
		return nil, ErrForbidden
	}

	candidateIDs := proj.InterestedIDs()
	candidates := make([]Candidate, 0, len(candidateIDs))
	for _, id := range candidateIDs {
		u, err := e.users.GetByID(ctx, id)
		if err != nil {
			if err == user.ErrUserNotFound {
				// A like can outlive its user record; skip rather than fail
				// the whole view.
				e.logger.Warn(ctx, "dangling like reference", map[string]interface{}{
					"project_id": projectID.String(),
					"user_id":    id.String(),
				})
				continue
			}
			return nil, err
		}
		candidates = append(candidates, toCandidate(u))
	}

	return &InterestedList{
		ProjectID:    proj.ID,
		ProjectTitle: proj.Title,
		Candidates:   candidates,
		Total:        len(candidates),
	}, nil
}

// ManageInterested accepts or rejects an interested candidate. Both actions
// require the target to currently be in the project's LikeIDs.
//
// ACCEPT appends the target to MemberIDs and mirrors the project onto the
// target's ParticipatingProjectIDs (both idempotent), then increments
// TeamCurrent unconditionally. The like itself stays: accepted members remain
// in LikeIDs and are filtered out of the interested view instead. TeamMax is
// a declared soft capacity only; exceeding it is allowed and logged.
//
// REJECT removes the target from LikeIDs and the project from the target's
// LikedProjectIDs, restoring the pair to NEUTRAL.
func (e *Engine) ManageInterested(ctx context.Context, actorEmail string, projectID, targetUserID uuid.UUID, action Action) error {
	return e.tx.Do(ctx, func(ctx context.Context) error {
		actor, err := e.resolveActor(ctx, actorEmail)
		if err != nil {
			return err
		}

		proj, err := e.projects.GetByID(ctx, projectID)
		if err != nil {
			return err
		}

		if !e.authorize(ctx, actor, projectID, "manage interested") {
			return ErrForbidden
		}

		target, err := e.users.GetByID(ctx, targetUserID)
		if err != nil {
			return err
		}

		if !proj.LikeIDs.Contains(targetUserID) {
			return ErrNotInterested
		}

		switch action {
		case ActionAccept:
			proj.MemberIDs = proj.MemberIDs.Append(targetUserID)
			target.ParticipatingProjectIDs = target.ParticipatingProjectIDs.Append(projectID)
			proj.Stats.TeamCurrent++

			if proj.Stats.TeamMax > 0 && proj.Stats.TeamCurrent > proj.Stats.TeamMax {
				e.logger.Warn(ctx, "team size exceeds declared maximum", map[string]interface{}{
					"project_id":   projectID.String(),
					"team_current": proj.Stats.TeamCurrent,
					"team_max":     proj.Stats.TeamMax,
				})
			}

		case ActionReject:
			proj.LikeIDs = proj.LikeIDs.Remove(targetUserID)
			target.LikedProjectIDs = target.LikedProjectIDs.Remove(projectID)

		default:
			return ErrInvalidAction
		}

		if err := e.projects.Save(ctx, proj); err != nil {
			return err
		}
		if err := e.users.Save(ctx, target); err != nil {
			return err
		}

		e.logger.Info(ctx, "interested candidate managed", map[string]interface{}{
			"project_id":     projectID.String(),
			"target_user_id": targetUserID.String(),
			"action":         string(action),
			"actor_id":       actor.ID.String(),
		})
		return nil
	})
}

func toCandidate(u *user.User) Candidate {
	skills := u.Skills
	if skills == nil {
		skills = []user.Skill{}
	}
	return Candidate{
		ID:             u.ID,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Username:       u.Username,
		Email:          u.Email,
		Specialization: u.Specialization,
		AvatarURL:      u.AvatarURL,
		Status:         u.Status,
		Skills:         skills,
	}
}
