package match

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tombers-dev/tombers-backend/user"
)

func TestParseAction(t *testing.T) {
	cases := []struct {
		input   string
		want    Action
		wantErr bool
	}{
		{"ACCEPT", ActionAccept, false},
		{"REJECT", ActionReject, false},
		{"accept", ActionAccept, false},
		{" reject ", ActionReject, false},
		{"", "", true},
		{"MAYBE", "", true},
	}

	for _, c := range cases {
		got, err := ParseAction(c.input)
		if c.wantErr {
			assert.ErrorIs(t, err, ErrInvalidAction, "input %q", c.input)
			continue
		}
		require.NoError(t, err, "input %q", c.input)
		assert.Equal(t, c.want, got)
	}
}

func TestEngine_ListInterested(t *testing.T) {
	f := setupEngine(t)
	ctx := context.Background()

	owner := f.newUser(t, "owner", "owner@example.com")
	alice := f.newUser(t, "alice", "alice@example.com")
	bob := f.newUser(t, "bob", "bob@example.com")
	proj := f.newProject(t, owner, "Interested View")

	require.NoError(t, f.engine.Like(ctx, alice.Email, proj.ID))
	require.NoError(t, f.engine.Like(ctx, bob.Email, proj.ID))

	t.Run("owner sees candidates in like order", func(t *testing.T) {
		list, err := f.engine.ListInterested(ctx, owner.Email, proj.ID)
		require.NoError(t, err)

		assert.Equal(t, proj.ID, list.ProjectID)
		assert.Equal(t, "Interested View", list.ProjectTitle)
		require.Len(t, list.Candidates, 2)
		assert.Equal(t, 2, list.Total)
		assert.Equal(t, alice.ID, list.Candidates[0].ID)
		assert.Equal(t, bob.ID, list.Candidates[1].ID)
	})

	t.Run("accepted members are excluded from the view", func(t *testing.T) {
		require.NoError(t, f.engine.ManageInterested(ctx, owner.Email, proj.ID, alice.ID, ActionAccept))

		list, err := f.engine.ListInterested(ctx, owner.Email, proj.ID)
		require.NoError(t, err)
		require.Len(t, list.Candidates, 1)
		assert.Equal(t, bob.ID, list.Candidates[0].ID)

		// The underlying like survives acceptance; only the view filters it.
		_, p := f.reload(t, alice.ID, proj.ID)
		assert.True(t, p.LikeIDs.Contains(alice.ID))
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		_, err := f.engine.ListInterested(ctx, bob.Email, proj.ID)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("admin may view any project", func(t *testing.T) {
		admin := f.newUser(t, "admin", "admin@example.com", user.RoleAdmin)
		_, err := f.engine.ListInterested(ctx, admin.Email, proj.ID)
		assert.NoError(t, err)
	})
}

func TestEngine_ManageInterested_Accept(t *testing.T) {
	f := setupEngine(t)
	ctx := context.Background()

	owner := f.newUser(t, "owner", "owner@example.com")
	candidate := f.newUser(t, "candidate", "candidate@example.com")
	proj := f.newProject(t, owner, "Accepting Project")

	require.NoError(t, f.engine.Like(ctx, candidate.Email, proj.ID))
	require.NoError(t, f.engine.ManageInterested(ctx, owner.Email, proj.ID, candidate.ID, ActionAccept))

	u, p := f.reload(t, candidate.ID, proj.ID)

	t.Run("membership recorded on both aggregates", func(t *testing.T) {
		assert.True(t, p.MemberIDs.Contains(candidate.ID))
		assert.True(t, u.ParticipatingProjectIDs.Contains(proj.ID))
	})

	t.Run("team size incremented", func(t *testing.T) {
		assert.Equal(t, 2, p.Stats.TeamCurrent)
	})

	t.Run("like retained but candidate leaves the interested set", func(t *testing.T) {
		assert.True(t, p.LikeIDs.Contains(candidate.ID))
		assert.True(t, u.LikedProjectIDs.Contains(proj.ID))
		assert.False(t, p.InterestedIDs().Contains(candidate.ID))
	})

	t.Run("accepting past team max still succeeds", func(t *testing.T) {
		small := f.newProject(t, owner, "Tiny Team")
		small.Stats.TeamMax = 1
		require.NoError(t, f.projects.Save(ctx, small))

		extra := f.newUser(t, "extra", "extra@example.com")
		require.NoError(t, f.engine.Like(ctx, extra.Email, small.ID))
		require.NoError(t, f.engine.ManageInterested(ctx, owner.Email, small.ID, extra.ID, ActionAccept))

		_, got := f.reload(t, extra.ID, small.ID)
		assert.Equal(t, 2, got.Stats.TeamCurrent)
		assert.Greater(t, got.Stats.TeamCurrent, got.Stats.TeamMax)
	})
}

func TestEngine_ManageInterested_Reject(t *testing.T) {
	f := setupEngine(t)
	ctx := context.Background()

	owner := f.newUser(t, "owner", "owner@example.com")
	candidate := f.newUser(t, "candidate", "candidate@example.com")
	proj := f.newProject(t, owner, "Rejecting Project")

	require.NoError(t, f.engine.Like(ctx, candidate.Email, proj.ID))
	require.NoError(t, f.engine.ManageInterested(ctx, owner.Email, proj.ID, candidate.ID, ActionReject))

	u, p := f.reload(t, candidate.ID, proj.ID)

	t.Run("like removed from both sides", func(t *testing.T) {
		assert.False(t, p.LikeIDs.Contains(candidate.ID))
		assert.False(t, u.LikedProjectIDs.Contains(proj.ID))
		f.assertMirrored(t, candidate.ID, proj.ID)
	})

	t.Run("no membership granted", func(t *testing.T) {
		assert.False(t, p.MemberIDs.Contains(candidate.ID))
		assert.False(t, u.ParticipatingProjectIDs.Contains(proj.ID))
		assert.Equal(t, 1, p.Stats.TeamCurrent)
	})

	t.Run("candidate may like again after rejection", func(t *testing.T) {
		assert.NoError(t, f.engine.Like(ctx, candidate.Email, proj.ID))
	})
}

func TestEngine_ManageInterested_Errors(t *testing.T) {
	f := setupEngine(t)
	ctx := context.Background()

	owner := f.newUser(t, "owner", "owner@example.com")
	candidate := f.newUser(t, "candidate", "candidate@example.com")
	bystander := f.newUser(t, "bystander", "bystander@example.com")
	proj := f.newProject(t, owner, "Managed Project")

	require.NoError(t, f.engine.Like(ctx, candidate.Email, proj.ID))

	t.Run("non-owner may not manage", func(t *testing.T) {
		err := f.engine.ManageInterested(ctx, bystander.Email, proj.ID, candidate.ID, ActionAccept)
		assert.ErrorIs(t, err, ErrForbidden)

		// Denied before any state change.
		_, p := f.reload(t, candidate.ID, proj.ID)
		assert.False(t, p.MemberIDs.Contains(candidate.ID))
	})

	t.Run("target without a like is rejected", func(t *testing.T) {
		err := f.engine.ManageInterested(ctx, owner.Email, proj.ID, bystander.ID, ActionAccept)
		assert.ErrorIs(t, err, ErrNotInterested)
	})

	t.Run("unknown target user", func(t *testing.T) {
		err := f.engine.ManageInterested(ctx, owner.Email, proj.ID, uuid.New(), ActionAccept)
		assert.ErrorIs(t, err, user.ErrUserNotFound)
	})

	t.Run("invalid action", func(t *testing.T) {
		err := f.engine.ManageInterested(ctx, owner.Email, proj.ID, candidate.ID, Action("PROMOTE"))
		assert.ErrorIs(t, err, ErrInvalidAction)
	})
}
