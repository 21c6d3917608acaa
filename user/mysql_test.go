package user

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMySQLStore_Create(t *testing.T) {
	_, store := setupTestStore(t)
	ctx := context.Background()

	t.Run("successfully create user", func(t *testing.T) {
		u := createTestUser(t, "creator1", "creator1@example.com")
		err := store.Create(ctx, u)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, u.ID)
		assert.NotZero(t, u.CreatedAt)
	})

	t.Run("duplicate email returns error", func(t *testing.T) {
		u1 := createTestUser(t, "dup1", "dup@example.com")
		require.NoError(t, store.Create(ctx, u1))

		u2 := createTestUser(t, "dup2", "dup@example.com")
		err := store.Create(ctx, u2)
		assert.ErrorIs(t, err, ErrDuplicateEmail)
	})

	t.Run("invalid user returns error", func(t *testing.T) {
		u := &User{Username: "noemail"}
		err := store.Create(ctx, u)
		assert.ErrorIs(t, err, ErrInvalidEmail)
	})
}

func TestMySQLStore_GetByID(t *testing.T) {
	_, store := setupTestStore(t)
	ctx := context.Background()

	t.Run("retrieve existing user", func(t *testing.T) {
		u := createTestUser(t, "getbyid", "getbyid@example.com")
		require.NoError(t, store.Create(ctx, u))

		got, err := store.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)
		assert.Equal(t, u.Email, got.Email)
		assert.NotNil(t, got.LikedProjectIDs)
		assert.NotNil(t, got.DislikedProjectIDs)
	})

	t.Run("non-existent user returns error", func(t *testing.T) {
		_, err := store.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestMySQLStore_GetByEmail(t *testing.T) {
	_, store := setupTestStore(t)
	ctx := context.Background()

	t.Run("retrieve existing user by email", func(t *testing.T) {
		u := createTestUser(t, "byemail", "byemail@example.com")
		require.NoError(t, store.Create(ctx, u))

		got, err := store.GetByEmail(ctx, "byemail@example.com")
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)
	})

	t.Run("unknown email returns error", func(t *testing.T) {
		_, err := store.GetByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestMySQLStore_Save(t *testing.T) {
	_, store := setupTestStore(t)
	ctx := context.Background()

	t.Run("save persists reference lists", func(t *testing.T) {
		u := createTestUser(t, "saver", "saver@example.com")
		require.NoError(t, store.Create(ctx, u))

		projectID := uuid.New()
		u.LikedProjectIDs = u.LikedProjectIDs.Append(projectID)
		require.NoError(t, store.Save(ctx, u))

		got, err := store.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.True(t, got.LikedProjectIDs.Contains(projectID))
		assert.False(t, got.DislikedProjectIDs.Contains(projectID))
	})
}

func TestMySQLStore_Update(t *testing.T) {
	_, store := setupTestStore(t)
	ctx := context.Background()

	t.Run("update profile fields", func(t *testing.T) {
		u := createTestUser(t, "updater", "updater@example.com")
		require.NoError(t, store.Create(ctx, u))

		updated, err := store.Update(ctx, u.ID,
			SetBio("Backend developer"),
			SetSpecialization("Go"),
			SetStatus(StatusBusy),
		)
		require.NoError(t, err)
		assert.Equal(t, "Backend developer", updated.Bio)
		assert.Equal(t, "Go", updated.Specialization)
		assert.Equal(t, StatusBusy, updated.Status)
	})

	t.Run("update skills", func(t *testing.T) {
		u := createTestUser(t, "skilled", "skilled@example.com")
		require.NoError(t, store.Create(ctx, u))

		skills := []Skill{{Name: "Go", Level: "advanced"}, {Name: "SQL"}}
		updated, err := store.Update(ctx, u.ID, SetSkills(skills))
		require.NoError(t, err)

		got, err := store.GetByID(ctx, updated.ID)
		require.NoError(t, err)
		assert.Equal(t, skills, got.Skills)
	})

	t.Run("update non-existent user returns error", func(t *testing.T) {
		_, err := store.Update(ctx, uuid.New(), SetBio("nope"))
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("setter error aborts update", func(t *testing.T) {
		u := createTestUser(t, "badupdate", "badupdate@example.com")
		require.NoError(t, store.Create(ctx, u))

		_, err := store.Update(ctx, u.ID, SetUsername(""))
		assert.ErrorIs(t, err, ErrInvalidUsername)
	})
}

func TestMySQLStore_Search(t *testing.T) {
	_, store := setupTestStore(t)
	ctx := context.Background()

	u1 := createTestUser(t, "gopher-dev", "gopher@example.com")
	u1.Specialization = "backend"
	require.NoError(t, store.Create(ctx, u1))

	u2 := createTestUser(t, "painter", "painter@example.com")
	u2.Specialization = "frontend"
	require.NoError(t, store.Create(ctx, u2))

	t.Run("search by username", func(t *testing.T) {
		got, err := store.Search(ctx, "gopher")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, u1.ID, got[0].ID)
	})

	t.Run("search by specialization", func(t *testing.T) {
		got, err := store.Search(ctx, "front")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, u2.ID, got[0].ID)
	})

	t.Run("no match returns empty", func(t *testing.T) {
		got, err := store.Search(ctx, "zzz-no-such")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestMySQLStore_ListAvailable(t *testing.T) {
	_, store := setupTestStore(t)
	ctx := context.Background()

	available := createTestUser(t, "avail", "avail@example.com")
	require.NoError(t, store.Create(ctx, available))

	busy := createTestUser(t, "busy", "busy@example.com")
	busy.Status = StatusBusy
	require.NoError(t, store.Create(ctx, busy))

	got, err := store.ListAvailable(ctx)
	require.NoError(t, err)
	for _, u := range got {
		assert.Equal(t, StatusAvailable, u.Status)
	}
	require.Len(t, got, 1)
	assert.Equal(t, available.ID, got[0].ID)
}
