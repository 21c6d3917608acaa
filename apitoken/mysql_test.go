package apitoken

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestCreate(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		_, store := setupTestStore(t)
		ctx := context.Background()

		token := newTestToken("test-token", uuid.New(), ScopeReadOnly)

		err := store.Create(ctx, token)
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		if token.ID == uuid.Nil {
			t.Error("Create() should generate an ID")
		}
	})

	t.Run("missing name", func(t *testing.T) {
		t.Parallel()
		_, store := setupTestStore(t)
		ctx := context.Background()

		token := newTestToken("", uuid.New(), ScopeReadOnly)

		err := store.Create(ctx, token)
		if err != ErrInvalidTokenName {
			t.Errorf("Create() error = %v, want %v", err, ErrInvalidTokenName)
		}
	})

	t.Run("invalid scope", func(t *testing.T) {
		t.Parallel()
		_, store := setupTestStore(t)
		ctx := context.Background()

		token := newTestToken("test-token", uuid.New(), "invalid")

		err := store.Create(ctx, token)
		if err != ErrInvalidScope {
			t.Errorf("Create() error = %v, want %v", err, ErrInvalidScope)
		}
	})

	t.Run("max tokens reached", func(t *testing.T) {
		t.Parallel()
		_, store := setupTestStore(t)
		ctx := context.Background()

		userID := uuid.New()

		for i := 0; i < MaxTokensPerUser; i++ {
			token := newTestToken("token-"+string(rune('A'+i)), userID, ScopeReadOnly)
			if err := store.Create(ctx, token); err != nil {
				t.Fatalf("Create() token %d error = %v", i, err)
			}
		}

		token := newTestToken("one-too-many", userID, ScopeReadOnly)

		err := store.Create(ctx, token)
		if err != ErrMaxTokensReached {
			t.Errorf("Create() error = %v, want %v", err, ErrMaxTokensReached)
		}
	})
}

func TestGetByID(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		t.Parallel()
		_, store := setupTestStore(t)
		ctx := context.Background()

		token := newTestToken("test-token", uuid.New(), ScopeReadOnly)
		store.Create(ctx, token)

		found, err := store.GetByID(ctx, token.ID)
		if err != nil {
			t.Fatalf("GetByID() error = %v", err)
		}
		if found.Name != "test-token" {
			t.Errorf("GetByID() name = %s, want test-token", found.Name)
		}
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		_, store := setupTestStore(t)
		ctx := context.Background()

		_, err := store.GetByID(ctx, uuid.New())
		if err != ErrTokenNotFound {
			t.Errorf("GetByID() error = %v, want %v", err, ErrTokenNotFound)
		}
	})
}

func TestGetByTokenHash(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		t.Parallel()
		_, store := setupTestStore(t)
		ctx := context.Background()

		token := newTestToken("test-token", uuid.New(), ScopeReadWrite)
		store.Create(ctx, token)

		found, err := store.GetByTokenHash(ctx, token.TokenHash)
		if err != nil {
			t.Fatalf("GetByTokenHash() error = %v", err)
		}
		if found.ID != token.ID {
			t.Errorf("GetByTokenHash() ID = %s, want %s", found.ID, token.ID)
		}
	})

	t.Run("expired", func(t *testing.T) {
		t.Parallel()
		_, store := setupTestStore(t)
		ctx := context.Background()

		token := newTestToken("expired-token", uuid.New(), ScopeReadOnly)
		token.ExpiresAt = time.Now().Add(-1 * time.Hour)
		store.Create(ctx, token)

		_, err := store.GetByTokenHash(ctx, token.TokenHash)
		if err != ErrTokenNotFound {
			t.Errorf("GetByTokenHash() error = %v, want %v", err, ErrTokenNotFound)
		}
	})

	t.Run("revoked", func(t *testing.T) {
		t.Parallel()
		_, store := setupTestStore(t)
		ctx := context.Background()

		token := newTestToken("revoked-token", uuid.New(), ScopeReadOnly)
		store.Create(ctx, token)
		store.Revoke(ctx, token.ID)

		_, err := store.GetByTokenHash(ctx, token.TokenHash)
		if err != ErrTokenNotFound {
			t.Errorf("GetByTokenHash() error = %v, want %v", err, ErrTokenNotFound)
		}
	})
}

func TestListByUser(t *testing.T) {
	t.Parallel()

	_, store := setupTestStore(t)
	ctx := context.Background()

	userID := uuid.New()
	otherUserID := uuid.New()

	for i := 0; i < 3; i++ {
		token := newTestToken("token-"+string(rune('A'+i)), userID, ScopeReadOnly)
		store.Create(ctx, token)
	}

	// A revoked token must not appear in the list.
	revokedToken := newTestToken("revoked", userID, ScopeReadOnly)
	store.Create(ctx, revokedToken)
	store.Revoke(ctx, revokedToken.ID)

	// Neither should another user's token.
	otherToken := newTestToken("other-user-token", otherUserID, ScopeReadOnly)
	store.Create(ctx, otherToken)

	tokens, err := store.ListByUser(ctx, userID)
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}

	if len(tokens) != 3 {
		t.Errorf("ListByUser() returned %d tokens, want 3", len(tokens))
	}

	for _, token := range tokens {
		if token.UserID != userID {
			t.Errorf("ListByUser() returned token with wrong user ID: %s", token.UserID)
		}
		if !token.IsActive {
			t.Error("ListByUser() returned inactive token")
		}
	}
}

func TestRevoke(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		_, store := setupTestStore(t)
		ctx := context.Background()

		token := newTestToken("to-revoke", uuid.New(), ScopeReadOnly)
		store.Create(ctx, token)

		err := store.Revoke(ctx, token.ID)
		if err != nil {
			t.Fatalf("Revoke() error = %v", err)
		}

		_, err = store.GetByTokenHash(ctx, token.TokenHash)
		if err != ErrTokenNotFound {
			t.Errorf("GetByTokenHash() after revoke: error = %v, want %v", err, ErrTokenNotFound)
		}

		found, err := store.GetByID(ctx, token.ID)
		if err != nil {
			t.Fatalf("GetByID() after revoke: error = %v", err)
		}
		if found.IsActive {
			t.Error("Revoke() token should be inactive")
		}
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		_, store := setupTestStore(t)
		ctx := context.Background()

		err := store.Revoke(ctx, uuid.New())
		if err != ErrTokenNotFound {
			t.Errorf("Revoke() error = %v, want %v", err, ErrTokenNotFound)
		}
	})
}

func TestDelete(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		_, store := setupTestStore(t)
		ctx := context.Background()

		token := newTestToken("to-delete", uuid.New(), ScopeReadOnly)
		store.Create(ctx, token)

		err := store.Delete(ctx, token.ID)
		if err != nil {
			t.Fatalf("Delete() error = %v", err)
		}

		_, err = store.GetByID(ctx, token.ID)
		if err != ErrTokenNotFound {
			t.Errorf("GetByID() after delete: error = %v, want %v", err, ErrTokenNotFound)
		}
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		_, store := setupTestStore(t)
		ctx := context.Background()

		err := store.Delete(ctx, uuid.New())
		if err != ErrTokenNotFound {
			t.Errorf("Delete() error = %v, want %v", err, ErrTokenNotFound)
		}
	})
}
