package session

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tombers-dev/tombers-backend/logger"
)

func TestSession_IsExpired(t *testing.T) {
	tests := []struct {
		name      string
		expiresAt time.Time
		want      bool
	}{
		{
			name:      "not expired",
			expiresAt: time.Now().Add(time.Hour),
			want:      false,
		},
		{
			name:      "expired",
			expiresAt: time.Now().Add(-time.Hour),
			want:      true,
		},
		{
			name:      "just expired",
			expiresAt: time.Now().Add(-time.Second),
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := &Session{
				ExpiresAt: tt.expiresAt,
			}
			assert.Equal(t, tt.want, session.IsExpired())
		})
	}
}

func TestStore_SetAndGet(t *testing.T) {
	store := NewStore()

	session := &Session{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		Email:     "test@example.com",
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}

	store.Set(session)

	retrieved, err := store.Get(session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, retrieved.ID)
	assert.Equal(t, session.UserID, retrieved.UserID)
	assert.Equal(t, session.Email, retrieved.Email)
}

func TestStore_GetNonExistent(t *testing.T) {
	store := NewStore()

	_, err := store.Get(uuid.New())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestStore_GetExpired(t *testing.T) {
	store := NewStore()

	session := &Session{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		Email:     "test@example.com",
		CreatedAt: time.Now().Add(-2 * time.Hour),
		ExpiresAt: time.Now().Add(-time.Hour),
	}

	store.Set(session)

	_, err := store.Get(session.ID)
	assert.ErrorIs(t, err, ErrSessionExpired)
}

func TestStore_Delete(t *testing.T) {
	store := NewStore()

	session := &Session{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		Email:     "test@example.com",
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}

	store.Set(session)
	store.Delete(session.ID)

	_, err := store.Get(session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestStore_Cleanup(t *testing.T) {
	store := NewStore()

	activeSession := &Session{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		Email:     "active@example.com",
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}
	store.Set(activeSession)

	expiredSession := &Session{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		Email:     "expired@example.com",
		CreatedAt: time.Now().Add(-2 * time.Hour),
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	store.Set(expiredSession)

	removed := store.Cleanup()
	assert.Equal(t, 1, removed)

	_, err := store.Get(activeSession.ID)
	assert.NoError(t, err)

	_, err = store.Get(expiredSession.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestManager_Create(t *testing.T) {
	log := logger.NewTestLogger()
	manager := NewManager(24*time.Hour, log)

	userID := uuid.New()
	session := manager.Create(userID, "test@example.com", false)
	assert.NotEqual(t, uuid.Nil, session.ID)
	assert.Equal(t, userID, session.UserID)
	assert.Equal(t, "test@example.com", session.Email)
	assert.False(t, session.IsAdmin)
	assert.False(t, session.IsExpired())
}

func TestManager_Get(t *testing.T) {
	log := logger.NewTestLogger()
	manager := NewManager(24*time.Hour, log)

	created := manager.Create(uuid.New(), "test@example.com", true)

	retrieved, err := manager.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, retrieved.ID)
	assert.Equal(t, created.UserID, retrieved.UserID)
	assert.True(t, retrieved.IsAdmin)
}

func TestManager_GetExpired(t *testing.T) {
	log := logger.NewTestLogger()
	manager := NewManager(time.Millisecond, log)

	created := manager.Create(uuid.New(), "test@example.com", false)

	// Wait for session to expire
	time.Sleep(10 * time.Millisecond)

	_, err := manager.Get(created.ID)
	assert.ErrorIs(t, err, ErrSessionExpired)
}

func TestManager_Delete(t *testing.T) {
	log := logger.NewTestLogger()
	manager := NewManager(24*time.Hour, log)

	created := manager.Create(uuid.New(), "test@example.com", false)

	manager.Delete(created.ID)

	_, err := manager.Get(created.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestManager_Concurrent(t *testing.T) {
	log := logger.NewTestLogger()
	manager := NewManager(24*time.Hour, log)

	var wg sync.WaitGroup
	sessionIDs := make(chan uuid.UUID, 100)

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			session := manager.Create(uuid.New(), "test@example.com", false)
			sessionIDs <- session.ID
		}()
	}

	wg.Wait()
	close(sessionIDs)

	count := 0
	for sessionID := range sessionIDs {
		_, err := manager.Get(sessionID)
		assert.NoError(t, err)
		count++
	}

	assert.Equal(t, 100, count)
}
