package apitoken

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tombers-dev/tombers-backend/logger"
	"github.com/tombers-dev/tombers-backend/testutil"
)

// setupTestStore creates a test database and API token store for testing.
func setupTestStore(t *testing.T) (*gorm.DB, Store) {
	db := testutil.SetupTestDB(t)
	testutil.AutoMigrate(t, db, &APIToken{})

	log := logger.NewTestLogger()
	store := NewMySQLStore(db, log)

	return db, store
}

// newTestToken builds an unexpired active token for the given user.
func newTestToken(name string, userID uuid.UUID, scope string) *APIToken {
	_, hash, _ := GenerateToken()
	return &APIToken{
		UserID:    userID,
		Name:      name,
		TokenHash: hash,
		Scope:     scope,
		ExpiresAt: time.Now().Add(DefaultExpiry),
		IsActive:  true,
	}
}
