package project

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tombers-dev/tombers-backend/logger"
	"github.com/tombers-dev/tombers-backend/testutil"
)

// setupTestStore creates a test database and project store for testing.
func setupTestStore(t *testing.T) (*gorm.DB, Store) {
	db := testutil.SetupTestDB(t)
	testutil.AutoMigrate(t, db, &Project{})

	log := logger.NewTestLogger()
	store := NewMySQLStore(db, log)

	return db, store
}

// createTestProject creates a test project with default values.
func createTestProject(title string, creatorID uuid.UUID) *Project {
	return &Project{
		Title:       title,
		Description: "Test description",
		Status:      StatusActive,
		CreatorID:   creatorID,
		Stats:       Stats{TeamCurrent: 1, TeamMax: 5},
	}
}
