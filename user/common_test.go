package user

import (
	"testing"

	"gorm.io/gorm"

	"github.com/tombers-dev/tombers-backend/logger"
	"github.com/tombers-dev/tombers-backend/testutil"
)

// setupTestStore creates a test database and user store for testing.
func setupTestStore(t *testing.T) (*gorm.DB, Store) {
	db := testutil.SetupTestDB(t)
	testutil.AutoMigrate(t, db, &User{})

	log := logger.NewTestLogger()
	store := NewMySQLStore(db, log)

	return db, store
}

// createTestUser creates a user with default values and the given identity.
func createTestUser(t *testing.T, username, email string) *User {
	u := &User{
		FirstName: "Test",
		LastName:  "User",
		Username:  username,
		Email:     email,
		Status:    StatusAvailable,
		Roles:     RoleList{RoleUser},
	}
	if err := u.SetPassword("password123"); err != nil {
		t.Fatalf("failed to set password: %v", err)
	}
	return u
}
