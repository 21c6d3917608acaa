package match

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tombers-dev/tombers-backend/database"
	"github.com/tombers-dev/tombers-backend/logger"
	"github.com/tombers-dev/tombers-backend/project"
	"github.com/tombers-dev/tombers-backend/testutil"
	"github.com/tombers-dev/tombers-backend/user"
)

type engineFixture struct {
	db       *gorm.DB
	users    user.Store
	projects project.Store
	engine   *Engine
}

// setupEngine wires the engine against real sqlite-backed stores so paired
// writes and transactions are exercised for real.
func setupEngine(t *testing.T) *engineFixture {
	db := testutil.SetupTestDB(t)
	testutil.AutoMigrate(t, db, &user.User{}, &project.Project{})

	log := logger.NewTestLogger()
	users := user.NewMySQLStore(db, log)
	projects := project.NewMySQLStore(db, log)
	tx := database.NewGormTxManager(db)

	return &engineFixture{
		db:       db,
		users:    users,
		projects: projects,
		engine:   NewEngine(users, projects, tx, log),
	}
}

// newUser creates and persists a user with the given identity.
func (f *engineFixture) newUser(t *testing.T, username, email string, roles ...user.Role) *user.User {
	u := &user.User{
		FirstName: "Test",
		LastName:  "User",
		Username:  username,
		Email:     email,
		Status:    user.StatusAvailable,
		Roles:     user.RoleList(roles),
	}
	if len(roles) == 0 {
		u.Roles = user.RoleList{user.RoleUser}
	}
	require.NoError(t, u.SetPassword("password123"))
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

// newProject creates a project through the engine so the creator mirror is
// maintained.
func (f *engineFixture) newProject(t *testing.T, creator *user.User, title string) *project.Project {
	p := &project.Project{
		Title:       title,
		Description: "A test project",
		Status:      project.StatusActive,
		Stats:       project.Stats{TeamCurrent: 1, TeamMax: 4},
	}
	created, err := f.engine.CreateProject(context.Background(), creator.Email, p)
	require.NoError(t, err)
	return created
}

// reload fetches fresh copies of a user and a project.
func (f *engineFixture) reload(t *testing.T, userID, projectID uuid.UUID) (*user.User, *project.Project) {
	ctx := context.Background()
	u, err := f.users.GetByID(ctx, userID)
	require.NoError(t, err)
	p, err := f.projects.GetByID(ctx, projectID)
	require.NoError(t, err)
	return u, p
}

// assertMirrored checks the bidirectional like invariant for a (user, project)
// pair: the project is in the user's liked list exactly when the user is in
// the project's like list.
func (f *engineFixture) assertMirrored(t *testing.T, userID, projectID uuid.UUID) {
	t.Helper()
	u, p := f.reload(t, userID, projectID)
	userSide := u.LikedProjectIDs.Contains(projectID)
	projectSide := p.LikeIDs.Contains(userID)
	require.Equal(t, userSide, projectSide,
		"like mirror broken: user side %v, project side %v", userSide, projectSide)
}

// assertExclusive checks that a project is never both liked and disliked by
// the same user.
func (f *engineFixture) assertExclusive(t *testing.T, userID, projectID uuid.UUID) {
	t.Helper()
	u, _ := f.reload(t, userID, projectID)
	liked := u.LikedProjectIDs.Contains(projectID)
	disliked := u.DislikedProjectIDs.Contains(projectID)
	require.False(t, liked && disliked, "project simultaneously liked and disliked")
}
