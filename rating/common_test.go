package rating

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tombers-dev/tombers-backend/database"
	"github.com/tombers-dev/tombers-backend/logger"
	"github.com/tombers-dev/tombers-backend/match"
	"github.com/tombers-dev/tombers-backend/project"
	"github.com/tombers-dev/tombers-backend/testutil"
	"github.com/tombers-dev/tombers-backend/user"
)

type serviceFixture struct {
	db       *gorm.DB
	users    user.Store
	projects project.Store
	ratings  Store
	engine   *match.Engine
	service  *Service
}

// setupService wires the rating service against real sqlite-backed stores,
// with the relationship engine alongside so memberships can be established
// through the real accept flow.
func setupService(t *testing.T) *serviceFixture {
	db := testutil.SetupTestDB(t)
	testutil.AutoMigrate(t, db, &user.User{}, &project.Project{}, &Rating{})

	log := logger.NewTestLogger()
	users := user.NewMySQLStore(db, log)
	projects := project.NewMySQLStore(db, log)
	ratings := NewMySQLStore(db, log)
	tx := database.NewGormTxManager(db)

	return &serviceFixture{
		db:       db,
		users:    users,
		projects: projects,
		ratings:  ratings,
		engine:   match.NewEngine(users, projects, tx, log),
		service:  NewService(ratings, users, projects, tx, log),
	}
}

func (f *serviceFixture) newUser(t *testing.T, username, email string) *user.User {
	u := &user.User{
		FirstName: "Test",
		LastName:  "User",
		Username:  username,
		Email:     email,
		Status:    user.StatusAvailable,
		Roles:     user.RoleList{user.RoleUser},
	}
	require.NoError(t, u.SetPassword("password123"))
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func (f *serviceFixture) newProject(t *testing.T, creator *user.User, title string) *project.Project {
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

// addMember takes a user through the real like-then-accept flow.
func (f *serviceFixture) addMember(t *testing.T, owner *user.User, p *project.Project, member *user.User) {
	ctx := context.Background()
	require.NoError(t, f.engine.Like(ctx, member.Email, p.ID))
	require.NoError(t, f.engine.ManageInterested(ctx, owner.Email, p.ID, member.ID, match.ActionAccept))
}
