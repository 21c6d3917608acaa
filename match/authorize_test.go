package match

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/tombers-dev/tombers-backend/internal/idlist"
	"github.com/tombers-dev/tombers-backend/user"
)

func TestIsOwnerOrAdmin(t *testing.T) {
	projectID := uuid.New()

	t.Run("creator is allowed", func(t *testing.T) {
		u := &user.User{
			Roles:             user.RoleList{user.RoleUser},
			CreatedProjectIDs: idlist.List{projectID},
		}
		assert.True(t, IsOwnerOrAdmin(u, projectID))
	})

	t.Run("admin is allowed without ownership", func(t *testing.T) {
		u := &user.User{Roles: user.RoleList{user.RoleAdmin}}
		assert.True(t, IsOwnerOrAdmin(u, projectID))
	})

	t.Run("plain user is denied", func(t *testing.T) {
		u := &user.User{Roles: user.RoleList{user.RoleUser}}
		assert.False(t, IsOwnerOrAdmin(u, projectID))
	})

	t.Run("ownership of another project does not carry over", func(t *testing.T) {
		u := &user.User{
			Roles:             user.RoleList{user.RoleUser},
			CreatedProjectIDs: idlist.List{uuid.New()},
		}
		assert.False(t, IsOwnerOrAdmin(u, projectID))
	})
}
