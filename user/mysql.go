package user

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tombers-dev/tombers-backend/database"
	"github.com/tombers-dev/tombers-backend/logger"
)

// MySQLStore implements the Store interface using GORM and MySQL.
type MySQLStore struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewMySQLStore creates a new MySQL-backed user store.
func NewMySQLStore(db *gorm.DB, log logger.Logger) *MySQLStore {
	return &MySQLStore{
		db:     db,
		logger: log,
	}
}

// conn resolves the database handle, honoring an active transaction in ctx.
func (s *MySQLStore) conn(ctx context.Context) *gorm.DB {
	return database.FromContext(ctx, s.db).WithContext(ctx)
}

// Create creates a new user in the database.
func (s *MySQLStore) Create(ctx context.Context, user *User) error {
	if err := user.Validate(); err != nil {
		return err
	}

	if err := s.conn(ctx).Create(user).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateEmail
		}
		s.logger.Error(ctx, "failed to create user", map[string]interface{}{
			"error": err.Error(),
			"email": user.Email,
		})
		return err
	}

	s.logger.Info(ctx, "user created", map[string]interface{}{
		"user_id": user.ID.String(),
		"email":   user.Email,
	})

	return nil
}

// GetByID retrieves a user by their ID.
func (s *MySQLStore) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var user User
	err := s.conn(ctx).
		Where("id = ?", id).
		First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error(ctx, "failed to get user by ID", map[string]interface{}{
			"error":   err.Error(),
			"user_id": id.String(),
		})
		return nil, err
	}

	return &user, nil
}

// GetByEmail retrieves a user by their email address.
func (s *MySQLStore) GetByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := s.conn(ctx).
		Where("email = ?", email).
		First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error(ctx, "failed to get user by email", map[string]interface{}{
			"error": err.Error(),
			"email": email,
		})
		return nil, err
	}

	return &user, nil
}

// Save persists the full user aggregate.
func (s *MySQLStore) Save(ctx context.Context, user *User) error {
	if err := user.Validate(); err != nil {
		return err
	}

	if err := s.conn(ctx).Save(user).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateEmail
		}
		s.logger.Error(ctx, "failed to save user", map[string]interface{}{
			"error":   err.Error(),
			"user_id": user.ID.String(),
		})
		return err
	}

	return nil
}

// Update updates a user with the given setters and returns the updated user.
func (s *MySQLStore) Update(ctx context.Context, id uuid.UUID, setters ...UpdateSetter) (*User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	for _, setter := range setters {
		if err := setter(user); err != nil {
			return nil, err
		}
	}

	if err := s.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "user updated", map[string]interface{}{
		"user_id": id.String(),
	})

	return user, nil
}

// List retrieves a paginated list of users.
func (s *MySQLStore) List(ctx context.Context, limit, offset int) ([]*User, error) {
	var users []*User
	err := s.conn(ctx).
		Limit(limit).
		Offset(offset).
		Find(&users).Error

	if err != nil {
		s.logger.Error(ctx, "failed to list users", map[string]interface{}{
			"error":  err.Error(),
			"limit":  limit,
			"offset": offset,
		})
		return nil, err
	}

	return users, nil
}

// Search retrieves users whose first name, last name, username or
// specialization matches the query.
func (s *MySQLStore) Search(ctx context.Context, query string) ([]*User, error) {
	pattern := "%" + query + "%"

	var users []*User
	err := s.conn(ctx).
		Where("first_name LIKE ? OR last_name LIKE ? OR username LIKE ? OR specialization LIKE ?",
			pattern, pattern, pattern, pattern).
		Find(&users).Error

	if err != nil {
		s.logger.Error(ctx, "failed to search users", map[string]interface{}{
			"error": err.Error(),
			"query": query,
		})
		return nil, err
	}

	return users, nil
}

// ListAvailable retrieves users whose status is available.
func (s *MySQLStore) ListAvailable(ctx context.Context) ([]*User, error) {
	var users []*User
	err := s.conn(ctx).
		Where("status = ?", StatusAvailable).
		Find(&users).Error

	if err != nil {
		s.logger.Error(ctx, "failed to list available users", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	return users, nil
}

// isDuplicateKey detects duplicate key errors from MySQL and SQLite.
func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "Duplicate entry")
}
