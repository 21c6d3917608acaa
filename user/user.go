package user

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/tombers-dev/tombers-backend/internal/idlist"
)

var (
	// ErrPasswordTooShort is returned when a password is less than 8 characters.
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")

	// ErrInvalidEmail is returned when an email is empty or invalid.
	ErrInvalidEmail = errors.New("email is required")

	// ErrInvalidUsername is returned when a username is empty or invalid.
	ErrInvalidUsername = errors.New("username is required")

	// ErrInvalidName is returned when first or last name is missing.
	ErrInvalidName = errors.New("first and last name are required")
)

// Status describes a user's availability on the platform.
type Status string

const (
	StatusAvailable Status = "available"
	StatusBusy      Status = "busy"
	StatusInactive  Status = "inactive"
)

// Skill is a named skill with a proficiency level.
type Skill struct {
	Name  string `json:"name"`
	Level string `json:"level,omitempty"`
}

// User represents a member of the platform. Besides profile data it carries
// four project-reference sets that mirror the relationship state kept on the
// Project aggregate: liked and disliked projects, created projects, and
// projects the user participates in. Dislikes are user-local and have no
// project-side counterpart.
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	FirstName    string    `json:"first_name" gorm:"not null"`
	LastName     string    `json:"last_name" gorm:"not null"`
	Username     string    `json:"username" gorm:"uniqueIndex;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`

	Bio            string  `json:"bio,omitempty" gorm:"type:text"`
	BirthDate      string  `json:"birth_date,omitempty"`
	Languages      string  `json:"languages,omitempty"`
	Specialization string  `json:"specialization,omitempty"`
	Phone          string  `json:"phone,omitempty"`
	LinkedIn       string  `json:"linkedin,omitempty"`
	GitHub         string  `json:"github,omitempty"`
	Portfolio      string  `json:"portfolio,omitempty"`
	AvatarURL      string  `json:"avatar_url,omitempty"`
	Status         Status  `json:"status" gorm:"type:varchar(20);default:available"`
	Skills         []Skill `json:"skills" gorm:"serializer:json"`

	Certifications []string `json:"certifications" gorm:"serializer:json"`
	Interests      []string `json:"interests" gorm:"serializer:json"`

	Roles RoleList `json:"roles" gorm:"type:text"`

	LikedProjectIDs         idlist.List `json:"liked_project_ids" gorm:"type:text"`
	DislikedProjectIDs      idlist.List `json:"disliked_project_ids" gorm:"type:text"`
	CreatedProjectIDs       idlist.List `json:"created_project_ids" gorm:"type:text"`
	ParticipatingProjectIDs idlist.List `json:"participating_project_ids" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name.
func (User) TableName() string {
	return "users"
}

// BeforeCreate hook to generate a UUID before creating a new user.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// SetPassword hashes and sets the user's password.
// Returns an error if the password is too short.
func (u *User) SetPassword(password string) error {
	if len(password) < 8 {
		return ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword verifies if the provided password matches the user's password hash.
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// Validate checks if the user has valid required fields.
func (u *User) Validate() error {
	if u.Email == "" {
		return ErrInvalidEmail
	}
	if u.Username == "" {
		return ErrInvalidUsername
	}
	if u.FirstName == "" || u.LastName == "" {
		return ErrInvalidName
	}
	return nil
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Roles.Has(RoleAdmin)
}
