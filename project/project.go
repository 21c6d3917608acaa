package project

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tombers-dev/tombers-backend/internal/idlist"
)

var (
	// ErrProjectNotFound is returned when a project is not found.
	ErrProjectNotFound = errors.New("project not found")

	// ErrInvalidTitle is returned when a project title is empty.
	ErrInvalidTitle = errors.New("project title is required")

	// ErrInvalidCreator is returned when creator_id is not set.
	ErrInvalidCreator = errors.New("creator_id is required")
)

// Status describes the lifecycle state of a project.
type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusCompleted Status = "completed"
	StatusOnHold    Status = "on_hold"
)

// Stats holds team sizing and descriptive figures for a project. TeamMax is a
// declared soft capacity; acceptance never checks it (see match.Engine).
type Stats struct {
	TeamCurrent int    `json:"team_current" gorm:"column:team_current"`
	TeamMax     int    `json:"team_max" gorm:"column:team_max"`
	Duration    string `json:"duration,omitempty"`
	Language    string `json:"language,omitempty"`
	Type        string `json:"type,omitempty"`
}

// Technology is a technology used by a project.
type Technology struct {
	Name string `json:"name"`
	Icon string `json:"icon,omitempty"`
}

// ObjectiveStatus describes the progress of a single project objective.
type ObjectiveStatus string

const (
	ObjectiveCompleted  ObjectiveStatus = "completed"
	ObjectiveInProgress ObjectiveStatus = "in_progress"
	ObjectivePending    ObjectiveStatus = "pending"
)

// Objective is a single goal within a project.
type Objective struct {
	Text   string          `json:"text"`
	Status ObjectiveStatus `json:"status"`
	Icon   string          `json:"icon,omitempty"`
}

// Project represents a project looking for collaborators. CreatorID is set at
// creation and immutable afterwards. MemberIDs is the accepted team; LikeIDs
// records users who expressed interest and mirrors each user's
// LikedProjectIDs. The interested-candidate set is never stored: it is always
// recomputed as LikeIDs minus MemberIDs.
type Project struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text"`
	ImageURL    string    `json:"image_url,omitempty"`

	Stats        Stats        `json:"stats" gorm:"embedded"`
	Technologies []Technology `json:"technologies" gorm:"serializer:json"`
	Objectives   []Objective  `json:"objectives" gorm:"serializer:json"`
	SkillsNeeded []string     `json:"skills_needed" gorm:"serializer:json"`

	Progress int    `json:"progress"`
	Status   Status `json:"status" gorm:"type:varchar(20);default:active;index:idx_projects_status"`

	CreatorID uuid.UUID   `json:"creator_id" gorm:"type:char(36);not null;index:idx_projects_creator_id"`
	MemberIDs idlist.List `json:"member_ids" gorm:"type:text"`
	LikeIDs   idlist.List `json:"like_ids" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name.
func (Project) TableName() string {
	return "projects"
}

// BeforeCreate hook to generate a UUID before creating a new project.
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Validate checks if the project has valid required fields.
func (p *Project) Validate() error {
	if p.Title == "" {
		return ErrInvalidTitle
	}
	if p.CreatorID == uuid.Nil {
		return ErrInvalidCreator
	}
	return nil
}

// InterestedIDs returns the derived interested-candidate set: users who liked
// the project but are not members. Recomputed on every call, never cached.
func (p *Project) InterestedIDs() idlist.List {
	return p.LikeIDs.Subtract(p.MemberIDs)
}
