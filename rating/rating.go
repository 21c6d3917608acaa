// Package rating keeps the append-only ledger of project collaboration
// ratings. A rating is written once by a project's creator about one of its
// members and is never edited or deleted afterwards.
package rating

import (
	"errors"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxCommentLength = 500

var (
	// ErrInvalidScore is returned when the score is outside 1 to 5.
	ErrInvalidScore = errors.New("score must be between 1 and 5")

	// ErrCommentTooLong is returned when the comment exceeds 500 characters.
	ErrCommentTooLong = errors.New("comment must be at most 500 characters")
)

// Rating is one immutable entry in the ledger: the project creator's score
// for a member's work on that project. The (rater, rated user, project)
// triple is unique.
type Rating struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	RaterID     uuid.UUID `json:"rater_id" gorm:"type:char(36);not null;uniqueIndex:idx_rating_triple"`
	RatedUserID uuid.UUID `json:"rated_user_id" gorm:"type:char(36);not null;uniqueIndex:idx_rating_triple;index"`
	ProjectID   uuid.UUID `json:"project_id" gorm:"type:char(36);not null;uniqueIndex:idx_rating_triple;index"`

	Score   int    `json:"score" gorm:"not null"`
	Comment string `json:"comment,omitempty" gorm:"type:varchar(500)"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name.
func (Rating) TableName() string {
	return "user_ratings"
}

// BeforeCreate hook to generate a UUID before creating a new rating.
func (r *Rating) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Validate checks the score range and comment length.
func (r *Rating) Validate() error {
	if r.Score < 1 || r.Score > 5 {
		return ErrInvalidScore
	}
	if utf8.RuneCountInString(r.Comment) > maxCommentLength {
		return ErrCommentTooLong
	}
	return nil
}
