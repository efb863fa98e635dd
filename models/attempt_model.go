package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Attempt is a student's single graded submission to a quiz. The composite
// unique index makes the one-attempt-per-student rule hold under concurrent
// submissions; the handler's pre-check is only a fast path.
type Attempt struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_attempts_user_quiz" json:"user_id"`
	QuizID      uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_attempts_user_quiz;index" json:"quiz_id"`
	Score       float64        `gorm:"not null;default:0" json:"score"` // percentage
	Answers     datatypes.JSON `gorm:"type:jsonb" json:"answers"`
	StartedAt   time.Time      `gorm:"not null" json:"started_at"`
	CompletedAt *time.Time     `json:"completed_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
	Quiz Quiz `gorm:"foreignKey:QuizID" json:"-"`
}
