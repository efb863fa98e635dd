package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	QuestionTypeMultipleChoice = "multiple_choice"
	QuestionTypeTrueFalse      = "true_false"
	QuestionTypeShortAnswer    = "short_answer"
)

type Question struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	QuizID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"quiz_id"`
	Position      int            `gorm:"not null;default:0" json:"position"` // authored order within the quiz
	QuestionText  string         `gorm:"type:text;not null" json:"question_text"`
	QuestionType  string         `gorm:"size:50;not null;default:'multiple_choice'" json:"question_type"`
	Options       datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'" json:"options"`
	CorrectAnswer string         `gorm:"type:text;not null" json:"correct_answer"`
	Points        int            `gorm:"not null;default:1" json:"points"`

	CreatedAt time.Time `json:"created_at"`
}
