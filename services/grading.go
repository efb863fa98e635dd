package services

import (
	"github.com/google/uuid"

	"quizz_backend/models"
)

// SubmittedAnswer is one questionId/answer pair as sent by the client. The
// submitted list is also what gets stored verbatim on the attempt row.
type SubmittedAnswer struct {
	QuestionID uuid.UUID `json:"questionId"`
	Answer     string    `json:"answer"`
}

type GradeResult struct {
	Score          float64 `json:"score"`
	CorrectAnswers int     `json:"correctAnswers"`
	TotalQuestions int     `json:"totalQuestions"`
}

// AnswerCorrect is the single equality rule used both at grading time and
// when rendering result details: exact, case-sensitive, untrimmed.
func AnswerCorrect(correctAnswer, submitted string) bool {
	return submitted == correctAnswer
}

// Grade scores a submission against a quiz's question set. A question with
// no submitted pair counts as wrong. Score is the percentage of correct
// answers, unrounded; callers must not pass an empty question set.
func Grade(questions []models.Question, answers []SubmittedAnswer) GradeResult {
	result := GradeResult{TotalQuestions: len(questions)}
	if len(questions) == 0 {
		return result
	}

	// First pair wins when a questionId is submitted more than once.
	submitted := make(map[uuid.UUID]string, len(answers))
	for _, a := range answers {
		if _, ok := submitted[a.QuestionID]; !ok {
			submitted[a.QuestionID] = a.Answer
		}
	}

	for _, q := range questions {
		answer, ok := submitted[q.ID]
		if ok && AnswerCorrect(q.CorrectAnswer, answer) {
			result.CorrectAnswers++
		}
	}

	result.Score = float64(result.CorrectAnswers) / float64(result.TotalQuestions) * 100
	return result
}
