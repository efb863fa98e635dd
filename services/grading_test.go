package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"quizz_backend/models"
)

func question(correct string) models.Question {
	return models.Question{ID: uuid.New(), CorrectAnswer: correct}
}

func TestGrade_HalfCorrect(t *testing.T) {
	q1 := question("Paris")
	q2 := question("42")

	result := Grade([]models.Question{q1, q2}, []SubmittedAnswer{
		{QuestionID: q1.ID, Answer: "Paris"},
		{QuestionID: q2.ID, Answer: "41"},
	})

	assert.Equal(t, 50.0, result.Score)
	assert.Equal(t, 1, result.CorrectAnswers)
	assert.Equal(t, 2, result.TotalQuestions)
}

func TestGrade_AllCorrect(t *testing.T) {
	q1 := question("true")
	q2 := question("B")
	q3 := question("photosynthesis")

	result := Grade([]models.Question{q1, q2, q3}, []SubmittedAnswer{
		{QuestionID: q1.ID, Answer: "true"},
		{QuestionID: q2.ID, Answer: "B"},
		{QuestionID: q3.ID, Answer: "photosynthesis"},
	})

	assert.Equal(t, 100.0, result.Score)
	assert.Equal(t, 3, result.CorrectAnswers)
}

func TestGrade_MissingAnswerCountsAsWrong(t *testing.T) {
	q1 := question("Paris")
	q2 := question("42")

	result := Grade([]models.Question{q1, q2}, []SubmittedAnswer{
		{QuestionID: q1.ID, Answer: "Paris"},
	})

	assert.Equal(t, 50.0, result.Score)
	assert.Equal(t, 1, result.CorrectAnswers)
	assert.Equal(t, 2, result.TotalQuestions)
}

func TestGrade_UnknownQuestionIDIgnored(t *testing.T) {
	q1 := question("Paris")

	result := Grade([]models.Question{q1}, []SubmittedAnswer{
		{QuestionID: uuid.New(), Answer: "Paris"},
	})

	assert.Equal(t, 0.0, result.Score)
	assert.Equal(t, 0, result.CorrectAnswers)
}

func TestGrade_ExactMatchOnly(t *testing.T) {
	q1 := question("Paris")
	q2 := question("Paris")
	q3 := question("Paris")

	result := Grade([]models.Question{q1, q2, q3}, []SubmittedAnswer{
		{QuestionID: q1.ID, Answer: "paris"},
		{QuestionID: q2.ID, Answer: " Paris"},
		{QuestionID: q3.ID, Answer: "Paris"},
	})

	// case-sensitive and untrimmed: only the exact string counts
	assert.Equal(t, 1, result.CorrectAnswers)
	assert.InDelta(t, 100.0/3.0, result.Score, 1e-9)
}

func TestGrade_DuplicateSubmissionFirstWins(t *testing.T) {
	q1 := question("42")

	result := Grade([]models.Question{q1}, []SubmittedAnswer{
		{QuestionID: q1.ID, Answer: "41"},
		{QuestionID: q1.ID, Answer: "42"},
	})

	assert.Equal(t, 0, result.CorrectAnswers)
	assert.Equal(t, 0.0, result.Score)
}

func TestGrade_NoAnswers(t *testing.T) {
	q1 := question("Paris")
	q2 := question("42")

	result := Grade([]models.Question{q1, q2}, nil)

	assert.Equal(t, 0.0, result.Score)
	assert.Equal(t, 0, result.CorrectAnswers)
	assert.Equal(t, 2, result.TotalQuestions)
}

func TestGrade_NoQuestions(t *testing.T) {
	result := Grade(nil, []SubmittedAnswer{{QuestionID: uuid.New(), Answer: "x"}})

	assert.Equal(t, 0.0, result.Score)
	assert.Equal(t, 0, result.TotalQuestions)
}

func TestGrade_ScoreWithinBounds(t *testing.T) {
	questions := make([]models.Question, 7)
	answers := make([]SubmittedAnswer, 0, 7)
	for i := range questions {
		questions[i] = question("yes")
		if i%2 == 0 {
			answers = append(answers, SubmittedAnswer{QuestionID: questions[i].ID, Answer: "yes"})
		}
	}

	result := Grade(questions, answers)

	assert.GreaterOrEqual(t, result.Score, 0.0)
	assert.LessOrEqual(t, result.Score, 100.0)
	assert.Equal(t, 4, result.CorrectAnswers)
}

func TestAnswerCorrect(t *testing.T) {
	assert.True(t, AnswerCorrect("42", "42"))
	assert.False(t, AnswerCorrect("42", "42 "))
	assert.False(t, AnswerCorrect("True", "true"))
}
