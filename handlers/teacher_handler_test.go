package handlers

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizz_backend/models"
)

func TestBuildQuestions_Defaults(t *testing.T) {
	quizID := uuid.New()

	questions, err := buildQuestions(quizID, []QuestionInput{
		{QuestionText: "What is the capital of France?", CorrectAnswer: "Paris"},
	})
	require.NoError(t, err)
	require.Len(t, questions, 1)

	q := questions[0]
	assert.Equal(t, quizID, q.QuizID)
	assert.Equal(t, models.QuestionTypeMultipleChoice, q.QuestionType)
	assert.Equal(t, 1, q.Points)
	assert.JSONEq(t, `[]`, string(q.Options))
}

func TestBuildQuestions_OptionsRoundTrip(t *testing.T) {
	options := []string{"Paris", "London", "Berlin", "Madrid"}

	questions, err := buildQuestions(uuid.New(), []QuestionInput{
		{
			QuestionText:  "Capital of France?",
			QuestionType:  models.QuestionTypeMultipleChoice,
			Options:       options,
			CorrectAnswer: "Paris",
			Points:        3,
		},
	})
	require.NoError(t, err)

	var got []string
	require.NoError(t, json.Unmarshal(questions[0].Options, &got))
	assert.Equal(t, options, got) // same order, same strings
	assert.Equal(t, 3, questions[0].Points)
}

func TestBuildQuestions_PositionsFollowInputOrder(t *testing.T) {
	questions, err := buildQuestions(uuid.New(), []QuestionInput{
		{QuestionText: "First", CorrectAnswer: "a"},
		{QuestionText: "Second", CorrectAnswer: "b"},
		{QuestionText: "Third", CorrectAnswer: "c"},
	})
	require.NoError(t, err)
	require.Len(t, questions, 3)

	for i, q := range questions {
		assert.Equal(t, i, q.Position)
	}
	assert.Equal(t, "First", questions[0].QuestionText)
	assert.Equal(t, "Third", questions[2].QuestionText)
}

func TestBuildQuestions_MissingTextRejectsWholeSet(t *testing.T) {
	questions, err := buildQuestions(uuid.New(), []QuestionInput{
		{QuestionText: "Valid question", CorrectAnswer: "yes"},
		{QuestionText: "", CorrectAnswer: "no"},
	})

	assert.Error(t, err)
	assert.Nil(t, questions)
}

func TestBuildQuestions_MissingCorrectAnswerRejectsWholeSet(t *testing.T) {
	questions, err := buildQuestions(uuid.New(), []QuestionInput{
		{QuestionText: "No answer given"},
	})

	assert.Error(t, err)
	assert.Nil(t, questions)
}

func TestBuildQuestions_EmptySet(t *testing.T) {
	questions, err := buildQuestions(uuid.New(), nil)

	require.NoError(t, err)
	assert.Empty(t, questions)
}

func TestCreateQuizRequest_Validation(t *testing.T) {
	valid := CreateQuizRequest{
		Title: "Geo Quiz",
		Questions: []QuestionInput{
			{QuestionText: "Q1", CorrectAnswer: "Paris"},
		},
	}
	assert.NoError(t, validate.Struct(valid))

	noTitle := valid
	noTitle.Title = ""
	assert.Error(t, validate.Struct(noTitle))

	noQuestions := valid
	noQuestions.Questions = nil
	assert.Error(t, validate.Struct(noQuestions))

	badQuestion := valid
	badQuestion.Questions = []QuestionInput{{QuestionText: "Q1"}}
	assert.Error(t, validate.Struct(badQuestion))
}
