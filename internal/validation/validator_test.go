package validation

import (
	"testing"

	"brainburst/internal/domain"

	"github.com/stretchr/testify/assert"
)

func validCandidate() *domain.Candidate {
	return &domain.Candidate{
		Category:         "Middle East Diplomacy",
		Difficulty:       "medium",
		Question:         "Which country brokered the 2020 normalization accords between Israel and the UAE?",
		CorrectAnswer:    "The United States",
		IncorrectAnswers: []string{"Egypt", "Qatar", "France"},
		Source:           "Abraham Accords coverage",
	}
}

func TestValidateCandidate_Valid(t *testing.T) {
	v := NewValidator()
	reasons := v.ValidateCandidate(validCandidate())
	assert.Empty(t, reasons)
}

func TestValidateCandidate_MissingDifficulty(t *testing.T) {
	v := NewValidator()
	c := validCandidate()
	c.Difficulty = ""
	reasons := v.ValidateCandidate(c)
	assert.Len(t, reasons, 1)
	assert.Contains(t, reasons[0], "difficulty")
}

func TestValidateCandidate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *domain.Candidate)
		want   string
	}{
		{"empty question", func(c *domain.Candidate) { c.Question = " " }, "missing or empty field: question"},
		{"empty correct answer", func(c *domain.Candidate) { c.CorrectAnswer = "" }, "missing or empty field: correct_answer"},
		{"no incorrect answers", func(c *domain.Candidate) { c.IncorrectAnswers = nil }, "missing or empty field: incorrect_answers"},
		{"missing source", func(c *domain.Candidate) { c.Source = "" }, "missing or empty field: source"},
		{"two distractors", func(c *domain.Candidate) { c.IncorrectAnswers = c.IncorrectAnswers[:2] }, "need exactly 3 incorrect_answers, got 2"},
		{"four distractors", func(c *domain.Candidate) {
			c.IncorrectAnswers = append(c.IncorrectAnswers, "Turkey")
		}, "need exactly 3 incorrect_answers, got 4"},
		{"bad difficulty", func(c *domain.Candidate) { c.Difficulty = "extreme" }, "invalid difficulty: extreme"},
		{"blank distractor", func(c *domain.Candidate) { c.IncorrectAnswers[2] = "   " }, "incorrect_answers[2] is empty"},
		{"distractor equals answer", func(c *domain.Candidate) {
			c.IncorrectAnswers[1] = "the united states"
		}, "incorrect_answers[1] duplicates the correct answer"},
		{"repeated distractor", func(c *domain.Candidate) {
			c.IncorrectAnswers[2] = "Egypt"
		}, "incorrect_answers[2] duplicates incorrect_answers[0]"},
	}

	v := NewValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCandidate()
			tt.mutate(c)
			reasons := v.ValidateCandidate(c)
			assert.Contains(t, reasons, tt.want)
		})
	}
}

func TestValidateCandidate_UnknownCategoryKept(t *testing.T) {
	v := NewValidator()
	c := validCandidate()
	c.Category = "Space Diplomacy"
	assert.Empty(t, v.ValidateCandidate(c))
	assert.False(t, domain.IsKnownCategory(c.Category))
}

func TestValidateRoundRequest(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.ValidateRoundRequest("normal", 10))
	assert.NoError(t, v.ValidateRoundRequest("hard", 1))

	err := v.ValidateRoundRequest("insane", 10)
	assert.Error(t, err)

	err = v.ValidateRoundRequest("normal", 0)
	assert.Error(t, err)

	err = v.ValidateRoundRequest("normal", 51)
	assert.Error(t, err)
}
