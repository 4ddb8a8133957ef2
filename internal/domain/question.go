package domain

import (
	"strings"
	"time"
)

// ValidationError represents a validation error
type ValidationError struct {
	message string
}

func (e *ValidationError) Error() string {
	return e.message
}

func NewValidationError(message string) error {
	return &ValidationError{message: message}
}

// Difficulty is the difficulty level of a question
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties lists all recognized difficulty levels
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// ParseDifficulty normalizes a raw difficulty string into a Difficulty.
// The second return value reports whether the input is a recognized level.
func ParseDifficulty(s string) (Difficulty, bool) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Difficulties {
		if d == known {
			return d, true
		}
	}
	return d, false
}

// Question represents a single multiple-choice question in the bank
type Question struct {
	ID               int
	Category         string
	Difficulty       Difficulty
	Text             string
	CorrectAnswer    string
	IncorrectAnswers []string
	Source           string
	PerceptionLens   string
}

// NewQuestion creates a new Question instance with the ID unassigned.
// IDs are assigned by the bank repository at append time.
func NewQuestion(category string, difficulty Difficulty, text, correctAnswer string, incorrectAnswers []string, source string) *Question {
	return &Question{
		Category:         category,
		Difficulty:       difficulty,
		Text:             text,
		CorrectAnswer:    correctAnswer,
		IncorrectAnswers: incorrectAnswers,
		Source:           source,
	}
}

// Validate validates the question
func (q *Question) Validate() error {
	if q.Text == "" {
		return NewValidationError("question text is required")
	}
	if q.CorrectAnswer == "" {
		return NewValidationError("correct answer is required")
	}
	if len(q.IncorrectAnswers) != 3 {
		return NewValidationError("exactly three incorrect answers are required")
	}
	if _, ok := ParseDifficulty(string(q.Difficulty)); !ok {
		return NewValidationError("difficulty must be easy, medium or hard")
	}
	for _, ans := range q.IncorrectAnswers {
		if strings.TrimSpace(ans) == "" {
			return NewValidationError("incorrect answers must not be empty")
		}
		if strings.EqualFold(ans, q.CorrectAnswer) {
			return NewValidationError("incorrect answers must differ from the correct answer")
		}
	}
	return nil
}

// StagedQuestion is a generated question held in the staging file until a
// manual approval run merges it into the bank. The question's ID stays
// unassigned while staged; StageID identifies the entry in the meantime.
type StagedQuestion struct {
	StageID  string
	BatchID  string
	StagedAt time.Time
	Question Question
}

// NewStagedQuestion wraps a question for staging
func NewStagedQuestion(q Question, stageID, batchID string) StagedQuestion {
	return StagedQuestion{
		StageID:  stageID,
		BatchID:  batchID,
		StagedAt: time.Now().UTC(),
		Question: q,
	}
}
