package domain

import "context"

// TriviaQuestion is a general-knowledge question served alongside the
// diplomacy bank. These come from an external trivia API (or a built-in
// fallback set) and are never persisted.
type TriviaQuestion struct {
	Category         string
	Difficulty       Difficulty
	Question         string
	CorrectAnswer    string
	IncorrectAnswers []string
}

// TriviaProvider defines the interface (port) for fetching general
// trivia questions. Implementations include the opentdb.com client and
// the static fallback set.
type TriviaProvider interface {
	Fetch(ctx context.Context, amount int, category, difficulty string) ([]TriviaQuestion, error)
}
