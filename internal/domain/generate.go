package domain

import "context"

// Candidate represents one question as returned by the LLM, before
// validation and deduplication. Field tags match the JSON schema the
// model is instructed to produce.
type Candidate struct {
	Category         string   `json:"category"`
	Difficulty       string   `json:"difficulty"`
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
	Source           string   `json:"source"`
}

// QuestionGenerator defines the interface for generating question
// candidates from a batch of news headlines.
type QuestionGenerator interface {
	// Generate asks the model for count candidate questions grounded in
	// the given headlines. Candidates come back with IDs unassigned.
	Generate(ctx context.Context, headlines []Headline, count int) ([]*Candidate, error)
}
