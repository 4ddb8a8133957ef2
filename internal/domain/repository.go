package domain

import "context"

// BankRepository defines the interface for question-bank persistence.
// The bank is an append-only ordered collection; records are immutable
// once written.
type BankRepository interface {
	// GetAll returns every question in the bank in stored order.
	// A missing bank file is an empty bank, not an error.
	GetAll(ctx context.Context) ([]Question, error)

	// GetByID retrieves a question by its ID
	GetByID(ctx context.Context, id int) (*Question, error)

	// Append assigns each question the next sequential ID and persists
	// it, leaving all pre-existing records untouched. It returns the
	// stored questions with their assigned IDs.
	Append(ctx context.Context, questions []Question) ([]Question, error)
}

// StagingRepository defines the interface for the review staging set
type StagingRepository interface {
	// Add appends entries to the staging set
	Add(ctx context.Context, entries []StagedQuestion) error

	// List returns all staged entries in staging order
	List(ctx context.Context) ([]StagedQuestion, error)

	// Clear removes the staging set entirely. Clearing an empty or
	// missing set is a no-op.
	Clear(ctx context.Context) error
}
