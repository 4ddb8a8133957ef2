package repository

import (
	"context"
	"encoding/json"
	"os"
	"sync"

	"brainburst/internal/domain"
	"brainburst/internal/repository/models"
)

// StagingFileAdapter implements domain.StagingRepository backed by the
// pending-questions JSON file. Unlike the bank file the pending file is
// a working document meant to be opened and edited by a reviewer, so
// each write serializes the whole list.
type StagingFileAdapter struct {
	path string
	mu   sync.Mutex
}

// NewStagingFileAdapter creates a staging repository backed by the JSON
// file at path.
func NewStagingFileAdapter(path string) domain.StagingRepository {
	return &StagingFileAdapter{path: path}
}

// Add merges entries into the pending file, keeping whatever earlier
// runs staged there.
func (a *StagingFileAdapter) Add(ctx context.Context, entries []domain.StagedQuestion) error {
	if len(entries) == 0 {
		return nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	existing, err := a.load()
	if err != nil {
		return err
	}
	for _, e := range entries {
		existing = append(existing, toModelStaged(e))
	}
	return a.write(existing)
}

// List returns all pending entries in staged order.
func (a *StagingFileAdapter) List(ctx context.Context) ([]domain.StagedQuestion, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	entries, err := a.load()
	if err != nil {
		return nil, err
	}
	out := make([]domain.StagedQuestion, 0, len(entries))
	for _, m := range entries {
		out = append(out, toDomainStaged(m))
	}
	return out, nil
}

// Clear removes the pending file. A missing file is not an error.
func (a *StagingFileAdapter) Clear(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := os.Remove(a.path); err != nil && !os.IsNotExist(err) {
		return domain.NewInternalError("failed to remove pending file", err)
	}
	return nil
}

func (a *StagingFileAdapter) load() ([]models.StagedQuestion, error) {
	data, err := os.ReadFile(a.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.NewInternalError("failed to read pending file", err)
	}

	var entries []models.StagedQuestion
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, domain.NewInternalError("pending file is not a valid JSON array", err)
	}
	return entries, nil
}

func (a *StagingFileAdapter) write(entries []models.StagedQuestion) error {
	if entries == nil {
		entries = []models.StagedQuestion{}
	}
	data, err := encodeJSON(entries, "  ")
	if err != nil {
		return domain.NewInternalError("failed to encode pending file", err)
	}
	if err := replaceFile(a.path, append(data, '\n')); err != nil {
		return domain.NewInternalError("failed to replace pending file", err)
	}
	return nil
}

func toDomainStaged(m models.StagedQuestion) domain.StagedQuestion {
	return domain.StagedQuestion{
		StageID:  m.StageID,
		BatchID:  m.BatchID,
		StagedAt: m.StagedAt,
		Question: domain.Question{
			Category:         m.Category,
			Difficulty:       domain.Difficulty(m.Difficulty),
			Text:             m.Question,
			CorrectAnswer:    m.CorrectAnswer,
			IncorrectAnswers: m.IncorrectAnswers,
			Source:           m.Source,
			PerceptionLens:   m.PerceptionLens,
		},
	}
}

func toModelStaged(e domain.StagedQuestion) models.StagedQuestion {
	return models.StagedQuestion{
		StageID:          e.StageID,
		BatchID:          e.BatchID,
		StagedAt:         e.StagedAt,
		Category:         e.Question.Category,
		Difficulty:       string(e.Question.Difficulty),
		Question:         e.Question.Text,
		CorrectAnswer:    e.Question.CorrectAnswer,
		IncorrectAnswers: e.Question.IncorrectAnswers,
		Source:           e.Question.Source,
		PerceptionLens:   e.Question.PerceptionLens,
	}
}
