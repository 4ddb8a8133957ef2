package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"brainburst/internal/domain"
	"brainburst/internal/repository/models"
)

// BankFileAdapter implements domain.BankRepository on top of the JSON
// bank file shared with the quiz UI. Existing records are kept as raw
// JSON and re-emitted untouched on append, so a write never rewrites
// what a previous run produced. Reads reload when the file changes on
// disk, which lets the API server pick up pipeline runs without a
// restart.
type BankFileAdapter struct {
	path string

	mu      sync.RWMutex
	raws    []json.RawMessage
	parsed  []domain.Question
	modTime time.Time
	loaded  bool
}

// NewBankFileAdapter creates a bank repository backed by the JSON file
// at path. A missing file is treated as an empty bank.
func NewBankFileAdapter(path string) domain.BankRepository {
	return &BankFileAdapter{path: path}
}

// GetAll returns every question in stored order.
func (a *BankFileAdapter) GetAll(ctx context.Context) ([]domain.Question, error) {
	a.mu.Lock()
	if err := a.loadLocked(); err != nil {
		a.mu.Unlock()
		return nil, err
	}
	out := make([]domain.Question, len(a.parsed))
	copy(out, a.parsed)
	a.mu.Unlock()
	return out, nil
}

// GetByID retrieves a single question by its ID.
func (a *BankFileAdapter) GetByID(ctx context.Context, id int) (*domain.Question, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.loadLocked(); err != nil {
		return nil, err
	}
	for i := range a.parsed {
		if a.parsed[i].ID == id {
			q := a.parsed[i]
			return &q, nil
		}
	}
	return nil, domain.NewQuestionNotFoundError(id)
}

// Append assigns sequential IDs (max existing + 1, incrementing) and
// writes the bank back atomically. Pre-existing records are emitted
// from their original raw JSON.
func (a *BankFileAdapter) Append(ctx context.Context, questions []domain.Question) ([]domain.Question, error) {
	if len(questions) == 0 {
		return nil, nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.loadLocked(); err != nil {
		return nil, err
	}

	nextID := a.maxIDLocked() + 1
	raws := make([]json.RawMessage, len(a.raws), len(a.raws)+len(questions))
	copy(raws, a.raws)

	stored := make([]domain.Question, 0, len(questions))
	for _, q := range questions {
		q.ID = nextID
		nextID++
		raw, err := encodeJSON(toModelQuestion(q), "")
		if err != nil {
			return nil, domain.NewInternalError("failed to encode question", err)
		}
		raws = append(raws, raw)
		stored = append(stored, q)
	}

	if err := a.writeLocked(raws); err != nil {
		return nil, err
	}

	a.raws = raws
	a.parsed = append(a.parsed, stored...)
	a.loaded = true
	if info, err := os.Stat(a.path); err == nil {
		a.modTime = info.ModTime()
	}

	return stored, nil
}

// loadLocked (re)reads the file when it changed since the last load.
// Callers must hold the write lock.
func (a *BankFileAdapter) loadLocked() error {
	info, err := os.Stat(a.path)
	if os.IsNotExist(err) {
		a.raws = nil
		a.parsed = nil
		a.modTime = time.Time{}
		a.loaded = true
		return nil
	}
	if err != nil {
		return domain.NewInternalError("failed to stat bank file", err)
	}
	if a.loaded && info.ModTime().Equal(a.modTime) {
		return nil
	}

	data, err := os.ReadFile(a.path)
	if err != nil {
		return domain.NewInternalError("failed to read bank file", err)
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return domain.NewInternalError("bank file is not a valid JSON array", err)
	}

	parsed := make([]domain.Question, 0, len(raws))
	for i, raw := range raws {
		var m models.Question
		if err := json.Unmarshal(raw, &m); err != nil {
			return domain.NewInternalError(fmt.Sprintf("bank record %d is malformed", i), err)
		}
		parsed = append(parsed, toDomainQuestion(m))
	}

	a.raws = raws
	a.parsed = parsed
	a.modTime = info.ModTime()
	a.loaded = true
	return nil
}

func (a *BankFileAdapter) maxIDLocked() int {
	maxID := 0
	for i := range a.parsed {
		if a.parsed[i].ID > maxID {
			maxID = a.parsed[i].ID
		}
	}
	return maxID
}

func (a *BankFileAdapter) writeLocked(raws []json.RawMessage) error {
	if raws == nil {
		raws = []json.RawMessage{}
	}
	data, err := encodeJSON(raws, "  ")
	if err != nil {
		return domain.NewInternalError("failed to encode bank file", err)
	}
	if err := replaceFile(a.path, append(data, '\n')); err != nil {
		return domain.NewInternalError("failed to replace bank file", err)
	}
	return nil
}

func toDomainQuestion(m models.Question) domain.Question {
	return domain.Question{
		ID:               m.ID,
		Category:         m.Category,
		Difficulty:       domain.Difficulty(m.Difficulty),
		Text:             m.Question,
		CorrectAnswer:    m.CorrectAnswer,
		IncorrectAnswers: m.IncorrectAnswers,
		Source:           m.Source,
		PerceptionLens:   m.PerceptionLens,
	}
}

func toModelQuestion(q domain.Question) models.Question {
	return models.Question{
		ID:               q.ID,
		Category:         q.Category,
		Difficulty:       string(q.Difficulty),
		Question:         q.Text,
		CorrectAnswer:    q.CorrectAnswer,
		IncorrectAnswers: q.IncorrectAnswers,
		Source:           q.Source,
		PerceptionLens:   q.PerceptionLens,
	}
}
