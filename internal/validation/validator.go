package validation

import (
	"fmt"
	"strings"

	"brainburst/internal/domain"
)

// Validator checks generated candidates against the question schema
// before they reach deduplication and the bank writer.
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateCandidate returns the list of reasons a candidate is rejected.
// An empty slice means the candidate is schema-valid. An unrecognized
// category is not a rejection; callers flag it separately via
// domain.IsKnownCategory.
func (v *Validator) ValidateCandidate(c *domain.Candidate) []string {
	var reasons []string

	if strings.TrimSpace(c.Category) == "" {
		reasons = append(reasons, "missing or empty field: category")
	}
	if strings.TrimSpace(c.Difficulty) == "" {
		reasons = append(reasons, "missing or empty field: difficulty")
	}
	if strings.TrimSpace(c.Question) == "" {
		reasons = append(reasons, "missing or empty field: question")
	}
	if strings.TrimSpace(c.CorrectAnswer) == "" {
		reasons = append(reasons, "missing or empty field: correct_answer")
	}
	if len(c.IncorrectAnswers) == 0 {
		reasons = append(reasons, "missing or empty field: incorrect_answers")
	}
	if strings.TrimSpace(c.Source) == "" {
		reasons = append(reasons, "missing or empty field: source")
	}
	if len(reasons) > 0 {
		return reasons
	}

	if len(c.IncorrectAnswers) != 3 {
		reasons = append(reasons, fmt.Sprintf("need exactly 3 incorrect_answers, got %d", len(c.IncorrectAnswers)))
	}
	if _, ok := domain.ParseDifficulty(c.Difficulty); !ok {
		reasons = append(reasons, fmt.Sprintf("invalid difficulty: %s", c.Difficulty))
	}
	for i, ans := range c.IncorrectAnswers {
		if strings.TrimSpace(ans) == "" {
			reasons = append(reasons, fmt.Sprintf("incorrect_answers[%d] is empty", i))
			continue
		}
		if strings.EqualFold(strings.TrimSpace(ans), strings.TrimSpace(c.CorrectAnswer)) {
			reasons = append(reasons, fmt.Sprintf("incorrect_answers[%d] duplicates the correct answer", i))
		}
		for j := 0; j < i; j++ {
			if strings.EqualFold(strings.TrimSpace(ans), strings.TrimSpace(c.IncorrectAnswers[j])) {
				reasons = append(reasons, fmt.Sprintf("incorrect_answers[%d] duplicates incorrect_answers[%d]", i, j))
			}
		}
	}

	return reasons
}

// ValidateRoundRequest validates quiz round query parameters
func (v *Validator) ValidateRoundRequest(mode string, count int) error {
	if mode != "normal" && mode != "hard" {
		return domain.NewInvalidRequestError(fmt.Sprintf("invalid mode: %s", mode))
	}
	if count <= 0 || count > 50 {
		return domain.NewInvalidRequestError(fmt.Sprintf("count must be between 1 and 50, got %d", count))
	}
	return nil
}
