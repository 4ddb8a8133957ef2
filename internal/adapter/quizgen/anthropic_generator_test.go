package quizgen

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"brainburst/internal/config"
	"brainburst/internal/domain"
)

const sampleArray = `[
  {
    "category": "UN & Multilateral Diplomacy",
    "difficulty": "medium",
    "question": "Which body passed the resolution?",
    "correct_answer": "The UN Security Council",
    "incorrect_answers": ["The UN General Assembly", "The ICJ", "The EU Council"],
    "source": "Reuters: UNSC resolution vote"
  },
  {
    "category": "EU & NATO Affairs",
    "difficulty": "hard",
    "question": "Which country blocked the accession protocol?",
    "correct_answer": "Hungary",
    "incorrect_answers": ["Poland", "Austria", "Slovakia"],
    "source": "BBC: accession talks stall"
  }
]`

func TestParseCandidates_PlainArray(t *testing.T) {
	candidates, err := parseCandidates(sampleArray)
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, "Which body passed the resolution?", candidates[0].Question)
	assert.Equal(t, "medium", candidates[0].Difficulty)
	assert.Equal(t, []string{"Poland", "Austria", "Slovakia"}, candidates[1].IncorrectAnswers)
	assert.Equal(t, "BBC: accession talks stall", candidates[1].Source)
}

func TestParseCandidates_MarkdownFences(t *testing.T) {
	fenced := "```json\n" + sampleArray + "\n```"

	candidates, err := parseCandidates(fenced)
	require.NoError(t, err)
	assert.Len(t, candidates, 2)
}

func TestParseCandidates_SurroundingCommentary(t *testing.T) {
	chatty := "Here are the questions you asked for:\n" + sampleArray + "\nLet me know if you need more."

	candidates, err := parseCandidates(chatty)
	require.NoError(t, err)
	assert.Len(t, candidates, 2)
}

func TestParseCandidates_Invalid(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"prose only", "I could not generate any questions."},
		{"truncated array", `[{"category": "US Foreign Policy", "difficulty":`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseCandidates(tc.raw)
			assert.Error(t, err)
		})
	}
}

func TestDefaultSource(t *testing.T) {
	cited := &domain.Candidate{Source: "Reuters: UNSC resolution vote"}
	uncited := &domain.Candidate{Source: "  "}

	defaultSource([]*domain.Candidate{cited, uncited}, time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC))

	assert.Equal(t, "Reuters: UNSC resolution vote", cited.Source)
	assert.Equal(t, "Generated from current events - 2026-08-25", uncited.Source)
}

func TestBuildNewsBlock(t *testing.T) {
	block := buildNewsBlock([]domain.Headline{
		{Source: "Reuters World", Title: "Summit opens", Summary: "Leaders gather.", PublishedAt: time.Now()},
		{Source: "BBC World", Title: "Talks stall", Summary: "No agreement yet."},
	})

	assert.Equal(t, "[1] Summit opens (Reuters World)\nLeaders gather.\n\n[2] Talks stall (BBC World)\nNo agreement yet.", block)
}

func TestBuildSystemPrompt(t *testing.T) {
	prompt := buildSystemPrompt()

	for _, c := range domain.Categories {
		assert.Contains(t, prompt, "- "+c)
	}
	assert.Contains(t, prompt, "Return ONLY valid JSON")
	assert.True(t, strings.HasPrefix(prompt, "You are an expert trivia question generator"))
}

func TestNewAnthropicGenerator_RequiresAPIKey(t *testing.T) {
	_, err := NewAnthropicGenerator(config.GeneratorConfig{Model: "claude-sonnet-4-5-20250929"}, "", zap.NewNop())

	require.Error(t, err)
	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeMissingConfig, domainErr.Code)
}
