package trivia

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brainburst/internal/domain"
)

func TestStaticProvider_Fetch(t *testing.T) {
	provider := NewStaticProvider()

	questions, err := provider.Fetch(context.Background(), 5, "", "any")
	require.NoError(t, err)
	assert.Len(t, questions, 5)
	for _, q := range questions {
		assert.NotEmpty(t, q.Question)
		assert.NotEmpty(t, q.CorrectAnswer)
		assert.Len(t, q.IncorrectAnswers, 3)
	}
}

func TestStaticProvider_DifficultyFilter(t *testing.T) {
	provider := NewStaticProvider()

	questions, err := provider.Fetch(context.Background(), 50, "", "hard")
	require.NoError(t, err)
	require.NotEmpty(t, questions)
	for _, q := range questions {
		assert.Equal(t, domain.DifficultyHard, q.Difficulty)
	}
}

func TestStaticProvider_UnmatchableDifficultyKeepsPool(t *testing.T) {
	provider := NewStaticProvider()

	questions, err := provider.Fetch(context.Background(), 50, "", "impossible")
	require.NoError(t, err)
	assert.Len(t, questions, len(fallbackQuestions))
}

func TestStaticProvider_AmountLargerThanPool(t *testing.T) {
	provider := NewStaticProvider()

	questions, err := provider.Fetch(context.Background(), 500, "", "")
	require.NoError(t, err)
	assert.Len(t, questions, len(fallbackQuestions))
}
