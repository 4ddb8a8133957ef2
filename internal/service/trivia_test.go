package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"brainburst/internal/domain"
)

func triviaQuestion(text string) domain.TriviaQuestion {
	return domain.TriviaQuestion{
		Category:         "History",
		Difficulty:       domain.DifficultyEasy,
		Question:         text,
		CorrectAnswer:    "1945",
		IncorrectAnswers: []string{"1939", "1918", "1963"},
	}
}

func TestTriviaService_GetQuestions_LiveProvider(t *testing.T) {
	primary := new(MockTriviaProvider)
	fallback := new(MockTriviaProvider)

	primary.On("Fetch", mock.Anything, 5, "History", "easy").
		Return([]domain.TriviaQuestion{triviaQuestion("When did WWII end?")}, nil)

	svc := NewTriviaService(primary, fallback)
	resp, err := svc.GetQuestions(context.Background(), 5, "History", "easy")

	require.NoError(t, err)
	assert.True(t, resp.FromAPI)
	require.Len(t, resp.Questions, 1)
	assert.Equal(t, "When did WWII end?", resp.Questions[0].Question)
	assert.Equal(t, "easy", resp.Questions[0].Difficulty)
	fallback.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTriviaService_GetQuestions_FallbackOnError(t *testing.T) {
	primary := new(MockTriviaProvider)
	fallback := new(MockTriviaProvider)

	primary.On("Fetch", mock.Anything, 10, "", "any").Return(nil, errors.New("connection refused"))
	fallback.On("Fetch", mock.Anything, 10, "", "any").
		Return([]domain.TriviaQuestion{triviaQuestion("When did WWII end?")}, nil)

	svc := NewTriviaService(primary, fallback)
	resp, err := svc.GetQuestions(context.Background(), 10, "", "any")

	require.NoError(t, err)
	assert.False(t, resp.FromAPI)
	assert.Len(t, resp.Questions, 1)
}

func TestTriviaService_GetQuestions_FallbackOnEmptyResult(t *testing.T) {
	primary := new(MockTriviaProvider)
	fallback := new(MockTriviaProvider)

	primary.On("Fetch", mock.Anything, 10, "", "").Return([]domain.TriviaQuestion{}, nil)
	fallback.On("Fetch", mock.Anything, 10, "", "").
		Return([]domain.TriviaQuestion{triviaQuestion("When did WWII end?")}, nil)

	svc := NewTriviaService(primary, fallback)
	resp, err := svc.GetQuestions(context.Background(), 10, "", "")

	require.NoError(t, err)
	assert.False(t, resp.FromAPI)
	assert.Len(t, resp.Questions, 1)
}

func TestTriviaService_GetQuestions_BothProvidersFail(t *testing.T) {
	primary := new(MockTriviaProvider)
	fallback := new(MockTriviaProvider)

	primary.On("Fetch", mock.Anything, 10, "", "").Return(nil, errors.New("connection refused"))
	fallback.On("Fetch", mock.Anything, 10, "", "").Return(nil, errors.New("corrupt fallback"))

	svc := NewTriviaService(primary, fallback)
	_, err := svc.GetQuestions(context.Background(), 10, "", "")

	assertDomainCode(t, err, domain.CodeInternal)
}

func TestTriviaService_GetQuestions_ClampsAmount(t *testing.T) {
	tests := []struct {
		name      string
		requested int
		clamped   int
	}{
		{"zero defaults to ten", 0, 10},
		{"negative defaults to ten", -3, 10},
		{"over the cap", 500, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			primary := new(MockTriviaProvider)
			fallback := new(MockTriviaProvider)

			primary.On("Fetch", mock.Anything, tt.clamped, "", "").
				Return([]domain.TriviaQuestion{triviaQuestion("When did WWII end?")}, nil)

			svc := NewTriviaService(primary, fallback)
			_, err := svc.GetQuestions(context.Background(), tt.requested, "", "")

			require.NoError(t, err)
			primary.AssertExpectations(t)
		})
	}
}
