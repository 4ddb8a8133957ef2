package service

import (
	"context"

	"go.uber.org/zap"

	"brainburst/internal/domain"
	"brainburst/internal/dto"
	"brainburst/internal/logger"
)

// TriviaService serves general-knowledge questions, preferring the live
// provider and falling back to the built-in set when it is unavailable.
type TriviaService interface {
	GetQuestions(ctx context.Context, amount int, category, difficulty string) (*dto.TriviaResponse, error)
}

// triviaService implements TriviaService
type triviaService struct {
	primary  domain.TriviaProvider
	fallback domain.TriviaProvider
}

// NewTriviaService creates a new instance of triviaService
func NewTriviaService(primary, fallback domain.TriviaProvider) TriviaService {
	return &triviaService{primary: primary, fallback: fallback}
}

// GetQuestions implements TriviaService
func (s *triviaService) GetQuestions(ctx context.Context, amount int, category, difficulty string) (*dto.TriviaResponse, error) {
	if amount <= 0 {
		amount = 10
	}
	if amount > 50 {
		amount = 50
	}

	questions, err := s.primary.Fetch(ctx, amount, category, difficulty)
	fromAPI := true
	if err != nil || len(questions) == 0 {
		if err != nil {
			logger.Get().Warn("live trivia unavailable, using fallback", zap.Error(err))
		}
		fromAPI = false
		questions, err = s.fallback.Fetch(ctx, amount, category, difficulty)
		if err != nil {
			return nil, domain.NewInternalError("failed to fetch trivia questions", err)
		}
	}

	out := make([]dto.TriviaQuestion, 0, len(questions))
	for _, q := range questions {
		out = append(out, dto.TriviaQuestion{
			Category:         q.Category,
			Difficulty:       string(q.Difficulty),
			Question:         q.Question,
			CorrectAnswer:    q.CorrectAnswer,
			IncorrectAnswers: q.IncorrectAnswers,
		})
	}
	return &dto.TriviaResponse{Questions: out, FromAPI: fromAPI}, nil
}
