package service

import (
	"context"
	"math/rand"
	"sort"
	"strings"

	"go.uber.org/zap"

	"brainburst/internal/domain"
	"brainburst/internal/dto"
	"brainburst/internal/logger"
	"brainburst/internal/validation"
)

// QuizService defines the interface for serving quiz rounds from the
// question bank.
type QuizService interface {
	GetRound(ctx context.Context, mode string, count int, exclude []int) (*dto.RoundResponse, error)
	CheckAnswer(ctx context.Context, req *dto.CheckAnswerRequest) (*dto.CheckAnswerResponse, error)
	GetCategories(ctx context.Context) (*dto.CategoriesResponse, error)
	GetBankStats(ctx context.Context) (*dto.BankStatsResponse, error)
}

// quizService implements QuizService
type quizService struct {
	bank      domain.BankRepository
	validator *validation.Validator
}

// NewQuizService creates a new instance of quizService
func NewQuizService(bank domain.BankRepository, validator *validation.Validator) QuizService {
	return &quizService{bank: bank, validator: validator}
}

// GetRound implements QuizService. Normal mode draws from easy and
// medium questions, hard mode from hard and medium. IDs in exclude are
// skipped until too few unseen questions remain for a full round, at
// which point the cycle starts over and PoolReset is set so the client
// can clear its seen list.
func (s *quizService) GetRound(ctx context.Context, mode string, count int, exclude []int) (*dto.RoundResponse, error) {
	if err := s.validator.ValidateRoundRequest(mode, count); err != nil {
		return nil, err
	}

	all, err := s.bank.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, domain.NewNotFoundError("the question bank is empty")
	}

	var excluded map[int]bool
	if len(exclude) > 0 {
		excluded = make(map[int]bool, len(exclude))
		for _, id := range exclude {
			excluded[id] = true
		}
	}

	eligible := eligiblePool(all, mode, excluded)
	poolReset := false
	if len(eligible) < count {
		poolReset = true
		eligible = eligiblePool(all, mode, nil)
	}

	rand.Shuffle(len(eligible), func(i, j int) {
		eligible[i], eligible[j] = eligible[j], eligible[i]
	})
	if len(eligible) > count {
		eligible = eligible[:count]
	}

	questions := make([]dto.RoundQuestion, 0, len(eligible))
	for _, q := range eligible {
		questions = append(questions, dto.RoundQuestion{
			ID:             q.ID,
			Category:       q.Category,
			Difficulty:     string(q.Difficulty),
			Question:       q.Text,
			Options:        shuffledOptions(q),
			PerceptionLens: lensFor(q),
		})
	}

	logger.Get().Info("round served",
		zap.String("mode", mode),
		zap.Int("count", len(questions)),
		zap.Bool("pool_reset", poolReset))

	return &dto.RoundResponse{Mode: mode, Questions: questions, PoolReset: poolReset}, nil
}

// CheckAnswer implements QuizService. The answer must match one of the
// options served for the question, so comparison is exact up to
// surrounding whitespace.
func (s *quizService) CheckAnswer(ctx context.Context, req *dto.CheckAnswerRequest) (*dto.CheckAnswerResponse, error) {
	if strings.TrimSpace(req.Answer) == "" {
		return nil, domain.NewInvalidRequestError("answer must not be empty")
	}

	q, err := s.bank.GetByID(ctx, req.QuestionID)
	if err != nil {
		return nil, err
	}

	return &dto.CheckAnswerResponse{
		Correct:        strings.TrimSpace(req.Answer) == q.CorrectAnswer,
		CorrectAnswer:  q.CorrectAnswer,
		Source:         q.Source,
		PerceptionLens: lensFor(*q),
	}, nil
}

// GetCategories implements QuizService. Standard categories always
// appear, even with zero questions; categories the generator introduced
// outside the standard list follow, sorted by name.
func (s *quizService) GetCategories(ctx context.Context) (*dto.CategoriesResponse, error) {
	all, err := s.bank.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(domain.Categories))
	for _, q := range all {
		counts[q.Category]++
	}

	categories := make([]dto.CategoryResponse, 0, len(domain.Categories)+len(counts))
	for _, name := range domain.Categories {
		categories = append(categories, dto.CategoryResponse{
			Name:           name,
			Count:          counts[name],
			PerceptionLens: domain.PerceptionLens(name),
		})
		delete(counts, name)
	}

	extras := make([]string, 0, len(counts))
	for name := range counts {
		extras = append(extras, name)
	}
	sort.Strings(extras)
	for _, name := range extras {
		categories = append(categories, dto.CategoryResponse{Name: name, Count: counts[name]})
	}

	return &dto.CategoriesResponse{Categories: categories}, nil
}

// GetBankStats implements QuizService
func (s *quizService) GetBankStats(ctx context.Context) (*dto.BankStatsResponse, error) {
	all, err := s.bank.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	difficulties := map[string]int{
		string(domain.DifficultyEasy):   0,
		string(domain.DifficultyMedium): 0,
		string(domain.DifficultyHard):   0,
	}
	counts := map[string]int{}
	for _, q := range all {
		difficulties[string(q.Difficulty)]++
		counts[q.Category]++
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	categories := make([]dto.CategoryResponse, 0, len(names))
	for _, name := range names {
		categories = append(categories, dto.CategoryResponse{Name: name, Count: counts[name]})
	}

	return &dto.BankStatsResponse{
		Total:        len(all),
		Difficulties: difficulties,
		Categories:   categories,
	}, nil
}

// eligiblePool filters the bank down to the difficulties a mode draws
// from, skipping excluded IDs. A nil excluded map means no exclusions.
func eligiblePool(all []domain.Question, mode string, excluded map[int]bool) []domain.Question {
	var first, second domain.Difficulty
	if mode == "hard" {
		first, second = domain.DifficultyHard, domain.DifficultyMedium
	} else {
		first, second = domain.DifficultyEasy, domain.DifficultyMedium
	}

	pool := make([]domain.Question, 0, len(all))
	for _, d := range []domain.Difficulty{first, second} {
		for _, q := range all {
			if q.Difficulty != d || excluded[q.ID] {
				continue
			}
			pool = append(pool, q)
		}
	}
	return pool
}

// shuffledOptions mixes the correct answer in with the distractors.
func shuffledOptions(q domain.Question) []string {
	options := make([]string, 0, len(q.IncorrectAnswers)+1)
	options = append(options, q.IncorrectAnswers...)
	options = append(options, q.CorrectAnswer)
	rand.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return options
}

// lensFor prefers the lens stored on the question and falls back to
// the category default, which also covers records from before the
// field existed.
func lensFor(q domain.Question) string {
	if q.PerceptionLens != "" {
		return q.PerceptionLens
	}
	return domain.PerceptionLens(q.Category)
}
