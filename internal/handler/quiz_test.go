package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brainburst/internal/config"
	"brainburst/internal/domain"
	"brainburst/internal/dto"
	"brainburst/internal/handler"
	"brainburst/internal/logger"
	"brainburst/internal/middleware"
	"brainburst/internal/service"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(config.LoggerConfig{Env: "test", Level: "error"}); err != nil {
		log.Fatalf("Failed to initialize logger for handler tests: %v", err)
	}

	exitCode := m.Run()

	_ = logger.Sync()
	os.Exit(exitCode)
}

// --- Manual Mocks ---

type MockQuizService struct {
	GetRoundFunc      func(ctx context.Context, mode string, count int, exclude []int) (*dto.RoundResponse, error)
	CheckAnswerFunc   func(ctx context.Context, req *dto.CheckAnswerRequest) (*dto.CheckAnswerResponse, error)
	GetCategoriesFunc func(ctx context.Context) (*dto.CategoriesResponse, error)
	GetBankStatsFunc  func(ctx context.Context) (*dto.BankStatsResponse, error)
}

func (m *MockQuizService) GetRound(ctx context.Context, mode string, count int, exclude []int) (*dto.RoundResponse, error) {
	if m.GetRoundFunc != nil {
		return m.GetRoundFunc(ctx, mode, count, exclude)
	}
	panic("MockQuizService.GetRoundFunc not implemented")
}
func (m *MockQuizService) CheckAnswer(ctx context.Context, req *dto.CheckAnswerRequest) (*dto.CheckAnswerResponse, error) {
	if m.CheckAnswerFunc != nil {
		return m.CheckAnswerFunc(ctx, req)
	}
	panic("MockQuizService.CheckAnswerFunc not implemented")
}
func (m *MockQuizService) GetCategories(ctx context.Context) (*dto.CategoriesResponse, error) {
	if m.GetCategoriesFunc != nil {
		return m.GetCategoriesFunc(ctx)
	}
	panic("MockQuizService.GetCategoriesFunc not implemented")
}
func (m *MockQuizService) GetBankStats(ctx context.Context) (*dto.BankStatsResponse, error) {
	if m.GetBankStatsFunc != nil {
		return m.GetBankStatsFunc(ctx)
	}
	panic("MockQuizService.GetBankStatsFunc not implemented")
}

type MockTriviaService struct {
	GetQuestionsFunc func(ctx context.Context, amount int, category, difficulty string) (*dto.TriviaResponse, error)
}

func (m *MockTriviaService) GetQuestions(ctx context.Context, amount int, category, difficulty string) (*dto.TriviaResponse, error) {
	if m.GetQuestionsFunc != nil {
		return m.GetQuestionsFunc(ctx, amount, category, difficulty)
	}
	panic("MockTriviaService.GetQuestionsFunc not implemented")
}

func newTestApp(quizSvc service.QuizService, triviaSvc service.TriviaService) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(),
	})
	h := handler.NewQuizHandler(quizSvc, triviaSvc)

	api := app.Group("/api")
	api.Get("/categories", h.GetCategories)
	api.Get("/quiz/round", h.GetRound)
	api.Post("/quiz/check", h.CheckAnswer)
	api.Get("/bank/stats", h.GetBankStats)
	api.Get("/trivia", h.GetTrivia)
	return app
}

func TestQuizHandler_GetRound(t *testing.T) {
	var gotMode string
	var gotCount int
	var gotExclude []int

	quizSvc := &MockQuizService{
		GetRoundFunc: func(ctx context.Context, mode string, count int, exclude []int) (*dto.RoundResponse, error) {
			gotMode, gotCount, gotExclude = mode, count, exclude
			return &dto.RoundResponse{
				Mode: mode,
				Questions: []dto.RoundQuestion{
					{ID: 4, Question: "Which body passed resolution 2728?", Options: []string{"a", "b", "c", "d"}},
				},
			}, nil
		},
	}
	app := newTestApp(quizSvc, &MockTriviaService{})

	req := httptest.NewRequest("GET", "/api/quiz/round?mode=hard&count=5&exclude=1,2,3", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "hard", gotMode)
	assert.Equal(t, 5, gotCount)
	assert.Equal(t, []int{1, 2, 3}, gotExclude)

	var body dto.RoundResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "hard", body.Mode)
	require.Len(t, body.Questions, 1)
	assert.Equal(t, 4, body.Questions[0].ID)
}

func TestQuizHandler_GetRound_Defaults(t *testing.T) {
	var gotMode string
	var gotCount int
	var gotExclude []int

	quizSvc := &MockQuizService{
		GetRoundFunc: func(ctx context.Context, mode string, count int, exclude []int) (*dto.RoundResponse, error) {
			gotMode, gotCount, gotExclude = mode, count, exclude
			return &dto.RoundResponse{Mode: mode}, nil
		},
	}
	app := newTestApp(quizSvc, &MockTriviaService{})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/quiz/round", nil))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "normal", gotMode)
	assert.Equal(t, 10, gotCount)
	assert.Nil(t, gotExclude)
}

func TestQuizHandler_GetRound_BadExcludeParam(t *testing.T) {
	app := newTestApp(&MockQuizService{}, &MockTriviaService{})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/quiz/round?exclude=1,abc", nil))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var body middleware.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, string(domain.CodeInvalidRequest), body.Code)
}

func TestQuizHandler_GetRound_ServiceError(t *testing.T) {
	quizSvc := &MockQuizService{
		GetRoundFunc: func(ctx context.Context, mode string, count int, exclude []int) (*dto.RoundResponse, error) {
			return nil, domain.NewNotFoundError("the question bank is empty")
		},
	}
	app := newTestApp(quizSvc, &MockTriviaService{})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/quiz/round", nil))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var body middleware.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, string(domain.CodeNotFound), body.Code)
	assert.Equal(t, "the question bank is empty", body.Message)
}

func TestQuizHandler_CheckAnswer(t *testing.T) {
	var gotReq *dto.CheckAnswerRequest

	quizSvc := &MockQuizService{
		CheckAnswerFunc: func(ctx context.Context, req *dto.CheckAnswerRequest) (*dto.CheckAnswerResponse, error) {
			gotReq = req
			return &dto.CheckAnswerResponse{Correct: true, CorrectAnswer: "Paris"}, nil
		},
	}
	app := newTestApp(quizSvc, &MockTriviaService{})

	reqBody, _ := json.Marshal(dto.CheckAnswerRequest{QuestionID: 3, Answer: "Paris"})
	req := httptest.NewRequest("POST", "/api/quiz/check", bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NotNil(t, gotReq)
	assert.Equal(t, 3, gotReq.QuestionID)
	assert.Equal(t, "Paris", gotReq.Answer)

	var body dto.CheckAnswerResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Correct)
	assert.Equal(t, "Paris", body.CorrectAnswer)
}

func TestQuizHandler_CheckAnswer_InvalidBody(t *testing.T) {
	app := newTestApp(&MockQuizService{}, &MockTriviaService{})

	req := httptest.NewRequest("POST", "/api/quiz/check", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestQuizHandler_CheckAnswer_MissingQuestionID(t *testing.T) {
	app := newTestApp(&MockQuizService{}, &MockTriviaService{})

	reqBody, _ := json.Marshal(dto.CheckAnswerRequest{Answer: "Paris"})
	req := httptest.NewRequest("POST", "/api/quiz/check", bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var body middleware.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, string(domain.CodeInvalidRequest), body.Code)
}

func TestQuizHandler_GetCategories(t *testing.T) {
	quizSvc := &MockQuizService{
		GetCategoriesFunc: func(ctx context.Context) (*dto.CategoriesResponse, error) {
			return &dto.CategoriesResponse{Categories: []dto.CategoryResponse{
				{Name: "Middle East Diplomacy", Count: 12},
			}}, nil
		},
	}
	app := newTestApp(quizSvc, &MockTriviaService{})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/categories", nil))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body dto.CategoriesResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Categories, 1)
	assert.Equal(t, "Middle East Diplomacy", body.Categories[0].Name)
	assert.Equal(t, 12, body.Categories[0].Count)
}

func TestQuizHandler_GetBankStats(t *testing.T) {
	quizSvc := &MockQuizService{
		GetBankStatsFunc: func(ctx context.Context) (*dto.BankStatsResponse, error) {
			return &dto.BankStatsResponse{
				Total:        42,
				Difficulties: map[string]int{"easy": 14, "medium": 14, "hard": 14},
			}, nil
		},
	}
	app := newTestApp(quizSvc, &MockTriviaService{})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/bank/stats", nil))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body dto.BankStatsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 42, body.Total)
	assert.Equal(t, 14, body.Difficulties["hard"])
}

func TestQuizHandler_GetTrivia(t *testing.T) {
	var gotAmount int
	var gotCategory, gotDifficulty string

	triviaSvc := &MockTriviaService{
		GetQuestionsFunc: func(ctx context.Context, amount int, category, difficulty string) (*dto.TriviaResponse, error) {
			gotAmount, gotCategory, gotDifficulty = amount, category, difficulty
			return &dto.TriviaResponse{
				Questions: []dto.TriviaQuestion{{Question: "When did WWII end?", CorrectAnswer: "1945"}},
				FromAPI:   true,
			}, nil
		},
	}
	app := newTestApp(&MockQuizService{}, triviaSvc)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/trivia?amount=7&category=History&difficulty=easy", nil))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 7, gotAmount)
	assert.Equal(t, "History", gotCategory)
	assert.Equal(t, "easy", gotDifficulty)

	var body dto.TriviaResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.FromAPI)
	require.Len(t, body.Questions, 1)
}

func TestQuizHandler_GetTrivia_ServiceError(t *testing.T) {
	triviaSvc := &MockTriviaService{
		GetQuestionsFunc: func(ctx context.Context, amount int, category, difficulty string) (*dto.TriviaResponse, error) {
			return nil, domain.NewInternalError("failed to fetch trivia questions", nil)
		},
	}
	app := newTestApp(&MockQuizService{}, triviaSvc)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/trivia", nil))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
