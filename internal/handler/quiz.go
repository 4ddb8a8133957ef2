package handler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"brainburst/internal/domain"
	"brainburst/internal/dto"
	"brainburst/internal/service"
)

// QuizHandler handles quiz and trivia HTTP requests
type QuizHandler struct {
	quizService   service.QuizService
	triviaService service.TriviaService
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(quizService service.QuizService, triviaService service.TriviaService) *QuizHandler {
	return &QuizHandler{
		quizService:   quizService,
		triviaService: triviaService,
	}
}

// GetRound godoc
// @Summary Get a quiz round
// @Description Returns a shuffled round of questions from the bank
// @Tags quiz
// @Accept json
// @Produce json
// @Param mode query string false "Round mode: normal or hard" default(normal)
// @Param count query int false "Number of questions" default(10)
// @Param exclude query string false "Comma-separated question IDs already seen"
// @Success 200 {object} dto.RoundResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quiz/round [get]
func (h *QuizHandler) GetRound(c *fiber.Ctx) error {
	mode := c.Query("mode", "normal")
	count := c.QueryInt("count", 10)

	exclude, err := parseExcludeParam(c.Query("exclude"))
	if err != nil {
		return err
	}

	round, err := h.quizService.GetRound(c.Context(), mode, count, exclude)
	if err != nil {
		return err
	}

	return c.JSON(round)
}

// CheckAnswer godoc
// @Summary Check a quiz answer
// @Description Checks the submitted answer and reveals the correct one
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.CheckAnswerRequest true "Answer details"
// @Success 200 {object} dto.CheckAnswerResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quiz/check [post]
func (h *QuizHandler) CheckAnswer(c *fiber.Ctx) error {
	var req dto.CheckAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidRequestError("invalid request body")
	}
	if req.QuestionID <= 0 {
		return domain.NewInvalidRequestError("question_id is required")
	}

	result, err := h.quizService.CheckAnswer(c.Context(), &req)
	if err != nil {
		return err
	}

	return c.JSON(result)
}

// GetCategories godoc
// @Summary Get question categories
// @Description Returns all categories with question counts and framing notes
// @Tags categories
// @Produce json
// @Success 200 {object} dto.CategoriesResponse
// @Router /categories [get]
func (h *QuizHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := h.quizService.GetCategories(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(categories)
}

// GetBankStats godoc
// @Summary Get question bank statistics
// @Description Returns totals by difficulty and category
// @Tags bank
// @Produce json
// @Success 200 {object} dto.BankStatsResponse
// @Router /bank/stats [get]
func (h *QuizHandler) GetBankStats(c *fiber.Ctx) error {
	stats, err := h.quizService.GetBankStats(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(stats)
}

// GetTrivia godoc
// @Summary Get general trivia questions
// @Description Returns live trivia questions, or the built-in set when the upstream API is down
// @Tags trivia
// @Produce json
// @Param amount query int false "Number of questions" default(10)
// @Param category query string false "Trivia category name"
// @Param difficulty query string false "easy, medium, hard or any"
// @Success 200 {object} dto.TriviaResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /trivia [get]
func (h *QuizHandler) GetTrivia(c *fiber.Ctx) error {
	amount := c.QueryInt("amount", 10)
	category := c.Query("category")
	difficulty := c.Query("difficulty")

	resp, err := h.triviaService.GetQuestions(c.Context(), amount, category, difficulty)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// parseExcludeParam parses the exclude query parameter, a comma-separated
// list of question IDs.
func parseExcludeParam(raw string) ([]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, domain.NewInvalidRequestError(fmt.Sprintf("exclude contains a non-numeric ID: %s", part))
		}
		ids = append(ids, id)
	}
	return ids, nil
}
