package quizgen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/schema"
	"go.uber.org/zap"

	"brainburst/internal/config"
	"brainburst/internal/domain"
)

const systemPromptHeader = `You are an expert trivia question generator specializing in diplomacy, geopolitics, and international relations.

You create challenging, educational multiple-choice trivia questions based on real news events. Your questions should:
- Be factually accurate and based on the provided news items
- Have exactly ONE correct answer and exactly THREE plausible but incorrect answers
- Cover a range of difficulties (easy, medium, hard)
- Be assigned to one of the existing categories when possible

Target difficulty distribution: ~30% easy, ~35% medium, ~35% hard

Available categories:
`

const systemPromptFooter = `
If a question doesn't fit any existing category, use the closest match.

IMPORTANT: Return ONLY valid JSON — no markdown fences, no commentary.`

const userPromptTemplate = `Based on these recent diplomatic/geopolitical news items, generate exactly %d trivia questions.

NEWS ITEMS:
%s

Return a JSON array of objects with this EXACT schema:
[
  {
    "category": "one of the listed categories",
    "difficulty": "easy" | "medium" | "hard",
    "question": "the trivia question text",
    "correct_answer": "the correct answer",
    "incorrect_answers": ["wrong1", "wrong2", "wrong3"],
    "source": "brief citation of the news event / source"
  }
]

Requirements:
- Exactly %d questions
- Exactly 3 incorrect_answers per question
- Each question must cite which news event it's based on in the source field
- Mix difficulties: ~30%% easy, ~35%% medium, ~35%% hard
- Questions should test knowledge of the EVENT, not just reading comprehension
- Make incorrect answers plausible — avoid obviously silly options

Return ONLY the JSON array, nothing else.`

// AnthropicGenerator implements domain.QuestionGenerator against the
// Anthropic messages API through langchaingo.
type AnthropicGenerator struct {
	llm          *anthropic.LLM
	model        string
	maxTokens    int
	temperature  float64
	maxHeadlines int
	logger       *zap.Logger
}

// NewAnthropicGenerator creates a question generator for the configured
// model. The API key is required here because every call needs it.
func NewAnthropicGenerator(cfg config.GeneratorConfig, apiKey string, logger *zap.Logger) (domain.QuestionGenerator, error) {
	if apiKey == "" {
		return nil, domain.NewMissingConfigError("ANTHROPIC_API_KEY")
	}
	if cfg.Model == "" {
		return nil, domain.NewMissingConfigError("generator.model")
	}

	llm, err := anthropic.New(anthropic.WithToken(apiKey), anthropic.WithModel(cfg.Model))
	if err != nil {
		return nil, domain.NewLLMServiceError(err)
	}

	logger.Info("initialized Anthropic question generator", zap.String("model", cfg.Model))
	return &AnthropicGenerator{
		llm:          llm,
		model:        cfg.Model,
		maxTokens:    cfg.MaxTokens,
		temperature:  cfg.Temperature,
		maxHeadlines: cfg.MaxHeadlines,
		logger:       logger,
	}, nil
}

// Generate sends the headlines to the model and parses the returned
// JSON array into candidates. Candidates are unvalidated here; the
// refresh service owns validation and deduplication.
func (g *AnthropicGenerator) Generate(ctx context.Context, headlines []domain.Headline, count int) ([]*domain.Candidate, error) {
	if g.maxHeadlines > 0 && len(headlines) > g.maxHeadlines {
		headlines = headlines[:g.maxHeadlines]
	}

	newsBlock := buildNewsBlock(headlines)
	if strings.TrimSpace(newsBlock) == "" {
		return nil, domain.NewFeedUnavailableError()
	}

	userPrompt := fmt.Sprintf(userPromptTemplate, count, newsBlock, count)

	g.logger.Info("requesting questions from model",
		zap.String("model", g.model),
		zap.Int("news_items", len(headlines)),
		zap.Int("count", count))

	opts := []llms.CallOption{llms.WithMaxTokens(g.maxTokens)}
	if g.temperature > 0 {
		opts = append(opts, llms.WithTemperature(g.temperature))
	}

	resp, err := g.llm.GenerateContent(ctx, []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, buildSystemPrompt()),
		llms.TextParts(schema.ChatMessageTypeHuman, userPrompt),
	}, opts...)
	if err != nil {
		return nil, domain.NewLLMServiceError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, domain.NewLLMServiceError(fmt.Errorf("model returned no content"))
	}

	candidates, err := parseCandidates(resp.Choices[0].Content)
	if err != nil {
		g.logger.Error("failed to parse model response", zap.Error(err))
		return nil, domain.NewLLMServiceError(err)
	}
	defaultSource(candidates, time.Now().UTC())

	g.logger.Info("model returned candidates", zap.Int("count", len(candidates)))
	return candidates, nil
}

// defaultSource fills in a dated provenance note for candidates the
// model returned without one.
func defaultSource(candidates []*domain.Candidate, now time.Time) {
	note := "Generated from current events - " + now.Format("2006-01-02")
	for _, c := range candidates {
		if strings.TrimSpace(c.Source) == "" {
			c.Source = note
		}
	}
}

func buildSystemPrompt() string {
	var b strings.Builder
	b.WriteString(systemPromptHeader)
	for _, c := range domain.Categories {
		b.WriteString("- ")
		b.WriteString(c)
		b.WriteString("\n")
	}
	b.WriteString(systemPromptFooter)
	return b.String()
}

// buildNewsBlock renders headlines as numbered prompt entries:
//
//	[1] title (source)
//	summary
func buildNewsBlock(headlines []domain.Headline) string {
	blocks := make([]string, 0, len(headlines))
	for i, h := range headlines {
		blocks = append(blocks, fmt.Sprintf("[%d] %s (%s)\n%s", i+1, h.Title, h.Source, h.Summary))
	}
	return strings.Join(blocks, "\n\n")
}

// parseCandidates extracts the JSON array from a model response,
// tolerating markdown fences and stray commentary around the array.
func parseCandidates(raw string) ([]*domain.Candidate, error) {
	raw = stripFences(strings.TrimSpace(raw))

	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("response contains no JSON array")
	}

	var candidates []*domain.Candidate
	if err := json.Unmarshal([]byte(raw[start:end+1]), &candidates); err != nil {
		return nil, fmt.Errorf("failed to parse model response: %w", err)
	}
	return candidates, nil
}

func stripFences(raw string) string {
	if !strings.HasPrefix(raw, "```") {
		return raw
	}
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "```")
	return strings.TrimSpace(raw)
}

var _ domain.QuestionGenerator = (*AnthropicGenerator)(nil)
