package trivia

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"brainburst/internal/cache"
	"brainburst/internal/domain"
)

// DefaultOpenTDBBaseURL is the public Open Trivia Database endpoint.
const DefaultOpenTDBBaseURL = "https://opentdb.com/api.php"

// categoryIDs maps display category names to opentdb category IDs.
// Unknown names (including "Any Category") query without a category.
var categoryIDs = map[string]int{
	"General Knowledge":          9,
	"Science & Nature":           17,
	"History":                    23,
	"Geography":                  22,
	"Entertainment: Film":        11,
	"Entertainment: Music":       12,
	"Entertainment: Video Games": 15,
	"Sports":                     21,
	"Art":                        25,
	"Mythology":                  20,
	"Computers":                  18,
	"Animals":                    27,
}

type openTDBResponse struct {
	ResponseCode int             `json:"response_code"`
	Results      []openTDBResult `json:"results"`
}

type openTDBResult struct {
	Category         string   `json:"category"`
	Type             string   `json:"type"`
	Difficulty       string   `json:"difficulty"`
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

// OpenTDBProvider implements domain.TriviaProvider against opentdb.com.
// Responses are cached so repeated rounds with the same parameters do
// not hammer the public API, and concurrent identical requests collapse
// into one upstream call.
type OpenTDBProvider struct {
	client  *http.Client
	baseURL string
	cache   domain.Cache
	ttl     time.Duration
	sfGroup singleflight.Group
	logger  *zap.Logger
}

// NewOpenTDBProvider creates an opentdb-backed trivia provider. cache
// may be nil, in which case every call goes upstream. baseURL is
// injectable for tests; pass DefaultOpenTDBBaseURL in production.
func NewOpenTDBProvider(baseURL string, c domain.Cache, ttl time.Duration, logger *zap.Logger) domain.TriviaProvider {
	if baseURL == "" {
		baseURL = DefaultOpenTDBBaseURL
	}
	return &OpenTDBProvider{
		client:  &http.Client{Timeout: 6 * time.Second},
		baseURL: baseURL,
		cache:   c,
		ttl:     ttl,
		logger:  logger,
	}
}

// Fetch retrieves amount multiple-choice questions. An empty or "any"
// category/difficulty leaves the parameter unset upstream.
func (p *OpenTDBProvider) Fetch(ctx context.Context, amount int, category, difficulty string) ([]domain.TriviaQuestion, error) {
	cacheKey := cache.GenerateCacheKey("trivia", "opentdb", strconv.Itoa(amount), keyPart(category), keyPart(difficulty))

	if p.cache != nil {
		cached, err := p.cache.Get(ctx, cacheKey)
		if err == nil {
			var questions []domain.TriviaQuestion
			if errDecode := json.Unmarshal([]byte(cached), &questions); errDecode == nil {
				p.logger.Debug("trivia cache hit", zap.String("key", cacheKey))
				return questions, nil
			}
			p.logger.Warn("failed to decode cached trivia, refetching", zap.String("key", cacheKey))
		} else if err != domain.ErrCacheMiss {
			p.logger.Warn("trivia cache read failed", zap.Error(err), zap.String("key", cacheKey))
		}
	}

	res, err, _ := p.sfGroup.Do(cacheKey, func() (interface{}, error) {
		questions, fetchErr := p.fetchUpstream(ctx, amount, category, difficulty)
		if fetchErr != nil {
			return nil, fetchErr
		}

		if p.cache != nil {
			if data, errEncode := json.Marshal(questions); errEncode == nil {
				if errSet := p.cache.Set(ctx, cacheKey, string(data), p.ttl); errSet != nil {
					p.logger.Warn("failed to cache trivia", zap.Error(errSet), zap.String("key", cacheKey))
				}
			}
		}
		return questions, nil
	})
	if err != nil {
		return nil, err
	}

	questions, ok := res.([]domain.TriviaQuestion)
	if !ok {
		return nil, fmt.Errorf("unexpected type from singleflight.Do for trivia: %T", res)
	}
	return questions, nil
}

func (p *OpenTDBProvider) fetchUpstream(ctx context.Context, amount int, category, difficulty string) ([]domain.TriviaQuestion, error) {
	params := url.Values{}
	params.Set("amount", strconv.Itoa(amount))
	params.Set("type", "multiple")
	if id, ok := categoryIDs[category]; ok {
		params.Set("category", strconv.Itoa(id))
	}
	if difficulty != "" && difficulty != "any" {
		params.Set("difficulty", difficulty)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("opentdb request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("opentdb returned status %d", resp.StatusCode)
	}

	var body openTDBResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode opentdb response: %w", err)
	}
	if body.ResponseCode != 0 {
		return nil, fmt.Errorf("opentdb response code %d", body.ResponseCode)
	}

	questions := make([]domain.TriviaQuestion, 0, len(body.Results))
	for _, r := range body.Results {
		incorrect := make([]string, 0, len(r.IncorrectAnswers))
		for _, a := range r.IncorrectAnswers {
			incorrect = append(incorrect, html.UnescapeString(a))
		}
		questions = append(questions, domain.TriviaQuestion{
			Category:         html.UnescapeString(r.Category),
			Difficulty:       domain.Difficulty(r.Difficulty),
			Question:         html.UnescapeString(r.Question),
			CorrectAnswer:    html.UnescapeString(r.CorrectAnswer),
			IncorrectAnswers: incorrect,
		})
	}
	return questions, nil
}

func keyPart(s string) string {
	if s == "" {
		return "any"
	}
	return s
}

var _ domain.TriviaProvider = (*OpenTDBProvider)(nil)
