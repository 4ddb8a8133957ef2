package dto

// CategoryResponse represents one bank category in the API response
type CategoryResponse struct {
	Name           string `json:"name"`
	Count          int    `json:"count"`
	PerceptionLens string `json:"perception_lens,omitempty"`
}

// CategoriesResponse wraps the category list
type CategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// RoundQuestion represents one question inside a quiz round. Options
// contains the correct answer and the distractors shuffled together;
// the correct one is never marked.
type RoundQuestion struct {
	ID             int      `json:"id"`
	Category       string   `json:"category"`
	Difficulty     string   `json:"difficulty"`
	Question       string   `json:"question"`
	Options        []string `json:"options"`
	PerceptionLens string   `json:"perception_lens,omitempty"`
}

// RoundResponse represents a quiz round in the API response
type RoundResponse struct {
	Mode      string          `json:"mode"`
	Questions []RoundQuestion `json:"questions"`
	PoolReset bool            `json:"pool_reset,omitempty"`
}

// CheckAnswerRequest represents a submitted answer in the API request
type CheckAnswerRequest struct {
	QuestionID int    `json:"question_id"`
	Answer     string `json:"answer"`
}

// CheckAnswerResponse represents the verdict for a submitted answer
type CheckAnswerResponse struct {
	Correct        bool   `json:"correct"`
	CorrectAnswer  string `json:"correct_answer"`
	Source         string `json:"source,omitempty"`
	PerceptionLens string `json:"perception_lens,omitempty"`
}

// BankStatsResponse represents question bank statistics
type BankStatsResponse struct {
	Total        int                `json:"total"`
	Difficulties map[string]int     `json:"difficulties"`
	Categories   []CategoryResponse `json:"categories"`
}

// TriviaQuestion represents one general-knowledge question. The field
// names mirror the opentdb.com schema so existing clients can reuse
// their parsing.
type TriviaQuestion struct {
	Category         string   `json:"category"`
	Difficulty       string   `json:"difficulty"`
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

// TriviaResponse represents a batch of general trivia questions
type TriviaResponse struct {
	Questions []TriviaQuestion `json:"questions"`
	FromAPI   bool             `json:"from_api"`
}
