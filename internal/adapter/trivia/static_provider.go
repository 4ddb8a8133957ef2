package trivia

import (
	"context"
	"math/rand"

	"brainburst/internal/domain"
)

// fallbackQuestions is the built-in set served when opentdb.com is
// unreachable, so the quiz keeps working offline.
var fallbackQuestions = []domain.TriviaQuestion{
	{Category: "Science", Difficulty: domain.DifficultyMedium, Question: "What planet is known as the Red Planet?", CorrectAnswer: "Mars", IncorrectAnswers: []string{"Venus", "Jupiter", "Saturn"}},
	{Category: "History", Difficulty: domain.DifficultyEasy, Question: "In which year did the Titanic sink?", CorrectAnswer: "1912", IncorrectAnswers: []string{"1905", "1918", "1923"}},
	{Category: "Geography", Difficulty: domain.DifficultyEasy, Question: "What is the largest ocean on Earth?", CorrectAnswer: "Pacific Ocean", IncorrectAnswers: []string{"Atlantic Ocean", "Indian Ocean", "Arctic Ocean"}},
	{Category: "Science", Difficulty: domain.DifficultyHard, Question: "What is the chemical symbol for Tungsten?", CorrectAnswer: "W", IncorrectAnswers: []string{"Tu", "Tg", "Wn"}},
	{Category: "Entertainment", Difficulty: domain.DifficultyMedium, Question: "Who directed the movie Inception?", CorrectAnswer: "Christopher Nolan", IncorrectAnswers: []string{"Steven Spielberg", "James Cameron", "Ridley Scott"}},
	{Category: "Science", Difficulty: domain.DifficultyEasy, Question: "How many bones are in the adult human body?", CorrectAnswer: "206", IncorrectAnswers: []string{"201", "209", "215"}},
	{Category: "History", Difficulty: domain.DifficultyMedium, Question: "Which empire was ruled by Genghis Khan?", CorrectAnswer: "Mongol Empire", IncorrectAnswers: []string{"Ottoman Empire", "Roman Empire", "Persian Empire"}},
	{Category: "Geography", Difficulty: domain.DifficultyEasy, Question: "What is the smallest country in the world?", CorrectAnswer: "Vatican City", IncorrectAnswers: []string{"Monaco", "San Marino", "Liechtenstein"}},
	{Category: "Science", Difficulty: domain.DifficultyMedium, Question: "What gas do plants absorb from the atmosphere?", CorrectAnswer: "Carbon Dioxide", IncorrectAnswers: []string{"Oxygen", "Nitrogen", "Hydrogen"}},
	{Category: "Entertainment", Difficulty: domain.DifficultyEasy, Question: "What band sang 'Bohemian Rhapsody'?", CorrectAnswer: "Queen", IncorrectAnswers: []string{"The Beatles", "Led Zeppelin", "Pink Floyd"}},
	{Category: "History", Difficulty: domain.DifficultyHard, Question: "The Rosetta Stone was discovered in which year?", CorrectAnswer: "1799", IncorrectAnswers: []string{"1815", "1762", "1801"}},
	{Category: "Geography", Difficulty: domain.DifficultyMedium, Question: "What is the capital of Australia?", CorrectAnswer: "Canberra", IncorrectAnswers: []string{"Sydney", "Melbourne", "Brisbane"}},
	{Category: "Science", Difficulty: domain.DifficultyHard, Question: "What is the half-life of Carbon-14 (approx.)?", CorrectAnswer: "5,730 years", IncorrectAnswers: []string{"3,200 years", "8,400 years", "12,000 years"}},
	{Category: "Entertainment", Difficulty: domain.DifficultyMedium, Question: "In The Matrix, what color pill does Neo take?", CorrectAnswer: "Red", IncorrectAnswers: []string{"Blue", "Green", "White"}},
	{Category: "History", Difficulty: domain.DifficultyEasy, Question: "Who was the first President of the United States?", CorrectAnswer: "George Washington", IncorrectAnswers: []string{"Thomas Jefferson", "Abraham Lincoln", "John Adams"}},
}

// StaticProvider implements domain.TriviaProvider from the built-in
// set. It filters by difficulty when one is requested, keeps the full
// pool when the filter would leave nothing, and shuffles on every call.
// Category filtering is deliberately loose: the built-in set is small,
// so a category match is best effort only.
type StaticProvider struct{}

// NewStaticProvider creates the fallback trivia provider.
func NewStaticProvider() domain.TriviaProvider {
	return &StaticProvider{}
}

// Fetch never fails; it always returns up to amount questions.
func (p *StaticProvider) Fetch(ctx context.Context, amount int, category, difficulty string) ([]domain.TriviaQuestion, error) {
	pool := make([]domain.TriviaQuestion, len(fallbackQuestions))
	copy(pool, fallbackQuestions)

	if difficulty != "" && difficulty != "any" {
		filtered := make([]domain.TriviaQuestion, 0, len(pool))
		for _, q := range pool {
			if string(q.Difficulty) == difficulty {
				filtered = append(filtered, q)
			}
		}
		if len(filtered) > 0 {
			pool = filtered
		}
	}

	rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	if amount > 0 && amount < len(pool) {
		pool = pool[:amount]
	}
	return pool, nil
}

var _ domain.TriviaProvider = (*StaticProvider)(nil)
