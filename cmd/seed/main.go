package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"brainburst/internal/config"
	"brainburst/internal/domain"
	"brainburst/internal/logger"
	"brainburst/internal/repository"
)

// starterQuestions is a small hand-checked set that gives a fresh
// checkout something to serve before the first refresh run fills the
// bank from the news.
var starterQuestions = []domain.Question{
	{
		Category:         "UN & Multilateral Diplomacy",
		Difficulty:       domain.DifficultyEasy,
		Text:             "How many permanent members sit on the UN Security Council?",
		CorrectAnswer:    "Five",
		IncorrectAnswers: []string{"Three", "Seven", "Ten"},
		Source:           "UN Charter, Chapter V",
	},
	{
		Category:         "EU & NATO Affairs",
		Difficulty:       domain.DifficultyEasy,
		Text:             "Which article of the North Atlantic Treaty contains the collective defence clause?",
		CorrectAnswer:    "Article 5",
		IncorrectAnswers: []string{"Article 1", "Article 4", "Article 10"},
		Source:           "North Atlantic Treaty, 1949",
	},
	{
		Category:         "Historical Diplomatic Milestones",
		Difficulty:       domain.DifficultyMedium,
		Text:             "Which 1648 settlement is widely cited as the origin of modern state sovereignty?",
		CorrectAnswer:    "The Peace of Westphalia",
		IncorrectAnswers: []string{"The Congress of Vienna", "The Treaty of Versailles", "The Treaty of Tordesillas"},
		Source:           "Standard diplomatic history",
	},
	{
		Category:         "Economic Diplomacy & Sanctions",
		Difficulty:       domain.DifficultyMedium,
		Text:             "Which US Treasury office administers and enforces economic sanctions programs?",
		CorrectAnswer:    "OFAC",
		IncorrectAnswers: []string{"USTR", "FinCEN", "The OCC"},
		Source:           "US Treasury Department",
	},
	{
		Category:         "International Law & Treaties",
		Difficulty:       domain.DifficultyMedium,
		Text:             "Which court settles legal disputes between states under the UN Charter?",
		CorrectAnswer:    "The International Court of Justice",
		IncorrectAnswers: []string{"The International Criminal Court", "The European Court of Justice", "The Permanent Court of Arbitration"},
		Source:           "UN Charter, Chapter XIV",
	},
	{
		Category:         "US Foreign Policy",
		Difficulty:       domain.DifficultyEasy,
		Text:             "Which body must approve US treaties by a two-thirds vote?",
		CorrectAnswer:    "The Senate",
		IncorrectAnswers: []string{"The House of Representatives", "The Supreme Court", "The State Department"},
		Source:           "US Constitution, Article II",
	},
	{
		Category:         "Asia-Pacific Geopolitics",
		Difficulty:       domain.DifficultyMedium,
		Text:             "The Quad security dialogue comprises the US, Japan, India, and which other country?",
		CorrectAnswer:    "Australia",
		IncorrectAnswers: []string{"South Korea", "The Philippines", "Vietnam"},
		Source:           "Quad joint statements",
	},
	{
		Category:         "Middle East Diplomacy",
		Difficulty:       domain.DifficultyMedium,
		Text:             "Which country brokered the 2020 normalization accords between Israel and the UAE?",
		CorrectAnswer:    "The United States",
		IncorrectAnswers: []string{"Egypt", "Qatar", "France"},
		Source:           "Abraham Accords coverage",
	},
	{
		Category:         "Diplomatic Language & Spin",
		Difficulty:       domain.DifficultyHard,
		Text:             "Declaring a diplomat persona non grata obliges the sending state to do what?",
		CorrectAnswer:    "Recall the diplomat or terminate their functions",
		IncorrectAnswers: []string{"Pay reparations", "Close its embassy", "Issue a formal apology"},
		Source:           "Vienna Convention on Diplomatic Relations, Article 9",
	},
	{
		Category:         "Intelligence & Espionage in Diplomacy",
		Difficulty:       domain.DifficultyMedium,
		Text:             "What status shields embassy-based intelligence officers from prosecution if exposed?",
		CorrectAnswer:    "Diplomatic immunity",
		IncorrectAnswers: []string{"Consular notification", "Extraterritoriality", "Safe conduct"},
		Source:           "Vienna Convention on Diplomatic Relations",
	},
	{
		Category:         "Africa & Global South Diplomacy",
		Difficulty:       domain.DifficultyHard,
		Text:             "Which bloc expanded in 2024 to include Egypt, Ethiopia, Iran, and the UAE?",
		CorrectAnswer:    "BRICS",
		IncorrectAnswers: []string{"The G20", "OPEC+", "The African Union"},
		Source:           "BRICS summit communiques",
	},
	{
		Category:         "Bilateral Tensions & Alliances",
		Difficulty:       domain.DifficultyEasy,
		Text:             "The demilitarized zone drawn by the 1953 armistice separates which two countries?",
		CorrectAnswer:    "North Korea and South Korea",
		IncorrectAnswers: []string{"China and India", "Israel and Lebanon", "Greece and Turkey"},
		Source:           "Korean Armistice Agreement",
	},
}

func main() {
	ctx := context.Background()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig("")
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	bank := repository.NewBankFileAdapter(cfg.Bank.File)

	existing, err := bank.GetAll(ctx)
	if err != nil {
		log.Fatal("Failed to read question bank", zap.Error(err))
	}
	if len(existing) > 0 {
		log.Info("Question bank already has questions, nothing to seed",
			zap.Int("total", len(existing)),
			zap.String("file", cfg.Bank.File))
		return
	}

	stored, err := bank.Append(ctx, starterQuestions)
	if err != nil {
		log.Fatal("Failed to seed question bank", zap.Error(err))
	}

	log.Info("Seeded question bank",
		zap.Int("added", len(stored)),
		zap.String("file", cfg.Bank.File))
	fmt.Printf("Seeded %d starter questions into %s\n", len(stored), cfg.Bank.File)
}
