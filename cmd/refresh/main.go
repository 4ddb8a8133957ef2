package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"brainburst/internal/adapter/headlines"
	"brainburst/internal/adapter/quizgen"
	"brainburst/internal/config"
	"brainburst/internal/domain"
	"brainburst/internal/logger"
	"brainburst/internal/repository"
	"brainburst/internal/service"
	"brainburst/internal/validation"
)

func main() {
	if err := NewRefreshCommand().Execute(); err != nil {
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) && domainErr.Code == domain.CodeLLMService {
			fmt.Fprintln(os.Stderr, "Check ANTHROPIC_API_KEY and your network connection, then retry.")
		}
		os.Exit(1)
	}
}

// NewRefreshCommand builds the refresh CLI. One invocation is one
// pipeline run; scheduling is left to cron or a systemd timer.
func NewRefreshCommand() *cobra.Command {
	var (
		configPath string
		count      int
		dryRun     bool
		review     bool
		approve    bool
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Generate diplomacy quiz questions from current world news",
		Long: `Fetches headlines from the configured news feeds, asks the Anthropic API
for new quiz questions, validates and deduplicates them, and appends the
survivors to the question bank.`,
		Example: `  refresh --count 20              generate 20 new questions
  refresh --count 20 --review    stage them for review first
  refresh --approve              merge pending questions into the bank
  refresh --count 10 --dry-run   preview without writing`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// A missing .env is fine; the environment may already be set.
			_ = godotenv.Load()

			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if verbose {
				cfg.Logger.Level = "debug"
			}
			if err := logger.Initialize(cfg.Logger); err != nil {
				return err
			}
			defer logger.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			bank := repository.NewBankFileAdapter(cfg.Bank.File)
			staging := repository.NewStagingFileAdapter(cfg.Bank.PendingFile)
			validator := validation.NewValidator()

			if approve {
				svc := service.NewRefreshService(nil, nil, bank, staging, validator, cfg.Dedup.SimilarityThreshold, logger.Get())
				result, err := svc.ApproveStaged(ctx)
				if err != nil {
					return err
				}
				if result.Approved == 0 {
					fmt.Println("No pending questions to approve.")
					return nil
				}
				fmt.Printf("Approved %d questions. Total now: %d\n", result.Approved, result.BankTotal)
				return nil
			}

			if cfg.AnthropicAPIKey == "" {
				return domain.NewMissingConfigError("ANTHROPIC_API_KEY")
			}

			fetcher := headlines.NewRSSFetcher(cfg.Feeds)
			generator, err := quizgen.NewAnthropicGenerator(cfg.Generator, cfg.AnthropicAPIKey, logger.Get())
			if err != nil {
				return err
			}

			svc := service.NewRefreshService(fetcher, generator, bank, staging, validator, cfg.Dedup.SimilarityThreshold, logger.Get())

			opts := service.RefreshOptions{Count: count, DryRun: dryRun, Review: review}
			result, err := svc.Run(ctx, opts)
			if err != nil {
				return err
			}

			printRunReport(result, opts, cfg)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a config file (default: ./config.yaml)")
	cmd.Flags().IntVar(&count, "count", 10, "number of questions to generate")
	cmd.Flags().BoolVar(&review, "review", false, "stage questions for manual review instead of writing to the bank")
	cmd.Flags().BoolVar(&approve, "approve", false, "approve and merge all pending questions into the bank")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be generated without writing to disk")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	return cmd
}

func printRunReport(result *service.RefreshResult, opts service.RefreshOptions, cfg *config.Config) {
	fmt.Printf("Fetched %d news items from %d feeds\n", result.HeadlineCount, len(cfg.Feeds.Sources))
	fmt.Printf("Generated %d raw questions\n", result.GeneratedCount)
	if result.InvalidCount > 0 {
		fmt.Printf("%d questions failed validation\n", result.InvalidCount)
	}
	fmt.Printf("%d questions passed validation\n", result.ValidCount)
	if result.DuplicateCount > 0 {
		fmt.Printf("%d duplicates removed\n", result.DuplicateCount)
	}
	fmt.Printf("%d unique new questions\n", len(result.Questions))

	if len(result.Questions) == 0 {
		fmt.Println("\nNo new unique questions to add (all were duplicates or invalid).")
		return
	}

	switch {
	case opts.DryRun:
		fmt.Printf("\nDry run: would add %d questions\n", len(result.Questions))
		fmt.Println(strings.Repeat("-", 60))
		for i, q := range result.Questions {
			fmt.Printf("\n  [%d] (%s) %s\n", i+1, q.Difficulty, q.Category)
			fmt.Printf("      Q: %s\n", q.Text)
			fmt.Printf("      A: %s\n", q.CorrectAnswer)
			fmt.Printf("      Wrong: %s\n", strings.Join(q.IncorrectAnswers, ", "))
			fmt.Printf("      Source: %s\n", q.Source)
		}
		fmt.Printf("\nDifficulty mix: easy=%d, medium=%d, hard=%d\n",
			result.EasyCount(), result.MediumCount(), result.HardCount())
		fmt.Println("\nDry run complete. No files were modified.")
	case opts.Review:
		fmt.Printf("\nStaged %d questions for review in %s\n", len(result.Staged), cfg.Bank.PendingFile)
		fmt.Printf("Total pending: %d\n", result.PendingTotal)
		fmt.Println("Run with --approve to merge them into the bank.")
	default:
		fmt.Printf("\nAdded %d new questions to %s\n", len(result.Questions), cfg.Bank.File)
		fmt.Printf("Total questions: %d\n", result.BankTotal)
	}
}
