package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"brainburst/internal/domain"
	"brainburst/internal/util"
	"brainburst/internal/validation"
)

// RefreshOptions controls a single pipeline run.
type RefreshOptions struct {
	Count  int
	DryRun bool
	Review bool
}

// RefreshResult summarizes what a pipeline run produced. Questions
// holds the unique survivors: with IDs assigned in direct mode, without
// IDs in dry-run and review mode. A run that filtered everything out is
// still a successful run; Questions is empty and the counters say why.
type RefreshResult struct {
	HeadlineCount    int
	GeneratedCount   int
	ValidCount       int
	InvalidCount     int
	DuplicateCount   int
	RejectionReasons map[string]int
	Questions        []domain.Question
	Staged           []domain.StagedQuestion
	BankTotal        int
	PendingTotal     int
}

// EasyCount returns how many of the surviving questions are easy.
func (r *RefreshResult) EasyCount() int { return r.countDifficulty(domain.DifficultyEasy) }

// MediumCount returns how many of the surviving questions are medium.
func (r *RefreshResult) MediumCount() int { return r.countDifficulty(domain.DifficultyMedium) }

// HardCount returns how many of the surviving questions are hard.
func (r *RefreshResult) HardCount() int { return r.countDifficulty(domain.DifficultyHard) }

func (r *RefreshResult) countDifficulty(d domain.Difficulty) int {
	n := 0
	for _, q := range r.Questions {
		if q.Difficulty == d {
			n++
		}
	}
	return n
}

// ApproveResult summarizes an approval run.
type ApproveResult struct {
	Approved  int
	BankTotal int
}

// RefreshService drives the news-to-question pipeline: fetch headlines,
// generate candidates, validate, deduplicate, then write directly,
// stage for review, or report without writing. It also merges staged
// questions into the bank on approval.
type RefreshService interface {
	Run(ctx context.Context, opts RefreshOptions) (*RefreshResult, error)
	ApproveStaged(ctx context.Context) (*ApproveResult, error)
}

type refreshService struct {
	fetcher   domain.HeadlineFetcher
	generator domain.QuestionGenerator
	bank      domain.BankRepository
	staging   domain.StagingRepository
	validator *validation.Validator
	threshold float64
	logger    *zap.Logger
}

// NewRefreshService creates a new refresh service. fetcher and
// generator may be nil when only ApproveStaged will be called.
func NewRefreshService(
	fetcher domain.HeadlineFetcher,
	generator domain.QuestionGenerator,
	bank domain.BankRepository,
	staging domain.StagingRepository,
	validator *validation.Validator,
	threshold float64,
	logger *zap.Logger,
) RefreshService {
	return &refreshService{
		fetcher:   fetcher,
		generator: generator,
		bank:      bank,
		staging:   staging,
		validator: validator,
		threshold: threshold,
		logger:    logger,
	}
}

// Run implements RefreshService. Any error means nothing was written;
// the bank and pending file are only touched after every candidate has
// been validated and deduplicated. A run where everything was filtered
// out is not an error, only a run with nothing to filter is.
func (s *refreshService) Run(ctx context.Context, opts RefreshOptions) (*RefreshResult, error) {
	result := &RefreshResult{RejectionReasons: make(map[string]int)}

	headlines, err := s.fetcher.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	result.HeadlineCount = len(headlines)

	candidates, err := s.generator.Generate(ctx, headlines, opts.Count)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, domain.NewNothingToWriteError("the model returned no questions")
	}
	result.GeneratedCount = len(candidates)

	valid := s.validateCandidates(candidates, result)

	existing, err := s.bank.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	result.BankTotal = len(existing)

	unique := s.deduplicate(valid, existing, result)
	result.Questions = unique

	s.logger.Info("pipeline filtering complete",
		zap.Int("requested", opts.Count),
		zap.Int("headlines", result.HeadlineCount),
		zap.Int("generated", result.GeneratedCount),
		zap.Int("valid", result.ValidCount),
		zap.Int("invalid", result.InvalidCount),
		zap.Int("duplicates", result.DuplicateCount),
		zap.Int("unique", len(unique)),
		zap.Any("rejection_reasons", result.RejectionReasons),
	)

	if len(unique) == 0 {
		s.logger.Info("no new unique questions to add")
		return result, nil
	}

	if opts.DryRun {
		s.logger.Info("dry run complete, nothing written", zap.Int("would_add", len(unique)))
		return result, nil
	}

	if opts.Review {
		staged, err := s.stage(ctx, unique)
		if err != nil {
			return nil, err
		}
		result.Staged = staged

		pending, err := s.staging.List(ctx)
		if err != nil {
			return nil, err
		}
		result.PendingTotal = len(pending)
		return result, nil
	}

	stored, err := s.bank.Append(ctx, unique)
	if err != nil {
		return nil, err
	}
	result.Questions = stored
	result.BankTotal = len(existing) + len(stored)
	s.logger.Info("questions appended to bank",
		zap.Int("added", len(stored)),
		zap.Int("total", result.BankTotal))
	return result, nil
}

// ApproveStaged implements RefreshService. Staged entries are
// revalidated before the merge because the pending file is edited by
// hand during review; a broken entry aborts the whole approval rather
// than half-writing the bank.
func (s *refreshService) ApproveStaged(ctx context.Context) (*ApproveResult, error) {
	entries, err := s.staging.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		s.logger.Info("no pending questions to approve")
		return &ApproveResult{}, nil
	}

	questions := make([]domain.Question, 0, len(entries))
	for _, e := range entries {
		q := e.Question
		q.ID = 0
		if err := q.Validate(); err != nil {
			return nil, domain.NewInvalidCandidateError(
				fmt.Sprintf("staged entry %s failed validation: %v", e.StageID, err))
		}
		questions = append(questions, q)
	}

	stored, err := s.bank.Append(ctx, questions)
	if err != nil {
		return nil, err
	}
	if err := s.staging.Clear(ctx); err != nil {
		return nil, err
	}

	all, err := s.bank.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	s.logger.Info("approved and merged pending questions",
		zap.Int("approved", len(stored)),
		zap.Int("total", len(all)))
	return &ApproveResult{Approved: len(stored), BankTotal: len(all)}, nil
}

// validateCandidates filters out candidates that fail schema checks. A
// category outside the standard list is kept with a warning, matching
// how new categories make it into the bank in the first place.
func (s *refreshService) validateCandidates(candidates []*domain.Candidate, result *RefreshResult) []domain.Question {
	valid := make([]domain.Question, 0, len(candidates))
	for i, c := range candidates {
		reasons := s.validator.ValidateCandidate(c)
		if len(reasons) > 0 {
			result.InvalidCount++
			for _, r := range reasons {
				result.RejectionReasons[r]++
			}
			s.logger.Warn("candidate rejected",
				zap.Int("index", i+1),
				zap.String("reasons", strings.Join(reasons, "; ")))
			continue
		}
		if !domain.IsKnownCategory(c.Category) {
			s.logger.Warn("category not in standard list, keeping it",
				zap.Int("index", i+1),
				zap.String("category", c.Category))
		}

		difficulty, _ := domain.ParseDifficulty(c.Difficulty)
		q := domain.NewQuestion(c.Category, difficulty, c.Question, c.CorrectAnswer, c.IncorrectAnswers, c.Source)
		q.PerceptionLens = domain.PerceptionLens(c.Category)
		valid = append(valid, *q)
	}
	result.ValidCount = len(valid)
	s.logger.Info("validation finished",
		zap.Int("valid", len(valid)),
		zap.Int("invalid", result.InvalidCount))
	return valid
}

// deduplicate drops questions too similar to the bank or to an earlier
// question in the same batch. Comparison is case-insensitive and the
// first match wins.
func (s *refreshService) deduplicate(candidates, existing []domain.Question, result *RefreshResult) []domain.Question {
	existingTexts := make([]string, 0, len(existing))
	for _, q := range existing {
		existingTexts = append(existingTexts, strings.ToLower(q.Text))
	}

	unique := make([]domain.Question, 0, len(candidates))
	uniqueTexts := make([]string, 0, len(candidates))

	for _, q := range candidates {
		text := strings.ToLower(q.Text)

		if sim, dupe := matchesAny(text, existingTexts, s.threshold); dupe {
			result.DuplicateCount++
			s.logger.Info("duplicate of existing question",
				zap.Float64("similarity", sim),
				zap.String("question", truncate(q.Text, 80)))
			continue
		}
		if sim, dupe := matchesAny(text, uniqueTexts, s.threshold); dupe {
			result.DuplicateCount++
			s.logger.Info("duplicate within batch",
				zap.Float64("similarity", sim),
				zap.String("question", truncate(q.Text, 80)))
			continue
		}

		unique = append(unique, q)
		uniqueTexts = append(uniqueTexts, text)
	}

	s.logger.Info("deduplication finished",
		zap.Int("unique", len(unique)),
		zap.Int("duplicates", result.DuplicateCount))
	return unique
}

func (s *refreshService) stage(ctx context.Context, questions []domain.Question) ([]domain.StagedQuestion, error) {
	batchID := uuid.NewString()
	entries := make([]domain.StagedQuestion, 0, len(questions))
	for _, q := range questions {
		entries = append(entries, domain.NewStagedQuestion(q, util.NewULID(), batchID))
	}

	if err := s.staging.Add(ctx, entries); err != nil {
		return nil, err
	}
	s.logger.Info("questions staged for review",
		zap.Int("count", len(entries)),
		zap.String("batch_id", batchID))
	return entries, nil
}

func matchesAny(text string, against []string, threshold float64) (float64, bool) {
	for _, other := range against {
		if sim := util.SequenceRatio(text, other); sim > threshold {
			return sim, true
		}
	}
	return 0, false
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
