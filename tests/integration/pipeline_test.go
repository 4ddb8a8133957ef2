package integration

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"brainburst/internal/adapter/headlines"
	"brainburst/internal/config"
	"brainburst/internal/domain"
	"brainburst/internal/repository"
	"brainburst/internal/service"
	"brainburst/internal/validation"
)

const worldFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>World Desk</title>
    <item>
      <title>Security Council extends peacekeeping mandate</title>
      <description>The mandate was extended by twelve months after a unanimous vote.</description>
    </item>
    <item>
      <title>Trade ministers meet ahead of summit</title>
      <description>Ministers gathered to prepare the agenda.</description>
    </item>
  </channel>
</rss>`

const pipelineSeed = `[
  {
    "id": 1,
    "category": "Economic Diplomacy & Sanctions",
    "difficulty": "easy",
    "question": "Which body administers US sanctions programs?",
    "correct_answer": "OFAC",
    "incorrect_answers": ["USTR", "The Federal Reserve", "The GAO"],
    "source": "Treasury Department"
  }
]`

// stubGenerator returns a fixed candidate batch, standing in for the
// Anthropic API so pipeline runs stay offline.
type stubGenerator struct {
	candidates []*domain.Candidate
}

func (g *stubGenerator) Generate(ctx context.Context, headlines []domain.Headline, count int) ([]*domain.Candidate, error) {
	return g.candidates, nil
}

func newCandidate(text string) *domain.Candidate {
	return &domain.Candidate{
		Category:         "UN & Multilateral Diplomacy",
		Difficulty:       "medium",
		Question:         text,
		CorrectAnswer:    "The Security Council",
		IncorrectAnswers: []string{"The General Assembly", "The Secretariat", "ECOSOC"},
		Source:           "World Desk: mandate vote",
	}
}

type pipelineFixture struct {
	fetcher domain.HeadlineFetcher
	bank    domain.BankRepository
	staging domain.StagingRepository

	bankFile    string
	pendingFile string
}

func newPipelineFixture(t *testing.T) *pipelineFixture {
	t.Helper()

	feedServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, worldFeed)
	}))
	t.Cleanup(feedServer.Close)

	dir := t.TempDir()
	bankFile := filepath.Join(dir, "bank.json")
	pendingFile := filepath.Join(dir, "pending.json")
	require.NoError(t, os.WriteFile(bankFile, []byte(pipelineSeed), 0o644))

	fetcher := headlines.NewRSSFetcher(config.FeedsConfig{
		Sources:      []config.FeedSource{{Name: "World Desk", URL: feedServer.URL}},
		MaxPerFeed:   10,
		SummaryLimit: 500,
	})

	return &pipelineFixture{
		fetcher:     fetcher,
		bank:        repository.NewBankFileAdapter(bankFile),
		staging:     repository.NewStagingFileAdapter(pendingFile),
		bankFile:    bankFile,
		pendingFile: pendingFile,
	}
}

func (f *pipelineFixture) newService(generator domain.QuestionGenerator) service.RefreshService {
	return service.NewRefreshService(f.fetcher, generator, f.bank, f.staging, validation.NewValidator(), 0.85, zap.NewNop())
}

func TestRefreshPipeline_DirectRun(t *testing.T) {
	f := newPipelineFixture(t)
	generator := &stubGenerator{candidates: []*domain.Candidate{
		newCandidate("Which body extended the peacekeeping mandate?"),
		newCandidate("Which body extended the peacekeeping mandate?"),
	}}

	result, err := f.newService(generator).Run(context.Background(), service.RefreshOptions{Count: 5})

	require.NoError(t, err)
	assert.Equal(t, 2, result.HeadlineCount)
	assert.Equal(t, 2, result.GeneratedCount)
	assert.Equal(t, 1, result.DuplicateCount)
	require.Len(t, result.Questions, 1)
	assert.Equal(t, 2, result.Questions[0].ID)
	assert.Equal(t, 2, result.BankTotal)

	stored, err := repository.NewBankFileAdapter(f.bankFile).GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "Which body administers US sanctions programs?", stored[0].Text)
	assert.Equal(t, "Which body extended the peacekeeping mandate?", stored[1].Text)
}

func TestRefreshPipeline_DryRunLeavesFilesAlone(t *testing.T) {
	f := newPipelineFixture(t)
	generator := &stubGenerator{candidates: []*domain.Candidate{
		newCandidate("Which body extended the peacekeeping mandate?"),
	}}

	result, err := f.newService(generator).Run(context.Background(), service.RefreshOptions{Count: 5, DryRun: true})

	require.NoError(t, err)
	require.Len(t, result.Questions, 1)
	assert.Zero(t, result.Questions[0].ID)

	stored, err := repository.NewBankFileAdapter(f.bankFile).GetAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, stored, 1)
	_, err = os.Stat(f.pendingFile)
	assert.True(t, os.IsNotExist(err))
}

func TestRefreshPipeline_ReviewThenApprove(t *testing.T) {
	f := newPipelineFixture(t)
	generator := &stubGenerator{candidates: []*domain.Candidate{
		newCandidate("Which body extended the peacekeeping mandate?"),
	}}
	svc := f.newService(generator)

	reviewResult, err := svc.Run(context.Background(), service.RefreshOptions{Count: 5, Review: true})
	require.NoError(t, err)
	require.Len(t, reviewResult.Staged, 1)
	assert.Equal(t, 1, reviewResult.PendingTotal)

	// The bank is untouched until approval.
	stored, err := repository.NewBankFileAdapter(f.bankFile).GetAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, stored, 1)

	approveResult, err := svc.ApproveStaged(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, approveResult.Approved)
	assert.Equal(t, 2, approveResult.BankTotal)

	stored, err = repository.NewBankFileAdapter(f.bankFile).GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, 2, stored[1].ID)

	_, err = os.Stat(f.pendingFile)
	assert.True(t, os.IsNotExist(err), "pending file should be removed after approval")
}
