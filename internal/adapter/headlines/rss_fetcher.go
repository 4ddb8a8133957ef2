package headlines

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"go.uber.org/zap"

	"brainburst/internal/config"
	"brainburst/internal/domain"
	"brainburst/internal/logger"
)

var htmlTagPattern = regexp.MustCompile(`<[^>]+>`)

// RSSFetcher pulls headlines and summaries from the configured news
// feeds. One broken feed never fails the run; it is logged and skipped.
type RSSFetcher struct {
	client       *http.Client
	sources      []config.FeedSource
	maxPerFeed   int
	summaryLimit int
}

// NewRSSFetcher creates a headline fetcher for the configured feeds.
func NewRSSFetcher(cfg config.FeedsConfig) domain.HeadlineFetcher {
	return &RSSFetcher{
		client:       &http.Client{Timeout: 15 * time.Second},
		sources:      cfg.Sources,
		maxPerFeed:   cfg.MaxPerFeed,
		summaryLimit: cfg.SummaryLimit,
	}
}

// Fetch pulls up to maxPerFeed entries from every configured feed,
// drops entries whose link was already seen this run, and returns the
// rest most-recent-first. It fails only when no feed yields anything.
func (f *RSSFetcher) Fetch(ctx context.Context) ([]domain.Headline, error) {
	log := logger.Get()
	parser := gofeed.NewParser()

	var items []domain.Headline
	seen := make(map[string]struct{})
	for _, src := range f.sources {
		log.Info("fetching RSS feed", zap.String("feed", src.Name))

		feed, err := f.fetchFeed(ctx, parser, src.URL)
		if err != nil {
			log.Warn("feed unavailable, skipping",
				zap.String("feed", src.Name),
				zap.Error(err))
			continue
		}

		got := 0
		for i, entry := range feed.Items {
			if i >= f.maxPerFeed {
				break
			}
			h, ok := f.toHeadline(src, entry)
			if !ok {
				continue
			}
			if h.Link != "" {
				if _, dup := seen[h.Link]; dup {
					continue
				}
				seen[h.Link] = struct{}{}
			}
			items = append(items, h)
			got++
		}
		log.Info("feed fetched", zap.String("feed", src.Name), zap.Int("items", got))
	}

	if len(items) == 0 {
		return nil, domain.NewFeedUnavailableError()
	}

	// Undated entries keep their feed position at the tail.
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].PublishedAt.After(items[j].PublishedAt)
	})

	log.Info("total news items fetched", zap.Int("count", len(items)))
	return items, nil
}

func (f *RSSFetcher) fetchFeed(ctx context.Context, parser *gofeed.Parser, url string) (*gofeed.Feed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return parser.Parse(resp.Body)
}

// toHeadline converts one feed entry. Entries without a title are
// dropped; an entry without a summary falls back to its title so the
// prompt never contains an empty line.
func (f *RSSFetcher) toHeadline(src config.FeedSource, item *gofeed.Item) (domain.Headline, bool) {
	title := strings.TrimSpace(item.Title)
	if title == "" {
		return domain.Headline{}, false
	}

	summary := item.Description
	if summary == "" {
		summary = item.Content
	}
	summary = htmlTagPattern.ReplaceAllString(summary, "")
	summary = strings.TrimSpace(html.UnescapeString(summary))
	if summary == "" {
		summary = title
	} else {
		summary = truncateRunes(summary, f.summaryLimit)
	}

	h := domain.Headline{
		Source:  src.Name,
		Title:   title,
		Summary: summary,
		Link:    strings.TrimSpace(item.Link),
	}
	if item.PublishedParsed != nil {
		h.PublishedAt = *item.PublishedParsed
	}
	return h, true
}

func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
