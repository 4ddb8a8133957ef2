package domain

import (
	"context"
	"time"
)

// Headline is a single normalized news item pulled from an RSS feed.
// Headlines are ephemeral: they live only for the duration of one
// pipeline run and are never persisted.
type Headline struct {
	Source      string
	Title       string
	Summary     string
	Link        string
	PublishedAt time.Time
}

// HeadlineFetcher defines the interface (port) for retrieving recent news
// items. Implementations skip individual feeds that fail and return an
// error only when no feed produced any content.
type HeadlineFetcher interface {
	Fetch(ctx context.Context) ([]Headline, error)
}
