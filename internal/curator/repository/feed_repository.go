package repository

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"topline/pkg/logger"

	"github.com/mmcdole/gofeed"
)

// FeedRepository retrieves and parses RSS/Atom feeds.
type FeedRepository interface {
	Fetch(ctx context.Context, feedURL string) (*gofeed.Feed, error)
}

// NewFeedRepository creates a feed repository with the given fetch timeout.
func NewFeedRepository(log *logger.Logger, timeout time.Duration) FeedRepository {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: timeout}
	parser.UserAgent = "topline-curator/1.0"

	return &feedRepository{
		parser: parser,
		logger: log,
	}
}

type feedRepository struct {
	parser *gofeed.Parser
	logger *logger.Logger
}

// Fetch downloads and parses the feed at feedURL. A network or parse failure
// is returned as a single error; the caller decides whether to continue.
func (r *feedRepository) Fetch(ctx context.Context, feedURL string) (*gofeed.Feed, error) {
	feed, err := r.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed %s: %w", feedURL, err)
	}
	return feed, nil
}
