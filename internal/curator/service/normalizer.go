package service

import (
	"fmt"
	"strings"
	"time"

	"topline/internal/curator/config"
	"topline/internal/entity"
	"topline/pkg/utils"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
)

const (
	// MinTitleLength is the shortest title accepted into the pipeline.
	MinTitleLength = 10
	// MaxSummaryLength caps stored summaries.
	MaxSummaryLength = 500
)

// Snippet extracts the plain-text snippet of a feed item, preferring the
// description over the full content block. HTML markup is stripped.
func Snippet(item *gofeed.Item) string {
	raw := item.Description
	if strings.TrimSpace(stripHTML(raw)) == "" {
		raw = item.Content
	}
	return utils.CollapseWhitespace(stripHTML(raw))
}

func stripHTML(s string) string {
	if s == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return doc.Text()
}

// NormalizeItem derives a candidate article from a feed item. The snippet is
// the already-extracted summary text (possibly scraped from the page). It
// returns false when the item fails the minimum-field checks: missing link,
// or trimmed title shorter than MinTitleLength.
func NormalizeItem(item *gofeed.Item, source config.Source, snippet string, now time.Time) (*entity.Article, bool) {
	title := strings.TrimSpace(utils.CleanToValidUTF8(item.Title))
	link := strings.TrimSpace(item.Link)

	if link == "" || len([]rune(title)) < MinTitleLength {
		return nil, false
	}

	summary := utils.Truncate(strings.TrimSpace(utils.CleanToValidUTF8(snippet)), MaxSummaryLength)
	if summary == "" {
		summary = fmt.Sprintf("Latest news from %s: %s", source.Name, title)
	}

	publishedAt := now
	if item.PublishedParsed != nil {
		publishedAt = *item.PublishedParsed
	}

	return &entity.Article{
		Title:       title,
		Summary:     summary,
		SourceURL:   link,
		SourceName:  source.Name,
		Priority:    entity.PriorityMedium,
		Status:      entity.StatusPublished,
		PublishedAt: publishedAt,
	}, true
}
