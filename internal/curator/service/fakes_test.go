package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"topline/internal/curator/dto"
	"topline/internal/entity"
	"topline/pkg/logger"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("error", "console")
	require.NoError(t, err)
	return log
}

// fakeArticleRepo is an in-memory ArticleRepository enforcing the source_url
// uniqueness constraint the way the database does.
type fakeArticleRepo struct {
	articles []entity.Article
	nextID   uint
	pingErr  error
	failures map[string]error // method name -> error
}

func newFakeArticleRepo() *fakeArticleRepo {
	return &fakeArticleRepo{failures: map[string]error{}}
}

func (f *fakeArticleRepo) CreateIgnoreConflict(_ context.Context, article *entity.Article) (bool, error) {
	if err := f.failures["create"]; err != nil {
		return false, err
	}
	for _, existing := range f.articles {
		if existing.SourceURL == article.SourceURL {
			return false, nil
		}
	}
	f.nextID++
	article.ID = f.nextID
	article.CreatedAt = time.Now()
	f.articles = append(f.articles, *article)
	return true, nil
}

func (f *fakeArticleRepo) ExistsBySourceURL(_ context.Context, sourceURL string) (bool, error) {
	if err := f.failures["exists"]; err != nil {
		return false, err
	}
	for _, a := range f.articles {
		if a.SourceURL == sourceURL {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeArticleRepo) FindTitlesSince(_ context.Context, since time.Time) ([]string, error) {
	var titles []string
	for _, a := range f.articles {
		if !a.CreatedAt.Before(since) {
			titles = append(titles, a.Title)
		}
	}
	return titles, nil
}

func (f *fakeArticleRepo) FindPublished(_ context.Context, vertical string, limit int) ([]entity.Article, error) {
	var out []entity.Article
	for _, a := range f.articles {
		if a.Status != entity.StatusPublished {
			continue
		}
		if vertical != "" && a.Vertical != vertical {
			continue
		}
		out = append(out, a)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeArticleRepo) FindByID(_ context.Context, id uint) (*entity.Article, error) {
	for i := range f.articles {
		if f.articles[i].ID == id {
			return &f.articles[i], nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeArticleRepo) FindAll(_ context.Context) ([]entity.Article, error) {
	return append([]entity.Article(nil), f.articles...), nil
}

func (f *fakeArticleRepo) UpdateVertical(_ context.Context, id uint, vertical string) error {
	for i := range f.articles {
		if f.articles[i].ID == id {
			f.articles[i].Vertical = vertical
			return nil
		}
	}
	return errors.New("not found")
}

func (f *fakeArticleRepo) IncrementCounter(_ context.Context, id uint, column string) error {
	for i := range f.articles {
		if f.articles[i].ID != id {
			continue
		}
		switch column {
		case "views":
			f.articles[i].Views++
		case "clicks":
			f.articles[i].Clicks++
		case "shares":
			f.articles[i].Shares++
		}
		return nil
	}
	return errors.New("not found")
}

func (f *fakeArticleRepo) ArchiveOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	var n int64
	for i := range f.articles {
		if f.articles[i].Status == entity.StatusPublished && f.articles[i].PublishedAt.Before(cutoff) {
			f.articles[i].Status = entity.StatusArchived
			n++
		}
	}
	return n, nil
}

func (f *fakeArticleRepo) DeleteArchivedOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	var kept []entity.Article
	var n int64
	for _, a := range f.articles {
		if a.Status == entity.StatusArchived && a.PublishedAt.Before(cutoff) {
			n++
			continue
		}
		kept = append(kept, a)
	}
	f.articles = kept
	return n, nil
}

func (f *fakeArticleRepo) Ping(_ context.Context) error {
	return f.pingErr
}

// fakeFeedRepo serves canned feeds per URL.
type fakeFeedRepo struct {
	feeds map[string]*gofeed.Feed
	errs  map[string]error
}

func (f *fakeFeedRepo) Fetch(_ context.Context, feedURL string) (*gofeed.Feed, error) {
	if err := f.errs[feedURL]; err != nil {
		return nil, err
	}
	if feed, ok := f.feeds[feedURL]; ok {
		return feed, nil
	}
	return nil, errors.New("unknown feed")
}

// fakeAIRepo returns a canned insight or error.
type fakeAIRepo struct {
	result *dto.InsightResult
	err    error
	calls  int
}

func (f *fakeAIRepo) GenerateInsights(_ context.Context, title, _, _ string) (*dto.InsightResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		res := *f.result
		return &res, nil
	}
	return &dto.InsightResult{
		WhyItMatters: "Budgets are shifting after: " + title,
		TalkTrack:    "Have you seen " + title + "?",
		UrgencyLevel: entity.PriorityHigh,
		KeyTopics:    []string{"ad spend"},
	}, nil
}

// fakeMetricRepo is an in-memory MetricRepository enforcing (title, source)
// uniqueness.
type fakeMetricRepo struct {
	metrics []entity.Metric
	nextID  uint
}

func (f *fakeMetricRepo) CreateIgnoreConflict(_ context.Context, metric *entity.Metric) (bool, error) {
	for _, existing := range f.metrics {
		if existing.Title == metric.Title && existing.Source == metric.Source {
			return false, nil
		}
	}
	f.nextID++
	metric.ID = f.nextID
	metric.CreatedAt = time.Now()
	f.metrics = append(f.metrics, *metric)
	return true, nil
}

func (f *fakeMetricRepo) FindPublishedUnviewed(_ context.Context, vertical string, lookbackCutoff, viewedCutoff time.Time, offset, limit int) ([]entity.Metric, int64, error) {
	var matched []entity.Metric
	for _, m := range f.metrics {
		if m.Status != entity.StatusPublished {
			continue
		}
		if vertical != "" && m.Vertical != vertical {
			continue
		}
		if m.PublishedAt.Before(lookbackCutoff) {
			continue
		}
		if m.LastViewedAt != nil && !m.LastViewedAt.Before(viewedCutoff) {
			continue
		}
		matched = append(matched, m)
	}
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[offset:]
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, total, nil
}

func (f *fakeMetricRepo) MarkViewed(_ context.Context, ids []uint, viewedAt time.Time) error {
	for i := range f.metrics {
		for _, id := range ids {
			if f.metrics[i].ID == id {
				t := viewedAt
				f.metrics[i].LastViewedAt = &t
			}
		}
	}
	return nil
}

func (f *fakeMetricRepo) FindPublished(_ context.Context) ([]entity.Metric, error) {
	var out []entity.Metric
	for _, m := range f.metrics {
		if m.Status == entity.StatusPublished {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMetricRepo) Archive(_ context.Context, id uint, viewedAt time.Time) error {
	for i := range f.metrics {
		if f.metrics[i].ID == id {
			f.metrics[i].Status = entity.StatusArchived
			t := viewedAt
			f.metrics[i].LastViewedAt = &t
			return nil
		}
	}
	return errors.New("not found")
}

func (f *fakeMetricRepo) FindNextEligible(_ context.Context, cooldownCutoff, lookbackCutoff time.Time) (*entity.Metric, error) {
	var best *entity.Metric
	for i := range f.metrics {
		m := &f.metrics[i]
		if m.Status == entity.StatusPublished {
			continue
		}
		if m.CreatedAt.Before(lookbackCutoff) {
			continue
		}
		if m.LastViewedAt != nil && !m.LastViewedAt.Before(cooldownCutoff) {
			continue
		}
		if best == nil {
			best = m
			continue
		}
		// least recently viewed first, never-viewed before everything
		switch {
		case m.LastViewedAt == nil && best.LastViewedAt != nil:
			best = m
		case m.LastViewedAt != nil && best.LastViewedAt != nil && m.LastViewedAt.Before(*best.LastViewedAt):
			best = m
		}
	}
	if best == nil {
		return nil, nil
	}
	copied := *best
	return &copied, nil
}

func (f *fakeMetricRepo) Publish(_ context.Context, id uint, publishedAt time.Time) error {
	for i := range f.metrics {
		if f.metrics[i].ID == id {
			f.metrics[i].Status = entity.StatusPublished
			f.metrics[i].PublishedAt = publishedAt
			return nil
		}
	}
	return errors.New("not found")
}

// fakeRunRepo records persisted runs.
type fakeRunRepo struct {
	runs []entity.IngestionRun
}

func (f *fakeRunRepo) Create(_ context.Context, run *entity.IngestionRun) error {
	f.runs = append(f.runs, *run)
	return nil
}

// fakeNotifier records sent messages.
type fakeNotifier struct {
	messages []string
}

func (f *fakeNotifier) SendMessage(text string) error {
	f.messages = append(f.messages, text)
	return nil
}

func feedItem(title, link string) *gofeed.Item {
	return &gofeed.Item{
		Title:       title,
		Link:        link,
		Description: strings.Repeat(title+" ", 2),
	}
}
