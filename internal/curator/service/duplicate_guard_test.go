package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"topline/internal/curator/dto"
	"topline/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGuard(t *testing.T, repo *fakeArticleRepo) *DuplicateGuard {
	t.Helper()
	return NewDuplicateGuard(repo, newTestLogger(t), 7)
}

func candidate(title, url string) *entity.Article {
	return &entity.Article{
		Title:       title,
		SourceURL:   url,
		Vertical:    entity.VerticalTechnologyMedia,
		Status:      entity.StatusPublished,
		PublishedAt: time.Now(),
	}
}

func TestCreateArticleSafelyInserts(t *testing.T) {
	repo := newFakeArticleRepo()
	guard := newGuard(t, repo)

	result, err := guard.CreateArticleSafely(context.Background(), candidate("Streaming budgets keep growing", "https://example.com/1"))
	require.NoError(t, err)
	assert.True(t, result.Created)
	assert.Empty(t, result.Reason)
	require.NotNil(t, result.Article)
	assert.NotZero(t, result.Article.ID)
	assert.Len(t, repo.articles, 1)
}

func TestCreateArticleSafelyDuplicateURL(t *testing.T) {
	repo := newFakeArticleRepo()
	guard := newGuard(t, repo)
	ctx := context.Background()

	_, err := guard.CreateArticleSafely(ctx, candidate("Streaming budgets keep growing", "https://example.com/1"))
	require.NoError(t, err)

	result, err := guard.CreateArticleSafely(ctx, candidate("A completely different headline", "https://example.com/1"))
	require.NoError(t, err)
	assert.False(t, result.Created)
	assert.Equal(t, dto.ReasonDuplicateURL, result.Reason)
	assert.Len(t, repo.articles, 1)
}

func TestCreateArticleSafelyDuplicateTitleNormalized(t *testing.T) {
	repo := newFakeArticleRepo()
	guard := newGuard(t, repo)
	ctx := context.Background()

	_, err := guard.CreateArticleSafely(ctx, candidate("Streaming Budgets Keep Growing!", "https://example.com/1"))
	require.NoError(t, err)

	// Same title modulo case and punctuation, different URL.
	result, err := guard.CreateArticleSafely(ctx, candidate("streaming budgets keep growing", "https://example.com/2"))
	require.NoError(t, err)
	assert.False(t, result.Created)
	assert.Equal(t, dto.ReasonDuplicateTitle, result.Reason)
	assert.Len(t, repo.articles, 1)
}

func TestCreateArticleSafelyDuplicateTitleContainment(t *testing.T) {
	repo := newFakeArticleRepo()
	guard := newGuard(t, repo)
	ctx := context.Background()

	_, err := guard.CreateArticleSafely(ctx, candidate("Streaming budgets keep growing", "https://example.com/1"))
	require.NoError(t, err)

	result, err := guard.CreateArticleSafely(ctx, candidate("Report: streaming budgets keep growing in 2026", "https://example.com/2"))
	require.NoError(t, err)
	assert.False(t, result.Created)
	assert.Equal(t, dto.ReasonDuplicateTitle, result.Reason)
}

func TestCreateArticleSafelyShortTitlesNeverContainMatch(t *testing.T) {
	repo := newFakeArticleRepo()
	guard := newGuard(t, repo)
	ctx := context.Background()

	_, err := guard.CreateArticleSafely(ctx, candidate("Ad spend up", "https://example.com/1"))
	require.NoError(t, err)

	// "ad spend up" is contained in the second title but is too short to
	// trigger the containment rule.
	result, err := guard.CreateArticleSafely(ctx, candidate("Q3 report shows ad spend up across all verticals", "https://example.com/2"))
	require.NoError(t, err)
	assert.True(t, result.Created)
}

func TestCreateArticleSafelyConstraintBackstop(t *testing.T) {
	repo := newFakeArticleRepo()
	_ = newGuard(t, repo)
	ctx := context.Background()

	// Simulate a concurrent run inserting the URL between the guard's check
	// and its insert: the row exists in the repo but the guard has never
	// seen it (fresh guard, fresh cache miss path is bypassed by inserting
	// directly).
	repo.articles = append(repo.articles, entity.Article{
		ID:        99,
		Title:     "Inserted by the overlapping run with a different headline",
		SourceURL: "https://example.com/raced",
		CreatedAt: time.Now().Add(-30 * 24 * time.Hour), // outside title window
	})

	// Make the existence check miss to force the insert path.
	existsRepo := &racedRepo{fakeArticleRepo: repo}
	racedGuard := NewDuplicateGuard(existsRepo, newTestLogger(t), 7)

	result, err := racedGuard.CreateArticleSafely(ctx, candidate("A fresh headline for the raced url", "https://example.com/raced"))
	require.NoError(t, err)
	assert.False(t, result.Created)
	assert.Equal(t, dto.ReasonDuplicateURL, result.Reason)
}

// racedRepo reports no existing URL so the guard reaches the insert, which
// the uniqueness constraint then suppresses.
type racedRepo struct {
	*fakeArticleRepo
}

func (r *racedRepo) ExistsBySourceURL(context.Context, string) (bool, error) {
	return false, nil
}

func TestCreateArticleSafelyPersistenceError(t *testing.T) {
	repo := newFakeArticleRepo()
	repo.failures["create"] = errors.New("connection reset")
	guard := newGuard(t, repo)

	_, err := guard.CreateArticleSafely(context.Background(), candidate("Streaming budgets keep growing", "https://example.com/1"))
	assert.Error(t, err)
}

func TestTitlesMatch(t *testing.T) {
	assert.True(t, titlesMatch("streaming budgets keep growing", "streaming budgets keep growing"))
	assert.True(t, titlesMatch("streaming budgets keep growing", "report streaming budgets keep growing in 2026"))
	assert.False(t, titlesMatch("ad spend up", "q3 ad spend up across verticals"))
	assert.False(t, titlesMatch("", ""))
	assert.False(t, titlesMatch("totally different", "unrelated headline entirely"))
}
