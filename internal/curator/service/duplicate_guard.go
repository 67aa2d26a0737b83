package service

import (
	"context"
	"strings"
	"time"

	"topline/internal/curator/dto"
	"topline/internal/curator/repository"
	"topline/internal/entity"
	"topline/pkg/logger"
	"topline/pkg/utils"

	"github.com/patrickmn/go-cache"
)

const recentTitlesKey = "recent_titles"

// minContainmentLength guards the containment rule against trivially short
// titles matching everything.
const minContainmentLength = 20

// DuplicateGuard decides whether a candidate article already exists and
// performs the safe insert. Equivalence, in priority order: exact source URL
// match, then normalized-title similarity within the recent window. The
// source_url uniqueness constraint backstops races between overlapping runs.
type DuplicateGuard struct {
	articleRepo repository.ArticleRepository
	logger      *logger.Logger
	titleCache  *cache.Cache
	titleWindow time.Duration
}

// NewDuplicateGuard creates a duplicate guard with the given recent-title
// window.
func NewDuplicateGuard(articleRepo repository.ArticleRepository, log *logger.Logger, titleWindowDays int) *DuplicateGuard {
	return &DuplicateGuard{
		articleRepo: articleRepo,
		logger:      log,
		titleCache:  cache.New(5*time.Minute, 10*time.Minute),
		titleWindow: time.Duration(titleWindowDays) * 24 * time.Hour,
	}
}

// CreateArticleSafely inserts the candidate unless it duplicates existing
// content. A non-nil error means storage failed for a reason other than
// duplication; duplicate outcomes are reported in the result, not as errors.
func (g *DuplicateGuard) CreateArticleSafely(ctx context.Context, candidate *entity.Article) (dto.CreateArticleResult, error) {
	exists, err := g.articleRepo.ExistsBySourceURL(ctx, candidate.SourceURL)
	if err != nil {
		return dto.CreateArticleResult{}, err
	}
	if exists {
		return dto.CreateArticleResult{Reason: dto.ReasonDuplicateURL}, nil
	}

	titles, err := g.recentTitles(ctx)
	if err != nil {
		return dto.CreateArticleResult{}, err
	}
	normalized := utils.NormalizeTitle(candidate.Title)
	for _, existing := range titles {
		if titlesMatch(normalized, existing) {
			return dto.CreateArticleResult{Reason: dto.ReasonDuplicateTitle}, nil
		}
	}

	created, err := g.articleRepo.CreateIgnoreConflict(ctx, candidate)
	if err != nil {
		return dto.CreateArticleResult{}, err
	}
	if !created {
		// Another run inserted the same URL between check and insert; the
		// uniqueness constraint suppressed ours.
		g.logger.Warn("Insert suppressed by uniqueness constraint", logger.StringField("source_url", candidate.SourceURL))
		return dto.CreateArticleResult{Reason: dto.ReasonDuplicateURL}, nil
	}

	g.rememberTitle(normalized)
	return dto.CreateArticleResult{Created: true, Article: candidate}, nil
}

// recentTitles returns the normalized titles of articles created within the
// window, loading them from storage once per cache lifetime.
func (g *DuplicateGuard) recentTitles(ctx context.Context) ([]string, error) {
	if v, ok := g.titleCache.Get(recentTitlesKey); ok {
		return v.([]string), nil
	}

	titles, err := g.articleRepo.FindTitlesSince(ctx, time.Now().Add(-g.titleWindow))
	if err != nil {
		return nil, err
	}

	normalized := make([]string, 0, len(titles))
	for _, t := range titles {
		if n := utils.NormalizeTitle(t); n != "" {
			normalized = append(normalized, n)
		}
	}
	g.titleCache.Set(recentTitlesKey, normalized, cache.DefaultExpiration)
	return normalized, nil
}

func (g *DuplicateGuard) rememberTitle(normalized string) {
	if v, ok := g.titleCache.Get(recentTitlesKey); ok {
		g.titleCache.Set(recentTitlesKey, append(v.([]string), normalized), cache.DefaultExpiration)
	}
}

// titlesMatch applies the pinned similarity rule to two normalized titles:
// equality, or containment when the shorter title is long enough to be
// meaningful.
func titlesMatch(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}
	shorter, longer := a, b
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	return len(shorter) >= minContainmentLength && strings.Contains(longer, shorter)
}
