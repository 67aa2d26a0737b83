package service

import (
	"context"
	"encoding/json"
	"fmt"

	"topline/internal/curator/config"
	"topline/internal/curator/dto"
	"topline/internal/curator/repository"
	"topline/pkg/common"
	"topline/pkg/logger"
	"topline/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// ArticleService exposes article reads, engagement tracking and the
// maintenance flows (reclassification, retention cleanup).
type ArticleService interface {
	List(ctx context.Context, vertical string, limit int) ([]*dto.ArticleResponse, error)
	RecordEngagement(ctx context.Context, id uint, engagementType string) error
	ReclassifyVerticals(ctx context.Context) (int, error)
	CleanupExpired(ctx context.Context) (archived, deleted int64, err error)
}

// NewArticleService creates an article service. redisClient may be nil to
// disable list caching.
func NewArticleService(cfg *config.Config, log *logger.Logger, articleRepo repository.ArticleRepository, redisClient *redis.Client) ArticleService {
	return &articleService{
		cfg:         cfg,
		logger:      log,
		articleRepo: articleRepo,
		redisClient: redisClient,
	}
}

type articleService struct {
	cfg         *config.Config
	logger      *logger.Logger
	articleRepo repository.ArticleRepository
	redisClient *redis.Client
}

// List returns published articles, priority desc then publish date desc,
// through a short-TTL Redis read-through cache.
func (s *articleService) List(ctx context.Context, vertical string, limit int) ([]*dto.ArticleResponse, error) {
	cacheKey := fmt.Sprintf("%s:%s:%d", common.CacheKeyArticleList, vertical, limit)

	if s.redisClient != nil {
		if cached, err := s.redisClient.Get(ctx, cacheKey).Result(); err == nil {
			var responses []*dto.ArticleResponse
			if err := json.Unmarshal([]byte(cached), &responses); err == nil {
				return responses, nil
			}
		}
	}

	articles, err := s.articleRepo.FindPublished(ctx, vertical, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.ArticleResponse, 0, len(articles))
	for i := range articles {
		responses = append(responses, dto.NewArticleResponse(&articles[i]))
	}

	if s.redisClient != nil {
		if payload, err := json.Marshal(responses); err == nil {
			if err := s.redisClient.Set(ctx, cacheKey, payload, common.ListCacheTTL).Err(); err != nil {
				s.logger.Warn("Failed to cache article list", logger.ErrorField(err))
			}
		}
	}

	return responses, nil
}

var engagementColumns = map[string]string{
	"view":  "views",
	"click": "clicks",
	"share": "shares",
}

// RecordEngagement increments one engagement counter on an article.
func (s *articleService) RecordEngagement(ctx context.Context, id uint, engagementType string) error {
	column, ok := engagementColumns[engagementType]
	if !ok {
		return fmt.Errorf("unknown engagement type: %s", engagementType)
	}
	return s.articleRepo.IncrementCounter(ctx, id, column)
}

// ReclassifyVerticals re-runs the classifier over every stored article and
// fixes rows whose vertical drifted off the enumeration or no longer matches
// the keyword table. Returns the number of updated rows. Safe to re-run:
// classification is deterministic.
func (s *articleService) ReclassifyVerticals(ctx context.Context) (int, error) {
	articles, err := s.articleRepo.FindAll(ctx)
	if err != nil {
		return 0, err
	}

	updated := 0
	for i := range articles {
		a := &articles[i]
		expected := ClassifyVertical(a.Title+" "+a.Summary+" "+a.SourceName, a.Vertical)
		if expected == a.Vertical {
			continue
		}
		if err := s.articleRepo.UpdateVertical(ctx, a.ID, expected); err != nil {
			s.logger.Error("Failed to update article vertical",
				logger.ErrorField(err),
				logger.Field("article_id", a.ID),
			)
			continue
		}
		updated++
	}

	s.logger.Info("Reclassification completed", logger.IntField("updated", updated))
	return updated, nil
}

// CleanupExpired archives published articles older than the retention
// window, then deletes archived articles older than twice the window.
func (s *articleService) CleanupExpired(ctx context.Context) (int64, int64, error) {
	now := utils.StartOfDay(timeNow())
	archiveCutoff := utils.DaysAgo(now, s.cfg.Ingest.RetentionDays)
	deleteCutoff := utils.DaysAgo(now, 2*s.cfg.Ingest.RetentionDays)

	archived, err := s.articleRepo.ArchiveOlderThan(ctx, archiveCutoff)
	if err != nil {
		return 0, 0, err
	}

	deleted, err := s.articleRepo.DeleteArchivedOlderThan(ctx, deleteCutoff)
	if err != nil {
		return archived, 0, err
	}

	s.logger.Info("Cleanup completed",
		logger.Field("archived", archived),
		logger.Field("deleted", deleted),
	)
	return archived, deleted, nil
}
