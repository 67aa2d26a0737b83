package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"topline/internal/curator/config"
	"topline/internal/curator/dto"
	"topline/internal/curator/repository"
	"topline/internal/entity"
	"topline/pkg/logger"
	"topline/pkg/telegram"

	"gorm.io/datatypes"
)

// IngestionService runs the content ingestion pipeline over the configured
// sources: fetch, normalize, classify, generate insights, duplicate-guard
// insert. Sources and items are processed sequentially; per-item and
// per-source failures are counted and never abort the run.
type IngestionService interface {
	Ingest(ctx context.Context) (*dto.IngestionResult, error)
}

// NewIngestionService creates the ingestion orchestrator. scraperRepo,
// runRepo and notifier are optional.
func NewIngestionService(
	cfg *config.Config,
	log *logger.Logger,
	feedRepo repository.FeedRepository,
	scraperRepo repository.ScraperRepository,
	articleRepo repository.ArticleRepository,
	runRepo repository.IngestionRunRepository,
	guard *DuplicateGuard,
	insights InsightService,
	notifier telegram.Notifier,
) IngestionService {
	return &ingestionService{
		cfg:         cfg,
		logger:      log,
		feedRepo:    feedRepo,
		scraperRepo: scraperRepo,
		articleRepo: articleRepo,
		runRepo:     runRepo,
		guard:       guard,
		insights:    insights,
		notifier:    notifier,
	}
}

type ingestionService struct {
	cfg         *config.Config
	logger      *logger.Logger
	feedRepo    repository.FeedRepository
	scraperRepo repository.ScraperRepository
	articleRepo repository.ArticleRepository
	runRepo     repository.IngestionRunRepository
	guard       *DuplicateGuard
	insights    InsightService
	notifier    telegram.Notifier
}

// Ingest runs one ingestion invocation. The only fatal condition is storage
// being unreachable at run start; everything else degrades to skip counts.
func (s *ingestionService) Ingest(ctx context.Context) (*dto.IngestionResult, error) {
	start := time.Now()

	if err := s.articleRepo.Ping(ctx); err != nil {
		return nil, fmt.Errorf("storage unavailable: %w", err)
	}

	result := &dto.IngestionResult{Success: true}
	verticals := map[string]bool{}

	for _, source := range s.cfg.Sources {
		if !source.Active {
			continue
		}
		srcResult := s.ingestSource(ctx, source, verticals)
		result.ArticlesAdded += srcResult.Added
		result.ArticlesSkipped += srcResult.Skipped
		result.Sources = append(result.Sources, srcResult)
	}

	for v := range verticals {
		result.VerticalsProcessed = append(result.VerticalsProcessed, v)
	}
	sort.Strings(result.VerticalsProcessed)
	result.DurationSeconds = time.Since(start).Seconds()

	s.logger.Info("Ingestion run completed",
		logger.IntField("added", result.ArticlesAdded),
		logger.IntField("skipped", result.ArticlesSkipped),
		logger.DurationField("duration", time.Since(start)),
	)

	s.recordRun(ctx, result, time.Since(start))
	s.notify(result, time.Since(start))

	return result, nil
}

// ingestSource processes one source. Fetch failures make the whole source
// contribute zero items; the run continues with the remaining sources.
func (s *ingestionService) ingestSource(ctx context.Context, source config.Source, verticals map[string]bool) dto.SourceResult {
	srcResult := dto.SourceResult{Source: source.Name}

	feed, err := s.feedRepo.Fetch(ctx, source.FeedURL)
	if err != nil {
		s.logger.Error("Failed to fetch feed",
			logger.ErrorField(err),
			logger.StringField("source", source.Name),
		)
		srcResult.Error = err.Error()
		return srcResult
	}

	for _, item := range feed.Items {
		if srcResult.Added >= s.cfg.Ingest.MaxItemsPerSource {
			break
		}

		snippet := Snippet(item)
		if snippet == "" && s.cfg.Ingest.ScrapeContent && s.scraperRepo != nil && item.Link != "" {
			if text, scrapeErr := s.scraperRepo.ExtractText(ctx, item.Link); scrapeErr == nil {
				snippet = text
			}
		}

		candidate, ok := NormalizeItem(item, source, snippet, time.Now())
		if !ok {
			srcResult.Skipped++
			continue
		}

		candidate.Vertical = ClassifyVertical(
			candidate.Title+" "+candidate.Summary+" "+candidate.SourceName,
			source.Vertical,
		)

		insight := s.insights.Generate(ctx, candidate.Title, candidate.Summary, candidate.SourceName)
		candidate.WhyItMatters = insight.WhyItMatters
		candidate.TalkTrack = insight.TalkTrack
		candidate.UrgencyLevel = insight.UrgencyLevel
		candidate.KeyTopics = insight.KeyTopics

		guardResult, err := s.guard.CreateArticleSafely(ctx, candidate)
		if err != nil {
			s.logger.Error("Failed to insert article",
				logger.ErrorField(err),
				logger.StringField("source_url", candidate.SourceURL),
			)
			srcResult.Skipped++
			continue
		}
		if !guardResult.Created {
			s.logger.Debug("Skipped duplicate article",
				logger.StringField("reason", guardResult.Reason),
				logger.StringField("source_url", candidate.SourceURL),
			)
			srcResult.Skipped++
			continue
		}

		srcResult.Added++
		verticals[candidate.Vertical] = true
	}

	return srcResult
}

// recordRun persists the run summary best-effort.
func (s *ingestionService) recordRun(ctx context.Context, result *dto.IngestionResult, duration time.Duration) {
	if s.runRepo == nil {
		return
	}

	status := entity.RunStatusCompleted
	for _, src := range result.Sources {
		if src.Error != "" {
			status = entity.RunStatusPartial
			break
		}
	}

	details, err := json.Marshal(result.Sources)
	if err != nil {
		s.logger.Error("Failed to marshal run details", logger.ErrorField(err))
		return
	}

	run := &entity.IngestionRun{
		Status:          status,
		ArticlesAdded:   result.ArticlesAdded,
		ArticlesSkipped: result.ArticlesSkipped,
		Verticals:       result.VerticalsProcessed,
		DurationMs:      duration.Milliseconds(),
		Details:         datatypes.JSON(details),
	}
	if err := s.runRepo.Create(ctx, run); err != nil {
		s.logger.Error("Failed to record ingestion run", logger.ErrorField(err))
	}
}

// notify sends the run summary to the ops chat best-effort.
func (s *ingestionService) notify(result *dto.IngestionResult, duration time.Duration) {
	if s.notifier == nil {
		return
	}

	var sourceErrors []string
	for _, src := range result.Sources {
		if src.Error != "" {
			sourceErrors = append(sourceErrors, src.Source)
		}
	}

	msg := telegram.FormatIngestionSummary(result.ArticlesAdded, result.ArticlesSkipped, result.VerticalsProcessed, duration, sourceErrors)
	if err := s.notifier.SendMessage(msg); err != nil {
		s.logger.Warn("Failed to send run notification", logger.ErrorField(err))
	}
}
