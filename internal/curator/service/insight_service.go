package service

import (
	"context"
	"fmt"

	"topline/internal/curator/dto"
	"topline/internal/curator/repository"
	"topline/internal/entity"
	"topline/pkg/logger"
)

// InsightService produces sales insights for one article, falling back to
// deterministic template content whenever the generator is unavailable or
// returns an unusable payload. Ingestion never blocks on generation.
type InsightService interface {
	Generate(ctx context.Context, title, summary, sourceName string) *dto.InsightResult
}

// NewInsightService creates an insight service. aiRepo may be nil, in which
// case every call returns fallback content.
func NewInsightService(aiRepo repository.AIRepository, log *logger.Logger) InsightService {
	return &insightService{
		aiRepo: aiRepo,
		logger: log,
	}
}

type insightService struct {
	aiRepo repository.AIRepository
	logger *logger.Logger
}

func (s *insightService) Generate(ctx context.Context, title, summary, sourceName string) *dto.InsightResult {
	if s.aiRepo == nil {
		return FallbackInsights(title, sourceName)
	}

	result, err := s.aiRepo.GenerateInsights(ctx, title, summary, sourceName)
	if err != nil {
		s.logger.Warn("Insight generation failed, using fallback",
			logger.ErrorField(err),
			logger.StringField("title", title),
		)
		return FallbackInsights(title, sourceName)
	}

	return sanitizeInsights(result, title, sourceName)
}

// sanitizeInsights coerces a generator payload into a usable result,
// substituting fallback fields where the model returned garbage.
func sanitizeInsights(result *dto.InsightResult, title, sourceName string) *dto.InsightResult {
	fallback := FallbackInsights(title, sourceName)

	if result.WhyItMatters == "" {
		result.WhyItMatters = fallback.WhyItMatters
	}
	if result.TalkTrack == "" {
		result.TalkTrack = fallback.TalkTrack
	}
	switch result.UrgencyLevel {
	case entity.PriorityHigh, entity.PriorityMedium, entity.PriorityLow:
	default:
		result.UrgencyLevel = entity.PriorityMedium
	}
	if len(result.KeyTopics) == 0 {
		result.KeyTopics = fallback.KeyTopics
	}
	return result
}

// FallbackInsights builds deterministic template insights from the title and
// source name alone.
func FallbackInsights(title, sourceName string) *dto.InsightResult {
	return &dto.InsightResult{
		WhyItMatters: fmt.Sprintf("This update from %s is a timely signal of where advertisers in this market are heading.", sourceName),
		TalkTrack:    fmt.Sprintf("Ask your client if they've seen %q — it's a natural opener about their current priorities.", title),
		UrgencyLevel: entity.PriorityMedium,
		KeyTopics:    []string{"industry news"},
	}
}
