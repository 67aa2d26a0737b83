package repository

import (
	"context"

	"topline/internal/curator/dto"
)

// AIRepository generates sales insights for ingested content. The pipeline
// treats it as a best-effort capability; callers substitute fallback content
// when it errors.
type AIRepository interface {
	GenerateInsights(ctx context.Context, title, summary, sourceName string) (*dto.InsightResult, error)
}
