package service

import (
	"context"
	"errors"
	"testing"

	"topline/internal/curator/dto"
	"topline/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateUsesGeneratorResult(t *testing.T) {
	ai := &fakeAIRepo{result: &dto.InsightResult{
		WhyItMatters: "CTV budgets are consolidating fast.",
		TalkTrack:    "Ask about their streaming mix.",
		UrgencyLevel: entity.PriorityHigh,
		KeyTopics:    []string{"ctv", "upfronts"},
	}}
	svc := NewInsightService(ai, newTestLogger(t))

	got := svc.Generate(context.Background(), "CTV upfronts wrap early", "summary", "Ad Age")
	require.NotNil(t, got)
	assert.Equal(t, "CTV budgets are consolidating fast.", got.WhyItMatters)
	assert.Equal(t, entity.PriorityHigh, got.UrgencyLevel)
	assert.Equal(t, 1, ai.calls)
}

func TestGenerateFallsBackOnError(t *testing.T) {
	ai := &fakeAIRepo{err: errors.New("429 resource exhausted")}
	svc := NewInsightService(ai, newTestLogger(t))

	got := svc.Generate(context.Background(), "CTV upfronts wrap early", "summary", "Ad Age")
	require.NotNil(t, got)
	assert.Equal(t, FallbackInsights("CTV upfronts wrap early", "Ad Age"), got)
}

func TestGenerateNilRepoFallsBack(t *testing.T) {
	svc := NewInsightService(nil, newTestLogger(t))

	got := svc.Generate(context.Background(), "CTV upfronts wrap early", "summary", "Ad Age")
	assert.Equal(t, FallbackInsights("CTV upfronts wrap early", "Ad Age"), got)
}

func TestFallbackInsightsDeterministic(t *testing.T) {
	a := FallbackInsights("CTV upfronts wrap early", "Ad Age")
	b := FallbackInsights("CTV upfronts wrap early", "Ad Age")
	assert.Equal(t, a, b)
	assert.Equal(t, entity.PriorityMedium, a.UrgencyLevel)
	assert.NotEmpty(t, a.WhyItMatters)
	assert.NotEmpty(t, a.TalkTrack)
	assert.NotEmpty(t, a.KeyTopics)
}

func TestSanitizeInsightsCoercesBadFields(t *testing.T) {
	got := sanitizeInsights(&dto.InsightResult{
		WhyItMatters: "",
		TalkTrack:    "",
		UrgencyLevel: "CRITICAL",
		KeyTopics:    nil,
	}, "CTV upfronts wrap early", "Ad Age")

	fallback := FallbackInsights("CTV upfronts wrap early", "Ad Age")
	assert.Equal(t, fallback.WhyItMatters, got.WhyItMatters)
	assert.Equal(t, fallback.TalkTrack, got.TalkTrack)
	assert.Equal(t, entity.PriorityMedium, got.UrgencyLevel)
	assert.Equal(t, fallback.KeyTopics, got.KeyTopics)
}

func TestSanitizeInsightsKeepsGoodFields(t *testing.T) {
	got := sanitizeInsights(&dto.InsightResult{
		WhyItMatters: "matters",
		TalkTrack:    "talk",
		UrgencyLevel: entity.PriorityLow,
		KeyTopics:    []string{"topic"},
	}, "title", "source")

	assert.Equal(t, "matters", got.WhyItMatters)
	assert.Equal(t, "talk", got.TalkTrack)
	assert.Equal(t, entity.PriorityLow, got.UrgencyLevel)
	assert.Equal(t, []string{"topic"}, got.KeyTopics)
}
