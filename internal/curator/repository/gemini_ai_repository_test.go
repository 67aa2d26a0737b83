package repository

import (
	"testing"

	"topline/internal/curator/dto"
	"topline/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func geminiResponse(text string) *dto.GeminiAPIResponse {
	return &dto.GeminiAPIResponse{
		Candidates: []dto.Candidate{
			{Content: dto.Content{Parts: []dto.Part{{Text: text}}}},
		},
	}
}

func TestParseInsightResponse(t *testing.T) {
	resp := geminiResponse(`{"why_it_matters":"Budgets are moving.","talk_track":"Ask about CTV.","urgency_level":"HIGH","key_topics":["ctv","budgets"]}`)

	result, err := parseInsightResponse(resp)
	require.NoError(t, err)
	assert.Equal(t, "Budgets are moving.", result.WhyItMatters)
	assert.Equal(t, "Ask about CTV.", result.TalkTrack)
	assert.Equal(t, entity.PriorityHigh, result.UrgencyLevel)
	assert.Equal(t, []string{"ctv", "budgets"}, result.KeyTopics)
}

func TestParseInsightResponseStripsCodeFence(t *testing.T) {
	resp := geminiResponse("```json\n{\"why_it_matters\":\"m\",\"talk_track\":\"t\",\"urgency_level\":\"LOW\",\"key_topics\":[]}\n```")

	result, err := parseInsightResponse(resp)
	require.NoError(t, err)
	assert.Equal(t, "m", result.WhyItMatters)
	assert.Equal(t, entity.PriorityLow, result.UrgencyLevel)
}

func TestParseInsightResponseEmptyCandidates(t *testing.T) {
	_, err := parseInsightResponse(&dto.GeminiAPIResponse{})
	assert.Error(t, err)
}

func TestParseInsightResponseMalformedJSON(t *testing.T) {
	_, err := parseInsightResponse(geminiResponse("not json at all"))
	assert.Error(t, err)
}

func TestBuildInsightPrompt(t *testing.T) {
	prompt := BuildInsightPrompt("CTV upfronts wrap early", "Buyers committed faster this year.", "Ad Age")
	assert.Contains(t, prompt, "CTV upfronts wrap early")
	assert.Contains(t, prompt, "Buyers committed faster this year.")
	assert.Contains(t, prompt, "Ad Age")
	assert.Contains(t, prompt, "why_it_matters")
	assert.Contains(t, prompt, "talk_track")
}
