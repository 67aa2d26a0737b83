package dto

import (
	"time"

	"topline/internal/entity"
)

// ArticleResponse is the DTO for API responses containing article details.
type ArticleResponse struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	Summary      string    `json:"summary"`
	SourceURL    string    `json:"source_url"`
	SourceName   string    `json:"source_name"`
	Vertical     string    `json:"vertical"`
	Category     string    `json:"category,omitempty"`
	Priority     string    `json:"priority"`
	Status       string    `json:"status"`
	WhyItMatters string    `json:"why_it_matters"`
	TalkTrack    string    `json:"talk_track"`
	UrgencyLevel string    `json:"urgency_level"`
	KeyTopics    []string  `json:"key_topics"`
	Views        int       `json:"views"`
	Clicks       int       `json:"clicks"`
	Shares       int       `json:"shares"`
	PublishedAt  time.Time `json:"published_at"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewArticleResponse maps an article entity to its response DTO.
func NewArticleResponse(a *entity.Article) *ArticleResponse {
	return &ArticleResponse{
		ID:           a.ID,
		Title:        a.Title,
		Summary:      a.Summary,
		SourceURL:    a.SourceURL,
		SourceName:   a.SourceName,
		Vertical:     a.Vertical,
		Category:     a.Category,
		Priority:     a.Priority,
		Status:       a.Status,
		WhyItMatters: a.WhyItMatters,
		TalkTrack:    a.TalkTrack,
		UrgencyLevel: a.UrgencyLevel,
		KeyTopics:    a.KeyTopics,
		Views:        a.Views,
		Clicks:       a.Clicks,
		Shares:       a.Shares,
		PublishedAt:  a.PublishedAt,
		CreatedAt:    a.CreatedAt,
	}
}

// EngagementRequest records one engagement event against an article.
type EngagementRequest struct {
	Type string `json:"type"` // "view", "click" or "share"
}
