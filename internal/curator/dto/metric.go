package dto

import (
	"time"

	"topline/internal/entity"
)

// CreateMetricRequest is the DTO for creating a new metric.
type CreateMetricRequest struct {
	Title        string `json:"title"`
	Value        string `json:"value"`
	Unit         string `json:"unit"`
	Source       string `json:"source"`
	SourceURL    string `json:"source_url"`
	Vertical     string `json:"vertical"`
	Priority     string `json:"priority"`
	WhyItMatters string `json:"why_it_matters"`
	TalkTrack    string `json:"talk_track"`
}

// MetricResponse is the DTO for API responses containing metric details.
type MetricResponse struct {
	ID           uint       `json:"id"`
	Title        string     `json:"title"`
	Value        string     `json:"value"`
	Unit         string     `json:"unit,omitempty"`
	Source       string     `json:"source"`
	SourceURL    string     `json:"source_url,omitempty"`
	Vertical     string     `json:"vertical"`
	Priority     string     `json:"priority"`
	Status       string     `json:"status"`
	WhyItMatters string     `json:"why_it_matters"`
	TalkTrack    string     `json:"talk_track"`
	PublishedAt  time.Time  `json:"published_at"`
	LastViewedAt *time.Time `json:"last_viewed_at,omitempty"`
}

// NewMetricResponse maps a metric entity to its response DTO.
func NewMetricResponse(m *entity.Metric) *MetricResponse {
	return &MetricResponse{
		ID:           m.ID,
		Title:        m.Title,
		Value:        m.Value,
		Unit:         m.Unit,
		Source:       m.Source,
		SourceURL:    m.SourceURL,
		Vertical:     m.Vertical,
		Priority:     m.Priority,
		Status:       m.Status,
		WhyItMatters: m.WhyItMatters,
		TalkTrack:    m.TalkTrack,
		PublishedAt:  m.PublishedAt,
		LastViewedAt: m.LastViewedAt,
	}
}

// MetricListResponse is a paginated page of metrics.
type MetricListResponse struct {
	Metrics []*MetricResponse `json:"metrics"`
	Page    int               `json:"page"`
	Limit   int               `json:"limit"`
	Total   int64             `json:"total"`
}

// RotateMetricsResponse is the outcome of one publish-next rotation.
type RotateMetricsResponse struct {
	Archived  int             `json:"archived"`
	Published *MetricResponse `json:"published"`
}
