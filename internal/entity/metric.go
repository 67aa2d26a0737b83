package entity

import "time"

// Metric represents one quantitative market statistic surfaced alongside
// articles. Metrics cycle between PUBLISHED and ARCHIVED under the rotation
// policy; (title, source) pairs are unique.
type Metric struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Title        string     `gorm:"not null;uniqueIndex:idx_metrics_title_source" json:"title"`
	Value        string     `gorm:"not null" json:"value"`
	Unit         string     `gorm:"type:varchar(20)" json:"unit,omitempty"`
	Source       string     `gorm:"uniqueIndex:idx_metrics_title_source" json:"source"`
	SourceURL    string     `gorm:"column:source_url" json:"source_url"`
	Vertical     string     `gorm:"type:varchar(50);not null" json:"vertical"`
	Priority     string     `gorm:"type:varchar(10);default:MEDIUM" json:"priority"`
	Status       string     `gorm:"type:varchar(10);default:PUBLISHED" json:"status"`
	WhyItMatters string     `gorm:"type:text" json:"why_it_matters"`
	TalkTrack    string     `gorm:"type:text" json:"talk_track"`
	PublishedAt  time.Time  `json:"published_at"`
	LastViewedAt *time.Time `json:"last_viewed_at,omitempty"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the Metric model.
func (Metric) TableName() string {
	return "metrics"
}
