package entity

import (
	"time"

	"github.com/lib/pq"
)

// Priority levels for articles and metrics.
const (
	PriorityHigh   = "HIGH"
	PriorityMedium = "MEDIUM"
	PriorityLow    = "LOW"
)

// Publication statuses for articles and metrics.
const (
	StatusDraft     = "DRAFT"
	StatusPublished = "PUBLISHED"
	StatusArchived  = "ARCHIVED"
)

// Business verticals. Articles and metrics always carry one of these values;
// anything else is normalized at write time.
const (
	VerticalTechnologyMedia   = "Technology & Media"
	VerticalConsumerRetail    = "Consumer & Retail"
	VerticalHealthcare        = "Healthcare"
	VerticalFinancialServices = "Financial Services"
	VerticalInsurance         = "Insurance"
	VerticalAutomotive        = "Automotive"
	VerticalTravelHospitality = "Travel & Hospitality"
	VerticalEducation         = "Education"
	VerticalTelecom           = "Telecom"
	VerticalServices          = "Services"
	VerticalPoliticalAdvocacy = "Political Candidate & Advocacy"
	VerticalOther             = "Other"
)

// AllVerticals returns the closed vertical enumeration.
func AllVerticals() []string {
	return []string{
		VerticalTechnologyMedia,
		VerticalConsumerRetail,
		VerticalHealthcare,
		VerticalFinancialServices,
		VerticalInsurance,
		VerticalAutomotive,
		VerticalTravelHospitality,
		VerticalEducation,
		VerticalTelecom,
		VerticalServices,
		VerticalPoliticalAdvocacy,
		VerticalOther,
	}
}

// IsValidVertical reports whether v is a member of the vertical enumeration.
func IsValidVertical(v string) bool {
	for _, known := range AllVerticals() {
		if known == v {
			return true
		}
	}
	return false
}

// Article represents one ingested news item with its generated sales
// insights.
type Article struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Title        string         `gorm:"not null" json:"title"`
	Summary      string         `gorm:"type:text" json:"summary"`
	SourceURL    string         `gorm:"column:source_url;unique;not null" json:"source_url"`
	SourceName   string         `json:"source_name"`
	Vertical     string         `gorm:"type:varchar(50);not null" json:"vertical"`
	Category     string         `gorm:"type:varchar(50)" json:"category"`
	Priority     string         `gorm:"type:varchar(10);default:MEDIUM" json:"priority"`
	Status       string         `gorm:"type:varchar(10);default:PUBLISHED" json:"status"`
	WhyItMatters string         `gorm:"type:text" json:"why_it_matters"`
	TalkTrack    string         `gorm:"type:text" json:"talk_track"`
	UrgencyLevel string         `gorm:"type:varchar(10)" json:"urgency_level"`
	KeyTopics    pq.StringArray `gorm:"type:text[]" json:"key_topics"`
	Views        int            `gorm:"default:0" json:"views"`
	Clicks       int            `gorm:"default:0" json:"clicks"`
	Shares       int            `gorm:"default:0" json:"shares"`
	PublishedAt  time.Time      `json:"published_at"`
	ExpiresAt    *time.Time     `json:"expires_at,omitempty"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the Article model.
func (Article) TableName() string {
	return "articles"
}
