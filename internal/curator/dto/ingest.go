package dto

import "topline/internal/entity"

// Duplicate guard skip reasons.
const (
	ReasonDuplicateURL   = "duplicate_url"
	ReasonDuplicateTitle = "duplicate_title"
)

// CreateArticleResult is the outcome of a guarded insert. Created is false
// when the candidate matched an existing article; Reason says why.
type CreateArticleResult struct {
	Created bool            `json:"created"`
	Reason  string          `json:"reason,omitempty"`
	Article *entity.Article `json:"article,omitempty"`
}

// SourceResult is the per-source breakdown of one ingestion run.
type SourceResult struct {
	Source  string `json:"source"`
	Added   int    `json:"added"`
	Skipped int    `json:"skipped"`
	Error   string `json:"error,omitempty"`
}

// IngestionResult is the aggregate outcome of one ingestion run.
type IngestionResult struct {
	Success            bool           `json:"success"`
	ArticlesAdded      int            `json:"articlesAdded"`
	ArticlesSkipped    int            `json:"articlesSkipped"`
	VerticalsProcessed []string       `json:"verticalsProcessed"`
	DurationSeconds    float64        `json:"durationSeconds"`
	Sources            []SourceResult `json:"sources"`
}
