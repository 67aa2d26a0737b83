package entity

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Ingestion run statuses.
const (
	RunStatusCompleted = "COMPLETED"
	RunStatusPartial   = "PARTIAL"
)

// IngestionRun records the outcome of one ingestion invocation for
// operability. The API response is built from the in-memory result; this row
// is written best-effort after the run.
type IngestionRun struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Status          string         `gorm:"type:varchar(20);not null" json:"status"`
	ArticlesAdded   int            `json:"articles_added"`
	ArticlesSkipped int            `json:"articles_skipped"`
	Verticals       pq.StringArray `gorm:"type:text[]" json:"verticals"`
	DurationMs      int64          `json:"duration_ms"`
	Details         datatypes.JSON `json:"details"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the IngestionRun model.
func (IngestionRun) TableName() string {
	return "ingestion_runs"
}
