package repository

import (
	"context"

	"topline/internal/entity"

	"gorm.io/gorm"
)

// IngestionRunRepository persists per-run summaries for operability.
type IngestionRunRepository interface {
	Create(ctx context.Context, run *entity.IngestionRun) error
}

// NewIngestionRunRepository creates a new instance of IngestionRunRepository.
func NewIngestionRunRepository(db *gorm.DB) IngestionRunRepository {
	return &ingestionRunRepository{db: db}
}

type ingestionRunRepository struct {
	db *gorm.DB
}

func (r *ingestionRunRepository) Create(ctx context.Context, run *entity.IngestionRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}
