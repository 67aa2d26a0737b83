package repository

import (
	"context"
	"time"

	"topline/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MetricRepository defines the interface for interacting with metric data.
type MetricRepository interface {
	// CreateIgnoreConflict inserts the metric unless its (title, source) pair
	// already exists. Returns false when the insert was suppressed.
	CreateIgnoreConflict(ctx context.Context, metric *entity.Metric) (bool, error)
	// FindPublishedUnviewed returns published metrics published after the
	// lookback cutoff that have not been viewed since viewedCutoff, newest
	// first, paginated, along with the total count.
	FindPublishedUnviewed(ctx context.Context, vertical string, lookbackCutoff, viewedCutoff time.Time, offset, limit int) ([]entity.Metric, int64, error)
	MarkViewed(ctx context.Context, ids []uint, viewedAt time.Time) error
	FindPublished(ctx context.Context) ([]entity.Metric, error)
	Archive(ctx context.Context, id uint, viewedAt time.Time) error
	// FindNextEligible returns the rotation candidate: a non-published metric
	// created after lookbackCutoff whose last view is null or before
	// cooldownCutoff, least recently viewed first.
	FindNextEligible(ctx context.Context, cooldownCutoff, lookbackCutoff time.Time) (*entity.Metric, error)
	Publish(ctx context.Context, id uint, publishedAt time.Time) error
}

// NewMetricRepository creates a new instance of MetricRepository.
func NewMetricRepository(db *gorm.DB) MetricRepository {
	return &metricRepository{db: db}
}

type metricRepository struct {
	db *gorm.DB
}

func (r *metricRepository) CreateIgnoreConflict(ctx context.Context, metric *entity.Metric) (bool, error) {
	tx := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "title"}, {Name: "source"}},
		DoNothing: true,
	}).Create(metric)

	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *metricRepository) FindPublishedUnviewed(ctx context.Context, vertical string, lookbackCutoff, viewedCutoff time.Time, offset, limit int) ([]entity.Metric, int64, error) {
	var metrics []entity.Metric
	var total int64

	q := r.db.WithContext(ctx).Model(&entity.Metric{}).
		Where("status = ?", entity.StatusPublished).
		Where("published_at >= ?", lookbackCutoff).
		Where("last_viewed_at IS NULL OR last_viewed_at < ?", viewedCutoff)
	if vertical != "" {
		q = q.Where("vertical = ?", vertical)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("published_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&metrics).Error
	return metrics, total, err
}

func (r *metricRepository) MarkViewed(ctx context.Context, ids []uint, viewedAt time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&entity.Metric{}).
		Where("id IN ?", ids).
		Update("last_viewed_at", viewedAt).Error
}

func (r *metricRepository) FindPublished(ctx context.Context) ([]entity.Metric, error) {
	var metrics []entity.Metric
	err := r.db.WithContext(ctx).
		Where("status = ?", entity.StatusPublished).
		Find(&metrics).Error
	return metrics, err
}

func (r *metricRepository) Archive(ctx context.Context, id uint, viewedAt time.Time) error {
	return r.db.WithContext(ctx).Model(&entity.Metric{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":         entity.StatusArchived,
			"last_viewed_at": viewedAt,
		}).Error
}

func (r *metricRepository) FindNextEligible(ctx context.Context, cooldownCutoff, lookbackCutoff time.Time) (*entity.Metric, error) {
	var metric entity.Metric
	err := r.db.WithContext(ctx).
		Where("status <> ?", entity.StatusPublished).
		Where("created_at >= ?", lookbackCutoff).
		Where("last_viewed_at IS NULL OR last_viewed_at < ?", cooldownCutoff).
		Order("last_viewed_at ASC NULLS FIRST").
		First(&metric).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &metric, nil
}

func (r *metricRepository) Publish(ctx context.Context, id uint, publishedAt time.Time) error {
	return r.db.WithContext(ctx).Model(&entity.Metric{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       entity.StatusPublished,
			"published_at": publishedAt,
		}).Error
}
