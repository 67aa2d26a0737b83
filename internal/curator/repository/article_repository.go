package repository

import (
	"context"
	"time"

	"topline/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ArticleRepository defines the interface for interacting with article data.
type ArticleRepository interface {
	// CreateIgnoreConflict inserts the article unless its source_url already
	// exists. Returns false when the uniqueness constraint suppressed the
	// insert.
	CreateIgnoreConflict(ctx context.Context, article *entity.Article) (bool, error)
	ExistsBySourceURL(ctx context.Context, sourceURL string) (bool, error)
	FindTitlesSince(ctx context.Context, since time.Time) ([]string, error)
	FindPublished(ctx context.Context, vertical string, limit int) ([]entity.Article, error)
	FindByID(ctx context.Context, id uint) (*entity.Article, error)
	FindAll(ctx context.Context) ([]entity.Article, error)
	UpdateVertical(ctx context.Context, id uint, vertical string) error
	IncrementCounter(ctx context.Context, id uint, column string) error
	ArchiveOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	DeleteArchivedOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	Ping(ctx context.Context) error
}

// NewArticleRepository creates a new instance of ArticleRepository.
func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

type articleRepository struct {
	db *gorm.DB
}

func (r *articleRepository) CreateIgnoreConflict(ctx context.Context, article *entity.Article) (bool, error) {
	tx := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "source_url"}},
		DoNothing: true,
	}).Create(article)

	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *articleRepository) ExistsBySourceURL(ctx context.Context, sourceURL string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Article{}).
		Where("source_url = ?", sourceURL).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *articleRepository) FindTitlesSince(ctx context.Context, since time.Time) ([]string, error) {
	var titles []string
	err := r.db.WithContext(ctx).Model(&entity.Article{}).
		Where("created_at >= ?", since).
		Pluck("title", &titles).Error
	return titles, err
}

// FindPublished returns published articles for a vertical (or all verticals
// when vertical is empty), ordered by priority then recency.
func (r *articleRepository) FindPublished(ctx context.Context, vertical string, limit int) ([]entity.Article, error) {
	var articles []entity.Article
	q := r.db.WithContext(ctx).
		Where("status = ?", entity.StatusPublished).
		Order("CASE priority WHEN 'HIGH' THEN 0 WHEN 'MEDIUM' THEN 1 ELSE 2 END").
		Order("published_at DESC").
		Limit(limit)
	if vertical != "" {
		q = q.Where("vertical = ?", vertical)
	}
	err := q.Find(&articles).Error
	return articles, err
}

func (r *articleRepository) FindByID(ctx context.Context, id uint) (*entity.Article, error) {
	var article entity.Article
	if err := r.db.WithContext(ctx).First(&article, id).Error; err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) FindAll(ctx context.Context) ([]entity.Article, error) {
	var articles []entity.Article
	err := r.db.WithContext(ctx).Find(&articles).Error
	return articles, err
}

func (r *articleRepository) UpdateVertical(ctx context.Context, id uint, vertical string) error {
	return r.db.WithContext(ctx).Model(&entity.Article{}).
		Where("id = ?", id).
		Update("vertical", vertical).Error
}

// IncrementCounter bumps one engagement column. The caller validates the
// column name against the known counters.
func (r *articleRepository) IncrementCounter(ctx context.Context, id uint, column string) error {
	return r.db.WithContext(ctx).Model(&entity.Article{}).
		Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + 1")).Error
}

func (r *articleRepository) ArchiveOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tx := r.db.WithContext(ctx).Model(&entity.Article{}).
		Where("status = ? AND published_at < ?", entity.StatusPublished, cutoff).
		Update("status", entity.StatusArchived)
	return tx.RowsAffected, tx.Error
}

func (r *articleRepository) DeleteArchivedOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tx := r.db.WithContext(ctx).
		Where("status = ? AND published_at < ?", entity.StatusArchived, cutoff).
		Delete(&entity.Article{})
	return tx.RowsAffected, tx.Error
}

// Ping verifies the storage connection is alive.
func (r *articleRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.WithContext(ctx).DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
