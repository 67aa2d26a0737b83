package service

import (
	"context"
	"fmt"
	"time"

	"topline/internal/curator/config"
	"topline/internal/curator/dto"
	"topline/internal/curator/repository"
	"topline/internal/entity"
	"topline/pkg/logger"
	"topline/pkg/utils"
)

// timeNow is stubbed in tests.
var timeNow = time.Now

// ErrMetricExists signals a (title, source) uniqueness conflict on create.
var ErrMetricExists = fmt.Errorf("metric already exists for this title and source")

// MetricService exposes metric creation, the rotating daily listing, and the
// publish/archive rotation policy.
type MetricService interface {
	Create(ctx context.Context, req *dto.CreateMetricRequest) (*dto.MetricResponse, error)
	List(ctx context.Context, vertical string, page, limit int) (*dto.MetricListResponse, error)
	PublishNext(ctx context.Context) (*dto.RotateMetricsResponse, error)
}

// NewMetricService creates a metric service.
func NewMetricService(cfg *config.Config, log *logger.Logger, metricRepo repository.MetricRepository) MetricService {
	return &metricService{
		cfg:        cfg,
		logger:     log,
		metricRepo: metricRepo,
	}
}

type metricService struct {
	cfg        *config.Config
	logger     *logger.Logger
	metricRepo repository.MetricRepository
}

// Create stores a new metric with server-stamped timestamps. The vertical is
// normalized to the enumeration; unknown priorities become MEDIUM.
func (s *metricService) Create(ctx context.Context, req *dto.CreateMetricRequest) (*dto.MetricResponse, error) {
	priority := req.Priority
	switch priority {
	case entity.PriorityHigh, entity.PriorityMedium, entity.PriorityLow:
	default:
		priority = entity.PriorityMedium
	}

	metric := &entity.Metric{
		Title:        req.Title,
		Value:        req.Value,
		Unit:         req.Unit,
		Source:       req.Source,
		SourceURL:    req.SourceURL,
		Vertical:     NormalizeVertical(req.Vertical),
		Priority:     priority,
		Status:       entity.StatusPublished,
		WhyItMatters: req.WhyItMatters,
		TalkTrack:    req.TalkTrack,
		PublishedAt:  timeNow(),
	}

	created, err := s.metricRepo.CreateIgnoreConflict(ctx, metric)
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, ErrMetricExists
	}

	return dto.NewMetricResponse(metric), nil
}

// List returns the daily page of published metrics: within the lookback
// window, not yet viewed today, newest first. Returned metrics are stamped
// as viewed so the same client does not see them again until tomorrow.
func (s *metricService) List(ctx context.Context, vertical string, page, limit int) (*dto.MetricListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	now := timeNow()
	lookbackCutoff := utils.DaysAgo(now, s.cfg.Metrics.LookbackDays)
	startOfDay := utils.StartOfDay(now)

	metrics, total, err := s.metricRepo.FindPublishedUnviewed(ctx, vertical, lookbackCutoff, startOfDay, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(metrics))
	responses := make([]*dto.MetricResponse, 0, len(metrics))
	for i := range metrics {
		ids = append(ids, metrics[i].ID)
		responses = append(responses, dto.NewMetricResponse(&metrics[i]))
	}

	if err := s.metricRepo.MarkViewed(ctx, ids, now); err != nil {
		s.logger.Warn("Failed to mark metrics viewed", logger.ErrorField(err))
	}

	return &dto.MetricListResponse{
		Metrics: responses,
		Page:    page,
		Limit:   limit,
		Total:   total,
	}, nil
}

// PublishNext applies one rotation step: archive everything currently
// published (stamping last_viewed_at), then publish the next eligible
// metric. A metric is eligible when it is not published, was created within
// the lookback window, and was last viewed more than the cooldown ago (or
// never). Returns a nil Published field when nothing is eligible.
func (s *metricService) PublishNext(ctx context.Context) (*dto.RotateMetricsResponse, error) {
	now := timeNow()

	published, err := s.metricRepo.FindPublished(ctx)
	if err != nil {
		return nil, err
	}

	archived := 0
	for i := range published {
		if err := s.metricRepo.Archive(ctx, published[i].ID, now); err != nil {
			s.logger.Error("Failed to archive metric",
				logger.ErrorField(err),
				logger.Field("metric_id", published[i].ID),
			)
			continue
		}
		archived++
	}

	cooldownCutoff := utils.DaysAgo(now, s.cfg.Metrics.CooldownDays)
	lookbackCutoff := utils.DaysAgo(now, s.cfg.Metrics.LookbackDays)

	next, err := s.metricRepo.FindNextEligible(ctx, cooldownCutoff, lookbackCutoff)
	if err != nil {
		return nil, err
	}

	resp := &dto.RotateMetricsResponse{Archived: archived}
	if next == nil {
		s.logger.Info("No eligible metric to publish", logger.IntField("archived", archived))
		return resp, nil
	}

	if err := s.metricRepo.Publish(ctx, next.ID, now); err != nil {
		return nil, err
	}
	next.Status = entity.StatusPublished
	next.PublishedAt = now
	resp.Published = dto.NewMetricResponse(next)

	s.logger.Info("Rotated metrics",
		logger.IntField("archived", archived),
		logger.Field("published_id", next.ID),
	)
	return resp, nil
}
