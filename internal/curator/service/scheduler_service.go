package service

import (
	"context"

	"topline/internal/curator/config"
	"topline/pkg/logger"

	"github.com/robfig/cron/v3"
)

// SchedulerService runs the ingestion, metric rotation and cleanup jobs on
// their configured cron schedules. Jobs with empty specs are not registered.
type SchedulerService struct {
	cfg        *config.Config
	logger     *logger.Logger
	cron       *cron.Cron
	ingestSvc  IngestionService
	metricSvc  MetricService
	articleSvc ArticleService
}

// NewSchedulerService creates the in-process scheduler.
func NewSchedulerService(cfg *config.Config, log *logger.Logger, ingestSvc IngestionService, metricSvc MetricService, articleSvc ArticleService) *SchedulerService {
	return &SchedulerService{
		cfg:        cfg,
		logger:     log,
		cron:       cron.New(),
		ingestSvc:  ingestSvc,
		metricSvc:  metricSvc,
		articleSvc: articleSvc,
	}
}

// Start registers the configured jobs and starts the cron loop. Returns an
// error only for an unparseable cron spec.
func (s *SchedulerService) Start(ctx context.Context) error {
	if spec := s.cfg.Scheduler.IngestCron; spec != "" {
		if _, err := s.cron.AddFunc(spec, func() {
			if _, err := s.ingestSvc.Ingest(ctx); err != nil {
				s.logger.Error("Scheduled ingestion failed", logger.ErrorField(err))
			}
		}); err != nil {
			return err
		}
	}

	if spec := s.cfg.Scheduler.RotateCron; spec != "" {
		if _, err := s.cron.AddFunc(spec, func() {
			if _, err := s.metricSvc.PublishNext(ctx); err != nil {
				s.logger.Error("Scheduled metric rotation failed", logger.ErrorField(err))
			}
		}); err != nil {
			return err
		}
	}

	if spec := s.cfg.Scheduler.CleanupCron; spec != "" {
		if _, err := s.cron.AddFunc(spec, func() {
			if _, _, err := s.articleSvc.CleanupExpired(ctx); err != nil {
				s.logger.Error("Scheduled cleanup failed", logger.ErrorField(err))
			}
		}); err != nil {
			return err
		}
	}

	if len(s.cron.Entries()) == 0 {
		s.logger.Info("Scheduler disabled, no cron specs configured")
		return nil
	}

	s.cron.Start()
	s.logger.Info("Scheduler started", logger.IntField("jobs", len(s.cron.Entries())))
	return nil
}

// Stop halts the cron loop, waiting for running jobs to finish.
func (s *SchedulerService) Stop() {
	<-s.cron.Stop().Done()
}
