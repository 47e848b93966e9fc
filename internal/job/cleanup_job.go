package job

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"project-hub-api/internal/repository"
)

// CleanupJob deletes read notifications past their retention window
type CleanupJob struct {
	repo    repository.NotificationRepository
	ttlDays int
	logger  *zap.Logger
	cron    *cron.Cron
}

// NewCleanupJob creates a cleanup job
func NewCleanupJob(repo repository.NotificationRepository, ttlDays int, logger *zap.Logger) *CleanupJob {
	if ttlDays <= 0 {
		ttlDays = 90
	}
	return &CleanupJob{
		repo:    repo,
		ttlDays: ttlDays,
		logger:  logger,
	}
}

// Start schedules the job with the given cron expression
func (j *CleanupJob) Start(schedule string) error {
	j.cron = cron.New()
	if _, err := j.cron.AddFunc(schedule, j.Run); err != nil {
		return err
	}
	j.cron.Start()
	j.logger.Info("notification cleanup scheduled",
		zap.String("schedule", schedule),
		zap.Int("ttl_days", j.ttlDays))
	return nil
}

// Stop halts the scheduler, waiting for a running job to finish
func (j *CleanupJob) Stop() {
	if j.cron != nil {
		<-j.cron.Stop().Done()
	}
}

// Run executes one cleanup pass
func (j *CleanupJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	cutoff := time.Now().UTC().AddDate(0, 0, -j.ttlDays)
	deleted, err := j.repo.CleanupOld(ctx, cutoff)
	if err != nil {
		j.logger.Error("notification cleanup failed", zap.Error(err))
		return
	}
	j.logger.Info("notification cleanup completed",
		zap.Int64("deleted", deleted),
		zap.Time("cutoff", cutoff))
}
