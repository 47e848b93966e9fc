package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"project-hub-api/internal/domain"
	"project-hub-api/internal/dto"
	"project-hub-api/internal/events"
	"project-hub-api/internal/repository"
)

// ActivityService records and queries the append-only activity log
type ActivityService interface {
	Record(ctx context.Context, activity *domain.Activity) error
	ListByProject(ctx context.Context, projectID uuid.UUID, limit int) ([]dto.ActivityResponse, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]dto.ActivityResponse, error)
	ListRecent(ctx context.Context, limit int) ([]dto.ActivityResponse, error)
}

type activityServiceImpl struct {
	repo   repository.ActivityRepository
	bus    *events.Bus
	logger *zap.Logger
}

// NewActivityService creates an activity service
func NewActivityService(repo repository.ActivityRepository, bus *events.Bus, logger *zap.Logger) ActivityService {
	return &activityServiceImpl{repo: repo, bus: bus, logger: logger}
}

// Record appends one activity row and announces it on the bus.
// Recording failures are surfaced to the caller; callers that treat
// the log as best-effort log and continue.
func (s *activityServiceImpl) Record(ctx context.Context, activity *domain.Activity) error {
	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = time.Now().UTC()
	}
	if err := s.repo.Create(ctx, activity); err != nil {
		return err
	}
	if s.bus != nil {
		s.bus.Publish(events.ActivityChanged{
			ActivityID: activity.ID,
			ProjectID:  activity.ProjectID,
		})
	}
	return nil
}

func (s *activityServiceImpl) ListByProject(ctx context.Context, projectID uuid.UUID, limit int) ([]dto.ActivityResponse, error) {
	activities, err := s.repo.GetByProject(ctx, projectID, limit)
	if err != nil {
		return nil, err
	}
	return toActivityResponses(activities), nil
}

func (s *activityServiceImpl) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]dto.ActivityResponse, error) {
	activities, err := s.repo.GetByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	return toActivityResponses(activities), nil
}

func (s *activityServiceImpl) ListRecent(ctx context.Context, limit int) ([]dto.ActivityResponse, error) {
	activities, err := s.repo.GetRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	return toActivityResponses(activities), nil
}

func toActivityResponses(activities []domain.Activity) []dto.ActivityResponse {
	out := make([]dto.ActivityResponse, 0, len(activities))
	for i := range activities {
		out = append(out, dto.ToActivityResponse(&activities[i]))
	}
	return out
}
