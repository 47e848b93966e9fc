package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"project-hub-api/internal/panel"
	"project-hub-api/internal/repository"
)

// PanelEntityResolver reports whether the entity a detail panel points
// at still exists. A panel opened for a deleted or unknown id stays
// open but renders as missing.
type PanelEntityResolver interface {
	Exists(ctx context.Context, key string, id uuid.UUID) (bool, error)
}

type panelEntityResolverImpl struct {
	taskRepo     repository.TaskRepository
	activityRepo repository.ActivityRepository
	userRepo     repository.UserRepository
	fileRepo     repository.FileRepository
}

// NewPanelEntityResolver creates a resolver over the panel-addressable
// repositories
func NewPanelEntityResolver(
	taskRepo repository.TaskRepository,
	activityRepo repository.ActivityRepository,
	userRepo repository.UserRepository,
	fileRepo repository.FileRepository,
) PanelEntityResolver {
	return &panelEntityResolverImpl{
		taskRepo:     taskRepo,
		activityRepo: activityRepo,
		userRepo:     userRepo,
		fileRepo:     fileRepo,
	}
}

func (r *panelEntityResolverImpl) Exists(ctx context.Context, key string, id uuid.UUID) (bool, error) {
	var err error
	switch key {
	case panel.KeyTask:
		_, err = r.taskRepo.GetByID(ctx, id)
	case panel.KeyActivity:
		_, err = r.activityRepo.GetByID(ctx, id)
	case panel.KeyUser:
		_, err = r.userRepo.GetByID(ctx, id)
	case panel.KeyFile:
		_, err = r.fileRepo.GetByID(ctx, id)
	default:
		return false, nil
	}

	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}
