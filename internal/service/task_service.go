package service

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"project-hub-api/internal/domain"
	"project-hub-api/internal/dto"
	"project-hub-api/internal/events"
	"project-hub-api/internal/repository"
	"project-hub-api/internal/response"
)

// TaskService manages tasks and triggers assignment fan-out
type TaskService interface {
	Create(ctx context.Context, req *dto.CreateTaskRequest) (*dto.TaskResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.TaskResponse, error)
	List(ctx context.Context, filter repository.TaskFilter) ([]dto.TaskResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type taskServiceImpl struct {
	repo        repository.TaskRepository
	projectRepo repository.ProjectRepository
	fanout      FanoutService
	activity    ActivityService
	bus         *events.Bus
	logger      *zap.Logger
}

// NewTaskService creates a task service
func NewTaskService(
	repo repository.TaskRepository,
	projectRepo repository.ProjectRepository,
	fanout FanoutService,
	activity ActivityService,
	bus *events.Bus,
	logger *zap.Logger,
) TaskService {
	return &taskServiceImpl{
		repo:        repo,
		projectRepo: projectRepo,
		fanout:      fanout,
		activity:    activity,
		bus:         bus,
		logger:      logger,
	}
}

func (s *taskServiceImpl) Create(ctx context.Context, req *dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := s.projectRepo.GetByID(ctx, req.ProjectID); err != nil {
		return nil, wrapNotFound(err, "project not found")
	}

	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		return nil, err
	}
	tags, err := marshalTags(req.Tags)
	if err != nil {
		return nil, err
	}

	priority := domain.PriorityMedium
	if req.Priority != "" {
		priority = domain.Priority(req.Priority)
	}

	task := &domain.Task{
		ProjectID:      req.ProjectID,
		CreatedBy:      userID,
		AssigneeID:     req.AssigneeID,
		Title:          req.Title,
		Description:    req.Description,
		Status:         domain.TaskStatusTodo,
		Priority:       priority,
		Tags:           tags,
		EstimatedHours: req.EstimatedHours,
		DueDate:        dueDate,
	}
	if err := s.repo.Create(ctx, task); err != nil {
		return nil, err
	}

	// Assignment fan-out surfaces its own failures
	if err := s.fanout.TaskAssigned(ctx, task, userID); err != nil {
		return nil, err
	}

	s.recordActivity(ctx, userID, task, domain.ActivityActionCreated)
	s.publishChange(task, "created")

	resp := dto.ToTaskResponse(task)
	return &resp, nil
}

func (s *taskServiceImpl) Get(ctx context.Context, id uuid.UUID) (*dto.TaskResponse, error) {
	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, wrapNotFound(err, "task not found")
	}
	resp := dto.ToTaskResponse(task)
	return &resp, nil
}

func (s *taskServiceImpl) List(ctx context.Context, filter repository.TaskFilter) ([]dto.TaskResponse, error) {
	tasks, err := s.repo.GetAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TaskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, dto.ToTaskResponse(&tasks[i]))
	}
	return out, nil
}

func (s *taskServiceImpl) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, wrapNotFound(err, "task not found")
	}

	previousAssignee := task.AssigneeID

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.ClearAssignee {
		task.AssigneeID = nil
	} else if req.AssigneeID != nil {
		task.AssigneeID = req.AssigneeID
	}
	if req.Status != nil {
		task.Status = domain.TaskStatus(*req.Status)
	}
	if req.Priority != nil {
		task.Priority = domain.Priority(*req.Priority)
	}
	if req.Tags != nil {
		tags, terr := marshalTags(req.Tags)
		if terr != nil {
			return nil, terr
		}
		task.Tags = tags
	}
	if req.EstimatedHours != nil {
		task.EstimatedHours = *req.EstimatedHours
	}
	if req.DueDate != nil {
		dueDate, derr := parseDate(req.DueDate)
		if derr != nil {
			return nil, derr
		}
		task.DueDate = dueDate
	}

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}

	// Reassignment to a new user triggers fan-out
	if task.AssigneeID != nil && (previousAssignee == nil || *previousAssignee != *task.AssigneeID) {
		if err := s.fanout.TaskAssigned(ctx, task, userID); err != nil {
			return nil, err
		}
	}

	action := domain.ActivityActionUpdated
	if task.Status == domain.TaskStatusCompleted {
		action = domain.ActivityActionCompleted
	}
	s.recordActivity(ctx, userID, task, action)
	s.publishChange(task, "updated")

	resp := dto.ToTaskResponse(task)
	return &resp, nil
}

func (s *taskServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}

	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return wrapNotFound(err, "task not found")
	}
	if task.CreatedBy != userID {
		// Non-creators need a managing role on the project
		member, merr := s.projectRepo.GetMember(ctx, task.ProjectID, userID)
		if merr != nil || !member.RoleName.CanManage() {
			return response.NewForbiddenError("only the task creator or a project manager can delete a task")
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return wrapNotFound(err, "task not found")
	}
	s.publishChange(task, "deleted")
	return nil
}

func (s *taskServiceImpl) recordActivity(ctx context.Context, userID uuid.UUID, task *domain.Task, action domain.ActivityAction) {
	if s.activity == nil {
		return
	}
	err := s.activity.Record(ctx, &domain.Activity{
		UserID:     userID,
		ProjectID:  task.ProjectID,
		Action:     action,
		TargetType: domain.ActivityTargetTask,
		TargetID:   task.ID,
		TargetName: task.Title,
	})
	if err != nil {
		s.logger.Warn("failed to record task activity", zap.Error(err))
	}
}

func (s *taskServiceImpl) publishChange(task *domain.Task, action string) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(events.TaskChanged{
		TaskID:    task.ID,
		ProjectID: task.ProjectID,
		Action:    action,
	})
}

func marshalTags(tags []string) (datatypes.JSON, error) {
	if tags == nil {
		return nil, nil
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return nil, response.NewValidationError("invalid tags", err.Error())
	}
	return datatypes.JSON(data), nil
}
