package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"project-hub-api/internal/domain"
	"project-hub-api/internal/dto"
	"project-hub-api/internal/repository"
	"project-hub-api/internal/response"
)

// CommentService manages task comments and triggers comment fan-out
type CommentService interface {
	Create(ctx context.Context, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]dto.CommentResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateCommentRequest) (*dto.CommentResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type commentServiceImpl struct {
	repo        repository.CommentRepository
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
	fanout      FanoutService
	activity    ActivityService
	logger      *zap.Logger
}

// NewCommentService creates a comment service
func NewCommentService(
	repo repository.CommentRepository,
	taskRepo repository.TaskRepository,
	projectRepo repository.ProjectRepository,
	fanout FanoutService,
	activity ActivityService,
	logger *zap.Logger,
) CommentService {
	return &commentServiceImpl{
		repo:        repo,
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		fanout:      fanout,
		activity:    activity,
		logger:      logger,
	}
}

// canModify allows the author, and otherwise a member with a managing
// role on the comment's project
func (s *commentServiceImpl) canModify(ctx context.Context, comment *domain.Comment, userID uuid.UUID) bool {
	if comment.UserID == userID {
		return true
	}
	member, err := s.projectRepo.GetMember(ctx, comment.ProjectID, userID)
	return err == nil && member.RoleName.CanManage()
}

func (s *commentServiceImpl) Create(ctx context.Context, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	task, err := s.taskRepo.GetByID(ctx, req.TaskID)
	if err != nil {
		return nil, wrapNotFound(err, "task not found")
	}

	comment := &domain.Comment{
		TaskID:    task.ID,
		ProjectID: task.ProjectID,
		UserID:    userID,
		Content:   req.Content,
	}
	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, err
	}

	// Fan-out aborts on the first failed insert; rows written before
	// the failure stay committed and the error is surfaced here.
	if err := s.fanout.CommentPosted(ctx, comment, userID); err != nil {
		return nil, err
	}

	if s.activity != nil {
		content := comment.Content
		aerr := s.activity.Record(ctx, &domain.Activity{
			UserID:     userID,
			ProjectID:  task.ProjectID,
			Action:     domain.ActivityActionCommented,
			TargetType: domain.ActivityTargetTask,
			TargetID:   task.ID,
			TargetName: task.Title,
			Content:    &content,
		})
		if aerr != nil {
			s.logger.Warn("failed to record comment activity", zap.Error(aerr))
		}
	}

	resp := dto.ToCommentResponse(comment)
	return &resp, nil
}

func (s *commentServiceImpl) ListByTask(ctx context.Context, taskID uuid.UUID) ([]dto.CommentResponse, error) {
	if _, err := s.taskRepo.GetByID(ctx, taskID); err != nil {
		return nil, wrapNotFound(err, "task not found")
	}
	comments, err := s.repo.GetByTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, dto.ToCommentResponse(&comments[i]))
	}
	return out, nil
}

func (s *commentServiceImpl) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateCommentRequest) (*dto.CommentResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	comment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, wrapNotFound(err, "comment not found")
	}
	if !s.canModify(ctx, comment, userID) {
		return nil, response.NewForbiddenError("only the author or a project manager can edit a comment")
	}

	now := time.Now().UTC()
	comment.Content = req.Content
	comment.EditedAt = &now
	if err := s.repo.Update(ctx, comment); err != nil {
		return nil, err
	}

	resp := dto.ToCommentResponse(comment)
	return &resp, nil
}

func (s *commentServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}

	comment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return wrapNotFound(err, "comment not found")
	}
	if !s.canModify(ctx, comment, userID) {
		return response.NewForbiddenError("only the author or a project manager can delete a comment")
	}

	return s.repo.Delete(ctx, id)
}
