package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"project-hub-api/internal/domain"
	"project-hub-api/internal/dto"
	"project-hub-api/internal/repository"
	"project-hub-api/internal/response"
)

// ProjectService manages projects and their membership
type ProjectService interface {
	Create(ctx context.Context, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ProjectResponse, error)
	List(ctx context.Context, status *string, mine bool) ([]dto.ProjectResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error

	ListMembers(ctx context.Context, projectID uuid.UUID) ([]dto.ProjectMemberResponse, error)
	AddMember(ctx context.Context, projectID uuid.UUID, req *dto.AddMemberRequest) (*dto.ProjectMemberResponse, error)
	RemoveMember(ctx context.Context, projectID, userID uuid.UUID) error
}

type projectServiceImpl struct {
	repo     repository.ProjectRepository
	activity ActivityService
	logger   *zap.Logger
}

// NewProjectService creates a project service
func NewProjectService(repo repository.ProjectRepository, activity ActivityService, logger *zap.Logger) ProjectService {
	return &projectServiceImpl{repo: repo, activity: activity, logger: logger}
}

func (s *projectServiceImpl) Create(ctx context.Context, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		return nil, err
	}

	priority := domain.PriorityMedium
	if req.Priority != "" {
		priority = domain.Priority(req.Priority)
	}

	project := &domain.Project{
		OwnerID:     userID,
		Name:        req.Name,
		Description: req.Description,
		Status:      domain.ProjectStatusNotStarted,
		Priority:    priority,
		Category:    req.Category,
		DueDate:     dueDate,
	}
	if err := s.repo.Create(ctx, project); err != nil {
		return nil, err
	}

	// The creator joins as owner
	member := &domain.ProjectMember{
		ProjectID: project.ID,
		UserID:    userID,
		RoleName:  domain.ProjectRoleOwner,
		JoinedAt:  time.Now().UTC(),
	}
	if err := s.repo.AddMember(ctx, member); err != nil {
		return nil, err
	}
	project.Members = []domain.ProjectMember{*member}

	s.recordActivity(ctx, userID, project.ID, domain.ActivityActionCreated, domain.ActivityTargetProject, project.ID, project.Name, nil)

	resp := dto.ToProjectResponse(project)
	return &resp, nil
}

func (s *projectServiceImpl) Get(ctx context.Context, id uuid.UUID) (*dto.ProjectResponse, error) {
	project, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, wrapNotFound(err, "project not found")
	}
	resp := dto.ToProjectResponse(project)
	return &resp, nil
}

func (s *projectServiceImpl) List(ctx context.Context, status *string, mine bool) ([]dto.ProjectResponse, error) {
	var projects []domain.Project
	var err error

	if mine {
		userID, uerr := userIDFromContext(ctx)
		if uerr != nil {
			return nil, uerr
		}
		projects, err = s.repo.GetByMember(ctx, userID)
	} else {
		var statusFilter *domain.ProjectStatus
		if status != nil && *status != "" {
			st := domain.ProjectStatus(*status)
			statusFilter = &st
		}
		projects, err = s.repo.GetAll(ctx, statusFilter)
	}
	if err != nil {
		return nil, err
	}

	out := make([]dto.ProjectResponse, 0, len(projects))
	for i := range projects {
		out = append(out, dto.ToProjectResponse(&projects[i]))
	}
	return out, nil
}

func (s *projectServiceImpl) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	project, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, wrapNotFound(err, "project not found")
	}
	if err := s.requireManage(ctx, project, userID); err != nil {
		return nil, err
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.Status != nil {
		project.Status = domain.ProjectStatus(*req.Status)
	}
	if req.Priority != nil {
		project.Priority = domain.Priority(*req.Priority)
	}
	if req.Progress != nil {
		project.Progress = *req.Progress
	}
	if req.Category != nil {
		project.Category = *req.Category
	}
	if req.DueDate != nil {
		dueDate, derr := parseDate(req.DueDate)
		if derr != nil {
			return nil, derr
		}
		project.DueDate = dueDate
	}

	if err := s.repo.Update(ctx, project); err != nil {
		return nil, err
	}

	action := domain.ActivityActionUpdated
	if project.Status == domain.ProjectStatusCompleted {
		action = domain.ActivityActionCompleted
	}
	s.recordActivity(ctx, userID, project.ID, action, domain.ActivityTargetProject, project.ID, project.Name, nil)

	resp := dto.ToProjectResponse(project)
	return &resp, nil
}

func (s *projectServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}

	project, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return wrapNotFound(err, "project not found")
	}
	if project.OwnerID != userID {
		return response.NewForbiddenError("only the project owner can delete a project")
	}

	return s.repo.Delete(ctx, id)
}

func (s *projectServiceImpl) ListMembers(ctx context.Context, projectID uuid.UUID) ([]dto.ProjectMemberResponse, error) {
	if _, err := s.repo.GetByID(ctx, projectID); err != nil {
		return nil, wrapNotFound(err, "project not found")
	}
	members, err := s.repo.GetMembers(ctx, projectID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProjectMemberResponse, 0, len(members))
	for i := range members {
		out = append(out, dto.ToProjectMemberResponse(&members[i]))
	}
	return out, nil
}

func (s *projectServiceImpl) AddMember(ctx context.Context, projectID uuid.UUID, req *dto.AddMemberRequest) (*dto.ProjectMemberResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	project, err := s.repo.GetByID(ctx, projectID)
	if err != nil {
		return nil, wrapNotFound(err, "project not found")
	}
	if err := s.requireManage(ctx, project, userID); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetMember(ctx, projectID, req.UserID); err == nil && existing != nil {
		return nil, response.NewAppError(response.ErrCodeAlreadyExists, "user is already a member", "")
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	member := &domain.ProjectMember{
		ProjectID: projectID,
		UserID:    req.UserID,
		RoleName:  domain.ProjectRole(req.RoleName),
		JoinedAt:  time.Now().UTC(),
	}
	if err := s.repo.AddMember(ctx, member); err != nil {
		return nil, err
	}

	resp := dto.ToProjectMemberResponse(member)
	return &resp, nil
}

func (s *projectServiceImpl) RemoveMember(ctx context.Context, projectID, memberUserID uuid.UUID) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}

	project, err := s.repo.GetByID(ctx, projectID)
	if err != nil {
		return wrapNotFound(err, "project not found")
	}
	// Members may remove themselves; removing others needs manage rights
	if memberUserID != userID {
		if err := s.requireManage(ctx, project, userID); err != nil {
			return err
		}
	}
	if memberUserID == project.OwnerID {
		return response.NewForbiddenError("the project owner cannot be removed")
	}

	if err := s.repo.RemoveMember(ctx, projectID, memberUserID); err != nil {
		return wrapNotFound(err, "member not found")
	}
	return nil
}

// requireManage is an advisory client-side check; database constraints
// remain the authority on what writes succeed.
func (s *projectServiceImpl) requireManage(ctx context.Context, project *domain.Project, userID uuid.UUID) error {
	if project.OwnerID == userID {
		return nil
	}
	member, err := s.repo.GetMember(ctx, project.ID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewForbiddenError("not a project member")
		}
		return err
	}
	if !member.RoleName.CanManage() {
		return response.NewForbiddenError("insufficient project role")
	}
	return nil
}

func (s *projectServiceImpl) recordActivity(ctx context.Context, userID, projectID uuid.UUID, action domain.ActivityAction, targetType domain.ActivityTarget, targetID uuid.UUID, targetName string, content *string) {
	if s.activity == nil {
		return
	}
	err := s.activity.Record(ctx, &domain.Activity{
		UserID:     userID,
		ProjectID:  projectID,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		TargetName: targetName,
		Content:    content,
	})
	if err != nil {
		s.logger.Warn("failed to record activity", zap.Error(err))
	}
}
