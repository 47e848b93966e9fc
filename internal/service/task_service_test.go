package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"project-hub-api/internal/domain"
	"project-hub-api/internal/dto"
	"project-hub-api/internal/response"
)

type mockFanoutService struct {
	TaskAssignedFunc  func(ctx context.Context, task *domain.Task, assignerID uuid.UUID) error
	CommentPostedFunc func(ctx context.Context, comment *domain.Comment, commenterID uuid.UUID) error
	FileUploadedFunc  func(ctx context.Context, file *domain.File, uploaderID uuid.UUID) error
}

func (m *mockFanoutService) TaskAssigned(ctx context.Context, task *domain.Task, assignerID uuid.UUID) error {
	if m.TaskAssignedFunc == nil {
		return nil
	}
	return m.TaskAssignedFunc(ctx, task, assignerID)
}

func (m *mockFanoutService) CommentPosted(ctx context.Context, comment *domain.Comment, commenterID uuid.UUID) error {
	if m.CommentPostedFunc == nil {
		return nil
	}
	return m.CommentPostedFunc(ctx, comment, commenterID)
}

func (m *mockFanoutService) FileUploaded(ctx context.Context, file *domain.File, uploaderID uuid.UUID) error {
	if m.FileUploadedFunc == nil {
		return nil
	}
	return m.FileUploadedFunc(ctx, file, uploaderID)
}

func newTaskService(repo *mockTaskRepository, projectRepo *mockProjectRepository, fanout *mockFanoutService) TaskService {
	logger, _ := zap.NewDevelopment()
	return NewTaskService(repo, projectRepo, fanout, nil, nil, logger)
}

func TestTaskServiceCreate(t *testing.T) {
	creator := uuid.New()
	assignee := uuid.New()
	projectID := uuid.New()

	existingProject := func(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
		p := &domain.Project{Name: "p"}
		p.ID = id
		return p, nil
	}

	t.Run("성공: 담당자 지정 시 fan-out 호출", func(t *testing.T) {
		repo := &mockTaskRepository{
			CreateFunc: func(ctx context.Context, task *domain.Task) error { return nil },
		}
		projectRepo := &mockProjectRepository{GetByIDFunc: existingProject}
		fanoutCalls := 0
		fanout := &mockFanoutService{
			TaskAssignedFunc: func(ctx context.Context, task *domain.Task, assignerID uuid.UUID) error {
				fanoutCalls++
				assert.Equal(t, creator, assignerID)
				require.NotNil(t, task.AssigneeID)
				assert.Equal(t, assignee, *task.AssigneeID)
				return nil
			},
		}

		req := &dto.CreateTaskRequest{ProjectID: projectID, Title: "Fix bug", AssigneeID: &assignee}
		resp, err := newTaskService(repo, projectRepo, fanout).Create(userContext(creator), req)
		require.NoError(t, err)
		assert.Equal(t, 1, fanoutCalls)
		assert.Equal(t, string(domain.TaskStatusTodo), resp.Status)
		assert.Equal(t, string(domain.PriorityMedium), resp.Priority)
	})

	t.Run("실패: 없는 프로젝트", func(t *testing.T) {
		projectRepo := &mockProjectRepository{
			GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}

		req := &dto.CreateTaskRequest{ProjectID: projectID, Title: "Fix bug"}
		_, err := newTaskService(&mockTaskRepository{}, projectRepo, &mockFanoutService{}).Create(userContext(creator), req)

		var appErr *response.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, response.ErrCodeNotFound, appErr.Code)
	})

	t.Run("실패: fan-out 실패는 에러로 전파", func(t *testing.T) {
		repo := &mockTaskRepository{
			CreateFunc: func(ctx context.Context, task *domain.Task) error { return nil },
		}
		projectRepo := &mockProjectRepository{GetByIDFunc: existingProject}
		fanout := &mockFanoutService{
			TaskAssignedFunc: func(ctx context.Context, task *domain.Task, assignerID uuid.UUID) error {
				return response.NewInternalError("fanout failed", nil)
			},
		}

		req := &dto.CreateTaskRequest{ProjectID: projectID, Title: "Fix bug", AssigneeID: &assignee}
		_, err := newTaskService(repo, projectRepo, fanout).Create(userContext(creator), req)
		assert.Error(t, err)
	})
}

func TestTaskServiceUpdate(t *testing.T) {
	editor := uuid.New()
	oldAssignee := uuid.New()
	newAssignee := uuid.New()
	taskID := uuid.New()

	storedTask := func(assignee *uuid.UUID) *domain.Task {
		task := &domain.Task{ProjectID: uuid.New(), CreatedBy: editor, AssigneeID: assignee, Title: "Fix bug", Status: domain.TaskStatusTodo}
		task.ID = taskID
		return task
	}

	updateFixture := func(assignee *uuid.UUID) (*mockTaskRepository, *int, *mockFanoutService) {
		repo := &mockTaskRepository{
			GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
				return storedTask(assignee), nil
			},
			UpdateFunc: func(ctx context.Context, task *domain.Task) error { return nil },
		}
		calls := 0
		fanout := &mockFanoutService{
			TaskAssignedFunc: func(ctx context.Context, task *domain.Task, assignerID uuid.UUID) error {
				calls++
				return nil
			},
		}
		return repo, &calls, fanout
	}

	t.Run("성공: 담당자 변경 시 fan-out 호출", func(t *testing.T) {
		repo, calls, fanout := updateFixture(&oldAssignee)

		req := &dto.UpdateTaskRequest{AssigneeID: &newAssignee}
		_, err := newTaskService(repo, &mockProjectRepository{}, fanout).Update(userContext(editor), taskID, req)
		require.NoError(t, err)
		assert.Equal(t, 1, *calls)
	})

	t.Run("성공: 담당자 유지 시 fan-out 없음", func(t *testing.T) {
		repo, calls, fanout := updateFixture(&oldAssignee)

		title := "New title"
		req := &dto.UpdateTaskRequest{Title: &title}
		resp, err := newTaskService(repo, &mockProjectRepository{}, fanout).Update(userContext(editor), taskID, req)
		require.NoError(t, err)
		assert.Equal(t, 0, *calls)
		assert.Equal(t, "New title", resp.Title)
	})

	t.Run("성공: 같은 담당자 재지정은 fan-out 없음", func(t *testing.T) {
		repo, calls, fanout := updateFixture(&oldAssignee)

		req := &dto.UpdateTaskRequest{AssigneeID: &oldAssignee}
		_, err := newTaskService(repo, &mockProjectRepository{}, fanout).Update(userContext(editor), taskID, req)
		require.NoError(t, err)
		assert.Equal(t, 0, *calls)
	})

	t.Run("성공: 담당자 해제는 fan-out 없음", func(t *testing.T) {
		repo, calls, fanout := updateFixture(&oldAssignee)

		req := &dto.UpdateTaskRequest{ClearAssignee: true}
		resp, err := newTaskService(repo, &mockProjectRepository{}, fanout).Update(userContext(editor), taskID, req)
		require.NoError(t, err)
		assert.Equal(t, 0, *calls)
		assert.Nil(t, resp.AssigneeID)
	})

	t.Run("성공: 미지정에서 지정으로 바뀌면 fan-out 호출", func(t *testing.T) {
		repo, calls, fanout := updateFixture(nil)

		req := &dto.UpdateTaskRequest{AssigneeID: &newAssignee}
		_, err := newTaskService(repo, &mockProjectRepository{}, fanout).Update(userContext(editor), taskID, req)
		require.NoError(t, err)
		assert.Equal(t, 1, *calls)
	})
}

func TestTaskServiceDelete(t *testing.T) {
	creator := uuid.New()
	stranger := uuid.New()
	taskID := uuid.New()
	projectID := uuid.New()

	stored := func(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
		task := &domain.Task{ProjectID: projectID, CreatedBy: creator, Title: "Fix bug"}
		task.ID = taskID
		return task, nil
	}

	t.Run("성공: 생성자가 삭제", func(t *testing.T) {
		deleted := false
		repo := &mockTaskRepository{
			GetByIDFunc: stored,
			DeleteFunc: func(ctx context.Context, id uuid.UUID) error {
				deleted = true
				return nil
			},
		}

		err := newTaskService(repo, &mockProjectRepository{}, &mockFanoutService{}).Delete(userContext(creator), taskID)
		require.NoError(t, err)
		assert.True(t, deleted)
	})

	t.Run("실패: 권한 없는 멤버의 삭제", func(t *testing.T) {
		repo := &mockTaskRepository{GetByIDFunc: stored}
		projectRepo := &mockProjectRepository{
			GetMemberFunc: func(ctx context.Context, pid, uid uuid.UUID) (*domain.ProjectMember, error) {
				return &domain.ProjectMember{ProjectID: pid, UserID: uid, RoleName: domain.ProjectRoleMember}, nil
			},
		}

		err := newTaskService(repo, projectRepo, &mockFanoutService{}).Delete(userContext(stranger), taskID)
		var appErr *response.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, response.ErrCodeForbidden, appErr.Code)
	})

	t.Run("성공: 관리자 역할 멤버가 삭제", func(t *testing.T) {
		deleted := false
		repo := &mockTaskRepository{
			GetByIDFunc: stored,
			DeleteFunc: func(ctx context.Context, id uuid.UUID) error {
				deleted = true
				return nil
			},
		}
		projectRepo := &mockProjectRepository{
			GetMemberFunc: func(ctx context.Context, pid, uid uuid.UUID) (*domain.ProjectMember, error) {
				return &domain.ProjectMember{ProjectID: pid, UserID: uid, RoleName: domain.ProjectRoleAdmin}, nil
			},
		}

		err := newTaskService(repo, projectRepo, &mockFanoutService{}).Delete(userContext(stranger), taskID)
		require.NoError(t, err)
		assert.True(t, deleted)
	})
}
