package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"project-hub-api/internal/domain"
	"project-hub-api/internal/events"
)

func newFanoutFixture() (*mockNotificationRepository, *mockTaskRepository, *mockUserRepository, *mockProjectRepository, *mockInvalidator) {
	return &mockNotificationRepository{}, &mockTaskRepository{}, &mockUserRepository{}, &mockProjectRepository{}, &mockInvalidator{}
}

func newFanout(nr *mockNotificationRepository, tr *mockTaskRepository, ur *mockUserRepository, pr *mockProjectRepository, inv *mockInvalidator) FanoutService {
	logger, _ := zap.NewDevelopment()
	bus := events.NewBus(logger, nil)
	return NewFanoutService(nr, tr, ur, pr, bus, &mockEmailClient{}, inv, nil, logger)
}

func namedUser(id uuid.UUID, name string) *domain.User {
	return &domain.User{ID: id, Name: name, Email: name + "@example.com"}
}

func TestFanoutTaskAssigned(t *testing.T) {
	u1 := uuid.New()
	u2 := uuid.New()

	t.Run("성공: 담당자에게 알림 1건 생성", func(t *testing.T) {
		nr, tr, ur, pr, inv := newFanoutFixture()
		var created []domain.Notification
		nr.CreateFunc = func(ctx context.Context, n *domain.Notification) error {
			created = append(created, *n)
			return nil
		}
		ur.GetByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
			return namedUser(id, "Alice"), nil
		}

		task := &domain.Task{ProjectID: uuid.New(), AssigneeID: &u2, Title: "Fix bug"}
		task.ID = uuid.New()

		err := newFanout(nr, tr, ur, pr, inv).TaskAssigned(context.Background(), task, u1)
		require.NoError(t, err)
		require.Len(t, created, 1)
		assert.Equal(t, u2, created[0].UserID)
		assert.Equal(t, u1, created[0].RelatedUserID)
		assert.Equal(t, domain.NotificationTaskAssigned, created[0].Type)
		assert.True(t, strings.Contains(created[0].Content, "Fix bug"))
		assert.Contains(t, inv.invalidated, u2)
	})

	t.Run("성공: 담당자 없는 태스크는 no-op", func(t *testing.T) {
		nr, tr, ur, pr, inv := newFanoutFixture()
		nr.CreateFunc = func(ctx context.Context, n *domain.Notification) error {
			t.Fatal("no insert expected")
			return nil
		}

		task := &domain.Task{Title: "Fix bug"}
		err := newFanout(nr, tr, ur, pr, inv).TaskAssigned(context.Background(), task, u1)
		assert.NoError(t, err)
	})

	t.Run("성공: 자기 자신에게 할당하면 알림 없음", func(t *testing.T) {
		nr, tr, ur, pr, inv := newFanoutFixture()
		nr.CreateFunc = func(ctx context.Context, n *domain.Notification) error {
			t.Fatal("no insert expected")
			return nil
		}

		task := &domain.Task{AssigneeID: &u1, Title: "Fix bug"}
		err := newFanout(nr, tr, ur, pr, inv).TaskAssigned(context.Background(), task, u1)
		assert.NoError(t, err)
	})

	t.Run("실패: 할당자 이름 조회 실패는 치명적", func(t *testing.T) {
		nr, tr, ur, pr, inv := newFanoutFixture()
		inserts := 0
		nr.CreateFunc = func(ctx context.Context, n *domain.Notification) error {
			inserts++
			return nil
		}
		ur.GetByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
			return nil, errors.New("user lookup failed")
		}

		task := &domain.Task{AssigneeID: &u2, Title: "Fix bug"}
		err := newFanout(nr, tr, ur, pr, inv).TaskAssigned(context.Background(), task, u1)
		assert.Error(t, err)
		assert.Equal(t, 0, inserts)
	})
}

func TestFanoutCommentPosted(t *testing.T) {
	u1 := uuid.New()
	u2 := uuid.New()
	u3 := uuid.New()
	taskID := uuid.New()

	taskWith := func(assignee *uuid.UUID, creator uuid.UUID) *domain.Task {
		task := &domain.Task{ProjectID: uuid.New(), CreatedBy: creator, AssigneeID: assignee, Title: "Fix bug"}
		task.ID = taskID
		return task
	}

	t.Run("성공: 담당자와 생성자 모두에게 알림", func(t *testing.T) {
		nr, tr, ur, pr, inv := newFanoutFixture()
		var created []domain.Notification
		nr.CreateFunc = func(ctx context.Context, n *domain.Notification) error {
			created = append(created, *n)
			return nil
		}
		tr.GetByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
			return taskWith(&u2, u3), nil
		}
		ur.GetByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
			return namedUser(id, "Alice"), nil
		}

		comment := &domain.Comment{TaskID: taskID, Content: "looks good"}
		err := newFanout(nr, tr, ur, pr, inv).CommentPosted(context.Background(), comment, u1)
		require.NoError(t, err)
		require.Len(t, created, 2)

		recipients := map[uuid.UUID]bool{}
		for _, n := range created {
			recipients[n.UserID] = true
			assert.Equal(t, domain.NotificationComment, n.Type)
			assert.Equal(t, u1, n.RelatedUserID)
			assert.True(t, strings.Contains(n.Content, "looks good"))
		}
		assert.True(t, recipients[u2])
		assert.True(t, recipients[u3])
		assert.False(t, recipients[u1])
	})

	t.Run("성공: 작성자가 담당자이자 생성자이면 알림 없음", func(t *testing.T) {
		nr, tr, ur, pr, inv := newFanoutFixture()
		nr.CreateFunc = func(ctx context.Context, n *domain.Notification) error {
			t.Fatal("no insert expected")
			return nil
		}
		tr.GetByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
			return taskWith(&u1, u1), nil
		}

		comment := &domain.Comment{TaskID: taskID, Content: "self reply"}
		err := newFanout(nr, tr, ur, pr, inv).CommentPosted(context.Background(), comment, u1)
		assert.NoError(t, err)
	})

	t.Run("실패: 두 번째 insert 실패 시 루프 중단, 첫 행은 유지", func(t *testing.T) {
		nr, tr, ur, pr, inv := newFanoutFixture()
		inserts := 0
		nr.CreateFunc = func(ctx context.Context, n *domain.Notification) error {
			inserts++
			if inserts == 2 {
				return errors.New("insert failed")
			}
			return nil
		}
		tr.GetByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
			return taskWith(&u2, u3), nil
		}
		ur.GetByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
			return namedUser(id, "Alice"), nil
		}

		comment := &domain.Comment{TaskID: taskID, Content: "partial"}
		err := newFanout(nr, tr, ur, pr, inv).CommentPosted(context.Background(), comment, u1)
		assert.Error(t, err)
		assert.Equal(t, 2, inserts)
	})

	t.Run("성공: 담당자 없는 태스크는 생성자에게만 알림", func(t *testing.T) {
		nr, tr, ur, pr, inv := newFanoutFixture()
		var created []domain.Notification
		nr.CreateFunc = func(ctx context.Context, n *domain.Notification) error {
			created = append(created, *n)
			return nil
		}
		tr.GetByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
			return taskWith(nil, u3), nil
		}
		ur.GetByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
			return namedUser(id, "Alice"), nil
		}

		comment := &domain.Comment{TaskID: taskID, Content: "hello"}
		err := newFanout(nr, tr, ur, pr, inv).CommentPosted(context.Background(), comment, u1)
		require.NoError(t, err)
		require.Len(t, created, 1)
		assert.Equal(t, u3, created[0].UserID)
	})
}

func TestFanoutFileUploaded(t *testing.T) {
	u1 := uuid.New()
	u2 := uuid.New()
	u3 := uuid.New()
	projectID := uuid.New()

	membersOf := func(ids ...uuid.UUID) []domain.ProjectMember {
		out := make([]domain.ProjectMember, 0, len(ids))
		for _, id := range ids {
			out = append(out, domain.ProjectMember{ProjectID: projectID, UserID: id})
		}
		return out
	}

	t.Run("성공: 중복 멤버는 한 번만 알림", func(t *testing.T) {
		nr, tr, ur, pr, inv := newFanoutFixture()
		var batch []domain.Notification
		nr.CreateBatchFunc = func(ctx context.Context, ns []domain.Notification) error {
			batch = ns
			return nil
		}
		pr.GetMembersFunc = func(ctx context.Context, id uuid.UUID) ([]domain.ProjectMember, error) {
			return membersOf(u2, u2, u3), nil
		}
		ur.GetByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
			return namedUser(id, "Alice"), nil
		}

		file := &domain.File{ProjectID: projectID, Name: "design.pdf"}
		err := newFanout(nr, tr, ur, pr, inv).FileUploaded(context.Background(), file, u1)
		require.NoError(t, err)
		require.Len(t, batch, 2)

		recipients := map[uuid.UUID]bool{}
		for _, n := range batch {
			recipients[n.UserID] = true
			assert.Equal(t, domain.NotificationFileUploaded, n.Type)
			assert.True(t, strings.Contains(n.Content, "design.pdf"))
		}
		assert.True(t, recipients[u2])
		assert.True(t, recipients[u3])
	})

	t.Run("성공: 업로더만 멤버이면 no-op", func(t *testing.T) {
		nr, tr, ur, pr, inv := newFanoutFixture()
		lookups := 0
		nr.CreateBatchFunc = func(ctx context.Context, ns []domain.Notification) error {
			t.Fatal("no batch insert expected")
			return nil
		}
		pr.GetMembersFunc = func(ctx context.Context, id uuid.UUID) ([]domain.ProjectMember, error) {
			return membersOf(u1, u1), nil
		}
		ur.GetByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
			lookups++
			return namedUser(id, "Alice"), nil
		}

		file := &domain.File{ProjectID: projectID, Name: "design.pdf"}
		err := newFanout(nr, tr, ur, pr, inv).FileUploaded(context.Background(), file, u1)
		assert.NoError(t, err)
		assert.Equal(t, 0, lookups, "uploader name is not fetched for an empty recipient set")
	})

	t.Run("실패: 업로더 이름 조회 실패는 치명적", func(t *testing.T) {
		nr, tr, ur, pr, inv := newFanoutFixture()
		nr.CreateBatchFunc = func(ctx context.Context, ns []domain.Notification) error {
			t.Fatal("no batch insert expected")
			return nil
		}
		pr.GetMembersFunc = func(ctx context.Context, id uuid.UUID) ([]domain.ProjectMember, error) {
			return membersOf(u2), nil
		}
		ur.GetByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
			return nil, errors.New("user lookup failed")
		}

		file := &domain.File{ProjectID: projectID, Name: "design.pdf"}
		err := newFanout(nr, tr, ur, pr, inv).FileUploaded(context.Background(), file, u1)
		assert.Error(t, err)
	})
}
