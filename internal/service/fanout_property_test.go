package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"go.uber.org/zap"

	"project-hub-api/internal/domain"
	"project-hub-api/internal/events"
)

// userPool is a fixed set of identities the generators index into so
// collisions (commenter == assignee, duplicate members) occur often
var userPool = func() []uuid.UUID {
	pool := make([]uuid.UUID, 5)
	for i := range pool {
		pool[i] = uuid.New()
	}
	return pool
}()

func poolIndexGen() gopter.Gen {
	return gen.IntRange(0, len(userPool)-1)
}

func TestFanoutProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	logger, _ := zap.NewDevelopment()

	properties.Property("commenter never receives a comment notification", prop.ForAll(
		func(commenterIdx, creatorIdx int, assigneeIdx int, hasAssignee bool) bool {
			commenter := userPool[commenterIdx]
			taskID := uuid.New()

			task := &domain.Task{CreatedBy: userPool[creatorIdx], Title: "t"}
			task.ID = taskID
			if hasAssignee {
				task.AssigneeID = &userPool[assigneeIdx]
			}

			var recipients []uuid.UUID
			nr := &mockNotificationRepository{
				CreateFunc: func(ctx context.Context, n *domain.Notification) error {
					recipients = append(recipients, n.UserID)
					return nil
				},
			}
			tr := &mockTaskRepository{
				GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
					return task, nil
				},
			}
			ur := &mockUserRepository{
				GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
					return namedUser(id, "u"), nil
				},
			}

			svc := NewFanoutService(nr, tr, ur, &mockProjectRepository{}, events.NewBus(logger, nil), &mockEmailClient{}, &mockInvalidator{}, nil, logger)
			comment := &domain.Comment{TaskID: taskID, Content: "c"}
			if err := svc.CommentPosted(context.Background(), comment, commenter); err != nil {
				return false
			}

			seen := map[uuid.UUID]int{}
			for _, r := range recipients {
				if r == commenter {
					return false
				}
				seen[r]++
			}
			for _, count := range seen {
				if count > 1 {
					return false
				}
			}
			return true
		},
		poolIndexGen(), poolIndexGen(), poolIndexGen(), gen.Bool(),
	))

	properties.Property("file upload recipients are unique members minus uploader", prop.ForAll(
		func(uploaderIdx int, memberIdxs []int) bool {
			uploader := userPool[uploaderIdx]
			projectID := uuid.New()

			members := make([]domain.ProjectMember, 0, len(memberIdxs))
			expected := map[uuid.UUID]bool{}
			for _, idx := range memberIdxs {
				id := userPool[idx]
				members = append(members, domain.ProjectMember{ProjectID: projectID, UserID: id})
				if id != uploader {
					expected[id] = true
				}
			}

			var batch []domain.Notification
			nr := &mockNotificationRepository{
				CreateBatchFunc: func(ctx context.Context, ns []domain.Notification) error {
					batch = ns
					return nil
				},
			}
			pr := &mockProjectRepository{
				GetMembersFunc: func(ctx context.Context, id uuid.UUID) ([]domain.ProjectMember, error) {
					return members, nil
				},
			}
			ur := &mockUserRepository{
				GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
					return namedUser(id, "u"), nil
				},
			}

			svc := NewFanoutService(nr, &mockTaskRepository{}, ur, pr, events.NewBus(logger, nil), &mockEmailClient{}, &mockInvalidator{}, nil, logger)
			file := &domain.File{ProjectID: projectID, Name: "f"}
			if err := svc.FileUploaded(context.Background(), file, uploader); err != nil {
				return false
			}

			if len(batch) != len(expected) {
				return false
			}
			for _, n := range batch {
				if !expected[n.UserID] {
					return false
				}
			}
			return true
		},
		poolIndexGen(), gen.SliceOf(poolIndexGen()),
	))

	properties.Property("task without assignee creates zero notifications", prop.ForAll(
		func(assignerIdx int) bool {
			inserts := 0
			nr := &mockNotificationRepository{
				CreateFunc: func(ctx context.Context, n *domain.Notification) error {
					inserts++
					return nil
				},
			}

			svc := NewFanoutService(nr, &mockTaskRepository{}, &mockUserRepository{}, &mockProjectRepository{}, events.NewBus(logger, nil), &mockEmailClient{}, &mockInvalidator{}, nil, logger)
			task := &domain.Task{Title: "t"}
			err := svc.TaskAssigned(context.Background(), task, userPool[assignerIdx])
			return err == nil && inserts == 0
		},
		poolIndexGen(),
	))

	properties.TestingRun(t)
}
