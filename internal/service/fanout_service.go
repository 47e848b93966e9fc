package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"project-hub-api/internal/client"
	"project-hub-api/internal/domain"
	"project-hub-api/internal/events"
	"project-hub-api/internal/repository"
)

// FanoutService computes the recipient set for a domain event and
// persists one notification row per recipient.
//
// All flows treat an empty recipient set as a successful no-op and a
// failed actor-name lookup as fatal to the whole operation.
type FanoutService interface {
	TaskAssigned(ctx context.Context, task *domain.Task, assignerID uuid.UUID) error
	CommentPosted(ctx context.Context, comment *domain.Comment, commenterID uuid.UUID) error
	FileUploaded(ctx context.Context, file *domain.File, uploaderID uuid.UUID) error
}

// FanoutMetrics records fan-out outcomes
type FanoutMetrics interface {
	RecordFanout(notificationType string, created int, err error)
}

// UnreadCacheInvalidator drops a user's cached unread count after new
// notifications are written
type UnreadCacheInvalidator interface {
	InvalidateUnreadCount(ctx context.Context, userID uuid.UUID)
}

type fanoutServiceImpl struct {
	notificationRepo repository.NotificationRepository
	taskRepo         repository.TaskRepository
	userRepo         repository.UserRepository
	projectRepo      repository.ProjectRepository
	bus              *events.Bus
	emailClient      client.EmailClientInterface
	invalidator      UnreadCacheInvalidator
	metrics          FanoutMetrics
	logger           *zap.Logger
}

// NewFanoutService creates a fan-out service
func NewFanoutService(
	notificationRepo repository.NotificationRepository,
	taskRepo repository.TaskRepository,
	userRepo repository.UserRepository,
	projectRepo repository.ProjectRepository,
	bus *events.Bus,
	emailClient client.EmailClientInterface,
	invalidator UnreadCacheInvalidator,
	metrics FanoutMetrics,
	logger *zap.Logger,
) FanoutService {
	return &fanoutServiceImpl{
		notificationRepo: notificationRepo,
		taskRepo:         taskRepo,
		userRepo:         userRepo,
		projectRepo:      projectRepo,
		bus:              bus,
		emailClient:      emailClient,
		invalidator:      invalidator,
		metrics:          metrics,
		logger:           logger,
	}
}

// TaskAssigned notifies the assignee of a task. A task without an
// assignee is a no-op; self-assignment never notifies.
func (s *fanoutServiceImpl) TaskAssigned(ctx context.Context, task *domain.Task, assignerID uuid.UUID) error {
	if task.AssigneeID == nil {
		return nil
	}
	assigneeID := *task.AssigneeID
	if assigneeID == assignerID {
		return nil
	}

	assigner, err := s.userRepo.GetByID(ctx, assignerID)
	if err != nil {
		err = fmt.Errorf("failed to resolve assigner name: %w", err)
		s.recordFanout(domain.NotificationTaskAssigned, 0, err)
		return err
	}

	notification := domain.Notification{
		Type:          domain.NotificationTaskAssigned,
		Content:       fmt.Sprintf("%s assigned you a task: %s", assigner.Name, task.Title),
		Link:          taskLink(task.ProjectID, task.ID),
		UserID:        assigneeID,
		RelatedUserID: assignerID,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.notificationRepo.Create(ctx, &notification); err != nil {
		s.recordFanout(domain.NotificationTaskAssigned, 0, err)
		return err
	}

	s.recordFanout(domain.NotificationTaskAssigned, 1, nil)
	s.afterInsert(ctx, notification)
	return nil
}

// CommentPosted notifies the parent task's assignee and creator. The
// commenter is always excluded. Inserts are one at a time; the first
// failure aborts the remaining loop, so earlier rows stay committed.
func (s *fanoutServiceImpl) CommentPosted(ctx context.Context, comment *domain.Comment, commenterID uuid.UUID) error {
	task, err := s.taskRepo.GetByID(ctx, comment.TaskID)
	if err != nil {
		wrapped := wrapNotFound(err, "task not found")
		s.recordFanout(domain.NotificationComment, 0, wrapped)
		return wrapped
	}

	candidates := make([]uuid.UUID, 0, 2)
	if task.AssigneeID != nil {
		candidates = append(candidates, *task.AssigneeID)
	}
	candidates = append(candidates, task.CreatedBy)

	recipients := make([]uuid.UUID, 0, len(candidates))
	for _, id := range dedupeUUIDs(candidates) {
		if id != commenterID && id != uuid.Nil {
			recipients = append(recipients, id)
		}
	}
	if len(recipients) == 0 {
		return nil
	}

	commenter, err := s.userRepo.GetByID(ctx, commenterID)
	if err != nil {
		err = fmt.Errorf("failed to resolve commenter name: %w", err)
		s.recordFanout(domain.NotificationComment, 0, err)
		return err
	}

	created := 0
	inserted := make([]domain.Notification, 0, len(recipients))
	for _, recipientID := range recipients {
		notification := domain.Notification{
			Type:          domain.NotificationComment,
			Content:       fmt.Sprintf("%s commented on %s: %s", commenter.Name, task.Title, comment.Content),
			Link:          taskLink(task.ProjectID, task.ID),
			UserID:        recipientID,
			RelatedUserID: commenterID,
			CreatedAt:     time.Now().UTC(),
		}
		if err := s.notificationRepo.Create(ctx, &notification); err != nil {
			s.recordFanout(domain.NotificationComment, created, err)
			return err
		}
		created++
		inserted = append(inserted, notification)
	}

	s.recordFanout(domain.NotificationComment, created, nil)
	for _, n := range inserted {
		s.afterInsert(ctx, n)
	}
	return nil
}

// FileUploaded notifies every unique project member except the
// uploader. Membership rows may contain duplicate user ids; they
// collapse to one notification each. Rows are inserted as one batch.
func (s *fanoutServiceImpl) FileUploaded(ctx context.Context, file *domain.File, uploaderID uuid.UUID) error {
	members, err := s.projectRepo.GetMembers(ctx, file.ProjectID)
	if err != nil {
		s.recordFanout(domain.NotificationFileUploaded, 0, err)
		return err
	}

	memberIDs := make([]uuid.UUID, 0, len(members))
	for _, m := range members {
		if m.UserID != uploaderID {
			memberIDs = append(memberIDs, m.UserID)
		}
	}
	recipients := dedupeUUIDs(memberIDs)
	if len(recipients) == 0 {
		return nil
	}

	uploader, err := s.userRepo.GetByID(ctx, uploaderID)
	if err != nil {
		err = fmt.Errorf("failed to resolve uploader name: %w", err)
		s.recordFanout(domain.NotificationFileUploaded, 0, err)
		return err
	}

	now := time.Now().UTC()
	notifications := make([]domain.Notification, 0, len(recipients))
	for _, recipientID := range recipients {
		notifications = append(notifications, domain.Notification{
			Type:          domain.NotificationFileUploaded,
			Content:       fmt.Sprintf("%s uploaded a file: %s", uploader.Name, file.Name),
			Link:          fmt.Sprintf("/projects/%s/files", file.ProjectID),
			UserID:        recipientID,
			RelatedUserID: uploaderID,
			CreatedAt:     now,
		})
	}
	if err := s.notificationRepo.CreateBatch(ctx, notifications); err != nil {
		s.recordFanout(domain.NotificationFileUploaded, 0, err)
		return err
	}

	s.recordFanout(domain.NotificationFileUploaded, len(notifications), nil)
	for _, n := range notifications {
		s.afterInsert(ctx, n)
	}
	return nil
}

// afterInsert runs the best-effort side effects for one inserted row:
// bus publish, unread cache invalidation and email delivery. None of
// these can fail the fan-out.
func (s *fanoutServiceImpl) afterInsert(ctx context.Context, n domain.Notification) {
	if s.bus != nil {
		s.bus.Publish(events.NotificationCreated{
			NotificationID: n.ID,
			UserID:         n.UserID,
			Type:           string(n.Type),
		})
	}
	if s.invalidator != nil {
		s.invalidator.InvalidateUnreadCount(ctx, n.UserID)
	}
	s.sendEmail(ctx, n)
}

func (s *fanoutServiceImpl) sendEmail(ctx context.Context, n domain.Notification) {
	if s.emailClient == nil {
		return
	}
	recipient, err := s.userRepo.GetByID(ctx, n.UserID)
	if err != nil {
		s.logger.Warn("skipping notification email, recipient lookup failed",
			zap.String("user_id", n.UserID.String()),
			zap.Error(err))
		return
	}
	subject := "New notification"
	switch n.Type {
	case domain.NotificationTaskAssigned:
		subject = "You were assigned a task"
	case domain.NotificationComment:
		subject = "New comment on your task"
	case domain.NotificationFileUploaded:
		subject = "New file in your project"
	}
	_ = s.emailClient.SendNotificationEmail(ctx, recipient.Email, subject, n.Content)
}

func (s *fanoutServiceImpl) recordFanout(t domain.NotificationType, created int, err error) {
	if s.metrics != nil {
		s.metrics.RecordFanout(string(t), created, err)
	}
	if err != nil {
		s.logger.Error("notification fan-out failed",
			zap.String("type", string(t)),
			zap.Int("created_before_failure", created),
			zap.Error(err))
	}
}

func taskLink(projectID, taskID uuid.UUID) string {
	return fmt.Sprintf("/projects/%s?taskId=%s", projectID, taskID)
}
