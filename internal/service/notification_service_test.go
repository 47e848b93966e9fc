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
	"project-hub-api/internal/job"
	"project-hub-api/internal/response"
)

func newNotificationService(repo *mockNotificationRepository) NotificationService {
	logger, _ := zap.NewDevelopment()
	return NewNotificationService(repo, nil, logger)
}

func TestNotificationServiceList(t *testing.T) {
	userID := uuid.New()

	t.Run("성공: 목록과 총계, 미읽음 수 반환", func(t *testing.T) {
		repo := &mockNotificationRepository{
			GetByUserFunc: func(ctx context.Context, uid uuid.UUID, limit, offset int) ([]domain.Notification, int64, error) {
				assert.Equal(t, userID, uid)
				return []domain.Notification{
					{ID: uuid.New(), UserID: uid, Type: domain.NotificationComment, Content: "hi"},
				}, 7, nil
			},
			GetUnreadCountFunc: func(ctx context.Context, uid uuid.UUID) (int64, error) {
				return 3, nil
			},
		}

		resp, err := newNotificationService(repo).List(userContext(userID), 20, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(7), resp.Total)
		assert.Equal(t, int64(3), resp.UnreadCount)
		require.Len(t, resp.Notifications, 1)
	})

	t.Run("실패: 인증 컨텍스트 없음", func(t *testing.T) {
		repo := &mockNotificationRepository{}
		_, err := newNotificationService(repo).List(context.Background(), 20, 0)

		var appErr *response.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, response.ErrCodeUnauthorized, appErr.Code)
	})
}

func TestNotificationServiceUnreadCount(t *testing.T) {
	userID := uuid.New()

	t.Run("성공: 캐시 없이 DB에서 조회", func(t *testing.T) {
		repo := &mockNotificationRepository{
			GetUnreadCountFunc: func(ctx context.Context, uid uuid.UUID) (int64, error) {
				return 5, nil
			},
		}

		count, err := newNotificationService(repo).UnreadCount(userContext(userID))
		require.NoError(t, err)
		assert.Equal(t, int64(5), count)
	})

	t.Run("성공: 인증 컨텍스트 없이 명시적 user id로 조회", func(t *testing.T) {
		repo := &mockNotificationRepository{
			GetUnreadCountFunc: func(ctx context.Context, uid uuid.UUID) (int64, error) {
				assert.Equal(t, userID, uid)
				return 2, nil
			},
		}

		count, err := newNotificationService(repo).GetUnreadCount(context.Background(), userID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})
}

// The unread poller consumes the service through job.UnreadCounter
var _ job.UnreadCounter = NotificationService(nil)

func TestNotificationServiceMarkAsRead(t *testing.T) {
	userID := uuid.New()

	t.Run("성공: 본인 알림 읽음 처리", func(t *testing.T) {
		notificationID := uuid.New()
		repo := &mockNotificationRepository{
			MarkAsReadFunc: func(ctx context.Context, id, uid uuid.UUID) error {
				assert.Equal(t, notificationID, id)
				assert.Equal(t, userID, uid)
				return nil
			},
		}

		err := newNotificationService(repo).MarkAsRead(userContext(userID), notificationID)
		assert.NoError(t, err)
	})

	t.Run("실패: 없는 알림은 NOT_FOUND", func(t *testing.T) {
		repo := &mockNotificationRepository{
			MarkAsReadFunc: func(ctx context.Context, id, uid uuid.UUID) error {
				return gorm.ErrRecordNotFound
			},
		}

		err := newNotificationService(repo).MarkAsRead(userContext(userID), uuid.New())
		var appErr *response.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, response.ErrCodeNotFound, appErr.Code)
	})
}

func TestNotificationServiceMarkAllAsRead(t *testing.T) {
	userID := uuid.New()

	t.Run("성공: 바뀐 행 수 반환", func(t *testing.T) {
		repo := &mockNotificationRepository{
			MarkAllAsReadFunc: func(ctx context.Context, uid uuid.UUID) (int64, error) {
				return 4, nil
			},
		}

		updated, err := newNotificationService(repo).MarkAllAsRead(userContext(userID))
		require.NoError(t, err)
		assert.Equal(t, int64(4), updated)
	})
}
