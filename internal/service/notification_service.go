package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"project-hub-api/internal/dto"
	"project-hub-api/internal/repository"
)

const unreadCacheTTL = 60 * time.Second

// NotificationService exposes the caller's notification inbox.
// GetUnreadCount takes an explicit user id so background jobs can share
// the cached path.
type NotificationService interface {
	List(ctx context.Context, limit, offset int) (*dto.NotificationListResponse, error)
	UnreadCount(ctx context.Context) (int64, error)
	GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkAsRead(ctx context.Context, id uuid.UUID) error
	MarkAllAsRead(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	InvalidateUnreadCount(ctx context.Context, userID uuid.UUID)
}

type notificationServiceImpl struct {
	repo   repository.NotificationRepository
	redis  *redis.Client
	logger *zap.Logger
}

// NewNotificationService creates a notification service. redis may be
// nil, in which case unread counts always hit the database.
func NewNotificationService(repo repository.NotificationRepository, redisClient *redis.Client, logger *zap.Logger) NotificationService {
	return &notificationServiceImpl{
		repo:   repo,
		redis:  redisClient,
		logger: logger,
	}
}

func unreadCacheKey(userID uuid.UUID) string {
	return fmt.Sprintf("unread:%s", userID)
}

func (s *notificationServiceImpl) List(ctx context.Context, limit, offset int) (*dto.NotificationListResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	notifications, total, err := s.repo.GetByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	unread, err := s.repo.GetUnreadCount(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &dto.NotificationListResponse{
		Notifications: make([]dto.NotificationResponse, 0, len(notifications)),
		Total:         total,
		UnreadCount:   unread,
	}
	for i := range notifications {
		resp.Notifications = append(resp.Notifications, dto.ToNotificationResponse(&notifications[i]))
	}
	return resp, nil
}

// UnreadCount returns the caller's unread count
func (s *notificationServiceImpl) UnreadCount(ctx context.Context) (int64, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return 0, err
	}
	return s.GetUnreadCount(ctx, userID)
}

// GetUnreadCount serves the unread count for any user, from redis when
// a fresh cached value exists
func (s *notificationServiceImpl) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, unreadCacheKey(userID)).Result(); err == nil {
			if count, parseErr := strconv.ParseInt(cached, 10, 64); parseErr == nil {
				return count, nil
			}
		}
	}

	count, err := s.repo.GetUnreadCount(ctx, userID)
	if err != nil {
		return 0, err
	}

	if s.redis != nil {
		if err := s.redis.Set(ctx, unreadCacheKey(userID), count, unreadCacheTTL).Err(); err != nil {
			s.logger.Warn("failed to cache unread count", zap.Error(err))
		}
	}
	return count, nil
}

func (s *notificationServiceImpl) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}
	if err := s.repo.MarkAsRead(ctx, id, userID); err != nil {
		return wrapNotFound(err, "notification not found")
	}
	s.InvalidateUnreadCount(ctx, userID)
	return nil
}

func (s *notificationServiceImpl) MarkAllAsRead(ctx context.Context) (int64, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return 0, err
	}
	updated, err := s.repo.MarkAllAsRead(ctx, userID)
	if err != nil {
		return 0, err
	}
	s.InvalidateUnreadCount(ctx, userID)
	return updated, nil
}

func (s *notificationServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return wrapNotFound(err, "notification not found")
	}
	s.InvalidateUnreadCount(ctx, userID)
	return nil
}

// InvalidateUnreadCount drops the cached unread count for a user.
// Safe to call for any user, not just the request caller.
func (s *notificationServiceImpl) InvalidateUnreadCount(ctx context.Context, userID uuid.UUID) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, unreadCacheKey(userID)).Err(); err != nil {
		s.logger.Warn("failed to invalidate unread count cache",
			zap.String("user_id", userID.String()),
			zap.Error(err))
	}
}
