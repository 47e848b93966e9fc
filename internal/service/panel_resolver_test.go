package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"project-hub-api/internal/domain"
	"project-hub-api/internal/panel"
)

func TestPanelEntityResolver(t *testing.T) {
	id := uuid.New()

	t.Run("성공: 존재하는 엔티티는 key별로 조회", func(t *testing.T) {
		taskRepo := &mockTaskRepository{
			GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
				return &domain.Task{Title: "t"}, nil
			},
		}
		activityRepo := &mockActivityRepository{
			GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Activity, error) {
				return &domain.Activity{}, nil
			},
		}
		userRepo := &mockUserRepository{
			GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
				return &domain.User{ID: id}, nil
			},
		}
		fileRepo := &mockFileRepository{
			GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.File, error) {
				return &domain.File{Name: "f"}, nil
			},
		}
		r := NewPanelEntityResolver(taskRepo, activityRepo, userRepo, fileRepo)

		for _, key := range panel.DefaultKeys {
			found, err := r.Exists(context.Background(), key, id)
			require.NoError(t, err, key)
			assert.True(t, found, key)
		}
	})

	t.Run("성공: 삭제된 엔티티는 found=false, 에러 없음", func(t *testing.T) {
		taskRepo := &mockTaskRepository{
			GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}
		r := NewPanelEntityResolver(taskRepo, nil, nil, nil)

		found, err := r.Exists(context.Background(), panel.KeyTask, id)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("실패: 조회 에러는 그대로 전파", func(t *testing.T) {
		userRepo := &mockUserRepository{
			GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
				return nil, gorm.ErrInvalidDB
			},
		}
		r := NewPanelEntityResolver(nil, nil, userRepo, nil)

		found, err := r.Exists(context.Background(), panel.KeyUser, id)
		assert.ErrorIs(t, err, gorm.ErrInvalidDB)
		assert.False(t, found)
	})

	t.Run("성공: 알 수 없는 key는 found=false", func(t *testing.T) {
		r := NewPanelEntityResolver(nil, nil, nil, nil)

		found, err := r.Exists(context.Background(), "unknownId", id)
		require.NoError(t, err)
		assert.False(t, found)
	})
}
