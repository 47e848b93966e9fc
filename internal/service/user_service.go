package service

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"project-hub-api/internal/client"
	"project-hub-api/internal/dto"
	"project-hub-api/internal/events"
	"project-hub-api/internal/repository"
	"project-hub-api/internal/response"
)

// UserService manages user profiles
type UserService interface {
	Me(ctx context.Context) (*dto.UserResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error)
	List(ctx context.Context) ([]dto.UserResponse, error)
	UpdateMe(ctx context.Context, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	UploadAvatar(ctx context.Context, fileName, contentType string, body io.Reader) (*dto.UserResponse, error)
	TouchLastActive(ctx context.Context, id uuid.UUID)
}

type userServiceImpl struct {
	repo   repository.UserRepository
	s3     client.S3ClientInterface
	bus    *events.Bus
	logger *zap.Logger
}

// NewUserService creates a user service
func NewUserService(repo repository.UserRepository, s3 client.S3ClientInterface, bus *events.Bus, logger *zap.Logger) UserService {
	return &userServiceImpl{repo: repo, s3: s3, bus: bus, logger: logger}
}

func (s *userServiceImpl) Me(ctx context.Context) (*dto.UserResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, userID)
}

func (s *userServiceImpl) Get(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, wrapNotFound(err, "user not found")
	}
	// A profile fetch doubles as the activity signal for that profile
	s.TouchLastActive(ctx, id)
	resp := dto.ToUserResponse(user)
	return &resp, nil
}

func (s *userServiceImpl) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, dto.ToUserResponse(&users[i]))
	}
	return out, nil
}

func (s *userServiceImpl) UpdateMe(ctx context.Context, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, wrapNotFound(err, "user not found")
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.Department != nil {
		user.Department = *req.Department
	}
	if req.Team != nil {
		user.Team = *req.Team
	}
	if req.Location != nil {
		user.Location = *req.Location
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Skills != nil {
		data, merr := json.Marshal(req.Skills)
		if merr == nil {
			user.Skills = datatypes.JSON(data)
		}
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	if s.bus != nil {
		s.bus.Publish(events.UserChanged{UserID: user.ID})
	}

	resp := dto.ToUserResponse(user)
	return &resp, nil
}

// UploadAvatar stores the caller's avatar image in object storage and
// saves its canonical URL on the profile
func (s *userServiceImpl) UploadAvatar(ctx context.Context, fileName, contentType string, body io.Reader) (*dto.UserResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if s.s3 == nil {
		return nil, response.NewInternalError("object storage is not configured", nil)
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, wrapNotFound(err, "user not found")
	}

	avatarKey := s.s3.GenerateAvatarKey(userID, fileName)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if err := s.s3.UploadFile(ctx, avatarKey, body, contentType); err != nil {
		return nil, err
	}

	user.Avatar = s.s3.GetFileURL(avatarKey)
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	if s.bus != nil {
		s.bus.Publish(events.UserChanged{UserID: user.ID})
	}

	resp := dto.ToUserResponse(user)
	return &resp, nil
}

// TouchLastActive is best-effort; failures are only logged
func (s *userServiceImpl) TouchLastActive(ctx context.Context, id uuid.UUID) {
	if err := s.repo.TouchLastActive(ctx, id, time.Now().UTC()); err != nil {
		s.logger.Debug("failed to touch last_active",
			zap.String("user_id", id.String()),
			zap.Error(err))
	}
}
