package service

import (
	"context"
	"io"
	"path"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"project-hub-api/internal/client"
	"project-hub-api/internal/domain"
	"project-hub-api/internal/dto"
	"project-hub-api/internal/repository"
	"project-hub-api/internal/response"
)

// FileService manages file metadata and the backing object storage
type FileService interface {
	Upload(ctx context.Context, req *dto.UploadFileRequest, body io.Reader) (*dto.FileResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.FileResponse, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]dto.FileResponse, error)
	GetDownloadURL(ctx context.Context, id uuid.UUID) (string, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type fileServiceImpl struct {
	repo        repository.FileRepository
	projectRepo repository.ProjectRepository
	s3          client.S3ClientInterface
	fanout      FanoutService
	activity    ActivityService
	logger      *zap.Logger
}

// NewFileService creates a file service
func NewFileService(
	repo repository.FileRepository,
	projectRepo repository.ProjectRepository,
	s3 client.S3ClientInterface,
	fanout FanoutService,
	activity ActivityService,
	logger *zap.Logger,
) FileService {
	return &fileServiceImpl{
		repo:        repo,
		projectRepo: projectRepo,
		s3:          s3,
		fanout:      fanout,
		activity:    activity,
		logger:      logger,
	}
}

func (s *fileServiceImpl) Upload(ctx context.Context, req *dto.UploadFileRequest, body io.Reader) (*dto.FileResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := s.projectRepo.GetByID(ctx, req.ProjectID); err != nil {
		return nil, wrapNotFound(err, "project not found")
	}

	fileKey := s.s3.GenerateFileKey(req.ProjectID, req.Name)
	if body != nil {
		contentType := req.FileType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		if err := s.s3.UploadFile(ctx, fileKey, body, contentType); err != nil {
			return nil, err
		}
	}

	file := &domain.File{
		ProjectID:   req.ProjectID,
		UploadedBy:  userID,
		Name:        req.Name,
		FileType:    req.FileType,
		SizeBytes:   req.SizeBytes,
		FileKey:     fileKey,
		SpaceKey:    path.Dir(fileKey),
		SpaceName:   s.s3.BucketName(),
		IsPublic:    req.IsPublic,
		Description: req.Description,
	}
	if file.FileType == "" {
		file.FileType = file.GetExtension()
	}
	if err := s.repo.Create(ctx, file); err != nil {
		return nil, err
	}

	if err := s.fanout.FileUploaded(ctx, file, userID); err != nil {
		return nil, err
	}

	if s.activity != nil {
		aerr := s.activity.Record(ctx, &domain.Activity{
			UserID:     userID,
			ProjectID:  file.ProjectID,
			Action:     domain.ActivityActionUploaded,
			TargetType: domain.ActivityTargetFile,
			TargetID:   file.ID,
			TargetName: file.Name,
		})
		if aerr != nil {
			s.logger.Warn("failed to record upload activity", zap.Error(aerr))
		}
	}

	resp := dto.ToFileResponse(file, s.directURL(file))
	return &resp, nil
}

func (s *fileServiceImpl) Get(ctx context.Context, id uuid.UUID) (*dto.FileResponse, error) {
	file, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, wrapNotFound(err, "file not found")
	}
	resp := dto.ToFileResponse(file, s.directURL(file))
	return &resp, nil
}

func (s *fileServiceImpl) ListByProject(ctx context.Context, projectID uuid.UUID) ([]dto.FileResponse, error) {
	if _, err := s.projectRepo.GetByID(ctx, projectID); err != nil {
		return nil, wrapNotFound(err, "project not found")
	}
	files, err := s.repo.GetByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FileResponse, 0, len(files))
	for i := range files {
		out = append(out, dto.ToFileResponse(&files[i], s.directURL(&files[i])))
	}
	return out, nil
}

// directURL returns the canonical object URL for public files. Private
// files carry no direct URL; callers go through GetDownloadURL.
func (s *fileServiceImpl) directURL(file *domain.File) string {
	if !file.IsPublic {
		return ""
	}
	return s.s3.GetFileURL(file.FileKey)
}

// GetDownloadURL resolves a public file to its canonical URL and a
// private file to a short-lived presigned URL
func (s *fileServiceImpl) GetDownloadURL(ctx context.Context, id uuid.UUID) (string, error) {
	file, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", wrapNotFound(err, "file not found")
	}
	if file.IsPublic {
		return s.s3.GetFileURL(file.FileKey), nil
	}
	return s.s3.GeneratePresignedURL(ctx, file.FileKey)
}

// Delete removes the metadata row. A failed object deletion in storage
// is logged and swallowed; an orphaned blob is preferable to a file
// the user cannot delete.
func (s *fileServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}

	file, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return wrapNotFound(err, "file not found")
	}
	if file.UploadedBy != userID {
		member, merr := s.projectRepo.GetMember(ctx, file.ProjectID, userID)
		if merr != nil || !member.RoleName.CanManage() {
			return response.NewForbiddenError("only the uploader or a project manager can delete a file")
		}
	}

	if err := s.s3.DeleteFile(ctx, file.FileKey); err != nil {
		s.logger.Warn("failed to delete object from storage",
			zap.String("file_key", file.FileKey),
			zap.Error(err))
	}

	return s.repo.Delete(ctx, id)
}
