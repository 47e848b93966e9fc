package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"project-hub-api/internal/domain"
)

// FileRepository defines data access for file metadata
type FileRepository interface {
	Create(ctx context.Context, file *domain.File) error
	CreateBatch(ctx context.Context, files []domain.File) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.File, error)
	GetByProject(ctx context.Context, projectID uuid.UUID) ([]domain.File, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type fileRepositoryImpl struct {
	db *gorm.DB
}

// NewFileRepository creates a new file repository
func NewFileRepository(db *gorm.DB) FileRepository {
	return &fileRepositoryImpl{db: db}
}

func (r *fileRepositoryImpl) Create(ctx context.Context, file *domain.File) error {
	return r.db.WithContext(ctx).Create(file).Error
}

func (r *fileRepositoryImpl) CreateBatch(ctx context.Context, files []domain.File) error {
	if len(files) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&files).Error
}

func (r *fileRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*domain.File, error) {
	var file domain.File
	err := r.db.WithContext(ctx).First(&file, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &file, nil
}

func (r *fileRepositoryImpl) GetByProject(ctx context.Context, projectID uuid.UUID) ([]domain.File, error) {
	var files []domain.File
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&files).Error
	return files, err
}

func (r *fileRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.File{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
