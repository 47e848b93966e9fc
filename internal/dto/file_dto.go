package dto

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"project-hub-api/internal/domain"
)

// UploadFileRequest carries metadata for one uploaded file
// @Description File metadata registration request
type UploadFileRequest struct {
	ProjectID   uuid.UUID `json:"projectId" binding:"required"`
	Name        string    `json:"name" binding:"required,max=255"`
	FileType    string    `json:"fileType"`
	SizeBytes   int64     `json:"sizeBytes" binding:"min=0"`
	IsPublic    bool      `json:"isPublic"`
	Description string    `json:"description"`
}

// FileResponse is the view model for a file. URL is only populated for
// public files; private files go through the signed download endpoint.
type FileResponse struct {
	ID          uuid.UUID `json:"id"`
	ProjectID   uuid.UUID `json:"projectId"`
	UploadedBy  uuid.UUID `json:"uploadedBy"`
	Name        string    `json:"name"`
	FileType    string    `json:"fileType"`
	SizeBytes   int64     `json:"sizeBytes"`
	Size        string    `json:"size"`
	SpaceKey    string    `json:"spaceKey,omitempty"`
	SpaceName   string    `json:"spaceName,omitempty"`
	IsPublic    bool      `json:"isPublic"`
	IsImage     bool      `json:"isImage"`
	URL         string    `json:"url,omitempty"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToFileResponse maps a domain file to its view model
func ToFileResponse(f *domain.File, url string) FileResponse {
	return FileResponse{
		ID:          f.ID,
		ProjectID:   f.ProjectID,
		UploadedBy:  f.UploadedBy,
		Name:        f.Name,
		FileType:    f.FileType,
		SizeBytes:   f.SizeBytes,
		Size:        FormatSize(f.SizeBytes),
		SpaceKey:    f.SpaceKey,
		SpaceName:   f.SpaceName,
		IsPublic:    f.IsPublic,
		IsImage:     f.IsImage(),
		URL:         url,
		Description: f.Description,
		CreatedAt:   f.CreatedAt,
	}
}

// FormatSize renders a byte count as a human readable string
func FormatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
