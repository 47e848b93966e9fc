package domain

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// File represents file metadata for a blob stored in object storage
type File struct {
	BaseModel
	ProjectID   uuid.UUID `gorm:"type:uuid;not null;index:idx_files_project_id" json:"project_id"`
	UploadedBy  uuid.UUID `gorm:"type:uuid;not null;index:idx_files_uploaded_by" json:"uploaded_by"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	FileType    string    `gorm:"type:varchar(50)" json:"file_type"`
	SizeBytes   int64     `gorm:"not null" json:"size_bytes"`
	FileKey     string    `gorm:"type:varchar(512);not null;uniqueIndex:uq_files_file_key" json:"file_key"`
	SpaceKey    string    `gorm:"type:varchar(255)" json:"space_key"`
	SpaceName   string    `gorm:"type:varchar(255)" json:"space_name"`
	IsPublic    bool      `gorm:"not null;default:false" json:"is_public"`
	Description string    `gorm:"type:text" json:"description"`
	Project     Project   `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"project,omitempty"`
}

// GetExtension returns the lowercased file extension including the dot
func (f *File) GetExtension() string {
	return strings.ToLower(filepath.Ext(f.Name))
}

// IsImage returns true if the file is an image
func (f *File) IsImage() bool {
	switch f.GetExtension() {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp", ".svg", ".ico":
		return true
	}
	return false
}

// TableName specifies the table name for File
func (File) TableName() string {
	return "files"
}
