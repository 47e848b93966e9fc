package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"project-hub-api/internal/dto"
	"project-hub-api/internal/response"
	"project-hub-api/internal/service"
)

// FileHandler serves file endpoints
type FileHandler struct {
	service service.FileService
	logger  *zap.Logger
}

// NewFileHandler creates a file handler
func NewFileHandler(service service.FileService, logger *zap.Logger) *FileHandler {
	return &FileHandler{service: service, logger: logger}
}

// UploadFile 파일 업로드
// @Summary 파일 업로드
// @Description Upload a file; every unique project member is notified once
// @Tags files
// @Accept multipart/form-data
// @Produce json
// @Param projectId formData string true "Project ID"
// @Param description formData string false "File description"
// @Param isPublic formData bool false "Public files expose a canonical URL"
// @Param file formData file true "File content"
// @Success 201 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Router /files [post]
// @Security BearerAuth
func (h *FileHandler) UploadFile(c *gin.Context) {
	projectID, err := uuid.Parse(c.PostForm("projectId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "invalid projectId")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "file is required")
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "failed to open uploaded file")
		return
	}
	defer src.Close()

	req := dto.UploadFileRequest{
		ProjectID:   projectID,
		Name:        fileHeader.Filename,
		FileType:    fileHeader.Header.Get("Content-Type"),
		SizeBytes:   fileHeader.Size,
		IsPublic:    c.PostForm("isPublic") == "true",
		Description: c.PostForm("description"),
	}

	file, err := h.service.Upload(c, &req, src)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, file)
}

// GetFile 파일 메타데이터 조회
// @Summary 파일 메타데이터 조회
// @Tags files
// @Produce json
// @Param id path string true "File ID"
// @Success 200 {object} response.SuccessResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /files/{id} [get]
// @Security BearerAuth
func (h *FileHandler) GetFile(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	file, err := h.service.Get(c, id)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, file)
}

// ListFiles 프로젝트 파일 목록 조회
// @Summary 프로젝트 파일 목록 조회
// @Tags files
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} response.SuccessResponse
// @Router /projects/{id}/files [get]
// @Security BearerAuth
func (h *FileHandler) ListFiles(c *gin.Context) {
	projectID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	files, err := h.service.ListByProject(c, projectID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, files)
}

// GetDownloadURL 파일 다운로드 URL 발급
// @Summary 파일 다운로드 URL 발급
// @Description Issue a short-lived presigned download URL
// @Tags files
// @Produce json
// @Param id path string true "File ID"
// @Success 200 {object} response.SuccessResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /files/{id}/download [get]
// @Security BearerAuth
func (h *FileHandler) GetDownloadURL(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	url, err := h.service.GetDownloadURL(c, id)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, gin.H{"url": url})
}

// DeleteFile 파일 삭제
// @Summary 파일 삭제
// @Description Delete a file; a storage deletion failure does not block removal
// @Tags files
// @Param id path string true "File ID"
// @Success 204
// @Failure 403 {object} response.ErrorResponse
// @Router /files/{id} [delete]
// @Security BearerAuth
func (h *FileHandler) DeleteFile(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c, id); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendNoContent(c)
}
