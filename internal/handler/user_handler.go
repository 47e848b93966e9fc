package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"project-hub-api/internal/dto"
	"project-hub-api/internal/response"
	"project-hub-api/internal/service"
)

// UserHandler serves user profile endpoints
type UserHandler struct {
	service service.UserService
	logger  *zap.Logger
}

// NewUserHandler creates a user handler
func NewUserHandler(service service.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{service: service, logger: logger}
}

// GetMe 내 프로필 조회
// @Summary 내 프로필 조회
// @Tags users
// @Produce json
// @Success 200 {object} response.SuccessResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /users/me [get]
// @Security BearerAuth
func (h *UserHandler) GetMe(c *gin.Context) {
	user, err := h.service.Me(c)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, user)
}

// UpdateMe 내 프로필 수정
// @Summary 내 프로필 수정
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.UpdateUserRequest true "Fields to update"
// @Success 200 {object} response.SuccessResponse
// @Router /users/me [put]
// @Security BearerAuth
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	user, err := h.service.UpdateMe(c, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, user)
}

// UploadAvatar 프로필 이미지 업로드
// @Summary 프로필 이미지 업로드
// @Description Upload an avatar image; the profile stores its canonical URL
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Param avatar formData file true "Avatar image"
// @Success 200 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Router /users/me/avatar [post]
// @Security BearerAuth
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "avatar file is required")
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "failed to open uploaded file")
		return
	}
	defer src.Close()

	user, err := h.service.UploadAvatar(c, fileHeader.Filename, fileHeader.Header.Get("Content-Type"), src)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, user)
}

// GetUser 사용자 조회
// @Summary 사용자 조회
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.SuccessResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /users/{id} [get]
// @Security BearerAuth
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	user, err := h.service.Get(c, id)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, user)
}

// ListUsers 사용자 목록 조회
// @Summary 사용자 목록 조회
// @Tags users
// @Produce json
// @Success 200 {object} response.SuccessResponse
// @Router /users [get]
// @Security BearerAuth
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.service.List(c)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, users)
}
