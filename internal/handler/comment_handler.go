package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"project-hub-api/internal/dto"
	"project-hub-api/internal/response"
	"project-hub-api/internal/service"
)

// CommentHandler serves comment endpoints
type CommentHandler struct {
	service service.CommentService
	logger  *zap.Logger
}

// NewCommentHandler creates a comment handler
func NewCommentHandler(service service.CommentService, logger *zap.Logger) *CommentHandler {
	return &CommentHandler{service: service, logger: logger}
}

// CreateComment 댓글 작성
// @Summary 댓글 작성
// @Description Post a comment; the task's assignee and creator are notified
// @Tags comments
// @Accept json
// @Produce json
// @Param request body dto.CreateCommentRequest true "Comment payload"
// @Success 201 {object} response.SuccessResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /comments [post]
// @Security BearerAuth
func (h *CommentHandler) CreateComment(c *gin.Context) {
	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	comment, err := h.service.Create(c, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, comment)
}

// ListComments 태스크 댓글 목록 조회
// @Summary 태스크 댓글 목록 조회
// @Tags comments
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} response.SuccessResponse
// @Router /tasks/{id}/comments [get]
// @Security BearerAuth
func (h *CommentHandler) ListComments(c *gin.Context) {
	taskID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	comments, err := h.service.ListByTask(c, taskID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, comments)
}

// UpdateComment 댓글 수정
// @Summary 댓글 수정
// @Tags comments
// @Accept json
// @Produce json
// @Param id path string true "Comment ID"
// @Param request body dto.UpdateCommentRequest true "New content"
// @Success 200 {object} response.SuccessResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /comments/{id} [put]
// @Security BearerAuth
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	comment, err := h.service.Update(c, id, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, comment)
}

// DeleteComment 댓글 삭제
// @Summary 댓글 삭제
// @Tags comments
// @Param id path string true "Comment ID"
// @Success 204
// @Failure 403 {object} response.ErrorResponse
// @Router /comments/{id} [delete]
// @Security BearerAuth
func (h *CommentHandler) DeleteComment(c *gin.Context) {
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
