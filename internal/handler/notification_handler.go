package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"project-hub-api/internal/dto"
	"project-hub-api/internal/response"
	"project-hub-api/internal/service"
)

// NotificationHandler serves the caller's notification inbox
type NotificationHandler struct {
	service service.NotificationService
	logger  *zap.Logger
}

// NewNotificationHandler creates a notification handler
func NewNotificationHandler(service service.NotificationService, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{service: service, logger: logger}
}

// ListNotifications 알림 목록 조회
// @Summary 알림 목록 조회
// @Tags notifications
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} response.SuccessResponse
// @Router /notifications [get]
// @Security BearerAuth
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	list, err := h.service.List(c, limit, offset)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, list)
}

// GetUnreadCount 읽지 않은 알림 수 조회
// @Summary 읽지 않은 알림 수 조회
// @Description Polled by clients at a fixed interval
// @Tags notifications
// @Produce json
// @Success 200 {object} response.SuccessResponse
// @Router /notifications/unread-count [get]
// @Security BearerAuth
func (h *NotificationHandler) GetUnreadCount(c *gin.Context) {
	count, err := h.service.UnreadCount(c)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, dto.UnreadCountResponse{Count: count})
}

// MarkAsRead 알림 읽음 처리
// @Summary 알림 읽음 처리
// @Tags notifications
// @Param id path string true "Notification ID"
// @Success 200 {object} response.SuccessResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /notifications/{id}/read [patch]
// @Security BearerAuth
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.service.MarkAsRead(c, id); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, nil)
}

// MarkAllAsRead 모든 알림 읽음 처리
// @Summary 모든 알림 읽음 처리
// @Tags notifications
// @Produce json
// @Success 200 {object} response.SuccessResponse
// @Router /notifications/read-all [patch]
// @Security BearerAuth
func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	updated, err := h.service.MarkAllAsRead(c)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, gin.H{"updated": updated})
}

// DeleteNotification 알림 삭제
// @Summary 알림 삭제
// @Tags notifications
// @Param id path string true "Notification ID"
// @Success 204
// @Failure 404 {object} response.ErrorResponse
// @Router /notifications/{id} [delete]
// @Security BearerAuth
func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
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
