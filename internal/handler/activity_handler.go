package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"project-hub-api/internal/response"
	"project-hub-api/internal/service"
)

// ActivityHandler serves activity log endpoints
type ActivityHandler struct {
	service service.ActivityService
	logger  *zap.Logger
}

// NewActivityHandler creates an activity handler
func NewActivityHandler(service service.ActivityService, logger *zap.Logger) *ActivityHandler {
	return &ActivityHandler{service: service, logger: logger}
}

// ListRecent 최근 활동 목록 조회
// @Summary 최근 활동 목록 조회
// @Tags activities
// @Produce json
// @Param limit query int false "Maximum rows" default(50)
// @Success 200 {object} response.SuccessResponse
// @Router /activities [get]
// @Security BearerAuth
func (h *ActivityHandler) ListRecent(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	activities, err := h.service.ListRecent(c, limit)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, activities)
}

// ListByProject 프로젝트 활동 목록 조회
// @Summary 프로젝트 활동 목록 조회
// @Tags activities
// @Produce json
// @Param id path string true "Project ID"
// @Param limit query int false "Maximum rows" default(50)
// @Success 200 {object} response.SuccessResponse
// @Router /projects/{id}/activities [get]
// @Security BearerAuth
func (h *ActivityHandler) ListByProject(c *gin.Context) {
	projectID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	activities, err := h.service.ListByProject(c, projectID, limit)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, activities)
}

// ListByUser 사용자 활동 목록 조회
// @Summary 사용자 활동 목록 조회
// @Tags activities
// @Produce json
// @Param id path string true "User ID"
// @Param limit query int false "Maximum rows" default(50)
// @Success 200 {object} response.SuccessResponse
// @Router /users/{id}/activities [get]
// @Security BearerAuth
func (h *ActivityHandler) ListByUser(c *gin.Context) {
	userID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	activities, err := h.service.ListByUser(c, userID, limit)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, activities)
}
