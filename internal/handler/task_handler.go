package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"project-hub-api/internal/domain"
	"project-hub-api/internal/dto"
	"project-hub-api/internal/repository"
	"project-hub-api/internal/response"
	"project-hub-api/internal/service"
)

// TaskHandler serves task endpoints
type TaskHandler struct {
	service service.TaskService
	logger  *zap.Logger
}

// NewTaskHandler creates a task handler
func NewTaskHandler(service service.TaskService, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{service: service, logger: logger}
}

// CreateTask 태스크 생성
// @Summary 태스크 생성
// @Description Create a task; assigning it notifies the assignee
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body dto.CreateTaskRequest true "Task payload"
// @Success 201 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Router /tasks [post]
// @Security BearerAuth
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	task, err := h.service.Create(c, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, task)
}

// GetTask 태스크 조회
// @Summary 태스크 조회
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} response.SuccessResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /tasks/{id} [get]
// @Security BearerAuth
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	task, err := h.service.Get(c, id)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, task)
}

// ListTasks 태스크 목록 조회
// @Summary 태스크 목록 조회
// @Description List tasks filtered by project, assignee, status or priority
// @Tags tasks
// @Produce json
// @Param projectId query string false "Project ID"
// @Param assigneeId query string false "Assignee ID"
// @Param status query string false "Task status"
// @Param priority query string false "Task priority"
// @Success 200 {object} response.SuccessResponse
// @Router /tasks [get]
// @Security BearerAuth
func (h *TaskHandler) ListTasks(c *gin.Context) {
	var filter repository.TaskFilter

	if raw := c.Query("projectId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "invalid projectId")
			return
		}
		filter.ProjectID = &id
	}
	if raw := c.Query("assigneeId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "invalid assigneeId")
			return
		}
		filter.AssigneeID = &id
	}
	if raw := c.Query("status"); raw != "" {
		st := domain.TaskStatus(raw)
		filter.Status = &st
	}
	if raw := c.Query("priority"); raw != "" {
		p := domain.Priority(raw)
		filter.Priority = &p
	}

	tasks, err := h.service.List(c, filter)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, tasks)
}

// UpdateTask 태스크 수정
// @Summary 태스크 수정
// @Description Update task fields; reassignment notifies the new assignee
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body dto.UpdateTaskRequest true "Fields to update"
// @Success 200 {object} response.SuccessResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /tasks/{id} [put]
// @Security BearerAuth
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	task, err := h.service.Update(c, id, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, task)
}

// DeleteTask 태스크 삭제
// @Summary 태스크 삭제
// @Tags tasks
// @Param id path string true "Task ID"
// @Success 204
// @Failure 403 {object} response.ErrorResponse
// @Router /tasks/{id} [delete]
// @Security BearerAuth
func (h *TaskHandler) DeleteTask(c *gin.Context) {
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
