package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"project-hub-api/internal/dto"
	"project-hub-api/internal/response"
	"project-hub-api/internal/service"
)

// ProjectHandler serves project and membership endpoints
type ProjectHandler struct {
	service service.ProjectService
	logger  *zap.Logger
}

// NewProjectHandler creates a project handler
func NewProjectHandler(service service.ProjectService, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{service: service, logger: logger}
}

// CreateProject 프로젝트 생성
// @Summary 프로젝트 생성
// @Description Create a new project owned by the caller
// @Tags projects
// @Accept json
// @Produce json
// @Param request body dto.CreateProjectRequest true "Project payload"
// @Success 201 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Router /projects [post]
// @Security BearerAuth
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	project, err := h.service.Create(c, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, project)
}

// GetProject 프로젝트 조회
// @Summary 프로젝트 조회
// @Description Get a single project with its members
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} response.SuccessResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /projects/{id} [get]
// @Security BearerAuth
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	project, err := h.service.Get(c, id)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, project)
}

// ListProjects 프로젝트 목록 조회
// @Summary 프로젝트 목록 조회
// @Description List projects, optionally filtered by status or membership
// @Tags projects
// @Produce json
// @Param status query string false "Project status filter"
// @Param mine query bool false "Only projects the caller belongs to"
// @Success 200 {object} response.SuccessResponse
// @Router /projects [get]
// @Security BearerAuth
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	var status *string
	if raw := c.Query("status"); raw != "" {
		status = &raw
	}
	mine := c.Query("mine") == "true"

	projects, err := h.service.List(c, status, mine)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, projects)
}

// UpdateProject 프로젝트 수정
// @Summary 프로젝트 수정
// @Description Update project fields
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param request body dto.UpdateProjectRequest true "Fields to update"
// @Success 200 {object} response.SuccessResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /projects/{id} [put]
// @Security BearerAuth
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	project, err := h.service.Update(c, id, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, project)
}

// DeleteProject 프로젝트 삭제
// @Summary 프로젝트 삭제
// @Description Delete a project (owner only)
// @Tags projects
// @Param id path string true "Project ID"
// @Success 204
// @Failure 403 {object} response.ErrorResponse
// @Router /projects/{id} [delete]
// @Security BearerAuth
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
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

// ListMembers 프로젝트 멤버 목록 조회
// @Summary 프로젝트 멤버 목록 조회
// @Description List project members; historic duplicates are returned as stored
// @Tags members
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} response.SuccessResponse
// @Router /projects/{id}/members [get]
// @Security BearerAuth
func (h *ProjectHandler) ListMembers(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	members, err := h.service.ListMembers(c, id)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, members)
}

// AddMember 프로젝트 멤버 추가
// @Summary 프로젝트 멤버 추가
// @Description Add a member to a project
// @Tags members
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param request body dto.AddMemberRequest true "Member payload"
// @Success 201 {object} response.SuccessResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /projects/{id}/members [post]
// @Security BearerAuth
func (h *ProjectHandler) AddMember(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	member, err := h.service.AddMember(c, id, &req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, member)
}

// RemoveMember 프로젝트 멤버 제거
// @Summary 프로젝트 멤버 제거
// @Description Remove a member from a project
// @Tags members
// @Param id path string true "Project ID"
// @Param userId path string true "User ID"
// @Success 204
// @Failure 403 {object} response.ErrorResponse
// @Router /projects/{id}/members/{userId} [delete]
// @Security BearerAuth
func (h *ProjectHandler) RemoveMember(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := parseUUIDParam(c, "userId")
	if !ok {
		return
	}
	if err := h.service.RemoveMember(c, id, userID); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	response.SendNoContent(c)
}
