package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"project-hub-api/internal/client"
	"project-hub-api/internal/response"
)

// EmailHandler serves explicit email trigger endpoints. Delivery is
// best-effort: the endpoints succeed even when the relay is down.
type EmailHandler struct {
	email  client.EmailClientInterface
	logger *zap.Logger
}

// NewEmailHandler creates an email handler
func NewEmailHandler(email client.EmailClientInterface, logger *zap.Logger) *EmailHandler {
	return &EmailHandler{email: email, logger: logger}
}

type inviteEmailRequest struct {
	To          string `json:"to" binding:"required,email"`
	ProjectName string `json:"projectName" binding:"required"`
	InviterName string `json:"inviterName" binding:"required"`
}

type welcomeEmailRequest struct {
	To   string `json:"to" binding:"required,email"`
	Name string `json:"name" binding:"required"`
}

// SendInvite 초대 메일 발송
// @Summary 초대 메일 발송
// @Tags emails
// @Accept json
// @Produce json
// @Param request body inviteEmailRequest true "Invite payload"
// @Success 202 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Router /emails/invite [post]
// @Security BearerAuth
func (h *EmailHandler) SendInvite(c *gin.Context) {
	var req inviteEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	subject := fmt.Sprintf("%s invited you to %s", req.InviterName, req.ProjectName)
	body := fmt.Sprintf("%s has invited you to join the project %s.", req.InviterName, req.ProjectName)
	_ = h.email.SendNotificationEmail(c, req.To, subject, body)

	response.SendSuccess(c, http.StatusAccepted, nil)
}

// SendWelcome 환영 메일 발송
// @Summary 환영 메일 발송
// @Tags emails
// @Accept json
// @Produce json
// @Param request body welcomeEmailRequest true "Welcome payload"
// @Success 202 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Router /emails/welcome [post]
// @Security BearerAuth
func (h *EmailHandler) SendWelcome(c *gin.Context) {
	var req welcomeEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	body := fmt.Sprintf("Welcome aboard, %s!", req.Name)
	_ = h.email.SendNotificationEmail(c, req.To, "Welcome to Project Hub", body)

	response.SendSuccess(c, http.StatusAccepted, nil)
}
