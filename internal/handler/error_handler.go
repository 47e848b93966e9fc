package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"project-hub-api/internal/response"
)

// handleServiceError maps service errors to HTTP responses. AppErrors
// carry their own code; anything else is an opaque 500.
func handleServiceError(c *gin.Context, logger *zap.Logger, err error) {
	var appErr *response.AppError
	if errors.As(err, &appErr) {
		response.SendError(c, response.HTTPStatus(appErr.Code), appErr.Code, appErr.Message)
		return
	}

	logger.Error("unhandled service error",
		zap.String("path", c.Request.URL.Path),
		zap.Error(err))
	response.SendError(c, http.StatusInternalServerError, response.ErrCodeInternal, "internal server error")
}

// parseUUIDParam reads a uuid path parameter, sending a 400 on failure
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}
