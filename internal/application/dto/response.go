// Package dto defines the HTTP request and response shapes.
package dto

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/seclearn/analytics/pkg/constants"
	"github.com/seclearn/analytics/pkg/errors"
)

// APIResponse is the envelope every endpoint returns.
type APIResponse struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     *ErrorDTO   `json:"error,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

// ErrorDTO carries a machine-readable error code plus a human message.
type ErrorDTO struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// SendSuccess writes a 200 envelope with the given payload.
func SendSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, &APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().Unix(),
	})
}

// SendCreated writes a 201 envelope with the given payload.
func SendCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, &APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().Unix(),
	})
}

// SendError maps the error to its HTTP status and writes an error envelope.
// Non-AppError values surface as opaque internal errors.
func SendError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	dto := &ErrorDTO{
		Code:    string(constants.ErrCodeInternal),
		Message: "internal error",
	}

	if appErr, ok := err.(*errors.AppError); ok {
		status = appErr.HTTPStatus
		dto.Code = string(appErr.Code)
		dto.Message = appErr.Message
		if md := appErr.Metadata(); len(md) > 0 {
			dto.Details = md
		}
	}

	c.JSON(status, &APIResponse{
		Success:   false,
		Error:     dto,
		Timestamp: time.Now().Unix(),
	})
}
