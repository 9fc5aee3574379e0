package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cuongbtq/jobboard/internal/api/domain"
	"github.com/gin-gonic/gin"
)

// errorStatus maps domain errors to HTTP status codes
func errorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrFailedPrecondition):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// writeError answers with the mapped status. Internal errors are logged and
// replaced by msg so storage details never reach the client.
func writeError(c *gin.Context, logger *slog.Logger, msg string, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		logger.Error(msg,
			slog.String("path", c.Request.URL.Path),
			slog.Any("error", err),
		)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	logger.Debug(msg,
		slog.Int("status", status),
		slog.String("error", err.Error()),
	)
	c.JSON(status, gin.H{"error": err.Error()})
}

func writeBindError(c *gin.Context, logger *slog.Logger, err error) {
	logger.Debug("Invalid request body", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, gin.H{
		"error": fmt.Sprintf("Invalid request body: %v", err),
	})
}

// idParam reads a positive integer path parameter; on failure it has already responded
func idParam(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("%s must be a positive integer", name),
		})
		return 0, false
	}
	return id, true
}
