package handler

import (
	"log/slog"
	"net/http"

	"github.com/cuongbtq/jobboard/internal/api/dto"
	"github.com/cuongbtq/jobboard/internal/api/service"
	"github.com/gin-gonic/gin"
)

// ApplicationHandler handles application and interview requests
type ApplicationHandler struct {
	logger       *slog.Logger
	applications *service.ApplicationRepository
}

func NewApplicationHandler(deps *Dependencies) *ApplicationHandler {
	return &ApplicationHandler{
		logger:       deps.Logger,
		applications: deps.Applications,
	}
}

// CreateApplication handles POST /api/v1/applications
// Submits an application for the calling candidate
func (h *ApplicationHandler) CreateApplication(c *gin.Context) {
	var req dto.CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, h.logger, err)
		return
	}

	app, err := h.applications.Create(c.Request.Context(), req.JobID, currentCandidate(c), req.Notes)
	if err != nil {
		writeError(c, h.logger, "Failed to submit application", err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewApplicationDTO(*app))
}

// ListApplications handles GET /api/v1/applications
func (h *ApplicationHandler) ListApplications(c *gin.Context) {
	apps, err := h.applications.ListByCandidate(c.Request.Context(), currentCandidate(c))
	if err != nil {
		writeError(c, h.logger, "Failed to list applications", err)
		return
	}

	c.JSON(http.StatusOK, dto.ListApplicationsResponse{Applications: dto.NewApplicationDTOs(apps)})
}

// GetApplication handles GET /api/v1/applications/:id
func (h *ApplicationHandler) GetApplication(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	app, err := h.applications.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, "Failed to get application", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewApplicationDTO(*app))
}

// UpdateStatus handles PATCH /api/v1/applications/:id/status
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, h.logger, err)
		return
	}

	app, err := h.applications.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		writeError(c, h.logger, "Failed to update status", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewApplicationDTO(*app))
}

// ScheduleInterview handles POST /api/v1/applications/:id/interview
func (h *ApplicationHandler) ScheduleInterview(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req dto.ScheduleInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, h.logger, err)
		return
	}

	app, err := h.applications.ScheduleInterview(c.Request.Context(), id, req.ToInterview())
	if err != nil {
		writeError(c, h.logger, "Failed to schedule interview", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewApplicationDTO(*app))
}

// UpdateInterview handles PATCH /api/v1/applications/:id/interview
func (h *ApplicationHandler) UpdateInterview(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, h.logger, err)
		return
	}

	app, err := h.applications.UpdateInterview(c.Request.Context(), id, req.ToPatch())
	if err != nil {
		writeError(c, h.logger, "Failed to update interview", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewApplicationDTO(*app))
}

// ListUpcomingInterviews handles GET /api/v1/applications/interviews/upcoming
func (h *ApplicationHandler) ListUpcomingInterviews(c *gin.Context) {
	apps, err := h.applications.ListUpcomingInterviews(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, "Failed to list interviews", err)
		return
	}

	c.JSON(http.StatusOK, dto.ListApplicationsResponse{Applications: dto.NewApplicationDTOs(apps)})
}

// DeleteApplication handles DELETE /api/v1/applications/:id
func (h *ApplicationHandler) DeleteApplication(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.applications.Delete(c.Request.Context(), id); err != nil {
		writeError(c, h.logger, "Failed to delete application", err)
		return
	}

	c.Status(http.StatusNoContent)
}
