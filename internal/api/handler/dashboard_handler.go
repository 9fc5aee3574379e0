package handler

import (
	"log/slog"
	"net/http"

	"github.com/cuongbtq/jobboard/internal/api/dto"
	"github.com/cuongbtq/jobboard/internal/api/service"
	"github.com/gin-gonic/gin"
)

// DashboardHandler serves the candidate overview pages
type DashboardHandler struct {
	logger    *slog.Logger
	dashboard *service.Dashboard
}

func NewDashboardHandler(deps *Dependencies) *DashboardHandler {
	return &DashboardHandler{
		logger:    deps.Logger,
		dashboard: deps.Dashboard,
	}
}

// GetStats handles GET /api/v1/dashboard/stats
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.dashboard.Stats(c.Request.Context(), currentCandidate(c))
	if err != nil {
		writeError(c, h.logger, "Failed to load dashboard", err)
		return
	}

	byStatus := make(map[string]int, len(stats.ByStatus))
	for status, n := range stats.ByStatus {
		byStatus[string(status)] = n
	}

	c.JSON(http.StatusOK, dto.StatsResponse{
		Applications: stats.Applications,
		SavedJobs:    stats.SavedJobs,
		Interviews:   stats.Interviews,
		TotalJobs:    stats.TotalJobs,
		ByStatus:     byStatus,
	})
}

// GetApplicationTracker handles GET /api/v1/dashboard/applications
func (h *DashboardHandler) GetApplicationTracker(c *gin.Context) {
	tracked, err := h.dashboard.ApplicationTracker(c.Request.Context(), currentCandidate(c))
	if err != nil {
		writeError(c, h.logger, "Failed to load applications", err)
		return
	}

	out := make([]dto.TrackedApplicationDTO, len(tracked))
	for i, t := range tracked {
		out[i] = dto.TrackedApplicationDTO{
			ApplicationDTO: dto.NewApplicationDTO(t.Application),
			Job:            dto.NewJobDTO(t.Job),
		}
	}
	c.JSON(http.StatusOK, gin.H{"applications": out})
}

// GetSavedJobs handles GET /api/v1/dashboard/saved-jobs
func (h *DashboardHandler) GetSavedJobs(c *gin.Context) {
	views, err := h.dashboard.SavedList(c.Request.Context(), currentCandidate(c))
	if err != nil {
		writeError(c, h.logger, "Failed to load saved jobs", err)
		return
	}

	out := make([]dto.SavedJobViewDTO, len(views))
	for i, v := range views {
		out[i] = dto.SavedJobViewDTO{
			SavedJobDTO: dto.NewSavedJobDTO(v.SavedJob),
			Job:         dto.NewJobDTO(v.Job),
		}
	}
	c.JSON(http.StatusOK, gin.H{"saved_jobs": out})
}
