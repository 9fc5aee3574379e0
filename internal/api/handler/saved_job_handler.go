package handler

import (
	"log/slog"
	"net/http"

	"github.com/cuongbtq/jobboard/internal/api/dto"
	"github.com/cuongbtq/jobboard/internal/api/service"
	"github.com/gin-gonic/gin"
)

// SavedJobHandler handles the caller's bookmarks
type SavedJobHandler struct {
	logger    *slog.Logger
	savedJobs *service.SavedJobRepository
}

func NewSavedJobHandler(deps *Dependencies) *SavedJobHandler {
	return &SavedJobHandler{
		logger:    deps.Logger,
		savedJobs: deps.SavedJobs,
	}
}

// ListSavedJobs handles GET /api/v1/saved-jobs
func (h *SavedJobHandler) ListSavedJobs(c *gin.Context) {
	saved, err := h.savedJobs.List(c.Request.Context(), currentCandidate(c))
	if err != nil {
		writeError(c, h.logger, "Failed to list saved jobs", err)
		return
	}

	out := make([]dto.SavedJobDTO, len(saved))
	for i, sj := range saved {
		out[i] = dto.NewSavedJobDTO(sj)
	}
	c.JSON(http.StatusOK, dto.ListSavedJobsResponse{SavedJobs: out})
}

// SaveJob handles POST /api/v1/saved-jobs
// Saving an already saved job returns the existing bookmark
func (h *SavedJobHandler) SaveJob(c *gin.Context) {
	var req dto.SaveJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, h.logger, err)
		return
	}

	sj, err := h.savedJobs.Create(c.Request.Context(), currentCandidate(c), req.JobID, req.Notes)
	if err != nil {
		writeError(c, h.logger, "Failed to save job", err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewSavedJobDTO(*sj))
}

// UnsaveJob handles DELETE /api/v1/saved-jobs/:job_id
// Removing a job that is not saved is not an error
func (h *SavedJobHandler) UnsaveJob(c *gin.Context) {
	jobID, ok := idParam(c, "job_id")
	if !ok {
		return
	}

	removed, err := h.savedJobs.DeleteByJobID(c.Request.Context(), currentCandidate(c), jobID)
	if err != nil {
		writeError(c, h.logger, "Failed to remove saved job", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"job_id":  jobID,
		"saved":   false,
		"removed": removed,
	})
}

// GetSavedState handles GET /api/v1/saved-jobs/:job_id
func (h *SavedJobHandler) GetSavedState(c *gin.Context) {
	jobID, ok := idParam(c, "job_id")
	if !ok {
		return
	}

	saved, err := h.savedJobs.IsSaved(c.Request.Context(), currentCandidate(c), jobID)
	if err != nil {
		writeError(c, h.logger, "Failed to check saved job", err)
		return
	}

	c.JSON(http.StatusOK, dto.SavedStateResponse{JobID: jobID, Saved: saved})
}

// ToggleSavedJob handles POST /api/v1/saved-jobs/:job_id/toggle
func (h *SavedJobHandler) ToggleSavedJob(c *gin.Context) {
	jobID, ok := idParam(c, "job_id")
	if !ok {
		return
	}

	saved, err := h.savedJobs.Toggle(c.Request.Context(), currentCandidate(c), jobID)
	if err != nil {
		writeError(c, h.logger, "Failed to toggle saved job", err)
		return
	}

	c.JSON(http.StatusOK, dto.SavedStateResponse{JobID: jobID, Saved: saved})
}
