package handler

import (
	"log/slog"
	"net/http"

	"github.com/cuongbtq/jobboard/internal/api/domain"
	"github.com/cuongbtq/jobboard/internal/api/dto"
	"github.com/cuongbtq/jobboard/internal/api/service"
	"github.com/gin-gonic/gin"
)

// JobHandler handles job-related HTTP requests
type JobHandler struct {
	logger       *slog.Logger
	jobs         *service.JobRepository
	applications *service.ApplicationRepository
	dashboard    *service.Dashboard
}

// NewJobHandler creates a new JobHandler instance
func NewJobHandler(deps *Dependencies) *JobHandler {
	return &JobHandler{
		logger:       deps.Logger,
		jobs:         deps.Jobs,
		applications: deps.Applications,
		dashboard:    deps.Dashboard,
	}
}

// ListJobs handles GET /api/v1/jobs
// Lists jobs matching the filter query parameters, newest first, one page at a time
func (h *JobHandler) ListJobs(c *gin.Context) {
	h.logger.Debug("ListJobs called",
		slog.String("query", c.Request.URL.RawQuery),
	)

	// 1. Parse paging and filter parameters
	var req dto.ListJobsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.logger.Debug("Invalid query parameters", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
		})
		return
	}

	filter, err := domain.ParseJobFilter(c.Request.URL.Query())
	if err != nil {
		writeError(c, h.logger, "Invalid filter", err)
		return
	}

	// 2. Decode cursor for pagination
	cursor, err := DecodeJobCursor(req.Cursor)
	if err != nil {
		h.logger.Debug("Invalid cursor", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid cursor",
		})
		return
	}

	// 3. Query one page
	page, err := h.jobs.ListPage(c.Request.Context(), filter, req.PageSize, cursor)
	if err != nil {
		writeError(c, h.logger, "Failed to list jobs", err)
		return
	}

	// 4. Respond with the next cursor if more results exist
	resp := dto.ListJobsResponse{Jobs: dto.NewJobDTOs(page.Jobs)}
	if page.Next != nil {
		resp.NextCursor = EncodeJobCursor(page.Next)
	}

	c.JSON(http.StatusOK, resp)
}

// ListFeaturedJobs handles GET /api/v1/jobs/featured
func (h *JobHandler) ListFeaturedJobs(c *gin.Context) {
	var req dto.FeaturedJobsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "limit must be an integer",
		})
		return
	}

	jobs, err := h.jobs.ListFeatured(c.Request.Context(), req.Limit)
	if err != nil {
		writeError(c, h.logger, "Failed to list featured jobs", err)
		return
	}

	c.JSON(http.StatusOK, dto.ListJobsResponse{Jobs: dto.NewJobDTOs(jobs)})
}

// GetJob handles GET /api/v1/jobs/:job_id
// Returns the job together with the caller's saved and applied flags
func (h *JobHandler) GetJob(c *gin.Context) {
	jobID, ok := idParam(c, "job_id")
	if !ok {
		return
	}

	detail, err := h.dashboard.JobDetail(c.Request.Context(), currentCandidate(c), jobID)
	if err != nil {
		writeError(c, h.logger, "Failed to get job", err)
		return
	}

	c.JSON(http.StatusOK, dto.JobDetailResponse{
		JobDTO:  dto.NewJobDTO(detail.Job),
		Saved:   detail.Saved,
		Applied: detail.Applied,
	})
}

// CreateJob handles POST /api/v1/jobs
func (h *JobHandler) CreateJob(c *gin.Context) {
	var req dto.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, h.logger, err)
		return
	}

	job, err := h.jobs.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		writeError(c, h.logger, "Failed to create job", err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewJobDTO(*job))
}

// UpdateJob handles PATCH /api/v1/jobs/:job_id
func (h *JobHandler) UpdateJob(c *gin.Context) {
	jobID, ok := idParam(c, "job_id")
	if !ok {
		return
	}

	var req dto.UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, h.logger, err)
		return
	}

	job, err := h.jobs.Update(c.Request.Context(), jobID, req.ToPatch())
	if err != nil {
		writeError(c, h.logger, "Failed to update job", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewJobDTO(*job))
}

// DeleteJob handles DELETE /api/v1/jobs/:job_id
// Removes the job along with its applications and bookmarks
func (h *JobHandler) DeleteJob(c *gin.Context) {
	jobID, ok := idParam(c, "job_id")
	if !ok {
		return
	}

	if err := h.jobs.Delete(c.Request.Context(), jobID); err != nil {
		writeError(c, h.logger, "Failed to delete job", err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListJobApplications handles GET /api/v1/jobs/:job_id/applications
func (h *JobHandler) ListJobApplications(c *gin.Context) {
	jobID, ok := idParam(c, "job_id")
	if !ok {
		return
	}

	if _, err := h.jobs.GetByID(c.Request.Context(), jobID); err != nil {
		writeError(c, h.logger, "Failed to get job", err)
		return
	}

	apps, err := h.applications.ListByJob(c.Request.Context(), jobID)
	if err != nil {
		writeError(c, h.logger, "Failed to list applications", err)
		return
	}

	c.JSON(http.StatusOK, dto.ListApplicationsResponse{Applications: dto.NewApplicationDTOs(apps)})
}
