package router

import (
	"net/http"

	"github.com/cuongbtq/jobboard/internal/api/handler"
	"github.com/gin-gonic/gin"
)

// SetupRouter configures and returns the Gin router with all routes
func SetupRouter(deps *handler.Dependencies) *gin.Engine {
	r := gin.New()

	// Middleware
	r.Use(gin.Recovery())
	r.Use(LoggerMiddleware(deps.Logger))
	r.Use(CORSMiddleware())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		if err := deps.Store.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"service": "jobboard-api-service",
				"error":   err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "jobboard-api-service",
		})
	})

	jobHandler := handler.NewJobHandler(deps)
	applicationHandler := handler.NewApplicationHandler(deps)
	savedJobHandler := handler.NewSavedJobHandler(deps)
	profileHandler := handler.NewProfileHandler(deps)
	candidateHandler := handler.NewCandidateHandler(deps)
	dashboardHandler := handler.NewDashboardHandler(deps)

	// API v1 routes
	v1 := r.Group("/api/v1")
	v1.Use(CandidateMiddleware(deps.DefaultCandidateID))
	{
		jobs := v1.Group("/jobs")
		{
			jobs.GET("", jobHandler.ListJobs)
			jobs.GET("/featured", jobHandler.ListFeaturedJobs)
			jobs.POST("", jobHandler.CreateJob)
			jobs.GET("/:job_id", jobHandler.GetJob)
			jobs.PATCH("/:job_id", jobHandler.UpdateJob)
			jobs.DELETE("/:job_id", jobHandler.DeleteJob)
			jobs.GET("/:job_id/applications", jobHandler.ListJobApplications)
		}

		applications := v1.Group("/applications")
		{
			applications.POST("", applicationHandler.CreateApplication)
			applications.GET("", applicationHandler.ListApplications)
			applications.GET("/interviews/upcoming", applicationHandler.ListUpcomingInterviews)
			applications.GET("/:id", applicationHandler.GetApplication)
			applications.DELETE("/:id", applicationHandler.DeleteApplication)
			applications.PATCH("/:id/status", applicationHandler.UpdateStatus)
			applications.POST("/:id/interview", applicationHandler.ScheduleInterview)
			applications.PATCH("/:id/interview", applicationHandler.UpdateInterview)
		}

		savedJobs := v1.Group("/saved-jobs")
		{
			savedJobs.GET("", savedJobHandler.ListSavedJobs)
			savedJobs.POST("", savedJobHandler.SaveJob)
			savedJobs.GET("/:job_id", savedJobHandler.GetSavedState)
			savedJobs.DELETE("/:job_id", savedJobHandler.UnsaveJob)
			savedJobs.POST("/:job_id/toggle", savedJobHandler.ToggleSavedJob)
		}

		profile := v1.Group("/profile")
		{
			profile.GET("", profileHandler.GetProfile)
			profile.PATCH("", profileHandler.UpdateProfile)
			profile.POST("/resume", profileHandler.UploadResume)
			profile.DELETE("/resume", profileHandler.DeleteResume)
		}

		candidates := v1.Group("/candidates")
		{
			candidates.GET("", candidateHandler.ListCandidates)
			candidates.POST("", candidateHandler.CreateCandidate)
			candidates.GET("/:id", candidateHandler.GetCandidate)
			candidates.PATCH("/:id", candidateHandler.UpdateCandidate)
			candidates.DELETE("/:id", candidateHandler.DeleteCandidate)
		}

		dashboard := v1.Group("/dashboard")
		{
			dashboard.GET("/stats", dashboardHandler.GetStats)
			dashboard.GET("/applications", dashboardHandler.GetApplicationTracker)
			dashboard.GET("/saved-jobs", dashboardHandler.GetSavedJobs)
		}
	}

	return r
}
