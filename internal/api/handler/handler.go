package handler

import (
	"log/slog"
	"time"

	"github.com/cuongbtq/jobboard/internal/api/domain"
	"github.com/cuongbtq/jobboard/internal/api/service"
	"github.com/cuongbtq/jobboard/internal/api/storage"
	"github.com/cuongbtq/jobboard/internal/events"
	"github.com/gin-gonic/gin"
)

// CandidateIDKey is the gin context key holding the calling candidate's id
const CandidateIDKey = "candidate_id"

// Dependencies holds all dependencies needed by handlers
type Dependencies struct {
	Logger *slog.Logger
	Store  storage.Store

	Jobs         *service.JobRepository
	Applications *service.ApplicationRepository
	SavedJobs    *service.SavedJobRepository
	Profile      *service.ProfileRepository
	Candidates   *service.CandidateRepository
	Dashboard    *service.Dashboard

	// DefaultCandidateID is used when a request carries no X-Candidate-ID header
	DefaultCandidateID int64
	// MaxUploadBytes caps the multipart body of a resume upload
	MaxUploadBytes int64
}

// Options configure the repositories built by NewDependencies
type Options struct {
	DefaultCandidateID int64
	InterviewLocation  *time.Location
	EnforceTransitions bool
	ResumePolicy       domain.ResumePolicy
	DocumentsPrefix    string
}

// NewDependencies wires every repository over one store
func NewDependencies(logger *slog.Logger, store storage.Store, publisher events.Publisher, opts Options) *Dependencies {
	jobs := service.NewJobRepository(store, logger)
	apps := service.NewApplicationRepository(store, publisher, service.ApplicationOptions{
		Location:           opts.InterviewLocation,
		EnforceTransitions: opts.EnforceTransitions,
	}, logger)
	saved := service.NewSavedJobRepository(store, logger)

	policy := opts.ResumePolicy
	if len(policy.AcceptedExtensions) == 0 {
		policy.AcceptedExtensions = domain.DefaultResumeExtensions
	}
	if policy.MaxSize <= 0 {
		policy.MaxSize = domain.DefaultMaxResumeSize
	}

	return &Dependencies{
		Logger:             logger,
		Store:              store,
		Jobs:               jobs,
		Applications:       apps,
		SavedJobs:          saved,
		Profile:            service.NewProfileRepository(store, service.NewSimulatedDocumentStore(opts.DocumentsPrefix), policy, logger),
		Candidates:         service.NewCandidateRepository(store, logger),
		Dashboard:          service.NewDashboard(jobs, apps, saved),
		DefaultCandidateID: opts.DefaultCandidateID,
		// room for the multipart envelope around the largest accepted file
		MaxUploadBytes: policy.MaxSize + 1<<20,
	}
}

// currentCandidate returns the id set by the candidate middleware
func currentCandidate(c *gin.Context) int64 {
	return c.GetInt64(CandidateIDKey)
}
