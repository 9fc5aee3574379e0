package service

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/cuongbtq/jobboard/internal/api/domain"
	"github.com/cuongbtq/jobboard/internal/api/storage"
	"github.com/cuongbtq/jobboard/internal/events"
)

// ApplicationOptions tune the application rules
type ApplicationOptions struct {
	// Location interprets interview dates and times; nil means time.Local
	Location *time.Location
	// EnforceTransitions rejects status moves outside the hiring pipeline
	EnforceTransitions bool
}

// ApplicationRepository handles submissions, status changes and interviews
type ApplicationRepository struct {
	store     storage.Store
	publisher events.Publisher
	opts      ApplicationOptions
	logger    *slog.Logger
	now       func() time.Time
}

func NewApplicationRepository(store storage.Store, publisher events.Publisher, opts ApplicationOptions, logger *slog.Logger) *ApplicationRepository {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}

	return &ApplicationRepository{
		store:     store,
		publisher: publisher,
		opts:      opts,
		logger:    logger,
		now:       time.Now,
	}
}

// Create submits an application. The job must exist and the candidate must not
// have applied to it already.
func (r *ApplicationRepository) Create(ctx context.Context, jobID, candidateID int64, notes string) (*domain.Application, error) {
	app, err := domain.NewApplication(jobID, candidateID, notes, timestamp(r.now()))
	if err != nil {
		return nil, err
	}

	if _, err := r.store.GetJob(ctx, jobID); err != nil {
		return nil, err
	}

	exists, err := r.Exists(ctx, jobID, candidateID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("candidate %d already applied to job %d: %w", candidateID, jobID, domain.ErrConflict)
	}

	// the store enforces the pair constraint again for concurrent submissions
	if err := r.store.CreateApplication(ctx, app); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	r.logger.Info("Application submitted",
		slog.Int64("application_id", app.ID),
		slog.Int64("job_id", jobID),
		slog.Int64("candidate_id", candidateID),
	)
	r.publish(ctx, events.TypeApplicationCreated, app)

	return app, nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	return r.store.GetApplication(ctx, id)
}

// List returns every application, most recent first
func (r *ApplicationRepository) List(ctx context.Context) ([]domain.Application, error) {
	return r.list(ctx, storage.ApplicationFilter{})
}

func (r *ApplicationRepository) ListByJob(ctx context.Context, jobID int64) ([]domain.Application, error) {
	return r.list(ctx, storage.ApplicationFilter{JobID: jobID})
}

func (r *ApplicationRepository) ListByCandidate(ctx context.Context, candidateID int64) ([]domain.Application, error) {
	return r.list(ctx, storage.ApplicationFilter{CandidateID: candidateID})
}

func (r *ApplicationRepository) list(ctx context.Context, f storage.ApplicationFilter) ([]domain.Application, error) {
	apps, err := r.store.ListApplications(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

// Exists reports whether the candidate already applied to the job
func (r *ApplicationRepository) Exists(ctx context.Context, jobID, candidateID int64) (bool, error) {
	apps, err := r.list(ctx, storage.ApplicationFilter{JobID: jobID, CandidateID: candidateID})
	if err != nil {
		return false, err
	}
	return len(apps) > 0, nil
}

// UpdateStatus parses raw into a status and stores it
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id int64, raw string) (*domain.Application, error) {
	status, err := domain.ParseApplicationStatus(raw)
	if err != nil {
		return nil, err
	}
	return r.Update(ctx, id, domain.ApplicationPatch{Status: &status})
}

// Update merges notes and status into the application
func (r *ApplicationRepository) Update(ctx context.Context, id int64, patch domain.ApplicationPatch) (*domain.Application, error) {
	app, err := r.store.GetApplication(ctx, id)
	if err != nil {
		return nil, err
	}

	previous := app.Status
	if patch.Status != nil {
		if !patch.Status.Valid() {
			// reuse the parser's message listing the valid values
			if _, err := domain.ParseApplicationStatus(string(*patch.Status)); err != nil {
				return nil, err
			}
		}
		if err := r.checkTransition(previous, *patch.Status); err != nil {
			return nil, err
		}
		app.Status = *patch.Status
	}
	if patch.Notes != nil {
		app.Notes = *patch.Notes
	}

	if err := r.store.UpdateApplication(ctx, app); err != nil {
		return nil, fmt.Errorf("failed to update application: %w", err)
	}

	if app.Status != previous {
		r.logger.Info("Application status changed",
			slog.Int64("application_id", app.ID),
			slog.String("from", string(previous)),
			slog.String("to", string(app.Status)),
		)
		r.publish(ctx, events.TypeApplicationStatusChanged, app)
	}

	return app, nil
}

// Delete is administrative; candidates never withdraw through it
func (r *ApplicationRepository) Delete(ctx context.Context, id int64) error {
	if err := r.store.DeleteApplication(ctx, id); err != nil {
		return err
	}

	r.logger.Info("Application deleted", slog.Int64("application_id", id))
	return nil
}

// ScheduleInterview records the interview and moves the application to interview_scheduled
func (r *ApplicationRepository) ScheduleInterview(ctx context.Context, id int64, iv domain.Interview) (*domain.Application, error) {
	if err := iv.Validate(); err != nil {
		return nil, err
	}

	app, err := r.store.GetApplication(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.checkTransition(app.Status, domain.StatusInterviewScheduled); err != nil {
		return nil, err
	}

	app.Interview = &iv
	app.Status = domain.StatusInterviewScheduled

	if err := r.store.UpdateApplication(ctx, app); err != nil {
		return nil, fmt.Errorf("failed to schedule interview: %w", err)
	}

	r.logger.Info("Interview scheduled",
		slog.Int64("application_id", app.ID),
		slog.String("date", iv.Date),
		slog.String("time", iv.Time),
	)
	r.publish(ctx, events.TypeApplicationInterviewScheduled, app)

	return app, nil
}

// UpdateInterview merges patch into the scheduled interview
func (r *ApplicationRepository) UpdateInterview(ctx context.Context, id int64, patch domain.InterviewPatch) (*domain.Application, error) {
	app, err := r.store.GetApplication(ctx, id)
	if err != nil {
		return nil, err
	}
	if app.Interview == nil {
		return nil, fmt.Errorf("application %d has no interview scheduled: %w", id, domain.ErrFailedPrecondition)
	}

	iv, err := patch.Apply(*app.Interview)
	if err != nil {
		return nil, err
	}
	app.Interview = &iv

	if err := r.store.UpdateApplication(ctx, app); err != nil {
		return nil, fmt.Errorf("failed to update interview: %w", err)
	}

	r.publish(ctx, events.TypeApplicationInterviewUpdated, app)
	return app, nil
}

// ListUpcomingInterviews returns scheduled interviews that have not started yet,
// soonest first
func (r *ApplicationRepository) ListUpcomingInterviews(ctx context.Context) ([]domain.Application, error) {
	apps, err := r.list(ctx, storage.ApplicationFilter{Status: domain.StatusInterviewScheduled})
	if err != nil {
		return nil, err
	}

	type upcoming struct {
		app domain.Application
		at  time.Time
	}

	now := r.now()
	found := make([]upcoming, 0, len(apps))
	for _, app := range apps {
		if app.Interview == nil {
			continue
		}
		at, err := app.Interview.At(r.opts.Location)
		if err != nil {
			r.logger.Warn("Skipping interview with unreadable date",
				slog.Int64("application_id", app.ID),
				slog.Any("error", err),
			)
			continue
		}
		if at.Before(now) {
			continue
		}
		found = append(found, upcoming{app: app, at: at})
	}

	slices.SortStableFunc(found, func(a, b upcoming) int {
		if c := a.at.Compare(b.at); c != 0 {
			return c
		}
		return cmp.Compare(a.app.ID, b.app.ID)
	})

	out := make([]domain.Application, len(found))
	for i, u := range found {
		out[i] = u.app
	}
	return out, nil
}

func (r *ApplicationRepository) checkTransition(from, to domain.ApplicationStatus) error {
	if !r.opts.EnforceTransitions || domain.CanTransition(from, to) {
		return nil
	}
	return fmt.Errorf("cannot move application from %s to %s: %w", from, to, domain.ErrFailedPrecondition)
}

// publish never fails the caller; the record is already stored
func (r *ApplicationRepository) publish(ctx context.Context, t events.Type, app *domain.Application) {
	e := events.NewApplicationEvent(t, app, r.now())
	if err := r.publisher.Publish(ctx, e); err != nil {
		r.logger.Error("Failed to publish application event",
			slog.String("type", string(t)),
			slog.Int64("application_id", app.ID),
			slog.Any("error", err),
		)
	}
}
