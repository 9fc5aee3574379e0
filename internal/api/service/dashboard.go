package service

import (
	"context"
	"strings"

	"github.com/cuongbtq/jobboard/internal/api/domain"
	"golang.org/x/sync/errgroup"
)

// fanOut bounds the per-record job lookups of one dashboard load
const fanOut = 8

// Dashboard composes the repositories into the candidate's overview pages.
// Independent loads run concurrently and any failure fails the whole load.
type Dashboard struct {
	jobs  *JobRepository
	apps  *ApplicationRepository
	saved *SavedJobRepository
}

func NewDashboard(jobs *JobRepository, apps *ApplicationRepository, saved *SavedJobRepository) *Dashboard {
	return &Dashboard{jobs: jobs, apps: apps, saved: saved}
}

// Stats is the summary row at the top of the dashboard
type Stats struct {
	Applications int
	SavedJobs    int
	Interviews   int
	TotalJobs    int
	ByStatus     map[domain.ApplicationStatus]int
}

func (d *Dashboard) Stats(ctx context.Context, candidateID int64) (*Stats, error) {
	var (
		apps  []domain.Application
		saved []domain.SavedJob
		jobs  []domain.Job
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		apps, err = d.apps.ListByCandidate(ctx, candidateID)
		return err
	})
	g.Go(func() (err error) {
		saved, err = d.saved.List(ctx, candidateID)
		return err
	})
	g.Go(func() (err error) {
		jobs, err = d.jobs.List(ctx, domain.JobFilter{})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &Stats{
		Applications: len(apps),
		SavedJobs:    len(saved),
		TotalJobs:    len(jobs),
		ByStatus:     make(map[domain.ApplicationStatus]int),
	}
	for _, a := range apps {
		stats.ByStatus[a.Status]++
		if strings.Contains(string(a.Status), "interview") {
			stats.Interviews++
		}
	}

	return stats, nil
}

// TrackedApplication pairs an application with the job it targets
type TrackedApplication struct {
	domain.Application
	Job domain.Job
}

// ApplicationTracker lists the candidate's applications with their jobs
func (d *Dashboard) ApplicationTracker(ctx context.Context, candidateID int64) ([]TrackedApplication, error) {
	apps, err := d.apps.ListByCandidate(ctx, candidateID)
	if err != nil {
		return nil, err
	}

	out := make([]TrackedApplication, len(apps))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(fanOut)
	for i, app := range apps {
		i, app := i, app
		g.Go(func() error {
			job, err := d.jobs.GetByID(ctx, app.JobID)
			if err != nil {
				return err
			}
			out[i] = TrackedApplication{Application: app, Job: *job}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// SavedJobView pairs a bookmark with its job
type SavedJobView struct {
	domain.SavedJob
	Job domain.Job
}

// SavedList lists the candidate's bookmarks with their jobs
func (d *Dashboard) SavedList(ctx context.Context, candidateID int64) ([]SavedJobView, error) {
	saved, err := d.saved.List(ctx, candidateID)
	if err != nil {
		return nil, err
	}

	out := make([]SavedJobView, len(saved))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(fanOut)
	for i, sj := range saved {
		i, sj := i, sj
		g.Go(func() error {
			job, err := d.jobs.GetByID(ctx, sj.JobID)
			if err != nil {
				return err
			}
			out[i] = SavedJobView{SavedJob: sj, Job: *job}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// JobDetail is a job as seen by one candidate
type JobDetail struct {
	Job     domain.Job
	Saved   bool
	Applied bool
}

func (d *Dashboard) JobDetail(ctx context.Context, candidateID, jobID int64) (*JobDetail, error) {
	var detail JobDetail

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		job, err := d.jobs.GetByID(ctx, jobID)
		if err != nil {
			return err
		}
		detail.Job = *job
		return nil
	})
	g.Go(func() (err error) {
		detail.Saved, err = d.saved.IsSaved(ctx, candidateID, jobID)
		return err
	})
	g.Go(func() (err error) {
		detail.Applied, err = d.apps.Exists(ctx, jobID, candidateID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &detail, nil
}
