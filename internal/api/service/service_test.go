package service

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/cuongbtq/jobboard/internal/api/domain"
	"github.com/cuongbtq/jobboard/internal/api/storage/memory"
	"github.com/cuongbtq/jobboard/internal/events"
)

var fixedNow = time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func daysAgo(n int) time.Time {
	return fixedNow.Add(-time.Duration(n) * 24 * time.Hour)
}

// testStore holds four jobs, two candidates, one application (job 1, candidate 1)
// and one bookmark (job 2, candidate 1)
func testStore() *memory.Store {
	return memory.NewFromSeed(memory.Seed{
		Jobs: []domain.Job{
			{ID: 1, Title: "Go Engineer", Company: "Acme", Location: "Berlin", Type: domain.JobTypeFullTime,
				Industry: domain.IndustryTechnology, ExperienceLevel: domain.ExperienceSenior,
				Salary: domain.Salary{Min: 80000, Max: 120000}, Featured: true, PostedAt: daysAgo(3)},
			{ID: 2, Title: "Designer", Company: "Pixel", Location: "Remote", Type: domain.JobTypeContract,
				Industry: domain.IndustryDesign, ExperienceLevel: domain.ExperienceMid,
				Salary: domain.Salary{Min: 50000, Max: 70000}, PostedAt: daysAgo(2)},
			{ID: 3, Title: "Marketing Lead", Company: "Brightside", Location: "New York", Type: domain.JobTypeFullTime,
				Industry: domain.IndustryMarketing, ExperienceLevel: domain.ExperienceSenior,
				Salary: domain.Salary{Min: 90000, Max: 110000}, Featured: true, PostedAt: daysAgo(1)},
			{ID: 4, Title: "Analyst", Company: "Harbor", Location: "Boston", Type: domain.JobTypePartTime,
				Industry: domain.IndustryFinance, ExperienceLevel: domain.ExperienceEntryLevel,
				Salary: domain.Salary{Min: 40000, Max: 60000}, Featured: true, PostedAt: daysAgo(4)},
		},
		Candidates: []domain.Candidate{
			{ID: 1, Name: "Alex Johnson", Email: "alex@example.com", Skills: []string{"Go"}, CreatedAt: daysAgo(30)},
			{ID: 2, Name: "Maria Garcia", Email: "maria@example.com", Skills: []string{"Figma"}, CreatedAt: daysAgo(20)},
		},
		Applications: []domain.Application{
			{ID: 1, JobID: 1, CandidateID: 1, AppliedAt: daysAgo(2), Status: domain.StatusApplied},
		},
		SavedJobs: []domain.SavedJob{
			{ID: 1, JobID: 2, CandidateID: 1, SavedAt: daysAgo(1)},
		},
	})
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.ApplicationEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e events.ApplicationEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) types() []events.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]events.Type, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

func newJobRepo(store *memory.Store) *JobRepository {
	r := NewJobRepository(store, testLogger())
	r.now = fixedClock
	return r
}

func newAppRepo(store *memory.Store, pub events.Publisher, opts ApplicationOptions) *ApplicationRepository {
	r := NewApplicationRepository(store, pub, opts, testLogger())
	r.now = fixedClock
	return r
}

func newSavedRepo(store *memory.Store) *SavedJobRepository {
	r := NewSavedJobRepository(store, testLogger())
	r.now = fixedClock
	return r
}

func jobIDs(jobs []domain.Job) []int64 {
	out := make([]int64, len(jobs))
	for i, j := range jobs {
		out[i] = j.ID
	}
	return out
}

func appJobIDs(apps []domain.Application) []int64 {
	out := make([]int64, len(apps))
	for i, a := range apps {
		out[i] = a.JobID
	}
	return out
}

func ptr[T any](v T) *T { return &v }
