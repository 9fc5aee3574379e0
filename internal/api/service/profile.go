package service

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"
	"unicode"

	"github.com/cuongbtq/jobboard/internal/api/domain"
	"github.com/cuongbtq/jobboard/internal/api/storage"
)

// DocumentStore keeps uploaded documents and returns a reference to them
type DocumentStore interface {
	Put(ctx context.Context, owner string, file domain.FileDescriptor) (string, error)
}

// SimulatedDocumentStore stores nothing; it only mints a reference path
// of the form <prefix>/<owner>_resume_<unix millis><ext>.
type SimulatedDocumentStore struct {
	prefix string
	now    func() time.Time
}

func NewSimulatedDocumentStore(prefix string) *SimulatedDocumentStore {
	if prefix == "" {
		prefix = "/documents"
	}
	return &SimulatedDocumentStore{
		prefix: strings.TrimSuffix(prefix, "/"),
		now:    time.Now,
	}
}

func (s *SimulatedDocumentStore) Put(ctx context.Context, owner string, file domain.FileDescriptor) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s_resume_%d%s", s.prefix, slug(owner), s.now().UnixMilli(), file.Ext()), nil
}

// slug lower-cases name and joins its letter/digit runs with underscores
func slug(name string) string {
	fields := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(fields) == 0 {
		return "candidate"
	}
	return strings.Join(fields, "_")
}

// ProfileRepository works on the caller's own candidate record
type ProfileRepository struct {
	store  storage.CandidateStore
	docs   DocumentStore
	policy domain.ResumePolicy
	logger *slog.Logger
	now    func() time.Time
}

func NewProfileRepository(store storage.CandidateStore, docs DocumentStore, policy domain.ResumePolicy, logger *slog.Logger) *ProfileRepository {
	return &ProfileRepository{
		store:  store,
		docs:   docs,
		policy: policy,
		logger: logger,
		now:    time.Now,
	}
}

func (r *ProfileRepository) Get(ctx context.Context, candidateID int64) (*domain.Candidate, error) {
	return r.store.GetCandidate(ctx, candidateID)
}

// Update merges patch into the profile; skills are de-duplicated
func (r *ProfileRepository) Update(ctx context.Context, candidateID int64, patch domain.CandidatePatch) (*domain.Candidate, error) {
	current, err := r.store.GetCandidate(ctx, candidateID)
	if err != nil {
		return nil, err
	}

	updated, err := patch.Apply(*current)
	if err != nil {
		return nil, err
	}
	return r.save(ctx, &updated)
}

// AttachResume checks the file against the policy and records its reference on the profile
func (r *ProfileRepository) AttachResume(ctx context.Context, candidateID int64, file domain.FileDescriptor) (*domain.ResumeUpload, error) {
	if err := r.policy.Check(file); err != nil {
		return nil, err
	}

	c, err := r.store.GetCandidate(ctx, candidateID)
	if err != nil {
		return nil, err
	}

	ref, err := r.docs.Put(ctx, c.Name, file)
	if err != nil {
		return nil, fmt.Errorf("failed to store resume: %w", err)
	}
	c.ResumeURL = &ref

	if _, err := r.save(ctx, c); err != nil {
		return nil, err
	}

	r.logger.Info("Resume attached",
		slog.Int64("candidate_id", candidateID),
		slog.String("url", ref),
		slog.Int64("size", file.Size),
	)

	return &domain.ResumeUpload{
		FileName:    path.Base(ref),
		URL:         ref,
		Size:        file.Size,
		ContentType: file.ContentType,
	}, nil
}

// DetachResume clears the resume reference
func (r *ProfileRepository) DetachResume(ctx context.Context, candidateID int64) (*domain.Candidate, error) {
	c, err := r.store.GetCandidate(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	if c.ResumeURL == nil {
		return c, nil
	}

	c.ResumeURL = nil
	return r.save(ctx, c)
}

func (r *ProfileRepository) save(ctx context.Context, c *domain.Candidate) (*domain.Candidate, error) {
	c.UpdatedAt = timestamp(r.now())
	if err := r.store.UpdateCandidate(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return c, nil
}
