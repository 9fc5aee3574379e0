package domain

import (
	"slices"
	"strings"
	"time"
)

// CandidateStatusNew is the pipeline label given to newly registered candidates
const CandidateStatusNew = "new"

// ExperienceEntry is one position in a candidate's work history
type ExperienceEntry struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// Candidate is a person record. The profile endpoints operate on the caller's own candidate.
type Candidate struct {
	ID              int64             `json:"id"`
	Name            string            `json:"name" validate:"required"`
	Email           string            `json:"email" validate:"required,email"`
	Phone           string            `json:"phone"`
	Location        string            `json:"location"`
	Headline        string            `json:"headline"`
	Position        string            `json:"position"`
	Status          string            `json:"status"`
	ExperienceLevel ExperienceLevel   `json:"experience_level,omitempty"`
	Skills          []string          `json:"skills"`
	Experience      []ExperienceEntry `json:"experience"`
	Summary         string            `json:"summary"`
	Availability    string            `json:"availability"`
	ResumeURL       *string           `json:"resume_url"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// Clone returns a deep copy of the candidate
func (c Candidate) Clone() Candidate {
	c.Skills = slices.Clone(c.Skills)
	c.Experience = slices.Clone(c.Experience)
	if c.ResumeURL != nil {
		u := *c.ResumeURL
		c.ResumeURL = &u
	}
	return c
}

// Validate checks the invariants shared by profiles and recruiter records
func (c *Candidate) Validate() error {
	if err := validateStruct(c); err != nil {
		return err
	}
	if c.ExperienceLevel != "" && !c.ExperienceLevel.Valid() {
		return invalidf("unknown experience level %q", c.ExperienceLevel)
	}
	return nil
}

// CandidateInput carries the fields required to register a candidate
type CandidateInput struct {
	Name            string            `json:"name" validate:"required"`
	Email           string            `json:"email" validate:"required,email"`
	Phone           string            `json:"phone" validate:"required"`
	Location        string            `json:"location" validate:"required"`
	Headline        string            `json:"headline" validate:"required"`
	Position        string            `json:"position" validate:"required"`
	ExperienceLevel ExperienceLevel   `json:"experience_level"`
	Skills          []string          `json:"skills" validate:"required,min=1"`
	Experience      []ExperienceEntry `json:"experience"`
	Summary         string            `json:"summary" validate:"required"`
	Availability    string            `json:"availability"`
	Status          string            `json:"status"`
}

// NewCandidate validates the input and builds a candidate created at now
func NewCandidate(in CandidateInput, now time.Time) (*Candidate, error) {
	in.Skills = NormalizeSkills(in.Skills)
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = CandidateStatusNew
	}

	c := &Candidate{
		Name:            in.Name,
		Email:           in.Email,
		Phone:           in.Phone,
		Location:        in.Location,
		Headline:        in.Headline,
		Position:        in.Position,
		Status:          status,
		ExperienceLevel: in.ExperienceLevel,
		Skills:          in.Skills,
		Experience:      slices.Clone(in.Experience),
		Summary:         in.Summary,
		Availability:    in.Availability,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if c.Experience == nil {
		c.Experience = []ExperienceEntry{}
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// CandidatePatch is a shallow update; nil fields are left untouched
type CandidatePatch struct {
	Name            *string
	Email           *string
	Phone           *string
	Location        *string
	Headline        *string
	Position        *string
	Status          *string
	ExperienceLevel *ExperienceLevel
	Skills          []string
	Experience      []ExperienceEntry
	Summary         *string
	Availability    *string
}

// Apply merges the patch into a copy of c and validates the result
func (p CandidatePatch) Apply(c Candidate) (Candidate, error) {
	out := c.Clone()

	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setString(&out.Name, p.Name)
	setString(&out.Email, p.Email)
	setString(&out.Phone, p.Phone)
	setString(&out.Location, p.Location)
	setString(&out.Headline, p.Headline)
	setString(&out.Position, p.Position)
	setString(&out.Status, p.Status)
	setString(&out.Summary, p.Summary)
	setString(&out.Availability, p.Availability)

	if p.ExperienceLevel != nil {
		out.ExperienceLevel = *p.ExperienceLevel
	}
	if p.Skills != nil {
		out.Skills = NormalizeSkills(p.Skills)
	}
	if p.Experience != nil {
		out.Experience = slices.Clone(p.Experience)
	}

	if err := out.Validate(); err != nil {
		return Candidate{}, err
	}
	return out, nil
}

// NormalizeSkills trims entries, drops blanks and removes case-insensitive duplicates,
// keeping the first spelling and the original order.
func NormalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}
