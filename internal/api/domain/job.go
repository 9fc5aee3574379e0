package domain

import (
	"slices"
	"time"
)

// JobType is the employment type of a posting
type JobType string

const (
	JobTypeFullTime  JobType = "Full-time"
	JobTypePartTime  JobType = "Part-time"
	JobTypeContract  JobType = "Contract"
	JobTypeFreelance JobType = "Freelance"
)

// JobTypes lists every accepted job type
var JobTypes = []JobType{JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeFreelance}

func (t JobType) Valid() bool { return slices.Contains(JobTypes, t) }

// Industry is the sector a posting belongs to
type Industry string

const (
	IndustryTechnology Industry = "Technology"
	IndustryMarketing  Industry = "Marketing"
	IndustryDesign     Industry = "Design"
	IndustrySales      Industry = "Sales"
	IndustryFinance    Industry = "Finance"
	IndustryHealthcare Industry = "Healthcare"
)

// Industries lists every accepted industry
var Industries = []Industry{
	IndustryTechnology, IndustryMarketing, IndustryDesign,
	IndustrySales, IndustryFinance, IndustryHealthcare,
}

func (i Industry) Valid() bool { return slices.Contains(Industries, i) }

// ExperienceLevel is the seniority a posting asks for
type ExperienceLevel string

const (
	ExperienceEntryLevel ExperienceLevel = "Entry-level"
	ExperienceMid        ExperienceLevel = "Mid-level"
	ExperienceSenior     ExperienceLevel = "Senior"
	ExperienceExecutive  ExperienceLevel = "Executive"
)

// ExperienceLevels lists every accepted experience level
var ExperienceLevels = []ExperienceLevel{ExperienceEntryLevel, ExperienceMid, ExperienceSenior, ExperienceExecutive}

func (l ExperienceLevel) Valid() bool { return slices.Contains(ExperienceLevels, l) }

// Salary is a compensation range; Min never exceeds Max
type Salary struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// Job is a posted position
type Job struct {
	ID              int64           `json:"id"`
	Title           string          `json:"title"`
	Company         string          `json:"company"`
	Location        string          `json:"location"`
	Type            JobType         `json:"type"`
	Industry        Industry        `json:"industry"`
	ExperienceLevel ExperienceLevel `json:"experience_level"`
	Salary          Salary          `json:"salary"`
	Description     string          `json:"description"`
	Requirements    []string        `json:"requirements"`
	Benefits        []string        `json:"benefits"`
	Featured        bool            `json:"featured"`
	Applicants      int             `json:"applicants"`
	PostedAt        time.Time       `json:"posted_at"`
}

// Clone returns a deep copy so callers never share slices with the store
func (j Job) Clone() Job {
	j.Requirements = slices.Clone(j.Requirements)
	j.Benefits = slices.Clone(j.Benefits)
	return j
}

// Validate checks the invariants every stored job must satisfy
func (j *Job) Validate() error {
	if err := validateStruct(struct {
		Title    string `json:"title" validate:"required"`
		Company  string `json:"company" validate:"required"`
		Location string `json:"location" validate:"required"`
	}{j.Title, j.Company, j.Location}); err != nil {
		return err
	}

	if !j.Type.Valid() {
		return invalidf("unknown job type %q", j.Type)
	}
	if !j.Industry.Valid() {
		return invalidf("unknown industry %q", j.Industry)
	}
	if !j.ExperienceLevel.Valid() {
		return invalidf("unknown experience level %q", j.ExperienceLevel)
	}
	if j.Salary.Min < 0 || j.Salary.Max < 0 {
		return invalidf("salary must not be negative")
	}
	if j.Salary.Min > j.Salary.Max {
		return invalidf("salary min %d exceeds max %d", j.Salary.Min, j.Salary.Max)
	}

	return nil
}

// JobInput carries the fields accepted when posting a job
type JobInput struct {
	Title           string
	Company         string
	Location        string
	Type            JobType
	Industry        Industry
	ExperienceLevel ExperienceLevel
	Salary          Salary
	Description     string
	Requirements    []string
	Benefits        []string
	Featured        bool
}

// NewJob builds a validated job posted at the given time
func NewJob(in JobInput, postedAt time.Time) (*Job, error) {
	job := &Job{
		Title:           in.Title,
		Company:         in.Company,
		Location:        in.Location,
		Type:            in.Type,
		Industry:        in.Industry,
		ExperienceLevel: in.ExperienceLevel,
		Salary:          in.Salary,
		Description:     in.Description,
		Requirements:    nonNil(in.Requirements),
		Benefits:        nonNil(in.Benefits),
		Featured:        in.Featured,
		PostedAt:        postedAt,
	}

	if err := job.Validate(); err != nil {
		return nil, err
	}

	return job, nil
}

// JobPatch is a shallow update; nil fields are left untouched
type JobPatch struct {
	Title           *string
	Company         *string
	Location        *string
	Type            *JobType
	Industry        *Industry
	ExperienceLevel *ExperienceLevel
	Salary          *Salary
	Description     *string
	Requirements    []string
	Benefits        []string
	Featured        *bool
}

// Apply merges the patch into a copy of job and validates the result
func (p JobPatch) Apply(job Job) (Job, error) {
	out := job.Clone()

	if p.Title != nil {
		out.Title = *p.Title
	}
	if p.Company != nil {
		out.Company = *p.Company
	}
	if p.Location != nil {
		out.Location = *p.Location
	}
	if p.Type != nil {
		out.Type = *p.Type
	}
	if p.Industry != nil {
		out.Industry = *p.Industry
	}
	if p.ExperienceLevel != nil {
		out.ExperienceLevel = *p.ExperienceLevel
	}
	if p.Salary != nil {
		out.Salary = *p.Salary
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.Requirements != nil {
		out.Requirements = slices.Clone(p.Requirements)
	}
	if p.Benefits != nil {
		out.Benefits = slices.Clone(p.Benefits)
	}
	if p.Featured != nil {
		out.Featured = *p.Featured
	}

	if err := out.Validate(); err != nil {
		return Job{}, err
	}

	return out, nil
}

// JobCursor marks the last job of a listing page
type JobCursor struct {
	PostedAt time.Time
	JobID    int64
}

// After reports whether job sorts after the cursor in newest-first order
func (c JobCursor) After(job Job) bool {
	if job.PostedAt.Equal(c.PostedAt) {
		return job.ID < c.JobID
	}
	return job.PostedAt.Before(c.PostedAt)
}

// SortJobsNewestFirst orders jobs by posting time, newest first, ties broken by id
func SortJobsNewestFirst(jobs []Job) {
	slices.SortStableFunc(jobs, func(a, b Job) int {
		if c := b.PostedAt.Compare(a.PostedAt); c != 0 {
			return c
		}
		switch {
		case a.ID > b.ID:
			return -1
		case a.ID < b.ID:
			return 1
		}
		return 0
	})
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return slices.Clone(s)
}
