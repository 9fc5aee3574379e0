package domain

import (
	"net/url"
	"strconv"
	"strings"
)

// JobFilter holds the job search options; every zero field is unconstrained
// and active fields are ANDed together.
type JobFilter struct {
	Search          string
	Location        string
	Industry        Industry
	Type            JobType
	ExperienceLevel ExperienceLevel
	SalaryMin       *int64
	SalaryMax       *int64
}

// Matches reports whether job satisfies every active predicate
func (f JobFilter) Matches(job Job) bool {
	if f.Location != "" && !containsFold(job.Location, f.Location) {
		return false
	}
	if f.Industry != "" && job.Industry != f.Industry {
		return false
	}
	if f.Type != "" && job.Type != f.Type {
		return false
	}
	if f.ExperienceLevel != "" && job.ExperienceLevel != f.ExperienceLevel {
		return false
	}
	if f.SalaryMin != nil && job.Salary.Max < *f.SalaryMin {
		return false
	}
	if f.SalaryMax != nil && job.Salary.Min > *f.SalaryMax {
		return false
	}
	if f.Search != "" &&
		!containsFold(job.Title, f.Search) &&
		!containsFold(job.Company, f.Search) &&
		!containsFold(job.Description, f.Search) {
		return false
	}
	return true
}

// Apply returns the jobs that match, in their original order
func (f JobFilter) Apply(jobs []Job) []Job {
	out := make([]Job, 0, len(jobs))
	for _, job := range jobs {
		if f.Matches(job) {
			out = append(out, job.Clone())
		}
	}
	return out
}

// IsEmpty reports whether no predicate is active
func (f JobFilter) IsEmpty() bool {
	return f.Search == "" && f.Location == "" && f.Industry == "" && f.Type == "" &&
		f.ExperienceLevel == "" && f.SalaryMin == nil && f.SalaryMax == nil
}

// Query encodes the active predicates as URL query parameters
func (f JobFilter) Query() url.Values {
	q := url.Values{}
	setIf := func(key, val string) {
		if val != "" {
			q.Set(key, val)
		}
	}

	setIf("search", f.Search)
	setIf("location", f.Location)
	setIf("industry", string(f.Industry))
	setIf("type", string(f.Type))
	setIf("experienceLevel", string(f.ExperienceLevel))
	if f.SalaryMin != nil {
		q.Set("salaryMin", strconv.FormatInt(*f.SalaryMin, 10))
	}
	if f.SalaryMax != nil {
		q.Set("salaryMax", strconv.FormatInt(*f.SalaryMax, 10))
	}

	return q
}

// ParseJobFilter decodes filter state from URL query parameters; blank values are ignored
func ParseJobFilter(q url.Values) (JobFilter, error) {
	f := JobFilter{
		Search:          strings.TrimSpace(q.Get("search")),
		Location:        strings.TrimSpace(q.Get("location")),
		Industry:        Industry(strings.TrimSpace(q.Get("industry"))),
		Type:            JobType(strings.TrimSpace(q.Get("type"))),
		ExperienceLevel: ExperienceLevel(strings.TrimSpace(q.Get("experienceLevel"))),
	}

	var err error
	if f.SalaryMin, err = parseOptionalInt(q, "salaryMin"); err != nil {
		return JobFilter{}, err
	}
	if f.SalaryMax, err = parseOptionalInt(q, "salaryMax"); err != nil {
		return JobFilter{}, err
	}

	return f, nil
}

func parseOptionalInt(q url.Values, key string) (*int64, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, invalidf("%s must be an integer", key)
	}
	return &n, nil
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
