package dto

type StatsResponse struct {
	Applications int            `json:"applications"`
	SavedJobs    int            `json:"saved_jobs"`
	Interviews   int            `json:"interviews"`
	TotalJobs    int            `json:"total_jobs"`
	ByStatus     map[string]int `json:"by_status"`
}

type TrackedApplicationDTO struct {
	ApplicationDTO
	Job JobDTO `json:"job"`
}

type SavedJobViewDTO struct {
	SavedJobDTO
	Job JobDTO `json:"job"`
}
