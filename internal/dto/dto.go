// Package dto holds the gateway's HTTP request/response shapes, generalized
// from the teacher's dto.JobRequest/dto.JobResponse.
package dto

import "github.com/mohamedhayballa22/job-ingestion-pipeline/internal/model"

// TriggerRequest is the POST /trigger-job-pipeline request body.
type TriggerRequest struct {
	JobTitles  string `json:"job_titles" binding:"required"`
	Location   string `json:"location" binding:"required"`
	TimeFilter string `json:"time_filter" binding:"omitempty,oneof=24h 1w 1m"`
	MaxJobs    int    `json:"max_jobs" binding:"required,gt=0"`
}

// ToParameters builds the domain ScrapingParameters from the request body,
// injecting the server-side API key (never accepted from the client).
func (r TriggerRequest) ToParameters(serverAPIKey string) model.ScrapingParameters {
	return model.ScrapingParameters{
		GoogleAPIKey: serverAPIKey,
		JobTitles:    r.JobTitles,
		Location:     r.Location,
		TimeFilter:   r.TimeFilter,
		MaxJobs:      r.MaxJobs,
	}
}

// TriggerResponse is the 202 response body.
type TriggerResponse struct {
	Message string `json:"message"`
	JobID   string `json:"job_id"`
}

// ProgressUpdateRequest is the PATCH /jobs/{id}/progress request body.
type ProgressUpdateRequest struct {
	Progress string `json:"progress" binding:"required"`
}

// HealthResponse is the GET /health response body.
type HealthResponse struct {
	Status          string `json:"status"`
	KafkaConnection string `json:"kafka_connection"`
	KafkaBroker     string `json:"kafka_broker"`
}

// SkillItem projects one job_skills row.
type SkillItem struct {
	Skill string `json:"skill"`
}

// JobItem projects one persisted job with its skills for GET /data.
type JobItem struct {
	JobID       string      `json:"job_id"`
	Title       string      `json:"title"`
	CompanyName string      `json:"company_name"`
	Location    string      `json:"location"`
	JobURL      string      `json:"job_url"`
	DatePosted  *string     `json:"date_posted,omitempty"`
	DateScraped string      `json:"date_scraped"`
	Progress    string      `json:"progress"`
	Skills      []SkillItem `json:"skills"`
}

// JobItemFrom projects a model.Job into its HTTP representation.
func JobItemFrom(job model.Job) JobItem {
	skills := make([]SkillItem, 0, len(job.Skills))
	for _, s := range job.Skills {
		skills = append(skills, SkillItem{Skill: s.Skill})
	}
	item := JobItem{
		JobID:       job.JobID,
		Title:       job.Title,
		CompanyName: job.CompanyName,
		Location:    job.Location,
		JobURL:      job.JobURL,
		DateScraped: job.DateScraped.Format("2006-01-02T15:04:05Z07:00"),
		Progress:    job.Progress,
		Skills:      skills,
	}
	if job.DatePosted != nil {
		s := job.DatePosted.Format("2006-01-02")
		item.DatePosted = &s
	}
	return item
}
