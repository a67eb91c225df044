package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohamedhayballa22/job-ingestion-pipeline/internal/model"
)

func TestTriggerRequest_ToParameters_InjectsServerAPIKey(t *testing.T) {
	req := TriggerRequest{JobTitles: "Engineer", Location: "Remote", TimeFilter: "1w", MaxJobs: 20}

	params := req.ToParameters("server-side-key")

	assert.Equal(t, "server-side-key", params.GoogleAPIKey)
	assert.Equal(t, "Engineer", params.JobTitles)
	assert.Equal(t, "Remote", params.Location)
	assert.Equal(t, "1w", params.TimeFilter)
	assert.Equal(t, 20, params.MaxJobs)
}

func TestJobItemFrom_WithDatePosted(t *testing.T) {
	posted := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	scraped := time.Date(2024, 3, 16, 9, 30, 0, 0, time.UTC)

	job := model.Job{
		JobID:       "job-1",
		Title:       "Engineer",
		CompanyName: "Acme",
		Location:    "Remote",
		JobURL:      "https://example.com/1",
		DatePosted:  &posted,
		DateScraped: scraped,
		Progress:    model.ProgressHaventApplied,
		Skills: []model.JobSkill{
			{Skill: "Go"},
			{Skill: "Kubernetes"},
		},
	}

	item := JobItemFrom(job)

	require.NotNil(t, item.DatePosted)
	assert.Equal(t, "2024-03-15", *item.DatePosted)
	assert.Equal(t, "job-1", item.JobID)
	assert.Len(t, item.Skills, 2)
	assert.Equal(t, "Go", item.Skills[0].Skill)
}

func TestJobItemFrom_NilDatePosted(t *testing.T) {
	job := model.Job{JobID: "job-2", DateScraped: time.Now()}
	item := JobItemFrom(job)
	assert.Nil(t, item.DatePosted)
	assert.Empty(t, item.Skills)
}
