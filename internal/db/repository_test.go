package db

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mohamedhayballa22/job-ingestion-pipeline/internal/model"
)

// TestTableNames guards against the core.jobs / core.job_skills pinning
// regressing during future GORM model edits (SPEC_FULL.md §3). Exercising
// the rest of JobRepository needs a live Postgres instance and is left to
// the integration suite.
func TestTableNames(t *testing.T) {
	assert.Equal(t, "core.jobs", model.Job{}.TableName())
	assert.Equal(t, "core.job_skills", model.JobSkill{}.TableName())
}
