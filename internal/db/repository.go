package db

import (
	"strings"

	"gorm.io/gorm"

	"github.com/mohamedhayballa22/job-ingestion-pipeline/internal/model"
)

// JobRepository provides the persistence operations the gateway and loader
// need against the core.jobs / core.job_skills tables.
type JobRepository struct {
	db *gorm.DB
}

// NewJobRepository creates a new JobRepository with the given connection.
func NewJobRepository(gdb *gorm.DB) *JobRepository {
	return &JobRepository{db: gdb}
}

// Migrate creates/updates the jobs and job_skills tables.
func (r *JobRepository) Migrate() error {
	return r.db.AutoMigrate(&model.Job{}, &model.JobSkill{})
}

// FindAll returns all persisted jobs with their skills preloaded, for the
// GET /data projection.
func (r *JobRepository) FindAll(offset, limit int) ([]model.Job, error) {
	var jobs []model.Job
	q := r.db.Preload("Skills").Order("date_scraped DESC")
	if limit > 0 {
		q = q.Offset(offset).Limit(limit)
	}
	err := q.Find(&jobs).Error
	return jobs, err
}

// FindByID finds one persisted job by job_id, with skills preloaded.
func (r *JobRepository) FindByID(jobID string) (*model.Job, error) {
	var job model.Job
	err := r.db.Preload("Skills").First(&job, "job_id = ?", jobID).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// UpdateProgress mutates the progress field of an existing job.
// Returns gorm.ErrRecordNotFound if no row matches.
func (r *JobRepository) UpdateProgress(jobID, progress string) error {
	res := r.db.Model(&model.Job{}).Where("job_id = ?", jobID).Update("progress", progress)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a persisted job; its skills cascade via the FK constraint.
// Returns gorm.ErrRecordNotFound if no row matches.
func (r *JobRepository) Delete(jobID string) error {
	res := r.db.Where("job_id = ?", jobID).Delete(&model.Job{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ExistingIdempotencyKeys loads the set of (lower(title), lower(company))
// pairs already present in the database, the loader's pre-fetched dedup set
// (SPEC_FULL.md §4.3 step 4).
func (r *JobRepository) ExistingIdempotencyKeys() (map[model.IdempotencyKey]struct{}, error) {
	var rows []struct {
		Title       string
		CompanyName string
	}
	if err := r.db.Model(&model.Job{}).Select("title", "company_name").Find(&rows).Error; err != nil {
		return nil, err
	}
	keys := make(map[model.IdempotencyKey]struct{}, len(rows))
	for _, row := range rows {
		keys[model.IdempotencyKey{
			Title:   strings.ToLower(strings.TrimSpace(row.Title)),
			Company: strings.ToLower(strings.TrimSpace(row.CompanyName)),
		}] = struct{}{}
	}
	return keys, nil
}

// BulkCreate inserts all new jobs (with their nested skills) in a single
// transaction, rolling back entirely on any error (SPEC_FULL.md §4.3 step 8).
func (r *JobRepository) BulkCreate(jobs []model.Job) error {
	if len(jobs) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&jobs).Error
	})
}
