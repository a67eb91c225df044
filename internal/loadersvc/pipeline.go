package loadersvc

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mohamedhayballa22/job-ingestion-pipeline/internal/broker"
	"github.com/mohamedhayballa22/job-ingestion-pipeline/internal/model"
)

// processJob runs the ten-step pipeline of SPEC_FULL.md §4.3 for one job.
func (w *Worker) processJob(ctx context.Context, event model.JobEvent) error {
	jobID := event.JobID

	listings, err := readListingsFile(w.dataDir, jobID)
	if err != nil {
		return w.fail(ctx, jobID, "FileError - "+err.Error())
	}

	if len(listings) == 0 {
		if err := w.emitStatus(ctx, jobID, model.EventLoadingComplete, model.Pct(100.0), "Successfully loaded 0 new jobs (empty file)"); err != nil {
			return fmt.Errorf("emit loading_complete: %w", err)
		}
		w.deleteDataFile(jobID)
		return nil
	}

	existing, err := w.repo.ExistingIdempotencyKeys()
	if err != nil {
		return w.fail(ctx, jobID, "DatabaseError - "+err.Error())
	}

	if err := w.emitStatus(ctx, jobID, model.EventLoadingProgress, model.Pct(91.0),
		fmt.Sprintf("Preparing to load %d potential jobs...", len(listings))); err != nil {
		w.log.Error().Err(err).Msg("failed to emit preparing-to-load progress")
	}

	newJobs, duplicates := buildNewJobs(listings, existing)

	var prepareMsg string
	if duplicates > 0 {
		prepareMsg = fmt.Sprintf("Identified %d duplicates. Preparing to commit %d new jobs...", duplicates, len(newJobs))
	} else {
		prepareMsg = fmt.Sprintf("Preparing to commit %d new jobs...", len(newJobs))
	}
	if err := w.emitStatus(ctx, jobID, model.EventLoadingProgress, model.Pct(98.0), prepareMsg); err != nil {
		w.log.Error().Err(err).Msg("failed to emit pre-commit progress")
	}

	if err := w.repo.BulkCreate(newJobs); err != nil {
		return w.fail(ctx, jobID, "DatabaseError - "+err.Error())
	}

	if err := w.emitStatus(ctx, jobID, model.EventLoadingComplete, model.Pct(100.0),
		fmt.Sprintf("Successfully loaded %d new jobs into the database.", len(newJobs))); err != nil {
		w.log.Error().Err(err).Msg("failed to emit loading_complete")
	}

	w.deleteDataFile(jobID)
	return nil
}

// buildNewJobs validates each listing, skips duplicates against existing
// (mutated in place as new keys are claimed so within-batch duplicates are
// also caught), and deduplicates skills within a listing by a
// case-sensitive, whitespace-stripped compare (SPEC_FULL.md §4.3 step 6).
func buildNewJobs(listings []model.JobListing, existing map[model.IdempotencyKey]struct{}) ([]model.Job, int) {
	jobs := make([]model.Job, 0, len(listings))
	duplicates := 0

	for _, listing := range listings {
		if !listing.ValidForPersistence() {
			duplicates++
			continue
		}

		key := listing.IdempotencyKey()
		if _, seen := existing[key]; seen {
			duplicates++
			continue
		}
		existing[key] = struct{}{}

		jobID := uuid.NewString()
		newJob := model.Job{
			JobID:       jobID,
			Title:       listing.Title,
			CompanyName: listing.Company,
			Location:    listing.Location,
			JobURL:      listing.URL,
			DatePosted:  parseDatePosted(listing.DatePosted),
			DateScraped: currentTime(),
			Progress:    model.ProgressHaventApplied,
			Skills:      dedupeSkills(listing.ExtractedSkills, jobID),
		}
		jobs = append(jobs, newJob)
	}

	return jobs, duplicates
}

// dedupeSkills strips and case-sensitively dedupes a listing's extracted
// skills, discarding empties, and attaches them to jobID.
func dedupeSkills(skills []string, jobID string) []model.JobSkill {
	seen := make(map[string]struct{}, len(skills))
	out := make([]model.JobSkill, 0, len(skills))
	for _, s := range skills {
		trimmed := strings.TrimSpace(s)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, model.JobSkill{JobID: jobID, Skill: trimmed})
	}
	return out
}

// currentTime is isolated so callers needing deterministic loader tests can
// stub it; production code uses wall-clock time.
var currentTime = time.Now

// emitStatus publishes a job-status-updates event.
func (w *Worker) emitStatus(ctx context.Context, jobID, eventType string, pct *float64, description string) error {
	return broker.Publish(ctx, w.statusW, model.JobEvent{
		JobID:       jobID,
		EventType:   eventType,
		Source:      model.SourceLoader,
		Timestamp:   model.NowTimestamp(),
		Percentage:  pct,
		Description: description,
	})
}

// fail publishes the dual job_failed/terminal job_progress pair at the
// loader's fixed 90% band (SPEC_FULL.md §4.3 "Percentage bands").
func (w *Worker) fail(ctx context.Context, jobID, errorDetails string) error {
	return broker.PublishFailure(ctx, w.notifW, w.statusW, model.SourceLoader, jobID, errorDetails, 90.0)
}

// deleteDataFile removes the job's result file, emitting a system_warning
// (but not failing the job) if deletion fails.
func (w *Worker) deleteDataFile(jobID string) {
	if err := deleteListingsFile(w.dataDir, jobID); err != nil {
		w.log.Warn().Err(err).Str("job_id", jobID).Msg("failed to delete data file after load")
		warnEvent := model.JobEvent{
			JobID:       jobID,
			EventType:   model.EventSystemWarning,
			Source:      model.SourceLoader,
			Timestamp:   model.NowTimestamp(),
			Description: "failed to delete data file: " + err.Error(),
		}
		if pubErr := broker.Publish(context.Background(), w.notifW, warnEvent); pubErr != nil {
			w.log.Error().Err(pubErr).Msg("failed to publish system_warning")
		}
	}
}
