package scrapersvc

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/mohamedhayballa22/job-ingestion-pipeline/internal/broker"
	"github.com/mohamedhayballa22/job-ingestion-pipeline/internal/llm"
	"github.com/mohamedhayballa22/job-ingestion-pipeline/internal/model"
)

const listingsPerPage = 25

// processJob runs the six-step pipeline of SPEC_FULL.md §4.2 for one job.
func (w *Worker) processJob(ctx context.Context, event model.JobEvent) error {
	if event.Parameters == nil {
		return w.fail(ctx, event.JobID, "ValidationError - missing scraping parameters", 0.0)
	}
	params := *event.Parameters
	if err := params.Validate(); err != nil {
		return w.fail(ctx, event.JobID, "ValidationError - "+err.Error(), 0.0)
	}

	skillClient := llm.New(params.GoogleAPIKey, w.llmTimeout)

	if err := w.emitStatus(ctx, event.JobID, model.EventJobStarted, model.Pct(0.0), "Initializing"); err != nil {
		return fmt.Errorf("emit job_started: %w", err)
	}

	titles := params.Titles()
	listings, err := w.scrapeAll(ctx, event.JobID, titles, params, skillClient)
	if err != nil {
		return w.fail(ctx, event.JobID, classifyError(err), 0.0)
	}

	dataPath, err := writeListingsFile(w.dataDir, event.JobID, listings)
	if err != nil {
		return w.fail(ctx, event.JobID, "IOError - "+err.Error(), 0.0)
	}

	return w.emitLoadingRequested(ctx, event.JobID, dataPath)
}

// scrapeAll iterates titles, paginating each until max_jobs is reached or a
// title's pages run dry, emitting progress as it goes (SPEC_FULL.md §4.2
// step 4).
func (w *Worker) scrapeAll(ctx context.Context, jobID string, titles []string, params model.ScrapingParameters, skillClient *llm.Client) ([]model.JobListing, error) {
	listings := make([]model.JobListing, 0, params.MaxJobs)
	jobsScraped := 0

	for _, title := range titles {
		if jobsScraped >= params.MaxJobs {
			break
		}

		page := 0
		for {
			if jobsScraped >= params.MaxJobs {
				break
			}

			cards, err := fetchSearchPage(ctx, w.httpClient, w.rateLimiter, title, params.Location, params.TimeFilter, page)
			if err != nil {
				// Per-page isolated failure: abandon this title's remaining
				// pages, continue to the next title (SPEC_FULL.md §4.2
				// failure semantics).
				w.log.Warn().Err(err).Str("title", title).Int("page", page).Msg("page fetch failed, abandoning title")
				break
			}
			if len(cards) == 0 {
				break
			}

			for _, card := range cards {
				if jobsScraped >= params.MaxJobs {
					break
				}
				if card.Title == "" || card.Company == "" || card.URL == "" {
					continue
				}

				listing := model.JobListing{
					SearchQuery: title,
					Title:       card.Title,
					Company:     card.Company,
					Location:    card.Location,
					DatePosted:  card.DatePosted,
					URL:         card.URL,
				}

				sleepRandom(ctx, 1500*time.Millisecond, 5*time.Second)
				desc, descErr := fetchDetailDescription(ctx, w.httpClient, w.rateLimiter, card.URL)
				if descErr == nil {
					listing.Description = desc
					listing.ExtractedSkills = skillClient.ExtractSkills(ctx, desc)
				} else {
					listing.ExtractedSkills = []string{}
				}

				listings = append(listings, listing)
				jobsScraped++

				pct := 5.0 + 85.0*float64(jobsScraped)/float64(params.MaxJobs)
				if pct > 90.0 {
					pct = 90.0
				}
				progressDesc := fmt.Sprintf("Processing job %d/%d: %s", jobsScraped, params.MaxJobs, title)
				if err := w.emitStatus(ctx, jobID, model.EventJobProgress, model.Pct(pct), progressDesc); err != nil {
					w.log.Error().Err(err).Msg("failed to emit job_progress")
				}
			}

			page++
			if jobsScraped < params.MaxJobs {
				sleepRandom(ctx, 3*time.Second, 7*time.Second)
			}
		}
	}

	return listings, nil
}

// emitStatus publishes a job-status-updates event.
func (w *Worker) emitStatus(ctx context.Context, jobID, eventType string, pct *float64, description string) error {
	return broker.Publish(ctx, w.statusW, model.JobEvent{
		JobID:       jobID,
		EventType:   eventType,
		Source:      model.SourceScraper,
		Timestamp:   model.NowTimestamp(),
		Percentage:  pct,
		Description: description,
	})
}

// emitLoadingRequested hands the job off to the loader (SPEC_FULL.md §4.2
// step 6).
func (w *Worker) emitLoadingRequested(ctx context.Context, jobID, dataPath string) error {
	return broker.Publish(ctx, w.dataWriter, model.JobEvent{
		JobID:     jobID,
		EventType: model.EventLoadingRequested,
		Source:    model.SourceScraper,
		Timestamp: model.NowTimestamp(),
		DataPath:  dataPath,
	})
}

// fail publishes the dual job_failed/terminal job_progress pair.
func (w *Worker) fail(ctx context.Context, jobID, errorDetails string, terminalPct float64) error {
	return broker.PublishFailure(ctx, w.notifW, w.statusW, model.SourceScraper, jobID, errorDetails, terminalPct)
}

// sleepRandom blocks for a random duration in [min, max], honoring context
// cancellation.
func sleepRandom(ctx context.Context, min, max time.Duration) {
	d := min + time.Duration(rand.Int63n(int64(max-min)+1))
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}

// classifyError renders an error as "<ExceptionKind> - <message>".
func classifyError(err error) string {
	return fmt.Sprintf("ScrapeError - %v", err)
}
