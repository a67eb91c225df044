package gatewaysvc

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/mohamedhayballa22/job-ingestion-pipeline/internal/apierr"
	"github.com/mohamedhayballa22/job-ingestion-pipeline/internal/broker"
	"github.com/mohamedhayballa22/job-ingestion-pipeline/internal/db"
	"github.com/mohamedhayballa22/job-ingestion-pipeline/internal/dto"
	"github.com/mohamedhayballa22/job-ingestion-pipeline/internal/model"
)

// Handlers wires the status map, hub, repository, producer and rate
// limiter into the gateway's HTTP surface, generalized from the teacher's
// JobController.
type Handlers struct {
	statusMap    *StatusMap
	hub          *Hub
	repo         *db.JobRepository
	jobsWriter   brokerWriter
	rateLimiter  *RateLimiter
	metrics      *Metrics
	serverAPIKey string
	brokerURL    string
	log          zerolog.Logger
}

// brokerWriter is the subset of *kafka.Writer the handlers use, narrowed so
// this file does not need to import kafka-go directly.
type brokerWriter interface {
	WriteMessagesCtx(event model.JobEvent) error
}

// NewHandlers builds a Handlers instance. metrics may be nil (e.g. in
// tests), in which case the rate-limit-denied counter is simply not
// updated.
func NewHandlers(statusMap *StatusMap, hub *Hub, repo *db.JobRepository, jobsWriter brokerWriter, rateLimiter *RateLimiter, metrics *Metrics, serverAPIKey, brokerURL string, log zerolog.Logger) *Handlers {
	return &Handlers{
		statusMap:    statusMap,
		hub:          hub,
		repo:         repo,
		jobsWriter:   jobsWriter,
		rateLimiter:  rateLimiter,
		metrics:      metrics,
		serverAPIKey: serverAPIKey,
		brokerURL:    brokerURL,
		log:          log,
	}
}

// RegisterRoutes attaches every HTTP operation from SPEC_FULL.md §4.1 to r.
func (h *Handlers) RegisterRoutes(r gin.IRouter) {
	r.POST("/trigger-job-pipeline", h.TriggerJobPipeline)
	r.GET("/jobs/:id/status", h.GetJobStatus)
	r.GET("/data", h.GetData)
	r.PATCH("/jobs/:id/progress", h.UpdateProgress)
	r.DELETE("/jobs/:id", h.DeleteJob)
	r.GET("/health", h.Health)
	r.GET("/ws", h.PushChannel)
}

// TriggerJobPipeline is POST /trigger-job-pipeline.
func (h *Handlers) TriggerJobPipeline(c *gin.Context) {
	allowed, remaining, resetSeconds := h.rateLimiter.Allow(c.Request.Context(), c.ClientIP())
	c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
	if !allowed {
		if h.metrics != nil {
			h.metrics.rateLimitDenied.Inc()
		}
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetSeconds, 10))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"error":   "Too Many Requests",
			"message": "rate limit exceeded",
		})
		return
	}

	var req dto.TriggerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.HandleValidationError(c, err)
		return
	}

	params := req.ToParameters(h.serverAPIKey)
	if err := params.Validate(); err != nil {
		apierr.HandleValidationError(c, err)
		return
	}

	if h.serverAPIKey == "" {
		h.log.Error().Msg("GOOGLE_API_KEY not configured; cannot accept job")
		apierr.HandleInternalError(c, errors.New("server is missing GOOGLE_API_KEY"))
		return
	}

	jobID := uuid.New().String()
	event := model.JobEvent{
		JobID:      jobID,
		EventType:  model.EventJobRequested,
		Source:     model.SourceGateway,
		Timestamp:  model.NowTimestamp(),
		Parameters: &params,
	}

	if err := h.jobsWriter.WriteMessagesCtx(event); err != nil {
		h.log.Error().Err(err).Str("job_id", jobID).Msg("failed to publish job_requested")
		apierr.HandleServiceUnavailable(c, &apierr.BrokerUnavailableError{Cause: err})
		return
	}

	h.statusMap.CreateRequested(jobID)
	c.JSON(http.StatusAccepted, dto.TriggerResponse{Message: "job accepted", JobID: jobID})
}

// GetJobStatus is GET /jobs/{job_id}/status.
func (h *Handlers) GetJobStatus(c *gin.Context) {
	jobID := c.Param("id")
	entry, ok := h.statusMap.Get(jobID)
	if !ok {
		apierr.HandleNotFound(c, apierr.NewNotFoundError("job status", jobID))
		return
	}
	c.JSON(http.StatusOK, entry)
}

// GetData is GET /data.
func (h *Handlers) GetData(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	jobs, err := h.repo.FindAll(offset, limit)
	if err != nil {
		apierr.HandleInternalError(c, err)
		return
	}

	items := make([]dto.JobItem, 0, len(jobs))
	for _, j := range jobs {
		items = append(items, dto.JobItemFrom(j))
	}
	c.JSON(http.StatusOK, items)
}

// UpdateProgress is PATCH /jobs/{job_id}/progress.
func (h *Handlers) UpdateProgress(c *gin.Context) {
	jobID := c.Param("id")
	var req dto.ProgressUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.HandleValidationError(c, err)
		return
	}

	if err := h.repo.UpdateProgress(jobID, req.Progress); err != nil {
		if err == gorm.ErrRecordNotFound {
			apierr.HandleNotFound(c, apierr.NewNotFoundError("job", jobID))
			return
		}
		apierr.HandleInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"job_id": jobID, "progress": req.Progress})
}

// DeleteJob is DELETE /jobs/{job_id}.
func (h *Handlers) DeleteJob(c *gin.Context) {
	jobID := c.Param("id")
	if err := h.repo.Delete(jobID); err != nil {
		if err == gorm.ErrRecordNotFound {
			apierr.HandleNotFound(c, apierr.NewNotFoundError("job", jobID))
			return
		}
		apierr.HandleInternalError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Health is GET /health. It never lets a broker outage fail the request.
func (h *Handlers) Health(c *gin.Context) {
	status := "connected"
	if err := broker.Ping(c.Request.Context(), h.brokerURL); err != nil {
		status = "error"
	}
	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:          "healthy",
		KafkaConnection: status,
		KafkaBroker:     h.brokerURL,
	})
}
