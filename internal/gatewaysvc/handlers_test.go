package gatewaysvc

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohamedhayballa22/job-ingestion-pipeline/internal/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeBrokerWriter is a brokerWriter stand-in recording the last published
// event, or returning a canned error.
type fakeBrokerWriter struct {
	lastEvent model.JobEvent
	err       error
}

func (f *fakeBrokerWriter) WriteMessagesCtx(event model.JobEvent) error {
	if f.err != nil {
		return f.err
	}
	f.lastEvent = event
	return nil
}

func newTestHandlers(writer brokerWriter, rateLimiter *RateLimiter) (*Handlers, *StatusMap) {
	return newTestHandlersWithAPIKey(writer, rateLimiter, "test-google-api-key")
}

func newTestHandlersWithAPIKey(writer brokerWriter, rateLimiter *RateLimiter, apiKey string) (*Handlers, *StatusMap) {
	statusMap := NewStatusMap()
	hub := NewHub(zerolog.Nop(), nil)
	if rateLimiter == nil {
		rateLimiter = NewRateLimiter(nil, false, 100, 60, zerolog.Nop())
	}
	h := NewHandlers(statusMap, hub, nil, writer, rateLimiter, nil, apiKey, "localhost:9092", zerolog.Nop())
	return h, statusMap
}

func TestTriggerJobPipeline_Success(t *testing.T) {
	writer := &fakeBrokerWriter{}
	h, statusMap := newTestHandlers(writer, nil)

	router := gin.New()
	h.RegisterRoutes(router)

	body, _ := json.Marshal(map[string]any{
		"job_titles": "Backend Engineer",
		"location":   "Remote",
		"max_jobs":   10,
	})
	req := httptest.NewRequest(http.MethodPost, "/trigger-job-pipeline", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, model.EventJobRequested, writer.lastEvent.EventType)

	var resp struct {
		JobID string `json:"job_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	_, ok := statusMap.Get(resp.JobID)
	assert.True(t, ok)
}

func TestTriggerJobPipeline_ValidationError(t *testing.T) {
	h, _ := newTestHandlers(&fakeBrokerWriter{}, nil)
	router := gin.New()
	h.RegisterRoutes(router)

	body, _ := json.Marshal(map[string]any{"job_titles": "", "location": "Remote", "max_jobs": 10})
	req := httptest.NewRequest(http.MethodPost, "/trigger-job-pipeline", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestTriggerJobPipeline_RateLimitDisabledSetsHeader(t *testing.T) {
	limiter := NewRateLimiter(nil, false, 100, 60, zerolog.Nop())
	h, _ := newTestHandlers(&fakeBrokerWriter{}, limiter)
	router := gin.New()
	h.RegisterRoutes(router)

	body, _ := json.Marshal(map[string]any{"job_titles": "Engineer", "location": "Remote", "max_jobs": 10})
	req := httptest.NewRequest(http.MethodPost, "/trigger-job-pipeline", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "100", rec.Header().Get("X-RateLimit-Remaining"))
}

func TestTriggerJobPipeline_BrokerUnavailable(t *testing.T) {
	writer := &fakeBrokerWriter{err: assertErr("dial tcp: connection refused")}
	h, _ := newTestHandlers(writer, nil)
	router := gin.New()
	h.RegisterRoutes(router)

	body, _ := json.Marshal(map[string]any{"job_titles": "Engineer", "location": "Remote", "max_jobs": 10})
	req := httptest.NewRequest(http.MethodPost, "/trigger-job-pipeline", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestTriggerJobPipeline_MissingServerAPIKey(t *testing.T) {
	writer := &fakeBrokerWriter{}
	h, _ := newTestHandlersWithAPIKey(writer, nil, "")
	router := gin.New()
	h.RegisterRoutes(router)

	body, _ := json.Marshal(map[string]any{"job_titles": "Engineer", "location": "Remote", "max_jobs": 10})
	req := httptest.NewRequest(http.MethodPost, "/trigger-job-pipeline", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, writer.lastEvent.JobID)
}

func TestGetJobStatus_NotFound(t *testing.T) {
	h, _ := newTestHandlers(&fakeBrokerWriter{}, nil)
	router := gin.New()
	h.RegisterRoutes(router)

	req := httptest.NewRequest(http.MethodGet, "/jobs/does-not-exist/status", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetJobStatus_Found(t *testing.T) {
	h, statusMap := newTestHandlers(&fakeBrokerWriter{}, nil)
	statusMap.CreateRequested("job-1")
	router := gin.New()
	h.RegisterRoutes(router)

	req := httptest.NewRequest(http.MethodGet, "/jobs/job-1/status", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealth_NeverFailsOnBrokerOutage(t *testing.T) {
	h, _ := newTestHandlers(&fakeBrokerWriter{}, nil)
	router := gin.New()
	h.RegisterRoutes(router)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	// brokerURL points nowhere reachable in this test environment; Health
	// must still report 200 with a degraded kafka_connection field.
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Status          string `json:"status"`
		KafkaConnection string `json:"kafka_connection"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
}

// assertErr is a tiny error constructor to avoid importing errors solely
// for one string.
type assertErrType string

func (e assertErrType) Error() string { return string(e) }

func assertErr(msg string) error { return assertErrType(msg) }
