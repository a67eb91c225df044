package scrapersvc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassifyError(t *testing.T) {
	got := classifyError(errors.New("connection reset"))
	assert.Equal(t, "ScrapeError - connection reset", got)
}

func TestSleepRandom_RespectsBounds(t *testing.T) {
	start := time.Now()
	sleepRandom(context.Background(), 10*time.Millisecond, 20*time.Millisecond)
	elapsed := time.Since(start)

	assert.GreaterOrEqual(t, elapsed, 10*time.Millisecond)
	assert.LessOrEqual(t, elapsed, 200*time.Millisecond) // generous upper bound for scheduler jitter
}

func TestSleepRandom_ReturnsEarlyOnCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	sleepRandom(ctx, 1*time.Second, 2*time.Second)
	elapsed := time.Since(start)

	assert.Less(t, elapsed, 100*time.Millisecond)
}

func TestProgressPercentage_NeverExceeds90(t *testing.T) {
	maxJobs := 10
	for scraped := 1; scraped <= maxJobs; scraped++ {
		pct := 5.0 + 85.0*float64(scraped)/float64(maxJobs)
		if pct > 90.0 {
			pct = 90.0
		}
		assert.LessOrEqual(t, pct, 90.0)
		assert.GreaterOrEqual(t, pct, 5.0)
	}
}
