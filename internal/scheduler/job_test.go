package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobHistory_AddResultKeepsMostRecent(t *testing.T) {
	h := &JobHistory{}

	for i := 0; i < historyLimit+20; i++ {
		h.AddResult(JobResult{
			JobName:   "warm_cache",
			StartTime: time.Date(2026, 1, 1, 0, i, 0, 0, time.UTC),
			Success:   true,
		})
	}

	assert.Len(t, h.Results, historyLimit)
	// The oldest 20 fell off the front.
	assert.Equal(t, 20, h.Results[0].StartTime.Minute())
}

func TestJobHistory_Last(t *testing.T) {
	h := &JobHistory{}

	_, ok := h.Last()
	assert.False(t, ok, "no result before the first run")

	h.AddResult(JobResult{JobName: "warm_cache", Success: true})
	h.AddResult(JobResult{JobName: "warm_cache", Success: false, Error: "provider down"})

	last, ok := h.Last()
	require.True(t, ok)
	assert.False(t, last.Success)
	assert.Equal(t, "provider down", last.Error)
}
