package background

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRefresher struct {
	calls atomic.Int32
	err   error
}

func (r *countingRefresher) Refresh(ctx context.Context) error {
	r.calls.Add(1)
	return r.err
}

func TestNewJobScheduler_RegistersRefreshJob(t *testing.T) {
	js, err := NewJobScheduler(&countingRefresher{}, time.Minute)
	require.NoError(t, err)
	t.Cleanup(func() { _ = js.Stop() })

	assert.Equal(t, []string{lookupRefreshJobName}, js.JobNames())
}

func TestNewJobScheduler_ZeroIntervalDisablesJob(t *testing.T) {
	js, err := NewJobScheduler(&countingRefresher{}, 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = js.Stop() })

	assert.Empty(t, js.JobNames())
}

func TestRefreshLookups(t *testing.T) {
	ok := &countingRefresher{}
	js := &JobScheduler{lookups: ok}
	assert.NoError(t, js.refreshLookups())
	assert.Equal(t, int32(1), ok.calls.Load())

	failing := &countingRefresher{err: errors.New("db down")}
	js = &JobScheduler{lookups: failing}
	assert.Error(t, js.refreshLookups())
}

func TestScheduler_RunsRefreshOnStart(t *testing.T) {
	refresher := &countingRefresher{}
	js, err := NewJobScheduler(refresher, time.Hour)
	require.NoError(t, err)

	js.Start()
	t.Cleanup(func() { _ = js.Stop() })

	assert.Eventually(t, func() bool {
		return refresher.calls.Load() >= 1
	}, 2*time.Second, 10*time.Millisecond)
}
