package reaper

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kabuna254/Job-App/config"
	"github.com/Kabuna254/Job-App/internal/observability/statsd"
)

type countingPurger struct {
	calls atomic.Int32
	err   error
}

func (p *countingPurger) PurgeExpired(context.Context) (int64, error) {
	p.calls.Add(1)
	if p.err != nil {
		return 0, p.err
	}
	return 2, nil
}

func TestNewRunner_RequiresPurger(t *testing.T) {
	_, err := NewRunner(RunnerOptions{})
	require.ErrorIs(t, err, ErrNoPurger)
}

func TestRunner_PurgeNow(t *testing.T) {
	rec := &statsd.Recorder{}
	r, err := NewRunner(RunnerOptions{Purger: &countingPurger{}, Metrics: rec})
	require.NoError(t, err)

	n, err := r.PurgeNow(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NotEmpty(t, rec.Points())

	failing, err := NewRunner(RunnerOptions{Purger: &countingPurger{err: errors.New("locked")}})
	require.NoError(t, err)
	_, err = failing.PurgeNow(context.Background())
	require.ErrorContains(t, err, "purge expired client state")
}

func TestRunner_RunStopsOnCancel(t *testing.T) {
	p := &countingPurger{}
	r, err := NewRunner(RunnerOptions{Purger: p, Config: config.ReaperConfig{Interval: 100 * time.Millisecond}})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	require.Eventually(t, func() bool { return p.calls.Load() >= 1 }, 5*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("runner did not stop")
	}
}
