package timer

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultsInterval(t *testing.T) {
	t.Parallel()
	assert.Equal(t, time.Second, New(0).Interval())
	assert.Equal(t, time.Second, New(-time.Millisecond).Interval())
	assert.Equal(t, 250*time.Millisecond, New(250*time.Millisecond).Interval())
}

func TestDriverFiresUntilStopped(t *testing.T) {
	t.Parallel()
	d := New(2 * time.Millisecond)
	var fired atomic.Int64

	d.Start(context.Background(), func() { fired.Add(1) })
	require.True(t, d.Active())
	require.Eventually(t, func() bool { return fired.Load() >= 3 }, time.Second, time.Millisecond)

	d.Stop()
	assert.False(t, d.Active())
	after := fired.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, fired.Load(), "no fires after Stop")

	// Stop on a stopped driver is a no-op.
	d.Stop()
}

func TestDriverRestartDoesNotStack(t *testing.T) {
	t.Parallel()
	d := New(2 * time.Millisecond)
	var first, second atomic.Int64

	d.Start(context.Background(), func() { first.Add(1) })
	d.Start(context.Background(), func() { second.Add(1) })

	require.Eventually(t, func() bool { return second.Load() >= 2 }, time.Second, time.Millisecond)
	frozen := first.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, frozen, first.Load(), "replaced loop keeps firing")

	d.Stop()
	assert.False(t, d.Active())
}

func TestDriverStopsWithContext(t *testing.T) {
	t.Parallel()
	d := New(2 * time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	d.Start(ctx, func() {})
	cancel()

	require.Eventually(t, func() bool { return !d.Active() }, time.Second, time.Millisecond)
	d.Stop()
}
