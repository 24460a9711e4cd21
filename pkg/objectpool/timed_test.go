package objectpool

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/objectpool/pkg/config"
	"github.com/ajitpratap0/objectpool/pkg/errors"
	"github.com/ajitpratap0/objectpool/pkg/testutil"
)

func newTimedTestPool(t *testing.T, idleTimeout, sweepInterval time.Duration) (*TimedPool[*testResource], *atomic.Int64) {
	t.Helper()

	var released atomic.Int64
	tp, err := NewTimedPoolWithInterval(Config[*testResource]{
		Name:              "timed-test",
		MaxSize:           8,
		Factory:           func() (*testResource, error) { return &testResource{}, nil },
		Release:           func(*testResource) error { released.Add(1); return nil },
		EnableDiagnostics: true,
		Logger:            testutil.TestLogger(t),
	}, idleTimeout, sweepInterval)
	require.NoError(t, err)
	t.Cleanup(tp.Stop)
	return tp, &released
}

func TestNewTimedPoolRejectsBadTimeout(t *testing.T) {
	cfg := NewConfig("bad", 4, func() (int, error) { return 0, nil })

	tp, err := NewTimedPool(cfg, 0)
	require.Error(t, err)
	assert.Nil(t, tp)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
}

func TestTimedPoolEvictsIdleObjects(t *testing.T) {
	tp, released := newTimedTestPool(t, 30*time.Millisecond, 10*time.Millisecond)

	objs := make([]*PooledObject[*testResource], 3)
	for i := range objs {
		obj, err := tp.Get()
		require.NoError(t, err)
		objs[i] = obj
	}
	for _, obj := range objs {
		obj.Release()
	}
	require.Equal(t, 3, tp.ObjectsInPool())

	testutil.AssertEventually(t, func() bool {
		return tp.ObjectsInPool() == 0
	}, 2*time.Second, "idle objects were not evicted")

	testutil.AssertEventually(t, func() bool {
		return released.Load() == 3
	}, time.Second, "evicted objects were not destroyed")
	assert.Equal(t, uint64(3), tp.Diagnostics().TotalDestroyed())
	// Idle eviction is not overflow; that counter is reserved for returns and
	// sweep displacements that hit a full buffer.
	assert.Equal(t, uint64(0), tp.Diagnostics().OverflowCount())
}

func TestTimedPoolKeepsFreshObjects(t *testing.T) {
	tp, _ := newTimedTestPool(t, 10*time.Minute, 10*time.Millisecond)

	obj, err := tp.Get()
	require.NoError(t, err)
	obj.Release()

	// Several sweep intervals pass without the object going idle.
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 1, tp.ObjectsInPool())
}

func TestTimedPoolStopJoinsSweeper(t *testing.T) {
	tp, _ := newTimedTestPool(t, 20*time.Millisecond, 10*time.Millisecond)

	tp.Stop()
	tp.Stop() // stopping twice is a no-op

	obj, err := tp.Get()
	require.NoError(t, err)
	obj.Release()
	require.Equal(t, 1, tp.ObjectsInPool())

	// No sweep runs after Stop returns, so the idle object survives well
	// past its timeout.
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 1, tp.ObjectsInPool())
}

func TestTimedPoolClose(t *testing.T) {
	tp, released := newTimedTestPool(t, time.Minute, 10*time.Millisecond)

	obj, err := tp.Get()
	require.NoError(t, err)
	obj.Release()
	require.Equal(t, 1, tp.ObjectsInPool())

	tp.Close()

	assert.Equal(t, 0, tp.ObjectsInPool())
	assert.Equal(t, int64(1), released.Load())
}

func TestNewTimedPoolFromSettings(t *testing.T) {
	settings := config.DefaultSettings("from-settings")
	settings.MaxSize = 4
	settings.Eviction.IdleTimeout = 25 * time.Millisecond
	settings.Eviction.SweepInterval = 10 * time.Millisecond
	settings.Observability.EnableDiagnostics = true

	tp, err := NewTimedPoolFromSettings(settings, func() (*testResource, error) {
		return &testResource{}, nil
	})
	require.NoError(t, err)
	t.Cleanup(tp.Stop)

	obj, err := tp.Get()
	require.NoError(t, err)
	obj.Release()

	testutil.AssertEventually(t, func() bool {
		return tp.ObjectsInPool() == 0
	}, 2*time.Second, "settings-driven eviction did not run")
}

func TestNewTimedPoolFromSettingsValidates(t *testing.T) {
	settings := config.DefaultSettings("invalid")
	settings.MaxSize = 0

	tp, err := NewTimedPoolFromSettings(settings, func() (*testResource, error) {
		return &testResource{}, nil
	})
	require.Error(t, err)
	assert.Nil(t, tp)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
}
