package objectpool

import (
	"testing"

	gojson "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnosticsDisabledByDefault(t *testing.T) {
	pool, err := New(Config[*testResource]{
		Name:    "no-diag",
		MaxSize: 2,
		Factory: func() (*testResource, error) { return &testResource{}, nil },
	})
	require.NoError(t, err)
	assert.False(t, pool.Diagnostics().Enabled())

	obj, err := pool.Get()
	require.NoError(t, err)
	obj.Release()

	// Nothing is recorded while disabled.
	assert.Equal(t, uint64(0), pool.Diagnostics().MissCount())
	assert.Equal(t, uint64(0), pool.Diagnostics().ReturnedCount())
	assert.Equal(t, uint64(0), pool.Diagnostics().TotalCreated())
}

func TestDiagnosticsToggle(t *testing.T) {
	pool, _ := newTestPool(t, 2)
	diag := pool.Diagnostics()
	require.True(t, diag.Enabled())

	obj, err := pool.Get()
	require.NoError(t, err)
	obj.Release()
	assert.Equal(t, uint64(1), diag.MissCount())

	diag.Disable()
	obj, err = pool.Get()
	require.NoError(t, err)
	obj.Release()
	assert.Equal(t, uint64(1), diag.HitCount()+diag.MissCount(),
		"counters must not move while disabled")

	diag.Enable()
	obj, err = pool.Get()
	require.NoError(t, err)
	obj.Release()
	assert.Equal(t, uint64(1), diag.HitCount())
}

func TestDiagnosticsSnapshot(t *testing.T) {
	pool, _ := newTestPool(t, 2)

	obj, err := pool.Get()
	require.NoError(t, err)
	obj.Release()

	snap := pool.Diagnostics().GetSnapshot()
	assert.True(t, snap.Enabled)
	assert.Equal(t, uint64(1), snap.MissCount)
	assert.Equal(t, uint64(1), snap.ReturnedCount)
	assert.Equal(t, uint64(1), snap.TotalCreated)

	var decoded map[string]interface{}
	require.NoError(t, gojson.Unmarshal([]byte(snap.String()), &decoded))
	assert.Equal(t, float64(1), decoded["miss_count"])
	assert.Contains(t, decoded, "overflow_count")
}

func TestDiagnosticsResetCounters(t *testing.T) {
	pool, _ := newTestPool(t, 2)

	obj, err := pool.Get()
	require.NoError(t, err)
	obj.Release()
	require.NotZero(t, pool.Diagnostics().MissCount())

	pool.Diagnostics().ResetCounters()

	snap := pool.Diagnostics().GetSnapshot()
	assert.True(t, snap.Enabled, "reset must not change the enabled state")
	assert.Zero(t, snap.MissCount)
	assert.Zero(t, snap.ReturnedCount)
	assert.Zero(t, snap.TotalCreated)
}
