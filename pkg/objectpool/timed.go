package objectpool

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/ajitpratap0/objectpool/pkg/config"
	"github.com/ajitpratap0/objectpool/pkg/errors"
)

// minSweepInterval bounds how often the background sweep may run.
const minSweepInterval = 10 * time.Millisecond

// TimedPool is a Pool that evicts idle objects in the background. A
// dedicated goroutine sweeps the buffer on a ticker and destroys objects
// whose last use is older than the idle timeout. The public pool contract is
// unchanged; only the retention behavior differs.
type TimedPool[T any] struct {
	*Pool[T]

	idleTimeout time.Duration
	interval    time.Duration

	cancel  context.CancelFunc
	wg      sync.WaitGroup
	stopped atomic.Bool
}

// NewTimedPool creates a pool whose idle objects are evicted after
// idleTimeout. The sweep interval defaults to half the timeout.
func NewTimedPool[T any](cfg Config[T], idleTimeout time.Duration) (*TimedPool[T], error) {
	return NewTimedPoolWithInterval(cfg, idleTimeout, 0)
}

// NewTimedPoolWithInterval creates a timed pool with an explicit sweep
// interval. A non-positive interval derives one from the idle timeout.
func NewTimedPoolWithInterval[T any](cfg Config[T], idleTimeout, sweepInterval time.Duration) (*TimedPool[T], error) {
	if idleTimeout <= 0 {
		return nil, errors.Newf(errors.ErrorTypeConfig,
			"idle timeout must be positive, got %v", idleTimeout)
	}
	p, err := New(cfg)
	if err != nil {
		return nil, err
	}

	if sweepInterval <= 0 {
		sweepInterval = idleTimeout / 2
	}
	if sweepInterval < minSweepInterval {
		sweepInterval = minSweepInterval
	}

	tp := &TimedPool[T]{
		Pool:        p,
		idleTimeout: idleTimeout,
		interval:    sweepInterval,
	}

	ctx, cancel := context.WithCancel(context.Background())
	tp.cancel = cancel
	tp.wg.Add(1)
	go tp.sweepLoop(ctx)

	return tp, nil
}

// NewTimedPoolFromSettings builds a timed pool from declarative settings,
// using the settings' eviction block for timing.
func NewTimedPoolFromSettings[T any](s *config.Settings, factory func() (T, error)) (*TimedPool[T], error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return NewTimedPoolWithInterval(ConfigFromSettings(s, factory),
		s.Eviction.IdleTimeout, s.Eviction.SweepInterval)
}

// Stop cancels the eviction schedule and waits for any in-flight sweep to
// complete before returning. No sweep starts after Stop returns. Stopping
// twice is a no-op. The pool itself remains usable; call Close to also drain it.
func (tp *TimedPool[T]) Stop() {
	if !tp.stopped.CompareAndSwap(false, true) {
		return
	}
	tp.cancel()
	tp.wg.Wait()
}

// Close stops the eviction timer and destroys every idle object.
func (tp *TimedPool[T]) Close() {
	tp.Stop()
	tp.Clear()
}

func (tp *TimedPool[T]) sweepLoop(ctx context.Context) {
	defer tp.wg.Done()

	ticker := time.NewTicker(tp.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			tp.sweep()
		}
	}
}

// sweep partitions the buffered objects by last use and destroys the idle
// ones. The scan holds the pool's adjustment flag so it cannot interleave
// with a structural resize; destruction happens after the flag is dropped to
// keep the serialized section short. Foreground Get and Release keep running
// against the same lock-free slots throughout.
func (tp *TimedPool[T]) sweep() {
	if !tp.adjusting.CompareAndSwap(false, true) {
		// A resize owns the buffer; catch up on the next tick.
		return
	}

	cutoff := time.Now().Add(-tp.idleTimeout)
	var idle, fresh []*PooledObject[T]
	for {
		obj, ok := tp.buffer.TryDequeue()
		if !ok {
			break
		}
		if obj.LastUsed().Before(cutoff) {
			idle = append(idle, obj)
		} else {
			fresh = append(fresh, obj)
		}
	}
	var displaced []*PooledObject[T]
	for _, obj := range fresh {
		if !tp.buffer.TryEnqueue(obj) {
			// A concurrent return filled the slot back up.
			displaced = append(displaced, obj)
		}
	}
	tp.adjusting.Store(false)

	// A displaced fresh object met the same fate as a return hitting a full
	// pool, so it is accounted as overflow rather than eviction.
	for _, obj := range displaced {
		tp.overflowDestroy(obj)
	}
	if len(idle) == 0 {
		if len(displaced) > 0 {
			tp.collector.SetObjectsInPool(tp.buffer.Count())
		}
		return
	}
	for _, obj := range idle {
		tp.destroy(obj)
	}
	tp.collector.RecordEviction(len(idle))
	tp.collector.SetObjectsInPool(tp.buffer.Count())
	tp.logger.Debug("evicted idle objects",
		zap.Int("count", len(idle)),
		zap.Duration("idle_timeout", tp.idleTimeout))
}
