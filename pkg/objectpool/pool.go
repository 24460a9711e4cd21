package objectpool

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/ajitpratap0/objectpool/pkg/config"
	"github.com/ajitpratap0/objectpool/pkg/errors"
	"github.com/ajitpratap0/objectpool/pkg/logger"
	"github.com/ajitpratap0/objectpool/pkg/metrics"
)

// Direction identifies which side of the pool boundary a validation runs on.
type Direction int

const (
	// DirectionOutbound validates an object before handing it to a caller
	DirectionOutbound Direction = iota
	// DirectionInbound validates an object before re-pooling it on return
	DirectionInbound
)

// String returns the direction name for logging.
func (d Direction) String() string {
	if d == DirectionOutbound {
		return "outbound"
	}
	return "inbound"
}

// Config configures a pool. Factory is required; every other hook is
// optional. Hooks are plain closures passed at construction, keeping the pool
// generic over any resource type without forcing a base type on callers.
type Config[T any] struct {
	// Name identifies the pool in logs and metric labels
	Name string
	// MaxSize bounds the number of idle objects retained. Must be positive.
	MaxSize int
	// Factory constructs a new resource on a pool miss. Required.
	Factory func() (T, error)
	// Reset restores a returned resource to a reusable state. A non-nil
	// error destroys the object instead of re-pooling it.
	Reset func(T) error
	// Validate accepts or rejects an object crossing the pool boundary in
	// the given direction. Rejected objects are destroyed.
	Validate func(T, Direction) bool
	// Release frees the resources of a destroyed object. Errors are logged
	// and swallowed; destruction always completes.
	Release func(T) error
	// EnableDiagnostics turns on the atomic diagnostic counters
	EnableDiagnostics bool
	// EnableMetrics publishes pool activity to Prometheus
	EnableMetrics bool
	// Logger overrides the global logger
	Logger *zap.Logger
}

// NewConfig returns a Config with the required fields set.
func NewConfig[T any](name string, maxSize int, factory func() (T, error)) Config[T] {
	return Config[T]{
		Name:    name,
		MaxSize: maxSize,
		Factory: factory,
	}
}

// ConfigFromSettings builds a Config from declarative settings, binding the
// supplied factory. Lifecycle hooks are code and stay on the Config.
func ConfigFromSettings[T any](s *config.Settings, factory func() (T, error)) Config[T] {
	return Config[T]{
		Name:              s.Name,
		MaxSize:           s.MaxSize,
		Factory:           factory,
		EnableDiagnostics: s.Observability.EnableDiagnostics,
		EnableMetrics:     s.Observability.EnableMetrics,
	}
}

// Pool is a bounded, thread-safe object pool. Checkouts and returns are
// non-blocking and lock-free; arbitrary goroutines may call Get and Release
// concurrently with no external synchronization. Objects are created lazily
// on demand, never eagerly.
type Pool[T any] struct {
	name    string
	buffer  *Buffer[PooledObject[T]]
	factory func() (T, error)

	reset    func(T) error
	validate func(T, Direction) bool
	release  func(T) error

	maxSize   atomic.Int64
	nextID    atomic.Uint64
	adjusting atomic.Bool // owns structural buffer changes (resize, sweep)

	diag      *Diagnostics
	collector *metrics.Collector
	logger    *zap.Logger
}

// New creates a pool from the given configuration. It fails with a config
// error before any pool state is created if MaxSize is not positive or
// Factory is missing.
func New[T any](cfg Config[T]) (*Pool[T], error) {
	if cfg.MaxSize <= 0 {
		return nil, errors.Newf(errors.ErrorTypeConfig,
			"maximum pool size must be positive, got %d", cfg.MaxSize)
	}
	if cfg.Factory == nil {
		return nil, errors.New(errors.ErrorTypeConfig, "factory is required")
	}

	name := cfg.Name
	if name == "" {
		name = "pool"
	}

	log := cfg.Logger
	if log == nil {
		log = logger.Get()
	}

	p := &Pool[T]{
		name:     name,
		buffer:   NewBuffer[PooledObject[T]](cfg.MaxSize),
		factory:  cfg.Factory,
		reset:    cfg.Reset,
		validate: cfg.Validate,
		release:  cfg.Release,
		diag:     newDiagnostics(cfg.EnableDiagnostics),
		logger:   log.With(zap.String("component", "objectpool"), zap.String("pool", name)),
	}
	p.maxSize.Store(int64(cfg.MaxSize))

	if cfg.EnableMetrics {
		p.collector = metrics.NewCollector(name)
	}

	return p, nil
}

// Name returns the pool name.
func (p *Pool[T]) Name() string {
	return p.name
}

// Get checks an object out of the pool. A pooled object is reused when one
// is available and passes outbound validation; otherwise the factory runs.
// Factory errors are propagated to the caller unmodified, with no pool state
// consumed. Get never blocks.
func (p *Pool[T]) Get() (*PooledObject[T], error) {
	for {
		obj, ok := p.buffer.TryDequeue()
		if !ok {
			break
		}
		if p.validate != nil && !p.validate(obj.value, DirectionOutbound) {
			p.diag.incrResetFailure()
			p.collector.RecordRejection()
			p.logger.Debug("outbound validation rejected pooled object",
				zap.Uint64("id", obj.id))
			p.destroy(obj)
			continue
		}
		obj.state.Store(int32(StateReserved))
		obj.touch()
		p.diag.incrHit()
		p.collector.RecordHit()
		p.collector.SetObjectsInPool(p.buffer.Count())
		return obj, nil
	}

	value, err := p.factory()
	if err != nil {
		return nil, err
	}

	obj := &PooledObject[T]{
		value: value,
		id:    p.nextID.Add(1),
		pool:  p,
	}
	obj.state.Store(int32(StateReserved))
	obj.touch()

	p.diag.incrMiss()
	p.diag.incrCreated()
	p.collector.RecordMiss()
	p.collector.RecordCreated()
	return obj, nil
}

// Release returns a checked-out object to the pool. The object is reset and
// validated inbound; on failure it is destroyed silently (the returning
// goroutine never sees an error from a misbehaving object). If the pool is
// at capacity the object is destroyed as overflow, a normal non-error
// outcome. Releasing an object that is not currently reserved is a no-op.
func (p *Pool[T]) Release(obj *PooledObject[T]) {
	if obj == nil {
		return
	}
	// The Reserved->Available transition is the single point of entry for a
	// return; it fails for disposed objects and for double releases.
	if !obj.state.CompareAndSwap(int32(StateReserved), int32(StateAvailable)) {
		return
	}
	obj.touch()
	p.diag.incrReturn()
	p.collector.RecordReturn()

	if p.reset != nil {
		if err := p.reset(obj.value); err != nil {
			p.diag.incrResetFailure()
			p.collector.RecordRejection()
			p.logger.Warn("reset hook failed, destroying object",
				zap.Uint64("id", obj.id), zap.Error(err))
			p.destroy(obj)
			return
		}
	}
	if p.validate != nil && !p.validate(obj.value, DirectionInbound) {
		p.diag.incrResetFailure()
		p.collector.RecordRejection()
		p.logger.Debug("inbound validation rejected returned object",
			zap.Uint64("id", obj.id))
		p.destroy(obj)
		return
	}

	if !p.buffer.TryEnqueue(obj) {
		p.overflowDestroy(obj)
		return
	}
	p.collector.SetObjectsInPool(p.buffer.Count())
}

// overflowDestroy destroys an object that could not be re-pooled because the
// buffer was full, counting it as overflow. Shared by the return path and the
// eviction sweep so both account the outcome identically.
func (p *Pool[T]) overflowDestroy(obj *PooledObject[T]) {
	p.diag.incrOverflow()
	p.collector.RecordOverflow()
	p.destroy(obj)
}

// Clear drains the pool, destroying every idle object. Checked-out objects
// are unaffected and follow the normal return path when released. Ids are
// not reset.
func (p *Pool[T]) Clear() {
	for {
		obj, ok := p.buffer.TryDequeue()
		if !ok {
			break
		}
		p.destroy(obj)
	}
	p.collector.SetObjectsInPool(0)
}

// ObjectsInPool returns the number of idle objects currently held.
func (p *Pool[T]) ObjectsInPool() int {
	return p.buffer.Count()
}

// MaxSize returns the configured capacity bound.
func (p *Pool[T]) MaxSize() int {
	return int(p.maxSize.Load())
}

// SetMaxSize changes the capacity bound. Shrinking destroys the excess idle
// objects immediately; growing only enlarges capacity, new objects are still
// created lazily. The structural resize is best-effort: if another resize or
// eviction sweep owns the buffer, the bound still changes and the buffer
// catches up on the next adjustment.
func (p *Pool[T]) SetMaxSize(size int) error {
	if size <= 0 {
		return errors.Newf(errors.ErrorTypeConfig,
			"maximum pool size must be positive, got %d", size)
	}
	p.maxSize.Store(int64(size))
	p.adjust()
	return nil
}

// Diagnostics returns the pool's diagnostic counters.
func (p *Pool[T]) Diagnostics() *Diagnostics {
	return p.diag
}

// adjust resizes the buffer toward the current bound under the adjustment
// flag. Concurrent adjusters simply skip.
func (p *Pool[T]) adjust() {
	if !p.adjusting.CompareAndSwap(false, true) {
		return
	}
	target := int(p.maxSize.Load())
	var evicted []*PooledObject[T]
	if target != p.buffer.Capacity() {
		evicted = p.buffer.Resize(target)
	}
	p.adjusting.Store(false)

	for _, obj := range evicted {
		p.destroy(obj)
	}
	if len(evicted) > 0 {
		p.logger.Debug("resize evicted idle objects", zap.Int("count", len(evicted)))
	}
	p.collector.SetObjectsInPool(p.buffer.Count())
}

// destroy moves an object to its terminal state and releases its resources.
// The release hook fires at most once per object no matter how many times
// destruction is attempted; hook errors are logged and swallowed because the
// terminal path must complete.
func (p *Pool[T]) destroy(obj *PooledObject[T]) {
	obj.state.Store(int32(StateDisposed))
	if !obj.released.CompareAndSwap(false, true) {
		return
	}
	if p.release != nil {
		if err := p.release(obj.value); err != nil {
			p.logger.Warn("release hook failed",
				zap.Uint64("id", obj.id), zap.Error(err))
		}
	}
	p.diag.incrDestroyed()
	p.collector.RecordDestroyed()
}
