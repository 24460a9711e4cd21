package objectpool

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/ajitpratap0/objectpool/pkg/errors"
)

// KeyedConfig configures a keyed pool. The factory receives the partition
// key, so one template can construct key-specific resources (for example one
// connection pool per endpoint). All inner pools share the same bounds and
// hooks.
type KeyedConfig[K comparable, V any] struct {
	// Name prefixes the per-key inner pool names
	Name string
	// MaxSize bounds each inner pool. Must be positive.
	MaxSize int
	// Factory constructs a resource for the given key. Required.
	Factory func(K) (V, error)
	// Reset restores a returned resource to a reusable state
	Reset func(V) error
	// Validate accepts or rejects an object crossing the pool boundary
	Validate func(V, Direction) bool
	// Release frees the resources of a destroyed object
	Release func(V) error
	// EnableDiagnostics turns on diagnostic counters for every inner pool
	EnableDiagnostics bool
	// EnableMetrics publishes inner pool activity to Prometheus
	EnableMetrics bool
	// Logger overrides the global logger
	Logger *zap.Logger
}

// KeyedPool maintains one inner Pool per key, created lazily on the first
// request for that key. Creation is guarded per key, not globally, so
// traffic on established keys never contends with new-key setup.
type KeyedPool[K comparable, V any] struct {
	cfg   KeyedConfig[K, V]
	pools sync.Map // K -> *poolHolder[V]
}

// poolHolder defers inner pool construction to the first Get for its key.
type poolHolder[V any] struct {
	once sync.Once
	pool *Pool[V]
	err  error
}

// NewKeyedPool creates a keyed pool. The configuration is validated up
// front so per-key creation cannot fail on bad bounds later.
func NewKeyedPool[K comparable, V any](cfg KeyedConfig[K, V]) (*KeyedPool[K, V], error) {
	if cfg.MaxSize <= 0 {
		return nil, errors.Newf(errors.ErrorTypeConfig,
			"maximum pool size must be positive, got %d", cfg.MaxSize)
	}
	if cfg.Factory == nil {
		return nil, errors.New(errors.ErrorTypeConfig, "factory is required")
	}
	if cfg.Name == "" {
		cfg.Name = "keyed-pool"
	}
	return &KeyedPool[K, V]{cfg: cfg}, nil
}

// Get checks an object out of the inner pool for key, creating the inner
// pool on first use. Factory errors are propagated unmodified.
func (kp *KeyedPool[K, V]) Get(key K) (*PooledObject[V], error) {
	holder := kp.holderFor(key)
	if holder.err != nil {
		return nil, holder.err
	}
	return holder.pool.Get()
}

// Pool returns the inner pool for key if one has been instantiated.
func (kp *KeyedPool[K, V]) Pool(key K) (*Pool[V], bool) {
	v, ok := kp.pools.Load(key)
	if !ok {
		return nil, false
	}
	holder := v.(*poolHolder[V])
	if holder.pool == nil {
		return nil, false
	}
	return holder.pool, true
}

// KeysInPool returns the number of distinct keys with a live inner pool,
// including pools that are currently empty.
func (kp *KeyedPool[K, V]) KeysInPool() int {
	n := 0
	kp.pools.Range(func(_, _ interface{}) bool {
		n++
		return true
	})
	return n
}

// Clear clears and removes every inner pool. Checked-out objects still
// return to their original inner pool instance and are destroyed or
// abandoned per the normal return rules.
func (kp *KeyedPool[K, V]) Clear() {
	kp.pools.Range(func(key, v interface{}) bool {
		holder := v.(*poolHolder[V])
		if holder.pool != nil {
			holder.pool.Clear()
		}
		kp.pools.Delete(key)
		return true
	})
}

// holderFor returns the holder for key, constructing the inner pool at most
// once per key.
func (kp *KeyedPool[K, V]) holderFor(key K) *poolHolder[V] {
	v, _ := kp.pools.LoadOrStore(key, &poolHolder[V]{})
	holder := v.(*poolHolder[V])
	holder.once.Do(func() {
		holder.pool, holder.err = New(Config[V]{
			Name:              fmt.Sprintf("%s[%v]", kp.cfg.Name, key),
			MaxSize:           kp.cfg.MaxSize,
			Factory:           func() (V, error) { return kp.cfg.Factory(key) },
			Reset:             kp.cfg.Reset,
			Validate:          kp.cfg.Validate,
			Release:           kp.cfg.Release,
			EnableDiagnostics: kp.cfg.EnableDiagnostics,
			EnableMetrics:     kp.cfg.EnableMetrics,
			Logger:            kp.cfg.Logger,
		})
	})
	return holder
}
