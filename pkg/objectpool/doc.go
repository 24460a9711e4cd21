// Package objectpool provides a generic, bounded, thread-safe object pool
// for expensive-to-construct resources such as buffers, builders, and
// connections. It amortizes allocation cost under concurrent access with a
// lock-free fixed-capacity slot buffer and an explicit checkout/return
// lifecycle per pooled object.
//
// The package provides:
//   - Generic type-safe pooling with Pool[T] and per-object lifecycle
//     metadata (PooledObject[T])
//   - A lock-free fixed-capacity slot buffer (Buffer[T]) as the concurrency
//     core
//   - Keyed fan-out with KeyedPool[K, V], one lazily-created inner pool per key
//   - Background idle eviction with TimedPool[T]
//   - Opt-in atomic diagnostics and Prometheus metrics
//   - Process-wide default pools for common buffer types
//
// Example usage:
//
//	pool, err := objectpool.New(objectpool.Config[*bytes.Buffer]{
//	    Name:    "render-buffers",
//	    MaxSize: 32,
//	    Factory: func() (*bytes.Buffer, error) { return &bytes.Buffer{}, nil },
//	    Reset:   func(b *bytes.Buffer) error { b.Reset(); return nil },
//	})
//	if err != nil {
//	    return err
//	}
//
//	obj, err := pool.Get()
//	if err != nil {
//	    return err
//	}
//	defer obj.Release()
//
//	obj.Value().WriteString("hello")
package objectpool
