// Package objectpool is a high-performance, bounded object pool library for
// Go. It provides a lock-free slot buffer, an explicit pooled-object
// lifecycle, keyed pool fan-out, and background idle eviction, with opt-in
// diagnostics and Prometheus metrics.
//
// # Architecture
//
// The library is organized leaf-first:
//
// 1. Buffer[T]: a fixed-capacity, multi-producer/multi-consumer slot array.
// Checkout and return are single compare-and-swap operations per slot with
// no global lock.
//
// 2. PooledObject[T]: per-object lifecycle metadata. Objects move
// Available -> Reserved -> {Available | Disposed}; Disposed is terminal and
// release hooks fire at most once.
//
// 3. Pool[T]: orchestrates the buffer, a user-supplied factory, optional
// reset/validate/release hooks, diagnostics, and resizing.
//
// 4. KeyedPool[K, V]: one lazily-created inner pool per key.
//
// 5. TimedPool[T]: a pool with a background sweep that destroys objects
// idle past a configurable timeout.
//
// # Quick start
//
//	import "github.com/ajitpratap0/objectpool/pkg/objectpool"
//
//	pool, err := objectpool.New(objectpool.Config[*Conn]{
//	    Name:    "conns",
//	    MaxSize: 16,
//	    Factory: dial,
//	    Release: func(c *Conn) error { return c.Close() },
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	obj, err := pool.Get()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer obj.Release()
//	use(obj.Value())
//
// Supporting packages live under pkg/: config (YAML settings), errors
// (structured errors), logger (zap), metrics (Prometheus collectors), and
// testutil (test helpers).
package objectpool
