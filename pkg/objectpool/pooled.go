package objectpool

import (
	"sync/atomic"
	"time"
)

// State is the lifecycle state of a pooled object.
//
// Objects move Available -> Reserved -> {Available | Disposed}. Disposed is
// terminal: once an object reaches it, further releases are no-ops and the
// release hook never fires again.
type State int32

const (
	// StateAvailable means the object is idle inside the pool buffer
	StateAvailable State = iota
	// StateReserved means the object is checked out by a caller
	StateReserved
	// StateDisposed means the object has been permanently destroyed
	StateDisposed
)

// String returns the state name for logging.
func (s State) String() string {
	switch s {
	case StateAvailable:
		return "available"
	case StateReserved:
		return "reserved"
	case StateDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}

// PooledObject wraps a pooled resource with its lifecycle metadata: a
// per-pool monotonic id, the lifecycle state, the last-use timestamp, and a
// handle back to the owning pool. The pool holds no reference to checked-out
// objects; the back-handle is what lets a handed-out object find its way home.
type PooledObject[T any] struct {
	value T
	id    uint64
	pool  *Pool[T]

	state    atomic.Int32
	lastUsed atomic.Int64 // unix nanos
	released atomic.Bool  // release-hook fired guard
}

// Value returns the wrapped resource.
func (o *PooledObject[T]) Value() T {
	return o.value
}

// ID returns the object's identity. Ids are assigned once at construction,
// strictly increase within the owning pool, and are never reused, even after
// eviction or Clear.
func (o *PooledObject[T]) ID() uint64 {
	return o.id
}

// State returns the current lifecycle state.
func (o *PooledObject[T]) State() State {
	return State(o.state.Load())
}

// LastUsed returns the time of the most recent checkout or return.
func (o *PooledObject[T]) LastUsed() time.Time {
	return time.Unix(0, o.lastUsed.Load())
}

// Release returns the object to its owning pool. The pool resets and
// validates it, then either re-pools it or destroys it if the pool is at
// capacity or the object was rejected. Releasing an object more than once is
// a safe no-op; the release-resources hook fires at most once per object.
func (o *PooledObject[T]) Release() {
	o.pool.Release(o)
}

// touch refreshes the last-use timestamp.
func (o *PooledObject[T]) touch() {
	o.lastUsed.Store(time.Now().UnixNano())
}
