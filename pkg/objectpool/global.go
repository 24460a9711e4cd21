package objectpool

import (
	"bytes"
	"sync"

	"github.com/ajitpratap0/objectpool/pkg/errors"
)

// Process-wide default pools for common reusable types. Each is initialized
// lazily exactly once and is safe for concurrent use from the first call.

const (
	sharedBufferPoolSize   = 64
	sharedBufferByteCap    = 1024
	sharedByteSlicePoolCap = 64
)

var (
	sharedBuffers     *Pool[*bytes.Buffer]
	sharedBuffersOnce sync.Once

	sharedByteSlices     *Pool[[]byte]
	sharedByteSlicesOnce sync.Once
)

// SharedBufferPool returns the process-wide bytes.Buffer pool. Buffers are
// pre-sized to 1KB and reset on return.
func SharedBufferPool() *Pool[*bytes.Buffer] {
	sharedBuffersOnce.Do(func() {
		cfg := NewConfig("shared-buffers", sharedBufferPoolSize,
			func() (*bytes.Buffer, error) {
				return bytes.NewBuffer(make([]byte, 0, sharedBufferByteCap)), nil
			})
		cfg.Reset = func(b *bytes.Buffer) error {
			b.Reset()
			return nil
		}
		pool, err := New(cfg)
		if err != nil {
			// Static configuration; New cannot fail here.
			panic(errors.Wrap(err, errors.ErrorTypeInternal, "shared buffer pool construction failed"))
		}
		sharedBuffers = pool
	})
	return sharedBuffers
}

// SharedByteSlicePool returns the process-wide []byte pool. Slices are
// allocated with 1KB capacity; callers re-slice to zero length themselves
// since the slice header is pooled by value.
func SharedByteSlicePool() *Pool[[]byte] {
	sharedByteSlicesOnce.Do(func() {
		cfg := NewConfig("shared-byte-slices", sharedByteSlicePoolCap,
			func() ([]byte, error) {
				return make([]byte, 0, sharedBufferByteCap), nil
			})
		pool, err := New(cfg)
		if err != nil {
			panic(errors.Wrap(err, errors.ErrorTypeInternal, "shared byte slice pool construction failed"))
		}
		sharedByteSlices = pool
	})
	return sharedByteSlices
}
