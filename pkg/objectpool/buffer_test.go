package objectpool

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferEnqueueDequeue(t *testing.T) {
	b := NewBuffer[int](4)

	_, ok := b.TryDequeue()
	assert.False(t, ok, "dequeue from empty buffer should fail")
	assert.Equal(t, 0, b.Count())
	assert.Equal(t, 4, b.Capacity())

	items := []*int{ptr(1), ptr(2), ptr(3), ptr(4)}
	for _, item := range items {
		require.True(t, b.TryEnqueue(item))
	}
	assert.Equal(t, 4, b.Count())

	assert.False(t, b.TryEnqueue(ptr(5)), "enqueue into full buffer should fail")

	seen := make(map[*int]bool)
	for i := 0; i < 4; i++ {
		item, ok := b.TryDequeue()
		require.True(t, ok)
		assert.False(t, seen[item], "item dequeued twice")
		seen[item] = true
	}
	assert.Equal(t, 0, b.Count())

	_, ok = b.TryDequeue()
	assert.False(t, ok)
}

func TestBufferCountNeverExceedsCapacity(t *testing.T) {
	b := NewBuffer[int](8)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				b.TryEnqueue(ptr(g*1000 + i))
				assert.LessOrEqual(t, b.Count(), b.Capacity())
				b.TryDequeue()
			}
		}(g)
	}
	wg.Wait()

	assert.LessOrEqual(t, b.Count(), 8)
}

func TestBufferConcurrentDequeueNoDuplicates(t *testing.T) {
	const n = 64
	b := NewBuffer[int](n)
	for i := 0; i < n; i++ {
		require.True(t, b.TryEnqueue(ptr(i)))
	}

	results := make(chan *int, n)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				item, ok := b.TryDequeue()
				if !ok {
					return
				}
				results <- item
			}
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[*int]bool)
	for item := range results {
		assert.False(t, seen[item], "item handed to two consumers")
		seen[item] = true
	}
	assert.Len(t, seen, n)
	assert.Equal(t, 0, b.Count())
}

func TestBufferResizeShrink(t *testing.T) {
	b := NewBuffer[int](4)
	for i := 0; i < 4; i++ {
		require.True(t, b.TryEnqueue(ptr(i)))
	}

	evicted := b.Resize(2)

	assert.Len(t, evicted, 2)
	assert.Equal(t, 2, b.Capacity())
	assert.Equal(t, 2, b.Count())
}

func TestBufferResizeGrow(t *testing.T) {
	b := NewBuffer[int](2)
	require.True(t, b.TryEnqueue(ptr(1)))
	require.True(t, b.TryEnqueue(ptr(2)))

	evicted := b.Resize(6)

	assert.Empty(t, evicted)
	assert.Equal(t, 6, b.Capacity())
	assert.Equal(t, 2, b.Count())

	// Room for more after growing
	for i := 0; i < 4; i++ {
		assert.True(t, b.TryEnqueue(ptr(10+i)))
	}
	assert.False(t, b.TryEnqueue(ptr(99)))
}

func TestBufferResizeConservation(t *testing.T) {
	const (
		workers    = 8
		iterations = 20000
	)
	b := NewBuffer[int](192)

	var (
		enqueued atomic.Int64
		dequeued atomic.Int64
		evicted  atomic.Int64
		done     atomic.Bool
	)

	var resizer sync.WaitGroup
	resizer.Add(1)
	go func() {
		defer resizer.Done()
		sizes := [2]int{256, 192}
		for i := 0; !done.Load(); i++ {
			evicted.Add(int64(len(b.Resize(sizes[i%2]))))
		}
	}()

	var wg sync.WaitGroup
	for g := 0; g < workers; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				if b.TryEnqueue(ptr(i)) {
					enqueued.Add(1)
				}
				if _, ok := b.TryDequeue(); ok {
					dequeued.Add(1)
				}
			}
		}()
	}
	wg.Wait()
	done.Store(true)
	resizer.Wait()

	var drained int64
	for {
		if _, ok := b.TryDequeue(); !ok {
			break
		}
		drained++
	}

	// Every successful enqueue must surface as a dequeue, a resize eviction,
	// or a final drain. An enqueue that lands in a retired slot array would
	// break this balance.
	assert.Equal(t, enqueued.Load(), dequeued.Load()+evicted.Load()+drained)
}

func TestBufferResizeNoop(t *testing.T) {
	b := NewBuffer[int](3)
	require.True(t, b.TryEnqueue(ptr(1)))

	assert.Nil(t, b.Resize(3))
	assert.Equal(t, 3, b.Capacity())
	assert.Equal(t, 1, b.Count())
}

func ptr(v int) *int {
	return &v
}
