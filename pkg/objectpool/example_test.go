package objectpool_test

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/ajitpratap0/objectpool/pkg/objectpool"
)

// Example demonstrates basic checkout and return against a buffer pool.
func Example() {
	pool, err := objectpool.New(objectpool.Config[*bytes.Buffer]{
		Name:    "render-buffers",
		MaxSize: 8,
		Factory: func() (*bytes.Buffer, error) { return &bytes.Buffer{}, nil },
		Reset:   func(b *bytes.Buffer) error { b.Reset(); return nil },
	})
	if err != nil {
		panic(err)
	}

	obj, err := pool.Get()
	if err != nil {
		panic(err)
	}
	defer obj.Release() // Always release objects when done

	obj.Value().WriteString("Hello, pool!")
	fmt.Println(obj.Value().String())

	// Output:
	// Hello, pool!
}

// ExampleNewKeyedPool demonstrates one pool per partition key.
func ExampleNewKeyedPool() {
	pool, err := objectpool.NewKeyedPool(objectpool.KeyedConfig[string, *bytes.Buffer]{
		Name:    "per-tenant",
		MaxSize: 4,
		Factory: func(tenant string) (*bytes.Buffer, error) {
			b := &bytes.Buffer{}
			b.WriteString(tenant)
			return b, nil
		},
	})
	if err != nil {
		panic(err)
	}

	obj, err := pool.Get("acme")
	if err != nil {
		panic(err)
	}
	defer obj.Release()

	fmt.Println("tenant:", obj.Value().String())
	fmt.Println("keys:", pool.KeysInPool())

	// Output:
	// tenant: acme
	// keys: 1
}

// Example_concurrentUsage demonstrates thread-safe pool usage.
func Example_concurrentUsage() {
	pool, err := objectpool.New(objectpool.Config[*bytes.Buffer]{
		Name:    "workers",
		MaxSize: 4,
		Factory: func() (*bytes.Buffer, error) { return &bytes.Buffer{}, nil },
		Reset:   func(b *bytes.Buffer) error { b.Reset(); return nil },
	})
	if err != nil {
		panic(err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()

			obj, err := pool.Get()
			if err != nil {
				return
			}
			defer obj.Release()

			fmt.Fprintf(obj.Value(), "worker %d", id)
		}(i)
	}
	wg.Wait()

	fmt.Printf("max pooled: %d\n", pool.MaxSize())

	// Output:
	// max pooled: 4
}
