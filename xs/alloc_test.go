package xs

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolAllocatorRejectsOddSizes(t *testing.T) {
	a := NewPoolAllocator(0)
	for _, n := range []int{0, -1, 3, 100} {
		_, err := a.Alloc(n)
		assert.Error(t, err, "size %d", n)
	}
	assert.EqualValues(t, 0, a.InUse())
}

func TestPoolAllocatorAccounting(t *testing.T) {
	a := NewPoolAllocator(0)
	b1, err := a.Alloc(32)
	require.NoError(t, err)
	b2, err := a.Alloc(1024)
	require.NoError(t, err)
	assert.Len(t, b1, 32)
	assert.Len(t, b2, 1024)
	assert.EqualValues(t, 1056, a.InUse())

	a.Free(b1)
	a.Free(b2)
	assert.EqualValues(t, 0, a.InUse())
	assert.Zero(t, a.Limit())
}

func TestPoolAllocatorLimitConcurrent(t *testing.T) {
	const limit = 64 * 16
	a := NewPoolAllocator(limit)

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		got [][]byte
	)
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if b, err := a.Alloc(64); err == nil {
				mu.Lock()
				got = append(got, b)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, got, 16)
	assert.EqualValues(t, limit, a.InUse())
	for _, b := range got {
		a.Free(b)
	}
	assert.EqualValues(t, 0, a.InUse())
}
