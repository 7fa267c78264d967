package xs

import (
	"fmt"
	"math/bits"
	"sync"
	"sync/atomic"
)

// maxClass bounds the capacity classes the pool allocator recycles.
const maxClass = 32

// Allocator provides the heap buffers behind Heap and HeapLarge strings.
//
// Alloc is always called with a power-of-two size. Free receives buffers
// previously returned by Alloc on the same allocator.
type Allocator interface {
	Alloc(size int) ([]byte, error)
	Free(buf []byte)
}

var defaultAllocator = NewPoolAllocator(0)

// DefaultAllocator returns the process-wide allocator used by New.
func DefaultAllocator() *PoolAllocator { return defaultAllocator }

// PoolAllocator recycles buffers per capacity class and enforces an optional
// limit on outstanding bytes. It is safe for concurrent use.
type PoolAllocator struct {
	limit int64 // 0 = unlimited
	inUse atomic.Int64
	pools [maxClass + 1]sync.Pool
}

// NewPoolAllocator returns an allocator that fails with ErrOutOfMemory once
// more than limit bytes are outstanding. A limit <= 0 disables the check.
func NewPoolAllocator(limit int64) *PoolAllocator {
	if limit < 0 {
		limit = 0
	}
	return &PoolAllocator{limit: limit}
}

// Alloc returns a buffer of exactly size bytes.
func (p *PoolAllocator) Alloc(size int) ([]byte, error) {
	if size <= 0 || size&(size-1) != 0 {
		return nil, fmt.Errorf("xs: allocation size %d is not a power of two", size)
	}
	n := int64(size)
	if p.limit > 0 {
		for {
			cur := p.inUse.Load()
			if cur+n > p.limit {
				return nil, fmt.Errorf("%w: %d bytes requested, %d of %d in use", ErrOutOfMemory, size, cur, p.limit)
			}
			if p.inUse.CompareAndSwap(cur, cur+n) {
				break
			}
		}
	} else {
		p.inUse.Add(n)
	}

	class := bits.TrailingZeros(uint(size))
	if class <= maxClass {
		if buf, ok := p.pools[class].Get().([]byte); ok {
			return buf[:size], nil
		}
	}
	return make([]byte, size), nil
}

// Free returns buf to the pool of its capacity class.
func (p *PoolAllocator) Free(buf []byte) {
	size := cap(buf)
	if size == 0 {
		return
	}
	p.inUse.Add(-int64(size))
	if size&(size-1) != 0 {
		return
	}
	if class := bits.TrailingZeros(uint(size)); class <= maxClass {
		p.pools[class].Put(buf[:size])
	}
}

// InUse returns the number of bytes handed out and not yet freed.
func (p *PoolAllocator) InUse() int64 { return p.inUse.Load() }

// Limit returns the configured byte limit, 0 when unlimited.
func (p *PoolAllocator) Limit() int64 { return p.limit }
