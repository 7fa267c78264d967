package fibdrv

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
)

// record header: 4 bytes CRC32 over the rest, 2 bytes little-endian length.
const recHeader = 6

// termCache keeps computed terms in fixed-size CRC-framed records, one per
// sequence index, split over shards. Records are never written to disk.
//
// All methods are safe for concurrent use.
type termCache struct {
	shards  []*shard
	size    int64          // number of records, indexes 0..size-1
	record  int            // digits per record
	diskRec int            // record + recHeader
	locks   []sync.RWMutex // striped locks
	bufPool *sync.Pool

	head atomic.Int64 // largest stored index, -1 when empty

	statHits   atomic.Uint64
	statMisses atomic.Uint64
}

// newTermCache acquires the shards one by one. If a shard cannot be
// acquired the shards already held are released in reverse order.
func newTermCache(size int64, opts Options) (c *termCache, err error) {
	if size <= 0 {
		return nil, fmt.Errorf("term cache size must be positive, got %d", size)
	}
	if opts.RecordSize <= 0 || opts.RecordSize > math.MaxUint16 {
		return nil, fmt.Errorf("record size %d out of range 1..%d", opts.RecordSize, math.MaxUint16)
	}
	diskRec := opts.RecordSize + recHeader

	shardCount := opts.ShardCount
	if shardCount <= 0 {
		shardCount = 1
	}
	if int64(shardCount) > size {
		shardCount = int(size)
	}
	shardSize := size / int64(shardCount)
	if size%int64(shardCount) != 0 {
		shardSize++
	}

	shards := make([]*shard, 0, shardCount)
	defer func() {
		if err == nil {
			return
		}
		for i := len(shards) - 1; i >= 0; i-- {
			err = errors.Join(err, shards[i].release())
		}
	}()

	var offset int64
	for i := 0; i < shardCount && offset < size; i++ {
		n := min(shardSize, size-offset)
		s, serr := newShard(offset, n, diskRec, opts.UseMmap)
		if serr != nil {
			return nil, fmt.Errorf("shard %d: %w", i, serr)
		}
		shards = append(shards, s)
		offset += n
	}

	var pool *sync.Pool
	if opts.BufferPoolSize > 0 {
		pool = &sync.Pool{New: func() any {
			buf := make([]byte, diskRec)
			return &buf
		}}
	}

	c = &termCache{
		shards:  shards,
		size:    size,
		record:  opts.RecordSize,
		diskRec: diskRec,
		locks:   make([]sync.RWMutex, 64),
		bufPool: pool,
	}
	c.head.Store(-1)
	return c, nil
}

// close releases every shard. The first error wins.
func (c *termCache) close() error {
	var firstErr error
	for i, s := range c.shards {
		if err := s.release(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("release shard %d: %w", i, err)
		}
	}
	return firstErr
}
