package fibdrv

import (
	"bytes"
	"strconv"
	"sync"
	"testing"
)

// helper to create a term cache with deterministic options
func newTestCache(t *testing.T, slots int64, recordSize int) *termCache {
	opts := DefaultOptions()
	opts.UseMmap = false
	opts.ShardCount = 1
	return newTestCacheWithOpts(t, slots, recordSize, opts)
}

func newTestCacheWithOpts(t *testing.T, slots int64, recordSize int, opts Options) *termCache {
	t.Helper()
	opts.RecordSize = recordSize
	opts.BufferPoolSize = 10
	c, err := newTermCache(slots, opts)
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}
	t.Cleanup(func() { c.close() })
	return c
}

func TestStoreLookup(t *testing.T) {
	const size = 100
	cache := newTestCache(t, size, 32)

	for k := int64(0); k < size; k++ {
		digits := []byte(strconv.FormatInt(k*k*k+1, 10))
		if err := cache.store(k, digits); err != nil {
			t.Fatalf("store %d: %v", k, err)
		}
		got, ok := cache.lookup(k)
		if !ok {
			t.Fatalf("lookup %d missed", k)
		}
		if !bytes.Equal(got, digits) {
			t.Fatalf("digits mismatch at %d: %s != %s", k, got, digits)
		}
	}

	if cache.statHits.Load() != size || cache.statMisses.Load() != 0 {
		t.Fatalf("unexpected stats, hits=%d misses=%d", cache.statHits.Load(), cache.statMisses.Load())
	}
}

func TestLookupUnwrittenIsMiss(t *testing.T) {
	cache := newTestCache(t, 10, 8)

	if _, ok := cache.lookup(3); ok {
		t.Fatalf("expected miss on unwritten record")
	}
	if _, ok := cache.lookup(10); ok {
		t.Fatalf("expected miss out of range")
	}
	if cache.statMisses.Load() != 2 {
		t.Fatalf("expected 2 misses, got %d", cache.statMisses.Load())
	}
}

func TestStoreTooLong(t *testing.T) {
	cache := newTestCache(t, 10, 4)
	if err := cache.store(1, []byte("12345")); err == nil {
		t.Fatalf("expected error for digits longer than record")
	}
	if err := cache.store(10, []byte("1")); err == nil {
		t.Fatalf("expected error for index out of range")
	}
	if cache.Head() != -1 {
		t.Fatalf("head moved on failed store: %d", cache.Head())
	}
}

func TestCRCError(t *testing.T) {
	cache := newTestCache(t, 10, 8)

	if err := cache.store(1, []byte("12345678")); err != nil {
		t.Fatalf("store: %v", err)
	}
	// corrupt the first digit of record 1 (skip the header)
	s, rel, err := cache.findShard(1)
	if err != nil {
		t.Fatalf("findShard: %v", err)
	}
	s.mem[rel*int64(cache.diskRec)+recHeader] ^= 0xFF

	if _, ok := cache.lookup(1); ok {
		t.Fatalf("expected CRC miss, got hit")
	}
	if cache.statMisses.Load() == 0 {
		t.Fatalf("expected miss stat increment")
	}
}

func TestShardLayout(t *testing.T) {
	opts := DefaultOptions()
	opts.UseMmap = false
	opts.ShardCount = 3
	cache := newTestCacheWithOpts(t, 10, 8, opts)

	if len(cache.shards) != 3 {
		t.Fatalf("expected 3 shards, got %d", len(cache.shards))
	}
	var total int64
	for i, s := range cache.shards {
		if s.offset != total {
			t.Fatalf("shard %d offset %d, want %d", i, s.offset, total)
		}
		total += s.size
	}
	if total != 10 {
		t.Fatalf("shards cover %d records, want 10", total)
	}
	for k := int64(0); k < 10; k++ {
		s, rel, err := cache.findShard(k)
		if err != nil {
			t.Fatalf("findShard %d: %v", k, err)
		}
		if s.offset+rel != k {
			t.Fatalf("findShard %d returned offset %d rel %d", k, s.offset, rel)
		}
	}
}

func TestMoreShardsThanRecords(t *testing.T) {
	opts := DefaultOptions()
	opts.UseMmap = false
	opts.ShardCount = 8
	cache := newTestCacheWithOpts(t, 3, 8, opts)
	if len(cache.shards) != 3 {
		t.Fatalf("expected 3 shards, got %d", len(cache.shards))
	}
}

func TestMmapShards(t *testing.T) {
	opts := DefaultOptions()
	opts.UseMmap = true
	opts.ShardCount = 2
	cache := newTestCacheWithOpts(t, 501, 128, opts)

	for _, s := range cache.shards {
		if !s.mapped {
			t.Fatalf("expected mapped shard")
		}
	}
	// indexes on both sides of the shard boundary
	for _, k := range []int64{0, 250, 251, 500} {
		digits := bytes.Repeat([]byte{'9'}, 105)
		if err := cache.store(k, digits); err != nil {
			t.Fatalf("store %d: %v", k, err)
		}
		if got, ok := cache.lookup(k); !ok || !bytes.Equal(got, digits) {
			t.Fatalf("lookup %d after store failed", k)
		}
	}
	if err := cache.close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := cache.close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}

func TestConcurrentAccess(t *testing.T) {
	cache := newTestCache(t, 200, 24)

	wg := sync.WaitGroup{}

	// writer goroutine
	wg.Add(1)
	go func() {
		defer wg.Done()
		for k := int64(0); k < 200; k++ {
			if err := cache.store(k, []byte(strconv.FormatInt(k, 10))); err != nil {
				t.Errorf("store %d: %v", k, err)
			}
		}
	}()

	// reader goroutine
	wg.Add(1)
	go func() {
		defer wg.Done()
		for k := int64(0); k < 200; k++ {
			got, ok := cache.lookup(k)
			// reads may miss before the writer gets there
			if ok && string(got) != strconv.FormatInt(k, 10) {
				t.Errorf("torn record at %d: %q", k, got)
			}
		}
	}()

	wg.Wait()
}

func TestNewTermCacheRejectsBadSizes(t *testing.T) {
	opts := DefaultOptions()
	opts.UseMmap = false
	if _, err := newTermCache(0, opts); err == nil {
		t.Fatalf("expected error for empty cache")
	}
	opts.RecordSize = 1 << 20
	if _, err := newTermCache(10, opts); err == nil {
		t.Fatalf("expected error for oversized record")
	}
}
