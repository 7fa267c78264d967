package fibdrv

import "testing"

func TestHeadTracksLargestStoredIndex(t *testing.T) {
	cache := newTestCache(t, 10, 16)

	// initial head should be -1
	if cache.Head() != -1 {
		t.Fatalf("expected head -1 on fresh cache, got %d", cache.Head())
	}

	for _, k := range []int64{3, 7, 5} {
		if err := cache.store(k, []byte("13")); err != nil {
			t.Fatalf("store %d: %v", k, err)
		}
	}
	if cache.Head() != 7 {
		t.Fatalf("expected head 7, got %d", cache.Head())
	}
}
