package fibdrv

import "fmt"

// findShard returns the shard holding index k and the record number of k
// inside it.
func (c *termCache) findShard(k int64) (*shard, int64, error) {
	if k < 0 || k >= c.size {
		return nil, 0, fmt.Errorf("%w: %d (cache holds 0..%d)", ErrInvalidIndex, k, c.size-1)
	}
	for _, s := range c.shards {
		if k >= s.offset && k < s.offset+s.size {
			return s, k - s.offset, nil
		}
	}
	return nil, 0, fmt.Errorf("index %d not in any shard", k)
}
