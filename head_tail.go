package fibdrv

// Head returns the largest sequence index stored in the cache, -1 when
// nothing has been stored yet.
func (c *termCache) Head() int64 {
	return c.head.Load()
}

// advanceHead raises the high-water mark to k.
func (c *termCache) advanceHead(k int64) {
	for {
		cur := c.head.Load()
		if k <= cur || c.head.CompareAndSwap(cur, k) {
			return
		}
	}
}
