package fibdrv

import "sync"

// getBufFromPool returns a record buffer of exactly c.diskRec bytes.
func (c *termCache) getBufFromPool() []byte {
	if c.bufPool != nil {
		if buf, ok := c.bufPool.Get().(*[]byte); ok {
			return *buf
		}
	}
	return make([]byte, c.diskRec)
}

// returnBufToPool gives buf back to the pool. Buffers of any other size are
// dropped.
func (c *termCache) returnBufToPool(buf []byte) {
	if c.bufPool != nil && len(buf) == c.diskRec {
		c.bufPool.Put(&buf)
	}
}

// lock returns the lock striped over index k so each record does not need
// its own mutex.
func (c *termCache) lock(k int64) *sync.RWMutex {
	return &c.locks[k%int64(len(c.locks))]
}
