package fibdrv

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
)

var errTermTooLong = errors.New("term longer than cache record")

// store writes the digits of F(k) into record k.
func (c *termCache) store(k int64, digits []byte) error {
	if len(digits) > c.record {
		return fmt.Errorf("%w: %d digits, record holds %d", errTermTooLong, len(digits), c.record)
	}
	s, rel, err := c.findShard(k)
	if err != nil {
		return err
	}

	buf := c.getBufFromPool()
	defer c.returnBufToPool(buf)
	clear(buf)
	binary.LittleEndian.PutUint16(buf[4:6], uint16(len(digits)))
	copy(buf[recHeader:], digits)
	binary.LittleEndian.PutUint32(buf[0:4], crc32.ChecksumIEEE(buf[4:]))

	m := c.lock(k)
	m.Lock()
	off := rel * int64(c.diskRec)
	copy(s.mem[off:off+int64(c.diskRec)], buf)
	m.Unlock()

	c.advanceHead(k)
	return nil
}

// lookup returns a copy of the digits stored for F(k). Unwritten and
// corrupt records are misses.
func (c *termCache) lookup(k int64) ([]byte, bool) {
	s, rel, err := c.findShard(k)
	if err != nil {
		c.statMisses.Add(1)
		return nil, false
	}

	buf := c.getBufFromPool()
	defer c.returnBufToPool(buf)

	m := c.lock(k)
	m.RLock()
	off := rel * int64(c.diskRec)
	copy(buf, s.mem[off:off+int64(c.diskRec)])
	m.RUnlock()

	stored := binary.LittleEndian.Uint32(buf[0:4])
	n := int(binary.LittleEndian.Uint16(buf[4:6]))
	if n == 0 || n > c.record || crc32.ChecksumIEEE(buf[4:]) != stored {
		c.statMisses.Add(1)
		return nil, false
	}
	c.statHits.Add(1)

	out := make([]byte, n)
	copy(out, buf[recHeader:recHeader+n])
	return out, true
}
