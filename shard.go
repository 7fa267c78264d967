package fibdrv

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// shard holds a contiguous run of term cache records.
//
// mem is either an anonymous memory mapping (mapped == true) or a plain heap
// slice. offset is the first sequence index stored in the shard.
type shard struct {
	mem    []byte
	mapped bool
	size   int64 // number of records
	offset int64
}

func newShard(offset, size int64, diskRec int, useMmap bool) (*shard, error) {
	n := int(size) * diskRec
	s := &shard{size: size, offset: offset}
	if !useMmap {
		s.mem = make([]byte, n)
		return s, nil
	}
	mem, err := unix.Mmap(-1, 0, n, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("mmap %d bytes: %w", n, err)
	}
	s.mem = mem
	s.mapped = true
	return s, nil
}

func (s *shard) release() error {
	mem := s.mem
	s.mem = nil
	if s.mapped && mem != nil {
		return unix.Munmap(mem)
	}
	return nil
}
