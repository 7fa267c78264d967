package xs

import (
	"bytes"
	"errors"
	"fmt"
	"math/bits"
	"sync/atomic"
)

const (
	// InlineCap is the number of bytes stored inside the String value.
	InlineCap = 15

	// LargeThreshold is the length from which a heap string carries a
	// shared reference count.
	LargeThreshold = 256

	maxLenBits = 54

	// MaxLen is the longest value a String can hold.
	MaxLen = 1<<maxLenBits - 1
)

var (
	// ErrOutOfMemory is returned when the allocator cannot provide a heap buffer.
	ErrOutOfMemory = errors.New("xs: out of memory")

	// ErrTooLong is returned when the source exceeds MaxLen bytes.
	ErrTooLong = errors.New("xs: string too long")
)

// Kind identifies the storage layout of a String.
type Kind uint8

const (
	// Inline strings live entirely inside the String value.
	Inline Kind = iota
	// Heap strings own a power-of-two heap buffer.
	Heap
	// HeapLarge strings share a heap buffer under a reference count.
	HeapLarge
)

func (k Kind) String() string {
	switch k {
	case Inline:
		return "inline"
	case Heap:
		return "heap"
	case HeapLarge:
		return "heap-large"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// inline is the payload of an Inline string.
type inline struct {
	data [InlineCap]byte
	n    uint8
}

// slack is the number of unused trailing bytes.
func (in *inline) slack() int { return InlineCap - int(in.n) }

// heap is the payload of Heap and HeapLarge strings.
type heap struct {
	buf    []byte // len(buf) == 1 << class
	length int
	class  uint8
	refs   *atomic.Int32 // HeapLarge only
	alloc  Allocator
}

// String is an immutable byte string with a small-string optimisation.
//
// The zero value is the empty inline string. Assigning a String copies the
// header only: heap storage is aliased, not owned. Use Clone to take an
// owned reference and Release to give it back.
type String struct {
	kind  Kind
	small inline
	large heap
}

// New copies b into a String using the default allocator.
func New(b []byte) (String, error) {
	return NewWith(defaultAllocator, b)
}

// NewString copies s into a String using the default allocator.
func NewString(s string) (String, error) {
	return NewWith(defaultAllocator, []byte(s))
}

// NewWith copies b into a String, taking heap buffers from a.
// A nil allocator selects the default allocator.
func NewWith(a Allocator, b []byte) (String, error) {
	if a == nil {
		a = defaultAllocator
	}
	n := len(b)
	if n <= InlineCap {
		s := String{kind: Inline}
		copy(s.small.data[:], b)
		s.small.n = uint8(n)
		return s, nil
	}
	if uint64(n) > MaxLen {
		return String{}, fmt.Errorf("%w: %d bytes", ErrTooLong, n)
	}

	class := capClass(n)
	buf, err := a.Alloc(1 << class)
	if err != nil {
		return String{}, fmt.Errorf("allocate %d bytes: %w", 1<<class, err)
	}
	copy(buf, b)

	s := String{
		kind: Heap,
		large: heap{
			buf:    buf,
			length: n,
			class:  class,
			alloc:  a,
		},
	}
	if n >= LargeThreshold {
		s.kind = HeapLarge
		s.large.refs = new(atomic.Int32)
		s.large.refs.Store(1)
	}
	return s, nil
}

// capClass returns the smallest c with 1<<c > n.
func capClass(n int) uint8 {
	return uint8(bits.Len(uint(n)))
}

// Kind reports the storage layout of s.
func (s String) Kind() Kind { return s.kind }

// Len returns the number of bytes in s.
func (s String) Len() int {
	switch s.kind {
	case Inline:
		return InlineCap - s.small.slack()
	case Heap, HeapLarge:
		return s.large.length
	}
	panic("xs: unknown kind " + s.kind.String())
}

// Cap returns the byte capacity of the active storage.
func (s String) Cap() int {
	switch s.kind {
	case Inline:
		return InlineCap
	case Heap, HeapLarge:
		return 1 << s.large.class
	}
	panic("xs: unknown kind " + s.kind.String())
}

// Refs returns the reference count of a HeapLarge string and 0 otherwise.
func (s String) Refs() int32 {
	if s.kind != HeapLarge || s.large.refs == nil {
		return 0
	}
	return s.large.refs.Load()
}

// Bytes returns a view of the contents of s. The view must not be modified.
func (s String) Bytes() []byte {
	switch s.kind {
	case Inline:
		n := int(s.small.n)
		return s.small.data[:n:n]
	case Heap, HeapLarge:
		return s.large.buf[:s.large.length:s.large.length]
	}
	panic("xs: unknown kind " + s.kind.String())
}

func (s String) String() string {
	return string(s.Bytes())
}

// Clone returns an owned reference to the contents of s.
//
// HeapLarge strings share their buffer and bump the reference count; Heap
// strings are copied into a fresh buffer from the same allocator.
func (s String) Clone() (String, error) {
	switch s.kind {
	case Inline:
		return s, nil
	case Heap:
		return NewWith(s.large.alloc, s.Bytes())
	case HeapLarge:
		s.large.refs.Add(1)
		return s, nil
	}
	panic("xs: unknown kind " + s.kind.String())
}

// Release gives up the reference held by s and resets it to the empty
// string. The heap buffer goes back to its allocator once no reference
// remains. Releasing an empty or inline string is a no-op.
func (s *String) Release() {
	switch s.kind {
	case Inline:
	case Heap:
		s.large.alloc.Free(s.large.buf)
	case HeapLarge:
		if s.large.refs.Add(-1) == 0 {
			s.large.alloc.Free(s.large.buf)
		}
	default:
		panic("xs: unknown kind " + s.kind.String())
	}
	*s = String{}
}

// Equal reports whether a and b hold the same bytes.
func Equal(a, b String) bool {
	return bytes.Equal(a.Bytes(), b.Bytes())
}
