// Package decimal adds non-negative integers held as decimal digit strings.
package decimal

import (
	"errors"
	"fmt"
	"sync"

	"github.com/jhan1998/fibdrv/xs"
)

// ErrMalformed is returned when an operand is empty or holds a non-digit byte.
var ErrMalformed = errors.New("decimal: malformed operand")

var defaultAdder = NewAdder(nil)

// Adder adds digit strings, taking result buffers from one allocator.
// It is safe for concurrent use.
type Adder struct {
	alloc   xs.Allocator
	scratch sync.Pool
}

// NewAdder returns an Adder whose results are allocated from a.
// A nil allocator selects xs.DefaultAllocator.
func NewAdder(a xs.Allocator) *Adder {
	if a == nil {
		a = xs.DefaultAllocator()
	}
	return &Adder{alloc: a}
}

// Add returns a+b using the default allocator.
func Add(a, b xs.String) (xs.String, error) {
	return defaultAdder.Add(a, b)
}

// Add returns the decimal sum of a and b.
//
// Both operands are most-significant-digit first. They are read from their
// tails and never modified, so strings sharing a buffer stay intact.
func (ad *Adder) Add(a, b xs.String) (xs.String, error) {
	da, db := a.Bytes(), b.Bytes()
	if err := validate(da); err != nil {
		return xs.String{}, fmt.Errorf("left operand: %w", err)
	}
	if err := validate(db); err != nil {
		return xs.String{}, fmt.Errorf("right operand: %w", err)
	}
	if len(db) > len(da) {
		da, db = db, da
	}
	na, nb := len(da), len(db)

	buf := ad.getScratch(na + 2)
	defer ad.putScratch(buf)

	var carry byte
	i := 0
	for ; i < nb; i++ {
		sum := (da[na-1-i] - '0') + (db[nb-1-i] - '0') + carry
		buf[i] = '0' + sum%10
		carry = sum / 10
	}
	for ; i < na; i++ {
		sum := (da[na-1-i] - '0') + carry
		buf[i] = '0' + sum%10
		carry = sum / 10
	}
	if carry != 0 {
		buf[i] = '0' + carry
		i++
	}
	reverse(buf[:i])

	out, err := xs.NewWith(ad.alloc, buf[:i])
	if err != nil {
		return xs.String{}, fmt.Errorf("add %d+%d digits: %w", na, nb, err)
	}
	return out, nil
}

func (ad *Adder) getScratch(n int) []byte {
	if p, ok := ad.scratch.Get().(*[]byte); ok && cap(*p) >= n {
		return (*p)[:n]
	}
	return make([]byte, n)
}

func (ad *Adder) putScratch(buf []byte) {
	ad.scratch.Put(&buf)
}

func validate(d []byte) error {
	if len(d) == 0 {
		return fmt.Errorf("%w: empty", ErrMalformed)
	}
	for i, c := range d {
		if c < '0' || c > '9' {
			return fmt.Errorf("%w: byte %q at %d", ErrMalformed, c, i)
		}
	}
	return nil
}

func reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
