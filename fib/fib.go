// Package fib computes exact Fibonacci numbers as decimal digit strings.
package fib

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/jhan1998/fibdrv/decimal"
	"github.com/jhan1998/fibdrv/xs"
)

// ErrInvalidIndex is returned for a negative or out-of-range sequence index.
var ErrInvalidIndex = errors.New("fib: invalid index")

// MaxIndex is the largest index Table and Term accept. The table for it
// holds about 450 MB of digits.
const MaxIndex = 1 << 16

// Option configures an Engine.
type Option func(*Engine)

// WithAllocator makes the engine take string buffers from a.
func WithAllocator(a xs.Allocator) Option {
	return func(e *Engine) {
		e.alloc = a
	}
}

// WithLogger sets the logger used for debug output.
// If nil, a discard logger is used.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// Engine builds the Fibonacci sequence iteratively with decimal string
// addition. Each call computes its own table; nothing is kept between calls.
type Engine struct {
	alloc  xs.Allocator
	adder  *decimal.Adder
	logger *slog.Logger
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	if e.alloc == nil {
		e.alloc = xs.DefaultAllocator()
	}
	e.adder = decimal.NewAdder(e.alloc)
	return e
}

// log returns the logger, falling back to a discard logger if nil.
func (e *Engine) log() *slog.Logger {
	if e.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return e.logger
}

// Table returns F(0) through F(k). The caller owns every slot and should
// hand the table back with Release.
//
// On error every slot built so far is released and no table is returned.
func (e *Engine) Table(k int) ([]xs.String, error) {
	if k < 0 || k > MaxIndex {
		return nil, fmt.Errorf("%w: %d (allowed 0..%d)", ErrInvalidIndex, k, MaxIndex)
	}
	tab := make([]xs.String, k+2)

	var err error
	if tab[0], err = xs.NewWith(e.alloc, []byte("0")); err != nil {
		return nil, err
	}
	if tab[1], err = xs.NewWith(e.alloc, []byte("1")); err != nil {
		return nil, err
	}
	for i := 2; i <= k; i++ {
		tab[i], err = e.adder.Add(tab[i-1], tab[i-2])
		if err != nil {
			Release(tab[:i])
			return nil, fmt.Errorf("term %d: %w", i, err)
		}
	}
	e.log().Debug("fibonacci table built", "k", k, "digits", tab[k].Len())
	return tab[:k+1], nil
}

// Term returns F(k).
func (e *Engine) Term(k int) (xs.String, error) {
	tab, err := e.Table(k)
	if err != nil {
		return xs.String{}, err
	}
	out := tab[k]
	tab[k] = xs.String{}
	Release(tab)
	return out, nil
}

// Release releases every string in tab.
func Release(tab []xs.String) {
	for i := range tab {
		tab[i].Release()
	}
}
