package fibdrv

import (
	"bytes"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/jhan1998/fibdrv/fib"
	"github.com/jhan1998/fibdrv/xs"
)

// Device serves Fibonacci numbers through sessions that behave like an open
// file: the cursor selects the index, Read returns the term.
//
// Term and the stats accessors are safe for concurrent use. Sessions are
// not; only one is admitted at a time.
type Device struct {
	options Options
	maxLen  int64
	gate    *Gate
	alloc   *xs.PoolAllocator
	engine  *fib.Engine
	cache   *termCache // nil unless CacheTerms
	logger  *slog.Logger

	computeGroup singleflight.Group
	closeMu      sync.RWMutex // held shared by Term, exclusive by Close
	closed       atomic.Bool

	statReads    atomic.Uint64
	statSessions atomic.Uint64
	statBusy     atomic.Uint64
}

// NewDevice creates a device with DefaultOptions.
func NewDevice() (*Device, error) {
	return NewDeviceWithOptions(DefaultOptions())
}

// NewDeviceWithOptions creates a device with custom options.
func NewDeviceWithOptions(opts Options) (*Device, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	opts.setDefaults()

	d := &Device{
		options: opts,
		maxLen:  opts.MaxLength,
		gate:    opts.Gate,
		alloc:   xs.NewPoolAllocator(opts.MemoryLimit),
		logger:  opts.Logger,
	}
	if d.gate == nil {
		d.gate = NewGate()
	}
	d.engine = fib.New(fib.WithAllocator(d.alloc), fib.WithLogger(opts.Logger))

	if opts.CacheTerms {
		c, err := newTermCache(d.maxLen+1, opts)
		if err != nil {
			return nil, fmt.Errorf("term cache: %w", err)
		}
		d.cache = c
	}
	return d, nil
}

// log returns the logger, falling back to a discard logger if nil.
func (d *Device) log() *slog.Logger {
	if d.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return d.logger
}

// MaxLength returns the largest index the device serves.
func (d *Device) MaxLength() int64 { return d.maxLen }

// Term returns the decimal digits of F(k), k in 0..MaxLength.
//
// Concurrent calls for the same index share a single computation.
func (d *Device) Term(k int64) ([]byte, error) {
	d.closeMu.RLock()
	defer d.closeMu.RUnlock()

	if d.closed.Load() {
		return nil, ErrClosed
	}
	if k < 0 || k > d.maxLen {
		return nil, fmt.Errorf("%w: %d (allowed 0..%d)", ErrInvalidIndex, k, d.maxLen)
	}
	d.statReads.Add(1)

	if d.cache != nil {
		if digits, ok := d.cache.lookup(k); ok {
			return digits, nil
		}
	}

	v, err, _ := d.computeGroup.Do(strconv.FormatInt(k, 10), func() (any, error) {
		return d.compute(k)
	})
	if err != nil {
		return nil, err
	}
	return bytes.Clone(v.([]byte)), nil
}

// compute builds the table up to k, or further when read-ahead is on, and
// stores every term in the cache.
func (d *Device) compute(k int64) ([]byte, error) {
	upto := k
	if d.cache != nil && d.options.PrefetchSize > 0 {
		upto = min(k+int64(d.options.PrefetchSize), d.maxLen)
	}

	tab, err := d.engine.Table(int(upto))
	if err != nil {
		return nil, fmt.Errorf("compute F(%d): %w", k, err)
	}
	defer fib.Release(tab)

	if d.cache != nil {
		for i := range tab {
			if err := d.cache.store(int64(i), tab[i].Bytes()); err != nil {
				d.log().Debug("term not cached", "index", i, "error", err)
			}
		}
	}
	return bytes.Clone(tab[k].Bytes()), nil
}
