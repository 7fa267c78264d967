package fibdrv

// Stats is a snapshot of device counters. HitRatio is a percentage (0-100)
// of term cache lookups that hit; Head is the largest cached index or -1.
type Stats struct {
	Reads       uint64
	Hits        uint64
	Misses      uint64
	HitRatio    float64
	Sessions    uint64
	Busy        uint64
	Head        int64
	MemoryInUse int64
}

// GetStats returns the current counters without taking any lock.
func (d *Device) GetStats() Stats {
	st := Stats{
		Reads:       d.statReads.Load(),
		Sessions:    d.statSessions.Load(),
		Busy:        d.statBusy.Load(),
		Head:        -1,
		MemoryInUse: d.alloc.InUse(),
	}
	if d.cache != nil {
		st.Hits = d.cache.statHits.Load()
		st.Misses = d.cache.statMisses.Load()
		st.Head = d.cache.Head()
	}
	if total := st.Hits + st.Misses; total > 0 {
		st.HitRatio = float64(st.Hits) / float64(total) * 100.0
	}
	return st
}

// ResetStats zeroes the read, session and cache counters.
func (d *Device) ResetStats() {
	d.statReads.Store(0)
	d.statSessions.Store(0)
	d.statBusy.Store(0)
	if d.cache != nil {
		d.cache.statHits.Store(0)
		d.cache.statMisses.Store(0)
	}
}

// CacheEnabled reports whether the device keeps computed terms.
func (d *Device) CacheEnabled() bool { return d.cache != nil }
