// Package fibdrv serves exact Fibonacci numbers through a file-like
// session: Seek moves a cursor over the sequence index, Read returns the
// decimal digits of the term at the cursor, Write is accepted and ignored.
// Only one session may be open at a time; a second Open fails with ErrBusy.
//
// Numbers are built by decimal string addition (package decimal) over a
// small-string-optimised container (package xs), so F(MaxLength) is exact.
//
// The library is organised into several files:
//
//	options.go      – configuration struct & defaults
//	config.go       – options file loading & validation
//	device.go       – constructors, core fields & term computation
//	gate.go         – single-session gate
//	session.go      – open & close of sessions
//	io.go           – read/write/seek protocol
//	termcache.go    – term cache constructor
//	shard.go        – term cache shards (anonymous mmap or heap)
//	shard_lookup.go – helper to locate a shard for an index
//	records.go      – CRC-framed record store & lookup
//	buffer.go       – pooled record buffers & lock helpers
//	head_tail.go    – term cache high-water mark
//	stats.go        – lightweight stats accessors
//	close.go        – device teardown
package fibdrv
