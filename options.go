package fibdrv

import (
	"log/slog"

	"github.com/jhan1998/fibdrv/fib"
)

const (
	// MaxLength is the largest sequence index the device serves.
	MaxLength = 500

	// MaxLengthLimit is the largest accepted Options.MaxLength.
	MaxLengthLimit = fib.MaxIndex
)

// Options configures a Device.
//
//   - MaxLength:      largest cursor value (default 500, at most MaxLengthLimit)
//   - MemoryLimit:    cap on outstanding string bytes (0 = unlimited)
//   - CacheTerms:     keep computed terms in the term cache
//   - UseMmap:        back the term cache with anonymous memory mappings
//   - ShardCount:     number of term cache shards
//   - RecordSize:     digits per cached term; longer terms are not cached
//   - BufferPoolSize: pool record buffers (0 = disable)
//   - PrefetchSize:   terms computed ahead on a cache miss (0 = disable)
//
// Zero numeric values select the defaults, see DefaultOptions.
type Options struct {
	MaxLength      int64 `yaml:"max_length"`
	MemoryLimit    int64 `yaml:"memory_limit"`
	CacheTerms     bool  `yaml:"cache_terms"`
	UseMmap        bool  `yaml:"use_mmap"`
	ShardCount     int   `yaml:"shard_count"`
	RecordSize     int   `yaml:"record_size"`
	BufferPoolSize int   `yaml:"buffer_pool_size"`
	PrefetchSize   int   `yaml:"prefetch_size"`

	// Gate is the session gate; a Device creates its own when nil.
	Gate *Gate `yaml:"-"`

	// Logger receives device events; nil discards them.
	Logger *slog.Logger `yaml:"-"`
}

// DefaultOptions returns the configuration used by NewDevice.
func DefaultOptions() Options {
	return Options{
		MaxLength:      MaxLength,
		CacheTerms:     false,
		UseMmap:        true,
		ShardCount:     4,
		RecordSize:     128, // F(500) has 105 digits
		BufferPoolSize: 64,
		PrefetchSize:   0,
	}
}

func (o *Options) setDefaults() {
	def := DefaultOptions()
	if o.MaxLength <= 0 {
		o.MaxLength = def.MaxLength
	}
	if o.ShardCount <= 0 {
		o.ShardCount = 1
	}
	if o.RecordSize <= 0 {
		o.RecordSize = def.RecordSize
	}
}
