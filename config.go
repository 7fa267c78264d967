package fibdrv

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/goccy/go-yaml"
)

// LoadOptions reads a YAML (or JSON) options file and applies it over
// DefaultOptions. Unknown keys are rejected.
//
//	max_length: 500
//	cache_terms: true
//	record_size: 128
//	prefetch_size: 8
func LoadOptions(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("read config file: %w", err)
	}
	opts := DefaultOptions()
	if err := yaml.UnmarshalWithOptions(data, &opts, yaml.Strict()); err != nil {
		return Options{}, fmt.Errorf("decode config %s: %w", path, err)
	}
	if err := opts.Validate(); err != nil {
		return Options{}, fmt.Errorf("config %s: %w", path, err)
	}
	return opts, nil
}

// Validate reports every field outside its accepted range.
func (o Options) Validate() error {
	var errs []error
	if o.MaxLength < 0 || o.MaxLength > MaxLengthLimit {
		errs = append(errs, fmt.Errorf("max_length must be in 0..%d, got %d", MaxLengthLimit, o.MaxLength))
	}
	if o.MemoryLimit < 0 {
		errs = append(errs, fmt.Errorf("memory_limit must not be negative, got %d", o.MemoryLimit))
	}
	if o.ShardCount < 0 {
		errs = append(errs, fmt.Errorf("shard_count must not be negative, got %d", o.ShardCount))
	}
	if o.RecordSize < 0 || o.RecordSize > math.MaxUint16 {
		errs = append(errs, fmt.Errorf("record_size must be in 0..%d, got %d", math.MaxUint16, o.RecordSize))
	}
	if o.BufferPoolSize < 0 {
		errs = append(errs, fmt.Errorf("buffer_pool_size must not be negative, got %d", o.BufferPoolSize))
	}
	if o.PrefetchSize < 0 {
		errs = append(errs, fmt.Errorf("prefetch_size must not be negative, got %d", o.PrefetchSize))
	}
	return errors.Join(errs...)
}
