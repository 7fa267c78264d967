// Package xs provides a compact byte string with a small-string
// optimisation, used to hold the decimal digits of Fibonacci numbers.
//
// A String has one of three layouts:
//
//	Inline     up to 15 bytes stored in the String value itself
//	Heap       a power-of-two heap buffer owned by the String
//	HeapLarge  a heap buffer of 256 bytes or more, shared under a reference count
//
// Heap buffers come from an Allocator. The default PoolAllocator recycles
// buffers per capacity class; a PoolAllocator with a limit reports
// ErrOutOfMemory instead of growing past it.
package xs
