package fibdrv

import (
	"errors"

	"github.com/jhan1998/fibdrv/fib"
	"github.com/jhan1998/fibdrv/xs"
)

var (
	// ErrBusy is returned by Open while another session is active.
	ErrBusy = errors.New("fibdrv: device busy")

	// ErrClosed is returned for operations on a closed session or device.
	ErrClosed = errors.New("fibdrv: closed")

	// ErrInvalidWhence is returned by Seek for an unknown origin.
	ErrInvalidWhence = errors.New("fibdrv: invalid whence")
)

// Errors re-exported from the computation packages.
var (
	// ErrInvalidIndex is returned for an index outside 0..MaxLength.
	ErrInvalidIndex = fib.ErrInvalidIndex

	// ErrOutOfMemory is returned when the configured memory limit is reached.
	ErrOutOfMemory = xs.ErrOutOfMemory

	// ErrTooLong is returned when a term exceeds the string length limit.
	ErrTooLong = xs.ErrTooLong
)
