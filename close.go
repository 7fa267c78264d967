package fibdrv

import "fmt"

// Close releases the term cache. It fails with ErrBusy while a session is
// open; after Close every operation returns ErrClosed. Close waits for
// Term calls already in progress.
func (d *Device) Close() error {
	if !d.gate.TryAcquire() {
		return ErrBusy
	}
	defer d.gate.Release()

	d.closeMu.Lock()
	defer d.closeMu.Unlock()

	if !d.closed.CompareAndSwap(false, true) {
		return ErrClosed
	}
	if d.cache != nil {
		if err := d.cache.close(); err != nil {
			return fmt.Errorf("close term cache: %w", err)
		}
	}
	return nil
}
