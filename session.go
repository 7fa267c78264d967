package fibdrv

import (
	"github.com/google/uuid"
)

// Session is an open handle on a Device. It owns the cursor.
//
// A Session is not safe for concurrent use; its operations are expected to
// run one after another.
type Session struct {
	dev    *Device
	id     uuid.UUID
	pos    int64
	closed bool
}

// Open starts a session. It fails immediately with ErrBusy while another
// session holds the device gate.
func (d *Device) Open() (*Session, error) {
	if d.closed.Load() {
		return nil, ErrClosed
	}
	if !d.gate.TryAcquire() {
		d.statBusy.Add(1)
		d.log().Warn("fibdrv is in use")
		return nil, ErrBusy
	}
	if d.closed.Load() {
		d.gate.Release()
		return nil, ErrClosed
	}
	d.statSessions.Add(1)

	s := &Session{dev: d, id: uuid.New()}
	d.log().Info("session opened", "session", s.id)
	return s, nil
}

// ID returns the unique identifier of the session.
func (s *Session) ID() string { return s.id.String() }

// Offset returns the cursor.
func (s *Session) Offset() int64 { return s.pos }

// Close ends the session and frees the device gate.
func (s *Session) Close() error {
	if s.closed {
		return ErrClosed
	}
	s.closed = true
	s.dev.gate.Release()
	s.dev.log().Info("session closed", "session", s.id)
	return nil
}
