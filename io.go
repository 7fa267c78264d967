package fibdrv

import (
	"fmt"
	"io"
	"math"
)

// WriteResult is the value every Write returns.
const WriteResult = 1

// Read copies the digits of F(cursor) followed by a 0 terminator into p and
// returns the number of bytes written. The cursor does not move.
//
// If p cannot hold the term and its terminator, Read writes nothing and
// returns an error wrapping io.ErrShortBuffer.
func (s *Session) Read(p []byte) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}
	digits, err := s.dev.Term(s.pos)
	if err != nil {
		return 0, err
	}
	s.dev.log().Debug("read", "session", s.id, "offset", s.pos, "digits", len(digits))

	need := len(digits) + 1
	if len(p) < need {
		return 0, fmt.Errorf("%w: F(%d) needs %d bytes, have %d", io.ErrShortBuffer, s.pos, need, len(p))
	}
	n := copy(p, digits)
	p[n] = 0
	return need, nil
}

// Write does not change any state and returns WriteResult.
//
// Write does not follow the io.Writer contract: the result is a fixed
// constant, not the number of bytes consumed.
func (s *Session) Write(p []byte) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}
	return WriteResult, nil
}

// Seek moves the cursor and returns its new value.
//
//	io.SeekStart    cursor = offset
//	io.SeekCurrent  cursor = cursor + offset
//	io.SeekEnd      cursor = MaxLength - offset
//
// The result is clamped to 0..MaxLength. An unknown whence returns
// ErrInvalidWhence and leaves the cursor alone.
func (s *Session) Seek(offset int64, whence int) (int64, error) {
	if s.closed {
		return 0, ErrClosed
	}
	limit := s.dev.maxLen

	var pos int64
	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = addSat(s.pos, offset)
	case io.SeekEnd:
		pos = addSat(limit, negSat(offset))
	default:
		return s.pos, fmt.Errorf("%w: %d", ErrInvalidWhence, whence)
	}

	if pos > limit {
		pos = limit
	}
	if pos < 0 {
		pos = 0
	}
	s.pos = pos
	return pos, nil
}

// addSat returns a+b, saturating at the int64 limits.
func addSat(a, b int64) int64 {
	if b > 0 && a > math.MaxInt64-b {
		return math.MaxInt64
	}
	if b < 0 && a < math.MinInt64-b {
		return math.MinInt64
	}
	return a + b
}

func negSat(a int64) int64 {
	if a == math.MinInt64 {
		return math.MaxInt64
	}
	return -a
}
