// Package input turns a raw terminal byte stream into per-frame key state.
package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
// Terminals only report repeats, so holding a key shows up as a stream of presses.
const keyHoldDuration = 30 * time.Millisecond

// maxPending caps how much of an unfinished escape sequence is carried between frames.
const maxPending = 16

// Input represents the current frame's input state.
type Input struct {
	Quit    bool
	Left    bool
	Right   bool
	Space   bool
	Enter   bool
	Escape  bool
	Pressed []byte // Raw bytes received this frame
}

// AnyKey reports whether any key was pressed this frame.
func (i Input) AnyKey() bool {
	return len(i.Pressed) > 0
}

// keyState tracks the last time each key was pressed.
type keyState struct {
	quit   time.Time
	left   time.Time
	right  time.Time
	space  time.Time
	enter  time.Time
	escape time.Time
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch      chan byte
	state   keyState
	pending []byte // Unfinished escape sequence from the previous frame
	closed  bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 128),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Closed reports whether the underlying reader has hit EOF or an error.
func (s *Stream) Closed() bool {
	return s.closed
}

// ReadInput drains all available bytes from the stream (non-blocking).
// Handles escape sequences for arrow keys and accumulates all pressed keys.
// Uses key state persistence to allow detecting simultaneous key combinations.
func ReadInput(s *Stream) Input {
	var buf []byte

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	return s.process(buf, time.Now())
}

// ResetKeyInput forgets held keys so a press that started a game does not
// also fire the first shot.
func ResetKeyInput(s *Stream) {
	if s == nil {
		return
	}
	s.state = keyState{}
}

// process parses the collected bytes, updates key state and builds the frame input.
// An escape sequence cut off at the end of buf is carried over to the next
// frame; a bare ESC only counts once a frame passes without a follow-up byte.
func (s *Stream) process(in []byte, now time.Time) Input {
	buf := in
	if len(s.pending) > 0 {
		buf = append(s.pending, in...)
		s.pending = nil
	}

	for i := 0; i < len(buf); i++ {
		b := buf[i]
		if b != '\x1b' {
			applyByteToState(&s.state, b, now)
			continue
		}

		n, complete := s.escapeSequence(buf[i:], now)
		if !complete {
			rest := buf[i:]
			switch {
			case len(in) > 0 && len(rest) <= maxPending:
				s.pending = append([]byte(nil), rest...)
			case len(rest) == 1:
				s.state.escape = now
			}
			break
		}
		i += n - 1
	}

	held := func(t time.Time) bool {
		return now.Sub(t) < keyHoldDuration
	}
	return Input{
		Quit:    held(s.state.quit),
		Left:    held(s.state.left),
		Right:   held(s.state.right),
		Space:   held(s.state.space),
		Enter:   held(s.state.enter),
		Escape:  held(s.state.escape),
		Pressed: in,
	}
}

// escapeSequence decodes the sequence starting with ESC at seq[0] and returns
// its length. complete is false when seq ends before the sequence does.
func (s *Stream) escapeSequence(seq []byte, now time.Time) (n int, complete bool) {
	if len(seq) < 2 {
		return 0, false
	}
	switch seq[1] {
	case '[': // CSI: parameter bytes up to a final byte in 0x40-0x7E
		for j := 2; j < len(seq); j++ {
			if seq[j] >= 0x40 && seq[j] <= 0x7e {
				s.applyArrow(seq[j], now)
				return j + 1, true
			}
		}
		return 0, false
	case 'O': // SS3, arrows in application cursor mode
		if len(seq) < 3 {
			return 0, false
		}
		s.applyArrow(seq[2], now)
		return 3, true
	}
	// ESC followed by an ordinary key was pressed on its own
	s.state.escape = now
	return 1, true
}

// applyArrow binds the final byte of an arrow sequence. Modified arrows
// (Shift/Ctrl) share the final byte; other keys are ignored.
func (s *Stream) applyArrow(final byte, now time.Time) {
	switch final {
	case 'C':
		s.state.right = now
	case 'D':
		s.state.left = now
	}
}

// applyByteToState updates the key state timestamps based on the pressed byte.
func applyByteToState(state *keyState, b byte, now time.Time) {
	switch b {
	case 'q', 'Q', 0x03: // Ctrl+C arrives as a byte in raw mode
		state.quit = now
	case 'a', 'A', 'j', 'J', 'h', 'H':
		state.left = now
	case 'd', 'D', 'l', 'L':
		state.right = now
	case ' ':
		state.space = now
	case '\n', '\r':
		state.enter = now
	}
}
