package draw

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"strconv"

	"golang.org/x/term"
)

// Control sequences used around a game session.
const (
	seqClear      = "\033[H\033[2J"
	seqHideCursor = "\033[?25l"
	seqShowCursor = "\033[?25h"
	seqReset      = "\033[0m"
)

// ChunkWriter collects one frame of terminal output and sends it in
// network-sized chunks on Flush. A frame identical to the last flushed one
// is not sent again, so static screens cost nothing over SSH.
type ChunkWriter struct {
	frame  []byte
	last   []byte
	bufw   *bufio.Writer
	offCol int
	offRow int
}

// NewChunkWriter creates a ChunkWriter that writes to w. offsetCol and offsetRow
// shift every cursor position so the playfield stays centred.
func NewChunkWriter(w io.Writer, offsetCol, offsetRow int) *ChunkWriter {
	return &ChunkWriter{
		bufw:   bufio.NewWriterSize(w, 8192),
		offCol: offsetCol,
		offRow: offsetRow,
	}
}

// SetOffset moves the playfield after a resize. The next frame is always sent.
func (cw *ChunkWriter) SetOffset(offsetCol, offsetRow int) {
	if cw.offCol == offsetCol && cw.offRow == offsetRow {
		return
	}
	cw.offCol = offsetCol
	cw.offRow = offsetRow
	cw.last = cw.last[:0]
}

// BeginFrame drops anything not yet flushed and starts a frame on a clear screen.
func (cw *ChunkWriter) BeginFrame() {
	cw.frame = append(cw.frame[:0], seqClear...)
}

// MoveCursor appends a cursor position. col and row are 1-based playfield
// coordinates.
func (cw *ChunkWriter) MoveCursor(col, row int) {
	cw.frame = append(cw.frame, "\033["...)
	cw.frame = strconv.AppendInt(cw.frame, int64(row+cw.offRow), 10)
	cw.frame = append(cw.frame, ';')
	cw.frame = strconv.AppendInt(cw.frame, int64(col+cw.offCol), 10)
	cw.frame = append(cw.frame, 'H')
}

// Write lets Canvas.Render draw into the frame.
func (cw *ChunkWriter) Write(p []byte) (int, error) {
	cw.frame = append(cw.frame, p...)
	return len(p), nil
}

// WriteString appends s to the frame.
func (cw *ChunkWriter) WriteString(s string) {
	cw.frame = append(cw.frame, s...)
}

// WriteAt writes s starting at a 1-based playfield position.
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	cw.MoveCursor(col, row)
	cw.frame = append(cw.frame, s...)
}

// Len returns the size of the pending frame in bytes.
func (cw *ChunkWriter) Len() int {
	return len(cw.frame)
}

var _ io.Writer = (*ChunkWriter)(nil)

// Flush sends the pending frame unless it repeats the previous one.
func (cw *ChunkWriter) Flush() error {
	if len(cw.frame) == 0 {
		return nil
	}
	if bytes.Equal(cw.frame, cw.last) {
		cw.frame = cw.frame[:0]
		return nil
	}
	if err := writeChunked(cw.bufw, cw.frame); err != nil {
		return err
	}
	cw.last, cw.frame = cw.frame, cw.last[:0]
	return cw.bufw.Flush()
}

// writeChunked writes data in pieces of at most maxChunkSize bytes.
func writeChunked(w io.Writer, data []byte) error {
	for len(data) > 0 {
		n := min(len(data), maxChunkSize)
		if _, err := w.Write(data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

// EnterScreen hides the cursor and clears the terminal for a game session.
func EnterScreen(w io.Writer) {
	_, _ = io.WriteString(w, seqHideCursor+seqClear)
}

// LeaveScreen resets colours, clears the terminal and shows the cursor again.
func LeaveScreen(w io.Writer) {
	_, _ = io.WriteString(w, seqReset+seqClear+seqShowCursor)
}

// TermSizeFunc reports the terminal dimensions in cells.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc reads the size of the local terminal on stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// FixedSize returns a TermSizeFunc that always reports the given dimensions.
func FixedSize(width, height int) TermSizeFunc {
	return func() (int, int, error) {
		return width, height, nil
	}
}
