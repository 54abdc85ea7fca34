package draw

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanvasScaling(t *testing.T) {
	// 10 columns x 5 rows = 10x10 pixels, logical 100x100.
	c := NewScaledCanvas(10, 5, 100, 100)
	c.SetColor(ColorRed)
	c.SetFloat(50, 50)
	assert.Equal(t, ColorRed, c.At(5, 5))

	col, row := c.LogicalToTerminal(50, 50)
	assert.Equal(t, 6, col)
	assert.Equal(t, 3, row)
}

func TestCanvasIgnoresOutOfBounds(t *testing.T) {
	c := NewCanvas(4, 2)
	c.SetFloat(-1, -1)
	c.SetFloat(100, 100)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			assert.Equal(t, ColorNone, c.At(x, y))
		}
	}
}

func TestCanvasFilledRect(t *testing.T) {
	c := NewCanvas(10, 5)
	c.SetColor(ColorYellow)
	c.DrawRect(2, 2, 4, 4, true)
	assert.Equal(t, ColorYellow, c.At(4, 4), "interior is filled")
	assert.Equal(t, ColorNone, c.At(8, 8))

	c.Clear()
	assert.Equal(t, ColorNone, c.At(4, 4))
}

func TestCanvasRenderHalfBlocks(t *testing.T) {
	c := NewCanvas(3, 1) // 3 columns, 2 sub-pixel rows
	c.SetColor(ColorWhite)
	c.Set(0, 0)
	c.Set(0, 1) // full block
	c.Set(1, 0) // upper half
	c.SetColor(ColorRed)
	c.Set(2, 1) // lower half, red

	var buf bytes.Buffer
	c.Render(&buf)
	out := buf.String()

	assert.Contains(t, out, "\033[1;1H\033[38;5;15m"+string(BlockFull))
	assert.Contains(t, out, "\033[1;2H\033[38;5;15m"+string(BlockUpperHalf))
	assert.Contains(t, out, "\033[1;3H\033[38;5;203m"+string(BlockLowerHalf))
	assert.True(t, strings.HasSuffix(out, "\033[0m"))
}

func TestCanvasRenderMixedCell(t *testing.T) {
	c := NewCanvas(1, 1)
	c.SetColor(ColorGreen)
	c.Set(0, 0)
	c.SetColor(ColorGrey)
	c.Set(0, 1)

	var buf bytes.Buffer
	c.Render(&buf)
	assert.Contains(t, buf.String(), "38;5;46;48;5;246m"+string(BlockUpperHalf))
}

func TestChunkWriterFlush(t *testing.T) {
	var buf bytes.Buffer
	cw := NewChunkWriter(&buf, 2, 1)
	cw.WriteAt(1, 1, "hi")
	cw.WriteString(strings.Repeat("x", 3*maxChunkSize))
	assert.Zero(t, buf.Len(), "nothing is written before Flush")
	assert.Equal(t, len("\033[2;3Hhi")+3*maxChunkSize, cw.Len())

	require.NoError(t, cw.Flush())
	assert.True(t, strings.HasPrefix(buf.String(), "\033[2;3Hhi"))
	assert.Len(t, buf.String(), len("\033[2;3Hhi")+3*maxChunkSize)
	assert.Zero(t, cw.Len())
}

func TestChunkWriterSkipsRepeatedFrame(t *testing.T) {
	var buf bytes.Buffer
	cw := NewChunkWriter(&buf, 0, 0)

	frame := func(s string) {
		cw.BeginFrame()
		cw.WriteAt(1, 1, s)
		require.NoError(t, cw.Flush())
	}

	frame("Score: 10")
	assert.Equal(t, seqClear+"\033[1;1HScore: 10", buf.String())

	buf.Reset()
	frame("Score: 10")
	assert.Zero(t, buf.Len(), "an unchanged frame is not resent")

	frame("Score: 20")
	assert.Contains(t, buf.String(), "Score: 20")

	buf.Reset()
	cw.SetOffset(3, 2)
	frame("Score: 20")
	assert.Equal(t, seqClear+"\033[3;4HScore: 20", buf.String(), "a resize forces a resend")
}

func TestChunkWriterBeginFrameDropsPending(t *testing.T) {
	var buf bytes.Buffer
	cw := NewChunkWriter(&buf, 0, 0)
	cw.WriteString("stale")
	cw.BeginFrame()
	cw.WriteString("fresh")
	require.NoError(t, cw.Flush())
	assert.Equal(t, seqClear+"fresh", buf.String())
}

func TestScreenSession(t *testing.T) {
	var buf bytes.Buffer
	EnterScreen(&buf)
	assert.True(t, strings.HasPrefix(buf.String(), seqHideCursor))

	buf.Reset()
	LeaveScreen(&buf)
	assert.True(t, strings.HasSuffix(buf.String(), seqShowCursor))
	assert.Contains(t, buf.String(), seqReset)
}

func TestColorCodes(t *testing.T) {
	assert.Equal(t, "203", ColorRed.Code())
	assert.Equal(t, 15, Color(200).ANSI(), "unknown colours fall back to white")
}

func TestCentered(t *testing.T) {
	styles := NewStyles(&bytes.Buffer{})
	s := styles.Danger.Render("GAME OVER")
	assert.Equal(t, 40-4, Centered(40, s))
}

func TestFixedSize(t *testing.T) {
	w, h, err := FixedSize(80, 24)()
	require.NoError(t, err)
	assert.Equal(t, 80, w)
	assert.Equal(t, 24, h)
}
