// Package draw renders game frames to an ANSI terminal.
package draw

import "strconv"

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Color is a canvas pen colour. The zero value means "no pixel".
type Color uint8

const (
	ColorNone Color = iota
	ColorWhite
	ColorGrey
	ColorRed
	ColorYellow
	ColorGreen
	ColorOrange
)

// ansi256 maps pen colours to xterm-256 palette indices.
var ansi256 = [...]int{
	ColorNone:   0,
	ColorWhite:  15,
	ColorGrey:   246,
	ColorRed:    203,
	ColorYellow: 226,
	ColorGreen:  46,
	ColorOrange: 208,
}

// ANSI returns the xterm-256 palette index for c.
func (c Color) ANSI() int {
	if int(c) >= len(ansi256) {
		return ansi256[ColorWhite]
	}
	return ansi256[c]
}

// Code returns the palette index as a string, the form lipgloss.Color expects.
func (c Color) Code() string {
	return strconv.Itoa(c.ANSI())
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
