package object

import "github.com/tomz197/neodefender/internal/draw"

// Label is a line of text anchored at a logical field position.
type Label struct {
	X, Y  float64 // Centre of the text in field units
	Value string
}

// Draw writes the label centred on its anchor. Labels are text, so they are
// written after the canvas has been rendered. Off-screen labels are skipped.
func (l Label) Draw(w *draw.ChunkWriter, canvas *draw.Canvas, style func(...string) string) {
	if l.Value == "" {
		return
	}
	col, row := canvas.LogicalToTerminal(l.X, l.Y)
	if row < 1 || row > canvas.TerminalHeight() {
		return
	}
	col -= len([]rune(l.Value)) / 2
	col = max(1, min(col, canvas.TerminalWidth()-len([]rune(l.Value))+1))
	w.WriteAt(col, row, style(l.Value))
}
