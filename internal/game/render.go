package game

import (
	"strconv"
	"strings"
)

// View is what a Renderer sees of the engine. Cells aliases the live board
// and must not be retained.
type View struct {
	Width  int
	Height int
	Cells  []Cell
	Score  uint32
	// Next is the upcoming shape when HasNext is set. Only generators
	// that implement Previewer provide one.
	Next    Shape
	HasNext bool
}

// Renderer turns a View into one full frame of text. Lines are separated by
// "\n".
type Renderer interface {
	Render(v View) string
}

// RendererFunc adapts a plain function to Renderer.
type RendererFunc func(v View) string

func (f RendererFunc) Render(v View) string {
	return f(v)
}

// PlainRenderer draws the board with block glyphs and no color.
type PlainRenderer struct{}

var plainGlyphs = [...]string{
	CellEmpty: "  ",
	CellFull:  "██",
	CellGhost: "░▒",
}

func (PlainRenderer) Render(v View) string {
	var sb strings.Builder

	sb.WriteString(strings.Repeat("▀▄", v.Width+1))
	sb.WriteString("\n")
	for y := 0; y < v.Height; y++ {
		sb.WriteString("▓")
		for _, c := range v.Cells[y*v.Width : (y+1)*v.Width] {
			sb.WriteString(plainGlyphs[c.Kind])
		}
		sb.WriteString("▓\n")
	}
	sb.WriteString(strings.Repeat("▄▀", v.Width+1))
	sb.WriteString("\n")
	sb.WriteString(ScoreLine(v.Width, v.Score))
	sb.WriteString("\n")

	return sb.String()
}

// ScoreLine centers the score between two runs of dashes spanning the
// rendered board width.
func ScoreLine(width int, score uint32) string {
	s := strconv.FormatUint(uint64(score), 10)
	pad := max((width*2-len(s))/2, 0)
	dashes := strings.Repeat("-", pad)
	return dashes + s + dashes
}
