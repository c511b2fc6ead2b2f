package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/hersh/termtris/internal/game"
	"github.com/hersh/termtris/internal/protocol"
)

var (
	shapeColors = [...]string{
		game.ShapeI: "51",
		game.ShapeO: "226",
		game.ShapeT: "201",
		game.ShapeL: "39",
		game.ShapeJ: "21",
		game.ShapeS: "46",
		game.ShapeZ: "196",
	}

	ghostColor  = "244"
	remoteColor = "248"

	blockChars = [...]string{
		game.CellEmpty: "  ",
		game.CellFull:  "██",
		game.CellGhost: "░▒",
	}

	boardStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("15"))

	infoStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("15"))

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("51"))

	gameOverStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	quitStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("226"))
)

// FrameRenderer draws the local game with lipgloss, one color per shape.
type FrameRenderer struct {
	// ShowControls adds the key map next to the board.
	ShowControls bool
}

func (r FrameRenderer) Render(v game.View) string {
	var side []string
	if v.HasNext {
		side = append(side, titleStyle.Render(" NEXT")+"\n"+RenderPiece(v.Next))
	}
	if r.ShowControls {
		side = append(side, RenderControls())
	}
	board := RenderBoard(v)
	if len(side) > 0 {
		board = lipgloss.JoinHorizontal(lipgloss.Top, board, lipgloss.JoinVertical(lipgloss.Left, side...))
	}
	return board + "\n" + game.ScoreLine(v.Width, v.Score) + "\n"
}

// RenderPiece draws s in its spawn rotation.
func RenderPiece(s game.Shape) string {
	offsets := s.Geometry().Rotations[0].Offsets
	minX, maxX, minY, maxY := offsets[0].X, offsets[0].X, offsets[0].Y, offsets[0].Y
	for _, o := range offsets[1:] {
		minX, maxX = min(minX, o.X), max(maxX, o.X)
		minY, maxY = min(minY, o.Y), max(maxY, o.Y)
	}

	block := renderCell(game.FullCell(s))
	var sb strings.Builder
	sb.WriteString(" ")
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			if slices.Contains(offsets[:], game.V(x, y)) {
				sb.WriteString(block)
			} else {
				sb.WriteString(blockChars[game.CellEmpty])
			}
		}
		if y < maxY {
			sb.WriteString("\n ")
		}
	}
	return sb.String()
}

// RenderBoard draws the cells of v inside a border.
func RenderBoard(v game.View) string {
	var sb strings.Builder
	for y := 0; y < v.Height; y++ {
		for _, c := range v.Cells[y*v.Width : (y+1)*v.Width] {
			sb.WriteString(renderCell(c))
		}
		if y < v.Height-1 {
			sb.WriteString("\n")
		}
	}
	return boardStyle.Render(sb.String())
}

func renderCell(c game.Cell) string {
	shape, ok := c.ShapeOf()
	if !ok {
		return blockChars[game.CellEmpty]
	}
	color := shapeColors[shape]
	if c.IsGhost() {
		color = ghostColor
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(color)).
		Render(blockChars[c.Kind])
}

// RenderRemoteBoard draws a board received from a spectator hub. Only
// occupancy travels over the wire, so every block shares one color.
func RenderRemoteBoard(p protocol.BoardSnapshotPayload) string {
	block := lipgloss.NewStyle().
		Foreground(lipgloss.Color(remoteColor)).
		Render(blockChars[game.CellFull])

	var sb strings.Builder
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			if p.Full(x, y) {
				sb.WriteString(block)
			} else {
				sb.WriteString(blockChars[game.CellEmpty])
			}
		}
		if y < p.Height-1 {
			sb.WriteString("\n")
		}
	}
	return boardStyle.Render(sb.String())
}

// RenderInfo is the side panel of the spectator view.
func RenderInfo(p protocol.BoardSnapshotPayload, over *protocol.GameOverPayload) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("TERMTRIS") + "\n\n")
	sb.WriteString(infoStyle.Render(fmt.Sprintf("Score: %d", p.Score)) + "\n")
	sb.WriteString(infoStyle.Render(fmt.Sprintf("Board: %dx%d", p.Width, p.Height)) + "\n\n")

	switch {
	case over != nil && over.Quit:
		sb.WriteString(quitStyle.Render("PLAYER QUIT") + "\n")
	case over != nil || p.Over:
		sb.WriteString(gameOverStyle.Render("GAME OVER") + "\n")
	default:
		sb.WriteString(infoStyle.Render("playing...") + "\n")
	}

	sb.WriteString("\n" + infoStyle.Render("Press Q to quit"))
	return sb.String()
}

func RenderControls() string {
	return infoStyle.Render(`
Controls:
  A D    Move left/right
  S      Soft drop
  Space  Hard drop
  W      Rotate left
  Q      Rotate right
  X      Quit
`)
}
