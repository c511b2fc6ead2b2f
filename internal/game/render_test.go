package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainRenderer(t *testing.T) {
	b := NewBoard(3, 2)
	b.Set(V(0, 0), FullCell(ShapeT))
	b.Set(V(2, 1), GhostCell(ShapeT))

	frame := PlainRenderer{}.Render(View{Width: 3, Height: 2, Cells: b.Cells, Score: 7})
	lines := strings.Split(strings.TrimSuffix(frame, "\n"), "\n")

	require.Len(t, lines, 5)
	assert.Equal(t, "▀▄▀▄▀▄▀▄", lines[0])
	assert.Equal(t, "▓██    ▓", lines[1])
	assert.Equal(t, "▓    ░▒▓", lines[2])
	assert.Equal(t, "▄▀▄▀▄▀▄▀", lines[3])
	assert.Equal(t, "--7--", lines[4])
}

func TestScoreLine(t *testing.T) {
	tests := []struct {
		width int
		score uint32
		want  string
	}{
		{10, 0, "---------0---------"},
		{10, 1234, "--------1234--------"},
		{2, 100, "100"},
		{1, 123456, "123456"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ScoreLine(tt.width, tt.score))
	}
}
