package game_test

import (
	"testing"

	"github.com/hersh/termtris/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRotationStateCounts(t *testing.T) {
	for _, s := range game.Shapes {
		want := 4
		if s == game.ShapeO {
			want = 1
		}
		assert.Equal(t, want, game.NewTetromino(s).States(), "shape %v", s)
	}
}

func TestRotateLeftThenRightRestoresOffsets(t *testing.T) {
	for _, s := range game.Shapes {
		tet := game.NewTetromino(s)
		for state := 0; state < tet.States(); state++ {
			want := tet.Offsets()

			back := tet
			back.RotateLeft()
			back.RotateRight()
			assert.Equal(t, want, back.Offsets(), "shape %v state %d left/right", s, state)

			back = tet
			back.RotateRight()
			back.RotateLeft()
			assert.Equal(t, want, back.Offsets(), "shape %v state %d right/left", s, state)

			tet.RotateRight()
		}
	}
}

func TestRotationCycles(t *testing.T) {
	for _, s := range game.Shapes {
		left := game.NewTetromino(s)
		right := game.NewTetromino(s)
		n := left.States()
		for i := 0; i < n; i++ {
			left.RotateLeft()
			right.RotateRight()
			assert.GreaterOrEqual(t, left.State(), 0)
			assert.Less(t, left.State(), n)
		}
		assert.Equal(t, 0, left.State(), "shape %v", s)
		assert.Equal(t, 0, right.State(), "shape %v", s)
	}
}

func TestRotateLeftWraps(t *testing.T) {
	tet := game.NewTetromino(game.ShapeT)
	tet.RotateLeft()
	assert.Equal(t, 3, tet.State())
}

// Every edge flag must match the cell's neighbours: a cell is on the edge in
// direction d exactly when the cell next to it in d is not part of the piece.
func TestEdgesMatchOffsets(t *testing.T) {
	dirs := []game.Direction{game.Up, game.Down, game.Left, game.Right}
	for _, s := range game.Shapes {
		for state, rot := range s.Geometry().Rotations {
			for i, off := range rot.Offsets {
				var want game.Flags
				for _, d := range dirs {
					neighbour := off.Add(d.Vec())
					inside := false
					for _, o := range rot.Offsets {
						if o == neighbour {
							inside = true
						}
					}
					if !inside {
						want |= d.Flags()
					}
				}
				assert.Equal(t, want, rot.Edges[i], "shape %v state %d cell %d", s, state, i)
			}
		}
	}
}

func TestOffsetsAreDistinct(t *testing.T) {
	for _, s := range game.Shapes {
		for state, rot := range s.Geometry().Rotations {
			seen := map[game.Vec2]bool{}
			for _, o := range rot.Offsets {
				require.False(t, seen[o], "shape %v state %d repeats %v", s, state, o)
				seen[o] = true
			}
		}
	}
}

func TestCellsColliding(t *testing.T) {
	i := game.NewTetromino(game.ShapeI)

	assert.Equal(t, []int{0, 1, 2, 3}, i.CellsColliding(game.FlagDown))
	assert.Equal(t, []int{0}, i.CellsColliding(game.FlagLeft))
	assert.Equal(t, []int{3}, i.CellsColliding(game.FlagRight))
	assert.Empty(t, i.CellsColliding(game.FlagHorizontal))

	i.RotateRight()
	assert.Equal(t, []int{3}, i.CellsColliding(game.FlagDown))
	assert.Equal(t, []int{0, 1, 2, 3}, i.CellsColliding(game.FlagHorizontal))
}

func TestCellShape(t *testing.T) {
	_, ok := game.Cell{}.ShapeOf()
	assert.False(t, ok)

	s, ok := game.GhostCell(game.ShapeL).ShapeOf()
	assert.True(t, ok)
	assert.Equal(t, game.ShapeL, s)

	assert.Equal(t, game.FullCell(game.ShapeL), game.GhostCell(game.ShapeL).AsFull())
	assert.Panics(t, func() { game.Cell{}.AsGhost() })
}
