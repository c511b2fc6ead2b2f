package game

// Board is the row-major play field. Cells[x+y*Width] is the tile at (x, y);
// y = 0 is the top row.
type Board struct {
	Cells  []Cell
	Width  int
	Height int
}

func NewBoard(width, height int) *Board {
	if width <= 0 || height <= 0 {
		panic("game: board dimensions must be positive")
	}
	return &Board{
		Cells:  make([]Cell, width*height),
		Width:  width,
		Height: height,
	}
}

func (b *Board) Contains(p Vec2) bool {
	return p.X >= 0 && p.X < b.Width && p.Y >= 0 && p.Y < b.Height
}

func (b *Board) At(p Vec2) Cell {
	return b.Cells[b.index(p)]
}

func (b *Board) Set(p Vec2, c Cell) {
	b.Cells[b.index(p)] = c
}

func (b *Board) index(p Vec2) int {
	if !b.Contains(p) {
		panic("game: position " + p.String() + " is off the board")
	}
	return p.X + p.Y*b.Width
}

func (b *Board) Reset() {
	clear(b.Cells)
}

// Row returns the cells of row y. The slice aliases the board.
func (b *Board) Row(y int) []Cell {
	i := y * b.Width
	return b.Cells[i : i+b.Width]
}

func (b *Board) RowFull(y int) bool {
	for _, c := range b.Row(y) {
		if !c.IsFull() {
			return false
		}
	}
	return true
}

// ClearRow empties row y and drops every row above it by one. Row 0 ends up
// empty.
func (b *Board) ClearRow(y int) {
	end := (y + 1) * b.Width
	copy(b.Cells[b.Width:end], b.Cells[:y*b.Width])
	clear(b.Cells[:b.Width])
}

// Occupied reports whether p is off the board or holds a landed block.
func (b *Board) Occupied(p Vec2) bool {
	return !b.Contains(p) || b.At(p).IsFull()
}

func (b *Board) paint(p Piece, c Cell) {
	for _, v := range p.Cells {
		b.Set(v, c)
	}
}
