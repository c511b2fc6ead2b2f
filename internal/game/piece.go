package game

// Piece is a tetromino placed on the board. Cells[i] is always
// Pos + Tetromino.Offsets()[i]. Kind is what the piece paints onto the grid.
type Piece struct {
	Pos       Vec2
	Cells     [4]Vec2
	Tetromino Tetromino
	Kind      Cell
}

func NewPiece(pos Vec2, kind Cell) Piece {
	shape, ok := kind.ShapeOf()
	if !ok {
		panic("game: piece needs a full or ghost kind")
	}
	p := Piece{Pos: pos, Tetromino: NewTetromino(shape), Kind: kind}
	p.place()
	return p
}

func (p *Piece) place() {
	offsets := p.Tetromino.Offsets()
	for i, o := range offsets {
		p.Cells[i] = p.Pos.Add(o)
	}
}

func (p Piece) Shape() Shape {
	return p.Kind.Shape
}

// Translated returns a copy of p moved by v.
func (p Piece) Translated(v Vec2) Piece {
	p.Pos = p.Pos.Add(v)
	for i := range p.Cells {
		p.Cells[i] = p.Cells[i].Add(v)
	}
	return p
}

// Rotated returns a copy of p one rotation state to the left or right,
// keeping the anchor.
func (p Piece) Rotated(rotateLeft bool) Piece {
	if rotateLeft {
		p.Tetromino.RotateLeft()
	} else {
		p.Tetromino.RotateRight()
	}
	p.place()
	return p
}

func (p Piece) AsGhost() Piece {
	p.Kind = p.Kind.AsGhost()
	return p
}

func (p Piece) AsFull() Piece {
	p.Kind = p.Kind.AsFull()
	return p
}

func (p Piece) occupies(v Vec2) bool {
	for _, c := range p.Cells {
		if c == v {
			return true
		}
	}
	return false
}
