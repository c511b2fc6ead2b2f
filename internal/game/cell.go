package game

type CellKind uint8

const (
	CellEmpty CellKind = iota
	CellFull
	CellGhost
)

// Cell is one board tile. The zero value is an empty tile.
type Cell struct {
	Kind  CellKind
	Shape Shape
}

func FullCell(s Shape) Cell {
	return Cell{Kind: CellFull, Shape: s}
}

func GhostCell(s Shape) Cell {
	return Cell{Kind: CellGhost, Shape: s}
}

func (c Cell) IsEmpty() bool { return c.Kind == CellEmpty }
func (c Cell) IsFull() bool  { return c.Kind == CellFull }
func (c Cell) IsGhost() bool { return c.Kind == CellGhost }

// ShapeOf returns the shape of a full or ghost cell.
func (c Cell) ShapeOf() (Shape, bool) {
	if c.Kind == CellEmpty {
		return 0, false
	}
	return c.Shape, true
}

func (c Cell) AsGhost() Cell {
	if c.Kind == CellEmpty {
		panic("game: empty cell has no shape")
	}
	return GhostCell(c.Shape)
}

func (c Cell) AsFull() Cell {
	if c.Kind == CellEmpty {
		panic("game: empty cell has no shape")
	}
	return FullCell(c.Shape)
}
