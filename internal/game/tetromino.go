package game

// Tetromino is a rotation handle: a shape's geometry plus the index of the
// current rotation state.
type Tetromino struct {
	geom  *Geometry
	state int
}

func NewTetromino(s Shape) Tetromino {
	return Tetromino{geom: s.Geometry()}
}

// States returns how many rotation states the shape has.
func (t Tetromino) States() int {
	return len(t.geom.Rotations)
}

func (t Tetromino) State() int {
	return t.state
}

func (t *Tetromino) RotateLeft() {
	t.rotate(-1)
}

func (t *Tetromino) RotateRight() {
	t.rotate(1)
}

func (t *Tetromino) rotate(step int) {
	n := t.States()
	t.state = ((t.state+step)%n + n) % n
}

func (t Tetromino) current() *Rotation {
	return &t.geom.Rotations[t.state]
}

// Offsets returns the cell offsets of the current rotation.
func (t Tetromino) Offsets() [4]Vec2 {
	return t.current().Offsets
}

// Edges returns the edge flags of the current rotation, index-aligned with
// Offsets.
func (t Tetromino) Edges() [4]Flags {
	return t.current().Edges
}

// CellsColliding returns the indexes of the cells that have every direction in
// f on their outer edge. Those are the only cells that can be blocked by a
// move in that direction.
func (t Tetromino) CellsColliding(f Flags) []int {
	edges := t.Edges()
	idx := make([]int, 0, len(edges))
	for i, e := range edges {
		if e.Has(f) {
			idx = append(idx, i)
		}
	}
	return idx
}
