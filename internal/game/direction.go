package game

type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

var directionNames = [...]string{"up", "down", "left", "right"}

func (d Direction) String() string {
	if d < Up || d > Right {
		return "unknown"
	}
	return directionNames[d]
}

// Vec returns the one-cell step for d. Y grows downward.
func (d Direction) Vec() Vec2 {
	switch d {
	case Up:
		return V(0, -1)
	case Down:
		return V(0, 1)
	case Left:
		return V(-1, 0)
	case Right:
		return V(1, 0)
	}
	panic("game: invalid direction")
}

// Flags returns the edge flag that matches d.
func (d Direction) Flags() Flags {
	switch d {
	case Up:
		return FlagUp
	case Down:
		return FlagDown
	case Left:
		return FlagLeft
	case Right:
		return FlagRight
	}
	panic("game: invalid direction")
}

// Flags is a set of directions in which a tetromino cell sits on the outer
// edge of its piece. Only edge cells can run into something when the piece
// moves that way.
type Flags uint8

const (
	FlagDown Flags = 1 << iota
	FlagLeft
	FlagRight
	FlagUp

	FlagNone       Flags = 0
	FlagHorizontal       = FlagLeft | FlagRight
	FlagVertical         = FlagUp | FlagDown
	FlagAll              = FlagHorizontal | FlagVertical
)

// Has reports whether every bit of want is set in f.
func (f Flags) Has(want Flags) bool {
	return f&want == want
}
