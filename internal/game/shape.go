package game

import "fmt"

type Shape int

const (
	ShapeI Shape = iota
	ShapeO
	ShapeT
	ShapeL
	ShapeJ
	ShapeS
	ShapeZ
)

// Shapes lists every shape in declaration order.
var Shapes = [...]Shape{ShapeI, ShapeO, ShapeT, ShapeL, ShapeJ, ShapeS, ShapeZ}

var shapeNames = [...]string{"I", "O", "T", "L", "J", "S", "Z"}

func (s Shape) String() string {
	if s < ShapeI || s > ShapeZ {
		return fmt.Sprintf("Shape(%d)", int(s))
	}
	return shapeNames[s]
}

// Geometry returns the rotation table for s.
func (s Shape) Geometry() *Geometry {
	if s < ShapeI || s > ShapeZ {
		panic(fmt.Sprintf("game: no geometry for %v", s))
	}
	return &geometries[s]
}

// Rotation is one pre-baked layout of a shape. Offsets[i] is relative to the
// piece anchor and Edges[i] holds the directions in which cell i is on the
// outside of the piece.
type Rotation struct {
	Offsets [4]Vec2
	Edges   [4]Flags
}

// Geometry holds every rotation state of a shape. The square has one.
type Geometry struct {
	Rotations []Rotation
}

const (
	up    = FlagUp
	down  = FlagDown
	left  = FlagLeft
	right = FlagRight
	horiz = FlagHorizontal
	vert  = FlagVertical
)

var geometries = [...]Geometry{
	ShapeI: {Rotations: []Rotation{
		// * x * *
		{
			Offsets: [4]Vec2{{-1, 0}, {0, 0}, {1, 0}, {2, 0}},
			Edges:   [4]Flags{left | vert, vert, vert, vert | right},
		},
		// *
		// x
		// *
		// *
		{
			Offsets: [4]Vec2{{0, -1}, {0, 0}, {0, 1}, {0, 2}},
			Edges:   [4]Flags{up | horiz, horiz, horiz, horiz | down},
		},
		//
		// * x * *
		{
			Offsets: [4]Vec2{{-1, 1}, {0, 1}, {1, 1}, {2, 1}},
			Edges:   [4]Flags{left | vert, vert, vert, vert | right},
		},
		// _ *
		// _ x
		// _ *
		// _ *
		{
			Offsets: [4]Vec2{{1, -1}, {1, 0}, {1, 1}, {1, 2}},
			Edges:   [4]Flags{up | horiz, horiz, horiz, horiz | down},
		},
	}},
	ShapeO: {Rotations: []Rotation{
		// x *
		// * *
		{
			Offsets: [4]Vec2{{0, 0}, {1, 0}, {0, 1}, {1, 1}},
			Edges:   [4]Flags{left | up, up | right, left | down, down | right},
		},
	}},
	ShapeT: {Rotations: []Rotation{
		// * x *
		//   *
		{
			Offsets: [4]Vec2{{-1, 0}, {0, 0}, {1, 0}, {0, 1}},
			Edges:   [4]Flags{left | vert, up, vert | right, horiz | down},
		},
		// *
		// x *
		// *
		{
			Offsets: [4]Vec2{{0, -1}, {0, 0}, {1, 0}, {0, 1}},
			Edges:   [4]Flags{horiz | up, left, vert | right, horiz | down},
		},
		//   *
		// * x *
		{
			Offsets: [4]Vec2{{0, -1}, {-1, 0}, {0, 0}, {1, 0}},
			Edges:   [4]Flags{up | horiz, left | vert, down, vert | right},
		},
		//   *
		// * x
		//   *
		{
			Offsets: [4]Vec2{{0, -1}, {-1, 0}, {0, 0}, {0, 1}},
			Edges:   [4]Flags{up | horiz, left | vert, right, horiz | down},
		},
	}},
	ShapeL: {Rotations: []Rotation{
		// * x *
		// *
		{
			Offsets: [4]Vec2{{-1, 0}, {0, 0}, {1, 0}, {-1, 1}},
			Edges:   [4]Flags{up | left, vert, vert | right, horiz | down},
		},
		// *
		// x
		// * *
		{
			Offsets: [4]Vec2{{0, -1}, {0, 0}, {0, 1}, {1, 1}},
			Edges:   [4]Flags{up | horiz, horiz, left | down, vert | right},
		},
		//     *
		// * x *
		{
			Offsets: [4]Vec2{{1, -1}, {-1, 0}, {0, 0}, {1, 0}},
			Edges:   [4]Flags{up | horiz, left | vert, vert, down | right},
		},
		// * *
		//   x
		//   *
		{
			Offsets: [4]Vec2{{-1, -1}, {0, -1}, {0, 0}, {0, 1}},
			Edges:   [4]Flags{left | vert, up | right, horiz, horiz | down},
		},
	}},
	ShapeJ: {Rotations: []Rotation{
		// * x *
		//     *
		{
			Offsets: [4]Vec2{{-1, 0}, {0, 0}, {1, 0}, {1, 1}},
			Edges:   [4]Flags{left | vert, vert, up | right, horiz | down},
		},
		// * *
		// x
		// *
		{
			Offsets: [4]Vec2{{0, -1}, {1, -1}, {0, 0}, {0, 1}},
			Edges:   [4]Flags{up | left, vert | right, horiz, horiz | down},
		},
		// *
		// * x *
		{
			Offsets: [4]Vec2{{-1, -1}, {-1, 0}, {0, 0}, {1, 0}},
			Edges:   [4]Flags{horiz | up, left | down, vert, vert | right},
		},
		//   *
		//   x
		// * *
		{
			Offsets: [4]Vec2{{0, -1}, {0, 0}, {-1, 1}, {0, 1}},
			Edges:   [4]Flags{up | horiz, horiz, left | vert, down | right},
		},
	}},
	ShapeS: {Rotations: []Rotation{
		//   x *
		// * *
		{
			Offsets: [4]Vec2{{0, 0}, {1, 0}, {-1, 1}, {0, 1}},
			Edges:   [4]Flags{up | left, vert | right, left | vert, down | right},
		},
		// *
		// x *
		//   *
		{
			Offsets: [4]Vec2{{0, -1}, {0, 0}, {1, 0}, {1, 1}},
			Edges:   [4]Flags{up | horiz, left | down, up | right, horiz | down},
		},
		//   * *
		// * x
		{
			Offsets: [4]Vec2{{0, -1}, {1, -1}, {-1, 0}, {0, 0}},
			Edges:   [4]Flags{up | left, vert | right, left | vert, down | right},
		},
		// *
		// * x
		//   *
		{
			Offsets: [4]Vec2{{-1, -1}, {-1, 0}, {0, 0}, {0, 1}},
			Edges:   [4]Flags{up | horiz, left | down, up | right, horiz | down},
		},
	}},
	ShapeZ: {Rotations: []Rotation{
		// * x
		//   * *
		{
			Offsets: [4]Vec2{{-1, 0}, {0, 0}, {0, 1}, {1, 1}},
			Edges:   [4]Flags{left | vert, up | right, left | down, vert | right},
		},
		//   *
		// x *
		// *
		{
			Offsets: [4]Vec2{{1, -1}, {0, 0}, {1, 0}, {0, 1}},
			Edges:   [4]Flags{up | horiz, up | left, down | right, horiz | down},
		},
		// * *
		//   x *
		{
			Offsets: [4]Vec2{{-1, -1}, {0, -1}, {0, 0}, {1, 0}},
			Edges:   [4]Flags{left | vert, up | right, left | down, vert | right},
		},
		//   *
		// * x
		// *
		{
			Offsets: [4]Vec2{{0, -1}, {-1, 0}, {0, 0}, {-1, 1}},
			Edges:   [4]Flags{up | horiz, up | left, down | right, horiz | down},
		},
	}},
}
