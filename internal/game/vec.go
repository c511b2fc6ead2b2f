package game

import "fmt"

// Vec2 is an integer board position or offset.
type Vec2 struct {
	X, Y int
}

func V(x, y int) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vec2) Mul(k int) Vec2 {
	return Vec2{X: v.X * k, Y: v.Y * k}
}

// Div truncates toward zero.
func (v Vec2) Div(k int) Vec2 {
	return Vec2{X: v.X / k, Y: v.Y / k}
}

func (v Vec2) String() string {
	return fmt.Sprintf("(%d, %d)", v.X, v.Y)
}
