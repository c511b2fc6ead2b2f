package game

import (
	"io"
	"slices"
	"strings"
	"testing"
	"time"
)

// queueGenerator hands out shapes in order, wrapping around.
type queueGenerator struct {
	shapes []Shape
	i      int
}

func (q *queueGenerator) Next() Shape {
	s := q.shapes[q.i%len(q.shapes)]
	q.i++
	return s
}

type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(d time.Duration) {
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
}

// newTestEngine returns a live engine with no faller spawned yet.
func newTestEngine(t *testing.T, width, height int, shapes ...Shape) *Engine {
	t.Helper()
	e := New(width, height, io.Discard, strings.NewReader(""),
		WithGenerator(&queueGenerator{shapes: shapes}),
		WithClock(newFakeClock()),
	)
	e.Reset()
	e.gameOver = false
	e.now = e.clock.Now()
	e.sched.start(e.now)
	return e
}

func fillRow(b *Board, y int, except ...int) {
	for x := 0; x < b.Width; x++ {
		if !slices.Contains(except, x) {
			b.Set(V(x, y), FullCell(ShapeZ))
		}
	}
}

func countFull(b *Board) int {
	n := 0
	for _, c := range b.Cells {
		if c.IsFull() {
			n++
		}
	}
	return n
}
