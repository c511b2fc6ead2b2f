package game

import (
	"errors"
	"io"
	"iter"
	"log"
	"slices"
	"time"
)

const (
	rowClearScore = 100
	tetrisRows    = 4
	tSpinScore    = 400
)

// ErrGameOver is returned when a new piece cannot be placed at the spawn
// position.
var ErrGameOver = errors.New("game over: spawn position is blocked")

// Snapshot is a copy of the public game state.
type Snapshot struct {
	Width  int
	Height int
	Score  uint32
	Over   bool
	Board  []bool
}

// Engine owns the board, the falling piece and its ghost, the score and the
// loop timers. It is not safe for concurrent use.
type Engine struct {
	board    *Board
	faller   Piece
	ghost    Piece
	score    uint32
	gameOver bool
	dirty    bool

	sched scheduler
	now   time.Time
	key   [1]byte

	out      io.Writer
	in       io.Reader
	gen      PieceGenerator
	render   Renderer
	clock    Clock
	observer func(Snapshot)
}

// Option configures an Engine.
type Option func(*Engine)

// WithGenerator sets the shape source. The default is a time-seeded die.
func WithGenerator(g PieceGenerator) Option {
	return func(e *Engine) { e.gen = g }
}

// WithRenderer sets the frame renderer. The default is PlainRenderer.
func WithRenderer(r Renderer) Option {
	return func(e *Engine) { e.render = r }
}

// WithClock sets the time source used by Run.
func WithClock(c Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithObserver registers fn to be called after every drawn frame and once
// when Run returns.
func WithObserver(fn func(Snapshot)) Option {
	return func(e *Engine) { e.observer = fn }
}

// New creates an engine for a width x height board. Frames are written to out
// and keys are read one byte at a time from in, which must not block when no
// key is pending.
func New(width, height int, out io.Writer, in io.Reader, opts ...Option) *Engine {
	board := NewBoard(width, height)
	faller := NewPiece(V(width/2, 0), FullCell(ShapeI))
	e := &Engine{
		board:    board,
		faller:   faller,
		ghost:    faller.AsGhost(),
		gameOver: true,
		dirty:    true,
		sched:    newScheduler(),
		out:      out,
		in:       in,
		render:   PlainRenderer{},
		clock:    wallClock{},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.gen == nil {
		e.gen = NewDiceGenerator(0)
	}
	return e
}

// Reset empties the board and the score. The game counts as over until Run
// spawns the first piece.
func (e *Engine) Reset() {
	e.gameOver = true
	e.score = 0
	e.board.Reset()
	e.dirty = true
}

func (e *Engine) Width() int     { return e.board.Width }
func (e *Engine) Height() int    { return e.board.Height }
func (e *Engine) Score() uint32  { return e.score }
func (e *Engine) GameOver() bool { return e.gameOver }

// Serialize yields one value per board cell in row-major order, true when the
// cell holds a block. Each iteration reads the live board.
func (e *Engine) Serialize() iter.Seq[bool] {
	return func(yield func(bool) bool) {
		for i := 0; i < len(e.board.Cells); i++ {
			if !yield(e.board.Cells[i].IsFull()) {
				return
			}
		}
	}
}

func (e *Engine) Snapshot() Snapshot {
	cells := make([]bool, 0, len(e.board.Cells))
	for full := range e.Serialize() {
		cells = append(cells, full)
	}
	return Snapshot{
		Width:  e.board.Width,
		Height: e.board.Height,
		Score:  e.score,
		Over:   e.gameOver,
		Board:  cells,
	}
}

func (e *Engine) view() View {
	v := View{
		Width:  e.board.Width,
		Height: e.board.Height,
		Cells:  e.board.Cells,
		Score:  e.score,
	}
	if p, ok := e.gen.(Previewer); ok {
		v.Next, v.HasNext = p.Peek(), true
	}
	return v
}

// --- piece bookkeeping ---

func (e *Engine) insert(p Piece) {
	e.board.paint(p, p.Kind)
}

func (e *Engine) remove(p Piece) {
	e.board.paint(p, Cell{})
}

// setFaller swaps the painted faller for p and reprojects the ghost.
func (e *Engine) setFaller(p Piece) {
	e.remove(e.faller)
	e.faller = p
	e.insert(e.faller)
	e.updateGhost(true)
}

// removeGhost erases ghost tiles left by the previous projection. Tiles the
// faller has since covered are full and stay untouched.
func (e *Engine) removeGhost() {
	for _, v := range e.ghost.Cells {
		if e.board.Contains(v) && e.board.At(v).IsGhost() {
			e.board.Set(v, Cell{})
		}
	}
}

// updateGhost projects the faller straight down and paints the landing spot
// wherever it is not covered by the faller itself.
func (e *Engine) updateGhost(tryRemove bool) {
	if tryRemove {
		e.removeGhost()
	}
	e.ghost = e.faller.AsGhost()
	e.throw(&e.ghost, Down)
	if e.ghost.Pos == e.faller.Pos {
		return
	}
	for _, v := range e.ghost.Cells {
		if !e.board.At(v).IsFull() {
			e.board.Set(v, e.ghost.Kind)
		}
	}
}

// tryMove moves p one cell in d. Only the cells on the leading edge are
// checked, since the rest move into space the piece already occupies. On
// failure p is left untouched.
func (e *Engine) tryMove(p *Piece, d Direction) bool {
	moved := p.Translated(d.Vec())
	for _, i := range moved.Tetromino.CellsColliding(d.Flags()) {
		if e.board.Occupied(moved.Cells[i]) {
			return false
		}
	}
	*p = moved
	return true
}

// throw moves p in d until it is blocked and returns the number of steps.
func (e *Engine) throw(p *Piece, d Direction) int {
	moves := 0
	for e.tryMove(p, d) {
		moves++
	}
	return moves
}

func (e *Engine) moveFaller(d Direction) bool {
	moved := e.faller
	if !e.tryMove(&moved, d) {
		return false
	}
	e.setFaller(moved)
	return true
}

// spin rotates the faller. A rotation that pokes off the board is shifted
// back by one cell per stray cell; if it then overlaps a landed block it is
// rejected. The square never rotates.
func (e *Engine) spin(rotateLeft bool) bool {
	if e.faller.Shape() == ShapeO {
		return false
	}
	rotated := e.faller.Rotated(rotateLeft)

	var shift Vec2
	for _, v := range rotated.Cells {
		if v.X < 0 {
			shift.X++
		} else if v.X >= e.board.Width {
			shift.X--
		}
		if v.Y < 0 {
			shift.Y++
		} else if v.Y >= e.board.Height {
			shift.Y--
		}
	}
	if shift != (Vec2{}) {
		rotated = rotated.Translated(shift)
	}

	for _, v := range rotated.Cells {
		if !e.board.Contains(v) {
			return false
		}
		if e.board.At(v).IsFull() && !e.faller.occupies(v) {
			return false
		}
	}
	e.setFaller(rotated)
	return true
}

// --- locking and spawning ---

// ClearScore is the score for clearing rows in a single lock.
func ClearScore(rows int) uint32 {
	score := uint32(rows) * rowClearScore
	if rows >= tetrisRows {
		score *= 2
	}
	return score
}

// clearRows clears every full row among those touched by cells, top row
// first so a clear never shifts a row still to be checked.
func (e *Engine) clearRows(cells [4]Vec2) int {
	var ys [4]int
	n := 0
	for _, v := range cells {
		if !slices.Contains(ys[:n], v.Y) {
			ys[n] = v.Y
			n++
		}
	}
	rows := ys[:n]
	slices.Sort(rows)

	cleared := 0
	for _, y := range rows {
		if e.board.RowFull(y) {
			e.board.ClearRow(y)
			cleared++
		}
	}
	e.score += ClearScore(cleared)
	return cleared
}

var diagonals = [4]Vec2{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}}

// tSpin awards the bonus when a T lands with at least three of the four
// corners around its anchor filled.
func (e *Engine) tSpin() bool {
	if e.faller.Shape() != ShapeT {
		return false
	}
	corners := 0
	for _, d := range diagonals {
		v := e.faller.Pos.Add(d)
		if e.board.Contains(v) && e.board.At(v).IsFull() {
			corners++
		}
	}
	if corners < 3 {
		return false
	}
	e.score += tSpinScore
	return true
}

// lock settles the faller where it stands. Its tiles are already full.
func (e *Engine) lock() {
	e.tSpin()
	e.clearRows(e.faller.Cells)
}

// spawn places a new faller of shape s at the top center.
func (e *Engine) spawn(s Shape) error {
	p := NewPiece(V(e.board.Width/2, 0), FullCell(s))
	for _, v := range p.Cells {
		if e.board.Occupied(v) {
			log.Printf("spawn of %v at %v blocked", s, p.Pos)
			return ErrGameOver
		}
	}
	e.removeGhost()
	e.faller = p
	e.insert(e.faller)
	e.updateGhost(false)
	e.sched.gravity.restart(e.now)
	e.dirty = true
	return nil
}

// spawnNext locks the current faller and brings in the next one.
func (e *Engine) spawnNext() error {
	e.lock()
	return e.spawn(e.gen.Next())
}

func (e *Engine) hardDrop() error {
	e.score += 2 * uint32(e.ghost.Pos.Y-e.faller.Pos.Y)
	e.setFaller(e.ghost.AsFull())
	return e.spawnNext()
}

// applyGravity drops the faller by one row, locking it and spawning the next
// piece when it cannot fall.
func (e *Engine) applyGravity() error {
	e.dirty = true
	if e.moveFaller(Down) {
		return nil
	}
	return e.spawnNext()
}

// handle applies a player action. Quit is handled by the loop.
func (e *Engine) handle(a Action) error {
	changed := false
	switch a {
	case ActionSpinLeft:
		changed = e.spin(true)
	case ActionSpinRight:
		changed = e.spin(false)
	case ActionMoveLeft:
		changed = e.moveFaller(Left)
	case ActionMoveRight:
		changed = e.moveFaller(Right)
	case ActionSoftDrop:
		if e.moveFaller(Down) {
			e.score++
			e.sched.gravity.restart(e.now)
			changed = true
		}
	case ActionHardDrop:
		if err := e.hardDrop(); err != nil {
			return err
		}
		changed = true
	}
	if changed {
		e.dirty = true
	}
	return nil
}
