package game

import (
	"errors"
	"fmt"
	"io"
	"time"
)

const (
	InputInterval   = 5 * time.Millisecond
	GravityInterval = time.Second
	FrameInterval   = time.Second / 24
)

type Action int

const (
	ActionNone Action = iota
	ActionSpinLeft
	ActionSpinRight
	ActionMoveLeft
	ActionMoveRight
	ActionSoftDrop
	ActionHardDrop
	ActionQuit
)

// ActionForKey maps a keystroke to a player action. Unknown keys, including
// the zero byte, map to ActionNone.
func ActionForKey(b byte) Action {
	switch b {
	case 'w', 'W':
		return ActionSpinLeft
	case 'q', 'Q':
		return ActionSpinRight
	case 'a', 'A':
		return ActionMoveLeft
	case 'd', 'D':
		return ActionMoveRight
	case 's', 'S':
		return ActionSoftDrop
	case ' ':
		return ActionHardDrop
	case 'x', 'X':
		return ActionQuit
	}
	return ActionNone
}

// Clock is the loop's view of time.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type wallClock struct{}

func (wallClock) Now() time.Time        { return time.Now() }
func (wallClock) Sleep(d time.Duration) { time.Sleep(d) }

// timer fires at a fixed period. Advancing adds one period to the previous
// deadline so late ticks do not drift the cadence.
type timer struct {
	next   time.Time
	period time.Duration
}

func (t *timer) due(now time.Time) bool {
	return !now.Before(t.next)
}

func (t *timer) advance() {
	t.next = t.next.Add(t.period)
}

func (t *timer) restart(now time.Time) {
	t.next = now.Add(t.period)
}

type scheduler struct {
	input   timer
	gravity timer
	frame   timer
}

func newScheduler() scheduler {
	return scheduler{
		input:   timer{period: InputInterval},
		gravity: timer{period: GravityInterval},
		frame:   timer{period: FrameInterval},
	}
}

func (s *scheduler) start(now time.Time) {
	s.input.next = now
	s.frame.next = now
	s.gravity.restart(now)
}

func (s *scheduler) soonest() time.Time {
	next := s.input.next
	if s.gravity.next.Before(next) {
		next = s.gravity.next
	}
	if s.frame.next.Before(next) {
		next = s.frame.next
	}
	return next
}

// Run plays one game. It returns true when the player quit and false when the
// game was lost. An error means the input or output failed.
func (e *Engine) Run() (bool, error) {
	e.gameOver = false
	e.now = e.clock.Now()
	e.sched.start(e.now)
	defer e.notify()

	if err := e.spawn(e.gen.Next()); err != nil {
		return e.lose(err)
	}

	for !e.gameOver {
		e.now = e.clock.Now()

		if e.sched.input.due(e.now) {
			e.sched.input.advance()
			a, err := e.readAction()
			if err != nil {
				return false, err
			}
			if a == ActionQuit {
				e.gameOver = true
				return true, nil
			}
			if err := e.handle(a); err != nil {
				return e.lose(err)
			}
		}

		if e.sched.gravity.due(e.now) {
			e.sched.gravity.advance()
			if err := e.applyGravity(); err != nil {
				return e.lose(err)
			}
		}

		if e.sched.frame.due(e.now) {
			e.sched.frame.advance()
			if e.dirty {
				if err := e.draw(); err != nil {
					return false, err
				}
			}
		}

		if d := e.sched.soonest().Sub(e.clock.Now()); d > 0 {
			e.clock.Sleep(d)
		}
	}
	return true, nil
}

// lose ends the game on ErrGameOver with a final frame. Any other error is
// passed through.
func (e *Engine) lose(err error) (bool, error) {
	e.gameOver = true
	if !errors.Is(err, ErrGameOver) {
		return false, err
	}
	if err := e.draw(); err != nil {
		return false, err
	}
	return false, nil
}

// readAction pulls at most one key. A reader with nothing pending may return
// zero bytes or io.EOF.
func (e *Engine) readAction() (Action, error) {
	n, err := e.in.Read(e.key[:])
	if err != nil && !errors.Is(err, io.EOF) {
		return ActionNone, fmt.Errorf("read input: %w", err)
	}
	if n == 0 {
		return ActionNone, nil
	}
	return ActionForKey(e.key[0]), nil
}

func (e *Engine) draw() error {
	frame := e.render.Render(e.view())
	if _, err := io.WriteString(e.out, frame); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	if f, ok := e.out.(interface{ Flush() error }); ok {
		if err := f.Flush(); err != nil {
			return fmt.Errorf("flush frame: %w", err)
		}
	}
	e.dirty = false
	e.notify()
	return nil
}

func (e *Engine) notify() {
	if e.observer != nil {
		e.observer(e.Snapshot())
	}
}
