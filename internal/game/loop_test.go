package game

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionForKey(t *testing.T) {
	tests := map[byte]Action{
		'w': ActionSpinLeft, 'W': ActionSpinLeft,
		'q': ActionSpinRight, 'Q': ActionSpinRight,
		'a': ActionMoveLeft, 'A': ActionMoveLeft,
		'd': ActionMoveRight, 'D': ActionMoveRight,
		's': ActionSoftDrop, 'S': ActionSoftDrop,
		' ': ActionHardDrop,
		'x': ActionQuit, 'X': ActionQuit,
		0:   ActionNone,
		'z': ActionNone,
		'\r': ActionNone,
	}
	for key, want := range tests {
		assert.Equal(t, want, ActionForKey(key), "key %q", key)
	}
}

func TestTimerKeepsCadence(t *testing.T) {
	base := time.Unix(100, 0)
	tm := timer{next: base, period: 5 * time.Millisecond}

	late := base.Add(12 * time.Millisecond)
	require.True(t, tm.due(late))
	tm.advance()
	assert.Equal(t, base.Add(5*time.Millisecond), tm.next, "advance ignores how late the tick was")
	assert.True(t, tm.due(late))

	tm.restart(late)
	assert.Equal(t, late.Add(5*time.Millisecond), tm.next)
	assert.False(t, tm.due(late))
}

func TestSchedulerSoonest(t *testing.T) {
	base := time.Unix(100, 0)
	s := newScheduler()
	s.start(base)
	assert.Equal(t, base, s.soonest())

	s.input.advance()
	s.frame.advance()
	assert.Equal(t, base.Add(InputInterval), s.soonest())

	s.input.next = base.Add(time.Hour)
	assert.Equal(t, base.Add(FrameInterval), s.soonest())
}

type errWriter struct{ err error }

func (w errWriter) Write([]byte) (int, error) { return 0, w.err }

type errReader struct{ err error }

func (r errReader) Read([]byte) (int, error) { return 0, r.err }

func newLoopEngine(out io.Writer, in io.Reader, shapes ...Shape) (*Engine, *fakeClock) {
	clock := newFakeClock()
	e := New(10, 20, out, in,
		WithGenerator(&queueGenerator{shapes: shapes}),
		WithClock(clock),
	)
	e.Reset()
	return e, clock
}

func TestRunQuitIsNotALoss(t *testing.T) {
	var out bytes.Buffer
	e, clock := newLoopEngine(&out, strings.NewReader("\x00x"), ShapeT)

	ok, err := e.Run()

	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, e.GameOver())
	assert.Contains(t, out.String(), ScoreLine(10, 0))
	assert.Equal(t, 1, strings.Count(out.String(), ScoreLine(10, 0)), "one frame before quitting")
	require.NotEmpty(t, clock.sleeps)
	assert.Equal(t, InputInterval, clock.sleeps[0])
}

func TestRunEndsInLossWhenStackTopsOut(t *testing.T) {
	var out bytes.Buffer
	e, _ := newLoopEngine(&out, strings.NewReader(strings.Repeat(" ", 50)), ShapeO)

	ok, err := e.Run()

	require.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, e.GameOver())
	// Ten squares stack in columns 5 and 6, dropping 18, 16, ... 0 rows.
	assert.Equal(t, uint32(180), e.Score())
	assert.Contains(t, out.String(), ScoreLine(10, 180))
}

func TestRunGravityAloneEndsTheGame(t *testing.T) {
	e, clock := newLoopEngine(io.Discard, strings.NewReader(""), ShapeO)
	start := clock.Now()

	ok, err := e.Run()

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, e.Score(), "gravity does not score")
	assert.GreaterOrEqual(t, clock.Now().Sub(start), 18*GravityInterval)
}

func TestRunSoftDropScores(t *testing.T) {
	e, _ := newLoopEngine(io.Discard, strings.NewReader("sssx"), ShapeT)

	ok, err := e.Run()

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint32(3), e.Score())
}

func TestRunReportsWriteFailure(t *testing.T) {
	broken := errors.New("pipe closed")
	e, _ := newLoopEngine(errWriter{err: broken}, strings.NewReader(""), ShapeT)

	ok, err := e.Run()

	assert.False(t, ok)
	require.ErrorIs(t, err, broken)
	assert.Contains(t, err.Error(), "write frame")
}

func TestRunReportsReadFailure(t *testing.T) {
	broken := errors.New("tty gone")
	e, _ := newLoopEngine(io.Discard, errReader{err: broken}, ShapeT)

	ok, err := e.Run()

	assert.False(t, ok)
	require.ErrorIs(t, err, broken)
}

func TestRunNotifiesObserver(t *testing.T) {
	var snaps []Snapshot
	clock := newFakeClock()
	e := New(10, 20, io.Discard, strings.NewReader("\x00\x00x"),
		WithGenerator(&queueGenerator{shapes: []Shape{ShapeJ}}),
		WithClock(clock),
		WithObserver(func(s Snapshot) { snaps = append(snaps, s) }),
	)
	e.Reset()

	_, err := e.Run()
	require.NoError(t, err)

	require.NotEmpty(t, snaps)
	first, last := snaps[0], snaps[len(snaps)-1]
	assert.False(t, first.Over)
	assert.True(t, last.Over)
	assert.Len(t, last.Board, 200)
	assert.Equal(t, 10, last.Width)
	assert.Equal(t, 20, last.Height)
}

func TestRunUsesCustomRenderer(t *testing.T) {
	var out bytes.Buffer
	frames := 0
	r := RendererFunc(func(v View) string {
		frames++
		return "frame\n"
	})
	clock := newFakeClock()
	e := New(10, 20, &out, strings.NewReader("\x00x"),
		WithGenerator(&queueGenerator{shapes: []Shape{ShapeS}}),
		WithClock(clock),
		WithRenderer(r),
	)
	e.Reset()

	_, err := e.Run()
	require.NoError(t, err)
	assert.Equal(t, 1, frames)
	assert.Equal(t, "frame\n", out.String())
}
