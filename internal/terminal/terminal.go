// Package terminal adapts a raw-mode TTY to the game engine: a key source
// that never blocks and a frame sink that redraws in place.
package terminal

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"
)

// ErrNotTerminal is returned by Open when the input is not a TTY.
var ErrNotTerminal = errors.New("stdin is not a terminal")

// Session holds a terminal in raw mode until Restore is called.
type Session struct {
	in    *os.File
	inFd  int
	saved *term.State
}

// Open puts in into raw mode.
func Open(in *os.File) (*Session, error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return nil, ErrNotTerminal
	}
	saved, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("enter raw mode: %w", err)
	}
	return &Session{in: in, inFd: fd, saved: saved}, nil
}

// Restore returns the terminal to the mode it had before Open. It is safe to
// call more than once.
func (s *Session) Restore() error {
	if s.saved == nil {
		return nil
	}
	err := term.Restore(s.inFd, s.saved)
	s.saved = nil
	return err
}

// Keys returns a non-blocking key source reading from the session's input.
func (s *Session) Keys() *KeyReader {
	return NewKeyReader(s.in)
}

// FrameSink writes whole frames, each drawn over the previous one. Raw mode
// disables output post-processing, so line feeds are expanded to CRLF here.
type FrameSink struct {
	w       *bufio.Writer
	started bool
}

func NewFrameSink(w io.Writer) *FrameSink {
	return &FrameSink{w: bufio.NewWriter(w)}
}

var (
	lf   = []byte("\n")
	crlf = []byte("\r\n")
)

// Write buffers one frame. The first frame also clears the screen and hides
// the cursor.
func (f *FrameSink) Write(frame []byte) (int, error) {
	if !f.started {
		f.started = true
		if _, err := f.w.WriteString(ansi.EraseEntireScreen + ansi.HideCursor); err != nil {
			return 0, err
		}
	}
	if _, err := f.w.WriteString(ansi.CursorHomePosition); err != nil {
		return 0, err
	}
	if _, err := f.w.Write(bytes.ReplaceAll(frame, lf, crlf)); err != nil {
		return 0, err
	}
	return len(frame), nil
}

// Flush sends the buffered frame to the terminal.
func (f *FrameSink) Flush() error {
	return f.w.Flush()
}

// Close shows the cursor again and flushes.
func (f *FrameSink) Close() error {
	if f.started {
		if _, err := f.w.WriteString(ansi.ShowCursor); err != nil {
			return err
		}
	}
	return f.w.Flush()
}
