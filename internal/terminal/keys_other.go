//go:build !unix

package terminal

import (
	"errors"
	"os"
)

// ErrKeysUnsupported is returned by KeyReader on platforms without poll(2).
var ErrKeysUnsupported = errors.New("non-blocking key input is not supported on this platform")

// KeyReader is unavailable here; every Read fails so the game ends with a
// clear error instead of hanging on a blocking read.
type KeyReader struct{}

func NewKeyReader(f *os.File) *KeyReader {
	return &KeyReader{}
}

func (k *KeyReader) Read(p []byte) (int, error) {
	return 0, ErrKeysUnsupported
}
