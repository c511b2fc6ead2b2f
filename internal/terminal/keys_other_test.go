//go:build !unix

package terminal

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyReaderUnsupported(t *testing.T) {
	n, err := NewKeyReader(os.Stdin).Read(make([]byte, 1))
	assert.Zero(t, n)
	assert.ErrorIs(t, err, ErrKeysUnsupported)
}
