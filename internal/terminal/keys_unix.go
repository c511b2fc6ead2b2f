//go:build unix

package terminal

import (
	"os"

	"golang.org/x/sys/unix"
)

// KeyReader reads pending keystrokes without blocking. When nothing is
// pending Read returns 0, nil.
type KeyReader struct {
	fd int
}

func NewKeyReader(f *os.File) *KeyReader {
	return &KeyReader{fd: int(f.Fd())}
}

func (k *KeyReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	for {
		fds := []unix.PollFd{{Fd: int32(k.fd), Events: unix.POLLIN}}
		n, err := unix.Poll(fds, 0)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return 0, err
		}
		if n == 0 || fds[0].Revents&(unix.POLLIN|unix.POLLHUP) == 0 {
			return 0, nil
		}

		rn, err := unix.Read(k.fd, p)
		if err == unix.EINTR || err == unix.EAGAIN {
			continue
		}
		if err != nil {
			return 0, err
		}
		return rn, nil
	}
}
