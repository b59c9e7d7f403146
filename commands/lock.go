//go:build linux || darwin

package commands

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

type lockfile struct {
	file *os.File
}

// acquire takes an exclusive advisory lock on the file, failing immediately if
// another process holds it.
func acquire(path string) (*lockfile, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		f.Close()

		if errors.Is(err, unix.EWOULDBLOCK) {
			return nil, fmt.Errorf("%v is locked by another sync", path)
		}

		return nil, err
	}

	return &lockfile{file: f}, nil
}

func (l *lockfile) Release() error {
	defer l.file.Close()

	return unix.Flock(int(l.file.Fd()), unix.LOCK_UN)
}
