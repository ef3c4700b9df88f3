package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// LockFileName is created in the output root for the duration of a run.
const LockFileName = ".exifsort.lock"

// ErrOutputLocked is returned when another run holds the output root.
var ErrOutputLocked = errors.New("output directory is in use by another exifsort run")

// outputLock is an exclusive advisory lock on an output root.
type outputLock struct {
	fl *flock.Flock
}

// acquireOutputLock takes the lock without blocking.
func acquireOutputLock(outRoot string) (*outputLock, error) {
	fl := flock.New(filepath.Join(outRoot, LockFileName))
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("locking %s: %w", fl.Path(), err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrOutputLocked, outRoot)
	}
	return &outputLock{fl: fl}, nil
}

// release unlocks and removes the lock file.
func (l *outputLock) release() error {
	if err := l.fl.Unlock(); err != nil {
		return fmt.Errorf("unlocking %s: %w", l.fl.Path(), err)
	}
	if err := os.Remove(l.fl.Path()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing %s: %w", l.fl.Path(), err)
	}
	return nil
}
