// Package lock implements the run marker that keeps two donk runs from
// executing in the same working directory at once.
package lock

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/donk/internal/core/domain"
	"go.trai.ch/donk/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Locker = (*FileLocker)(nil)

// FileLocker implements ports.Locker with a create-exclusive marker file.
type FileLocker struct{}

// NewFileLocker creates a new FileLocker.
func NewFileLocker() *FileLocker {
	return &FileLocker{}
}

// Acquire creates the marker in dir. An existing marker is never taken
// over, even if its holder is gone: the user has to remove it.
func (l *FileLocker) Acquire(dir, holder string) (ports.Lock, error) {
	path := filepath.Join(dir, domain.LockFileName)

	//nolint:gosec // path is the fixed marker name inside the working directory
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, domain.PrivateFilePerm)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, zerr.With(zerr.Wrap(domain.ErrLockBusy, path+" already exists, donk may be running already"), "path", path)
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to create run marker"), "path", path)
	}

	_, werr := fmt.Fprintf(f, "pid=%d\ncommand=%s\n", os.Getpid(), holder)
	cerr := f.Close()
	if err := errors.Join(werr, cerr); err != nil {
		_ = os.Remove(path)
		return nil, zerr.With(zerr.Wrap(err, "failed to write run marker"), "path", path)
	}

	return &FileLock{path: path}, nil
}

// FileLock is a held marker file.
type FileLock struct {
	path string
	once sync.Once
	err  error
}

// Path returns the marker location.
func (l *FileLock) Path() string {
	return l.path
}

// Release removes the marker. Only the first call does any work.
func (l *FileLock) Release() error {
	l.once.Do(func() {
		if err := os.Remove(l.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			l.err = zerr.With(zerr.Wrap(err, "failed to remove run marker"), "path", l.path)
		}
	})
	return l.err
}
