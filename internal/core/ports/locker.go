package ports

// Lock is a held run marker.
type Lock interface {
	// Path returns the marker location.
	Path() string
	// Release removes the marker. It is safe to call more than once.
	Release() error
}

// Locker acquires the exclusive run marker of a working directory.
//
//go:generate go run go.uber.org/mock/mockgen -source=locker.go -destination=mocks/mock_locker.go -package=mocks
type Locker interface {
	// Acquire creates the marker in dir. It fails with domain.ErrLockBusy
	// if the marker already exists.
	Acquire(dir, holder string) (Lock, error)
}
