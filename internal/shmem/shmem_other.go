//go:build !windows

package shmem

// Mapping is a read-only view of a named file mapping. Only supported
// on Windows.
type Mapping struct{}

// Open is not available on this platform.
func Open(name string, size uintptr) (*Mapping, error) {
	return nil, ErrNotSupported
}

// ReadUintptr is not available on this platform.
func (m *Mapping) ReadUintptr() (uintptr, error) { return 0, ErrNotSupported }

// Close is a no-op on this platform.
func (m *Mapping) Close() error { return nil }
