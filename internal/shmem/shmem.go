// Package shmem opens named shared-memory mappings published by other
// processes. It is the discovery channel for capture applications that
// advertise a shared texture handle through a well-known mapping name.
package shmem

import "errors"

// ErrNotSupported is returned on platforms without named shared memory.
var ErrNotSupported = errors.New("shmem: not supported on this platform")

// ErrClosed is returned when reading from a closed mapping.
var ErrClosed = errors.New("shmem: mapping closed")
