//go:build windows

package shmem

import (
	"fmt"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	kernel32DLL = syscall.NewLazyDLL("kernel32.dll")

	procOpenFileMappingW = kernel32DLL.NewProc("OpenFileMappingW")
	procMapViewOfFile    = kernel32DLL.NewProc("MapViewOfFile")
	procUnmapViewOfFile  = kernel32DLL.NewProc("UnmapViewOfFile")
)

const fileMapRead = 0x0004

// Mapping is a read-only view of a named file mapping.
type Mapping struct {
	file windows.Handle
	view uintptr
	size uintptr
}

// Open maps size bytes of the named file mapping for reading. It fails
// when no process has published a mapping under that name.
func Open(name string, size uintptr) (*Mapping, error) {
	name16, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return nil, fmt.Errorf("shmem: invalid mapping name %q: %w", name, err)
	}
	h, _, callErr := procOpenFileMappingW.Call(
		fileMapRead,
		0, // do not inherit
		uintptr(unsafe.Pointer(name16)),
	)
	if h == 0 {
		return nil, fmt.Errorf("shmem: open %q: %w", name, callErr)
	}
	view, _, callErr := procMapViewOfFile.Call(h, fileMapRead, 0, 0, size)
	if view == 0 {
		windows.CloseHandle(windows.Handle(h))
		return nil, fmt.Errorf("shmem: map view of %q: %w", name, callErr)
	}
	return &Mapping{file: windows.Handle(h), view: view, size: size}, nil
}

// ReadUintptr reads the first pointer-sized word of the mapping.
func (m *Mapping) ReadUintptr() (uintptr, error) {
	if m.view == 0 {
		return 0, ErrClosed
	}
	if m.size < unsafe.Sizeof(uintptr(0)) {
		return 0, fmt.Errorf("shmem: mapping too small (%d bytes)", m.size)
	}
	return *(*uintptr)(unsafe.Pointer(m.view)), nil
}

// Close unmaps the view and releases the mapping handle.
func (m *Mapping) Close() error {
	if m.view == 0 {
		return nil
	}
	procUnmapViewOfFile.Call(m.view)
	m.view = 0
	err := windows.CloseHandle(m.file)
	m.file = 0
	return err
}
