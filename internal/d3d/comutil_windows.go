//go:build windows

package d3d

import (
	"fmt"
	"syscall"
	"unsafe"
)

// comGUID is a COM GUID (128-bit).
type comGUID struct {
	Data1 uint32
	Data2 uint16
	Data3 uint16
	Data4 [8]byte
}

const vtblQueryInterface = 0

// comCall invokes a COM vtable method at the given index.
// obj is a pointer to a COM interface (pointer to pointer to vtable).
func comCall(obj uintptr, vtableIdx int, args ...uintptr) (uintptr, error) {
	allArgs := make([]uintptr, 0, 1+len(args))
	allArgs = append(allArgs, obj)
	allArgs = append(allArgs, args...)
	ret, _, _ := syscall.SyscallN(comVtblFn(obj, vtableIdx), allArgs...)
	if int32(ret) < 0 {
		return ret, fmt.Errorf("COM vtable[%d] HRESULT 0x%08X", vtableIdx, uint32(ret))
	}
	return ret, nil
}

// comVtblFn resolves a COM vtable function pointer by index.
func comVtblFn(obj uintptr, idx int) uintptr {
	vtablePtr := *(*uintptr)(unsafe.Pointer(obj))
	return *(*uintptr)(unsafe.Pointer(vtablePtr + uintptr(idx)*unsafe.Sizeof(uintptr(0))))
}

// comRelease calls IUnknown::Release (vtable index 2).
func comRelease(obj uintptr) {
	if obj != 0 {
		syscall.SyscallN(comVtblFn(obj, 2), obj)
	}
}
