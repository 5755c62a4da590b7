//go:build windows

package execmem

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// WindowsAllocator implements Allocator with VirtualAlloc/VirtualProtect/
// VirtualFree, mirroring the unix implementation's RW-then-RX two-step so
// no page is ever simultaneously writable and executable.
type WindowsAllocator struct{}

func (WindowsAllocator) AllocRX(code []byte) (Region, error) {
	size := alignUp(len(code), PageSize())
	addr, err := windows.VirtualAlloc(0, uintptr(size), windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil {
		return Region{}, fmt.Errorf("execmem: VirtualAlloc: %w", err)
	}
	dst := unsafe.Slice((*byte)(unsafe.Pointer(addr)), size)
	copy(dst, code)

	var oldProtect uint32
	if err := windows.VirtualProtect(addr, uintptr(size), windows.PAGE_EXECUTE_READ, &oldProtect); err != nil {
		windows.VirtualFree(addr, 0, windows.MEM_RELEASE)
		return Region{}, fmt.Errorf("execmem: VirtualProtect: %w", err)
	}
	return Region{Addr: addr, Size: size}, nil
}

func (WindowsAllocator) Release(r Region) error {
	return windows.VirtualFree(r.Addr, 0, windows.MEM_RELEASE)
}

func (WindowsAllocator) PageSize() int { return PageSize() }

// PageSize reports Windows' fixed 4KiB page granularity (VirtualAlloc's
// allocation granularity is coarser at 64KiB, but page protection itself
// still operates in 4KiB units).
func PageSize() int { return 4096 }

func alignUp(n, align int) int {
	if rem := n % align; rem != 0 {
		return n + (align - rem)
	}
	if n == 0 {
		return align
	}
	return n
}
