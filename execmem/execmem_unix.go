//go:build unix

package execmem

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// UnixAllocator implements Allocator with mmap/mprotect/munmap, following
// the standard two-step JIT pattern: map RW, write the code, then
// mprotect to RX so no page is ever simultaneously writable and
// executable.
type UnixAllocator struct{}

func (UnixAllocator) AllocRX(code []byte) (Region, error) {
	size := alignUp(len(code), unix.Getpagesize())
	data, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return Region{}, fmt.Errorf("execmem: mmap: %w", err)
	}
	copy(data, code)
	if err := unix.Mprotect(data, unix.PROT_READ|unix.PROT_EXEC); err != nil {
		unix.Munmap(data)
		return Region{}, fmt.Errorf("execmem: mprotect: %w", err)
	}
	return Region{Addr: addrOf(data), Size: size}, nil
}

func (UnixAllocator) Release(r Region) error {
	data := bytesAt(r.Addr, r.Size)
	return unix.Munmap(data)
}

func (UnixAllocator) PageSize() int { return unix.Getpagesize() }

func addrOf(data []byte) uintptr { return uintptr(unsafe.Pointer(&data[0])) }

func bytesAt(addr uintptr, size int) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), size)
}

func alignUp(n, align int) int {
	if rem := n % align; rem != 0 {
		return n + (align - rem)
	}
	if n == 0 {
		return align
	}
	return n
}
