//go:build unix

package execmem_test

import (
	"testing"

	"github.com/keurnel/x86asm/execmem"
)

// TestUnixAllocatorRoundTrip allocates a tiny "ret"-only code blob (0xC3)
// as RX pages and releases it, checking only that the allocator's
// bookkeeping is self-consistent: no test here actually calls into the
// mapped page, since jumping through an unsafe function pointer is outside
// this package's scope (see execmem.go's Region doc comment).
func TestUnixAllocatorRoundTrip(t *testing.T) {
	var alloc execmem.UnixAllocator

	code := []byte{0xC3}
	region, err := alloc.AllocRX(code)
	if err != nil {
		t.Fatalf("AllocRX: %v", err)
	}
	if region.Size < len(code) {
		t.Errorf("region.Size = %d, want at least %d", region.Size, len(code))
	}
	if region.Size%alloc.PageSize() != 0 {
		t.Errorf("region.Size = %d, want a multiple of PageSize()=%d", region.Size, alloc.PageSize())
	}

	if err := alloc.Release(region); err != nil {
		t.Fatalf("Release: %v", err)
	}
}
