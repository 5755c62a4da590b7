package x86_test

import (
	"testing"

	"github.com/keurnel/x86asm/internal/asmerr"
	"github.com/keurnel/x86asm/x86"
)

// TestFeatureGateRejectsOutOfTargetInstruction covers spec.md §3's
// CPU-feature subset invariant: a target restricted to FeatureSSE2 cannot
// emit VADDPS, whose only matching 3-operand register signature requires
// FeatureAVX.
func TestFeatureGateRejectsOutOfTargetInstruction(t *testing.T) {
	asm := x86.NewAssemblerWithFeature(x86.Arch64, x86.FeatureSSE2)
	err := asm.Emit(x86.VADDPS, x86.R(x86.XMM(0)), x86.R(x86.XMM(1)), x86.R(x86.XMM(2)))
	if err == nil {
		t.Fatalf("expected an error emitting VADDPS under an SSE2-only target")
	}
	if !asmerr.Is(err, asmerr.IncompatibleInstruction) {
		t.Errorf("got %v, want IncompatibleInstruction", err)
	}
}

// TestFeatureGateAllowsInTargetInstruction confirms the same emit succeeds
// once FeatureAVX is included in the target mask.
func TestFeatureGateAllowsInTargetInstruction(t *testing.T) {
	asm := x86.NewAssemblerWithFeature(x86.Arch64, x86.FeatureAVX)
	if err := asm.Emit(x86.VADDPS, x86.R(x86.XMM(0)), x86.R(x86.XMM(1)), x86.R(x86.XMM(2))); err != nil {
		t.Fatalf("emit: %v", err)
	}
}

// TestNewAssemblerDefaultsToUnrestrictedFeatures confirms NewAssembler's
// plain constructor never rejects on feature grounds.
func TestNewAssemblerDefaultsToUnrestrictedFeatures(t *testing.T) {
	asm := x86.NewAssembler(x86.Arch64)
	if err := asm.Emit(x86.VADDPS, x86.R(x86.XMM(0)), x86.R(x86.XMM(1)), x86.R(x86.XMM(2))); err != nil {
		t.Fatalf("emit: %v", err)
	}
}

// TestEmitLatchesFirstError covers spec.md §7: once Emit fails, later Emit
// calls become no-ops returning the same error, and Finalize resurfaces it
// rather than returning whatever bytes were encoded so far.
func TestEmitLatchesFirstError(t *testing.T) {
	asm := x86.NewAssembler(x86.Arch64)

	firstErr := asm.Emit(x86.PUSH, x86.I(1<<40))
	if firstErr == nil {
		t.Fatalf("expected the oversized PUSH immediate to fail")
	}

	if err := asm.MovRR(x86.RAX, x86.RBX); err != firstErr {
		t.Errorf("second Emit returned %v, want the latched first error %v", err, firstErr)
	}

	if _, err := asm.Finalize(0); err != firstErr {
		t.Errorf("Finalize returned %v, want the latched first error %v", err, firstErr)
	}
}
