// Package compiler implements the C6 virtual-register allocator and C7
// compiler facade: liveness analysis, linear-scan physical-register
// assignment with spilling, and calling-convention-driven frame synthesis
// over the x86 package's encoder.
package compiler

// VReg is a virtual general-purpose register. The compiler assigns each
// one either a physical GPQ register or a stack spill slot.
type VReg int

// NoVReg marks an absent operand slot (e.g. the unused Def of a Cmp, Call
// or Ret node).
const NoVReg VReg = -1
