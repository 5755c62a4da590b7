// Package config loads the TOML target-profile describing which
// architecture mode, CPU feature set and calling convention an
// assembly/compilation session should target.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/keurnel/x86asm/compiler"
	"github.com/keurnel/x86asm/x86"
)

// TargetProfile is the on-disk shape of a target-profile TOML file.
type TargetProfile struct {
	Arch        string   `toml:"arch"`
	Features    []string `toml:"features"`
	CallingConv string   `toml:"calling_convention"`
}

// Load reads and parses a target-profile TOML file from path.
func Load(path string) (TargetProfile, error) {
	var p TargetProfile
	if _, err := toml.DecodeFile(path, &p); err != nil {
		return TargetProfile{}, fmt.Errorf("config: %w", err)
	}
	return p, nil
}

// Arch resolves the profile's arch string to an x86.Arch bitmask,
// defaulting to Arch64 when unset.
func (p TargetProfile) Arch() (x86.Arch, error) {
	switch p.Arch {
	case "", "x86_64", "amd64":
		return x86.Arch64, nil
	case "i386", "x86":
		return x86.Arch32, nil
	default:
		return 0, fmt.Errorf("config: unknown arch %q", p.Arch)
	}
}

// Feature ORs together the profile's feature list into an x86.Feature
// bitmask, for callers that want to reject instructions the target
// profile doesn't claim to support before ever reaching the validator.
func (p TargetProfile) Feature() x86.Feature {
	var f x86.Feature
	for _, name := range p.Features {
		switch name {
		case "sse":
			f |= x86.FeatureSSE
		case "sse2":
			f |= x86.FeatureSSE2
		case "avx":
			f |= x86.FeatureAVX
		case "avx2":
			f |= x86.FeatureAVX2
		case "avx512f":
			f |= x86.FeatureAVX512F
		case "avx512bw":
			f |= x86.FeatureAVX512BW
		case "bmi1":
			f |= x86.FeatureBMI1
		case "bmi2":
			f |= x86.FeatureBMI2
		case "xop":
			f |= x86.FeatureXOP
		}
	}
	return f
}

// CallConv resolves the profile's named calling convention. Only "sysv" is
// implemented; any other value (including "win64") is an error rather than
// a silent fallback, since compiler.SysV's register assignment would
// misencode a Win64 call site.
func (p TargetProfile) CallConv() (compiler.CallConv, error) {
	switch p.CallingConv {
	case "", "sysv":
		return compiler.SysV, nil
	default:
		return compiler.CallConv{}, fmt.Errorf("config: unsupported calling convention %q", p.CallingConv)
	}
}
