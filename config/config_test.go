package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/keurnel/x86asm/compiler"
	"github.com/keurnel/x86asm/config"
	"github.com/keurnel/x86asm/x86"
)

func writeProfile(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "profile.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write profile: %v", err)
	}
	return path
}

func TestLoadResolvesArchAndFeatures(t *testing.T) {
	path := writeProfile(t, `
arch = "x86_64"
features = ["sse2", "avx2"]
calling_convention = "sysv"
`)
	p, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	arch, err := p.Arch()
	if err != nil {
		t.Fatalf("Arch: %v", err)
	}
	if arch != x86.Arch64 {
		t.Errorf("Arch() = %v, want Arch64", arch)
	}

	feat := p.Feature()
	if feat&x86.FeatureSSE2 == 0 || feat&x86.FeatureAVX2 == 0 {
		t.Errorf("Feature() = %#x, want SSE2|AVX2 set", feat)
	}

	conv, err := p.CallConv()
	if err != nil {
		t.Fatalf("CallConv: %v", err)
	}
	if conv.ReturnReg != compiler.SysV.ReturnReg {
		t.Errorf("CallConv() = %+v, want SysV", conv)
	}
}

func TestCallConvRejectsWin64(t *testing.T) {
	path := writeProfile(t, `calling_convention = "win64"`)
	p, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := p.CallConv(); err == nil {
		t.Errorf("CallConv() with win64 unexpectedly succeeded")
	}
}

func TestArchRejectsUnknown(t *testing.T) {
	path := writeProfile(t, `arch = "arm64"`)
	p, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := p.Arch(); err == nil {
		t.Errorf("Arch() with arm64 unexpectedly succeeded")
	}
}
