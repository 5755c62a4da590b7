package cmd

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keurnel/x86asm/x86"
)

var demoCmd = &cobra.Command{
	Use:     "demo",
	GroupID: "arch",
	Short:   "Assemble a fixed example instruction sequence and print its bytes",
	Long:    `Assembles a small fixed program using the typed Assembler wrappers and prints the resulting machine code, the same way the original tool's demo mode exercised its assembler before any file was given.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runDemo(cmd); err != nil {
			cmd.PrintErrln("Error:", err)
		}
	},
}

func runDemo(cmd *cobra.Command) error {
	cmd.Println("Demo Mode - assembling example code:")
	cmd.Println()
	cmd.Println("  mov rax, rbx")
	cmd.Println("  add rax, 0x10")
	cmd.Println("  sub rbx, rax")
	cmd.Println("  xor rcx, rcx")
	cmd.Println("  push rax")
	cmd.Println("  pop rdx")
	cmd.Println("  cmp rax, rbx")
	cmd.Println("  loop:")
	cmd.Println("  je loop")
	cmd.Println("  nop")
	cmd.Println("  ret")
	cmd.Println()

	asm := x86.NewAssembler(x86.Arch64)

	steps := []func() error{
		func() error { return asm.MovRR(x86.RAX, x86.RBX) },
		func() error { return asm.Emit(x86.ADD, x86.R(x86.RAX), x86.I(0x10)) },
		func() error { return asm.Sub(x86.RBX, x86.RAX) },
		func() error { return asm.Xor(x86.RCX, x86.RCX) },
		func() error { return asm.Push(x86.RAX) },
		func() error { return asm.Pop(x86.RDX) },
		func() error { return asm.Cmp(x86.RAX, x86.RBX) },
	}
	for i, step := range steps {
		if err := step(); err != nil {
			return fmt.Errorf("instruction %d: %w", i+1, err)
		}
	}

	loop := asm.Label()
	if err := asm.Bind(loop); err != nil {
		return fmt.Errorf("bind loop label: %w", err)
	}
	if err := asm.Je(loop); err != nil {
		return fmt.Errorf("je loop: %w", err)
	}
	if err := asm.Nop(); err != nil {
		return fmt.Errorf("nop: %w", err)
	}
	if err := asm.Ret(); err != nil {
		return fmt.Errorf("ret: %w", err)
	}

	code, err := asm.Finalize(0)
	if err != nil {
		return fmt.Errorf("finalize: %w", err)
	}

	cmd.Println(hex.Dump(code))
	return nil
}
