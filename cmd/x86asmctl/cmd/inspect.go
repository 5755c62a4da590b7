package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/keurnel/x86asm/x86"
)

var inspectCmd = &cobra.Command{
	Use:     "inspect <mnemonic>",
	GroupID: "arch",
	Short:   "Look up a mnemonic's instruction-database record",
	Long:    `Resolves a mnemonic via x86.FindID and prints every signature registered for it: encoding class, opcode bytes, and operand slots.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runInspect(cmd, args); err != nil {
			cmd.PrintErrln("Error:", err)
		}
	},
}

func runInspect(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("inspect takes exactly one mnemonic argument")
	}
	mnemonic := strings.ToUpper(args[0])

	id := x86.FindID(mnemonic)
	if id == x86.NoInst {
		return fmt.Errorf("unknown mnemonic %q", mnemonic)
	}
	rec, ok := x86.GetInst(id)
	if !ok {
		return fmt.Errorf("unknown mnemonic %q", mnemonic)
	}

	cmd.Printf("%s (id=%d): %d signature(s)\n", rec.Mnemonic, rec.ID, len(rec.Signatures))
	for i, sig := range rec.Signatures {
		cmd.Printf("  [%d] class=%d opcode=% x modrm_ext=%d slots=%d arch=%#x feature=%#x\n",
			i, sig.Class, sig.Opcode.Bytes, sig.Opcode.ModRMExt, len(sig.Slots), sig.ArchMask, sig.Feature)
	}
	return nil
}
