package cmd

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/keurnel/x86asm/config"
	"github.com/keurnel/x86asm/x86"
)

var encodeFile, encodeProfile string

var encodeCmd = &cobra.Command{
	Use:     "encode [instruction ...]",
	GroupID: "arch",
	Short:   "Assemble a short instruction listing into a hex dump",
	Long: `Assembles one instruction per argument (e.g. "mov rax, 5" "add rax, rbx" "ret"),
or every non-blank line of --file if given, and prints the resulting machine
code as a hex dump.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runEncode(cmd, args); err != nil {
			cmd.PrintErrln("Error:", err)
		}
	},
}

func init() {
	encodeCmd.Flags().StringVarP(&encodeFile, "file", "f", "", "read instruction lines from this file instead of positional arguments")
	encodeCmd.Flags().StringVar(&encodeProfile, "profile", "", "TOML target-profile file restricting arch and CPU features")
}

func runEncode(cmd *cobra.Command, args []string) error {
	lines, err := collectEncodeLines(args)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		return fmt.Errorf("no instructions given")
	}

	arch := x86.Arch64
	feature := x86.FeatureAll
	if encodeProfile != "" {
		profile, err := config.Load(encodeProfile)
		if err != nil {
			return err
		}
		if arch, err = profile.Arch(); err != nil {
			return err
		}
		feature = profile.Feature()
	}

	asm := x86.NewAssemblerWithFeature(arch, feature)
	labels := map[string]x86.LabelID{}

	for lineNo, line := range lines {
		mnemonic, operandStrs := x86.ParseLine(line)
		if mnemonic == "" {
			continue
		}
		if x86.IsLabel(mnemonic) {
			name := strings.TrimSuffix(mnemonic, ":")
			id := labelFor(asm, labels, name)
			if err := asm.Bind(id); err != nil {
				return fmt.Errorf("line %d: bind label %s: %w", lineNo+1, name, err)
			}
			continue
		}

		id := x86.FindID(mnemonic)
		if id == x86.NoInst {
			return fmt.Errorf("line %d: unknown mnemonic %q", lineNo+1, mnemonic)
		}

		ops, err := resolveOperands(asm, labels, operandStrs)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo+1, err)
		}

		if err := asm.Emit(id, ops...); err != nil {
			return fmt.Errorf("line %d: %w", lineNo+1, err)
		}
	}

	code, err := asm.Finalize(0)
	if err != nil {
		return fmt.Errorf("finalize: %w", err)
	}

	cmd.Println(hex.Dump(code))
	return nil
}

func collectEncodeLines(args []string) ([]string, error) {
	if encodeFile != "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("unable to get current working directory: %w", err)
		}
		full := filepath.Join(cwd, encodeFile)
		data, err := os.ReadFile(full)
		if err != nil {
			return nil, fmt.Errorf("failed to read instruction file: %w", err)
		}
		return strings.Split(string(data), "\n"), nil
	}
	return args, nil
}

// resolveOperands resolves each operand string to an Operand, treating a
// bare identifier that isn't a register as a label reference (for jmp/call
// targets) rather than a parse failure.
func resolveOperands(asm *x86.Assembler, labels map[string]x86.LabelID, operandStrs []string) ([]x86.Operand, error) {
	ops := make([]x86.Operand, 0, len(operandStrs))
	for _, s := range operandStrs {
		if op, ok := x86.ParseOperand(s); ok {
			ops = append(ops, op)
			continue
		}
		if x86.IsLabel(s) {
			// Definitions arrive upper-cased from ParseLine; match that.
			ops = append(ops, x86.L(labelFor(asm, labels, strings.ToUpper(s))))
			continue
		}
		return nil, fmt.Errorf("unrecognized operand %q", s)
	}
	return ops, nil
}

func labelFor(asm *x86.Assembler, labels map[string]x86.LabelID, name string) x86.LabelID {
	if id, ok := labels[name]; ok {
		return id
	}
	id := asm.Label()
	labels[name] = id
	return id
}
