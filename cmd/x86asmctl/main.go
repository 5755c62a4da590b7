// Command x86asmctl is a thin operator front-end over the x86 package:
// inspect the instruction database, assemble a short text listing into raw
// bytes, or run a fixed demo sequence — grounded in the teacher's
// cmd/cli entrypoint, generalized from one fixed architecture subcommand
// to the three operations SPEC_FULL.md calls out for this tool.
package main

import "github.com/keurnel/x86asm/cmd/x86asmctl/cmd"

func main() {
	cmd.Execute()
}
