package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "x86asmctl",
	Short: "x86/x86-64 runtime assembler toolkit",
	Long:  `x86asmctl inspects the instruction database, assembles short instruction listings, and runs a fixed encode-and-dump demo.`,
}

// Execute runs the root command, exiting 1 on error the way the teacher's
// cmd/cli.Execute does.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddGroup(&cobra.Group{
		ID:    "arch",
		Title: "Architecture operations",
	})

	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(demoCmd)
}
