// Command modelcheck evaluates rule tables against design model object trees.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "modelcheck",
	Short: "Rule-based quality checks for design model trees",
	Long: `modelcheck loads a design model (JSON or YAML object tree) and a rule
table (TSV or YAML), evaluates every rule against the flattened model,
and reports per-rule pass/fail results.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
