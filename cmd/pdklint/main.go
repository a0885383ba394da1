// Command pdklint runs structural compliance checks against a PDK
// repository. Each rule is an independent subcommand whose exit status is
// the rule verdict: 0 when no errors were recorded, 1 otherwise.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/gdsfoundry/pdklint/checks"
)

var rootCmd = &cobra.Command{
	Use:   "pdklint",
	Short: "Structural compliance checks for PDK repositories",
	Long:  "pdklint inspects a PDK repository's files, configuration and layout and reports whether it conforms to the template conventions, without executing any of the inspected code.",
}

func main() {
	exitCode := 0

	rootCmd.PersistentFlags().String("root", ".", "repository root to inspect")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")

	for _, rule := range checks.Rules {
		run := rule.Run
		rootCmd.AddCommand(&cobra.Command{
			Use:   rule.Name,
			Short: rule.Doc,
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, _ []string) {
				root, _ := cmd.Flags().GetString("root")
				if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
					color.NoColor = true
				}
				result := run(context.Background(), root, cmd.OutOrStdout())
				exitCode = result.Report()
			},
		})
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the available rules",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, rule := range checks.Rules {
				fmt.Fprintf(cmd.OutOrStdout(), "%-20s %s\n", rule.Name, rule.Doc)
			}
		},
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
	os.Exit(exitCode)
}
