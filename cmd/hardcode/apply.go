package main

import (
	"github.com/spf13/cobra"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Rewrite layouts using the names in the resource file",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		strict, _ := cmd.Flags().GetBool("strict")

		report, err := newPipeline().Apply(newContext())
		if report != nil {
			printReport(report)
		}
		if err != nil {
			errPrintln(err)
			exit(exitErrAny)
		}
		finish(report, strict)
	},
}
