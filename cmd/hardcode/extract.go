package main

import (
	"fmt"

	"github.com/karagenc/hardcode/internal/utils"
	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract literals and write the resource file without touching layouts",
	Long: "Extract literals and write the resource file without touching layouts.\n" +
		"Edit the names in the resource file if needed, then run `hardcode apply`.",
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		report, err := newPipeline().Extract(newContext())
		if report != nil {
			printReport(report)
		}
		if err != nil {
			errPrintln(err)
			exit(exitErrAny)
		}
		if report.ResourceErr != nil {
			exit(exitErrAny)
		}
		fmt.Print("Review it, then run ")
		utils.Bold.Println("hardcode apply")
	},
}
