package main

import (
	"fmt"

	"github.com/karagenc/hardcode/internal/pipeline"
	"github.com/karagenc/hardcode/internal/utils"
	"github.com/spf13/cobra"
)

func init() {
	runCmd.Flags().Bool("strict", false, "Exit with an error if any file could not be processed")
	applyCmd.Flags().Bool("strict", false, "Exit with an error if any file could not be processed")
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Extract literals, write the resource file and rewrite layouts",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		strict, _ := cmd.Flags().GetBool("strict")

		report, err := newPipeline().Run(newContext())
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

func printReport(report *pipeline.Report) {
	if len(report.Files) > 0 {
		fmt.Println(report.Table())
	}

	for _, err := range report.NamingErrs {
		utils.Warn.Print("Dropped literal: ")
		fmt.Println(err)
	}
	if report.ResourceErr != nil {
		utils.Error.Printf("Could not write %s: ", report.ResourceFile)
		fmt.Println(report.ResourceErr)
	} else if report.Literals != nil {
		fmt.Printf("%d strings written to %s\n", len(report.Mapping), report.ResourceFile)
	}
	if report.ReloadErr != nil {
		utils.Warn.Printf("Could not read back %s, generated names were used: ", report.ResourceFile)
		fmt.Println(report.ReloadErr)
	}
	for _, err := range report.HookErrs {
		utils.Error.Print("Post hook failed: ")
		fmt.Println(err)
	}
}

func finish(report *pipeline.Report, strict bool) {
	skipped := report.Count(pipeline.StatusSkipped)
	failed := report.Count(pipeline.StatusFailed)
	if !report.Failed() {
		utils.Success.Printf("Done.")
		fmt.Printf(" %d rewritten, %d skipped\n", report.Rewritten(), skipped)
		return
	}
	utils.Warn.Printf("Completed with errors: %d failed, %d skipped\n", failed, skipped)
	if strict {
		exit(exitErrAny)
	}
}
