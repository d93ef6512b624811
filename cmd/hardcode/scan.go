package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/karagenc/hardcode/internal/utils"
	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "List hard-coded literals and the names they would get",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		occurrences, report, err := newPipeline().Scan(newContext())
		if err != nil {
			errPrintln(err)
			exit(exitErrAny)
		}

		fmt.Println()
		w := table.NewWriter()
		w.AppendHeader(table.Row{
			"LITERAL", "NAME", "FILES",
		})
		for _, o := range occurrences {
			w.AppendRow(table.Row{
				o.Literal, o.Name, strings.Join(o.Files, "\n"),
			})
		}
		fmt.Println(w.Render())
		fmt.Println()

		for _, f := range report.Files {
			if f.Err != nil {
				utils.Warn.Print("Skipped: ")
				fmt.Println(f.Err)
			}
		}
		for _, err := range report.NamingErrs {
			utils.Warn.Print("Dropped literal: ")
			fmt.Println(err)
		}
		fmt.Printf("%d literals in %d files\n", len(occurrences), len(report.Files))
	},
}
