package main

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/karagenc/hardcode/internal/utils"
	"github.com/spf13/cobra"
)

//go:embed hardcode_example.yml
var exampleConfig []byte

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite an existing config file")
}

var initCmd = &cobra.Command{
	Use:   "init [file]",
	Short: "Write an example config file",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		force, _ := cmd.Flags().GetBool("force")
		file := utils.ConfigName + ".yml"
		if len(args) == 1 {
			file = args[0]
		}

		if _, err := os.Stat(file); err == nil && !force {
			errPrintln(fmt.Errorf("%s already exists. use --force to overwrite it", file))
			exit(exitErrAny)
		}
		err := os.WriteFile(file, exampleConfig, 0644)
		if err != nil {
			errPrintln(err)
			exit(exitErrAny)
		}
		utils.Success.Printf("Config written to %s.", file)
		fmt.Println(" Make sure you've read and edited it before running hardcode")
	},
}
