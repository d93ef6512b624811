package main

import (
	"fmt"

	"github.com/karagenc/hardcode/internal/utils"
	"go.uber.org/zap"
)

func initLogging() (err error) {
	enable, _ := rootCmd.PersistentFlags().GetBool("enable-log")
	if enable {
		debugLog, err = utils.NewDebugLogger()
		if err != nil {
			return fmt.Errorf("could not create a new logger: %v", err)
		}
		addExitHandler(func() { debugLog.Sync() })
	} else {
		debugLog = zap.NewNop()
	}
	return
}
