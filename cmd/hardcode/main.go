package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"sync"
	"syscall"

	_config "github.com/karagenc/hardcode/internal/config"
	"github.com/karagenc/hardcode/internal/naming"
	"github.com/karagenc/hardcode/internal/pipeline"
	"github.com/karagenc/hardcode/internal/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	config *_config.Config
	v      *viper.Viper

	debugLog *zap.Logger

	rootCmd = &cobra.Command{
		Use:   "hardcode",
		Short: "Move hard-coded layout strings into strings.xml",
	}
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		exit(exitErrAny)
	}
	exit(exitSuccess)
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(initCmd)

	f := rootCmd.PersistentFlags()
	f.StringP("config", "c", "", "Config file")
	f.Bool("enable-log", false, "Enable debug logging")
	f.StringP("source", "s", "", "Directory of layout files (overrides source.dir)")
	f.StringP("output", "o", "", "Directory to write rewritten layouts to (overrides output.dir)")
	f.StringP("resource", "r", "", "String resource file (overrides resource.file)")
	f.Int64("seed", 0, "Seed for names of literals without usable characters")

	cobra.OnInitialize(sync.OnceFunc(func() {
		sigChan := make(chan os.Signal, 2)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			exit(exitTerm)
		}()

		err := initEverything()
		if err != nil {
			errPrintln(err)
			exit(exitErrAny)
		}
	}))
}

func initEverything() error {
	err := initLogging()
	if err != nil {
		return err
	}
	err = initConfig()
	if err != nil {
		return err
	}
	return nil
}

func initConfig() (err error) {
	f := rootCmd.PersistentFlags()
	configFileArg, _ := f.GetString("config")
	config, v, err = _config.Read(configFileArg)
	if err != nil {
		return err
	}
	if used := v.ConfigFileUsed(); used != "" {
		debugLog.Debug("Using config", zap.String("file", used))
	}

	override := func(flag string, dst *string) {
		if f.Changed(flag) {
			*dst, _ = f.GetString(flag)
		}
	}
	override("source", &config.Source.Dir)
	override("output", &config.Output.Dir)
	override("resource", &config.Resource.File)

	err = config.PlaceEnvironmentVariables()
	if err != nil {
		return err
	}
	return config.Check()
}

func newPipeline() *pipeline.Pipeline {
	var opts []naming.Option
	if f := rootCmd.PersistentFlags(); f.Changed("seed") {
		seed, _ := f.GetInt64("seed")
		opts = append(opts, naming.WithRand(rand.New(rand.NewSource(seed))))
	}
	p, err := pipeline.New(config, debugLog, opts...)
	if err != nil {
		errPrintln(err)
		exit(exitErrAny)
	}
	return p
}

func newContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	addExitHandler(cancel)
	return ctx
}

type exitCode int

const (
	exitSuccess exitCode = iota
	exitErrAny
	exitTerm
)

func errPrintln(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", utils.Red.Sprint("Error:"), err)
	}
}

var (
	exitHandlers   []func()
	exitHandlersMu sync.Mutex
)

func addExitHandler(f func()) {
	exitHandlersMu.Lock()
	exitHandlers = append(exitHandlers, sync.OnceFunc(f))
	exitHandlersMu.Unlock()
}

func onExit() {
	exitHandlersMu.Lock()
	defer exitHandlersMu.Unlock()
	for _, f := range exitHandlers {
		f()
	}
}

func exit(code exitCode) {
	onExit()
	os.Exit(int(code))
}
