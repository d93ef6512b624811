package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/karagenc/hardcode/internal/layout"
	"github.com/karagenc/hardcode/internal/utils"
	"github.com/kirsle/configdir"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

type Config struct {
	Source   Source            `mapstructure:"source"`
	Resource Resource          `mapstructure:"resource"`
	Output   Output            `mapstructure:"output"`
	Naming   Naming            `mapstructure:"naming"`
	Hooks    Hooks             `mapstructure:"hooks"`
	Env      map[string]string `mapstructure:"env"`
}

const (
	DefaultSourceDir    = "layout"
	DefaultResourceFile = "strings.xml"
	DefaultOutputDir    = "layout_replaced"
	DefaultMaxLength    = 25
	DefaultRandomLength = 15
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("source.dir", DefaultSourceDir)
	v.SetDefault("source.recursive", false)
	v.SetDefault("source.exclude", []string{})
	v.SetDefault("source.attributes", layout.DefaultAttrs)
	v.SetDefault("resource.file", DefaultResourceFile)
	v.SetDefault("output.dir", DefaultOutputDir)
	v.SetDefault("naming.max_length", DefaultMaxLength)
	v.SetDefault("naming.random_length", DefaultRandomLength)
	v.SetDefault("naming.disambiguate", true)
}

func DirsLocal() []string {
	home, err := homedir.Dir()
	if err != nil {
		return nil
	}
	return []string{
		filepath.Join(home, utils.AppName),
		filepath.Join(home, "."+utils.AppName),
	}
}

// Read loads the configuration. An explicitly given file (argument or
// HARDCODE_CONFIG) must exist; otherwise the usual locations are searched and
// defaults are used when nothing is found.
func Read(configFile string) (config *Config, v *viper.Viper, err error) {
	v = viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else if configFileEnv := os.Getenv(utils.EnvPrefix + "CONFIG"); configFileEnv != "" {
		v.SetConfigFile(configFileEnv)
	} else {
		v.SetConfigName(utils.ConfigName)
		v.SetConfigType("yml")

		v.AddConfigPath(".")
		for _, dir := range DirsLocal() {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath(configdir.LocalConfig(utils.AppName))
	}

	err = v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, nil, err
		}
	}

	config = new(Config)
	err = v.Unmarshal(config)
	if err != nil {
		return nil, nil, err
	}
	return config, v, nil
}

func (c *Config) PlaceEnvironmentVariables() error {
	replace := func(r *string) {
		*r = os.ExpandEnv(*r)
		if expanded, err := homedir.Expand(*r); err == nil {
			*r = expanded
		}
	}

	for key, value := range c.Env {
		key = strings.ToUpper(key)
		replace(&value)
		c.Env[key] = value
		err := os.Setenv(key, value)
		if err != nil {
			return err
		}
	}

	replace(&c.Source.Dir)
	replace(&c.Resource.File)
	replace(&c.Output.Dir)
	// Hooks are expanded when they run, after HARDCODE_* variables are set.
	return nil
}

func (c *Config) Check() error {
	if strings.TrimSpace(c.Source.Dir) == "" {
		return fmt.Errorf("config: `source.dir` cannot be empty")
	}
	if strings.TrimSpace(c.Output.Dir) == "" {
		return fmt.Errorf("config: `output.dir` cannot be empty")
	}
	if strings.TrimSpace(c.Resource.File) == "" {
		return fmt.Errorf("config: `resource.file` cannot be empty")
	}
	if filepath.Clean(c.Source.Dir) == filepath.Clean(c.Output.Dir) {
		return fmt.Errorf("config: `output.dir` must differ from `source.dir`, layouts would be overwritten in place")
	}
	if c.Source.Recursive {
		err := checkPathCollision(c.Source.Dir, c.Output.Dir)
		if err != nil {
			return fmt.Errorf("config: %v", err)
		}
	}
	if len(c.Source.Attributes) == 0 {
		return fmt.Errorf("config: `source.attributes` cannot be empty")
	}
	if _, err := c.Attrs(); err != nil {
		return fmt.Errorf("config: %v", err)
	}
	if c.Naming.MaxLength <= 0 {
		return fmt.Errorf("config: `naming.max_length` must be positive, got %d", c.Naming.MaxLength)
	}
	if c.Naming.RandomLength <= 0 {
		return fmt.Errorf("config: `naming.random_length` must be positive, got %d", c.Naming.RandomLength)
	}
	for _, hook := range append(c.Hooks.Pre, c.Hooks.Post...) {
		if strings.TrimSpace(hook) == "" {
			return fmt.Errorf("config: empty hook. remove it or set it to a command")
		}
	}
	return nil
}

func (c *Config) Attrs() ([]layout.Attr, error) {
	return layout.ParseAttrs(c.Source.Attributes)
}

// checkPathCollision rejects an output directory that a recursive walk of the
// source directory would descend into, or the other way around.
func checkPathCollision(source, output string) error {
	split := func(path string) []string {
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = filepath.Clean(path)
		}
		return strings.Split(filepath.ToSlash(abs), "/")
	}
	sourceSplitted := split(source)
	outputSplitted := split(output)

	shorter, longer := sourceSplitted, outputSplitted
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	for i := range shorter {
		if shorter[i] != longer[i] {
			return nil
		}
	}
	return fmt.Errorf("path collision: `output.dir` %s and `source.dir` %s are nested", output, source)
}
