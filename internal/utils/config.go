package utils

const (
	AppName = "hardcode"

	// ConfigName is the config file name without extension.
	ConfigName = AppName

	// Prefix of environment variables read and exported by hardcode.
	EnvPrefix = "HARDCODE_"
)
