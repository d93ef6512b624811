package scripting

import (
	"os"
	"strconv"

	"github.com/karagenc/hardcode/internal/utils"
)

// Context is exposed to hooks through HARDCODE_* environment variables.
type Context struct {
	// Is it a "pre" hook?
	Pre bool

	SourceDir    string
	OutputDir    string
	ResourceFile string
}

func (c *Context) vars() map[string]string {
	return map[string]string{
		utils.EnvPrefix + "HOOK_PRE":      strconv.FormatBool(c.Pre),
		utils.EnvPrefix + "SOURCE_DIR":    c.SourceDir,
		utils.EnvPrefix + "OUTPUT_DIR":    c.OutputDir,
		utils.EnvPrefix + "RESOURCE_FILE": c.ResourceFile,
	}
}

// Export sets the context variables in the process environment so that they
// can be referenced in hook commands.
func (c *Context) Export() error {
	if c == nil {
		return nil
	}
	for key, value := range c.vars() {
		err := os.Setenv(key, value)
		if err != nil {
			return err
		}
	}
	return nil
}

// Environ returns the current environment extended with the context.
func (c *Context) Environ() []string {
	env := os.Environ()
	if c == nil {
		return env
	}
	for key, value := range c.vars() {
		env = append(env, key+"="+value)
	}
	return env
}
