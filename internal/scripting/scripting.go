package scripting

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mattn/go-shellwords"
)

type Script interface {
	// c can be nil
	Run(c *Context) error
	Path() string
}

func NewScript(ctx context.Context, command string) (script Script, err error) {
	parser := shellwords.NewParser()
	parser.ParseBacktick = true
	parser.ParseEnv = true

	var sw []string
	sw, err = parser.Parse(command)
	if err != nil {
		return nil, fmt.Errorf("scripting: %s: %v", command, err)
	}
	if len(sw) == 0 {
		return nil, fmt.Errorf("scripting: empty command")
	}

	bin := sw[0]
	switch filepath.Ext(bin) {
	case ".sh":
		script = newShellScript(ctx, "bash", sw...)
	case ".zsh":
		script = newShellScript(ctx, "zsh", sw...)
	default:
		var stat fs.FileInfo
		stat, err = os.Stat(bin)
		if err == nil && stat.IsDir() {
			return nil, fmt.Errorf("scripting: %s: running directories is not supported", command)
		}
		script = newExec(ctx, sw...)
	}
	return script, nil
}

// RunAll runs the commands in order and stops at the first failure.
func RunAll(ctx context.Context, commands []string, c *Context) error {
	err := c.Export()
	if err != nil {
		return err
	}
	for _, command := range commands {
		script, err := NewScript(ctx, command)
		if err != nil {
			return err
		}
		err = script.Run(c)
		if err != nil {
			return fmt.Errorf("scripting: %s: %w", command, err)
		}
	}
	return nil
}
