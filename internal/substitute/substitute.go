// Package substitute rewrites layout files so that literal attribute values
// reference string resources.
package substitute

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/beevik/etree"
	"github.com/karagenc/hardcode/internal/layout"
	"github.com/karagenc/hardcode/internal/resource"
	"go.uber.org/zap"
)

type (
	Engine struct {
		srcDir  string
		destDir string
		log     *zap.Logger
	}

	Result struct {
		Source string
		Dest   string

		Replacements int
		// Number of blank lines left out of the output.
		Dropped int
		Written int64
	}

	rule struct {
		old string
		new string
	}
)

var ErrNotRegular = errors.New("not a regular file")

var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func New(srcDir, destDir string, log *zap.Logger) *Engine {
	return &Engine{
		srcDir:  srcDir,
		destDir: destDir,
		log:     log,
	}
}

// Apply rewrites file into its destination path and returns what was done.
// The file is always passed explicitly; the engine holds no per-file state.
func (e *Engine) Apply(file string, m resource.Mapping) (*Result, error) {
	stat, err := os.Stat(file)
	if err != nil {
		return nil, err
	}
	if !stat.Mode().IsRegular() {
		return nil, fmt.Errorf("%s: %w", file, ErrNotRegular)
	}
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	out, replaced, dropped := newReplacer(m).rewrite(string(content))
	result := &Result{
		Source:       file,
		Dest:         DestinationPath(e.srcDir, e.destDir, file),
		Replacements: replaced,
		Dropped:      dropped,
		Written:      int64(len(out)),
	}

	err = os.MkdirAll(filepath.Dir(result.Dest), 0755)
	if err != nil {
		return nil, err
	}
	err = os.WriteFile(result.Dest, []byte(out), stat.Mode().Perm())
	if err != nil {
		return nil, err
	}
	e.log.Debug("Rewrote file",
		zap.String("source", result.Source),
		zap.String("dest", result.Dest),
		zap.Int("replacements", result.Replacements),
		zap.Int("dropped", result.Dropped),
	)
	return result, nil
}

// replacer rewrites quoted attribute values that hold a mapped literal.
type replacer struct {
	rules []rule
	refs  resource.Mapping
}

// Values still holding an entity or character reference after the plain
// rules ran.
var referenceValueRe = regexp.MustCompile(`="([^"<]*&[^"<]*)"`)

// newReplacer turns a mapping into quoted replacements. Literals are matched
// as written and in their escaped form; longer ones are replaced first so that
// a literal never clobbers a longer literal containing it.
func newReplacer(m resource.Mapping) *replacer {
	rs := make([]rule, 0, len(m)*2)
	for literal, name := range m {
		if literal == "" {
			continue
		}
		rs = append(rs, rule{old: `="` + literal + `"`, new: reference(name)})
		if escaped := attrEscaper.Replace(literal); escaped != literal {
			rs = append(rs, rule{old: `="` + escaped + `"`, new: reference(name)})
		}
	}
	sort.Slice(rs, func(i, j int) bool {
		if len(rs[i].old) != len(rs[j].old) {
			return len(rs[i].old) > len(rs[j].old)
		}
		return rs[i].old < rs[j].old
	})
	return &replacer{rules: rs, refs: m}
}

func reference(name string) string {
	return `="` + layout.ReferenceMarker + name + `"`
}

// rewrite applies the replacements to every line of content and drops lines
// that are blank afterwards. Line endings are kept as they are.
func (r *replacer) rewrite(content string) (out string, replaced, dropped int) {
	var b strings.Builder
	b.Grow(len(content))
	for _, line := range strings.SplitAfter(content, "\n") {
		if line == "" {
			continue
		}
		for _, rl := range r.rules {
			if n := strings.Count(line, rl.old); n > 0 {
				replaced += n
				line = strings.ReplaceAll(line, rl.old, rl.new)
			}
		}
		if len(r.refs) > 0 && strings.Contains(line, "&") {
			line = referenceValueRe.ReplaceAllStringFunc(line, func(match string) string {
				value, ok := unescapeAttr(match[2 : len(match)-1])
				if !ok {
					return match
				}
				name, ok := r.refs[value]
				if !ok {
					return match
				}
				replaced++
				return reference(name)
			})
		}
		if strings.TrimSpace(line) == "" {
			dropped++
			continue
		}
		b.WriteString(line)
	}
	return b.String(), replaced, dropped
}

// unescapeAttr decodes an attribute value the same way the markup reader
// does, so forms such as &apos; or &#10; resolve to the extracted literal.
func unescapeAttr(raw string) (string, bool) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(`<v v="` + raw + `"/>`); err != nil {
		return "", false
	}
	return doc.Root().SelectAttrValue("v", ""), true
}

// DestinationPath maps file from srcDir into destDir, keeping its path
// relative to srcDir. Files outside srcDir land directly in destDir.
func DestinationPath(srcDir, destDir, file string) string {
	rel, err := filepath.Rel(srcDir, file)
	if err != nil || rel == "." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || rel == ".." {
		return filepath.Join(destDir, filepath.Base(file))
	}
	return filepath.Join(destDir, rel)
}
