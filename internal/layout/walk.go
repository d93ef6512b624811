package layout

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	pathspec "github.com/shibumi/go-pathspec"
)

// IgnoreFile holds gitignore-style patterns excluding files from a recursive walk.
// It is honored in every directory it appears in.
const IgnoreFile = ".hardcodeignore"

type ignorefile struct {
	patterns []string
	dir      string
}

// List returns the path of every entry directly inside dir. Nothing is filtered
// out, including subdirectories and non-XML files.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// Walk returns every regular file below root, skipping paths matched by the
// exclude patterns (relative to root) or by an IgnoreFile.
//
// A pattern with a trailing slash, such as "drafts/", matches everything
// inside the directory. A pattern without one, such as "drafts", also prunes
// the directory itself.
func Walk(root string, exclude []string) ([]string, error) {
	ignorefiles := make([]*ignorefile, 0, 10)
	if patterns := cleanPatterns(exclude); len(patterns) > 0 {
		ignorefiles = append(ignorefiles, &ignorefile{patterns: patterns, dir: root})
	}

	files := make([]string, 0, 100)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path != root && errors.Is(err, fs.ErrPermission) {
				return nil
			}
			return err
		}

		isDir := d.IsDir()
		if path != root {
			skip, err := ignored(ignorefiles, path)
			if err != nil {
				return err
			}
			if skip {
				if isDir {
					return filepath.SkipDir
				}
				return nil
			}
		}

		if isDir {
			return addIgnoreIfExists(&ignorefiles, path)
		}
		if d.Type().IsRegular() && d.Name() != IgnoreFile {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func ignored(ignorefiles []*ignorefile, path string) (bool, error) {
	// Deeper ignore files come last, check them first.
	for i := len(ignorefiles) - 1; i >= 0; i-- {
		igf := ignorefiles[i]
		rel, err := filepath.Rel(igf.dir, path)
		if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
			continue
		}
		ignore, err := pathspec.GitIgnore(igf.patterns, filepath.ToSlash(rel))
		if err != nil {
			return false, err
		}
		if ignore {
			return true, nil
		}
	}
	return false, nil
}

// cleanPatterns drops blank lines and comments, which GitIgnore does not
// skip on its own.
func cleanPatterns(lines []string) []string {
	patterns := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || line[0] == '#' {
			continue
		}
		patterns = append(patterns, line)
	}
	return patterns
}

func addIgnoreIfExists(ignorefiles *[]*ignorefile, dir string) error {
	path := filepath.Join(dir, IgnoreFile)
	f, err := os.Stat(path)
	if err != nil || !f.Mode().Type().IsRegular() {
		return nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	patterns := cleanPatterns(strings.Split(string(content), "\n"))
	if len(patterns) == 0 {
		return nil
	}
	*ignorefiles = append(*ignorefiles, &ignorefile{
		patterns: patterns,
		dir:      dir,
	})
	return nil
}
