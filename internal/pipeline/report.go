package pipeline

import (
	"fmt"
	"strconv"

	"github.com/docker/go-units"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/karagenc/hardcode/internal/resource"
	"github.com/karagenc/hardcode/internal/utils"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type (
	Status int

	Stage string

	FileResult struct {
		Path   string
		Stage  Stage
		Status Status
		Err    error

		// Whether the file could be parsed as markup.
		Parsed       bool
		Literals     int
		Replacements int
		Dest         string
		Written      int64
	}

	Report struct {
		Files []*FileResult

		Literals   []string
		Mapping    resource.Mapping
		NamingErrs []error

		ResourceFile string
		ResourceErr  error
		// Set when the resource file could not be read back and the
		// generated mapping was used instead.
		ReloadErr error

		HookErrs []error

		byPath map[string]*FileResult
	}
)

const (
	StatusSuccess Status = iota
	StatusSkipped
	StatusFailed
)

const (
	StageParse      Stage = "parse"
	StageSubstitute Stage = "substitute"
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		return "<invalid status>"
	}
}

func newReport(resourceFile string) *Report {
	return &Report{
		ResourceFile: resourceFile,
		byPath:       make(map[string]*FileResult),
	}
}

// file returns the result for path, creating it on first use.
func (r *Report) file(path string) *FileResult {
	f, ok := r.byPath[path]
	if !ok {
		f = &FileResult{Path: path}
		r.byPath[path] = f
		r.Files = append(r.Files, f)
	}
	return f
}

func (r *Report) Count(status Status) (n int) {
	for _, f := range r.Files {
		if f.Status == status {
			n++
		}
	}
	return n
}

// Rewritten counts the files written to the output directory, including
// unparsable files that were substituted as plain text.
func (r *Report) Rewritten() (n int) {
	for _, f := range r.Files {
		if f.Dest != "" {
			n++
		}
	}
	return n
}

// Failed reports whether any part of the run did not complete.
func (r *Report) Failed() bool {
	return r.Count(StatusFailed) > 0 || r.ResourceErr != nil || len(r.HookErrs) > 0
}

var titleCaser = cases.Title(language.AmericanEnglish)

func (r *Report) Table() string {
	w := table.NewWriter()
	w.AppendHeader(table.Row{
		"FILE", "STATUS", "LITERALS", "REPLACED", "WRITTEN", "ERROR",
	})
	for _, f := range r.Files {
		status := titleCaser.String(f.Status.String())
		switch f.Status {
		case StatusSkipped:
			status = utils.Warn.Sprint(status)
		case StatusFailed:
			status = utils.Red.Sprint(status)
		}

		literals := "-"
		if f.Parsed {
			literals = strconv.Itoa(f.Literals)
		}
		written := "-"
		if f.Dest != "" {
			written = units.HumanSize(float64(f.Written))
		}
		e := ""
		if f.Err != nil {
			e = utils.Red.Sprint(f.Err)
		}
		w.AppendRow(table.Row{
			f.Path, status, literals, f.Replacements, written, e,
		})
	}
	w.AppendFooter(table.Row{
		fmt.Sprintf("%d files", len(r.Files)), "", len(r.Literals), "", "", "",
	})
	return w.Render()
}
