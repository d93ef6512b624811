package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/karagenc/hardcode/internal/config"
	"github.com/karagenc/hardcode/internal/layout"
	"github.com/karagenc/hardcode/internal/naming"
	"github.com/karagenc/hardcode/internal/resource"
	"github.com/karagenc/hardcode/internal/scripting"
	"github.com/karagenc/hardcode/internal/substitute"
	"go.uber.org/zap"
)

type (
	Pipeline struct {
		config *config.Config
		attrs  []layout.Attr
		gen    *naming.Generator
		engine *substitute.Engine
		log    *zap.Logger
		logS   *zap.SugaredLogger
	}

	// Occurrence is a literal together with its generated name and the files
	// it was found in.
	Occurrence struct {
		Literal string
		Name    string
		Files   []string
	}
)

// New builds a pipeline from config. opts are applied after the naming
// options derived from config.
func New(config *config.Config, log *zap.Logger, opts ...naming.Option) (*Pipeline, error) {
	attrs, err := config.Attrs()
	if err != nil {
		return nil, err
	}
	namingOpts := []naming.Option{
		naming.WithMaxLength(config.Naming.MaxLength),
		naming.WithRandomLength(config.Naming.RandomLength),
		naming.WithDisambiguate(config.Naming.Disambiguate),
		naming.WithLogger(log),
	}
	return &Pipeline{
		config: config,
		attrs:  attrs,
		gen:    naming.New(append(namingOpts, opts...)...),
		engine: substitute.New(config.Source.Dir, config.Output.Dir, log),
		log:    log,
		logS:   log.Sugar(),
	}, nil
}

// Files enumerates the source directory.
func (p *Pipeline) Files() ([]string, error) {
	var (
		files []string
		err   error
	)
	if p.config.Source.Recursive {
		files, err = layout.Walk(p.config.Source.Dir, p.config.Source.Exclude)
	} else {
		files, err = layout.List(p.config.Source.Dir)
	}
	if err != nil {
		return nil, fmt.Errorf("enumerate %s: %w", p.config.Source.Dir, err)
	}
	return files, nil
}

// Run executes the whole pipeline: extract, name, write the resource file,
// read it back and substitute. Per-file problems end up in the report; an
// error is returned only if the source directory could not be enumerated, a
// pre hook failed or ctx was cancelled.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	err := p.runHooks(ctx, true, nil)
	if err != nil {
		return nil, err
	}

	report, files, err := p.extract(ctx)
	if err != nil {
		return report, err
	}

	m, err := resource.Read(p.config.Resource.File)
	if err != nil {
		p.logS.Warnf("Could not read back %s, using generated names: %v", p.config.Resource.File, err)
		report.ReloadErr = err
		m = report.Mapping
	} else {
		report.Mapping = m
	}

	err = p.substitute(ctx, files, m, report)
	if err != nil {
		return report, err
	}
	_ = p.runHooks(ctx, false, report)
	return report, nil
}

// Extract runs the pipeline up to writing the resource file, which can then
// be edited before Apply.
func (p *Pipeline) Extract(ctx context.Context) (*Report, error) {
	err := p.runHooks(ctx, true, nil)
	if err != nil {
		return nil, err
	}
	report, _, err := p.extract(ctx)
	return report, err
}

// Apply reads the resource file and substitutes its entries into every
// source file. Unlike Run, a missing or invalid resource file is an error.
func (p *Pipeline) Apply(ctx context.Context) (*Report, error) {
	files, err := p.Files()
	if err != nil {
		return nil, err
	}
	m, err := resource.Read(p.config.Resource.File)
	if err != nil {
		return nil, err
	}

	report := newReport(p.config.Resource.File)
	report.Mapping = m
	err = p.substitute(ctx, files, m, report)
	if err != nil {
		return report, err
	}
	_ = p.runHooks(ctx, false, report)
	return report, nil
}

// Scan names the literals of every source file without writing anything.
func (p *Pipeline) Scan(ctx context.Context) ([]*Occurrence, *Report, error) {
	files, err := p.Files()
	if err != nil {
		return nil, nil, err
	}
	report := newReport(p.config.Resource.File)
	found, err := p.collect(ctx, files, report)
	if err != nil {
		return nil, report, err
	}
	report.Literals = sortedKeys(found)
	report.Mapping, report.NamingErrs = p.gen.Generate(report.Literals)

	occurrences := make([]*Occurrence, 0, len(report.Mapping))
	for _, literal := range report.Literals {
		name, ok := report.Mapping[literal]
		if !ok {
			continue
		}
		occurrences = append(occurrences, &Occurrence{
			Literal: literal,
			Name:    name,
			Files:   found[literal],
		})
	}
	return occurrences, report, nil
}

func (p *Pipeline) extract(ctx context.Context) (report *Report, files []string, err error) {
	files, err = p.Files()
	if err != nil {
		return nil, nil, err
	}
	report = newReport(p.config.Resource.File)

	found, err := p.collect(ctx, files, report)
	if err != nil {
		return report, nil, err
	}
	report.Literals = sortedKeys(found)
	report.Mapping, report.NamingErrs = p.gen.Generate(report.Literals)
	for _, err := range report.NamingErrs {
		p.logS.Warnf("Dropped literal: %v", err)
	}

	err = resource.Write(p.config.Resource.File, report.Mapping)
	if err != nil {
		p.logS.Errorf("Could not write %s: %v", p.config.Resource.File, err)
		report.ResourceErr = err
	} else {
		p.logS.Infof("Wrote %d strings to %s", len(report.Mapping), p.config.Resource.File)
	}
	return report, files, nil
}

// collect parses every file and returns each literal with the files it
// appears in. Files that cannot be parsed are marked as skipped.
func (p *Pipeline) collect(ctx context.Context, files []string, report *Report) (map[string][]string, error) {
	found := make(map[string][]string)
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		f := report.file(file)
		f.Stage = StageParse

		root, err := layout.Parse(file)
		if err != nil {
			p.log.Debug("Skipping file", zap.String("file", file), zap.Error(err))
			f.Status = StatusSkipped
			f.Err = err
			continue
		}
		f.Parsed = true

		literals := layout.Extract(root, p.attrs)
		f.Literals = len(literals)
		for literal := range literals {
			found[literal] = append(found[literal], file)
		}
		p.log.Debug("Extracted literals", zap.String("file", file), zap.Int("count", len(literals)))
	}
	return found, nil
}

func (p *Pipeline) substitute(ctx context.Context, files []string, m resource.Mapping, report *Report) error {
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		f := report.file(file)
		parseErr := f.Err
		f.Stage = StageSubstitute

		result, err := p.engine.Apply(file, m)
		if err != nil {
			f.Err = err
			if errors.Is(err, substitute.ErrNotRegular) {
				f.Status = StatusSkipped
			} else {
				p.logS.Errorf("Could not rewrite %s: %v", file, err)
				f.Status = StatusFailed
			}
			continue
		}
		f.Replacements = result.Replacements
		f.Dest = result.Dest
		f.Written = result.Written
		if parseErr != nil {
			// Rewritten as text, but the parse diagnostic stays in the report.
			f.Stage = StageParse
			f.Status = StatusSkipped
			f.Err = parseErr
			continue
		}
		f.Status = StatusSuccess
		f.Err = nil
	}
	return nil
}

// runHooks runs pre or post hooks. A failing pre hook aborts the run, a
// failing post hook is recorded in report.
func (p *Pipeline) runHooks(ctx context.Context, pre bool, report *Report) error {
	hooks := p.config.Hooks.Post
	if pre {
		hooks = p.config.Hooks.Pre
	}
	if len(hooks) == 0 {
		return nil
	}
	c := &scripting.Context{
		Pre:          pre,
		SourceDir:    p.config.Source.Dir,
		OutputDir:    p.config.Output.Dir,
		ResourceFile: p.config.Resource.File,
	}
	err := scripting.RunAll(ctx, hooks, c)
	if err == nil {
		return nil
	}
	if pre {
		return fmt.Errorf("failed to run pre hook: %w", err)
	}
	p.logS.Errorf("Failed to run post hook: %v", err)
	if report != nil {
		report.HookErrs = append(report.HookErrs, err)
	}
	return err
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
