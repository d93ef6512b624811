package pipeline

import (
	"context"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/karagenc/hardcode/internal/config"
	"github.com/karagenc/hardcode/internal/layout"
	"github.com/karagenc/hardcode/internal/naming"
	"github.com/karagenc/hardcode/internal/resource"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	mainLayout = `<?xml version="1.0" encoding="utf-8"?>
<LinearLayout xmlns:android="http://schemas.android.com/apk/res/android"
    xmlns:tools="http://schemas.android.com/tools">

    <TextView android:text="Hello" android:hint="World"/>

    <Button android:text="硬编码" tools:text="@string/preview"/>
</LinearLayout>
`
	detailLayout = `<?xml version="1.0" encoding="utf-8"?>
<FrameLayout xmlns:android="http://schemas.android.com/apk/res/android">
    <TextView android:text="Hello"/>
    <TextView android:text="..."/>
</FrameLayout>
`
)

func newTestConfig(t *testing.T) *config.Config {
	dir := t.TempDir()
	return &config.Config{
		Source: config.Source{
			Dir:        filepath.Join(dir, "layout"),
			Attributes: layout.DefaultAttrs,
		},
		Resource: config.Resource{File: filepath.Join(dir, "strings.xml")},
		Output:   config.Output{Dir: filepath.Join(dir, "layout_replaced")},
		Naming: config.Naming{
			MaxLength:    config.DefaultMaxLength,
			RandomLength: config.DefaultRandomLength,
			Disambiguate: true,
		},
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func newTestPipeline(t *testing.T, c *config.Config) *Pipeline {
	p, err := New(c, zap.NewNop(), naming.WithRand(rand.New(rand.NewSource(1))))
	require.NoError(t, err)
	return p
}

func readFile(t *testing.T, path string) string {
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}

func TestRun(t *testing.T) {
	c := newTestConfig(t)
	writeFile(t, filepath.Join(c.Source.Dir, "activity_main.xml"), mainLayout)
	writeFile(t, filepath.Join(c.Source.Dir, "activity_detail.xml"), detailLayout)
	writeFile(t, filepath.Join(c.Source.Dir, "broken.xml"), "<LinearLayout>\n<TextView android:text=\"Hello\">\n")

	report, err := newTestPipeline(t, c).Run(context.Background())
	require.NoError(t, err)
	require.False(t, report.Failed())
	require.NoError(t, report.ResourceErr)
	require.NoError(t, report.ReloadErr)

	require.Equal(t, []string{"...", "Hello", "World", "硬编码"}, report.Literals)
	require.Equal(t, "hello", report.Mapping["Hello"])
	require.Equal(t, "world", report.Mapping["World"])
	require.Equal(t, "ying_bian_ma", report.Mapping["硬编码"])
	require.Regexp(t, `^[A-Za-z](_[A-Za-z]){0,14}$`, report.Mapping["..."])

	res := readFile(t, c.Resource.File)
	require.Contains(t, res, `<string name="hello">Hello</string>`)
	require.Contains(t, res, `<string name="world">World</string>`)
	require.Contains(t, res, `<string name="ying_bian_ma">硬编码</string>`)

	main := readFile(t, filepath.Join(c.Output.Dir, "activity_main.xml"))
	require.Contains(t, main, `<TextView android:text="@string/hello" android:hint="@string/world"/>`)
	require.Contains(t, main, `<Button android:text="@string/ying_bian_ma" tools:text="@string/preview"/>`)
	for _, line := range strings.Split(strings.TrimSuffix(main, "\n"), "\n") {
		require.NotEmpty(t, strings.TrimSpace(line))
	}

	detail := readFile(t, filepath.Join(c.Output.Dir, "activity_detail.xml"))
	require.Contains(t, detail, `android:text="@string/`+report.Mapping["..."]+`"`)

	// Unparsable files contribute no literals and are reported as skipped,
	// but are still rewritten as text.
	broken := report.byPath[filepath.Join(c.Source.Dir, "broken.xml")]
	require.False(t, broken.Parsed)
	require.Equal(t, StatusSkipped, broken.Status)
	require.Equal(t, StageParse, broken.Stage)
	require.Error(t, broken.Err)
	require.Contains(t, readFile(t, broken.Dest), `android:text="@string/hello"`)

	require.Len(t, report.Files, 3)
	require.Equal(t, 2, report.Count(StatusSuccess))
	require.Equal(t, 1, report.Count(StatusSkipped))
	require.Equal(t, 3, report.Rewritten())
	require.False(t, report.Failed())
	require.NotEmpty(t, report.Table())
}

func TestRunPicksUpResourceFile(t *testing.T) {
	c := newTestConfig(t)
	writeFile(t, filepath.Join(c.Source.Dir, "activity_main.xml"), mainLayout)

	p := newTestPipeline(t, c)
	report, err := p.Extract(context.Background())
	require.NoError(t, err)
	require.NoError(t, report.ResourceErr)
	_, err = os.Stat(c.Output.Dir)
	require.True(t, os.IsNotExist(err))

	// Fix a name by hand before applying.
	m, err := resource.Read(c.Resource.File)
	require.NoError(t, err)
	m["硬编码"] = "hard_coded"
	require.NoError(t, resource.Write(c.Resource.File, m))

	report, err = p.Apply(context.Background())
	require.NoError(t, err)
	require.Equal(t, "hard_coded", report.Mapping["硬编码"])
	require.Contains(t, readFile(t, filepath.Join(c.Output.Dir, "activity_main.xml")), `android:text="@string/hard_coded"`)
}

func TestRunResourceWriteFailure(t *testing.T) {
	c := newTestConfig(t)
	writeFile(t, filepath.Join(c.Source.Dir, "activity_main.xml"), mainLayout)
	c.Resource.File = filepath.Join(t.TempDir(), "missing", "strings.xml")

	report, err := newTestPipeline(t, c).Run(context.Background())
	require.NoError(t, err)
	require.Error(t, report.ResourceErr)
	require.Error(t, report.ReloadErr)
	require.True(t, report.Failed())

	// Falls back to the generated names.
	main := readFile(t, filepath.Join(c.Output.Dir, "activity_main.xml"))
	require.Contains(t, main, `android:text="@string/hello"`)
}

func TestRunMissingSourceDir(t *testing.T) {
	c := newTestConfig(t)
	report, err := newTestPipeline(t, c).Run(context.Background())
	require.Error(t, err)
	require.Nil(t, report)
}

func TestRunSkipsDirectories(t *testing.T) {
	c := newTestConfig(t)
	writeFile(t, filepath.Join(c.Source.Dir, "activity_main.xml"), mainLayout)
	writeFile(t, filepath.Join(c.Source.Dir, "land", "activity_main.xml"), detailLayout)

	report, err := newTestPipeline(t, c).Run(context.Background())
	require.NoError(t, err)
	land := report.byPath[filepath.Join(c.Source.Dir, "land")]
	require.Equal(t, StatusSkipped, land.Status)
	require.Error(t, land.Err)
	require.False(t, report.Failed())
	require.NotContains(t, report.Literals, "...")
}

func TestRunRecursive(t *testing.T) {
	c := newTestConfig(t)
	c.Source.Recursive = true
	c.Source.Exclude = []string{"*.bak"}
	writeFile(t, filepath.Join(c.Source.Dir, "activity_main.xml"), mainLayout)
	writeFile(t, filepath.Join(c.Source.Dir, "land", "activity_main.xml"), detailLayout)
	writeFile(t, filepath.Join(c.Source.Dir, "activity_main.xml.bak"), detailLayout)

	report, err := newTestPipeline(t, c).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Files, 2)
	require.Contains(t, report.Literals, "...")

	land := readFile(t, filepath.Join(c.Output.Dir, "land", "activity_main.xml"))
	require.Contains(t, land, `android:text="@string/hello"`)
	_, err = os.Stat(filepath.Join(c.Output.Dir, "activity_main.xml.bak"))
	require.True(t, os.IsNotExist(err))
}

func TestApplyMissingResourceFile(t *testing.T) {
	c := newTestConfig(t)
	writeFile(t, filepath.Join(c.Source.Dir, "activity_main.xml"), mainLayout)

	_, err := newTestPipeline(t, c).Apply(context.Background())
	require.Error(t, err)
}

func TestScan(t *testing.T) {
	c := newTestConfig(t)
	writeFile(t, filepath.Join(c.Source.Dir, "activity_main.xml"), mainLayout)
	writeFile(t, filepath.Join(c.Source.Dir, "activity_detail.xml"), detailLayout)

	occurrences, report, err := newTestPipeline(t, c).Scan(context.Background())
	require.NoError(t, err)
	require.Len(t, occurrences, 4)
	require.Len(t, report.Files, 2)

	var hello *Occurrence
	for _, o := range occurrences {
		if o.Literal == "Hello" {
			hello = o
		}
	}
	require.NotNil(t, hello)
	require.Equal(t, "hello", hello.Name)
	require.Equal(t, []string{
		filepath.Join(c.Source.Dir, "activity_detail.xml"),
		filepath.Join(c.Source.Dir, "activity_main.xml"),
	}, hello.Files)

	_, err = os.Stat(c.Resource.File)
	require.True(t, os.IsNotExist(err))
}

func TestRunCancelled(t *testing.T) {
	c := newTestConfig(t)
	writeFile(t, filepath.Join(c.Source.Dir, "activity_main.xml"), mainLayout)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newTestPipeline(t, c).Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunPreHookFailure(t *testing.T) {
	c := newTestConfig(t)
	writeFile(t, filepath.Join(c.Source.Dir, "activity_main.xml"), mainLayout)
	c.Hooks.Pre = []string{filepath.Join(t.TempDir(), "does-not-exist")}

	_, err := newTestPipeline(t, c).Run(context.Background())
	require.Error(t, err)
	_, err = os.Stat(c.Resource.File)
	require.True(t, os.IsNotExist(err))
}
