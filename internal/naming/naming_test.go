package naming

import (
	"math/rand"
	"regexp"
	"strings"
	"testing"
	"unicode"

	"github.com/karagenc/hardcode/internal/resource"
	"github.com/mozillazg/go-pinyin"
	"github.com/stretchr/testify/require"
)

var randomNameRe = regexp.MustCompile(`^[A-Za-z](_[A-Za-z]){0,14}$`)

func newSeeded(opts ...Option) *Generator {
	return New(append([]Option{WithRand(rand.New(rand.NewSource(1)))}, opts...)...)
}

func TestName(t *testing.T) {
	g := newSeeded()
	tests := []struct {
		literal string
		name    string
	}{
		{"Hello", "hello"},
		{"World", "world"},
		{"Hello, World!", "helloworld"},
		{"Sign in", "signin"},
		{"硬编码", "ying_bian_ma"},
		{"你好，世界！", "ni_hao_shi_jie"},
		{"第1页", "di_1_ye"},
		{"OK按钮", "ok_an_niu"},
		{"Ｈｅｌｌｏ", "hello"},
		{"Café", "cafe"},
		{"Привет", "privet"},
		{"e-mail", "e_mail"},
		{"这是一个非常非常长的提示文字", "zhe_shi_yi_ge_fei_chang_f"},
	}
	for _, test := range tests {
		name, random := g.Name(test.literal)
		require.False(t, random, test.literal)
		require.Equal(t, test.name, name, test.literal)
		require.LessOrEqual(t, len(name), DefaultMaxLength, test.literal)
	}
}

func TestNameHanWithoutPinyin(t *testing.T) {
	var missing rune = -1
	for r := rune(0x2E80); r <= 0x3134F; r++ {
		if _, ok := pinyin.PinyinDict[int(r)]; ok || !unicode.Is(unicode.Han, r) {
			continue
		}
		if Strip(string(r)) == string(r) {
			missing = r
			break
		}
	}
	require.NotEqual(t, rune(-1), missing)

	g := newSeeded()
	name, random := g.Name(string(missing) + "码")
	require.False(t, random)
	require.Equal(t, g.noPinyin(missing, g.pinyinArgs)[0]+"_ma", name)
	require.True(t, strings.HasSuffix(name, "_ma"))
}

func TestNameDeterministic(t *testing.T) {
	a := New()
	b := New()
	for _, literal := range []string{"Hello", "硬编码", "Ｔｅｓｔ 测试"} {
		nameA, _ := a.Name(literal)
		nameB, _ := b.Name(literal)
		require.Equal(t, nameA, nameB)
	}
}

func TestNameTruncationTrimsSeparator(t *testing.T) {
	g := newSeeded(WithMaxLength(3))
	name, random := g.Name("硬编码")
	require.False(t, random)
	require.Equal(t, "yin", name)

	g = newSeeded(WithMaxLength(5))
	name, _ = g.Name("硬编码")
	require.Equal(t, "ying", name)
}

func TestNameRandomFallback(t *testing.T) {
	g := newSeeded()
	for _, literal := range []string{"...", "！！！", "  ", "（*）", "😀"} {
		name, random := g.Name(literal)
		require.True(t, random, literal)
		require.Regexp(t, randomNameRe, name, literal)
	}
}

func TestNameRandomInjectedSource(t *testing.T) {
	a := newSeeded()
	b := newSeeded()
	for i := 0; i < 20; i++ {
		nameA, _ := a.Name("...")
		nameB, _ := b.Name("...")
		require.Equal(t, nameA, nameB)
	}
}

func TestNameRandomLength(t *testing.T) {
	g := newSeeded(WithRandomLength(1))
	for i := 0; i < 10; i++ {
		name, random := g.Name("?")
		require.True(t, random)
		require.Len(t, name, 1)
	}
}

func TestStrip(t *testing.T) {
	require.Equal(t, "HelloWorld", Strip(" Hello, World! "))
	require.Equal(t, "你好世界", Strip("你好，世界。"))
	require.Equal(t, "", Strip("……——（）￥"))
	require.Equal(t, "", Strip(`{}:$%^*()?"'/\~@#&`))
}

func TestGenerate(t *testing.T) {
	g := newSeeded()
	m, errs := g.Generate([]string{"World", "Hello", "硬编码"})
	require.Empty(t, errs)
	require.Equal(t, resource.Mapping{
		"Hello": "hello",
		"World": "world",
		"硬编码":   "ying_bian_ma",
	}, m)
}

func TestGenerateDisambiguates(t *testing.T) {
	g := newSeeded()
	m, errs := g.Generate([]string{"Hello!", "Hello", "hello", "Hello?"})
	require.Empty(t, errs)
	require.Equal(t, resource.Mapping{
		"Hello":  "hello",
		"Hello!": "hello_2",
		"Hello?": "hello_3",
		"hello":  "hello_4",
	}, m)
}

func TestGenerateDisambiguateSkipsTakenSuffix(t *testing.T) {
	g := newSeeded()
	m, errs := g.Generate([]string{"a", "a_2", "a!"})
	require.Empty(t, errs)

	seen := make(map[string]bool)
	for _, name := range m {
		require.False(t, seen[name], name)
		seen[name] = true
	}
	require.Len(t, m, 3)
}

func TestGenerateCollisionsKept(t *testing.T) {
	g := newSeeded(WithDisambiguate(false))
	m, errs := g.Generate([]string{"Hello!", "Hello"})
	require.Empty(t, errs)
	require.Equal(t, resource.Mapping{"Hello": "hello", "Hello!": "hello"}, m)
}

func TestGenerateDropsInvalidLiterals(t *testing.T) {
	g := newSeeded()
	m, errs := g.Generate([]string{"Hello", "bad\xff"})
	require.Len(t, errs, 1)
	require.True(t, strings.Contains(errs[0].Error(), "UTF-8"))
	require.Equal(t, resource.Mapping{"Hello": "hello"}, m)
}

func TestGenerateRandomNamesAreUnique(t *testing.T) {
	g := newSeeded(WithRandomLength(1))
	literals := make([]string, 0, 60)
	for i := 1; i <= 60; i++ {
		literals = append(literals, strings.Repeat(".", i))
	}
	m, errs := g.Generate(literals)
	require.Empty(t, errs)
	require.Len(t, m, 60)

	seen := make(map[string]bool)
	for _, name := range m {
		require.False(t, seen[name], name)
		seen[name] = true
	}
}
