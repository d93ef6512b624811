// Package naming derives string resource names from literal text.
package naming

import (
	"fmt"
	"math/rand"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/gosimple/slug"
	"github.com/karagenc/hardcode/internal/resource"
	"github.com/mozillazg/go-pinyin"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
)

const (
	DefaultMaxLength    = 25
	DefaultRandomLength = 15

	letters = "AaBbCcDdEeFfGgHhIiJjKkLlMmNnOoPpQqRrSsTtUuVvWwXxYyZz"
)

// Whitespace, ASCII punctuation and common full-width Chinese punctuation.
var stripRe = regexp.MustCompile(`[\s+.!/_,{}:$%^*()?"']+|[+—＋！：，\\ 。？、~@#￥%…&*（）]+`)

type (
	Generator struct {
		r            *rand.Rand
		maxLength    int
		randomLength int
		disambiguate bool
		log          *zap.Logger
		pinyinArgs   pinyin.Args
	}

	Option func(g *Generator)
)

// WithRand sets the source used for names of literals that have no usable
// characters.
func WithRand(r *rand.Rand) Option { return func(g *Generator) { g.r = r } }

func WithMaxLength(n int) Option { return func(g *Generator) { g.maxLength = n } }

func WithRandomLength(n int) Option { return func(g *Generator) { g.randomLength = n } }

// WithDisambiguate controls whether colliding names get a numeric suffix.
func WithDisambiguate(d bool) Option { return func(g *Generator) { g.disambiguate = d } }

func WithLogger(log *zap.Logger) Option { return func(g *Generator) { g.log = log } }

func New(opts ...Option) *Generator {
	g := &Generator{
		maxLength:    DefaultMaxLength,
		randomLength: DefaultRandomLength,
		disambiguate: true,
		log:          zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.r == nil {
		g.r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	g.pinyinArgs = pinyin.NewArgs()
	g.pinyinArgs.Fallback = g.noPinyin
	return g
}

// noPinyin keeps Han characters missing from the pinyin dictionary instead of
// dropping them: they are transliterated by slug, or spelled as their code point.
func (g *Generator) noPinyin(r rune, _ pinyin.Args) []string {
	g.log.Debug("No pinyin for character", zap.String("char", string(r)))
	if sl := strings.ReplaceAll(slug.Make(string(r)), "-", "_"); sl != "" {
		return []string{sl}
	}
	return []string{fmt.Sprintf("u%04x", r)}
}

// Strip removes whitespace and punctuation from s.
func Strip(s string) string {
	s = stripRe.ReplaceAllString(s, "")
	// NFKC folds full-width forms into ASCII punctuation; strip again.
	s = norm.NFKC.String(s)
	return stripRe.ReplaceAllString(s, "")
}

// Name returns the resource name for literal. random is true when the literal
// had nothing to transliterate and the name was drawn from the random source.
func (g *Generator) Name(literal string) (name string, random bool) {
	stripped := Strip(literal)
	if stripped != "" {
		name = g.transliterate(stripped)
	}
	if name == "" {
		return g.randomName(), true
	}
	return name, false
}

func (g *Generator) transliterate(s string) string {
	var (
		syllables = make([]string, 0, utf8.RuneCountInString(s))
		han       []rune
		other     []rune
	)
	flushHan := func() {
		if len(han) > 0 {
			syllables = append(syllables, pinyin.LazyPinyin(string(han), g.pinyinArgs)...)
			han = han[:0]
		}
	}
	flushOther := func() {
		if len(other) > 0 {
			if sl := strings.ReplaceAll(slug.Make(string(other)), "-", "_"); sl != "" {
				syllables = append(syllables, sl)
			}
			other = other[:0]
		}
	}

	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			flushOther()
			han = append(han, r)
		} else {
			flushHan()
			other = append(other, r)
		}
	}
	flushHan()
	flushOther()

	name := strings.Join(syllables, "_")
	if len(name) > g.maxLength {
		name = name[:g.maxLength]
	}
	return strings.Trim(name, " \t\r\n_")
}

func (g *Generator) randomName() string {
	n := g.r.Intn(g.randomLength) + 1
	var b strings.Builder
	b.Grow(n * 2)
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteByte('_')
		}
		b.WriteByte(letters[g.r.Intn(len(letters))])
	}
	return b.String()
}

// Generate names every literal. Literals are visited in sorted order so that
// disambiguation suffixes are stable across runs. A literal that cannot be used
// as a resource key is dropped and reported in errs.
func (g *Generator) Generate(literals []string) (m resource.Mapping, errs []error) {
	sorted := make([]string, len(literals))
	copy(sorted, literals)
	sort.Strings(sorted)

	m = make(resource.Mapping, len(sorted))
	used := make(map[string]struct{}, len(sorted))
	for _, literal := range sorted {
		if _, ok := m[literal]; ok {
			continue
		}
		if !utf8.ValidString(literal) {
			err := fmt.Errorf("naming: literal %q is not valid UTF-8", literal)
			g.log.Warn("Dropping literal", zap.Error(err))
			errs = append(errs, err)
			continue
		}

		name, random := g.Name(literal)
		if g.disambiguate {
			unique := uniqueName(name, used)
			if unique != name {
				g.log.Debug("Name collision", zap.String("literal", literal), zap.String("name", name), zap.String("renamed", unique))
			}
			name = unique
		}
		g.log.Debug("Named literal", zap.String("literal", literal), zap.String("name", name), zap.Bool("random", random))
		m[literal] = name
	}
	return m, errs
}

func uniqueName(name string, used map[string]struct{}) string {
	candidate := name
	for i := 2; ; i++ {
		if _, ok := used[candidate]; !ok {
			used[candidate] = struct{}{}
			return candidate
		}
		candidate = name + "_" + strconv.Itoa(i)
	}
}
