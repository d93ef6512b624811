package layout

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

const (
	AndroidNS = "http://schemas.android.com/apk/res/android"
	ToolsNS   = "http://schemas.android.com/tools"

	// ReferenceMarker marks an attribute value that already points to a string resource.
	ReferenceMarker = "@string/"
)

// DefaultAttrs are the attributes inspected when none are configured.
var DefaultAttrs = []string{
	"{" + AndroidNS + "}text",
	"{" + AndroidNS + "}hint",
	"{" + ToolsNS + "}text",
}

// Attr identifies an attribute by namespace URI and local name.
type Attr struct {
	Space string
	Local string
}

// ParseAttr parses an attribute qualifier in Clark notation: "{uri}local".
// A qualifier without braces names an attribute outside any namespace.
func ParseAttr(s string) (Attr, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "{") {
		if s == "" || strings.ContainsAny(s, "{}") {
			return Attr{}, fmt.Errorf("invalid attribute qualifier: %q", s)
		}
		return Attr{Local: s}, nil
	}
	end := strings.IndexByte(s, '}')
	if end < 0 {
		return Attr{}, fmt.Errorf("invalid attribute qualifier: %q: missing '}'", s)
	}
	a := Attr{Space: s[1:end], Local: s[end+1:]}
	if a.Space == "" || a.Local == "" || strings.ContainsAny(a.Local, "{}") {
		return Attr{}, fmt.Errorf("invalid attribute qualifier: %q", s)
	}
	return a, nil
}

func ParseAttrs(qualifiers []string) ([]Attr, error) {
	attrs := make([]Attr, 0, len(qualifiers))
	for _, q := range qualifiers {
		a, err := ParseAttr(q)
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, a)
	}
	return attrs, nil
}

func (a Attr) String() string {
	if a.Space == "" {
		return a.Local
	}
	return "{" + a.Space + "}" + a.Local
}

// Value returns the value of the attribute on el, resolving namespace prefixes
// against the declarations in scope.
func (a Attr) Value(el *etree.Element) (string, bool) {
	for i := range el.Attr {
		attr := &el.Attr[i]
		if attr.Key != a.Local || attr.Space == "xmlns" {
			continue
		}
		if attr.NamespaceURI() == a.Space {
			return attr.Value, true
		}
	}
	return "", false
}

// IsLiteral reports whether an attribute value is hard-coded text.
func IsLiteral(value string) bool {
	return value != "" && !strings.Contains(value, ReferenceMarker)
}

// Extract collects the literal values of attrs on root and all its descendants.
func Extract(root *etree.Element, attrs []Attr) map[string]struct{} {
	literals := make(map[string]struct{})
	if root == nil {
		return literals
	}
	var walk func(el *etree.Element)
	walk = func(el *etree.Element) {
		for _, a := range attrs {
			if v, ok := a.Value(el); ok && IsLiteral(v) {
				literals[v] = struct{}{}
			}
		}
		for _, child := range el.ChildElements() {
			walk(child)
		}
	}
	walk(root)
	return literals
}
