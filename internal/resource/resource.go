// Package resource reads and writes Android string resource files.
package resource

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/beevik/etree"
)

const (
	rootTag   = "resources"
	stringTag = "string"
	nameAttr  = "name"
)

type (
	// Mapping maps a literal to its symbolic resource name.
	Mapping map[string]string

	Entry struct {
		Name    string
		Literal string
	}
)

// Entries returns the mapping ordered by name, then literal.
func (m Mapping) Entries() []Entry {
	entries := make([]Entry, 0, len(m))
	for literal, name := range m {
		entries = append(entries, Entry{Name: name, Literal: literal})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Name != entries[j].Name {
			return entries[i].Name < entries[j].Name
		}
		return entries[i].Literal < entries[j].Literal
	})
	return entries
}

// Write overwrites path with a <resources> document holding one <string>
// element per entry. Names and literals are escaped.
func Write(path string, m Mapping) error {
	doc := etree.NewDocument()
	root := doc.CreateElement(rootTag)
	for _, e := range m.Entries() {
		s := root.CreateElement(stringTag)
		s.CreateAttr(nameAttr, e.Name)
		s.SetText(e.Literal)
	}
	doc.IndentTabs()

	content, err := doc.WriteToString()
	if err != nil {
		return fmt.Errorf("resource: %w", err)
	}
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	err = os.WriteFile(path, []byte(content), 0644)
	if err != nil {
		return fmt.Errorf("resource: %w", err)
	}
	return nil
}

// Read parses a resource file back into a literal to name mapping. Entries
// without a name or text are ignored. When a literal occurs more than once,
// the last entry wins.
func Read(path string) (Mapping, error) {
	doc := etree.NewDocument()
	err := doc.ReadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("resource: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("resource: %s: no root element", path)
	}

	m := make(Mapping)
	for _, s := range root.FindElements(".//" + stringTag) {
		name := s.SelectAttrValue(nameAttr, "")
		text := s.Text()
		if name == "" || text == "" {
			continue
		}
		m[text] = name
	}
	return m, nil
}
