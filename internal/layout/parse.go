package layout

import (
	"fmt"

	"github.com/beevik/etree"
)

// Parse reads the markup file at path and returns its root element.
// Files that are not well-formed XML, or that have no root element, yield an
// error; callers are expected to skip them.
func Parse(path string) (*etree.Element, error) {
	doc := etree.NewDocument()
	err := doc.ReadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("parse %s: no root element", path)
	}
	return root, nil
}
