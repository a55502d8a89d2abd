package collect

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// Selector matches elements by tag name and/or class. Empty fields match
// anything, so {Class: "price"} matches any element carrying that class.
type Selector struct {
	Tag   string
	Class string
}

// matches reports whether the node satisfies the selector.
func (s Selector) matches(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	if s.Tag != "" && !strings.EqualFold(n.Data, s.Tag) {
		return false
	}
	if s.Class != "" && !hasClass(n, s.Class) {
		return false
	}
	return true
}

// hasClass reports whether the element's class attribute contains the class.
func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(attr.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

// RecordSelector describes how to lift records out of a page: Container
// matches one element per record, and each field selector matches within
// that container.
type RecordSelector struct {
	Container Selector
	Fields    map[string]Selector
}

// ExtractRecords parses the page and returns one record per container
// match. Missing fields are left absent rather than failing the record.
func (e *Extractor) ExtractRecords(page *Page, sel RecordSelector) ([]*Record, error) {
	doc, err := html.Parse(strings.NewReader(page.HTML))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var records []*Record
	for _, container := range findAll(doc, sel.Container) {
		record := NewRecord(page.URL)
		for field, fieldSel := range sel.Fields {
			if node := findFirst(container, fieldSel); node != nil {
				record.Set(field, nodeText(node))
			}
		}
		records = append(records, record)
	}

	return records, nil
}

// findAll returns every node in the tree matching the selector. Matches do
// not nest: children of a matched node are not searched again.
func findAll(n *html.Node, sel Selector) []*html.Node {
	var found []*html.Node
	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if sel.matches(n) {
			found = append(found, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(n)
	return found
}

// findFirst returns the first node in the tree matching the selector.
func findFirst(n *html.Node, sel Selector) *html.Node {
	var found *html.Node
	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if found != nil {
			return
		}
		if sel.matches(n) {
			found = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(n)
	return found
}

// nodeText gathers the visible text inside a node, collapsing whitespace.
func nodeText(n *html.Node) string {
	var parts []string
	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				parts = append(parts, text)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(n)
	return strings.Join(parts, " ")
}
