package collect

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// defaultMaxTextLength bounds extracted text so a single page cannot flood
// the agent file system.
const defaultMaxTextLength = 20000

// Extracted holds the readable content of a page.
type Extracted struct {
	URL         string
	Title       string
	Description string
	Text        string
	Truncated   bool
}

// Markdown renders the extracted content as a markdown document suitable
// for saving into the agent file system.
func (e *Extracted) Markdown() string {
	var builder strings.Builder

	if e.Title != "" {
		fmt.Fprintf(&builder, "# %s\n\n", e.Title)
	}
	if e.URL != "" {
		fmt.Fprintf(&builder, "Source: %s\n\n", e.URL)
	}
	if e.Description != "" {
		fmt.Fprintf(&builder, "%s\n\n", e.Description)
	}
	builder.WriteString(e.Text)
	if e.Truncated {
		builder.WriteString("\n\n[content truncated]")
	}

	return builder.String()
}

// Extractor pulls readable text and structured records out of page HTML,
// removing scripts, styles, and other noise.
type Extractor struct {
	maxTextLength int
}

// NewExtractor creates an Extractor. A non-positive maxTextLength selects
// the default budget.
func NewExtractor(maxTextLength int) *Extractor {
	if maxTextLength <= 0 {
		maxTextLength = defaultMaxTextLength
	}
	return &Extractor{maxTextLength: maxTextLength}
}

// Extract parses the page and returns its title, meta description, and
// visible text. Block elements become line breaks so the text keeps its
// reading order.
func (e *Extractor) Extract(page *Page) (*Extracted, error) {
	doc, err := html.Parse(strings.NewReader(page.HTML))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	result := &Extracted{
		URL:         page.URL,
		Title:       extractTitle(doc),
		Description: extractMetaDescription(doc),
	}

	var builder strings.Builder
	var currentLength int
	result.Truncated = collectText(doc, &builder, &currentLength, e.maxTextLength)
	result.Text = strings.TrimSpace(builder.String())

	return result, nil
}

// collectText recursively gathers visible text, skipping noise elements and
// inserting newlines at block boundaries. Returns true when the budget is
// exhausted.
func collectText(n *html.Node, builder *strings.Builder, currentLength *int, maxLength int) bool {
	if *currentLength >= maxLength {
		return true
	}

	if n.Type == html.CommentNode {
		return false
	}

	if n.Type == html.ElementNode && isSkippedElement(strings.ToLower(n.Data)) {
		return false
	}

	if n.Type == html.TextNode {
		text := strings.TrimSpace(n.Data)
		if text == "" {
			return false
		}

		if *currentLength+len(text) > maxLength {
			remaining := maxLength - *currentLength
			builder.WriteString(text[:remaining])
			builder.WriteString("...")
			*currentLength = maxLength
			return true
		}

		if builder.Len() > 0 && !strings.HasSuffix(builder.String(), "\n") {
			builder.WriteString(" ")
		}
		builder.WriteString(text)
		*currentLength += len(text)
		return false
	}

	truncated := false
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if collectText(c, builder, currentLength, maxLength) {
			truncated = true
			break
		}
	}

	if n.Type == html.ElementNode && isBlockElement(strings.ToLower(n.Data)) {
		if builder.Len() > 0 && !strings.HasSuffix(builder.String(), "\n") {
			builder.WriteString("\n")
		}
	}

	return truncated
}

// isSkippedElement returns true for elements that should be completely removed
func isSkippedElement(tagName string) bool {
	skipped := map[string]bool{
		"script":   true,
		"style":    true,
		"noscript": true,
		"iframe":   true,
		"embed":    true,
		"object":   true,
		"svg":      true,
		"head":     true,
	}
	return skipped[tagName]
}

// isBlockElement returns true for block-level elements (for line breaks)
func isBlockElement(tagName string) bool {
	blocks := map[string]bool{
		"div":        true,
		"p":          true,
		"section":    true,
		"article":    true,
		"header":     true,
		"footer":     true,
		"nav":        true,
		"main":       true,
		"aside":      true,
		"h1":         true,
		"h2":         true,
		"h3":         true,
		"h4":         true,
		"h5":         true,
		"h6":         true,
		"ul":         true,
		"ol":         true,
		"li":         true,
		"table":      true,
		"tr":         true,
		"td":         true,
		"th":         true,
		"blockquote": true,
		"pre":        true,
		"br":         true,
	}
	return blocks[tagName]
}

// extractTitle extracts the page title from the document
func extractTitle(doc *html.Node) string {
	var title string
	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "title" {
			if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
				title = strings.TrimSpace(n.FirstChild.Data)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
			if title != "" {
				return
			}
		}
	}
	traverse(doc)
	return title
}

// extractMetaDescription extracts the meta description from the document
func extractMetaDescription(doc *html.Node) string {
	var description string
	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "meta" {
			var isDescription bool
			var content string
			for _, attr := range n.Attr {
				if attr.Key == "name" && attr.Val == "description" {
					isDescription = true
				}
				if attr.Key == "content" {
					content = attr.Val
				}
			}
			if isDescription && content != "" {
				description = strings.TrimSpace(content)
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
			if description != "" {
				return
			}
		}
	}
	traverse(doc)
	return description
}
