package report

import (
	"fmt"
	"strings"
)

// MarkdownBuilder assembles a markdown document section by section. Methods
// chain so a report reads top to bottom at the call site.
type MarkdownBuilder struct {
	md strings.Builder
}

// NewMarkdownBuilder creates an empty builder.
func NewMarkdownBuilder() *MarkdownBuilder {
	return &MarkdownBuilder{}
}

// Title writes the document title.
func (b *MarkdownBuilder) Title(text string) *MarkdownBuilder {
	b.md.WriteString(fmt.Sprintf("# %s\n\n", text))
	return b
}

// Section writes a second-level heading.
func (b *MarkdownBuilder) Section(text string) *MarkdownBuilder {
	b.md.WriteString(fmt.Sprintf("## %s\n\n", text))
	return b
}

// Subsection writes a third-level heading.
func (b *MarkdownBuilder) Subsection(text string) *MarkdownBuilder {
	b.md.WriteString(fmt.Sprintf("### %s\n\n", text))
	return b
}

// Paragraph writes a paragraph followed by a blank line.
func (b *MarkdownBuilder) Paragraph(text string) *MarkdownBuilder {
	b.md.WriteString(text)
	b.md.WriteString("\n\n")
	return b
}

// KeyValue writes a bolded label line, matching the summary style used in
// execution artifacts.
func (b *MarkdownBuilder) KeyValue(label, value string) *MarkdownBuilder {
	b.md.WriteString(fmt.Sprintf("**%s:** %s\n\n", label, value))
	return b
}

// List writes a bullet list followed by a blank line.
func (b *MarkdownBuilder) List(items ...string) *MarkdownBuilder {
	for _, item := range items {
		b.md.WriteString(fmt.Sprintf("- %s\n", item))
	}
	b.md.WriteString("\n")
	return b
}

// Table writes a markdown table with the given header and rows.
func (b *MarkdownBuilder) Table(header []string, rows [][]string) *MarkdownBuilder {
	b.md.WriteString("| " + strings.Join(header, " | ") + " |\n")

	separators := make([]string, len(header))
	for i := range separators {
		separators[i] = "---"
	}
	b.md.WriteString("| " + strings.Join(separators, " | ") + " |\n")

	for _, row := range rows {
		b.md.WriteString("| " + strings.Join(row, " | ") + " |\n")
	}
	b.md.WriteString("\n")
	return b
}

// Raw writes text verbatim.
func (b *MarkdownBuilder) Raw(text string) *MarkdownBuilder {
	b.md.WriteString(text)
	return b
}

// String returns the assembled document.
func (b *MarkdownBuilder) String() string {
	return b.md.String()
}
