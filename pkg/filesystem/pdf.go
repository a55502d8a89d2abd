package filesystem

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PDFFile holds markdown source in memory and renders it to PDF bytes when
// synced to disk. Read, append, and replace all operate on the markdown
// source, so a report can be built incrementally and re-rendered on every
// write-through.
type PDFFile struct {
	baseFile
}

// Bytes renders the markdown source to a paginated PDF document.
func (f *PDFFile) Bytes() ([]byte, error) {
	return RenderPDF(f.content)
}

// A4 page geometry in PDF points, with a uniform margin. Coordinates use the
// PDF default origin at the lower left corner.
const (
	pageWidth  = 595.0
	pageHeight = 842.0
	pageMargin = 50.0
)

// pdfLine is a single laid-out line of text with its font treatment.
type pdfLine struct {
	text   string
	size   int
	bold   bool
	indent float64
}

// RenderPDF converts markdown source into a PDF document using pdfcpu's
// JSON-driven page creation. The renderer understands headings, bullet
// lists, and paragraphs; inline emphasis markers are stripped rather than
// styled. An empty source produces a single blank page.
func RenderPDF(markdown string) ([]byte, error) {
	lines := layoutMarkdown(markdown)

	spec, err := buildCreateSpec(lines)
	if err != nil {
		return nil, fmt.Errorf("failed to build PDF spec: %w", err)
	}

	var buf bytes.Buffer
	if err := api.Create(nil, bytes.NewReader(spec), &buf, model.NewDefaultConfiguration()); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}

	return buf.Bytes(), nil
}

// layoutMarkdown converts markdown source into wrapped, sized lines ready
// for pagination.
func layoutMarkdown(markdown string) []pdfLine {
	var lines []pdfLine

	for _, raw := range strings.Split(strings.ReplaceAll(markdown, "\r\n", "\n"), "\n") {
		line := strings.TrimRight(raw, " \t")

		switch {
		case strings.TrimSpace(line) == "":
			lines = append(lines, pdfLine{text: "", size: 10})
		case strings.HasPrefix(line, "### "):
			lines = append(lines, wrapText(stripInlineMarkers(line[4:]), 12, true, 0)...)
		case strings.HasPrefix(line, "## "):
			lines = append(lines, wrapText(stripInlineMarkers(line[3:]), 14, true, 0)...)
		case strings.HasPrefix(line, "# "):
			lines = append(lines, wrapText(stripInlineMarkers(line[2:]), 18, true, 0)...)
		case strings.HasPrefix(strings.TrimSpace(line), "- "), strings.HasPrefix(strings.TrimSpace(line), "* "):
			item := strings.TrimSpace(line)[2:]
			lines = append(lines, wrapText("• "+stripInlineMarkers(item), 10, false, 12)...)
		default:
			lines = append(lines, wrapText(stripInlineMarkers(line), 10, false, 0)...)
		}
	}

	return lines
}

// stripInlineMarkers removes emphasis and code markers that the renderer
// does not style.
func stripInlineMarkers(text string) string {
	text = strings.ReplaceAll(text, "**", "")
	text = strings.ReplaceAll(text, "`", "")
	return text
}

// wrapText word-wraps text to the printable width for the given font size.
// Continuation lines keep the indent so wrapped bullets stay aligned.
func wrapText(text string, size int, bold bool, indent float64) []pdfLine {
	// Approximate average glyph width for Helvetica at the given size.
	charWidth := float64(size) * 0.5
	maxChars := int((pageWidth - 2*pageMargin - indent) / charWidth)
	if maxChars < 10 {
		maxChars = 10
	}

	if len(text) <= maxChars {
		return []pdfLine{{text: text, size: size, bold: bold, indent: indent}}
	}

	var lines []pdfLine
	var current strings.Builder

	for _, word := range strings.Fields(text) {
		if current.Len() > 0 && current.Len()+1+len(word) > maxChars {
			lines = append(lines, pdfLine{text: current.String(), size: size, bold: bold, indent: indent})
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(word)
	}
	if current.Len() > 0 {
		lines = append(lines, pdfLine{text: current.String(), size: size, bold: bold, indent: indent})
	}

	if len(lines) == 0 {
		lines = append(lines, pdfLine{text: "", size: size, bold: bold, indent: indent})
	}

	return lines
}

// pdfSpec mirrors the subset of pdfcpu's page creation JSON that the
// renderer emits.
type pdfSpec struct {
	Paper string             `json:"paper"`
	Pages map[string]pdfPage `json:"pages"`
}

type pdfPage struct {
	Content pdfContent `json:"content"`
}

type pdfContent struct {
	Text []pdfText `json:"text"`
}

type pdfText struct {
	Value    string     `json:"value"`
	Position [2]float64 `json:"pos"`
	Font     pdfFont    `json:"font"`
}

type pdfFont struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

// buildCreateSpec paginates laid-out lines into pdfcpu page creation JSON.
func buildCreateSpec(lines []pdfLine) ([]byte, error) {
	spec := pdfSpec{
		Paper: "A4",
		Pages: make(map[string]pdfPage),
	}

	pageNum := 1
	y := pageHeight - pageMargin
	var boxes []pdfText

	flushPage := func() {
		if len(boxes) == 0 {
			// pdfcpu requires page content; emit an empty text box so
			// blank pages still render.
			boxes = append(boxes, pdfText{
				Value:    " ",
				Position: [2]float64{pageMargin, pageHeight - pageMargin},
				Font:     pdfFont{Name: "Helvetica", Size: 10},
			})
		}
		spec.Pages[fmt.Sprintf("%d", pageNum)] = pdfPage{Content: pdfContent{Text: boxes}}
		pageNum++
		boxes = nil
		y = pageHeight - pageMargin
	}

	for _, line := range lines {
		lineHeight := float64(line.size) * 1.45

		if y-lineHeight < pageMargin {
			flushPage()
		}
		y -= lineHeight

		if line.text == "" {
			continue
		}

		fontName := "Helvetica"
		if line.bold {
			fontName = "Helvetica-Bold"
		}

		boxes = append(boxes, pdfText{
			Value:    line.text,
			Position: [2]float64{pageMargin + line.indent, y},
			Font:     pdfFont{Name: fontName, Size: line.size},
		})
	}
	flushPage()

	return json.Marshal(spec)
}
