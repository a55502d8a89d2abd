// Package filesystem implements the typed file workspace that scribe agents
// use to collect data, track progress, and compile reports. All files live in
// a dedicated data directory under a caller-supplied base directory, are held
// in memory as typed files, and are written through to disk atomically on
// every mutation.
package filesystem

import (
	"fmt"
	"regexp"
	"strings"
)

// Extensions supported by the file system. Content formatting is the caller's
// concern; the file layer is type-aware only where the type demands it (PDF
// rendering, newline-correct CSV appends).
const (
	ExtText     = ".txt"
	ExtMarkdown = ".md"
	ExtJSON     = ".json"
	ExtCSV      = ".csv"
	ExtPDF      = ".pdf"
)

// filenameRegex enforces simple flat filenames: alphanumeric, underscore,
// and hyphen, followed by a supported extension. Path separators never match,
// so files cannot escape the data directory by construction.
var filenameRegex = regexp.MustCompile(`^[a-zA-Z0-9_\-]+\.(txt|md|json|csv|pdf)$`)

// File is a single typed file held by the file system. Content is the
// in-memory source of truth; Bytes returns the on-disk representation, which
// differs from Content only for rendered types like PDF.
type File interface {
	// Name returns the full filename including extension.
	Name() string

	// Extension returns the file extension including the leading dot.
	Extension() string

	// Content returns the in-memory content.
	Content() string

	// SetContent replaces the in-memory content.
	SetContent(content string)

	// Append adds content to the end of the file.
	Append(content string) error

	// Replace substitutes all occurrences of old with new and returns the
	// number of replacements made.
	Replace(old, new string) (int, error)

	// Bytes returns the on-disk representation of the file.
	Bytes() ([]byte, error)

	// LineCount returns the number of lines in the content.
	LineCount() int
}

// ValidFilename reports whether name matches the allowed filename pattern.
func ValidFilename(name string) bool {
	return filenameRegex.MatchString(name)
}

// NewFile creates a typed file for the given name. The name must match the
// allowed filename pattern; the concrete type is chosen by extension.
func NewFile(name, content string) (File, error) {
	if !ValidFilename(name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFilename, name)
	}

	base := baseFile{name: name, content: content}

	switch extensionOf(name) {
	case ExtText:
		return &TextFile{base}, nil
	case ExtMarkdown:
		return &MarkdownFile{base}, nil
	case ExtJSON:
		return &JSONFile{base}, nil
	case ExtCSV:
		return &CSVFile{base}, nil
	case ExtPDF:
		return &PDFFile{base}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedExtension, name)
	}
}

// extensionOf returns the extension of a validated filename, including the
// leading dot.
func extensionOf(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return ""
	}
	return name[idx:]
}

// baseFile provides the common behavior shared by all file types: plain
// string content with verbatim append and replace.
type baseFile struct {
	name    string
	content string
}

func (f *baseFile) Name() string {
	return f.name
}

func (f *baseFile) Extension() string {
	return extensionOf(f.name)
}

func (f *baseFile) Content() string {
	return f.content
}

func (f *baseFile) SetContent(content string) {
	f.content = content
}

func (f *baseFile) Append(content string) error {
	f.content += content
	return nil
}

func (f *baseFile) Replace(old, new string) (int, error) {
	if old == "" {
		return 0, ErrEmptySearchString
	}

	count := strings.Count(f.content, old)
	if count == 0 {
		return 0, fmt.Errorf("%w: %q", ErrStringNotFound, old)
	}

	f.content = strings.ReplaceAll(f.content, old, new)
	return count, nil
}

func (f *baseFile) Bytes() ([]byte, error) {
	return []byte(f.content), nil
}

// LineCount counts lines after normalizing line endings. Empty content is
// zero lines, not one.
func (f *baseFile) LineCount() int {
	if f.content == "" {
		return 0
	}

	normalized := strings.ReplaceAll(f.content, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	return strings.Count(normalized, "\n") + 1
}
