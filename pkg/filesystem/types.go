package filesystem

import "strings"

// TextFile holds plain text content, typically progress logs.
type TextFile struct {
	baseFile
}

// MarkdownFile holds markdown content such as analysis reports and notes.
type MarkdownFile struct {
	baseFile
}

// JSONFile holds JSON content. The file layer does not validate the JSON;
// callers build fragments incrementally and are responsible for producing a
// parseable document.
type JSONFile struct {
	baseFile
}

// CSVFile holds CSV content. Appends insert a newline separator when the
// existing content does not end with one, so appended rows never merge into
// the previous row.
type CSVFile struct {
	baseFile
}

// Append adds rows to the CSV, inserting a newline separator if needed.
func (f *CSVFile) Append(content string) error {
	if f.content != "" && !strings.HasSuffix(f.content, "\n") && content != "" {
		f.content += "\n"
	}
	f.content += content
	return nil
}
