package filesystem

import (
	"fmt"
	"strings"
)

const (
	// describeCharBudget caps how much of a file's content appears in the
	// inventory before head and tail trimming kicks in.
	describeCharBudget = 400

	// describeTailLines is how many trailing lines survive trimming.
	describeTailLines = 2
)

// Describe returns an inventory of every file except the default todo: name,
// line count, and a content preview. Short files are shown whole; long files
// show the head and tail with an elision marker in between. Returns the empty
// string when no files beyond the todo exist.
func (fs *FileSystem) Describe() string {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	var b strings.Builder
	for _, name := range fs.sortedNames() {
		if name == DefaultTodoFile {
			continue
		}

		file := fs.files[name]
		b.WriteString("<file>\n")
		fmt.Fprintf(&b, "%s - %d lines\n", name, file.LineCount())
		b.WriteString("<content>\n")
		b.WriteString(previewContent(file.Content()))
		b.WriteString("\n</content>\n</file>\n")
	}

	return b.String()
}

// previewContent trims long content to a head section, an elision marker
// with the omitted line count, and the final lines.
func previewContent(content string) string {
	trimmed := strings.TrimRight(content, "\n")
	if len(trimmed) <= describeCharBudget {
		return trimmed
	}

	lines := strings.Split(trimmed, "\n")

	var head []string
	headChars := 0
	for _, line := range lines {
		if headChars+len(line) > describeCharBudget*3/4 {
			break
		}
		head = append(head, line)
		headChars += len(line) + 1
	}
	if len(head) == 0 {
		// A single very long line: cut it rather than eliding everything.
		head = []string{lines[0][:describeCharBudget*3/4] + "..."}
	}

	tailStart := len(lines) - describeTailLines
	if tailStart <= len(head) {
		return strings.Join(lines, "\n")
	}

	omitted := tailStart - len(head)
	parts := append([]string{}, head...)
	parts = append(parts, fmt.Sprintf("... %d more lines ...", omitted))
	parts = append(parts, lines[tailStart:]...)
	return strings.Join(parts, "\n")
}
