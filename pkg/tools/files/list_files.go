package files

import (
	"context"
	"strings"

	"github.com/entrhq/scribe/pkg/filesystem"
)

// ListFilesTool lists the names of every file in the agent file system.
type ListFilesTool struct {
	fs *filesystem.FileSystem
}

// NewListFilesTool creates a new ListFilesTool backed by the given file system.
func NewListFilesTool(fs *filesystem.FileSystem) *ListFilesTool {
	return &ListFilesTool{
		fs: fs,
	}
}

// Name returns the tool name.
func (t *ListFilesTool) Name() string {
	return "list_files"
}

// Description returns the tool description.
func (t *ListFilesTool) Description() string {
	return "List the names of all files in the file system, one per line, in sorted order."
}

// Schema returns the JSON schema for the tool's input parameters.
func (t *ListFilesTool) Schema() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}
}

// Execute returns the sorted file names, one per line.
func (t *ListFilesTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	names := t.fs.ListFiles()

	metadata := map[string]interface{}{
		"file_count": len(names),
	}

	return strings.Join(names, "\n"), metadata, nil
}

// Mutates returns false as this tool only reads the file system.
func (t *ListFilesTool) Mutates() bool {
	return false
}
