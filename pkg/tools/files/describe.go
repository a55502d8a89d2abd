package files

import (
	"context"

	"github.com/entrhq/scribe/pkg/filesystem"
)

// DescribeFilesTool summarizes every file in the agent file system: name,
// line count, and a content preview.
type DescribeFilesTool struct {
	fs *filesystem.FileSystem
}

// NewDescribeFilesTool creates a new DescribeFilesTool backed by the given
// file system.
func NewDescribeFilesTool(fs *filesystem.FileSystem) *DescribeFilesTool {
	return &DescribeFilesTool{
		fs: fs,
	}
}

// Name returns the tool name.
func (t *DescribeFilesTool) Name() string {
	return "describe_files"
}

// Description returns the tool description.
func (t *DescribeFilesTool) Description() string {
	return "Describe every file in the file system with its line count and a content preview. Long files show their head and tail."
}

// Schema returns the JSON schema for the tool's input parameters.
func (t *DescribeFilesTool) Schema() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}
}

// Execute returns the file system description.
func (t *DescribeFilesTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	description := t.fs.Describe()
	if description == "" {
		description = "The file system is empty."
	}

	metadata := map[string]interface{}{
		"file_count": t.fs.Len(),
	}

	return description, metadata, nil
}

// Mutates returns false as this tool only reads the file system.
func (t *DescribeFilesTool) Mutates() bool {
	return false
}
