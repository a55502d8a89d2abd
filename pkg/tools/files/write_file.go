// Package files provides the file-system tools an agent uses during a
// workflow: write_file, append_file, read_file, replace_file_str,
// save_extracted_content, list_files, and describe_files. All tools operate
// on a sandboxed filesystem.FileSystem and are dispatched through XML tool
// calls.
package files

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/entrhq/scribe/pkg/agent/tools"
	"github.com/entrhq/scribe/pkg/filesystem"
)

// WriteFileTool creates or overwrites files in the agent file system.
type WriteFileTool struct {
	fs *filesystem.FileSystem
}

// NewWriteFileTool creates a new WriteFileTool backed by the given file system.
func NewWriteFileTool(fs *filesystem.FileSystem) *WriteFileTool {
	return &WriteFileTool{
		fs: fs,
	}
}

// Name returns the tool name.
func (t *WriteFileTool) Name() string {
	return "write_file"
}

// Description returns the tool description.
func (t *WriteFileTool) Description() string {
	return "Write content to file_name in the file system, creating it if it doesn't exist or overwriting if it does. Allowed extensions are .txt, .md, .json, .csv, and .pdf. For .pdf files, write the content in markdown format and it will be converted to a formatted PDF."
}

// Schema returns the JSON schema for the tool's input parameters.
func (t *WriteFileTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"file_name": map[string]interface{}{
				"type":        "string",
				"description": "Name of the file to write, e.g. results.md",
			},
			"content": map[string]interface{}{
				"type":        "string",
				"description": "Content to write to the file",
			},
		},
		[]string{"file_name", "content"},
	)
}

// Execute writes content to the specified file.
func (t *WriteFileTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var input struct {
		XMLName  xml.Name `xml:"arguments"`
		FileName string   `xml:"file_name"`
		Content  string   `xml:"content"`
	}

	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return "", nil, fmt.Errorf("invalid arguments: %w", err)
	}

	if input.FileName == "" {
		return "", nil, fmt.Errorf("missing required parameter: file_name")
	}

	// Capture old content so the metadata reflects the overwrite.
	fileExists := t.fs.FileExists(input.FileName)
	oldContent := ""
	if fileExists {
		oldContent, _ = t.fs.ReadFile(input.FileName)
	}

	message, err := t.fs.WriteFile(input.FileName, input.Content)
	if err != nil {
		return "", nil, err
	}

	lineChanges := CalculateLineChanges(oldContent, input.Content)

	metadata := map[string]interface{}{
		"file_name":     input.FileName,
		"file_exists":   fileExists,
		"lines_added":   lineChanges.LinesAdded,
		"lines_removed": lineChanges.LinesRemoved,
		"size_bytes":    len(input.Content),
	}

	return message, metadata, nil
}

// Mutates returns true as this tool modifies the file system.
func (t *WriteFileTool) Mutates() bool {
	return true
}
