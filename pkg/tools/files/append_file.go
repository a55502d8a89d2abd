package files

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/entrhq/scribe/pkg/agent/tools"
	"github.com/entrhq/scribe/pkg/filesystem"
)

// AppendFileTool appends content to an existing file in the agent file system.
type AppendFileTool struct {
	fs *filesystem.FileSystem
}

// NewAppendFileTool creates a new AppendFileTool backed by the given file system.
func NewAppendFileTool(fs *filesystem.FileSystem) *AppendFileTool {
	return &AppendFileTool{
		fs: fs,
	}
}

// Name returns the tool name.
func (t *AppendFileTool) Name() string {
	return "append_file"
}

// Description returns the tool description.
func (t *AppendFileTool) Description() string {
	return "Append content to file_name in the file system. The file must already exist. Appending to a .csv file starts the new content on its own row."
}

// Schema returns the JSON schema for the tool's input parameters.
func (t *AppendFileTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"file_name": map[string]interface{}{
				"type":        "string",
				"description": "Name of the file to append to, e.g. collection_log.txt",
			},
			"content": map[string]interface{}{
				"type":        "string",
				"description": "Content to append to the file",
			},
		},
		[]string{"file_name", "content"},
	)
}

// Execute appends content to the specified file.
func (t *AppendFileTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
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

	message, err := t.fs.AppendFile(input.FileName, input.Content)
	if err != nil {
		return "", nil, err
	}

	lineChanges := CalculateLineChanges("", input.Content)

	// Size after the append, so the metadata tracks file growth.
	sizeBytes := 0
	if content, readErr := t.fs.ReadFile(input.FileName); readErr == nil {
		sizeBytes = len(content)
	}

	metadata := map[string]interface{}{
		"file_name":   input.FileName,
		"lines_added": lineChanges.LinesAdded,
		"size_bytes":  sizeBytes,
	}

	return message, metadata, nil
}

// Mutates returns true as this tool modifies the file system.
func (t *AppendFileTool) Mutates() bool {
	return true
}
