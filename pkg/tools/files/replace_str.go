package files

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/entrhq/scribe/pkg/agent/tools"
	"github.com/entrhq/scribe/pkg/filesystem"
)

// ReplaceFileStrTool replaces occurrences of a string in an existing file.
type ReplaceFileStrTool struct {
	fs *filesystem.FileSystem
}

// NewReplaceFileStrTool creates a new ReplaceFileStrTool backed by the given file system.
func NewReplaceFileStrTool(fs *filesystem.FileSystem) *ReplaceFileStrTool {
	return &ReplaceFileStrTool{
		fs: fs,
	}
}

// Name returns the tool name.
func (t *ReplaceFileStrTool) Name() string {
	return "replace_file_str"
}

// Description returns the tool description.
func (t *ReplaceFileStrTool) Description() string {
	return "Replace every occurrence of old_str with new_str in file_name. old_str must exactly match text in the file, including whitespace."
}

// Schema returns the JSON schema for the tool's input parameters.
func (t *ReplaceFileStrTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"file_name": map[string]interface{}{
				"type":        "string",
				"description": "Name of the file to modify, e.g. report.md",
			},
			"old_str": map[string]interface{}{
				"type":        "string",
				"description": "Exact string to find in the file",
			},
			"new_str": map[string]interface{}{
				"type":        "string",
				"description": "Replacement string",
			},
		},
		[]string{"file_name", "old_str", "new_str"},
	)
}

// Execute replaces old_str with new_str in the specified file.
func (t *ReplaceFileStrTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var input struct {
		XMLName  xml.Name `xml:"arguments"`
		FileName string   `xml:"file_name"`
		OldStr   string   `xml:"old_str"`
		NewStr   string   `xml:"new_str"`
	}

	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return "", nil, fmt.Errorf("invalid arguments: %w", err)
	}

	if input.FileName == "" {
		return "", nil, fmt.Errorf("missing required parameter: file_name")
	}

	message, err := t.fs.ReplaceFileStr(input.FileName, input.OldStr, input.NewStr)
	if err != nil {
		return "", nil, err
	}

	metadata := map[string]interface{}{
		"file_name": input.FileName,
		"old_str":   input.OldStr,
		"new_str":   input.NewStr,
	}

	return message, metadata, nil
}

// Mutates returns true as this tool modifies the file system.
func (t *ReplaceFileStrTool) Mutates() bool {
	return true
}
