package files

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/entrhq/scribe/pkg/agent/tools"
	"github.com/entrhq/scribe/pkg/filesystem"
)

// SaveExtractedContentTool stores page content in an auto-named markdown
// file so agents never have to invent filenames for raw extractions.
type SaveExtractedContentTool struct {
	fs *filesystem.FileSystem
}

// NewSaveExtractedContentTool creates a new SaveExtractedContentTool backed
// by the given file system.
func NewSaveExtractedContentTool(fs *filesystem.FileSystem) *SaveExtractedContentTool {
	return &SaveExtractedContentTool{
		fs: fs,
	}
}

// Name returns the tool name.
func (t *SaveExtractedContentTool) Name() string {
	return "save_extracted_content"
}

// Description returns the tool description.
func (t *SaveExtractedContentTool) Description() string {
	return "Save extracted page content to an automatically named markdown file (extracted_content_0.md, extracted_content_1.md, ...). Use this for raw content you want to keep without choosing a filename."
}

// Schema returns the JSON schema for the tool's input parameters.
func (t *SaveExtractedContentTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"content": map[string]interface{}{
				"type":        "string",
				"description": "Extracted content to save, in markdown",
			},
		},
		[]string{"content"},
	)
}

// Execute saves the content and returns the confirmation naming the file.
func (t *SaveExtractedContentTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var input struct {
		XMLName xml.Name `xml:"arguments"`
		Content string   `xml:"content"`
	}

	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return "", nil, fmt.Errorf("invalid arguments: %w", err)
	}

	if input.Content == "" {
		return "", nil, fmt.Errorf("missing required parameter: content")
	}

	name, err := t.fs.SaveExtractedContent(input.Content)
	if err != nil {
		return "", nil, err
	}

	lineChanges := CalculateLineChanges("", input.Content)

	metadata := map[string]interface{}{
		"file_name":     name,
		"lines_added":   lineChanges.LinesAdded,
		"lines_removed": 0,
		"size_bytes":    len(input.Content),
	}

	return fmt.Sprintf("Extracted content saved to file %s successfully.", name), metadata, nil
}

// Mutates returns true as this tool adds a file to the file system.
func (t *SaveExtractedContentTool) Mutates() bool {
	return true
}
