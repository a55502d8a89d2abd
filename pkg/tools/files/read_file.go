package files

import (
	"context"
	"encoding/xml"
	"fmt"
	"sync"

	"github.com/pkoukk/tiktoken-go"

	"github.com/entrhq/scribe/pkg/agent/tools"
	"github.com/entrhq/scribe/pkg/filesystem"
)

// tokenEncoding is the BPE encoding used to estimate how much of an agent's
// context window a file occupies.
const tokenEncoding = "cl100k_base"

// ReadFileTool reads a file from the agent file system and reports token
// usage metadata so callers can budget context.
type ReadFileTool struct {
	fs *filesystem.FileSystem

	encoderOnce sync.Once
	encoder     *tiktoken.Tiktoken
}

// NewReadFileTool creates a new ReadFileTool backed by the given file system.
func NewReadFileTool(fs *filesystem.FileSystem) *ReadFileTool {
	return &ReadFileTool{
		fs: fs,
	}
}

// Name returns the tool name.
func (t *ReadFileTool) Name() string {
	return "read_file"
}

// Description returns the tool description.
func (t *ReadFileTool) Description() string {
	return "Read file_name from the file system. For .pdf files this returns the markdown source the PDF was rendered from."
}

// Schema returns the JSON schema for the tool's input parameters.
func (t *ReadFileTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"file_name": map[string]interface{}{
				"type":        "string",
				"description": "Name of the file to read, e.g. todo.md",
			},
		},
		[]string{"file_name"},
	)
}

// Execute reads the specified file and returns its content.
func (t *ReadFileTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var input struct {
		XMLName  xml.Name `xml:"arguments"`
		FileName string   `xml:"file_name"`
	}

	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return "", nil, fmt.Errorf("invalid arguments: %w", err)
	}

	if input.FileName == "" {
		return "", nil, fmt.Errorf("missing required parameter: file_name")
	}

	content, err := t.fs.ReadFile(input.FileName)
	if err != nil {
		return "", nil, err
	}

	metadata := map[string]interface{}{
		"file_name":   input.FileName,
		"line_count":  len(splitLines(content)),
		"size_bytes":  len(content),
		"token_count": t.countTokens(content),
	}

	return content, metadata, nil
}

// Mutates returns false as this tool only reads the file system.
func (t *ReadFileTool) Mutates() bool {
	return false
}

// countTokens counts BPE tokens in the content. The encoding tables are
// fetched on first use; when they are unavailable (for example offline) the
// count falls back to a bytes/4 estimate.
func (t *ReadFileTool) countTokens(content string) int {
	t.encoderOnce.Do(func() {
		encoder, err := tiktoken.GetEncoding(tokenEncoding)
		if err != nil {
			return
		}
		t.encoder = encoder
	})

	if t.encoder == nil {
		return len(content) / 4
	}
	return len(t.encoder.Encode(content, nil, nil))
}
