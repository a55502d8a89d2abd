package files

import (
	"context"
	"strings"
	"testing"
)

func TestSaveExtractedContentTool(t *testing.T) {
	fs, cleanup := setupTestFS(t)
	defer cleanup()

	tool := NewSaveExtractedContentTool(fs)

	t.Run("Name", func(t *testing.T) {
		if tool.Name() != "save_extracted_content" {
			t.Errorf("expected name 'save_extracted_content', got '%s'", tool.Name())
		}
	})

	t.Run("Mutates", func(t *testing.T) {
		if !tool.Mutates() {
			t.Error("save_extracted_content should be a mutating tool")
		}
	})

	t.Run("Execute_AutoNames", func(t *testing.T) {
		args := []byte(`<arguments><content># Page One</content></arguments>`)
		result, metadata, err := tool.Execute(context.Background(), args)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(result, "extracted_content_0.md") {
			t.Errorf("expected result to name extracted_content_0.md, got %q", result)
		}
		if metadata["lines_added"] != 1 {
			t.Errorf("expected 1 line added, got %v", metadata["lines_added"])
		}

		// A second extraction gets the next counter value.
		args = []byte(`<arguments><content># Page Two</content></arguments>`)
		result, _, err = tool.Execute(context.Background(), args)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(result, "extracted_content_1.md") {
			t.Errorf("expected result to name extracted_content_1.md, got %q", result)
		}

		content, err := fs.ReadFile("extracted_content_0.md")
		if err != nil {
			t.Fatalf("ReadFile failed: %v", err)
		}
		if content != "# Page One" {
			t.Errorf("unexpected content: %q", content)
		}
	})

	t.Run("Execute_MissingContent", func(t *testing.T) {
		args := []byte(`<arguments></arguments>`)
		_, _, err := tool.Execute(context.Background(), args)
		if err == nil {
			t.Error("expected error for missing content")
		}
	})
}
