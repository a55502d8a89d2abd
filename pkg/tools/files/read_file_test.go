package files

import (
	"context"
	"testing"
)

func TestReadFileTool(t *testing.T) {
	fs, cleanup := setupTestFS(t)
	defer cleanup()

	tool := NewReadFileTool(fs)

	if _, err := fs.WriteFile("notes.md", "# Notes\n\nSome findings"); err != nil {
		t.Fatalf("Failed to seed file: %v", err)
	}

	t.Run("Name", func(t *testing.T) {
		if tool.Name() != "read_file" {
			t.Errorf("expected name 'read_file', got '%s'", tool.Name())
		}
	})

	t.Run("Mutates", func(t *testing.T) {
		if tool.Mutates() {
			t.Error("read_file should not be a mutating tool")
		}
	})

	t.Run("Execute_ReturnsContent", func(t *testing.T) {
		args := []byte(`<arguments><file_name>notes.md</file_name></arguments>`)
		result, metadata, err := tool.Execute(context.Background(), args)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result != "# Notes\n\nSome findings" {
			t.Errorf("unexpected content: %q", result)
		}
		if metadata["line_count"] != 3 {
			t.Errorf("expected 3 lines, got %v", metadata["line_count"])
		}
		if metadata["size_bytes"] != len("# Notes\n\nSome findings") {
			t.Errorf("unexpected size_bytes: %v", metadata["size_bytes"])
		}
		tokens, ok := metadata["token_count"].(int)
		if !ok || tokens <= 0 {
			t.Errorf("expected positive token_count, got %v", metadata["token_count"])
		}
	})

	t.Run("Execute_PDFReturnsMarkdownSource", func(t *testing.T) {
		if _, err := fs.WriteFile("report.pdf", "# Report"); err != nil {
			t.Fatalf("Failed to seed PDF: %v", err)
		}
		args := []byte(`<arguments><file_name>report.pdf</file_name></arguments>`)
		result, _, err := tool.Execute(context.Background(), args)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result != "# Report" {
			t.Errorf("expected markdown source, got %q", result)
		}
	})

	t.Run("Execute_MissingFile", func(t *testing.T) {
		args := []byte(`<arguments><file_name>absent.txt</file_name></arguments>`)
		_, _, err := tool.Execute(context.Background(), args)
		if err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("Execute_MissingFileName", func(t *testing.T) {
		_, _, err := tool.Execute(context.Background(), []byte(`<arguments></arguments>`))
		if err == nil {
			t.Error("expected error for missing file_name")
		}
	})
}
