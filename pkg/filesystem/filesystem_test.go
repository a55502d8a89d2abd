package filesystem

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Helper functions

func setupTestDir(t *testing.T) (string, func()) {
	t.Helper()
	tmpDir, err := os.MkdirTemp("", "filesystem_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	return tmpDir, func() { os.RemoveAll(tmpDir) }
}

func newTestFS(t *testing.T, baseDir string) *FileSystem {
	t.Helper()
	fs, err := NewFileSystem(baseDir)
	if err != nil {
		t.Fatalf("Failed to create file system: %v", err)
	}
	return fs
}

func TestNewFileSystem(t *testing.T) {
	tmpDir, cleanup := setupTestDir(t)
	defer cleanup()

	fs := newTestFS(t, tmpDir)

	// Data directory exists
	info, err := os.Stat(fs.DataDir())
	if err != nil {
		t.Fatalf("Data directory not created: %v", err)
	}
	if !info.IsDir() {
		t.Error("Expected data dir to be a directory")
	}
	if filepath.Base(fs.DataDir()) != DataDirName {
		t.Errorf("Expected data dir named %q, got %q", DataDirName, filepath.Base(fs.DataDir()))
	}

	// Default todo file is seeded in memory and on disk
	if !fs.FileExists(DefaultTodoFile) {
		t.Error("Expected default todo.md to exist")
	}
	if _, err := os.Stat(filepath.Join(fs.DataDir(), DefaultTodoFile)); err != nil {
		t.Errorf("Expected todo.md on disk: %v", err)
	}
	if fs.Len() != 1 {
		t.Errorf("Expected 1 file, got %d", fs.Len())
	}
}

func TestNewFileSystem_EmptyBaseDir(t *testing.T) {
	if _, err := NewFileSystem(""); err == nil {
		t.Error("Expected error for empty base directory")
	}
}

func TestWriteFile(t *testing.T) {
	tmpDir, cleanup := setupTestDir(t)
	defer cleanup()

	fs := newTestFS(t, tmpDir)

	msg, err := fs.WriteFile("collection_log.txt", "Starting collection\n")
	if err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if msg != "Data written to file collection_log.txt successfully." {
		t.Errorf("Unexpected message: %q", msg)
	}

	// In-memory content
	content, err := fs.ReadFile("collection_log.txt")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if content != "Starting collection\n" {
		t.Errorf("Unexpected content: %q", content)
	}

	// On-disk content
	data, err := os.ReadFile(filepath.Join(fs.DataDir(), "collection_log.txt"))
	if err != nil {
		t.Fatalf("Failed to read file from disk: %v", err)
	}
	if string(data) != "Starting collection\n" {
		t.Errorf("Unexpected disk content: %q", string(data))
	}
}

func TestWriteFile_Overwrite(t *testing.T) {
	tmpDir, cleanup := setupTestDir(t)
	defer cleanup()

	fs := newTestFS(t, tmpDir)

	if _, err := fs.WriteFile("notes.md", "first"); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := fs.WriteFile("notes.md", "second"); err != nil {
		t.Fatalf("Overwrite failed: %v", err)
	}

	content, err := fs.ReadFile("notes.md")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if content != "second" {
		t.Errorf("Expected overwritten content, got %q", content)
	}
}

func TestWriteFile_InvalidNames(t *testing.T) {
	tmpDir, cleanup := setupTestDir(t)
	defer cleanup()

	fs := newTestFS(t, tmpDir)

	tests := []string{
		"no_extension",
		"bad.exe",
		"has space.txt",
		"../escape.txt",
		"nested/path.txt",
		".txt",
		"",
	}

	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := fs.WriteFile(name, "content")
			if !errors.Is(err, ErrInvalidFilename) {
				t.Errorf("Expected ErrInvalidFilename for %q, got %v", name, err)
			}
		})
	}
}

func TestAppendFile(t *testing.T) {
	tmpDir, cleanup := setupTestDir(t)
	defer cleanup()

	fs := newTestFS(t, tmpDir)

	if _, err := fs.WriteFile("collection_log.txt", "entry 1\n"); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	msg, err := fs.AppendFile("collection_log.txt", "entry 2\n")
	if err != nil {
		t.Fatalf("AppendFile failed: %v", err)
	}
	if msg != "Data appended to file collection_log.txt successfully." {
		t.Errorf("Unexpected message: %q", msg)
	}

	content, err := fs.ReadFile("collection_log.txt")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if content != "entry 1\nentry 2\n" {
		t.Errorf("Unexpected content: %q", content)
	}
}

func TestAppendFile_MissingFile(t *testing.T) {
	tmpDir, cleanup := setupTestDir(t)
	defer cleanup()

	fs := newTestFS(t, tmpDir)

	_, err := fs.AppendFile("missing.txt", "content")
	if !errors.Is(err, ErrFileNotFound) {
		t.Errorf("Expected ErrFileNotFound, got %v", err)
	}
}

func TestReadFile_MissingFile(t *testing.T) {
	tmpDir, cleanup := setupTestDir(t)
	defer cleanup()

	fs := newTestFS(t, tmpDir)

	_, err := fs.ReadFile("missing.json")
	if !errors.Is(err, ErrFileNotFound) {
		t.Errorf("Expected ErrFileNotFound, got %v", err)
	}
}

func TestReplaceFileStr(t *testing.T) {
	tmpDir, cleanup := setupTestDir(t)
	defer cleanup()

	fs := newTestFS(t, tmpDir)

	if _, err := fs.WriteFile("report.md", "Status: pending\nNext: pending review"); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	msg, err := fs.ReplaceFileStr("report.md", "pending", "complete")
	if err != nil {
		t.Fatalf("ReplaceFileStr failed: %v", err)
	}
	if !strings.Contains(msg, "replaced 2 occurrence(s)") {
		t.Errorf("Expected replacement count in message, got %q", msg)
	}

	content, err := fs.ReadFile("report.md")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if content != "Status: complete\nNext: complete review" {
		t.Errorf("Unexpected content: %q", content)
	}
}

func TestReplaceFileStr_Errors(t *testing.T) {
	tmpDir, cleanup := setupTestDir(t)
	defer cleanup()

	fs := newTestFS(t, tmpDir)

	if _, err := fs.WriteFile("report.md", "hello"); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := fs.ReplaceFileStr("missing.md", "a", "b")
		if !errors.Is(err, ErrFileNotFound) {
			t.Errorf("Expected ErrFileNotFound, got %v", err)
		}
	})

	t.Run("empty search string", func(t *testing.T) {
		_, err := fs.ReplaceFileStr("report.md", "", "b")
		if !errors.Is(err, ErrEmptySearchString) {
			t.Errorf("Expected ErrEmptySearchString, got %v", err)
		}
	})

	t.Run("string not found", func(t *testing.T) {
		_, err := fs.ReplaceFileStr("report.md", "absent", "b")
		if !errors.Is(err, ErrStringNotFound) {
			t.Errorf("Expected ErrStringNotFound, got %v", err)
		}
	})
}

func TestSaveExtractedContent(t *testing.T) {
	tmpDir, cleanup := setupTestDir(t)
	defer cleanup()

	fs := newTestFS(t, tmpDir)

	name, err := fs.SaveExtractedContent("# Page excerpt\n\nSome text")
	if err != nil {
		t.Fatalf("SaveExtractedContent failed: %v", err)
	}
	if name != "extracted_content_0.md" {
		t.Errorf("Expected extracted_content_0.md, got %q", name)
	}

	name, err = fs.SaveExtractedContent("more text")
	if err != nil {
		t.Fatalf("Second SaveExtractedContent failed: %v", err)
	}
	if name != "extracted_content_1.md" {
		t.Errorf("Expected incremented extracted file name, got %q", name)
	}

	if !fs.FileExists("extracted_content_0.md") || !fs.FileExists("extracted_content_1.md") {
		t.Error("Expected both extracted content files to exist")
	}
}

func TestListFiles(t *testing.T) {
	tmpDir, cleanup := setupTestDir(t)
	defer cleanup()

	fs := newTestFS(t, tmpDir)

	if _, err := fs.WriteFile("b_data.json", "{}"); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := fs.WriteFile("a_log.txt", "entry"); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	names := fs.ListFiles()
	want := []string{"a_log.txt", "b_data.json", DefaultTodoFile}
	if len(names) != len(want) {
		t.Fatalf("Expected %d files, got %d: %v", len(want), len(names), names)
	}
	for i, name := range want {
		if names[i] != name {
			t.Errorf("Expected names[%d]=%q, got %q", i, name, names[i])
		}
	}
}

func TestHasContent(t *testing.T) {
	tmpDir, cleanup := setupTestDir(t)
	defer cleanup()

	fs := newTestFS(t, tmpDir)

	// Fresh file system: only an empty todo, no content.
	if fs.HasContent() {
		t.Error("Expected no content for fresh file system")
	}

	if _, err := fs.WriteFile(DefaultTodoFile, "- [ ] collect data"); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if !fs.HasContent() {
		t.Error("Expected content after writing to todo")
	}

	// Reset todo, add a real file instead.
	fs2 := newTestFS(t, t.TempDir())
	if _, err := fs2.WriteFile("data.csv", "a,b"); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if !fs2.HasContent() {
		t.Error("Expected content after creating a file")
	}
}

func TestTodoContents(t *testing.T) {
	tmpDir, cleanup := setupTestDir(t)
	defer cleanup()

	fs := newTestFS(t, tmpDir)

	if fs.TodoContents() != "" {
		t.Errorf("Expected empty todo, got %q", fs.TodoContents())
	}

	if _, err := fs.WriteFile(DefaultTodoFile, "- [x] setup"); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if fs.TodoContents() != "- [x] setup" {
		t.Errorf("Unexpected todo contents: %q", fs.TodoContents())
	}
}

func TestNuke(t *testing.T) {
	tmpDir, cleanup := setupTestDir(t)
	defer cleanup()

	fs := newTestFS(t, tmpDir)

	if _, err := fs.WriteFile("data.json", "{}"); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if err := fs.Nuke(); err != nil {
		t.Fatalf("Nuke failed: %v", err)
	}

	if _, err := os.Stat(fs.DataDir()); !os.IsNotExist(err) {
		t.Error("Expected data directory to be removed")
	}
	if fs.Len() != 0 {
		t.Errorf("Expected no files after nuke, got %d", fs.Len())
	}
}

func TestAtomicWrite_NoTempFilesLeft(t *testing.T) {
	tmpDir, cleanup := setupTestDir(t)
	defer cleanup()

	fs := newTestFS(t, tmpDir)

	if _, err := fs.WriteFile("data.csv", "col1,col2\n1,2\n"); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	entries, err := os.ReadDir(fs.DataDir())
	if err != nil {
		t.Fatalf("Failed to read data dir: %v", err)
	}
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".tmp") {
			t.Errorf("Found temporary file after write: %s", entry.Name())
		}
	}
}
