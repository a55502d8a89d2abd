package filesystem

import (
	"fmt"
	"strings"
	"testing"
)

func TestDescribe_Empty(t *testing.T) {
	tmpDir, cleanup := setupTestDir(t)
	defer cleanup()

	fs := newTestFS(t, tmpDir)

	// Only the default todo exists, which is not described.
	if got := fs.Describe(); got != "" {
		t.Errorf("Expected empty description, got %q", got)
	}
}

func TestDescribe_SmallFile(t *testing.T) {
	tmpDir, cleanup := setupTestDir(t)
	defer cleanup()

	fs := newTestFS(t, tmpDir)

	if _, err := fs.WriteFile("log.txt", "line 1\nline 2\n"); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	got := fs.Describe()
	if !strings.Contains(got, "<file>") || !strings.Contains(got, "</file>") {
		t.Errorf("Expected file tags in description: %q", got)
	}
	if !strings.Contains(got, "log.txt - 3 lines") {
		t.Errorf("Expected name and line count in description: %q", got)
	}
	if !strings.Contains(got, "line 1\nline 2") {
		t.Errorf("Expected full content for small file: %q", got)
	}
	if strings.Contains(got, "more lines") {
		t.Errorf("Did not expect elision for small file: %q", got)
	}
}

func TestDescribe_SkipsTodo(t *testing.T) {
	tmpDir, cleanup := setupTestDir(t)
	defer cleanup()

	fs := newTestFS(t, tmpDir)

	if _, err := fs.WriteFile(DefaultTodoFile, "- [ ] a task"); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := fs.WriteFile("notes.txt", "something"); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	got := fs.Describe()
	if strings.Contains(got, DefaultTodoFile) {
		t.Errorf("Expected todo.md to be skipped: %q", got)
	}
	if !strings.Contains(got, "notes.txt") {
		t.Errorf("Expected notes.txt in description: %q", got)
	}
}

func TestDescribe_ElidesLongFiles(t *testing.T) {
	tmpDir, cleanup := setupTestDir(t)
	defer cleanup()

	fs := newTestFS(t, tmpDir)

	var sb strings.Builder
	for i := 1; i <= 100; i++ {
		fmt.Fprintf(&sb, "entry number %d with some padding text\n", i)
	}
	if _, err := fs.WriteFile("big_log.txt", sb.String()); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	got := fs.Describe()
	if !strings.Contains(got, "more lines") {
		t.Errorf("Expected elision marker for long file: %q", got)
	}
	// Head is preserved.
	if !strings.Contains(got, "entry number 1 ") {
		t.Errorf("Expected leading lines in preview: %q", got)
	}
	// Tail lines survive the elision.
	if !strings.Contains(got, "entry number 100") {
		t.Errorf("Expected trailing lines in preview: %q", got)
	}
}

func TestDescribe_MultipleFilesSorted(t *testing.T) {
	tmpDir, cleanup := setupTestDir(t)
	defer cleanup()

	fs := newTestFS(t, tmpDir)

	if _, err := fs.WriteFile("zebra.txt", "z"); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := fs.WriteFile("alpha.txt", "a"); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	got := fs.Describe()
	alphaIdx := strings.Index(got, "alpha.txt")
	zebraIdx := strings.Index(got, "zebra.txt")
	if alphaIdx == -1 || zebraIdx == -1 {
		t.Fatalf("Expected both files in description: %q", got)
	}
	if alphaIdx > zebraIdx {
		t.Error("Expected files described in sorted order")
	}
}
