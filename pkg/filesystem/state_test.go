package filesystem

import (
	"os"
	"path/filepath"
	"testing"
)

func TestState_Roundtrip(t *testing.T) {
	tmpDir, cleanup := setupTestDir(t)
	defer cleanup()

	fs := newTestFS(t, tmpDir)

	if _, err := fs.WriteFile("data.json", `{"name": "laptop"}`); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := fs.WriteFile("report.pdf", "# Report\n\nBody"); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := fs.SaveExtractedContent("excerpt"); err != nil {
		t.Fatalf("SaveExtractedContent failed: %v", err)
	}

	state := fs.State()
	if len(state.Files) != 4 { // todo.md, data.json, report.pdf, extracted_content_0.md
		t.Fatalf("Expected 4 files in state, got %d", len(state.Files))
	}
	if state.ExtractedContentCount != 1 {
		t.Errorf("Expected extracted count 1, got %d", state.ExtractedContentCount)
	}

	restoreDir, restoreCleanup := setupTestDir(t)
	defer restoreCleanup()

	restored, err := NewFileSystemFromState(restoreDir, state)
	if err != nil {
		t.Fatalf("NewFileSystemFromState failed: %v", err)
	}

	content, err := restored.ReadFile("data.json")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if content != `{"name": "laptop"}` {
		t.Errorf("Unexpected restored content: %q", content)
	}

	// PDF files keep their markdown source through the roundtrip.
	content, err = restored.ReadFile("report.pdf")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if content != "# Report\n\nBody" {
		t.Errorf("Unexpected restored PDF source: %q", content)
	}

	// Counter continues from the restored value.
	name, err := restored.SaveExtractedContent("more")
	if err != nil {
		t.Fatalf("SaveExtractedContent failed: %v", err)
	}
	if name != "extracted_content_1.md" {
		t.Errorf("Expected counter to continue at 1, got %q", name)
	}
}

func TestOpenFileSystem_Fresh(t *testing.T) {
	tmpDir, cleanup := setupTestDir(t)
	defer cleanup()

	fs, err := OpenFileSystem(tmpDir)
	if err != nil {
		t.Fatalf("OpenFileSystem failed: %v", err)
	}
	if fs.Len() != 1 {
		t.Errorf("Expected fresh file system with only todo, got %d files", fs.Len())
	}
}

func TestOpenFileSystem_Resume(t *testing.T) {
	tmpDir, cleanup := setupTestDir(t)
	defer cleanup()

	fs := newTestFS(t, tmpDir)
	if _, err := fs.WriteFile("progress.txt", "step 1 done"); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	// A second open over the same base dir sees the persisted state.
	reopened, err := OpenFileSystem(tmpDir)
	if err != nil {
		t.Fatalf("OpenFileSystem failed: %v", err)
	}

	content, err := reopened.ReadFile("progress.txt")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if content != "step 1 done" {
		t.Errorf("Unexpected resumed content: %q", content)
	}
}

func TestStateFile_WrittenToBaseDir(t *testing.T) {
	tmpDir, cleanup := setupTestDir(t)
	defer cleanup()

	fs := newTestFS(t, tmpDir)
	if _, err := fs.WriteFile("data.txt", "x"); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	statePath := filepath.Join(fs.BaseDir(), stateFileName)
	if _, err := os.Stat(statePath); err != nil {
		t.Errorf("Expected state file at %s: %v", statePath, err)
	}
}

func TestNuke_RemovesStateFile(t *testing.T) {
	tmpDir, cleanup := setupTestDir(t)
	defer cleanup()

	fs := newTestFS(t, tmpDir)
	if _, err := fs.WriteFile("data.txt", "x"); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if err := fs.Nuke(); err != nil {
		t.Fatalf("Nuke failed: %v", err)
	}

	statePath := filepath.Join(fs.BaseDir(), stateFileName)
	if _, err := os.Stat(statePath); !os.IsNotExist(err) {
		t.Error("Expected state file to be removed by Nuke")
	}
}
