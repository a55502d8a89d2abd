package workspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewGuard(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "newguard-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	tests := []struct {
		name         string
		workspaceDir string
		wantErr      bool
	}{
		{
			name:         "valid existing directory",
			workspaceDir: tmpDir,
			wantErr:      false,
		},
		{
			name:         "current directory",
			workspaceDir: ".",
			wantErr:      false,
		},
		{
			name:         "empty directory",
			workspaceDir: "",
			wantErr:      true,
		},
		{
			name:         "non-existent directory",
			workspaceDir: "/tmp/does-not-exist-12345",
			wantErr:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			guard, err := NewGuard(tt.workspaceDir)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewGuard() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && guard == nil {
				t.Error("NewGuard() returned nil guard without error")
			}
			if !tt.wantErr && guard.workspaceDir == "" {
				t.Error("NewGuard() created guard with empty workspace directory")
			}
		})
	}
}

func TestGuard_ValidatePath(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "workspace-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	guard, err := NewGuard(tmpDir)
	if err != nil {
		t.Fatalf("Failed to create guard: %v", err)
	}

	subDir := filepath.Join(guard.WorkspaceDir(), "subdir")
	if err := os.Mkdir(subDir, 0755); err != nil {
		t.Fatalf("Failed to create subdir: %v", err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{
			name:    "relative file in workspace",
			path:    "report.md",
			wantErr: false,
		},
		{
			name:    "relative file in subdirectory",
			path:    "subdir/data.json",
			wantErr: false,
		},
		{
			name:    "absolute path inside workspace",
			path:    filepath.Join(guard.WorkspaceDir(), "log.txt"),
			wantErr: false,
		},
		{
			name:    "workspace root itself",
			path:    guard.WorkspaceDir(),
			wantErr: false,
		},
		{
			name:    "empty path",
			path:    "",
			wantErr: true,
		},
		{
			name:    "parent traversal",
			path:    "../outside.txt",
			wantErr: true,
		},
		{
			name:    "deep traversal",
			path:    "subdir/../../outside.txt",
			wantErr: true,
		},
		{
			name:    "absolute path outside workspace",
			path:    "/etc/passwd",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := guard.ValidatePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestGuard_ResolvePath(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "resolve-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	guard, err := NewGuard(tmpDir)
	if err != nil {
		t.Fatalf("Failed to create guard: %v", err)
	}

	t.Run("relative path joins workspace", func(t *testing.T) {
		resolved, err := guard.ResolvePath("notes.md")
		if err != nil {
			t.Fatalf("ResolvePath failed: %v", err)
		}
		want := filepath.Join(guard.WorkspaceDir(), "notes.md")
		if resolved != want {
			t.Errorf("Expected %q, got %q", want, resolved)
		}
	})

	t.Run("non-existent file resolves through existing parent", func(t *testing.T) {
		resolved, err := guard.ResolvePath("not-yet-written.csv")
		if err != nil {
			t.Fatalf("ResolvePath failed: %v", err)
		}
		if !strings.HasPrefix(resolved, guard.WorkspaceDir()) {
			t.Errorf("Expected resolved path under workspace, got %q", resolved)
		}
	})

	t.Run("tilde expansion", func(t *testing.T) {
		resolved, err := guard.ResolvePath("~/somefile.txt")
		if err != nil {
			t.Fatalf("ResolvePath failed: %v", err)
		}
		homeDir, err := os.UserHomeDir()
		if err != nil {
			t.Skipf("cannot determine home dir: %v", err)
		}
		evalHome, evalErr := filepath.EvalSymlinks(homeDir)
		if evalErr != nil {
			evalHome = homeDir
		}
		if !strings.HasPrefix(resolved, evalHome) {
			t.Errorf("Expected resolved path under home dir %q, got %q", evalHome, resolved)
		}
	})

	t.Run("empty path", func(t *testing.T) {
		if _, err := guard.ResolvePath(""); err == nil {
			t.Error("Expected error for empty path")
		}
	})
}

func TestGuard_SymlinkEscape(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "symlink-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	outsideDir, err := os.MkdirTemp("", "symlink-outside-*")
	if err != nil {
		t.Fatalf("Failed to create outside dir: %v", err)
	}
	defer os.RemoveAll(outsideDir)

	guard, err := NewGuard(tmpDir)
	if err != nil {
		t.Fatalf("Failed to create guard: %v", err)
	}

	// A symlink inside the workspace pointing outside must not validate.
	linkPath := filepath.Join(guard.WorkspaceDir(), "escape")
	if err := os.Symlink(outsideDir, linkPath); err != nil {
		t.Skipf("cannot create symlink: %v", err)
	}

	if err := guard.ValidatePath("escape/secret.txt"); err == nil {
		t.Error("Expected error for path through symlink escaping workspace")
	}
}

func TestGuard_MakeRelative(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "relative-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	guard, err := NewGuard(tmpDir)
	if err != nil {
		t.Fatalf("Failed to create guard: %v", err)
	}

	t.Run("path inside workspace", func(t *testing.T) {
		absPath := filepath.Join(guard.WorkspaceDir(), "data", "products.csv")
		rel, err := guard.MakeRelative(absPath)
		if err != nil {
			t.Fatalf("MakeRelative failed: %v", err)
		}
		if rel != filepath.Join("data", "products.csv") {
			t.Errorf("Expected 'data/products.csv', got %q", rel)
		}
	})

	t.Run("path outside workspace", func(t *testing.T) {
		if _, err := guard.MakeRelative("/etc/passwd"); err == nil {
			t.Error("Expected error for path outside workspace")
		}
	})
}
