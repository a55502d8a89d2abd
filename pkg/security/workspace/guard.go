// Package workspace enforces directory boundaries on file system operations.
// Scribe agents write every artifact into a dedicated data directory; the
// guard ensures no operation, however the path is spelled, escapes it.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Guard validates that file paths stay within a workspace directory. It
// resolves symlinks before comparing paths so a link inside the workspace
// cannot smuggle writes outside it.
type Guard struct {
	workspaceDir string // Absolute, symlink-resolved workspace root
}

// NewGuard creates a guard for the given directory. The directory must
// exist; its path is made absolute and symlink-resolved once so later
// checks compare against a stable root.
func NewGuard(workspaceDir string) (*Guard, error) {
	if workspaceDir == "" {
		return nil, fmt.Errorf("workspace directory cannot be empty")
	}

	absPath, err := filepath.Abs(workspaceDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve workspace directory: %w", err)
	}

	evalPath, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate workspace directory symlinks: %w", err)
	}

	return &Guard{workspaceDir: evalPath}, nil
}

// ValidatePath checks that the given path resolves to a location inside the
// workspace. Relative paths are interpreted relative to the workspace root.
func (g *Guard) ValidatePath(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}

	resolvedPath, err := g.ResolvePath(path)
	if err != nil {
		return err
	}

	if !g.IsWithinWorkspace(resolvedPath) {
		return fmt.Errorf("path '%s' is outside workspace boundaries", path)
	}

	return nil
}

// ResolvePath converts a path to an absolute, cleaned form within the
// workspace context. Supports tilde expansion for paths starting with ~/.
// The path does not need to exist yet; symlinks in existing parents are
// resolved so non-existent targets still validate consistently.
func (g *Guard) ResolvePath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("path cannot be empty")
	}

	expandedPath := path
	if strings.HasPrefix(path, "~/") || path == "~" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to expand ~: %w", err)
		}
		if path == "~" {
			expandedPath = homeDir
		} else {
			expandedPath = filepath.Join(homeDir, path[2:])
		}
	}

	cleanPath := filepath.Clean(expandedPath)

	var absPath string
	if filepath.IsAbs(cleanPath) {
		absPath = cleanPath
	} else {
		absPath = filepath.Join(g.workspaceDir, cleanPath)
	}

	return g.resolveSymlinks(filepath.Clean(absPath)), nil
}

// IsWithinWorkspace checks whether an absolute path is the workspace itself
// or a descendant of it, after resolving symlinks. This is the core boundary
// check.
func (g *Guard) IsWithinWorkspace(absPath string) bool {
	evalPath := g.resolveSymlinks(absPath)

	sep := string(filepath.Separator)
	return evalPath == g.workspaceDir ||
		strings.HasPrefix(evalPath+sep, g.workspaceDir+sep)
}

// resolveSymlinks resolves symlinks in a path. Non-existent paths are
// handled by walking up to the nearest existing parent, resolving that, and
// reattaching the remaining components.
func (g *Guard) resolveSymlinks(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}

	var components []string
	currentPath := path

	for {
		if resolved, err := filepath.EvalSymlinks(currentPath); err == nil {
			result := resolved
			for i := len(components) - 1; i >= 0; i-- {
				result = filepath.Join(result, components[i])
			}
			return result
		}

		dir := filepath.Dir(currentPath)
		if dir == currentPath || dir == "." || dir == "/" {
			return path
		}

		components = append(components, filepath.Base(currentPath))
		currentPath = dir
	}
}

// WorkspaceDir returns the absolute path of the workspace directory.
func (g *Guard) WorkspaceDir() string {
	return g.workspaceDir
}

// MakeRelative converts an absolute path to a path relative to the
// workspace. Returns an error if the path is not within the workspace.
func (g *Guard) MakeRelative(absPath string) (string, error) {
	if !g.IsWithinWorkspace(absPath) {
		return "", fmt.Errorf("path '%s' is not within workspace", absPath)
	}

	relPath, err := filepath.Rel(g.workspaceDir, g.resolveSymlinks(absPath))
	if err != nil {
		return "", fmt.Errorf("failed to make path relative: %w", err)
	}

	return relPath, nil
}
