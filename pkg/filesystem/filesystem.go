package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/entrhq/scribe/pkg/logging"
	"github.com/entrhq/scribe/pkg/security/workspace"
)

const (
	// DataDirName is the directory created under the base directory that
	// holds all agent files.
	DataDirName = "scribe_agent_data"

	// DefaultTodoFile is seeded into every new file system so agents can
	// track task progress from the first step.
	DefaultTodoFile = "todo.md"

	// stateFileName is the snapshot written next to the data directory
	// after every mutation. It preserves in-memory content (notably PDF
	// markdown source) across process restarts.
	stateFileName = ".scribe_state.json"
)

// FileSystem is a sandboxed collection of typed files rooted at a data
// directory. All mutations update the in-memory file first, then write
// through to disk atomically and snapshot the state file. Safe for
// concurrent use.
type FileSystem struct {
	baseDir        string
	dataDir        string
	guard          *workspace.Guard
	logger         *logging.Logger
	files          map[string]File
	extractedCount int
	mu             sync.RWMutex
}

// NewFileSystem creates a fresh file system under baseDir. The data
// directory is created if missing and a default todo.md is seeded. Existing
// files in the data directory are not loaded; use OpenFileSystem to resume a
// previous session.
func NewFileSystem(baseDir string) (*FileSystem, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("base directory cannot be empty")
	}

	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base directory: %w", err)
	}

	dataDir := filepath.Join(absBase, DataDirName)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	guard, err := workspace.NewGuard(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create workspace guard: %w", err)
	}

	logger, _ := logging.NewLogger("filesystem")

	fs := &FileSystem{
		baseDir: absBase,
		dataDir: dataDir,
		guard:   guard,
		logger:  logger,
		files:   make(map[string]File),
	}

	todo, err := NewFile(DefaultTodoFile, "")
	if err != nil {
		return nil, err
	}
	fs.files[DefaultTodoFile] = todo
	if err := fs.sync(todo); err != nil {
		return nil, err
	}

	return fs, nil
}

// BaseDir returns the absolute base directory containing the data directory.
func (fs *FileSystem) BaseDir() string {
	return fs.baseDir
}

// DataDir returns the absolute path of the data directory holding all files.
func (fs *FileSystem) DataDir() string {
	return fs.dataDir
}

// WriteFile creates or overwrites the named file with the given content and
// returns a confirmation message.
func (fs *FileSystem) WriteFile(name, content string) (string, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	file, exists := fs.files[name]
	if exists {
		file.SetContent(content)
	} else {
		var err error
		file, err = NewFile(name, content)
		if err != nil {
			return "", err
		}
		fs.files[name] = file
	}

	if err := fs.sync(file); err != nil {
		return "", err
	}
	fs.persistState()

	fs.logger.Debugf("wrote file %s (%d lines)", name, file.LineCount())
	return fmt.Sprintf("Data written to file %s successfully.", name), nil
}

// AppendFile appends content to an existing file and returns a confirmation
// message. The file must already exist.
func (fs *FileSystem) AppendFile(name, content string) (string, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	file, exists := fs.files[name]
	if !exists {
		return "", fmt.Errorf("%w: %s", ErrFileNotFound, name)
	}

	if err := file.Append(content); err != nil {
		return "", fmt.Errorf("failed to append to %s: %w", name, err)
	}

	if err := fs.sync(file); err != nil {
		return "", err
	}
	fs.persistState()

	fs.logger.Debugf("appended to file %s (%d lines)", name, file.LineCount())
	return fmt.Sprintf("Data appended to file %s successfully.", name), nil
}

// ReadFile returns the full content of the named file. For PDF files the
// markdown source is returned, not the rendered bytes.
func (fs *FileSystem) ReadFile(name string) (string, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	file, exists := fs.files[name]
	if !exists {
		return "", fmt.Errorf("%w: %s", ErrFileNotFound, name)
	}

	return file.Content(), nil
}

// ReplaceFileStr replaces all occurrences of old with new in the named file
// and returns a confirmation message including the replacement count.
func (fs *FileSystem) ReplaceFileStr(name, old, new string) (string, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	file, exists := fs.files[name]
	if !exists {
		return "", fmt.Errorf("%w: %s", ErrFileNotFound, name)
	}

	count, err := file.Replace(old, new)
	if err != nil {
		return "", fmt.Errorf("failed to replace in %s: %w", name, err)
	}

	if err := fs.sync(file); err != nil {
		return "", err
	}
	fs.persistState()

	fs.logger.Debugf("replaced %d occurrence(s) in file %s", count, name)
	return fmt.Sprintf("Successfully replaced %d occurrence(s) of %q with %q in file %s.", count, old, new, name), nil
}

// SaveExtractedContent stores content in an auto-named markdown file
// (extracted_content_0.md, extracted_content_1.md, ...) and returns the
// name of the created file.
func (fs *FileSystem) SaveExtractedContent(content string) (string, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	name := fmt.Sprintf("extracted_content_%d.md", fs.extractedCount)

	file, err := NewFile(name, content)
	if err != nil {
		return "", err
	}
	fs.files[name] = file
	fs.extractedCount++

	if err := fs.sync(file); err != nil {
		return "", err
	}
	fs.persistState()

	fs.logger.Debugf("saved extracted content to %s", name)
	return name, nil
}

// DisplayFile returns the content of the named file for display purposes.
func (fs *FileSystem) DisplayFile(name string) (string, error) {
	return fs.ReadFile(name)
}

// FileExists reports whether the named file exists.
func (fs *FileSystem) FileExists(name string) bool {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	_, exists := fs.files[name]
	return exists
}

// Len returns the number of files, including the default todo file.
func (fs *FileSystem) Len() int {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	return len(fs.files)
}

// ListFiles returns all filenames in sorted order.
func (fs *FileSystem) ListFiles() []string {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	return fs.sortedNames()
}

// TodoContents returns the content of the default todo file.
func (fs *FileSystem) TodoContents() string {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	todo, exists := fs.files[DefaultTodoFile]
	if !exists {
		return ""
	}
	return todo.Content()
}

// HasContent reports whether the file system holds any meaningful content:
// any file beyond the default todo, or a todo with non-empty content. Tool
// availability rules use this to hide read and replace operations on an
// empty workspace.
func (fs *FileSystem) HasContent() bool {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	if len(fs.files) == 0 {
		return false
	}

	if len(fs.files) == 1 {
		todo, exists := fs.files[DefaultTodoFile]
		if exists && strings.TrimSpace(todo.Content()) == "" {
			return false
		}
	}

	return true
}

// Nuke removes the data directory, the state snapshot, and all in-memory
// files. The file system is unusable afterwards.
func (fs *FileSystem) Nuke() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := os.RemoveAll(fs.dataDir); err != nil {
		return fmt.Errorf("failed to remove data directory: %w", err)
	}
	if err := os.Remove(filepath.Join(fs.baseDir, stateFileName)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove state file: %w", err)
	}

	fs.files = make(map[string]File)
	fs.logger.Infof("nuked file system at %s", fs.dataDir)
	return nil
}

// sortedNames returns all filenames in sorted order. Must be called with
// the lock held.
func (fs *FileSystem) sortedNames() []string {
	names := make([]string, 0, len(fs.files))
	for name := range fs.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// sync writes a file through to disk atomically. Must be called with the
// lock held.
func (fs *FileSystem) sync(file File) error {
	if err := fs.guard.ValidatePath(file.Name()); err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}

	absPath, err := fs.guard.ResolvePath(file.Name())
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	data, err := file.Bytes()
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", file.Name(), err)
	}

	if err := atomicWrite(absPath, data); err != nil {
		return fmt.Errorf("failed to sync %s: %w", file.Name(), err)
	}

	return nil
}

// atomicWrite writes data to path via a temporary file and rename, so
// readers never observe a partially written file.
func atomicWrite(path string, data []byte) error {
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}
