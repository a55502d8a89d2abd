package filesystem

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// State is a serializable snapshot of the file system. It captures every
// file's in-memory content keyed by name, which for PDF files is the
// markdown source that cannot be recovered from the rendered bytes on disk.
type State struct {
	Files                 map[string]string `json:"files"`
	ExtractedContentCount int               `json:"extracted_content_count"`
}

// State returns a snapshot of the current file system contents.
func (fs *FileSystem) State() *State {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	files := make(map[string]string, len(fs.files))
	for name, file := range fs.files {
		files[name] = file.Content()
	}

	return &State{
		Files:                 files,
		ExtractedContentCount: fs.extractedCount,
	}
}

// NewFileSystemFromState reconstructs a file system under baseDir from a
// state snapshot. Every file is recreated as its typed form and synced back
// to disk.
func NewFileSystemFromState(baseDir string, state *State) (*FileSystem, error) {
	if state == nil {
		return nil, fmt.Errorf("state cannot be nil")
	}

	fs, err := NewFileSystem(baseDir)
	if err != nil {
		return nil, err
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	for name, content := range state.Files {
		file, err := NewFile(name, content)
		if err != nil {
			return nil, fmt.Errorf("failed to restore %s: %w", name, err)
		}
		fs.files[name] = file
		if err := fs.sync(file); err != nil {
			return nil, err
		}
	}
	fs.extractedCount = state.ExtractedContentCount
	fs.persistState()

	return fs, nil
}

// OpenFileSystem resumes a previous session under baseDir when a state
// snapshot exists, and creates a fresh file system otherwise. This is how
// separate CLI invocations compose over the same workspace.
func OpenFileSystem(baseDir string) (*FileSystem, error) {
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base directory: %w", err)
	}

	data, err := os.ReadFile(filepath.Join(absBase, stateFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return NewFileSystem(absBase)
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse state file: %w", err)
	}

	return NewFileSystemFromState(absBase, &state)
}

// persistState snapshots the file system to the state file next to the data
// directory. Failures are logged rather than returned: the on-disk files
// remain the source of truth, the snapshot only preserves in-memory source
// across restarts. Must be called with the lock held.
func (fs *FileSystem) persistState() {
	files := make(map[string]string, len(fs.files))
	for name, file := range fs.files {
		files[name] = file.Content()
	}

	data, err := json.MarshalIndent(&State{
		Files:                 files,
		ExtractedContentCount: fs.extractedCount,
	}, "", "  ")
	if err != nil {
		fs.logger.Warnf("failed to marshal state: %v", err)
		return
	}

	path := filepath.Join(fs.baseDir, stateFileName)
	if err := atomicWrite(path, data); err != nil {
		fs.logger.Warnf("failed to persist state: %v", err)
	}
}
