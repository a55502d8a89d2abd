package config

import (
	"fmt"
	"sync"
)

const (
	// SectionIDDefaults is the identifier for the run defaults section
	SectionIDDefaults = "defaults"

	// Default values for run settings
	defaultWorkspace        = "."
	defaultMode             = "write"
	defaultArtifactsEnabled = true
)

// DefaultsSection holds the default run settings applied when CLI flags
// and workflow files leave them unset.
type DefaultsSection struct {
	Workspace        string `json:"workspace"`
	Mode             string `json:"mode"`
	ArtifactsEnabled bool   `json:"artifacts_enabled"`
	mu               sync.RWMutex
}

// NewDefaultsSection creates a defaults section with standard settings.
func NewDefaultsSection() *DefaultsSection {
	return &DefaultsSection{
		Workspace:        defaultWorkspace,
		Mode:             defaultMode,
		ArtifactsEnabled: defaultArtifactsEnabled,
	}
}

// ID returns the section identifier.
func (s *DefaultsSection) ID() string {
	return SectionIDDefaults
}

// Title returns the section title.
func (s *DefaultsSection) Title() string {
	return "Run Defaults"
}

// Description returns the section description.
func (s *DefaultsSection) Description() string {
	return "Default workspace, execution mode, and artifact settings for workflow runs."
}

// Data returns the current configuration data.
func (s *DefaultsSection) Data() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"workspace":         s.Workspace,
		"mode":              s.Mode,
		"artifacts_enabled": s.ArtifactsEnabled,
	}
}

// SetData updates the configuration from the provided data.
func (s *DefaultsSection) SetData(data map[string]interface{}) error {
	if data == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, value := range data {
		switch key {
		case "workspace":
			if workspace, ok := value.(string); ok {
				s.Workspace = workspace
			} else {
				return fmt.Errorf("invalid value type for workspace: expected string, got %T", value)
			}

		case "mode":
			if mode, ok := value.(string); ok {
				s.Mode = mode
			} else {
				return fmt.Errorf("invalid value type for mode: expected string, got %T", value)
			}

		case "artifacts_enabled":
			if enabled, ok := value.(bool); ok {
				s.ArtifactsEnabled = enabled
			} else {
				return fmt.Errorf("invalid value type for artifacts_enabled: expected bool, got %T", value)
			}

		default:
			// Ignore unknown keys for forward compatibility
			continue
		}
	}

	return nil
}

// Validate validates the current configuration.
func (s *DefaultsSection) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.Mode != "read-only" && s.Mode != "write" {
		return fmt.Errorf("mode must be 'read-only' or 'write', got %q", s.Mode)
	}

	if s.Workspace == "" {
		return fmt.Errorf("workspace cannot be empty")
	}

	return nil
}

// Reset resets the section to default configuration.
func (s *DefaultsSection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Workspace = defaultWorkspace
	s.Mode = defaultMode
	s.ArtifactsEnabled = defaultArtifactsEnabled
}

// GetWorkspace returns the default workspace directory.
func (s *DefaultsSection) GetWorkspace() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Workspace
}

// GetMode returns the default execution mode.
func (s *DefaultsSection) GetMode() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Mode
}

// GetArtifactsEnabled returns whether run artifacts are written by default.
func (s *DefaultsSection) GetArtifactsEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ArtifactsEnabled
}

// SetWorkspace sets the default workspace directory.
func (s *DefaultsSection) SetWorkspace(workspace string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Workspace = workspace
}
