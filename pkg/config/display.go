package config

import (
	"fmt"
	"sync"
)

const (
	// SectionIDDisplay is the identifier for the display settings section
	SectionIDDisplay = "display"

	// Default values for display settings
	defaultPlainOutput    = false
	defaultHighlightStyle = "monokai"
	defaultCopyOnShow     = false
)

// DisplaySection manages terminal display settings.
type DisplaySection struct {
	PlainOutput    bool   `json:"plain_output"`
	HighlightStyle string `json:"highlight_style"`
	CopyOnShow     bool   `json:"copy_on_show"`
	mu             sync.RWMutex
}

// NewDisplaySection creates a display section with default settings.
func NewDisplaySection() *DisplaySection {
	return &DisplaySection{
		PlainOutput:    defaultPlainOutput,
		HighlightStyle: defaultHighlightStyle,
		CopyOnShow:     defaultCopyOnShow,
	}
}

// ID returns the section identifier.
func (s *DisplaySection) ID() string {
	return SectionIDDisplay
}

// Title returns the section title.
func (s *DisplaySection) Title() string {
	return "Display Settings"
}

// Description returns the section description.
func (s *DisplaySection) Description() string {
	return "Configure terminal output, syntax highlighting, and clipboard behavior."
}

// Data returns the current configuration data.
func (s *DisplaySection) Data() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"plain_output":    s.PlainOutput,
		"highlight_style": s.HighlightStyle,
		"copy_on_show":    s.CopyOnShow,
	}
}

// SetData updates the configuration from the provided data.
func (s *DisplaySection) SetData(data map[string]interface{}) error {
	if data == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, value := range data {
		switch key {
		case "plain_output":
			if plain, ok := value.(bool); ok {
				s.PlainOutput = plain
			} else {
				return fmt.Errorf("invalid value type for plain_output: expected bool, got %T", value)
			}

		case "highlight_style":
			if style, ok := value.(string); ok {
				s.HighlightStyle = style
			} else {
				return fmt.Errorf("invalid value type for highlight_style: expected string, got %T", value)
			}

		case "copy_on_show":
			if copyOnShow, ok := value.(bool); ok {
				s.CopyOnShow = copyOnShow
			} else {
				return fmt.Errorf("invalid value type for copy_on_show: expected bool, got %T", value)
			}

		default:
			// Ignore unknown keys for forward compatibility
			continue
		}
	}

	return nil
}

// Validate validates the current configuration.
func (s *DisplaySection) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.HighlightStyle == "" {
		return fmt.Errorf("highlight_style cannot be empty")
	}

	return nil
}

// Reset resets the section to default configuration.
func (s *DisplaySection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.PlainOutput = defaultPlainOutput
	s.HighlightStyle = defaultHighlightStyle
	s.CopyOnShow = defaultCopyOnShow
}

// GetPlainOutput returns whether plain output is forced.
func (s *DisplaySection) GetPlainOutput() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.PlainOutput
}

// GetHighlightStyle returns the syntax highlighting style name.
func (s *DisplaySection) GetHighlightStyle() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.HighlightStyle
}

// GetCopyOnShow returns whether shown files are copied to the clipboard.
func (s *DisplaySection) GetCopyOnShow() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.CopyOnShow
}

// SetPlainOutput sets whether plain output is forced.
func (s *DisplaySection) SetPlainOutput(plain bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.PlainOutput = plain
}
