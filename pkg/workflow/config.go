package workflow

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ExecutionMode determines whether a workflow may modify the file system.
type ExecutionMode string

const (
	// ModeReadOnly allows only non-mutating tools (read_file).
	ModeReadOnly ExecutionMode = "read-only"

	// ModeWrite allows all file tools.
	ModeWrite ExecutionMode = "write"
)

// Config holds the configuration for a workflow run.
type Config struct {
	// Task describes what the workflow is trying to accomplish.
	Task string `yaml:"task" json:"task"`

	// Mode controls whether file mutations are permitted.
	Mode ExecutionMode `yaml:"mode" json:"mode"`

	// WorkspaceDir is the directory holding the agent file system.
	WorkspaceDir string `yaml:"workspace_dir" json:"workspace_dir"`

	// Constraints bound what the workflow may do to the file system.
	Constraints ConstraintConfig `yaml:"constraints" json:"constraints"`

	// Artifacts controls run artifact generation.
	Artifacts ArtifactConfig `yaml:"artifacts" json:"artifacts"`

	// Logging controls log verbosity for the run.
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// ConstraintConfig defines the execution constraints for a run.
type ConstraintConfig struct {
	// MaxFiles limits how many distinct files may be created or modified.
	MaxFiles int `yaml:"max_files" json:"max_files"`

	// MaxLinesChanged limits the total lines added across all files.
	MaxLinesChanged int `yaml:"max_lines_changed" json:"max_lines_changed"`

	// AllowedPatterns restricts modifications to matching file names (glob).
	AllowedPatterns []string `yaml:"allowed_patterns" json:"allowed_patterns"`

	// DeniedPatterns blocks modifications to matching file names (glob).
	DeniedPatterns []string `yaml:"denied_patterns" json:"denied_patterns"`

	// AllowedTools restricts which tools may run. Empty means all tools.
	AllowedTools []string `yaml:"allowed_tools" json:"allowed_tools"`

	// MaxReadTokens limits the total tokens returned by read_file calls.
	MaxReadTokens int `yaml:"max_read_tokens" json:"max_read_tokens"`

	// Timeout is the maximum wall-clock duration for the run.
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
}

// ArtifactConfig controls the artifacts written after a run.
type ArtifactConfig struct {
	// Enabled turns artifact generation on or off.
	Enabled bool `yaml:"enabled" json:"enabled"`

	// OutputDir is where artifacts are written.
	OutputDir string `yaml:"output_dir" json:"output_dir"`
}

// LoggingConfig controls run logging.
type LoggingConfig struct {
	// Verbosity is one of: quiet, normal, verbose, debug.
	Verbosity string `yaml:"verbosity" json:"verbosity"`
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Task == "" {
		return fmt.Errorf("task description is required")
	}

	if c.Mode != ModeReadOnly && c.Mode != ModeWrite {
		return fmt.Errorf("invalid mode: %s (must be 'read-only' or 'write')", c.Mode)
	}

	if c.WorkspaceDir == "" {
		return fmt.Errorf("workspace directory is required")
	}

	if c.Constraints.MaxFiles < 0 {
		return fmt.Errorf("max_files cannot be negative")
	}

	if c.Constraints.MaxLinesChanged < 0 {
		return fmt.Errorf("max_lines_changed cannot be negative")
	}

	if c.Constraints.MaxReadTokens < 0 {
		return fmt.Errorf("max_read_tokens cannot be negative")
	}

	if c.Constraints.Timeout < 0 {
		return fmt.Errorf("timeout cannot be negative")
	}

	switch c.Logging.Verbosity {
	case "", "quiet", "normal", "verbose", "debug":
	default:
		return fmt.Errorf("invalid verbosity: %s (must be 'quiet', 'normal', 'verbose', or 'debug')", c.Logging.Verbosity)
	}

	return nil
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Mode:         ModeWrite,
		WorkspaceDir: ".",
		Constraints: ConstraintConfig{
			MaxFiles:        10,
			MaxLinesChanged: 500,
			MaxReadTokens:   50000,
			Timeout:         5 * time.Minute,
		},
		Artifacts: ArtifactConfig{
			Enabled:   true,
			OutputDir: ".scribe/artifacts",
		},
		Logging: LoggingConfig{
			Verbosity: "normal",
		},
	}
}

// LoadConfig reads a YAML configuration file, applying defaults for
// fields the file does not set.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}
