package workflow

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/entrhq/scribe/pkg/agent/tools"
	"github.com/gobwas/glob"
)

// ViolationType identifies the kind of constraint that was violated.
type ViolationType string

const (
	ViolationFileCount       ViolationType = "file_count"       // Too many files modified
	ViolationLineCount       ViolationType = "line_count"       // Too many lines changed
	ViolationFilePattern     ViolationType = "file_pattern"     // File name not allowed by patterns
	ViolationToolRestriction ViolationType = "tool_restriction" // Tool not in allowed list
	ViolationTokenLimit      ViolationType = "token_limit"      // Read token budget exceeded
	ViolationTimeout         ViolationType = "timeout"          // Run exceeded its time limit
	ViolationReadOnlyMode    ViolationType = "read_only_mode"   // Mutation attempted in read-only mode
)

// ConstraintViolation is returned when an operation would breach a
// configured constraint.
type ConstraintViolation struct {
	Details map[string]interface{}
	Message string
	Type    ViolationType
}

func (v *ConstraintViolation) Error() string {
	return fmt.Sprintf("constraint violation (%s): %s", v.Type, v.Message)
}

// FileModification tracks line changes to a single file during a run.
type FileModification struct {
	Name         string
	LinesAdded   int
	LinesRemoved int
}

// ConstraintState is a snapshot of resource usage during a run.
type ConstraintState struct {
	FilesModified     map[string]*FileModification
	TotalFiles        int
	TotalLinesAdded   int
	TotalLinesRemoved int
	TokensRead        int
	Elapsed           time.Duration
}

// ConstraintManager enforces the configured execution constraints for a
// workflow run. All methods are safe for concurrent use.
type ConstraintManager struct {
	config         *ConstraintConfig
	patternMatcher *PatternMatcher
	filesModified  map[string]*FileModification
	startTime      time.Time
	mode           ExecutionMode
	tokensRead     int
	mu             sync.Mutex
}

// NewConstraintManager creates a constraint manager for the given
// configuration and execution mode.
func NewConstraintManager(config *ConstraintConfig, mode ExecutionMode) (*ConstraintManager, error) {
	matcher, err := NewPatternMatcher(config.AllowedPatterns, config.DeniedPatterns)
	if err != nil {
		return nil, err
	}

	return &ConstraintManager{
		config:         config,
		mode:           mode,
		filesModified:  make(map[string]*FileModification),
		startTime:      time.Now(),
		patternMatcher: matcher,
	}, nil
}

// ValidateTool checks whether a tool invocation is permitted. Tools that
// do not mutate the file system are always allowed.
func (cm *ConstraintManager) ValidateTool(tool tools.Tool, input map[string]interface{}) error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if !tool.Mutates() {
		return nil
	}

	if cm.mode == ModeReadOnly {
		return &ConstraintViolation{
			Type:    ViolationReadOnlyMode,
			Message: fmt.Sprintf("tool '%s' modifies files but execution mode is read-only", tool.Name()),
			Details: map[string]interface{}{
				"tool": tool.Name(),
				"mode": string(cm.mode),
			},
		}
	}

	if len(cm.config.AllowedTools) > 0 {
		allowed := false
		for _, name := range cm.config.AllowedTools {
			if name == tool.Name() {
				allowed = true
				break
			}
		}
		if !allowed {
			return &ConstraintViolation{
				Type:    ViolationToolRestriction,
				Message: fmt.Sprintf("tool '%s' is not in the allowed tools list", tool.Name()),
				Details: map[string]interface{}{
					"tool":          tool.Name(),
					"allowed_tools": cm.config.AllowedTools,
				},
			}
		}
	}

	if name := extractFileName(input); name != "" {
		if !cm.patternMatcher.IsAllowed(name) {
			return &ConstraintViolation{
				Type:    ViolationFilePattern,
				Message: fmt.Sprintf("file '%s' is not allowed by the configured patterns", name),
				Details: map[string]interface{}{
					"file":             name,
					"allowed_patterns": cm.config.AllowedPatterns,
					"denied_patterns":  cm.config.DeniedPatterns,
				},
			}
		}
	}

	return nil
}

// RecordFileModification records line changes to a file and checks the
// file count and line count limits. The modification is recorded even
// when the line limit check fails, so state reflects what happened.
func (cm *ConstraintManager) RecordFileModification(name string, linesAdded, linesRemoved int) error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if _, tracked := cm.filesModified[name]; !tracked {
		if cm.config.MaxFiles > 0 && len(cm.filesModified)+1 > cm.config.MaxFiles {
			return &ConstraintViolation{
				Type:    ViolationFileCount,
				Message: fmt.Sprintf("modifying '%s' would exceed the maximum of %d files", name, cm.config.MaxFiles),
				Details: map[string]interface{}{
					"file":      name,
					"max_files": cm.config.MaxFiles,
					"current":   len(cm.filesModified),
				},
			}
		}
		cm.filesModified[name] = &FileModification{Name: name}
	}

	mod := cm.filesModified[name]
	mod.LinesAdded += linesAdded
	mod.LinesRemoved += linesRemoved

	if cm.config.MaxLinesChanged > 0 {
		total := 0
		for _, m := range cm.filesModified {
			total += m.LinesAdded
		}
		if total > cm.config.MaxLinesChanged {
			return &ConstraintViolation{
				Type:    ViolationLineCount,
				Message: fmt.Sprintf("total lines added (%d) exceeds the maximum of %d", total, cm.config.MaxLinesChanged),
				Details: map[string]interface{}{
					"total_lines": total,
					"max_lines":   cm.config.MaxLinesChanged,
				},
			}
		}
	}

	return nil
}

// RecordTokenUsage adds tokens returned by a read to the running total
// and checks the read token budget.
func (cm *ConstraintManager) RecordTokenUsage(tokens int) error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	cm.tokensRead += tokens

	if cm.config.MaxReadTokens > 0 && cm.tokensRead > cm.config.MaxReadTokens {
		return &ConstraintViolation{
			Type:    ViolationTokenLimit,
			Message: fmt.Sprintf("read tokens (%d) exceed the maximum of %d", cm.tokensRead, cm.config.MaxReadTokens),
			Details: map[string]interface{}{
				"tokens_read": cm.tokensRead,
				"max_tokens":  cm.config.MaxReadTokens,
			},
		}
	}

	return nil
}

// CheckTimeout returns a violation if the run has exceeded its time limit.
func (cm *ConstraintManager) CheckTimeout() error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.config.Timeout <= 0 {
		return nil
	}

	elapsed := time.Since(cm.startTime)
	if elapsed > cm.config.Timeout {
		return &ConstraintViolation{
			Type:    ViolationTimeout,
			Message: fmt.Sprintf("run exceeded timeout of %s", cm.config.Timeout),
			Details: map[string]interface{}{
				"elapsed": elapsed.String(),
				"timeout": cm.config.Timeout.String(),
			},
		}
	}

	return nil
}

// GetCurrentState returns a snapshot of the current resource usage.
func (cm *ConstraintManager) GetCurrentState() *ConstraintState {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	files := make(map[string]*FileModification, len(cm.filesModified))
	totalAdded := 0
	totalRemoved := 0
	for name, mod := range cm.filesModified {
		copied := *mod
		files[name] = &copied
		totalAdded += mod.LinesAdded
		totalRemoved += mod.LinesRemoved
	}

	return &ConstraintState{
		FilesModified:     files,
		TotalFiles:        len(files),
		TotalLinesAdded:   totalAdded,
		TotalLinesRemoved: totalRemoved,
		TokensRead:        cm.tokensRead,
		Elapsed:           time.Since(cm.startTime),
	}
}

// extractFileName pulls the file_name argument from parsed tool input.
func extractFileName(input map[string]interface{}) string {
	if input == nil {
		return ""
	}
	if name, ok := input["file_name"].(string); ok {
		return name
	}
	return ""
}

// PatternMatcher matches file names against allowed and denied glob
// patterns. Denied patterns take precedence.
type PatternMatcher struct {
	allowedPatterns []glob.Glob
	deniedPatterns  []glob.Glob
}

// NewPatternMatcher compiles the given glob patterns.
func NewPatternMatcher(allowed, denied []string) (*PatternMatcher, error) {
	pm := &PatternMatcher{}

	for _, pattern := range allowed {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid allowed pattern '%s': %w", pattern, err)
		}
		pm.allowedPatterns = append(pm.allowedPatterns, g)
	}

	for _, pattern := range denied {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid denied pattern '%s': %w", pattern, err)
		}
		pm.deniedPatterns = append(pm.deniedPatterns, g)
	}

	return pm, nil
}

// IsAllowed reports whether a file name passes the configured patterns.
// An empty allowed list permits everything not explicitly denied.
func (pm *PatternMatcher) IsAllowed(name string) bool {
	clean := filepath.Clean(name)

	for _, g := range pm.deniedPatterns {
		if g.Match(clean) {
			return false
		}
	}

	if len(pm.allowedPatterns) == 0 {
		return true
	}

	for _, g := range pm.allowedPatterns {
		if g.Match(clean) {
			return true
		}
	}

	return false
}
