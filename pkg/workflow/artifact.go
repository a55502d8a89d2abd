package workflow

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// StepResult records the outcome of a single workflow step.
type StepResult struct {
	Name     string        `json:"name"`
	Status   string        `json:"status"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration"`
}

// RunMetrics aggregates resource usage for a run.
type RunMetrics struct {
	Steps          int `json:"steps"`
	StepsCompleted int `json:"steps_completed"`
	ToolCalls      int `json:"tool_calls"`
	FilesWritten   int `json:"files_written"`
	LinesAdded     int `json:"lines_added"`
	LinesRemoved   int `json:"lines_removed"`
	TokensRead     int `json:"tokens_read"`
}

// RunSummary describes a completed workflow run.
type RunSummary struct {
	RunID        string             `json:"run_id"`
	Workflow     string             `json:"workflow"`
	Task         string             `json:"task"`
	Status       string             `json:"status"`
	Error        string             `json:"error,omitempty"`
	StartTime    time.Time          `json:"start_time"`
	EndTime      time.Time          `json:"end_time"`
	Duration     time.Duration      `json:"duration"`
	Steps        []StepResult       `json:"steps"`
	FilesWritten []FileModification `json:"files_written"`
	Metrics      RunMetrics         `json:"metrics"`
}

// ArtifactWriter writes run artifacts to an output directory.
type ArtifactWriter struct {
	outputDir string
}

// NewArtifactWriter creates an artifact writer for the given directory.
func NewArtifactWriter(outputDir string) *ArtifactWriter {
	return &ArtifactWriter{outputDir: outputDir}
}

// WriteAll writes the run JSON, markdown summary, and metrics artifacts.
func (w *ArtifactWriter) WriteAll(summary *RunSummary) error {
	if err := os.MkdirAll(w.outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create artifact directory: %w", err)
	}

	if err := w.WriteRunJSON(summary); err != nil {
		return err
	}

	if err := w.WriteSummaryMarkdown(summary); err != nil {
		return err
	}

	return w.WriteMetricsJSON(summary)
}

// WriteRunJSON writes the full run summary as execution.json.
func (w *ArtifactWriter) WriteRunJSON(summary *RunSummary) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run summary: %w", err)
	}

	path := filepath.Join(w.outputDir, "execution.json")
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write execution.json: %w", err)
	}

	return nil
}

// WriteSummaryMarkdown writes a human-readable summary as summary.md.
func (w *ArtifactWriter) WriteSummaryMarkdown(summary *RunSummary) error {
	var sb strings.Builder

	sb.WriteString("# Workflow Execution Summary\n\n")
	sb.WriteString(fmt.Sprintf("**Workflow:** %s\n\n", summary.Workflow))
	sb.WriteString(fmt.Sprintf("**Task:** %s\n\n", summary.Task))
	sb.WriteString(fmt.Sprintf("**Run ID:** %s\n\n", summary.RunID))
	sb.WriteString(fmt.Sprintf("**Started:** %s\n\n", summary.StartTime.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("**Completed:** %s\n\n", summary.EndTime.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("**Duration:** %s\n\n", summary.Duration.Round(time.Millisecond)))

	sb.WriteString("## Result\n\n")
	if summary.Error != "" {
		sb.WriteString(fmt.Sprintf("❌ Failed: %s\n\n", summary.Error))
	} else {
		sb.WriteString("✅ Completed successfully\n\n")
	}

	if len(summary.Steps) > 0 {
		sb.WriteString("## Steps\n\n")
		for _, step := range summary.Steps {
			if step.Error != "" {
				sb.WriteString(fmt.Sprintf("- ❌ `%s`: %s\n", step.Name, step.Error))
			} else {
				sb.WriteString(fmt.Sprintf("- ✅ `%s` (%s)\n", step.Name, step.Duration.Round(time.Millisecond)))
			}
		}
		sb.WriteString("\n")
	}

	if len(summary.FilesWritten) > 0 {
		sb.WriteString("## Files Written\n\n")
		for _, mod := range summary.FilesWritten {
			sb.WriteString(fmt.Sprintf("- `%s` (+%d/-%d lines)\n", mod.Name, mod.LinesAdded, mod.LinesRemoved))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Metrics\n\n")
	sb.WriteString(fmt.Sprintf("- Steps completed: %d/%d\n", summary.Metrics.StepsCompleted, summary.Metrics.Steps))
	sb.WriteString(fmt.Sprintf("- Tool calls: %d\n", summary.Metrics.ToolCalls))
	sb.WriteString(fmt.Sprintf("- Files written: %d\n", summary.Metrics.FilesWritten))
	sb.WriteString(fmt.Sprintf("- Lines added: %d\n", summary.Metrics.LinesAdded))
	sb.WriteString(fmt.Sprintf("- Lines removed: %d\n", summary.Metrics.LinesRemoved))
	sb.WriteString(fmt.Sprintf("- Tokens read: %d\n", summary.Metrics.TokensRead))

	path := filepath.Join(w.outputDir, "summary.md")
	if err := os.WriteFile(path, []byte(sb.String()), 0600); err != nil {
		return fmt.Errorf("failed to write summary.md: %w", err)
	}

	return nil
}

// WriteMetricsJSON writes just the metrics as metrics.json.
func (w *ArtifactWriter) WriteMetricsJSON(summary *RunSummary) error {
	data, err := json.MarshalIndent(summary.Metrics, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal metrics: %w", err)
	}

	path := filepath.Join(w.outputDir, "metrics.json")
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write metrics.json: %w", err)
	}

	return nil
}
