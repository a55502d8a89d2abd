// Package workflow runs multi-step agent file workflows against a single
// agent file system. A workflow is an ordered list of named steps; the
// runner executes them in sequence, enforces the configured constraints,
// emits progress events, and writes run artifacts when it finishes.
package workflow

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/entrhq/scribe/pkg/filesystem"
	"github.com/entrhq/scribe/pkg/logging"
	"github.com/entrhq/scribe/pkg/tools/files"
	"github.com/google/uuid"
)

// Step is a single named unit of work within a workflow.
type Step struct {
	// Name identifies the step in events and artifacts.
	Name string

	// Run performs the step's work. Returning an error stops the workflow.
	Run func(ctx context.Context, wc *Context) error
}

// Workflow is an ordered sequence of steps run against one file system.
type Workflow struct {
	Name  string
	Steps []Step
}

// Runner executes workflows. A runner owns the file system, tool
// registry, and event stream shared by the runs it performs.
type Runner struct {
	config   *Config
	fs       *filesystem.FileSystem
	registry *files.Registry
	logger   *logging.Logger
	events   chan *Event
}

// NewRunner creates a runner for the given configuration, opening (or
// resuming) the agent file system in the configured workspace.
func NewRunner(config *Config) (*Runner, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	fs, err := filesystem.OpenFileSystem(config.WorkspaceDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open workspace: %w", err)
	}

	logger, _ := logging.NewLogger("workflow")

	return &Runner{
		config:   config,
		fs:       fs,
		registry: files.NewRegistry(fs),
		logger:   logger,
		events:   make(chan *Event, 256),
	}, nil
}

// Events returns the channel run events are delivered on.
func (r *Runner) Events() <-chan *Event {
	return r.events
}

// Config returns the runner's configuration.
func (r *Runner) Config() *Config {
	return r.config
}

// FileSystem returns the runner's agent file system.
func (r *Runner) FileSystem() *filesystem.FileSystem {
	return r.fs
}

// Registry returns the runner's tool registry.
func (r *Runner) Registry() *files.Registry {
	return r.registry
}

// Run executes a workflow to completion or first failure. The returned
// summary is populated in both cases; the error reports what stopped the
// run early.
func (r *Runner) Run(ctx context.Context, wf *Workflow) (*RunSummary, error) {
	constraints, err := NewConstraintManager(&r.config.Constraints, r.config.Mode)
	if err != nil {
		return nil, fmt.Errorf("invalid constraints: %w", err)
	}

	runID := uuid.New().String()
	start := time.Now()

	summary := &RunSummary{
		RunID:     runID,
		Workflow:  wf.Name,
		Task:      r.config.Task,
		StartTime: start,
	}

	wc := &Context{
		fs:          r.fs,
		registry:    r.registry,
		config:      r.config,
		logger:      r.logger,
		constraints: constraints,
		emit:        r.emit,
	}

	r.logger.Infof("starting workflow %s (run %s)", wf.Name, runID)
	r.emit(NewWorkflowStartEvent(wf.Name, len(wf.Steps)))

	var runErr error
	for i, step := range wf.Steps {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}

		if err := constraints.CheckTimeout(); err != nil {
			runErr = err
			break
		}

		r.emit(NewStepStartEvent(wf.Name, step.Name, i, len(wf.Steps)))
		r.logger.Infof("step %d/%d: %s", i+1, len(wf.Steps), step.Name)

		stepStart := time.Now()
		stepErr := step.Run(ctx, wc)
		stepDuration := time.Since(stepStart)

		if stepErr != nil {
			summary.Steps = append(summary.Steps, StepResult{
				Name:     step.Name,
				Status:   "failed",
				Error:    stepErr.Error(),
				Duration: stepDuration,
			})
			r.emit(NewStepFailedEvent(wf.Name, step.Name, i, len(wf.Steps), stepErr))
			runErr = fmt.Errorf("step '%s' failed: %w", step.Name, stepErr)
			break
		}

		summary.Steps = append(summary.Steps, StepResult{
			Name:     step.Name,
			Status:   "completed",
			Duration: stepDuration,
		})
		summary.Metrics.StepsCompleted++
		r.emit(NewStepEndEvent(wf.Name, step.Name, i, len(wf.Steps), stepDuration.Round(time.Millisecond).String()))
	}

	summary.EndTime = time.Now()
	summary.Duration = summary.EndTime.Sub(start)
	summary.Metrics.Steps = len(wf.Steps)
	summary.Metrics.ToolCalls = wc.ToolCalls()

	state := constraints.GetCurrentState()
	summary.Metrics.FilesWritten = state.TotalFiles
	summary.Metrics.LinesAdded = state.TotalLinesAdded
	summary.Metrics.LinesRemoved = state.TotalLinesRemoved
	summary.Metrics.TokensRead = state.TokensRead
	summary.FilesWritten = sortedModifications(state.FilesModified)

	duration := summary.Duration.Round(time.Millisecond).String()
	if runErr != nil {
		summary.Status = "failed"
		summary.Error = runErr.Error()
		r.logger.Errorf("workflow %s failed: %v", wf.Name, runErr)
		r.emit(NewWorkflowFailedEvent(wf.Name, duration, runErr))
	} else {
		summary.Status = "completed"
		r.logger.Infof("workflow %s completed in %s", wf.Name, duration)
		r.emit(NewWorkflowEndEvent(wf.Name, duration))
	}

	if r.config.Artifacts.Enabled {
		writer := NewArtifactWriter(r.config.Artifacts.OutputDir)
		if err := writer.WriteAll(summary); err != nil {
			r.logger.Errorf("failed to write artifacts: %v", err)
		}
	}

	return summary, runErr
}

// Close releases the runner's event channel. Call after the last run.
func (r *Runner) Close() {
	close(r.events)
}

// emit delivers an event without blocking. A run never stalls on a slow
// event consumer; the event is dropped instead.
func (r *Runner) emit(event *Event) {
	select {
	case r.events <- event:
	default:
	}
}

func sortedModifications(mods map[string]*FileModification) []FileModification {
	names := make([]string, 0, len(mods))
	for name := range mods {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]FileModification, 0, len(names))
	for _, name := range names {
		out = append(out, *mods[name])
	}
	return out
}
