package ui

import (
	"context"
	"fmt"
	"io"

	"github.com/entrhq/scribe/pkg/workflow"
)

// PlainWriter renders workflow events as plain log lines. It is used when
// stdout is not a terminal or the interactive display is disabled.
type PlainWriter struct {
	w io.Writer
}

// NewPlainWriter creates a plain event writer.
func NewPlainWriter(w io.Writer) *PlainWriter {
	return &PlainWriter{w: w}
}

// Consume formats events until the channel closes.
func (p *PlainWriter) Consume(events <-chan *workflow.Event) {
	for event := range events {
		p.write(event)
	}
}

func (p *PlainWriter) write(event *workflow.Event) {
	switch event.Type {
	case workflow.EventTypeWorkflowStart:
		fmt.Fprintf(p.w, "▶ workflow %s (%d steps)\n", event.Workflow, event.StepCount)

	case workflow.EventTypeStepStart:
		fmt.Fprintf(p.w, "→ step %d/%d: %s\n", event.StepIndex+1, event.StepCount, event.Step)

	case workflow.EventTypeStepEnd:
		fmt.Fprintf(p.w, "  step %s completed in %s\n", event.Step, event.Duration)

	case workflow.EventTypeStepFailed:
		fmt.Fprintf(p.w, "  step %s failed: %v\n", event.Step, event.Error)

	case workflow.EventTypeToolCall:
		name, _ := event.ToolInput["file_name"].(string)
		fmt.Fprintf(p.w, "  tool %s %s\n", event.ToolName, name)

	case workflow.EventTypeToolResultError:
		fmt.Fprintf(p.w, "  tool %s error: %v\n", event.ToolName, event.Error)

	case workflow.EventTypeFileWritten:
		added, _ := event.Metadata["lines_added"].(int)
		removed, _ := event.Metadata["lines_removed"].(int)
		fmt.Fprintf(p.w, "  wrote %s (+%d/-%d)\n", event.FileName, added, removed)

	case workflow.EventTypeProgress:
		fmt.Fprintf(p.w, "  %s\n", event.Content)

	case workflow.EventTypeWorkflowEnd:
		fmt.Fprintf(p.w, "✓ workflow %s completed in %s\n", event.Workflow, event.Duration)

	case workflow.EventTypeWorkflowFailed:
		fmt.Fprintf(p.w, "✗ workflow %s failed: %v\n", event.Workflow, event.Error)
	}
}

// RunPlain executes a workflow while writing plain progress lines to w.
func RunPlain(ctx context.Context, runner *workflow.Runner, wf *workflow.Workflow, w io.Writer) (*workflow.RunSummary, error) {
	writer := NewPlainWriter(w)

	done := make(chan struct{})
	go func() {
		writer.Consume(runner.Events())
		close(done)
	}()

	summary, err := runner.Run(ctx, wf)
	runner.Close()
	<-done

	return summary, err
}
