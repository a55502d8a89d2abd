// Package ui renders workflow progress in the terminal and displays files
// from the agent file system with syntax highlighting.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/entrhq/scribe/pkg/workflow"
	"golang.org/x/term"
)

// maxActivityLines bounds the rolling activity feed under the step list.
const maxActivityLines = 8

type stepState struct {
	name   string
	status string // pending, running, completed, failed
	detail string // duration or error text
}

// progressModel is the Bubble Tea model for the workflow progress display.
type progressModel struct {
	spinner  spinner.Model
	workflow string
	task     string
	steps    []stepState
	activity []string
	err      error
	width    int
	done     bool
	failed   bool
}

// runDoneMsg signals that the workflow goroutine has returned.
type runDoneMsg struct{}

func newProgressModel(workflowName, task string) progressModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(salmonPink)

	return progressModel{
		spinner:  s,
		workflow: workflowName,
		task:     task,
		width:    80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var spinnerCmd tea.Cmd
	m.spinner, spinnerCmd = m.spinner.Update(msg)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, spinnerCmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}
		return m, spinnerCmd

	case *workflow.Event:
		m.applyEvent(msg)
		if m.done {
			return m, tea.Quit
		}
		return m, spinnerCmd

	case runDoneMsg:
		return m, tea.Quit
	}

	return m, spinnerCmd
}

// applyEvent folds a workflow event into the display state.
func (m *progressModel) applyEvent(event *workflow.Event) {
	switch event.Type {
	case workflow.EventTypeStepStart:
		m.steps = append(m.steps, stepState{name: event.Step, status: "running"})

	case workflow.EventTypeStepEnd:
		if i := m.currentStep(); i >= 0 {
			m.steps[i].status = "completed"
			m.steps[i].detail = event.Duration
		}

	case workflow.EventTypeStepFailed:
		if i := m.currentStep(); i >= 0 {
			m.steps[i].status = "failed"
			if event.Error != nil {
				m.steps[i].detail = event.Error.Error()
			}
		}

	case workflow.EventTypeToolCall:
		name, _ := event.ToolInput["file_name"].(string)
		m.addActivity(toolStyle.Render(fmt.Sprintf("⚙ %s %s", event.ToolName, name)))

	case workflow.EventTypeFileWritten:
		added, _ := event.Metadata["lines_added"].(int)
		removed, _ := event.Metadata["lines_removed"].(int)
		m.addActivity(fileStyle.Render(fmt.Sprintf("✎ %s (+%d/-%d)", event.FileName, added, removed)))

	case workflow.EventTypeToolResultError:
		m.addActivity(errorStyle.Render(fmt.Sprintf("✗ %s: %v", event.ToolName, event.Error)))

	case workflow.EventTypeProgress:
		m.addActivity(progressStyle.Render(event.Content))

	case workflow.EventTypeWorkflowEnd:
		m.done = true

	case workflow.EventTypeWorkflowFailed:
		m.done = true
		m.failed = true
		m.err = event.Error
	}
}

// currentStep returns the index of the most recent step, or -1.
func (m *progressModel) currentStep() int {
	return len(m.steps) - 1
}

func (m *progressModel) addActivity(line string) {
	m.activity = append(m.activity, line)
	if len(m.activity) > maxActivityLines {
		m.activity = m.activity[len(m.activity)-maxActivityLines:]
	}
}

// View renders the progress display.
func (m *progressModel) View() string {
	var sb strings.Builder

	sb.WriteString(m.buildHeader())
	sb.WriteString("\n")
	sb.WriteString(taskStyle.Render(fmt.Sprintf("  Task: %s", m.task)))
	sb.WriteString("\n\n")

	for _, step := range m.steps {
		sb.WriteString(m.renderStep(step))
		sb.WriteString("\n")
	}

	if len(m.activity) > 0 {
		sb.WriteString("\n")
		for _, line := range m.activity {
			sb.WriteString("    " + line + "\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(m.buildStatusBar())
	sb.WriteString("\n")

	return sb.String()
}

// buildHeader renders the scribe ASCII art header.
func (m *progressModel) buildHeader() string {
	return headerStyle.Render(`
	███████╗ ██████╗██████╗ ██╗██████╗ ███████╗
	██╔════╝██╔════╝██╔══██╗██║██╔══██╗██╔════╝
	███████╗██║     ██████╔╝██║██████╔╝█████╗
	╚════██║██║     ██╔══██╗██║██╔══██╗██╔══╝
	███████║╚██████╗██║  ██║██║██████╔╝███████╗
	╚══════╝ ╚═════╝╚═╝  ╚═╝╚═╝╚═════╝ ╚══════╝`)
}

func (m *progressModel) renderStep(step stepState) string {
	switch step.status {
	case "running":
		return fmt.Sprintf("  %s %s", m.spinner.View(), stepActiveStyle.Render(step.name))
	case "completed":
		detail := ""
		if step.detail != "" {
			detail = progressStyle.Render(fmt.Sprintf(" (%s)", step.detail))
		}
		return fmt.Sprintf("  %s %s%s", stepDoneStyle.Render("✓"), step.name, detail)
	case "failed":
		return fmt.Sprintf("  %s %s: %s", stepFailedStyle.Render("✗"), step.name, stepFailedStyle.Render(step.detail))
	default:
		return fmt.Sprintf("  %s %s", taskStyle.Render("•"), step.name)
	}
}

func (m *progressModel) buildStatusBar() string {
	switch {
	case m.failed:
		return statusBarStyle.Render(fmt.Sprintf("✗ workflow %s failed: %v", m.workflow, m.err))
	case m.done:
		return statusBarStyle.Render(fmt.Sprintf("✓ workflow %s completed", m.workflow))
	default:
		return statusBarStyle.Render(fmt.Sprintf("Running %s • Ctrl+C to stop", m.workflow))
	}
}

// RunWithProgress executes a workflow while rendering live progress. If the
// display exits before the workflow finishes, the run is cancelled and the
// partial summary returned. The runner's event channel is closed after the
// run, so the runner cannot be reused.
func RunWithProgress(ctx context.Context, runner *workflow.Runner, wf *workflow.Workflow, opts ...tea.ProgramOption) (*workflow.RunSummary, error) {
	m := newProgressModel(wf.Name, runner.Config().Task)
	program := tea.NewProgram(&m, opts...)

	forwarded := make(chan struct{})
	go func() {
		for event := range runner.Events() {
			program.Send(event)
		}
		close(forwarded)
	}()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var summary *workflow.RunSummary
	var runErr error
	done := make(chan struct{})
	go func() {
		summary, runErr = runner.Run(runCtx, wf)
		runner.Close()
		program.Send(runDoneMsg{})
		close(done)
	}()

	if _, err := program.Run(); err != nil {
		cancel()
		<-done
		<-forwarded
		return summary, fmt.Errorf("failed to run progress display: %w", err)
	}

	cancel()
	<-done
	<-forwarded
	return summary, runErr
}

// Run executes a workflow with the richest display the environment supports:
// the interactive progress view when the session is attached to a terminal,
// plain log lines to w otherwise. The interactive display owns stdin, so it
// is only chosen when both stdin and w are terminals.
func Run(ctx context.Context, runner *workflow.Runner, wf *workflow.Workflow, w io.Writer) (*workflow.RunSummary, error) {
	if interactiveTerminal(w) {
		return RunWithProgress(ctx, runner, wf)
	}
	return RunPlain(ctx, runner, wf, w)
}

func interactiveTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) && term.IsTerminal(int(os.Stdin.Fd()))
}
