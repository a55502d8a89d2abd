// Package main provides the Scribe workspace CLI. It executes agent tool
// calls against a sandboxed file workspace, renders workspace files to the
// terminal, and manages run configuration for automated collection and
// reporting workflows.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/entrhq/scribe/pkg/agent/tools"
	appconfig "github.com/entrhq/scribe/pkg/config"
	"github.com/entrhq/scribe/pkg/filesystem"
	"github.com/entrhq/scribe/pkg/tools/files"
	"github.com/entrhq/scribe/pkg/ui"
	"github.com/entrhq/scribe/pkg/workflow"
)

const (
	version = "0.1.0"

	// defaultSessionTask is recorded in run artifacts when no task
	// description is supplied for a stdin tool session.
	defaultSessionTask = "execute tool calls from stdin"

	// maxLineBytes bounds a single stdin line. Tool calls carrying large
	// file content arrive as one line each from most agent harnesses.
	maxLineBytes = 10 * 1024 * 1024
)

// CLIConfig holds command-line configuration
type CLIConfig struct {
	Workspace   string
	ConfigFile  string
	Task        string
	Mode        string
	Timeout     time.Duration
	Exec        bool
	ShowFile    string
	Copy        bool
	Describe    bool
	List        bool
	Clean       bool
	Tools       bool
	Plain       bool
	ShowVersion bool
}

func main() {
	// Parse command line flags
	config := parseFlags()

	// Show version if requested
	if config.ShowVersion {
		fmt.Printf("Scribe v%s\n", version)
		return
	}

	// Create context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nShutting down gracefully...")
		cancel()
	}()

	if err := run(ctx, config); err != nil {
		cancel()
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
	cancel()
}

// parseFlags parses command line flags
func parseFlags() *CLIConfig {
	config := &CLIConfig{}

	flag.StringVar(&config.Workspace, "workspace", ".", "Workspace directory (default: current directory)")
	flag.StringVar(&config.ConfigFile, "config", "", "Path to run configuration file (YAML)")
	flag.StringVar(&config.Task, "task", "", "Task description recorded in run artifacts")
	flag.StringVar(&config.Mode, "mode", "write", "Execution mode: read-only or write")
	flag.DurationVar(&config.Timeout, "timeout", 5*time.Minute, "Execution timeout for tool sessions")
	flag.BoolVar(&config.Exec, "exec", false, "Read tool calls from stdin and execute them")
	flag.StringVar(&config.ShowFile, "show", "", "Render a workspace file to the terminal and exit")
	flag.BoolVar(&config.Copy, "copy", false, "With -show, also copy the file contents to the clipboard")
	flag.BoolVar(&config.Describe, "describe", false, "Print a summary of workspace files and exit")
	flag.BoolVar(&config.List, "list", false, "Print workspace file names and exit")
	flag.BoolVar(&config.Clean, "clean", false, "Delete all workspace files and exit")
	flag.BoolVar(&config.Tools, "tools", false, "Print the agent tool guide for the workspace and exit")
	flag.BoolVar(&config.Plain, "plain", false, "Plain text output without syntax highlighting")
	flag.BoolVar(&config.ShowVersion, "version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Scribe - File workspace for autonomous agents\n\n")
		fmt.Fprintf(os.Stderr, "Usage: scribe [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Inspect a workspace\n")
		fmt.Fprintf(os.Stderr, "  scribe -workspace /path/to/run\n")
		fmt.Fprintf(os.Stderr, "  scribe -workspace /path/to/run -show laptops_database.csv\n\n")
		fmt.Fprintf(os.Stderr, "  # Execute tool calls piped from an agent harness\n")
		fmt.Fprintf(os.Stderr, "  agent-harness | scribe -exec -task \"Collect laptop prices\"\n\n")
		fmt.Fprintf(os.Stderr, "  # Constrained session from a config file\n")
		fmt.Fprintf(os.Stderr, "  scribe -exec -config run.yaml\n\n")
		fmt.Fprintf(os.Stderr, "  # Read-only session\n")
		fmt.Fprintf(os.Stderr, "  scribe -exec -mode read-only -task \"Verify report contents\"\n")
	}

	flag.Parse()
	return config
}

// run executes the selected command
func run(ctx context.Context, cliConfig *CLIConfig) error {
	// Initialize global configuration (run defaults and display settings)
	if err := appconfig.Initialize(""); err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}

	applyConfigDefaults(cliConfig)

	switch {
	case cliConfig.ShowFile != "":
		return showFile(cliConfig)
	case cliConfig.List:
		return listFiles(cliConfig)
	case cliConfig.Clean:
		return cleanWorkspace(cliConfig)
	case cliConfig.Tools:
		return printToolGuide(cliConfig)
	case cliConfig.Exec:
		return runExec(ctx, cliConfig)
	default:
		// Describe is the default action so a bare invocation summarizes
		// whatever workspace it is pointed at.
		return describeWorkspace(cliConfig)
	}
}

// applyConfigDefaults fills in CLI values left at their defaults from the
// global configuration file.
func applyConfigDefaults(cliConfig *CLIConfig) {
	defaults := appconfig.GetDefaults()
	if defaults == nil {
		return
	}

	if cliConfig.Workspace == "." {
		// CLI used default, check config
		if workspace := defaults.GetWorkspace(); workspace != "" {
			cliConfig.Workspace = workspace
		}
	}
	if cliConfig.Mode == "write" {
		if mode := defaults.GetMode(); mode != "" {
			cliConfig.Mode = mode
		}
	}

	if display := appconfig.GetDisplay(); display != nil {
		if display.GetPlainOutput() {
			cliConfig.Plain = true
		}
		if display.GetCopyOnShow() {
			cliConfig.Copy = true
		}
	}
}

// showFile renders a single workspace file to stdout.
func showFile(cliConfig *CLIConfig) error {
	fs, err := filesystem.OpenFileSystem(cliConfig.Workspace)
	if err != nil {
		return fmt.Errorf("failed to open workspace: %w", err)
	}

	content, err := fs.DisplayFile(cliConfig.ShowFile)
	if err != nil {
		return err
	}

	if cliConfig.Plain {
		fmt.Print(content)
		if !strings.HasSuffix(content, "\n") {
			fmt.Println()
		}
	} else {
		styleName := ""
		if display := appconfig.GetDisplay(); display != nil {
			styleName = display.GetHighlightStyle()
		}
		rendered, renderErr := ui.RenderFile(cliConfig.ShowFile, content, styleName)
		if renderErr != nil {
			return renderErr
		}
		fmt.Print(rendered)
	}

	if cliConfig.Copy {
		if copyErr := ui.CopyToClipboard(content); copyErr != nil {
			log.Printf("Warning: %v", copyErr)
		} else {
			fmt.Fprintf(os.Stderr, "Copied %s to clipboard\n", cliConfig.ShowFile)
		}
	}

	return nil
}

// describeWorkspace prints the file summary for a workspace.
func describeWorkspace(cliConfig *CLIConfig) error {
	fs, err := filesystem.OpenFileSystem(cliConfig.Workspace)
	if err != nil {
		return fmt.Errorf("failed to open workspace: %w", err)
	}

	description := fs.Describe()
	if description == "" {
		fmt.Printf("Workspace %s has no files yet\n", fs.DataDir())
		return nil
	}

	fmt.Print(description)
	return nil
}

// listFiles prints the sorted file names in a workspace.
func listFiles(cliConfig *CLIConfig) error {
	fs, err := filesystem.OpenFileSystem(cliConfig.Workspace)
	if err != nil {
		return fmt.Errorf("failed to open workspace: %w", err)
	}

	for _, name := range fs.ListFiles() {
		fmt.Println(name)
	}
	return nil
}

// printToolGuide prints the composed agent guide for the workspace's
// currently available tools.
func printToolGuide(cliConfig *CLIConfig) error {
	fs, err := filesystem.OpenFileSystem(cliConfig.Workspace)
	if err != nil {
		return fmt.Errorf("failed to open workspace: %w", err)
	}

	fmt.Print(composeToolGuide(files.NewRegistry(fs)))
	return nil
}

// cleanWorkspace deletes every file in a workspace.
func cleanWorkspace(cliConfig *CLIConfig) error {
	fs, err := filesystem.OpenFileSystem(cliConfig.Workspace)
	if err != nil {
		return fmt.Errorf("failed to open workspace: %w", err)
	}

	count := fs.Len()
	if err := fs.Nuke(); err != nil {
		return fmt.Errorf("failed to clean workspace: %w", err)
	}

	fmt.Printf("Removed %d files from %s\n", count, fs.DataDir())
	return nil
}

// runExec executes tool calls read from stdin as a constrained session.
func runExec(ctx context.Context, cliConfig *CLIConfig) error {
	execConfig, err := loadRunConfig(cliConfig)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	runner, err := workflow.NewRunner(execConfig)
	if err != nil {
		return err
	}

	// Apply timeout if specified
	if execConfig.Constraints.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, execConfig.Constraints.Timeout)
		defer cancel()
	}

	log.Printf("Starting tool session...")
	log.Printf("Task: %s", execConfig.Task)
	log.Printf("Mode: %s", execConfig.Mode)
	log.Printf("Workspace: %s", execConfig.WorkspaceDir)

	// Tool results go to stdout; progress lines go to stderr so a driving
	// harness can consume results without parsing around them.
	wf := &workflow.Workflow{
		Name:  "tool-session",
		Steps: []workflow.Step{executeStep(os.Stdin, os.Stdout)},
	}

	summary, err := ui.RunPlain(ctx, runner, wf, os.Stderr)
	if err != nil {
		return err
	}

	log.Printf("Session complete: %d tool calls, %d files written (+%d/-%d lines)",
		summary.Metrics.ToolCalls,
		summary.Metrics.FilesWritten,
		summary.Metrics.LinesAdded,
		summary.Metrics.LinesRemoved,
	)
	return nil
}

// loadRunConfig loads run configuration from file or CLI arguments
func loadRunConfig(cliConfig *CLIConfig) (*workflow.Config, error) {
	// If a config file is provided, CLI flags only fill gaps it leaves.
	if cliConfig.ConfigFile != "" {
		config, err := workflow.LoadConfig(cliConfig.ConfigFile)
		if err != nil {
			return nil, err
		}
		if config.Task == "" {
			config.Task = cliConfig.Task
		}
		if config.Task == "" {
			config.Task = defaultSessionTask
		}
		return config, nil
	}

	config := workflow.DefaultConfig()
	config.Task = cliConfig.Task
	if config.Task == "" {
		config.Task = defaultSessionTask
	}
	config.WorkspaceDir = cliConfig.Workspace
	config.Constraints.Timeout = cliConfig.Timeout

	switch cliConfig.Mode {
	case "read-only":
		config.Mode = workflow.ModeReadOnly
	case "write":
		config.Mode = workflow.ModeWrite
	default:
		return nil, fmt.Errorf("invalid mode: %s (must be 'read-only' or 'write')", cliConfig.Mode)
	}

	artifacts := true
	if defaults := appconfig.GetDefaults(); defaults != nil {
		artifacts = defaults.GetArtifactsEnabled()
	}
	config.Artifacts.Enabled = artifacts

	return config, nil
}

// executeStep reads XML tool calls from input and dispatches them through
// the session's constraint-checked tool access. Each result (or error) is
// written to output as it completes.
func executeStep(input io.Reader, output io.Writer) workflow.Step {
	return workflow.Step{
		Name: "execute",
		Run: func(ctx context.Context, wc *workflow.Context) error {
			scanner := bufio.NewScanner(input)
			scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

			var buffer strings.Builder
			for scanner.Scan() {
				if ctx.Err() != nil {
					return ctx.Err()
				}

				buffer.WriteString(scanner.Text())
				buffer.WriteString("\n")

				if !tools.HasToolCall(buffer.String()) {
					continue
				}

				// Agent harnesses narrate around their tool calls; the
				// prose is surfaced on the progress stream, not stdout.
				thinking, call, remaining, parseErr := tools.ExtractThinkingAndToolCall(buffer.String())
				buffer.Reset()
				if thinking != "" {
					wc.Log("%s", thinking)
				}
				if parseErr != nil {
					// The malformed call and anything buffered with it
					// are dropped; the next call starts clean.
					fmt.Fprintf(output, "error: %v\n", parseErr)
					continue
				}
				buffer.WriteString(remaining)

				result, callErr := dispatchCall(ctx, wc, call)
				if callErr != nil {
					fmt.Fprintf(output, "error: %v\n", callErr)
					continue
				}
				fmt.Fprintln(output, result)
			}

			if scanErr := scanner.Err(); scanErr != nil {
				return fmt.Errorf("failed to read tool calls: %w", scanErr)
			}
			return nil
		},
	}
}

// dispatchCall converts a parsed tool call's arguments into the form the
// session context expects and executes it under the session constraints.
func dispatchCall(ctx context.Context, wc *workflow.Context, call *tools.ToolCall) (string, error) {
	if err := tools.ValidateToolCall(call); err != nil {
		return "", err
	}

	args, err := tools.XMLToMap(call.GetArgumentsXML())
	if err != nil {
		return "", fmt.Errorf("failed to parse tool arguments: %w", err)
	}

	input := make(map[string]string, len(args))
	for key, value := range args {
		text, ok := value.(string)
		if !ok {
			return "", fmt.Errorf("argument %s is not a string", key)
		}
		input[key] = text
	}

	return wc.CallTool(ctx, call.ToolName, input)
}
