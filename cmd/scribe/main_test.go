package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/entrhq/scribe/pkg/ui"
	"github.com/entrhq/scribe/pkg/workflow"
)

func newSessionRunner(t *testing.T) *workflow.Runner {
	t.Helper()

	config := workflow.DefaultConfig()
	config.Task = "session test"
	config.WorkspaceDir = t.TempDir()
	config.Artifacts.Enabled = false

	runner, err := workflow.NewRunner(config)
	if err != nil {
		t.Fatalf("failed to create runner: %v", err)
	}
	return runner
}

func runSession(t *testing.T, runner *workflow.Runner, input string) (results, progress string) {
	t.Helper()

	var output, log bytes.Buffer
	wf := &workflow.Workflow{
		Name:  "tool-session",
		Steps: []workflow.Step{executeStep(strings.NewReader(input), &output)},
	}

	if _, err := ui.RunPlain(context.Background(), runner, wf, &log); err != nil {
		t.Fatalf("session failed: %v", err)
	}
	return output.String(), log.String()
}

func TestExecuteStep_DispatchesToolCall(t *testing.T) {
	runner := newSessionRunner(t)

	input := `Writing the collection log now.
<tool>
<tool_name>write_file</tool_name>
<arguments>
<file_name>collection_log.txt</file_name>
<content>Started collection</content>
</arguments>
</tool>
`
	results, progress := runSession(t, runner, input)

	if !strings.Contains(results, "Data written to file collection_log.txt successfully.") {
		t.Errorf("expected tool result on stdout, got:\n%s", results)
	}

	// Narration before the tool call goes to the progress stream, not the
	// result stream.
	if !strings.Contains(progress, "Writing the collection log now.") {
		t.Errorf("expected narration on the progress stream, got:\n%s", progress)
	}
	if strings.Contains(results, "Writing the collection log now.") {
		t.Errorf("narration leaked into tool results:\n%s", results)
	}

	content, err := runner.FileSystem().ReadFile("collection_log.txt")
	if err != nil {
		t.Fatalf("expected file to be written: %v", err)
	}
	if content != "Started collection" {
		t.Errorf("unexpected file content: %q", content)
	}
}

func TestExecuteStep_MalformedCall(t *testing.T) {
	runner := newSessionRunner(t)

	input := `<tool>
<arguments><file_name>x.txt</file_name></arguments>
</tool>
`
	results, _ := runSession(t, runner, input)

	if !strings.Contains(results, "error:") {
		t.Errorf("expected an error line for a call without tool_name, got:\n%s", results)
	}
}
