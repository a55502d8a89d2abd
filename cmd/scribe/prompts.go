package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/entrhq/scribe/pkg/agent/tools"
	"github.com/entrhq/scribe/pkg/tools/files"
)

// FileAgentIdentity defines the role an agent plays when working a file workspace.
const FileAgentIdentity = `
# Scribe File Workspace: Agent Guide

You operate a sandboxed file workspace through XML tool calls. Every file you
create lives in the workspace data directory and persists across your steps.
Use the workspace to log progress, store collected data, and compile reports.
`

// FileWorkflowGuidance describes the phases a collection task moves through.
const FileWorkflowGuidance = `
# Workflow Guidance

1.  **Set up**: Start each task by writing a plan or log file (e.g. collection_log.txt) so later steps can verify what happened.
2.  **Collect**: Store each collected item in its own file (e.g. laptop_1.json) before moving on. Never hold data only in memory.
3.  **Compile**: Merge per-item files into structured outputs (.csv for tabular data, .json for summaries) by reading what you wrote earlier.
4.  **Report**: Write human-readable reports in markdown. Use a .pdf file name to produce a formatted PDF from markdown content.
5.  **Verify**: Re-read your output files before declaring a task complete. A report you have not read back is not done.
`

// ToolCallFormat shows the XML envelope every tool call must use.
const ToolCallFormat = `
# Tool Call Format

Invoke tools with a pure XML envelope. Wrap values containing markup or
special characters in CDATA sections:

<tool>
<server_name>local</server_name>
<tool_name>write_file</tool_name>
<arguments>
  <file_name>results.md</file_name>
  <content><![CDATA[# Results

First pass complete.]]></content>
</arguments>
</tool>

File names must use one of the allowed extensions: .txt, .md, .json, .csv, .pdf.
`

// composeToolGuide renders the agent guide with a section for every tool the
// registry currently offers. Tools the exclusion rules withhold in the
// workspace's present state are left out.
func composeToolGuide(registry *files.Registry) string {
	var builder strings.Builder
	builder.WriteString(FileAgentIdentity)
	builder.WriteString(FileWorkflowGuidance)
	builder.WriteString(ToolCallFormat)

	builder.WriteString("\n# Available Tools\n")
	for _, tool := range registry.Active() {
		builder.WriteString(formatToolSection(tool))
	}
	return builder.String()
}

// formatToolSection renders one tool's name, description, and parameters.
func formatToolSection(tool tools.Tool) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "\n## %s\n\n%s\n", tool.Name(), tool.Description())

	schema := tool.Schema()
	properties, _ := schema["properties"].(map[string]interface{})
	if len(properties) == 0 {
		return builder.String()
	}

	required := make(map[string]bool)
	if names, ok := schema["required"].([]string); ok {
		for _, name := range names {
			required[name] = true
		}
	}

	names := make([]string, 0, len(properties))
	for name := range properties {
		names = append(names, name)
	}
	sort.Strings(names)

	builder.WriteString("\nParameters:\n")
	for _, name := range names {
		property, _ := properties[name].(map[string]interface{})
		description, _ := property["description"].(string)
		marker := "optional"
		if required[name] {
			marker = "required"
		}
		fmt.Fprintf(&builder, "- %s (%s): %s\n", name, marker, description)
	}
	return builder.String()
}
