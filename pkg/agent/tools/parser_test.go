package tools

import (
	"strings"
	"testing"
)

func TestParseToolCall(t *testing.T) {
	text := `I'll write the results now.

<tool>
<server_name>local</server_name>
<tool_name>write_file</tool_name>
<arguments>
<file_name>results.md</file_name>
<content># Results</content>
</arguments>
</tool>`

	tc, remaining, err := ParseToolCall(text)
	if err != nil {
		t.Fatalf("ParseToolCall failed: %v", err)
	}
	if tc.ToolName != "write_file" {
		t.Errorf("expected tool_name 'write_file', got %q", tc.ToolName)
	}
	if tc.ServerName != "local" {
		t.Errorf("expected server_name 'local', got %q", tc.ServerName)
	}
	if remaining != "I'll write the results now." {
		t.Errorf("expected remaining text without tool call, got %q", remaining)
	}

	args := string(tc.GetArgumentsXML())
	if !strings.Contains(args, "<file_name>results.md</file_name>") {
		t.Errorf("expected file_name in arguments, got %q", args)
	}
}

func TestParseToolCall_DefaultServerName(t *testing.T) {
	text := `<tool>
<tool_name>read_file</tool_name>
<arguments>
<file_name>todo.md</file_name>
</arguments>
</tool>`

	tc, _, err := ParseToolCall(text)
	if err != nil {
		t.Fatalf("ParseToolCall failed: %v", err)
	}
	if tc.ServerName != defaultServerName {
		t.Errorf("expected default server name %q, got %q", defaultServerName, tc.ServerName)
	}
}

func TestParseToolCall_NoToolCall(t *testing.T) {
	_, _, err := ParseToolCall("just some plain text")
	if err == nil {
		t.Error("expected error when no tool call present")
	}
}

func TestParseToolCall_MissingToolName(t *testing.T) {
	text := `<tool>
<arguments>
<file_name>todo.md</file_name>
</arguments>
</tool>`

	_, _, err := ParseToolCall(text)
	if err == nil {
		t.Error("expected error for missing tool_name")
	}
}

func TestParseToolCall_UnescapedAmpersand(t *testing.T) {
	text := `<tool>
<tool_name>append_file</tool_name>
<arguments>
<file_name>log.txt</file_name>
<content>Research & Development findings</content>
</arguments>
</tool>`

	tc, _, err := ParseToolCall(text)
	if err != nil {
		t.Fatalf("ParseToolCall failed on unescaped ampersand: %v", err)
	}
	if tc.ToolName != "append_file" {
		t.Errorf("expected tool_name 'append_file', got %q", tc.ToolName)
	}
}

func TestExtractThinkingAndToolCall(t *testing.T) {
	text := `Collecting product details first.

<tool>
<tool_name>write_file</tool_name>
<arguments>
<file_name>laptop_1.json</file_name>
<content>{}</content>
</arguments>
</tool>

Next I'll update the database.`

	thinking, tc, remaining, err := ExtractThinkingAndToolCall(text)
	if err != nil {
		t.Fatalf("ExtractThinkingAndToolCall failed: %v", err)
	}
	if thinking != "Collecting product details first." {
		t.Errorf("unexpected thinking text: %q", thinking)
	}
	if tc == nil || tc.ToolName != "write_file" {
		t.Fatalf("expected write_file tool call, got %+v", tc)
	}
	if remaining != "Next I'll update the database." {
		t.Errorf("unexpected remaining text: %q", remaining)
	}
}

func TestExtractThinkingAndToolCall_NoToolCall(t *testing.T) {
	thinking, tc, remaining, err := ExtractThinkingAndToolCall("only narration here")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tc != nil {
		t.Error("expected nil tool call")
	}
	if thinking != "only narration here" || remaining != "" {
		t.Errorf("unexpected split: thinking=%q remaining=%q", thinking, remaining)
	}
}

func TestHasToolCall(t *testing.T) {
	if !HasToolCall("<tool><tool_name>x</tool_name></tool>") {
		t.Error("expected tool call to be detected")
	}
	if HasToolCall("no call here") {
		t.Error("expected no tool call")
	}
}

func TestValidateToolCall(t *testing.T) {
	if err := ValidateToolCall(nil); err == nil {
		t.Error("expected error for nil tool call")
	}
	if err := ValidateToolCall(&ToolCall{ServerName: "local"}); err == nil {
		t.Error("expected error for missing tool_name")
	}
	if err := ValidateToolCall(&ToolCall{ToolName: "read_file"}); err == nil {
		t.Error("expected error for missing server_name")
	}
	if err := ValidateToolCall(&ToolCall{ServerName: "local", ToolName: "read_file"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestXMLToMap(t *testing.T) {
	data := []byte(`<arguments>
<file_name>report.md</file_name>
<content>body text</content>
</arguments>`)

	m, err := XMLToMap(data)
	if err != nil {
		t.Fatalf("XMLToMap failed: %v", err)
	}
	if m["file_name"] != "report.md" {
		t.Errorf("expected file_name 'report.md', got %v", m["file_name"])
	}
	if m["content"] != "body text" {
		t.Errorf("expected content 'body text', got %v", m["content"])
	}
}
