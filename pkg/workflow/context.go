package workflow

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/entrhq/scribe/pkg/collect"
	"github.com/entrhq/scribe/pkg/filesystem"
	"github.com/entrhq/scribe/pkg/logging"
	"github.com/entrhq/scribe/pkg/tools/files"
)

var xmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// Context is passed to every workflow step. It provides constraint-checked
// access to the file tools plus shared state the steps accumulate, such as
// collected records.
type Context struct {
	fs          *filesystem.FileSystem
	registry    *files.Registry
	config      *Config
	logger      *logging.Logger
	constraints *ConstraintManager
	emit        func(*Event)
	records     []*collect.Record
	toolCalls   int
	mu          sync.Mutex
}

// FileSystem returns the agent file system backing the run.
func (c *Context) FileSystem() *filesystem.FileSystem {
	return c.fs
}

// Registry returns the tool registry for the run.
func (c *Context) Registry() *files.Registry {
	return c.registry
}

// Config returns the run configuration.
func (c *Context) Config() *Config {
	return c.config
}

// AddRecords appends collected records to the run state.
func (c *Context) AddRecords(records ...*collect.Record) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = append(c.records, records...)
}

// Records returns a copy of the records collected so far.
func (c *Context) Records() []*collect.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*collect.Record, len(c.records))
	copy(out, c.records)
	return out
}

// RecordCount returns the number of records collected so far.
func (c *Context) RecordCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.records)
}

// ToolCalls returns the number of tool invocations made during the run.
func (c *Context) ToolCalls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.toolCalls
}

// State returns a snapshot of the run's constraint usage.
func (c *Context) State() *ConstraintState {
	return c.constraints.GetCurrentState()
}

// Log records a progress message on the run log and emits it as an event.
func (c *Context) Log(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	c.logger.Infof("%s", message)
	c.emitEvent(NewProgressEvent(message))
}

// WriteFile invokes the write_file tool.
func (c *Context) WriteFile(ctx context.Context, fileName, content string) (string, error) {
	return c.CallTool(ctx, "write_file", map[string]string{
		"file_name": fileName,
		"content":   content,
	})
}

// AppendFile invokes the append_file tool.
func (c *Context) AppendFile(ctx context.Context, fileName, content string) (string, error) {
	return c.CallTool(ctx, "append_file", map[string]string{
		"file_name": fileName,
		"content":   content,
	})
}

// ReadFile invokes the read_file tool and returns the file contents.
func (c *Context) ReadFile(ctx context.Context, fileName string) (string, error) {
	return c.CallTool(ctx, "read_file", map[string]string{
		"file_name": fileName,
	})
}

// ReplaceFileStr invokes the replace_file_str tool.
func (c *Context) ReplaceFileStr(ctx context.Context, fileName, oldStr, newStr string) (string, error) {
	return c.CallTool(ctx, "replace_file_str", map[string]string{
		"file_name": fileName,
		"old_str":   oldStr,
		"new_str":   newStr,
	})
}

// CallTool invokes a registered tool by name with the given arguments,
// enforcing run constraints and recording usage. Mutating calls are
// validated before execution and their line changes are recorded after.
func (c *Context) CallTool(ctx context.Context, name string, args map[string]string) (string, error) {
	tool, ok := c.registry.Get(name)
	if !ok {
		return "", fmt.Errorf("unknown tool: %s", name)
	}

	input := make(map[string]interface{}, len(args))
	for key, value := range args {
		input[key] = value
	}

	if err := c.constraints.ValidateTool(tool, input); err != nil {
		c.emitEvent(NewToolResultErrorEvent(name, err))
		return "", err
	}

	c.emitEvent(NewToolCallEvent(name, input))

	result, metadata, err := tool.Execute(ctx, []byte(buildArgumentsXML(args)))

	c.mu.Lock()
	c.toolCalls++
	c.mu.Unlock()

	if err != nil {
		c.emitEvent(NewToolResultErrorEvent(name, err))
		return "", err
	}

	c.emitEvent(NewToolResultEvent(name, result))

	if tool.Mutates() {
		if recordErr := c.recordMutation(metadata); recordErr != nil {
			return result, recordErr
		}
	}

	if tokens, ok := metadata["token_count"].(int); ok {
		if recordErr := c.constraints.RecordTokenUsage(tokens); recordErr != nil {
			return result, recordErr
		}
	}

	return result, nil
}

// recordMutation feeds a mutating tool's metadata into the constraint
// manager and announces the file change.
func (c *Context) recordMutation(metadata map[string]interface{}) error {
	fileName, _ := metadata["file_name"].(string)
	if fileName == "" {
		return nil
	}

	linesAdded, _ := metadata["lines_added"].(int)
	linesRemoved, _ := metadata["lines_removed"].(int)

	c.emitEvent(NewFileWrittenEvent(fileName, linesAdded, linesRemoved))

	return c.constraints.RecordFileModification(fileName, linesAdded, linesRemoved)
}

func (c *Context) emitEvent(event *Event) {
	if c.emit != nil {
		c.emit(event)
	}
}

// buildArgumentsXML renders tool arguments as the <arguments> block the
// tools unmarshal. Values are escaped so content may contain markup.
func buildArgumentsXML(args map[string]string) string {
	keys := make([]string, 0, len(args))
	for key := range args {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString("<arguments>")
	for _, key := range keys {
		sb.WriteString("<")
		sb.WriteString(key)
		sb.WriteString(">")
		xmlEscaper.WriteString(&sb, args[key])
		sb.WriteString("</")
		sb.WriteString(key)
		sb.WriteString(">")
	}
	sb.WriteString("</arguments>")
	return sb.String()
}
