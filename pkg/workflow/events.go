package workflow

// EventType defines the type of event emitted while a workflow runs.
type EventType string

const (
	EventTypeWorkflowStart   EventType = "workflow_start"    // EventTypeWorkflowStart indicates a workflow has started.
	EventTypeWorkflowEnd     EventType = "workflow_end"      // EventTypeWorkflowEnd indicates a workflow finished successfully.
	EventTypeWorkflowFailed  EventType = "workflow_failed"   // EventTypeWorkflowFailed indicates a workflow stopped on a step failure.
	EventTypeStepStart       EventType = "step_start"        // EventTypeStepStart indicates a step has started.
	EventTypeStepEnd         EventType = "step_end"          // EventTypeStepEnd indicates a step finished successfully.
	EventTypeStepFailed      EventType = "step_failed"       // EventTypeStepFailed indicates a step returned an error.
	EventTypeToolCall        EventType = "tool_call"         // EventTypeToolCall indicates a file tool is being invoked.
	EventTypeToolResult      EventType = "tool_result"       // EventTypeToolResult indicates a successful tool invocation.
	EventTypeToolResultError EventType = "tool_result_error" // EventTypeToolResultError indicates a tool invocation failed.
	EventTypeFileWritten     EventType = "file_written"      // EventTypeFileWritten indicates a file in the agent file system changed.
	EventTypeProgress        EventType = "progress"          // EventTypeProgress carries a human-readable progress line.
)

// Event represents a single occurrence during workflow execution.
type Event struct {
	// Metadata holds optional additional information about the event.
	Metadata map[string]interface{}

	// ToolInput is the parsed input for tool call events.
	ToolInput map[string]interface{}

	// ToolOutput is the result string from the tool (for tool result events).
	ToolOutput string

	// Error contains error information for failure events.
	Error error

	// Content holds text content for progress events.
	Content string

	// Workflow is the name of the running workflow.
	Workflow string

	// Step is the name of the step the event belongs to, if any.
	Step string

	// StepIndex is the zero-based position of the step within the workflow.
	StepIndex int

	// StepCount is the total number of steps in the workflow.
	StepCount int

	// ToolName is the name of the tool being invoked (for tool events).
	ToolName string

	// FileName is the file affected (for file written events).
	FileName string

	// Duration is the elapsed time for end events, formatted for display.
	Duration string

	// Type indicates the kind of event.
	Type EventType
}

// NewWorkflowStartEvent creates a workflow start event.
func NewWorkflowStartEvent(workflow string, stepCount int) *Event {
	return &Event{
		Type:      EventTypeWorkflowStart,
		Workflow:  workflow,
		StepCount: stepCount,
		Metadata:  make(map[string]interface{}),
	}
}

// NewWorkflowEndEvent creates a workflow end event.
func NewWorkflowEndEvent(workflow, duration string) *Event {
	return &Event{
		Type:     EventTypeWorkflowEnd,
		Workflow: workflow,
		Duration: duration,
		Metadata: make(map[string]interface{}),
	}
}

// NewWorkflowFailedEvent creates a workflow failed event.
func NewWorkflowFailedEvent(workflow, duration string, err error) *Event {
	return &Event{
		Type:     EventTypeWorkflowFailed,
		Workflow: workflow,
		Duration: duration,
		Error:    err,
		Metadata: make(map[string]interface{}),
	}
}

// NewStepStartEvent creates a step start event.
func NewStepStartEvent(workflow, step string, index, count int) *Event {
	return &Event{
		Type:      EventTypeStepStart,
		Workflow:  workflow,
		Step:      step,
		StepIndex: index,
		StepCount: count,
		Metadata:  make(map[string]interface{}),
	}
}

// NewStepEndEvent creates a step end event.
func NewStepEndEvent(workflow, step string, index, count int, duration string) *Event {
	return &Event{
		Type:      EventTypeStepEnd,
		Workflow:  workflow,
		Step:      step,
		StepIndex: index,
		StepCount: count,
		Duration:  duration,
		Metadata:  make(map[string]interface{}),
	}
}

// NewStepFailedEvent creates a step failed event.
func NewStepFailedEvent(workflow, step string, index, count int, err error) *Event {
	return &Event{
		Type:      EventTypeStepFailed,
		Workflow:  workflow,
		Step:      step,
		StepIndex: index,
		StepCount: count,
		Error:     err,
		Metadata:  make(map[string]interface{}),
	}
}

// NewToolCallEvent creates a tool call event.
func NewToolCallEvent(toolName string, toolInput map[string]interface{}) *Event {
	return &Event{
		Type:      EventTypeToolCall,
		ToolName:  toolName,
		ToolInput: toolInput,
		Metadata:  make(map[string]interface{}),
	}
}

// NewToolResultEvent creates a tool result event.
func NewToolResultEvent(toolName, output string) *Event {
	return &Event{
		Type:       EventTypeToolResult,
		ToolName:   toolName,
		ToolOutput: output,
		Metadata:   make(map[string]interface{}),
	}
}

// NewToolResultErrorEvent creates a tool result error event.
func NewToolResultErrorEvent(toolName string, err error) *Event {
	return &Event{
		Type:     EventTypeToolResultError,
		ToolName: toolName,
		Error:    err,
		Metadata: make(map[string]interface{}),
	}
}

// NewFileWrittenEvent creates a file written event.
func NewFileWrittenEvent(fileName string, linesAdded, linesRemoved int) *Event {
	return &Event{
		Type:     EventTypeFileWritten,
		FileName: fileName,
		Metadata: map[string]interface{}{
			"lines_added":   linesAdded,
			"lines_removed": linesRemoved,
		},
	}
}

// NewProgressEvent creates a progress event.
func NewProgressEvent(content string) *Event {
	return &Event{
		Type:     EventTypeProgress,
		Content:  content,
		Metadata: make(map[string]interface{}),
	}
}

// WithMetadata adds metadata to the event and returns the event for chaining.
func (e *Event) WithMetadata(key string, value interface{}) *Event {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// IsWorkflowEvent returns true for workflow lifecycle events.
func (e *Event) IsWorkflowEvent() bool {
	return e.Type == EventTypeWorkflowStart ||
		e.Type == EventTypeWorkflowEnd ||
		e.Type == EventTypeWorkflowFailed
}

// IsStepEvent returns true for step lifecycle events.
func (e *Event) IsStepEvent() bool {
	return e.Type == EventTypeStepStart ||
		e.Type == EventTypeStepEnd ||
		e.Type == EventTypeStepFailed
}

// IsToolEvent returns true for tool invocation events.
func (e *Event) IsToolEvent() bool {
	return e.Type == EventTypeToolCall ||
		e.Type == EventTypeToolResult ||
		e.Type == EventTypeToolResultError
}

// IsErrorEvent returns true for events that carry an error.
func (e *Event) IsErrorEvent() bool {
	return e.Type == EventTypeWorkflowFailed ||
		e.Type == EventTypeStepFailed ||
		e.Type == EventTypeToolResultError
}
