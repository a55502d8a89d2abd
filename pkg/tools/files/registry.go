package files

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/entrhq/scribe/pkg/agent/tools"
	"github.com/entrhq/scribe/pkg/filesystem"
	"github.com/entrhq/scribe/pkg/logging"
)

// Registry holds the file-system tools and dispatches XML tool calls to
// them. Tool availability is filtered through an ExclusionService so agents
// are only offered tools that can succeed in the current file system state.
type Registry struct {
	mu        sync.RWMutex
	tools     map[string]tools.Tool
	exclusion *ExclusionService
	logger    *logging.Logger
}

// NewRegistry creates a Registry with the full set of file-system tools
// registered against the given file system.
func NewRegistry(fs *filesystem.FileSystem) *Registry {
	logger, _ := logging.NewLogger("tools")

	r := &Registry{
		tools:     make(map[string]tools.Tool),
		exclusion: NewExclusionService(fs),
		logger:    logger,
	}

	r.Register(NewWriteFileTool(fs))
	r.Register(NewAppendFileTool(fs))
	r.Register(NewReadFileTool(fs))
	r.Register(NewReplaceFileStrTool(fs))
	r.Register(NewSaveExtractedContentTool(fs))
	r.Register(NewListFilesTool(fs))
	r.Register(NewDescribeFilesTool(fs))

	return r
}

// Register adds a tool to the registry, replacing any existing tool with
// the same name.
func (r *Registry) Register(tool tools.Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[tool.Name()] = tool
}

// Get retrieves a tool by name.
func (r *Registry) Get(name string) (tools.Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tool, ok := r.tools[name]
	return tool, ok
}

// All returns every registered tool sorted by name, regardless of the
// current exclusion state.
func (r *Registry) All() []tools.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sorted(nil)
}

// Active returns the tools currently offered to an agent: every registered
// tool minus those the exclusion service withholds.
func (r *Registry) Active() []tools.Tool {
	excluded := make(map[string]bool)
	for _, name := range r.exclusion.ExcludedTools() {
		excluded[name] = true
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sorted(excluded)
}

// Names returns the sorted names of every registered tool.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tools))
	r.mu.RLock()
	for name := range r.tools {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}

// Exclusion exposes the registry's exclusion service.
func (r *Registry) Exclusion() *ExclusionService {
	return r.exclusion
}

// Dispatch parses an XML tool call out of text and executes it. Dispatch
// accepts calls to excluded tools; the tool's own error describes the
// failure more precisely than a blanket refusal would.
func (r *Registry) Dispatch(ctx context.Context, text string) (string, map[string]interface{}, error) {
	call, _, err := tools.ParseToolCall(text)
	if err != nil {
		return "", nil, err
	}
	return r.Execute(ctx, call)
}

// Execute runs a parsed tool call.
func (r *Registry) Execute(ctx context.Context, call *tools.ToolCall) (string, map[string]interface{}, error) {
	tool, ok := r.Get(call.ToolName)
	if !ok {
		return "", nil, fmt.Errorf("unknown tool: %s", call.ToolName)
	}

	r.logger.Debugf("executing tool %s", call.ToolName)

	result, metadata, err := tool.Execute(ctx, call.GetArgumentsXML())
	if err != nil {
		r.logger.Errorf("tool %s failed: %v", call.ToolName, err)
		return "", nil, err
	}

	return result, metadata, nil
}

// sorted returns the registered tools minus the excluded set, ordered by
// name. Callers must hold at least a read lock.
func (r *Registry) sorted(excluded map[string]bool) []tools.Tool {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		if excluded[name] {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	list := make([]tools.Tool, 0, len(names))
	for _, name := range names {
		list = append(list, r.tools[name])
	}
	return list
}
