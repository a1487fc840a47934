package tool

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/finagent-ai/finagent/toolerr"
)

// Registry holds the registered tools and executes them by name. It is safe
// for concurrent use, although the engine itself issues one invocation at a
// time.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool under its own name. Registering the same name twice
// is an error.
func (r *Registry) Register(t Tool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := t.Name()
	if name == "" {
		return fmt.Errorf("register tool: empty name")
	}
	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("register tool: %q already registered", name)
	}
	r.tools[name] = t
	return nil
}

// MustRegister registers a tool and panics on failure. Intended for
// registry assembly at startup.
func (r *Registry) MustRegister(t Tool) {
	if err := r.Register(t); err != nil {
		panic(err)
	}
}

// Get returns the named tool.
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

// Names returns the registered tool names in sorted order, for embedding in
// planning prompts.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Tools returns the registered tools ordered by name.
func (r *Registry) Tools() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tools := make([]Tool, 0, len(r.tools))
	for _, t := range r.tools {
		tools = append(tools, t)
	}
	sort.Slice(tools, func(i, j int) bool { return tools[i].Name() < tools[j].Name() })
	return tools
}

// ContractText renders the argument contract of every registered tool.
func (r *Registry) ContractText() string {
	return ContractText(r.Tools())
}

// FreeTextParams returns the union of free-text argument names across all
// registered tools. The executor exempts these keys from the placeholder
// heuristic.
func (r *Registry) FreeTextParams() map[string]bool {
	free := make(map[string]bool)
	for _, t := range r.Tools() {
		for _, name := range t.Schema().FreeTextParams() {
			free[name] = true
		}
	}
	return free
}

// Invoke executes the named tool. Unknown names yield a typed
// NOT_REGISTERED failure; tool failures propagate as errors for the caller
// to convert into textual results.
func (r *Registry) Invoke(ctx context.Context, name string, args map[string]any) (Result, error) {
	t, ok := r.Get(name)
	if !ok {
		return Result{}, toolerr.New(name, "invoke", toolerr.ErrCodeNotRegistered,
			fmt.Sprintf("tool %q not registered", name)).WithCause(toolerr.ErrNotRegistered)
	}

	content, err := t.Call(ctx, args)
	if err != nil {
		return Result{}, err
	}
	return Result{Type: "tool_result", Tool: name, Content: content}, nil
}
