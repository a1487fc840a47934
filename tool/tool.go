// Package tool defines the tool interface, the argument schema model, and
// the in-process registry that executes named tools on behalf of the agent.
//
// The registry is the boundary between the engine and side-effecting
// operations: the executor hands it a tool name and an argument mapping and
// receives a structured result or a typed failure. Tool schemas double as
// the source of the textual argument contract embedded in argument
// resolution prompts and of the free-text whitelist used during validation.
package tool

import "context"

// Tool is the interface implemented by every registered tool.
type Tool interface {
	// Name returns the unique registry identifier for this tool.
	Name() string

	// Description returns a human-readable description of what this tool does.
	Description() string

	// Schema returns the argument contract for this tool. The schema drives
	// prompt construction and argument validation; it must list every
	// accepted argument with its type and any enumerated values.
	Schema() Schema

	// Call executes the tool with the given arguments. Arguments arrive as
	// they were resolved from the plan or the oracle; implementations must
	// validate their own required fields.
	Call(ctx context.Context, args map[string]any) (any, error)
}

// Result is the structured outcome of a successful tool invocation.
type Result struct {
	// Type is always "tool_result".
	Type string `json:"type"`

	// Tool is the name of the tool that produced the result.
	Tool string `json:"tool"`

	// Content is the tool's output payload.
	Content any `json:"content"`
}
